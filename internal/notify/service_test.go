package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/marqenbd/marqen-backend/pkg/config"
	"github.com/marqenbd/marqen-backend/pkg/enums"
	pkgerrors "github.com/marqenbd/marqen-backend/pkg/errors"
	"github.com/marqenbd/marqen-backend/pkg/logger"
	"github.com/marqenbd/marqen-backend/pkg/resend"
	"github.com/marqenbd/marqen-backend/pkg/types"
)

type stubSender struct {
	configured bool
	sent       []resend.Email
	errOn      map[string]error
	nextID     int
}

func newStubSender() *stubSender {
	return &stubSender{configured: true, errOn: make(map[string]error)}
}

func (s *stubSender) Configured() bool { return s.configured }

func (s *stubSender) Send(ctx context.Context, email resend.Email) (*resend.SendResult, error) {
	for _, to := range email.To {
		if err := s.errOn[to]; err != nil {
			return nil, err
		}
	}
	s.sent = append(s.sent, email)
	s.nextID++
	return &resend.SendResult{ID: fmt.Sprintf("msg-%d", s.nextID)}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
}

func testResendConfig() config.ResendConfig {
	return config.ResendConfig{
		APIKey:     "re_test",
		FromEmail:  "Marqen <onboarding@resend.dev>",
		AdminEmail: "marqenbd@gmail.com",
	}
}

func sampleInput() OrderEmailInput {
	return OrderEmailInput{
		CustomerName: "Karim Ahmed",
		Email:        "karim@example.com",
		Phone:        "01711111111",
		Address:      "House 5, Road 3",
		City:         "Dhaka",
		CartItems: []types.CartLine{
			{ProductID: "p1", Name: "Panjabi", Price: 500, Quantity: 2, Size: "M"},
		},
		Subtotal:      1000,
		Shipping:      60,
		TotalAmount:   1060,
		PaymentMethod: enums.PaymentBkash,
		OrderNumber:   "ORD-71717171",
	}
}

func TestSendOrderEmailsAdminAndCustomer(t *testing.T) {
	client := newStubSender()
	svc, err := NewService(client, testResendConfig(), testLogger(), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	report, err := svc.SendOrderEmails(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if len(client.sent) != 2 {
		t.Fatalf("expected 2 emails got %d", len(client.sent))
	}
	if client.sent[0].To[0] != "marqenbd@gmail.com" {
		t.Fatalf("admin email went to %s", client.sent[0].To[0])
	}
	if client.sent[1].To[0] != "karim@example.com" {
		t.Fatalf("customer email went to %s", client.sent[1].To[0])
	}
	if report.AdminMessageID == "" || report.CustomerMessageID == "" {
		t.Fatalf("missing message ids: %+v", report)
	}
	if report.CustomerSkipped {
		t.Fatal("customer should not be skipped")
	}
}

func TestSendOrderEmailsSkipsCustomerWithoutAddress(t *testing.T) {
	client := newStubSender()
	svc, _ := NewService(client, testResendConfig(), testLogger(), nil)

	input := sampleInput()
	input.Email = ""
	report, err := svc.SendOrderEmails(context.Background(), input)
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if len(client.sent) != 1 {
		t.Fatalf("expected admin email only got %d", len(client.sent))
	}
	if !report.CustomerSkipped {
		t.Fatal("expected customer skipped")
	}
}

func TestSendOrderEmailsCustomerFailureIsAbsorbed(t *testing.T) {
	client := newStubSender()
	client.errOn["karim@example.com"] = errors.New("bounced")
	svc, _ := NewService(client, testResendConfig(), testLogger(), nil)

	report, err := svc.SendOrderEmails(context.Background(), sampleInput())
	if err != nil {
		t.Fatalf("expected absorbed customer failure got %v", err)
	}
	if !report.CustomerSendFailed {
		t.Fatal("expected customer send failure flagged")
	}
	if report.AdminMessageID == "" {
		t.Fatal("admin email should have gone out")
	}
}

func TestSendOrderEmailsAdminFailureFails(t *testing.T) {
	client := newStubSender()
	client.errOn["marqenbd@gmail.com"] = errors.New("provider down")
	svc, _ := NewService(client, testResendConfig(), testLogger(), nil)

	_, err := svc.SendOrderEmails(context.Background(), sampleInput())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error got %v", err)
	}
}

func TestSendOrderEmailsValidation(t *testing.T) {
	svc, _ := NewService(newStubSender(), testResendConfig(), testLogger(), nil)

	input := sampleInput()
	input.CustomerName = ""
	_, err := svc.SendOrderEmails(context.Background(), input)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}

	input = sampleInput()
	input.CartItems = nil
	_, err = svc.SendOrderEmails(context.Background(), input)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestSendOrderEmailsRequiresConfiguredKey(t *testing.T) {
	client := newStubSender()
	client.configured = false
	svc, _ := NewService(client, testResendConfig(), testLogger(), nil)

	_, err := svc.SendOrderEmails(context.Background(), sampleInput())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeConfig {
		t.Fatalf("expected config error got %v", err)
	}
}

func TestRenderOrderHTMLContainsLineAndPaymentDetails(t *testing.T) {
	body := renderOrderHTML("New order received", sampleInput())

	for _, want := range []string{
		"Panjabi (Size: M)",
		"Tk 1000",
		"Tk 1060",
		"bKash",
		enums.ReceivingNumber,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestRenderOrderHTMLOmitsReceivingNumberForCOD(t *testing.T) {
	input := sampleInput()
	input.PaymentMethod = enums.PaymentCashOnDelivery
	body := renderOrderHTML("New order received", input)

	if strings.Contains(body, enums.ReceivingNumber) {
		t.Fatal("COD order should not show a receiving number")
	}
	if !strings.Contains(body, "Cash on Delivery") {
		t.Fatal("expected COD display name")
	}
}
