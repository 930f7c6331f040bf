package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	notifysvc "github.com/marqenbd/marqen-backend/internal/notify"
	"github.com/marqenbd/marqen-backend/pkg/enums"
	pkgerrors "github.com/marqenbd/marqen-backend/pkg/errors"
)

type stubNotifyService struct {
	report    *notifysvc.SendReport
	err       error
	lastInput notifysvc.OrderEmailInput
}

func (s *stubNotifyService) SendOrderEmails(ctx context.Context, input notifysvc.OrderEmailInput) (*notifysvc.SendReport, error) {
	s.lastInput = input
	return s.report, s.err
}

const emailBody = `{
	"customerName":"Karim Ahmed","email":"karim@example.com","phone":"01711111111",
	"address":"House 5","city":"Dhaka",
	"cartItems":[{"productId":"p1","name":"Shirt","price":500,"quantity":2}],
	"subtotal":1000,"shipping":60,"totalAmount":1060,
	"paymentMethod":"bkash","orderNumber":"ORD-71717171"
}`

func TestSendOrderEmailSuccess(t *testing.T) {
	svc := &stubNotifyService{report: &notifysvc.SendReport{AdminMessageID: "msg-1"}}
	handler := SendOrderEmail(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/send-order-email", strings.NewReader(emailBody))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastInput.CustomerName != "Karim Ahmed" {
		t.Fatalf("unexpected customer %q", svc.lastInput.CustomerName)
	}
	if len(svc.lastInput.CartItems) != 1 {
		t.Fatalf("unexpected items %+v", svc.lastInput.CartItems)
	}
}

func TestSendOrderEmailAcceptsDisplayNamePaymentMethod(t *testing.T) {
	svc := &stubNotifyService{report: &notifysvc.SendReport{AdminMessageID: "msg-1"}}
	handler := SendOrderEmail(svc, nil)

	body := strings.Replace(emailBody, `"paymentMethod":"bkash"`, `"paymentMethod":"bKash"`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/send-order-email", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastInput.PaymentMethod != enums.PaymentBkash {
		t.Fatalf("display name not resolved, got %q", svc.lastInput.PaymentMethod)
	}
}

func TestSendOrderEmailMissingCustomerName(t *testing.T) {
	handler := SendOrderEmail(&stubNotifyService{}, nil)

	body := strings.Replace(emailBody, `"Karim Ahmed"`, `""`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/send-order-email", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSendOrderEmailMissingItems(t *testing.T) {
	handler := SendOrderEmail(&stubNotifyService{}, nil)

	body := strings.Replace(emailBody,
		`"cartItems":[{"productId":"p1","name":"Shirt","price":500,"quantity":2}]`,
		`"cartItems":[]`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/send-order-email", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSendOrderEmailUnconfiguredKeyIs500(t *testing.T) {
	svc := &stubNotifyService{err: pkgerrors.New(pkgerrors.CodeConfig, "resend api key is not configured")}
	handler := SendOrderEmail(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/send-order-email", strings.NewReader(emailBody))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
