package notify

import (
	"context"
	"fmt"

	"github.com/marqenbd/marqen-backend/pkg/config"
	"github.com/marqenbd/marqen-backend/pkg/enums"
	pkgerrors "github.com/marqenbd/marqen-backend/pkg/errors"
	"github.com/marqenbd/marqen-backend/pkg/logger"
	"github.com/marqenbd/marqen-backend/pkg/metrics"
	"github.com/marqenbd/marqen-backend/pkg/resend"
	"github.com/marqenbd/marqen-backend/pkg/types"
)

// OrderEmailInput is everything needed to render and route the order
// notification emails.
type OrderEmailInput struct {
	CustomerName  string
	Email         string
	Phone         string
	Address       string
	City          string
	CartItems     []types.CartLine
	Subtotal      int64
	PromoDiscount int64
	Shipping      int64
	TotalAmount   int64
	PaymentMethod enums.PaymentMethod
	OrderNumber   string
}

// SendReport summarizes what went out. CustomerSkipped is set when no
// customer email address was provided; CustomerSendFailed when the address
// was present but the provider rejected the send.
type SendReport struct {
	AdminMessageID     string `json:"adminMessageId"`
	CustomerMessageID  string `json:"customerMessageId,omitempty"`
	CustomerSkipped    bool   `json:"customerSkipped"`
	CustomerSendFailed bool   `json:"customerSendFailed,omitempty"`
}

type sender interface {
	Configured() bool
	Send(ctx context.Context, email resend.Email) (*resend.SendResult, error)
}

// Service delivers order notification emails through Resend. The admin copy
// is mandatory; the customer copy is best-effort on top of it.
type Service interface {
	SendOrderEmails(ctx context.Context, input OrderEmailInput) (*SendReport, error)
}

type service struct {
	client  sender
	cfg     config.ResendConfig
	logg    *logger.Logger
	metrics *metrics.StorefrontMetrics
}

// NewService builds the notification service.
func NewService(client sender, cfg config.ResendConfig, logg *logger.Logger, m *metrics.StorefrontMetrics) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("resend client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{client: client, cfg: cfg, logg: logg, metrics: m}, nil
}

func (s *service) SendOrderEmails(ctx context.Context, input OrderEmailInput) (*SendReport, error) {
	if input.CustomerName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customerName is required")
	}
	if len(input.CartItems) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cartItems must not be empty")
	}
	if !s.client.Configured() {
		return nil, pkgerrors.New(pkgerrors.CodeConfig, "resend api key is not configured")
	}

	report := &SendReport{}

	adminResult, err := s.client.Send(ctx, resend.Email{
		From:    s.cfg.FromEmail,
		To:      []string{s.cfg.AdminEmail},
		Subject: adminSubject(input),
		HTML:    renderOrderHTML("New order received", input),
	})
	if err != nil {
		s.metrics.IncEmailSend("admin", "failure")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sending admin order email")
	}
	s.metrics.IncEmailSend("admin", "success")
	report.AdminMessageID = adminResult.ID

	if input.Email == "" {
		report.CustomerSkipped = true
		return report, nil
	}

	customerResult, err := s.client.Send(ctx, resend.Email{
		From:    s.cfg.FromEmail,
		To:      []string{input.Email},
		Subject: customerSubject(input),
		HTML:    renderOrderHTML("Thank you for your order!", input),
	})
	if err != nil {
		// The admin already has the order; a bounced customer copy does
		// not fail the request.
		s.metrics.IncEmailSend("customer", "failure")
		s.logg.Error(s.logg.WithField(ctx, "customer_email", input.Email), "customer order email failed", err)
		report.CustomerSendFailed = true
		return report, nil
	}
	s.metrics.IncEmailSend("customer", "success")
	report.CustomerMessageID = customerResult.ID
	return report, nil
}
