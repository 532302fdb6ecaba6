package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v3"

	"welile-backend/internal/config"
	"welile-backend/internal/domain"
)

type Service interface {
	SendReceiptEmail(ctx context.Context, toEmail, recipientName string, receipt domain.Receipt) error
	SendPaymentPendingEmail(ctx context.Context, toEmail, recipientName, agentName, tenantName string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

func (s *service) sendEmail(toEmail, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Welile <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Text:    body,
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendReceiptEmail(ctx context.Context, toEmail, recipientName string, receipt domain.Receipt) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", recipientName)
	fmt.Fprintf(&b, "A payment of UGX %s from %s has been applied.\n\n", receipt.Amount.StringFixed(2), receipt.TenantName)
	b.WriteString(receipt.ShareText)

	subject := fmt.Sprintf("Payment Receipt %s", receipt.Number)
	return s.sendEmail(toEmail, subject, b.String())
}

func (s *service) SendPaymentPendingEmail(ctx context.Context, toEmail, recipientName, agentName, tenantName string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\n%s recorded a collection for %s that is awaiting your verification.\n",
		recipientName, agentName, tenantName,
	)
	return s.sendEmail(toEmail, "Collection awaiting verification", body)
}
