package email

import (
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"

	"casaora_backend/platform/config"
)

// SMTPSender implements Sender over a direct SMTP connection via go-mail.
type SMTPSender struct {
	host      string
	port      int
	username  string
	password  string
	fromName  string
	fromEmail string
}

// NewSender returns an SMTPSender when email delivery is enabled, otherwise a
// NoopSender.
func NewSender(cfg config.SMTPConfig) Sender {
	if !cfg.GetEmailEnabled() || cfg.GetSMTPHost() == "" {
		return NoopSender{}
	}
	return &SMTPSender{
		host:      cfg.GetSMTPHost(),
		port:      cfg.GetSMTPPort(),
		username:  cfg.GetSMTPUsername(),
		password:  cfg.GetSMTPPassword(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
	}
}

func (s *SMTPSender) send(ctx context.Context, toEmail, subject, htmlContent string) error {
	msg := gomail.NewMsg()
	if err := msg.FromFormat(s.fromName, s.fromEmail); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := msg.To(toEmail); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextHTML, htmlContent)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(15*time.Second),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}

func (s *SMTPSender) SendApplicationStatusEmail(ctx context.Context, toEmail, applicantName, listingTitle, statusLabel string) error {
	content, err := renderEmailTemplate("status_update.html", statusUpdateEmailData{
		baseEmailData: baseEmailData{
			Title:   "Actualización de tu solicitud",
			Heading: "Actualización de tu solicitud",
		},
		ApplicantName: applicantName,
		ListingTitle:  listingTitle,
		StatusLabel:   statusLabel,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectStatusUpdateFmt, listingTitle), content)
}

func (s *SMTPSender) SendSLABreachEmail(ctx context.Context, toEmail, applicantName, listingTitle, applicationURL string, minutesOverdue int) error {
	content, err := renderEmailTemplate("sla_breach.html", slaBreachEmailData{
		baseEmailData: baseEmailData{
			Title:   "Solicitud sin respuesta",
			Heading: "Solicitud sin respuesta",
		},
		ApplicantName:  applicantName,
		ListingTitle:   listingTitle,
		ApplicationURL: applicationURL,
		MinutesOverdue: minutesOverdue,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectSLABreachFmt, applicantName), content)
}

func (s *SMTPSender) SendLeaseConvertedEmail(ctx context.Context, toEmail, applicantName, listingTitle string) error {
	content, err := renderEmailTemplate("lease_converted.html", leaseConvertedEmailData{
		baseEmailData: baseEmailData{
			Title:   "Contrato firmado",
			Heading: "Contrato firmado",
		},
		ApplicantName: applicantName,
		ListingTitle:  listingTitle,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, fmt.Sprintf(subjectLeaseConvertedFmt, listingTitle), content)
}

func (s *SMTPSender) SendCustomEmail(ctx context.Context, toEmail, subject, body string) error {
	content, err := renderEmailTemplate("custom.html", customEmailData{
		baseEmailData: baseEmailData{
			Title:   subject,
			Heading: subject,
		},
		Body: body,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, toEmail, subject, content)
}

var _ Sender = (*SMTPSender)(nil)
