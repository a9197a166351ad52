// Package email delivers transactional mail for the applications pipeline.
package email

import "context"

type Sender interface {
	// SendApplicationStatusEmail notifies an applicant that their
	// application moved to a new pipeline status.
	SendApplicationStatusEmail(ctx context.Context, toEmail, applicantName, listingTitle, statusLabel string) error
	// SendSLABreachEmail alerts an internal user that an application has
	// gone past its first-response window. applicationURL is a deep link
	// into the admin app; empty means no link is rendered.
	SendSLABreachEmail(ctx context.Context, toEmail, applicantName, listingTitle, applicationURL string, minutesOverdue int) error
	// SendLeaseConvertedEmail confirms to the applicant that their
	// application became a signed lease.
	SendLeaseConvertedEmail(ctx context.Context, toEmail, applicantName, listingTitle string) error
	// SendCustomEmail delivers a pre-rendered subject and body, used by the
	// queued message dispatcher.
	SendCustomEmail(ctx context.Context, toEmail, subject, body string) error
}

// NoopSender is used when no SMTP credentials are configured. Every send
// succeeds without doing anything.
type NoopSender struct{}

func (NoopSender) SendApplicationStatusEmail(ctx context.Context, toEmail, applicantName, listingTitle, statusLabel string) error {
	return nil
}

func (NoopSender) SendSLABreachEmail(ctx context.Context, toEmail, applicantName, listingTitle, applicationURL string, minutesOverdue int) error {
	return nil
}

func (NoopSender) SendLeaseConvertedEmail(ctx context.Context, toEmail, applicantName, listingTitle string) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, body string) error {
	return nil
}

var _ Sender = NoopSender{}
