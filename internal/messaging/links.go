package messaging

import (
	"net/url"
	"strings"

	"casaora_backend/internal/applications/domain"
	"casaora_backend/platform/phone"
)

// Hardcoded bilingual defaults used when no template matches. They carry
// the same tokens a stored template would.
const (
	defaultWhatsAppBody = "Hola {{full_name}}, te escribimos de Casaora por tu solicitud para {{listing_title}} (estado: {{status}}). / Hi {{full_name}}, this is Casaora about your application for {{listing_title}} (status: {{status}})."
	defaultEmailSubject = "Casaora - Tu solicitud para {{listing_title}}"
	defaultEmailBody    = "Hola {{full_name}},\n\nTe contactamos por tu solicitud para {{listing_title}}. Estado actual: {{status}}.\n\nHi {{full_name}}, we are reaching out about your application for {{listing_title}}. Current status: {{status}}.\n\nEquipo Casaora"
)

// ContactLink is a ready-to-open outbound contact action for one row.
type ContactLink struct {
	Channel    string `json:"channel"`
	URL        string `json:"url"`
	TemplateID string `json:"templateId,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// BuildContactLink constructs the contact link for a row on the given
// channel. The region is the default country for phone numbers without a
// prefix. A row without a usable recipient yields a link with an empty URL
// and a reason instead of an error; the board simply hides the action.
func BuildContactLink(row domain.ApplicationRow, templates []TemplateOption, channel, region string) ContactLink {
	channel = strings.ToLower(strings.TrimSpace(channel))
	ctx := BuildContext(row)
	selected := SelectTemplate(templates, channel, domain.CanonicalStatus(row.Status))

	link := ContactLink{Channel: channel}
	if selected != nil {
		link.TemplateID = selected.ID
	}

	switch channel {
	case ChannelWhatsApp:
		digits := phone.WhatsAppDigits(row.Phone, region)
		if digits == "" {
			link.Reason = "no usable phone number"
			return link
		}
		body := defaultWhatsAppBody
		if selected != nil {
			body = selected.Body
		}
		link.URL = "https://wa.me/" + digits + "?text=" + url.QueryEscape(Interpolate(body, ctx))
	case ChannelEmail:
		recipient := strings.TrimSpace(row.Email)
		if recipient == "" {
			link.Reason = "no email address"
			return link
		}
		subject, body := defaultEmailSubject, defaultEmailBody
		if selected != nil {
			body = selected.Body
			if strings.TrimSpace(selected.Subject) != "" {
				subject = selected.Subject
			}
		}
		link.URL = "mailto:" + url.QueryEscape(recipient) +
			"?subject=" + url.QueryEscape(Interpolate(subject, ctx)) +
			"&body=" + url.QueryEscape(Interpolate(body, ctx))
	default:
		link.Reason = "unsupported channel"
	}
	return link
}
