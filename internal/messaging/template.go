// Package messaging provides message template selection, token
// interpolation and contact link construction for outbound applicant
// communication. Everything here is pure; sending lives in the whatsapp and
// email packages.
package messaging

import "strings"

// Message channels.
const (
	ChannelWhatsApp = "whatsapp"
	ChannelEmail    = "email"
	ChannelSMS      = "sms"
)

// templateDomainKeyword scopes fuzzy matching to application templates.
const templateDomainKeyword = "application"

// TemplateOption is one reusable message template as served by the core
// backend.
type TemplateOption struct {
	ID          string `json:"id"`
	Channel     string `json:"channel"`
	TemplateKey string `json:"template_key"`
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	IsActive    bool   `json:"is_active"`
}

// NormalizeTemplate coerces a raw template record. is_active defaults to
// true when the field is absent; only a literal false disables a template.
func NormalizeTemplate(record map[string]any) TemplateOption {
	active := true
	if raw, ok := record["is_active"]; ok {
		literal, isBool := raw.(bool)
		active = isBool && literal
	}
	return TemplateOption{
		ID:          stringField(record["id"]),
		Channel:     strings.ToLower(stringField(record["channel"])),
		TemplateKey: stringField(record["template_key"]),
		Name:        stringField(record["name"]),
		Subject:     stringField(record["subject"]),
		Body:        stringField(record["body"]),
		IsActive:    active,
	}
}

// NormalizeTemplates maps NormalizeTemplate over raw records.
func NormalizeTemplates(records []map[string]any) []TemplateOption {
	templates := make([]TemplateOption, 0, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		templates = append(templates, NormalizeTemplate(record))
	}
	return templates
}

// IsUsable reports whether the template has the minimum fields to send.
func (t TemplateOption) IsUsable() bool {
	return strings.TrimSpace(t.ID) != "" &&
		strings.TrimSpace(t.Channel) != "" &&
		strings.TrimSpace(t.Body) != ""
}

// SelectTemplate picks the best active template for a channel and status.
// The policy is greedy and order-dependent: a key matching both the
// application domain and the status wins, then any application key, then
// the first active template for the channel. Nil means no template; the
// caller falls back to the built-in defaults.
func SelectTemplate(templates []TemplateOption, channel, status string) *TemplateOption {
	channel = strings.ToLower(strings.TrimSpace(channel))
	status = strings.ToLower(strings.TrimSpace(status))

	var candidates []TemplateOption
	for _, t := range templates {
		if t.IsActive && t.IsUsable() && t.Channel == channel {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	for i, t := range candidates {
		key := strings.ToLower(t.TemplateKey)
		if strings.Contains(key, templateDomainKeyword) && status != "" && strings.Contains(key, status) {
			return &candidates[i]
		}
	}
	for i, t := range candidates {
		if strings.Contains(strings.ToLower(t.TemplateKey), templateDomainKeyword) {
			return &candidates[i]
		}
	}
	return &candidates[0]
}

func stringField(value any) string {
	text, _ := value.(string)
	return strings.TrimSpace(text)
}
