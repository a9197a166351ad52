// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "PY"

// NormalizeE164 formats a phone number to E.164, using region as the default
// country for numbers without a prefix. An empty region falls back to PY.
// If parsing fails, it returns the trimmed input.
func NormalizeE164(input, region string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	if region == "" {
		region = defaultRegion
	}

	number, err := phonenumbers.Parse(trimmed, region)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// WhatsAppDigits returns the digits-only form used in wa.me links.
// Non-digit characters are stripped; an empty result means no usable number.
func WhatsAppDigits(input, region string) string {
	normalized := NormalizeE164(input, region)

	var b strings.Builder
	for _, r := range normalized {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
