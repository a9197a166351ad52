package phone

import "testing"

func TestNormalizeE164UsesRegion(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		region string
		want   string
	}{
		{"local number with default region", "0981 123 456", "", "+595981123456"},
		{"local number with explicit region", "0981 123 456", "PY", "+595981123456"},
		{"international prefix ignores region", "+595981123456", "US", "+595981123456"},
		{"region changes interpretation", "(202) 555-0123", "US", "+12025550123"},
		{"unparsable input passes through trimmed", " not-a-number ", "PY", "not-a-number"},
		{"empty input stays empty", "   ", "PY", ""},
	}

	for _, tc := range cases {
		if got := NormalizeE164(tc.input, tc.region); got != tc.want {
			t.Errorf("%s: NormalizeE164(%q, %q) = %q, want %q", tc.name, tc.input, tc.region, got, tc.want)
		}
	}
}

func TestWhatsAppDigits(t *testing.T) {
	if got := WhatsAppDigits("0981 123 456", "PY"); got != "595981123456" {
		t.Errorf("WhatsAppDigits = %q, want %q", got, "595981123456")
	}
	if got := WhatsAppDigits("", "PY"); got != "" {
		t.Errorf("WhatsAppDigits on empty input = %q, want empty", got)
	}
}
