package messaging

import (
	"regexp"
	"strings"

	"casaora_backend/internal/applications/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var tokenPattern = regexp.MustCompile(`\{\{([A-Za-z0-9_]+)\}\}`)

// Localized placeholders used when a context value is missing.
const (
	placeholderListing = "Propiedad"
	placeholderIncome  = "No informado"
)

var currencyPrinter = message.NewPrinter(language.Spanish)

// Interpolate replaces {{identifier}} tokens with context values. Token
// names are matched lower-cased and trimmed; unknown tokens become the
// empty string so no literal braces ever reach the applicant.
func Interpolate(text string, ctx map[string]string) string {
	return tokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		name := strings.ToLower(strings.TrimSpace(tokenPattern.FindStringSubmatch(token)[1]))
		return ctx[name]
	})
}

// BuildContext assembles the interpolation context for a row. Values are
// display-ready: status carries the human label and monthly income is a
// formatted guaraní amount.
func BuildContext(row domain.ApplicationRow) map[string]string {
	listing := row.ListingTitle
	if listing == "" {
		listing = placeholderListing
	}

	income := placeholderIncome
	if row.MonthlyIncome > 0 {
		income = FormatGuarani(row.MonthlyIncome)
	}

	return map[string]string{
		"full_name":      row.FullName,
		"listing_title":  listing,
		"status":         domain.StatusLabel(row.Status),
		"email":          row.Email,
		"phone":          row.Phone,
		"monthly_income": income,
	}
}

// FormatGuarani renders an amount as Paraguayan guaraní with Spanish digit
// grouping. Guaraní has no fractional unit.
func FormatGuarani(amount float64) string {
	return currencyPrinter.Sprintf("₲ %v", number.Decimal(amount, number.MaxFractionDigits(0)))
}
