package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title   string
	Heading string
}

type statusUpdateEmailData struct {
	baseEmailData
	ApplicantName string
	ListingTitle  string
	StatusLabel   string
}

type slaBreachEmailData struct {
	baseEmailData
	ApplicantName  string
	ListingTitle   string
	ApplicationURL string
	MinutesOverdue int
}

type leaseConvertedEmailData struct {
	baseEmailData
	ApplicantName string
	ListingTitle  string
}

type customEmailData struct {
	baseEmailData
	Body string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}
