// Package export renders a CV record into TXT, DOCX and PDF byte
// streams. All three renderers produce the same logical content and
// tolerate missing optional fields.
package export

import (
	"strings"

	"cv-formatter/internal/models"
)

// Filename derives the deterministic attachment name for a record.
func Filename(cv *models.CV, ext string) string {
	name := strings.TrimSpace(cv.Header.Name)
	if name == "" {
		return "CV" + ext
	}
	return strings.ReplaceAll(name, " ", "_") + "_CV" + ext
}

// RenderText renders the record as labeled plain-text blocks.
func RenderText(cv *models.CV) []byte {
	var b strings.Builder

	b.WriteString(cv.Header.Name + "\n")
	b.WriteString(cv.Header.Title + "\n\n")
	b.WriteString("Email: " + cv.Header.Email + " | Phone: " + cv.Header.Phone + "\n")
	b.WriteString("LinkedIn: " + cv.Header.Linkedin + " | Website: " + cv.Header.Website + "\n\n")

	if details := personalDetails(cv); len(details) > 0 {
		b.WriteString("--- Personal Details ---\n")
		for _, d := range details {
			b.WriteString(d + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("--- Summary ---\n" + cv.Summary + "\n\n")

	b.WriteString("--- Experience ---\n")
	for _, exp := range cv.Experience {
		b.WriteString(exp.Title + " at " + exp.Company + " (" + exp.StartDate + " - " + exp.EndDate + ")\n")
		for _, r := range exp.Responsibilities {
			b.WriteString("- " + r + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("--- Education ---\n")
	for _, edu := range cv.Education {
		b.WriteString(edu.Degree + " from " + edu.Institution + " (" + edu.Year + ")\n")
	}

	b.WriteString("\n--- Skills ---\n")
	b.WriteString(strings.Join(cv.Skills, ", "))
	b.WriteString("\n")

	return []byte(b.String())
}

// personalDetails collects the optional header fields that render as
// their own labeled block.
func personalDetails(cv *models.CV) []string {
	var details []string
	add := func(label, value string) {
		if value != "" {
			details = append(details, label+": "+value)
		}
	}
	add("Nationality", cv.Header.Nationality)
	add("Languages", cv.Header.Languages)
	add("Date of Birth", cv.Header.DateOfBirth)
	add("Marital Status", cv.Header.MaritalStatus)
	add("Driving Licence", cv.Header.DrivingLicence)
	add("Smoker Status", cv.Header.SmokerStatus)
	return details
}
