package export

import (
	"fmt"
	"strings"

	"cv-formatter/internal/models"
)

// RenderPdf renders the record as a paginated PDF with manual layout.
func RenderPdf(cv *models.CV) ([]byte, error) {
	l := newPDFLayout()

	l.line(cv.Header.Name, lineOpts{bold: true, size: 24})
	l.line(cv.Header.Title, lineOpts{bold: true, size: 18, spaceAfter: 10})
	l.line(fmt.Sprintf("Email: %s | Phone: %s", cv.Header.Email, cv.Header.Phone), lineOpts{spaceAfter: 20})

	if details := personalDetails(cv); len(details) > 0 {
		l.line("Personal Details", lineOpts{bold: true, size: 16})
		for _, d := range details {
			l.line(d, lineOpts{})
		}
		l.space(20)
	}

	if cv.Summary != "" {
		l.line("Summary", lineOpts{bold: true, size: 16})
		l.line(cv.Summary, lineOpts{spaceAfter: 20})
	}

	if len(cv.Experience) > 0 {
		l.line("Experience", lineOpts{bold: true, size: 16})
		for _, exp := range cv.Experience {
			l.line(fmt.Sprintf("%s at %s", exp.Title, exp.Company), lineOpts{bold: true, size: 14})
			l.line(fmt.Sprintf("%s - %s", exp.StartDate, exp.EndDate), lineOpts{size: 10})
			for _, r := range exp.Responsibilities {
				l.line("- "+r, lineOpts{indent: bulletIndent})
			}
			l.space(10)
		}
	}

	if len(cv.Education) > 0 {
		l.line("Education", lineOpts{bold: true, size: 16})
		for _, edu := range cv.Education {
			l.line(fmt.Sprintf("%s from %s (%s)", edu.Degree, edu.Institution, edu.Year), lineOpts{})
		}
		l.space(20)
	}

	if len(cv.Skills) > 0 {
		l.line("Skills", lineOpts{bold: true, size: 16})
		l.line(strings.Join(cv.Skills, ", "), lineOpts{})
	}

	return l.output()
}
