package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"

	"cv-formatter/internal/models"
)

// Run sizes are OOXML half-points.
const (
	docxNameSize    = "48"
	docxTitleSize   = "36"
	docxHeadingSize = "32"
	docxBodySize    = "24"
)

// RenderDocx renders the record as an OOXML document: one paragraph
// per line, heading runs for section titles, bullet-marker paragraphs
// for responsibilities.
func RenderDocx(cv *models.CV) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	addLine := func(text, size string, bold bool) {
		para := doc.AddParagraph()
		run := para.AddText(text).Size(size)
		if bold {
			run.Bold()
		}
	}
	addHeading := func(text string) {
		addLine(text, docxHeadingSize, true)
	}
	addBody := func(text string) {
		addLine(text, docxBodySize, false)
	}

	addLine(cv.Header.Name, docxNameSize, true)
	addLine(cv.Header.Title, docxTitleSize, true)
	addBody(fmt.Sprintf("Email: %s | Phone: %s", cv.Header.Email, cv.Header.Phone))
	addBody(fmt.Sprintf("LinkedIn: %s | Website: %s", cv.Header.Linkedin, cv.Header.Website))
	doc.AddParagraph()

	if details := personalDetails(cv); len(details) > 0 {
		addHeading("Personal Details")
		for _, d := range details {
			addBody(d)
		}
		doc.AddParagraph()
	}

	if cv.Summary != "" {
		addHeading("Summary")
		addBody(cv.Summary)
		doc.AddParagraph()
	}

	if len(cv.Experience) > 0 {
		addHeading("Experience")
		for _, exp := range cv.Experience {
			addLine(fmt.Sprintf("%s at %s", exp.Title, exp.Company), docxBodySize, true)
			addBody(fmt.Sprintf("%s - %s", exp.StartDate, exp.EndDate))
			for _, r := range exp.Responsibilities {
				addBody("• " + r)
			}
			doc.AddParagraph()
		}
	}

	if len(cv.Education) > 0 {
		addHeading("Education")
		for _, edu := range cv.Education {
			addBody(fmt.Sprintf("%s from %s (%s)", edu.Degree, edu.Institution, edu.Year))
		}
		doc.AddParagraph()
	}

	if len(cv.Skills) > 0 {
		addHeading("Skills")
		addBody(strings.Join(cv.Skills, ", "))
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write docx: %w", err)
	}
	return buf.Bytes(), nil
}
