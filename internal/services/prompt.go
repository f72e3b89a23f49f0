package services

import "fmt"

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildFormatPrompt creates the single formatting prompt: target
// schema, mandatory normalization rules, and the raw extracted text.
func (pb *PromptBuilder) BuildFormatPrompt(cvText string) string {
	return fmt.Sprintf(`You are an expert CV formatter. Convert the raw CV text below into a single, final JSON object.

FORMATTING RULES (mandatory):
1. Job titles must be capitalized.
2. Rewrite passive or first-person duty descriptions into concise, active-voice bullet responsibilities.
3. All dates must use the "MMM YYYY" form (e.g. "Jan 2020"). If the month cannot be recovered, use the year alone.
4. Remove forbidden personal fields (age, number of dependents). Keep nationality, languages, date of birth, marital status, driving licence and smoker status in the header.
5. Sort experience reverse-chronologically, most recent first.
6. Set "photoFound" to true only if the document appears to contain a professional headshot photo.
7. Put any decorative header/footer text from the source document into the "meta" field.

TARGET JSON STRUCTURE:
{
  "photoFound": boolean,
  "header": { "name": "", "title": "", "email": "", "phone": "", "linkedin": "", "website": "", "nationality": "", "languages": "", "dateOfBirth": "", "maritalStatus": "", "drivingLicence": "", "smokerStatus": "" },
  "summary": "",
  "experience": [{ "title": "", "company": "", "startDate": "", "endDate": "", "responsibilities": [""] }],
  "education": [{ "degree": "", "institution": "", "year": "" }],
  "skills": [""],
  "meta": { "headerText": "", "footerText": "" }
}

RAW CV TEXT:
---
%s
---

Return ONLY the final, clean JSON object. No markdown, no explanation.`, cvText)
}
