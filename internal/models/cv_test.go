package models

import "testing"

func validRecord() *CV {
	return &CV{
		Header: Header{Name: "Jane Doe", Title: "Software Engineer", Email: "jane@example.com"},
		Experience: []ExperienceItem{
			{Title: "Engineer", Company: "Acme", StartDate: "Jan 2020", EndDate: "Present"},
		},
		Education: []EducationItem{
			{Degree: "BSc Computer Science", Institution: "MIT", Year: "2016"},
		},
		Skills: []string{"Go", "SQL"},
	}
}

func TestNormalize_RepairsNilSlices(t *testing.T) {
	cv := &CV{Header: Header{Name: "  Jane Doe "}}
	cv.Experience = []ExperienceItem{{Title: "Engineer", Company: "Acme"}}

	cv.Normalize()

	if cv.Header.Name != "Jane Doe" {
		t.Fatalf("expected trimmed name, got %q", cv.Header.Name)
	}
	if cv.Experience[0].Responsibilities == nil {
		t.Fatal("expected responsibilities to be repaired to an empty slice")
	}
	if cv.Education == nil || cv.Skills == nil {
		t.Fatal("expected education and skills to be non-nil after normalize")
	}
}

func TestValidate_AcceptsValidRecord(t *testing.T) {
	cv := validRecord()
	cv.Normalize()
	if err := cv.Validate(); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}
}

func TestValidate_RejectsMissingName(t *testing.T) {
	cv := validRecord()
	cv.Header.Name = ""
	if err := cv.Validate(); err == nil {
		t.Fatal("expected validation error for missing header.name")
	}
}

func TestValidate_RejectsBadEmail(t *testing.T) {
	cv := validRecord()
	cv.Header.Email = "not-an-address"
	if err := cv.Validate(); err == nil {
		t.Fatal("expected validation error for malformed email")
	}
}

func TestValidate_AllowsEmptyEmail(t *testing.T) {
	cv := validRecord()
	cv.Header.Email = ""
	if err := cv.Validate(); err != nil {
		t.Fatalf("expected empty email to pass, got %v", err)
	}
}

func TestValidate_RejectsExperienceWithoutCompany(t *testing.T) {
	cv := validRecord()
	cv.Experience[0].Company = ""
	if err := cv.Validate(); err == nil {
		t.Fatal("expected validation error for experience without company")
	}
}
