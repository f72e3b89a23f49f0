package repositories

import (
	"testing"

	"cv-formatter/internal/models"
)

func sampleCV() *models.CV {
	return &models.CV{
		Header: models.Header{
			Name:  "Jane Doe",
			Title: "Software Engineer",
			Email: "jane@example.com",
		},
		Summary: "Seasoned engineer.",
		Experience: []models.ExperienceItem{
			{Title: "Engineer", Company: "Acme", Responsibilities: []string{"Built services"}},
		},
		Education: []models.EducationItem{
			{Degree: "BSc", Institution: "MIT", Year: "2016"},
		},
		Skills: []string{"Go"},
	}
}

func TestApplyPatch_ReplacesOnlySuppliedFields(t *testing.T) {
	cv := sampleCV()
	skills := []string{"Cooking"}

	ApplyPatch(cv, &models.CVPatch{Skills: &skills})

	if len(cv.Skills) != 1 || cv.Skills[0] != "Cooking" {
		t.Fatalf("expected skills replaced with [Cooking], got %v", cv.Skills)
	}
	if cv.Header.Name != "Jane Doe" {
		t.Fatalf("expected header untouched, got %q", cv.Header.Name)
	}
	if cv.Summary != "Seasoned engineer." {
		t.Fatalf("expected summary untouched, got %q", cv.Summary)
	}
	if len(cv.Experience) != 1 {
		t.Fatalf("expected experience untouched, got %v", cv.Experience)
	}
}

func TestApplyPatch_FullReplace(t *testing.T) {
	cv := sampleCV()
	summary := "Rewritten."
	header := models.Header{Name: "John Roe", Email: "john@example.com"}

	ApplyPatch(cv, &models.CVPatch{Header: &header, Summary: &summary})

	if cv.Header.Name != "John Roe" {
		t.Fatalf("expected replaced header name, got %q", cv.Header.Name)
	}
	if cv.Header.Title != "" {
		t.Fatalf("expected header replaced wholesale, got title %q", cv.Header.Title)
	}
	if cv.Summary != "Rewritten." {
		t.Fatalf("expected replaced summary, got %q", cv.Summary)
	}
}

func TestApplyPatch_NilPatchIsNoop(t *testing.T) {
	cv := sampleCV()
	ApplyPatch(cv, nil)
	if cv.Header.Name != "Jane Doe" || len(cv.Skills) != 1 {
		t.Fatal("expected record unchanged for nil patch")
	}
}
