package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"cv-formatter/internal/models"
	"cv-formatter/internal/repositories"
	"cv-formatter/internal/services"
)

// stubRepo is an in-memory CVRepository.
type stubRepo struct {
	records map[uuid.UUID]*models.CV
}

func newStubRepo() *stubRepo {
	return &stubRepo{records: make(map[uuid.UUID]*models.CV)}
}

func (r *stubRepo) Create(cv *models.CV) error {
	cv.Normalize()
	if err := cv.Validate(); err != nil {
		return err
	}
	cv.ID = uuid.New()
	cv.CreatedAt = time.Now()
	cv.UpdatedAt = cv.CreatedAt
	r.records[cv.ID] = cv
	return nil
}

func (r *stubRepo) FindByID(id uuid.UUID) (*models.CV, error) {
	cv, ok := r.records[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *cv
	return &copied, nil
}

func (r *stubRepo) FindAll() ([]models.CV, error) {
	var out []models.CV
	for _, cv := range r.records {
		out = append(out, *cv)
	}
	return out, nil
}

func (r *stubRepo) Update(id uuid.UUID, patch *models.CVPatch) (*models.CV, error) {
	cv, ok := r.records[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	repositories.ApplyPatch(cv, patch)
	cv.Normalize()
	if err := cv.Validate(); err != nil {
		return nil, err
	}
	cv.UpdatedAt = time.Now()
	copied := *cv
	return &copied, nil
}

// stubFormatter returns a canned record regardless of input.
type stubFormatter struct {
	cv *models.CV
}

func (f *stubFormatter) Format(ctx context.Context, text string) (*models.CV, error) {
	copied := *f.cv
	return &copied, nil
}

// stubPhotos never finds a photo.
type stubPhotos struct{}

func (stubPhotos) MaybeExtractPhoto(ctx context.Context, source []byte, photoFound bool, mimeType string) *string {
	return nil
}

func formattedRecord() *models.CV {
	return &models.CV{
		Header: models.Header{
			Name:  "Jane Doe",
			Title: "Software Engineer",
			Email: "jane@example.com",
		},
		Experience: []models.ExperienceItem{},
		Education:  []models.EducationItem{},
		Skills:     []string{"Go"},
	}
}

func newTestApp(t *testing.T, repo repositories.CVRepository) *fiber.App {
	t.Helper()

	cvHandler := NewCVHandler(
		repo,
		services.NewUploadStorage(t.TempDir()),
		services.NewTextExtractor(),
		&stubFormatter{cv: formattedRecord()},
		stubPhotos{},
		10*1024*1024,
		30*time.Second,
	)
	exportHandler := NewExportHandler(repo)

	app := fiber.New()
	cv := app.Group("/cv")
	cv.Post("/upload", cvHandler.HandleUpload)
	cv.Get("/all", cvHandler.HandleGetAll)
	cv.Get("/:id", cvHandler.HandleGetByID)
	cv.Put("/:id", cvHandler.HandleUpdate)
	cv.Get("/:id/export", exportHandler.HandleExportText)
	cv.Get("/:id/export-docx", exportHandler.HandleExportDocx)
	cv.Get("/:id/export-pdf", exportHandler.HandleExportPdf)
	return app
}

func spreadsheetFixture(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "Jane Doe, Software Engineer, jane@example.com")
	f.SetCellValue("Sheet1", "A2", "Ten years of backend engineering experience.")
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("failed to build fixture spreadsheet: %v", err)
	}
	f.Close()
	return buf.Bytes()
}

func multipartBody(t *testing.T, field, filename string, content []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	part.Write(content)
	w.Close()
	return &buf, w.FormDataContentType()
}

func TestHandleUpload_EndToEnd(t *testing.T) {
	repo := newStubRepo()
	app := newTestApp(t, repo)

	body, contentType := multipartBody(t, "cv", "resume.xlsx", spreadsheetFixture(t))
	req := httptest.NewRequest("POST", "/cv/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, 10000)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, raw)
	}

	var result models.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.CVData.Header.Name != "Jane Doe" {
		t.Fatalf("expected formatted record, got %q", result.CVData.Header.Name)
	}
	if result.CVData.OriginalFileName != "resume.xlsx" {
		t.Fatalf("expected original filename recorded, got %q", result.CVData.OriginalFileName)
	}
	if !strings.Contains(result.OriginalText, "Jane Doe") {
		t.Fatalf("expected original text in response, got %q", result.OriginalText)
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected one persisted record, got %d", len(repo.records))
	}
}

func TestHandleUpload_NoFile(t *testing.T) {
	app := newTestApp(t, newStubRepo())

	body, contentType := multipartBody(t, "other", "resume.xlsx", []byte("x"))
	req := httptest.NewRequest("POST", "/cv/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for missing file, got %d", resp.StatusCode)
	}
}

func TestHandleUpload_UnsupportedFormat(t *testing.T) {
	app := newTestApp(t, newStubRepo())

	body, contentType := multipartBody(t, "cv", "resume.foo", []byte("some bytes"))
	req := httptest.NewRequest("POST", "/cv/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported format, got %d", resp.StatusCode)
	}
}

func TestHandleGetByID_NotFound(t *testing.T) {
	app := newTestApp(t, newStubRepo())

	req := httptest.NewRequest("GET", "/cv/"+uuid.NewString(), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHandleUpdate_PatchSkills(t *testing.T) {
	repo := newStubRepo()
	app := newTestApp(t, repo)

	seed := formattedRecord()
	if err := repo.Create(seed); err != nil {
		t.Fatalf("failed to seed record: %v", err)
	}

	req := httptest.NewRequest("PUT", "/cv/"+seed.ID.String(),
		strings.NewReader(`{"skills": ["Cooking"]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var updated models.CV
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(updated.Skills) != 1 || updated.Skills[0] != "Cooking" {
		t.Fatalf("expected skills [Cooking], got %v", updated.Skills)
	}
	if updated.Header.Name != "Jane Doe" {
		t.Fatalf("expected other fields unchanged, got name %q", updated.Header.Name)
	}
}

func TestHandleUpdate_NotFoundDoesNotCreate(t *testing.T) {
	repo := newStubRepo()
	app := newTestApp(t, repo)

	req := httptest.NewRequest("PUT", "/cv/"+uuid.NewString(),
		strings.NewReader(`{"skills": ["Cooking"]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if len(repo.records) != 0 {
		t.Fatal("expected no record created by failed update")
	}
}

func TestHandleExportText(t *testing.T) {
	repo := newStubRepo()
	app := newTestApp(t, repo)

	seed := formattedRecord()
	if err := repo.Create(seed); err != nil {
		t.Fatalf("failed to seed record: %v", err)
	}

	req := httptest.NewRequest("GET", "/cv/"+seed.ID.String()+"/export", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	disposition := resp.Header.Get(fiber.HeaderContentDisposition)
	if !strings.Contains(disposition, "Jane_Doe_CV.txt") {
		t.Fatalf("unexpected content disposition %q", disposition)
	}

	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), "Jane Doe") {
		t.Fatalf("expected exported text to contain the name, got:\n%s", raw)
	}
}

func TestHandleExportPdf(t *testing.T) {
	repo := newStubRepo()
	app := newTestApp(t, repo)

	seed := formattedRecord()
	if err := repo.Create(seed); err != nil {
		t.Fatalf("failed to seed record: %v", err)
	}

	req := httptest.NewRequest("GET", "/cv/"+seed.ID.String()+"/export-pdf", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Fatal("expected a PDF body")
	}
}

func TestHandleExportDocx_NotFound(t *testing.T) {
	app := newTestApp(t, newStubRepo())

	req := httptest.NewRequest("GET", "/cv/"+uuid.NewString()+"/export-docx", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
