package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cv-formatter/internal/models"
	"cv-formatter/internal/repositories"
	"cv-formatter/internal/services"
)

type CVHandler struct {
	cvRepo      repositories.CVRepository
	uploadStore services.UploadStorage
	extractor   services.TextExtractor
	formatter   services.AIFormatter
	photos      services.PhotoPipeline
	maxFileSize int64
	aiTimeout   time.Duration
}

func NewCVHandler(
	cvRepo repositories.CVRepository,
	uploadStore services.UploadStorage,
	extractor services.TextExtractor,
	formatter services.AIFormatter,
	photos services.PhotoPipeline,
	maxFileSize int64,
	aiTimeout time.Duration,
) *CVHandler {
	return &CVHandler{
		cvRepo:      cvRepo,
		uploadStore: uploadStore,
		extractor:   extractor,
		formatter:   formatter,
		photos:      photos,
		maxFileSize: maxFileSize,
		aiTimeout:   aiTimeout,
	}
}

// HandleUpload handles POST /cv/upload: save the multipart file,
// extract its text, format it through the provider chain, enrich with
// a photo URL, persist, and return the record with the original text.
func (h *CVHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("cv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	upload, err := h.uploadStore.SaveUpload(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save uploaded file",
		})
	}

	// The extractor deletes the temp file; read the source bytes first
	// for the photo pipeline.
	sourceBytes, readErr := os.ReadFile(upload.Path)

	text, err := h.extractor.Extract(upload)
	if err != nil {
		return extractionError(c, err)
	}
	if readErr != nil {
		sourceBytes = nil
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.aiTimeout)
	defer cancel()

	cv, err := h.formatter.Format(ctx, text)
	if err != nil {
		log.Printf("❌ Formatting failed: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to format CV: " + err.Error(),
		})
	}

	cv.OriginalFileName = file.Filename
	cv.PhotoURL = h.photos.MaybeExtractPhoto(ctx, sourceBytes, cv.PhotoFound, upload.MimeType)

	if err := h.cvRepo.Create(cv); err != nil {
		log.Printf("❌ Failed to persist CV record: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save CV record",
		})
	}

	return c.JSON(models.UploadResponse{
		CVData:       cv,
		OriginalText: text,
	})
}

// HandleGetAll handles GET /cv/all, newest first.
func (h *CVHandler) HandleGetAll(c *fiber.Ctx) error {
	cvs, err := h.cvRepo.FindAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch CVs",
		})
	}
	return c.JSON(cvs)
}

// HandleGetByID handles GET /cv/:id.
func (h *CVHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid CV ID format",
		})
	}

	cv, err := h.cvRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "CV not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch CV",
		})
	}
	return c.JSON(cv)
}

// HandleUpdate handles PUT /cv/:id with a full or partial record body.
func (h *CVHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid CV ID format",
		})
	}

	var patch models.CVPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	cv, err := h.cvRepo.Update(id, &patch)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "CV not found",
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to update CV: " + err.Error(),
		})
	}
	return c.JSON(cv)
}

func extractionError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrUnsupportedFormat):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrInsufficientContent):
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
