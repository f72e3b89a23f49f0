package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"cv-formatter/internal/models"
	"cv-formatter/internal/repositories"
	"cv-formatter/internal/services/export"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

type ExportHandler struct {
	cvRepo repositories.CVRepository
}

func NewExportHandler(cvRepo repositories.CVRepository) *ExportHandler {
	return &ExportHandler{cvRepo: cvRepo}
}

// HandleExportText handles GET /cv/:id/export.
func (h *ExportHandler) HandleExportText(c *fiber.Ctx) error {
	cv, done := h.fetch(c)
	if done {
		return nil
	}
	return sendAttachment(c, export.RenderText(cv), export.Filename(cv, ".txt"), "text/plain")
}

// HandleExportDocx handles GET /cv/:id/export-docx.
func (h *ExportHandler) HandleExportDocx(c *fiber.Ctx) error {
	cv, done := h.fetch(c)
	if done {
		return nil
	}

	out, err := export.RenderDocx(cv)
	if err != nil {
		log.Printf("❌ DOCX export failed: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export DOCX",
		})
	}
	return sendAttachment(c, out, export.Filename(cv, ".docx"), docxContentType)
}

// HandleExportPdf handles GET /cv/:id/export-pdf.
func (h *ExportHandler) HandleExportPdf(c *fiber.Ctx) error {
	cv, done := h.fetch(c)
	if done {
		return nil
	}

	out, err := export.RenderPdf(cv)
	if err != nil {
		log.Printf("❌ PDF export failed: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to export PDF",
		})
	}
	return sendAttachment(c, out, export.Filename(cv, ".pdf"), "application/pdf")
}

// fetch loads the record for the :id param, writing the error response
// itself. done is true when a response has already been sent.
func (h *ExportHandler) fetch(c *fiber.Ctx) (cv *models.CV, done bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid CV ID format",
		})
		return nil, true
	}

	cv, err = h.cvRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "CV not found",
			})
		} else {
			c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to fetch CV",
			})
		}
		return nil, true
	}
	return cv, false
}

// sendAttachment writes a fully rendered body; nothing is streamed so
// a render failure can never leave a truncated file on the wire.
func sendAttachment(c *fiber.Ctx, body []byte, filename, contentType string) error {
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(body)
}
