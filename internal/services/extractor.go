package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"code.sajari.com/docconv"
	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

// minTextChars is the smallest number of non-whitespace characters an
// extraction must yield to proceed to the formatter.
const minTextChars = 20

// UploadedFile describes the request-scoped temp file on disk.
type UploadedFile struct {
	Path         string
	OriginalName string
	MimeType     string
}

type TextExtractor interface {
	Extract(file UploadedFile) (string, error)
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

// Extract converts the uploaded document to plain text, dispatching
// strictly by extension/MIME. The temp file is removed on every exit
// path.
func (e *textExtractor) Extract(file UploadedFile) (string, error) {
	defer os.Remove(file.Path)

	ext := strings.ToLower(filepath.Ext(file.OriginalName))
	if ext == "" {
		ext = strings.ToLower(filepath.Ext(file.Path))
	}

	var text string
	var err error

	switch {
	case ext == ".pdf" || file.MimeType == "application/pdf":
		text, err = extractPDF(file.Path)
	case ext == ".docx" || ext == ".doc" || ext == ".rtf" || ext == ".odt":
		text, err = extractWithDocconv(file.Path)
	case ext == ".xlsx" || ext == ".xls":
		text, err = extractSpreadsheet(file.Path)
	case isImage(ext, file.MimeType):
		// OCR is best-effort; a garbled result still has to clear the
		// minimum-content bar below.
		text, err = extractWithDocconv(file.Path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, file.OriginalName)
	}

	if err != nil {
		return "", err
	}

	if countNonWhitespace(text) < minTextChars {
		return "", fmt.Errorf("%w: extracted %d characters", ErrInsufficientContent, countNonWhitespace(text))
	}

	return text, nil
}

func extractPDF(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest.
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return textBuilder.String(), nil
}

func extractWithDocconv(filePath string) (string, error) {
	res, err := docconv.ConvertPath(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to convert document: %w", err)
	}
	return res.Body, nil
}

// extractSpreadsheet flattens every sheet to text, sheet by sheet,
// cells tab-joined and rows newline-joined.
func extractSpreadsheet(filePath string) (string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		for _, row := range rows {
			textBuilder.WriteString(strings.Join(row, "\t"))
			textBuilder.WriteString("\n")
		}
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), nil
}

func isImage(ext, mimeType string) bool {
	if strings.HasPrefix(mimeType, "image/") {
		return true
	}
	switch ext {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp", ".webp":
		return true
	}
	return false
}

func countNonWhitespace(text string) int {
	count := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			count++
		}
	}
	return count
}
