package services

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PhotoPipeline extracts an embedded headshot from the source PDF and
// uploads it to object storage. It is strictly best-effort: any
// failure degrades to a nil URL and never blocks persistence of the
// textual record.
type PhotoPipeline interface {
	MaybeExtractPhoto(ctx context.Context, source []byte, photoFound bool, mimeType string) *string
}

type photoPipeline struct {
	storage ObjectStorage
}

func NewPhotoPipeline(storage ObjectStorage) PhotoPipeline {
	return &photoPipeline{storage: storage}
}

// MaybeExtractPhoto implements PhotoPipeline. A nil return means
// either "no photo expected" (photoFound false) or "photo expected but
// not obtained" — the record's photoFound flag disambiguates.
func (p *photoPipeline) MaybeExtractPhoto(ctx context.Context, source []byte, photoFound bool, mimeType string) *string {
	if !photoFound || mimeType != "application/pdf" {
		return nil
	}
	if !p.storage.Configured() {
		log.Println("⚠️  Object storage not configured, skipping photo upload")
		return nil
	}

	url, err := p.extractAndUpload(ctx, source)
	if err != nil {
		log.Printf("⚠️  Photo extraction failed: %v\n", err)
		return nil
	}

	log.Printf("✅ Photo uploaded: %s\n", url)
	return &url
}

// extractAndUpload pulls the first image off page 1 and pushes it to
// storage under a unique name.
func (p *photoPipeline) extractAndUpload(ctx context.Context, source []byte) (string, error) {
	images, err := api.ExtractImagesRaw(bytes.NewReader(source), []string{"1"}, model.NewDefaultConfiguration())
	if err != nil {
		return "", fmt.Errorf("failed to extract images: %w", err)
	}

	img, ok := firstImage(images)
	if !ok {
		return "", fmt.Errorf("no image found on first page")
	}

	ext := img.FileType
	if ext == "" {
		ext = "png"
	}
	path := fmt.Sprintf("%s.%s", uuid.New().String(), ext)

	url, err := p.storage.Upload(ctx, path, img, "image/"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}
	return url, nil
}

func firstImage(pages []map[int]model.Image) (model.Image, bool) {
	for _, page := range pages {
		for _, img := range page {
			return img, true
		}
	}
	return model.Image{}, false
}
