package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// UploadStorage persists an incoming multipart file to the request's
// temp location on disk. The extractor deletes it after reading.
type UploadStorage interface {
	SaveUpload(file *multipart.FileHeader) (UploadedFile, error)
	EnsureUploadDir() error
}

type uploadStorage struct {
	uploadPath string
}

func NewUploadStorage(uploadPath string) UploadStorage {
	return &uploadStorage{uploadPath: uploadPath}
}

func (s *uploadStorage) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

// SaveUpload writes the multipart file under a unique name and returns
// its on-disk descriptor.
func (s *uploadStorage) SaveUpload(file *multipart.FileHeader) (UploadedFile, error) {
	ext := filepath.Ext(file.Filename)
	uniqueFilename := fmt.Sprintf("cv_%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return UploadedFile{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return UploadedFile{}, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filePath)
		return UploadedFile{}, fmt.Errorf("failed to save file: %w", err)
	}

	return UploadedFile{
		Path:         filePath,
		OriginalName: file.Filename,
		MimeType:     file.Header.Get("Content-Type"),
	}, nil
}
