package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cv-formatter/internal/models"
)

// ErrNotFound is returned when no record exists for the given id.
var ErrNotFound = errors.New("cv record not found")

type CVRepository interface {
	Create(cv *models.CV) error
	FindByID(id uuid.UUID) (*models.CV, error)
	FindAll() ([]models.CV, error)
	Update(id uuid.UUID, patch *models.CVPatch) (*models.CV, error)
}

type cvRepository struct {
	db *gorm.DB
}

func NewCVRepository(db *gorm.DB) CVRepository {
	return &cvRepository{db: db}
}

// Create implements CVRepository. The record must already satisfy the
// schema contract; the id and timestamps are assigned here.
func (r *cvRepository) Create(cv *models.CV) error {
	cv.Normalize()
	if err := cv.Validate(); err != nil {
		return err
	}

	if cv.ID == uuid.Nil {
		cv.ID = uuid.New()
	}
	now := time.Now()
	if cv.UploadDate.IsZero() {
		cv.UploadDate = now
	}
	cv.CreatedAt = now
	cv.UpdatedAt = now

	if err := r.db.Create(cv).Error; err != nil {
		return fmt.Errorf("failed to create cv record: %w", err)
	}
	return nil
}

// FindByID implements CVRepository.
func (r *cvRepository) FindByID(id uuid.UUID) (*models.CV, error) {
	var cv models.CV
	if err := r.db.Where("id = ?", id).First(&cv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cv record: %w", err)
	}
	return &cv, nil
}

// FindAll implements CVRepository, newest first.
func (r *cvRepository) FindAll() ([]models.CV, error) {
	var cvs []models.CV
	if err := r.db.Order("created_at DESC").Find(&cvs).Error; err != nil {
		return nil, fmt.Errorf("failed to list cv records: %w", err)
	}
	return cvs, nil
}

// Update implements CVRepository. Supplied patch fields replace the
// stored value wholesale; the merged record is re-validated before the
// write. Concurrent updates to the same id are last-writer-wins.
func (r *cvRepository) Update(id uuid.UUID, patch *models.CVPatch) (*models.CV, error) {
	cv, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	ApplyPatch(cv, patch)
	cv.Normalize()
	if err := cv.Validate(); err != nil {
		return nil, err
	}
	cv.UpdatedAt = time.Now()

	if err := r.db.Save(cv).Error; err != nil {
		return nil, fmt.Errorf("failed to update cv record: %w", err)
	}
	return cv, nil
}

// ApplyPatch copies the supplied patch fields onto the record.
func ApplyPatch(cv *models.CV, patch *models.CVPatch) {
	if patch == nil {
		return
	}
	if patch.OriginalFileName != nil {
		cv.OriginalFileName = *patch.OriginalFileName
	}
	if patch.Header != nil {
		cv.Header = *patch.Header
	}
	if patch.Summary != nil {
		cv.Summary = *patch.Summary
	}
	if patch.Experience != nil {
		cv.Experience = *patch.Experience
	}
	if patch.Education != nil {
		cv.Education = *patch.Education
	}
	if patch.Skills != nil {
		cv.Skills = *patch.Skills
	}
	if patch.PhotoURL != nil {
		cv.PhotoURL = patch.PhotoURL
	}
	if patch.PhotoFound != nil {
		cv.PhotoFound = *patch.PhotoFound
	}
	if patch.Meta != nil {
		cv.Meta = *patch.Meta
	}
}
