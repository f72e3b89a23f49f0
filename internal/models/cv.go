package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Header holds the contact block of a CV. Personal details that the
// formatting rules allow (nationality, marital status, licence, smoker
// status) live here; forbidden ones (age, dependents) are stripped by
// the AI prompt and never stored.
type Header struct {
	Name           string `json:"name" validate:"required"`
	Title          string `json:"title"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone"`
	Linkedin       string `json:"linkedin"`
	Website        string `json:"website"`
	Nationality    string `json:"nationality"`
	Languages      string `json:"languages"`
	DateOfBirth    string `json:"dateOfBirth"`
	MaritalStatus  string `json:"maritalStatus"`
	DrivingLicence string `json:"drivingLicence"`
	SmokerStatus   string `json:"smokerStatus"`
}

type ExperienceItem struct {
	Title            string   `json:"title" validate:"required"`
	Company          string   `json:"company" validate:"required"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Responsibilities []string `json:"responsibilities"`
}

type EducationItem struct {
	Degree      string `json:"degree" validate:"required"`
	Institution string `json:"institution" validate:"required"`
	Year        string `json:"year"`
}

// Meta carries decorative header/footer text recovered from the source
// document.
type Meta struct {
	HeaderText string `json:"headerText"`
	FooterText string `json:"footerText"`
}

// CV is the persisted résumé record. Structured sections are stored as
// JSONB columns through gorm's json serializer.
type CV struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OriginalFileName string           `gorm:"type:text" json:"originalFileName"`
	Header           Header           `gorm:"type:jsonb;serializer:json" json:"header" validate:"required"`
	Summary          string           `gorm:"type:text" json:"summary"`
	Experience       []ExperienceItem `gorm:"type:jsonb;serializer:json" json:"experience" validate:"dive"`
	Education        []EducationItem  `gorm:"type:jsonb;serializer:json" json:"education" validate:"dive"`
	Skills           []string         `gorm:"type:jsonb;serializer:json" json:"skills"`
	PhotoURL         *string          `gorm:"type:text" json:"photoUrl"`
	PhotoFound       bool             `json:"photoFound"`
	Meta             Meta             `gorm:"type:jsonb;serializer:json" json:"meta"`
	UploadDate       time.Time        `gorm:"type:timestamp;default:now()" json:"uploadDate"`
	CreatedAt        time.Time        `gorm:"type:timestamp;default:now()" json:"createdAt"`
	UpdatedAt        time.Time        `gorm:"type:timestamp;default:now()" json:"updatedAt"`
}

func (CV) TableName() string {
	return "cvs"
}

var validate = validator.New()

// Normalize trims whitespace and repairs the slice invariants: section
// slices are never nil and responsibilities is always an array.
func (c *CV) Normalize() {
	c.Header.Name = strings.TrimSpace(c.Header.Name)
	c.Header.Title = strings.TrimSpace(c.Header.Title)
	c.Header.Email = strings.TrimSpace(c.Header.Email)
	c.Header.Phone = strings.TrimSpace(c.Header.Phone)
	c.Summary = strings.TrimSpace(c.Summary)

	if c.Experience == nil {
		c.Experience = []ExperienceItem{}
	}
	for i := range c.Experience {
		exp := &c.Experience[i]
		exp.Title = strings.TrimSpace(exp.Title)
		exp.Company = strings.TrimSpace(exp.Company)
		exp.StartDate = strings.TrimSpace(exp.StartDate)
		exp.EndDate = strings.TrimSpace(exp.EndDate)
		if exp.Responsibilities == nil {
			exp.Responsibilities = []string{}
		}
		for j := range exp.Responsibilities {
			exp.Responsibilities[j] = strings.TrimSpace(exp.Responsibilities[j])
		}
	}

	if c.Education == nil {
		c.Education = []EducationItem{}
	}
	for i := range c.Education {
		edu := &c.Education[i]
		edu.Degree = strings.TrimSpace(edu.Degree)
		edu.Institution = strings.TrimSpace(edu.Institution)
		edu.Year = strings.TrimSpace(edu.Year)
	}

	if c.Skills == nil {
		c.Skills = []string{}
	}
	for i := range c.Skills {
		c.Skills[i] = strings.TrimSpace(c.Skills[i])
	}
}

// Validate enforces the schema contract: header.name present, email
// well-formed when set, experience and education entries complete.
func (c *CV) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("cv record failed validation: %w", err)
	}
	return nil
}
