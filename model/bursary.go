package model

import (
	"time"

	"gorm.io/datatypes"
)

// Bursary is a financial aid offer published by a provider
type Bursary struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	CreatedAt           time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
	Name                string          `gorm:"type:varchar(200);not null" json:"name"`
	Slug                string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Provider            string          `gorm:"type:varchar(200);not null" json:"provider"`
	Content             string          `gorm:"type:text;not null" json:"content"` // rich text, stored as-is
	ApplicationURL      string          `gorm:"type:varchar(200)" json:"application_url"`
	ApplicationDeadline *datatypes.Date `gorm:"index" json:"application_deadline"`
	AcademicYear        string          `gorm:"type:varchar(4);not null;index" json:"academic_year"`
	Status              string          `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	OwnerID             uint            `gorm:"not null;index" json:"owner_id"`

	// Relationships
	Owner           User             `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	FieldsOfStudy   []FieldOfStudy   `gorm:"many2many:bursary_fields_of_study;constraint:OnDelete:CASCADE" json:"fields_of_study"`
	EducationLevels []EducationLevel `gorm:"many2many:bursary_education_levels;constraint:OnDelete:CASCADE" json:"education_levels"`
	StudyLevels     []StudyLevel     `gorm:"many2many:bursary_study_levels;constraint:OnDelete:CASCADE" json:"study_levels"`
}

func (Bursary) TableName() string { return "bursaries" }
