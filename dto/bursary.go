package dto

import (
	"time"

	"github.com/mavhungutrezzy/umami-tube/model"
)

// BursaryWrite is the request body of create and update
type BursaryWrite struct {
	Name                *string `json:"name" validate:"required,min=1,max=200"`
	Provider            *string `json:"provider" validate:"required,min=1,max=200"`
	Content             *string `json:"content" validate:"required,min=1"`
	ApplicationURL      *string `json:"application_url" validate:"omitempty,max=200,url|eq="`
	ApplicationDeadline *string `json:"application_deadline" validate:"omitempty,datetime=2006-01-02|eq="`
	AcademicYear        *string `json:"academic_year" validate:"required,len=4,numeric"`
	Status              *string `json:"status" validate:"omitempty,oneof=open closed upcoming"`
	FieldsOfStudy       *[]uint `json:"fields_of_study"`
	EducationLevels     *[]uint `json:"education_levels"`
	StudyLevels         *[]uint `json:"study_levels"`
}

// BursaryList is the summary row of the catalog
type BursaryList struct {
	ID                  uint          `json:"id"`
	Name                string        `json:"name"`
	Slug                string        `json:"slug"`
	Provider            string        `json:"provider"`
	ApplicationDeadline *string       `json:"application_deadline"`
	AcademicYear        string        `json:"academic_year"`
	Status              string        `json:"status"`
	FieldsOfStudy       []TaxonomyRef `json:"fields_of_study"`
	EducationLevels     []TaxonomyRef `json:"education_levels"`
	StudyLevels         []TaxonomyRef `json:"study_levels"`
}

// BursaryDetail adds the rich-text content and timestamps
type BursaryDetail struct {
	BursaryList
	Content        string    `json:"content"`
	ApplicationURL string    `json:"application_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BursaryWritten echoes the accepted input with the generated id and slug
type BursaryWritten struct {
	ID                  uint    `json:"id"`
	Slug                string  `json:"slug"`
	Name                string  `json:"name"`
	Provider            string  `json:"provider"`
	Content             string  `json:"content"`
	ApplicationURL      string  `json:"application_url"`
	ApplicationDeadline *string `json:"application_deadline"`
	AcademicYear        string  `json:"academic_year"`
	Status              string  `json:"status"`
	FieldsOfStudy       []uint  `json:"fields_of_study"`
	EducationLevels     []uint  `json:"education_levels"`
	StudyLevels         []uint  `json:"study_levels"`
}

func fieldOfStudyTaxonomy(f model.FieldOfStudy) model.Taxonomy     { return f.Taxonomy }
func educationLevelTaxonomy(e model.EducationLevel) model.Taxonomy { return e.Taxonomy }
func studyLevelTaxonomy(s model.StudyLevel) model.Taxonomy         { return s.Taxonomy }

func NewBursaryList(b model.Bursary) BursaryList {
	return BursaryList{
		ID:                  b.ID,
		Name:                b.Name,
		Slug:                b.Slug,
		Provider:            b.Provider,
		ApplicationDeadline: formatOptionalDate(b.ApplicationDeadline),
		AcademicYear:        b.AcademicYear,
		Status:              b.Status,
		FieldsOfStudy:       refsOf(b.FieldsOfStudy, fieldOfStudyTaxonomy),
		EducationLevels:     refsOf(b.EducationLevels, educationLevelTaxonomy),
		StudyLevels:         refsOf(b.StudyLevels, studyLevelTaxonomy),
	}
}

func NewBursaryLists(rows []model.Bursary) []BursaryList {
	out := make([]BursaryList, len(rows))
	for i, b := range rows {
		out[i] = NewBursaryList(b)
	}
	return out
}

func NewBursaryDetail(b model.Bursary) BursaryDetail {
	return BursaryDetail{
		BursaryList:    NewBursaryList(b),
		Content:        b.Content,
		ApplicationURL: b.ApplicationURL,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func NewBursaryWritten(b model.Bursary) BursaryWritten {
	return BursaryWritten{
		ID:                  b.ID,
		Slug:                b.Slug,
		Name:                b.Name,
		Provider:            b.Provider,
		Content:             b.Content,
		ApplicationURL:      b.ApplicationURL,
		ApplicationDeadline: formatOptionalDate(b.ApplicationDeadline),
		AcademicYear:        b.AcademicYear,
		Status:              b.Status,
		FieldsOfStudy:       idsOf(b.FieldsOfStudy, fieldOfStudyTaxonomy),
		EducationLevels:     idsOf(b.EducationLevels, educationLevelTaxonomy),
		StudyLevels:         idsOf(b.StudyLevels, studyLevelTaxonomy),
	}
}
