package model

// Taxonomy is the shape shared by every lookup entity
type Taxonomy struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"code"`
	Label       string `gorm:"type:varchar(255);not null" json:"label"`
	Description string `gorm:"type:text" json:"description"`
}

// Institution is an educational institution students attend
type Institution struct {
	Taxonomy
	City     string `gorm:"type:varchar(100)" json:"city"`
	Province string `gorm:"type:varchar(100)" json:"province"`
}

func (Institution) TableName() string { return "institutions" }

type PropertyType struct {
	Taxonomy
}

func (PropertyType) TableName() string { return "property_types" }

type PaymentMethod struct {
	Taxonomy
}

func (PaymentMethod) TableName() string { return "payment_methods" }

type Amenity struct {
	Taxonomy
}

func (Amenity) TableName() string { return "amenities" }

type FieldOfStudy struct {
	Taxonomy
}

func (FieldOfStudy) TableName() string { return "fields_of_study" }

type StudyLevel struct {
	Taxonomy
}

func (StudyLevel) TableName() string { return "study_levels" }

type EducationLevel struct {
	Taxonomy
}

func (EducationLevel) TableName() string { return "education_levels" }

// TaxonomyID exposes the primary key of any embedding lookup entity
func (t Taxonomy) TaxonomyID() uint { return t.ID }
