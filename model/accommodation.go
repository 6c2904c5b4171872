package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Accommodation is a student housing listing owned by a landlord
type Accommodation struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	Title              string          `gorm:"type:varchar(200);not null" json:"title"`
	Slug               string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description        string          `gorm:"type:text;not null" json:"description"`
	PropertyTypeID     uint            `gorm:"not null;index" json:"property_type_id"`
	Address            string          `gorm:"type:varchar(255);not null" json:"address"`
	City               string          `gorm:"type:varchar(100);not null;index:idx_accommodations_city_province" json:"city"`
	Province           string          `gorm:"type:varchar(100);not null;index:idx_accommodations_city_province" json:"province"`
	PostalCode         string          `gorm:"type:varchar(10);not null" json:"postal_code"`
	MonthlyRent        decimal.Decimal `gorm:"type:decimal(10,2);not null;index" json:"monthly_rent"`
	AdminFee           decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"admin_fee"`
	DepositAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"deposit_amount"`
	MaxOccupants       int             `gorm:"not null;default:1" json:"max_occupants"`
	Bathrooms          decimal.Decimal `gorm:"type:decimal(3,1);not null" json:"bathrooms"`
	Furnished          bool            `gorm:"not null;default:false" json:"furnished"`
	GenderRestriction  string          `gorm:"type:varchar(10);not null;default:'any'" json:"gender_restriction"`
	IsAvailable        bool            `gorm:"not null;index:idx_accommodations_availability" json:"is_available"`
	IsVerified         bool            `gorm:"not null;default:false" json:"is_verified"`
	AvailableFrom      datatypes.Date  `gorm:"not null;index:idx_accommodations_availability" json:"available_from"`
	MinimumLeasePeriod int             `gorm:"not null;default:12" json:"minimum_lease_period"` // months
	OwnerID            uint            `gorm:"not null;index" json:"owner_id"`
	ContactPhone       string          `gorm:"type:varchar(20);not null" json:"contact_phone"`
	ContactEmail       string          `gorm:"type:varchar(254);not null" json:"contact_email"`
	Whatsapp           string          `gorm:"type:varchar(20)" json:"whatsapp"`
	Website            string          `gorm:"type:varchar(200)" json:"website"`

	// Relationships
	PropertyType            PropertyType    `gorm:"foreignKey:PropertyTypeID;constraint:OnDelete:RESTRICT" json:"property_type"`
	Owner                   User            `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	EducationalInstitutions []Institution   `gorm:"many2many:accommodation_institutions;constraint:OnDelete:CASCADE" json:"educational_institutions"`
	Amenities               []Amenity       `gorm:"many2many:accommodation_amenities;constraint:OnDelete:CASCADE" json:"amenities"`
	AcceptedPayments        []PaymentMethod `gorm:"many2many:accommodation_payment_methods;constraint:OnDelete:CASCADE" json:"accepted_payments"`
}
