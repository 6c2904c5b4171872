package dto

import (
	"time"

	"github.com/mavhungutrezzy/umami-tube/model"
	"github.com/shopspring/decimal"
)

// AccommodationWrite is the request body of create and update.
// Pointer fields let a partial update tell an absent field from a zero value.
type AccommodationWrite struct {
	Title                   *string          `json:"title" validate:"required,min=1,max=200"`
	Description             *string          `json:"description" validate:"required,min=1"`
	PropertyType            *uint            `json:"property_type" validate:"required"`
	EducationalInstitutions *[]uint          `json:"educational_institutions"`
	Address                 *string          `json:"address" validate:"required,min=1,max=255"`
	City                    *string          `json:"city" validate:"required,min=1,max=100"`
	Province                *string          `json:"province" validate:"required,min=1,max=100"`
	PostalCode              *string          `json:"postal_code" validate:"required,min=1,max=10"`
	MonthlyRent             *decimal.Decimal `json:"monthly_rent" validate:"required"`
	AdminFee                *decimal.Decimal `json:"admin_fee"`
	DepositAmount           *decimal.Decimal `json:"deposit_amount" validate:"required"`
	MaxOccupants            *int             `json:"max_occupants"`
	Bathrooms               *decimal.Decimal `json:"bathrooms" validate:"required,gte=0,lte=99"`
	Furnished               *bool            `json:"furnished"`
	GenderRestriction       *string          `json:"gender_restriction" validate:"omitempty,oneof=any male female"`
	IsAvailable             *bool            `json:"is_available"`
	AvailableFrom           *string          `json:"available_from" validate:"required,datetime=2006-01-02"`
	MinimumLeasePeriod      *int             `json:"minimum_lease_period" validate:"omitempty,gte=1,lte=120"`
	Amenities               *[]uint          `json:"amenities"`
	AcceptedPayments        *[]uint          `json:"accepted_payments"`
	ContactPhone            *string          `json:"contact_phone" validate:"required,min=1,max=20"`
	ContactEmail            *string          `json:"contact_email" validate:"required,email,max=254"`
	Whatsapp                *string          `json:"whatsapp" validate:"omitempty,max=20"`
	Website                 *string          `json:"website" validate:"omitempty,max=200,url|eq="`
}

// AccommodationList is the summary row of the catalog
type AccommodationList struct {
	ID                      uint             `json:"id"`
	Title                   string           `json:"title"`
	Slug                    string           `json:"slug"`
	PropertyType            TaxonomyRef      `json:"property_type"`
	EducationalInstitutions []InstitutionRef `json:"educational_institutions"`
	City                    string           `json:"city"`
	Province                string           `json:"province"`
	MonthlyRent             string           `json:"monthly_rent"`
	MaxOccupants            int              `json:"max_occupants"`
	Bathrooms               string           `json:"bathrooms"`
	Furnished               bool             `json:"furnished"`
	GenderRestriction       string           `json:"gender_restriction"`
	IsAvailable             bool             `json:"is_available"`
	IsVerified              bool             `json:"is_verified"`
	AvailableFrom           string           `json:"available_from"`
	Amenities               []TaxonomyRef    `json:"amenities"`
	CreatedAt               time.Time        `json:"created_at"`
}

// AccommodationDetail carries every field including contact details
type AccommodationDetail struct {
	ID                      uint             `json:"id"`
	Title                   string           `json:"title"`
	Slug                    string           `json:"slug"`
	Description             string           `json:"description"`
	PropertyType            TaxonomyRef      `json:"property_type"`
	EducationalInstitutions []InstitutionRef `json:"educational_institutions"`
	Address                 string           `json:"address"`
	City                    string           `json:"city"`
	Province                string           `json:"province"`
	PostalCode              string           `json:"postal_code"`
	MonthlyRent             string           `json:"monthly_rent"`
	AdminFee                string           `json:"admin_fee"`
	DepositAmount           string           `json:"deposit_amount"`
	MaxOccupants            int              `json:"max_occupants"`
	Bathrooms               string           `json:"bathrooms"`
	Furnished               bool             `json:"furnished"`
	GenderRestriction       string           `json:"gender_restriction"`
	IsAvailable             bool             `json:"is_available"`
	IsVerified              bool             `json:"is_verified"`
	AvailableFrom           string           `json:"available_from"`
	MinimumLeasePeriod      int              `json:"minimum_lease_period"`
	Amenities               []TaxonomyRef    `json:"amenities"`
	AcceptedPayments        []TaxonomyRef    `json:"accepted_payments"`
	ContactPhone            string           `json:"contact_phone"`
	ContactEmail            string           `json:"contact_email"`
	Whatsapp                string           `json:"whatsapp"`
	Website                 string           `json:"website"`
	CreatedAt               time.Time        `json:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at"`
}

// AccommodationWritten echoes the accepted input with the generated id and slug.
// Sets are returned as ids, the way they were submitted.
type AccommodationWritten struct {
	ID                      uint   `json:"id"`
	Slug                    string `json:"slug"`
	Title                   string `json:"title"`
	Description             string `json:"description"`
	PropertyType            uint   `json:"property_type"`
	EducationalInstitutions []uint `json:"educational_institutions"`
	Address                 string `json:"address"`
	City                    string `json:"city"`
	Province                string `json:"province"`
	PostalCode              string `json:"postal_code"`
	MonthlyRent             string `json:"monthly_rent"`
	AdminFee                string `json:"admin_fee"`
	DepositAmount           string `json:"deposit_amount"`
	MaxOccupants            int    `json:"max_occupants"`
	Bathrooms               string `json:"bathrooms"`
	Furnished               bool   `json:"furnished"`
	GenderRestriction       string `json:"gender_restriction"`
	IsAvailable             bool   `json:"is_available"`
	AvailableFrom           string `json:"available_from"`
	MinimumLeasePeriod      int    `json:"minimum_lease_period"`
	Amenities               []uint `json:"amenities"`
	AcceptedPayments        []uint `json:"accepted_payments"`
	ContactPhone            string `json:"contact_phone"`
	ContactEmail            string `json:"contact_email"`
	Whatsapp                string `json:"whatsapp"`
	Website                 string `json:"website"`
}

func institutionTaxonomy(i model.Institution) model.Taxonomy     { return i.Taxonomy }
func amenityTaxonomy(a model.Amenity) model.Taxonomy             { return a.Taxonomy }
func paymentMethodTaxonomy(p model.PaymentMethod) model.Taxonomy { return p.Taxonomy }

func NewAccommodationList(a model.Accommodation) AccommodationList {
	return AccommodationList{
		ID:                      a.ID,
		Title:                   a.Title,
		Slug:                    a.Slug,
		PropertyType:            refOf(a.PropertyType.Taxonomy),
		EducationalInstitutions: institutionRefs(a.EducationalInstitutions),
		City:                    a.City,
		Province:                a.Province,
		MonthlyRent:             a.MonthlyRent.StringFixed(2),
		MaxOccupants:            a.MaxOccupants,
		Bathrooms:               a.Bathrooms.StringFixed(1),
		Furnished:               a.Furnished,
		GenderRestriction:       a.GenderRestriction,
		IsAvailable:             a.IsAvailable,
		IsVerified:              a.IsVerified,
		AvailableFrom:           formatDate(a.AvailableFrom),
		Amenities:               refsOf(a.Amenities, amenityTaxonomy),
		CreatedAt:               a.CreatedAt,
	}
}

func NewAccommodationLists(rows []model.Accommodation) []AccommodationList {
	out := make([]AccommodationList, len(rows))
	for i, a := range rows {
		out[i] = NewAccommodationList(a)
	}
	return out
}

func NewAccommodationDetail(a model.Accommodation) AccommodationDetail {
	return AccommodationDetail{
		ID:                      a.ID,
		Title:                   a.Title,
		Slug:                    a.Slug,
		Description:             a.Description,
		PropertyType:            refOf(a.PropertyType.Taxonomy),
		EducationalInstitutions: institutionRefs(a.EducationalInstitutions),
		Address:                 a.Address,
		City:                    a.City,
		Province:                a.Province,
		PostalCode:              a.PostalCode,
		MonthlyRent:             a.MonthlyRent.StringFixed(2),
		AdminFee:                a.AdminFee.StringFixed(2),
		DepositAmount:           a.DepositAmount.StringFixed(2),
		MaxOccupants:            a.MaxOccupants,
		Bathrooms:               a.Bathrooms.StringFixed(1),
		Furnished:               a.Furnished,
		GenderRestriction:       a.GenderRestriction,
		IsAvailable:             a.IsAvailable,
		IsVerified:              a.IsVerified,
		AvailableFrom:           formatDate(a.AvailableFrom),
		MinimumLeasePeriod:      a.MinimumLeasePeriod,
		Amenities:               refsOf(a.Amenities, amenityTaxonomy),
		AcceptedPayments:        refsOf(a.AcceptedPayments, paymentMethodTaxonomy),
		ContactPhone:            a.ContactPhone,
		ContactEmail:            a.ContactEmail,
		Whatsapp:                a.Whatsapp,
		Website:                 a.Website,
		CreatedAt:               a.CreatedAt,
		UpdatedAt:               a.UpdatedAt,
	}
}

func NewAccommodationWritten(a model.Accommodation) AccommodationWritten {
	return AccommodationWritten{
		ID:                      a.ID,
		Slug:                    a.Slug,
		Title:                   a.Title,
		Description:             a.Description,
		PropertyType:            a.PropertyTypeID,
		EducationalInstitutions: idsOf(a.EducationalInstitutions, institutionTaxonomy),
		Address:                 a.Address,
		City:                    a.City,
		Province:                a.Province,
		PostalCode:              a.PostalCode,
		MonthlyRent:             a.MonthlyRent.StringFixed(2),
		AdminFee:                a.AdminFee.StringFixed(2),
		DepositAmount:           a.DepositAmount.StringFixed(2),
		MaxOccupants:            a.MaxOccupants,
		Bathrooms:               a.Bathrooms.StringFixed(1),
		Furnished:               a.Furnished,
		GenderRestriction:       a.GenderRestriction,
		IsAvailable:             a.IsAvailable,
		AvailableFrom:           formatDate(a.AvailableFrom),
		MinimumLeasePeriod:      a.MinimumLeasePeriod,
		Amenities:               idsOf(a.Amenities, amenityTaxonomy),
		AcceptedPayments:        idsOf(a.AcceptedPayments, paymentMethodTaxonomy),
		ContactPhone:            a.ContactPhone,
		ContactEmail:            a.ContactEmail,
		Whatsapp:                a.Whatsapp,
		Website:                 a.Website,
	}
}
