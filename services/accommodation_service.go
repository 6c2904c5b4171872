package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"time"

	"github.com/mavhungutrezzy/umami-tube/dto"
	"github.com/mavhungutrezzy/umami-tube/model"
	"github.com/mavhungutrezzy/umami-tube/utils/validation"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListResult is one page of a filtered listing
type ListResult[T any] struct {
	Items []T
	Total int64
	Page  Page
}

// AccommodationService owns the accommodation aggregate
type AccommodationService struct {
	db        *gorm.DB
	validator *validation.Validator
	now       func() time.Time
}

// NewAccommodationService creates a new accommodation service
func NewAccommodationService(db *gorm.DB, v *validation.Validator) *AccommodationService {
	return &AccommodationService{db: db, validator: v, now: time.Now}
}

// WithClock replaces the clock that decides what "today" is
func (s *AccommodationService) WithClock(now func() time.Time) *AccommodationService {
	s.now = now
	return s
}

func preloadAccommodation(db *gorm.DB) *gorm.DB {
	return db.
		Preload("PropertyType").
		Preload("EducationalInstitutions", func(db *gorm.DB) *gorm.DB { return db.Order("institutions.label") }).
		Preload("Amenities", func(db *gorm.DB) *gorm.DB { return db.Order("amenities.label") }).
		Preload("AcceptedPayments", func(db *gorm.DB) *gorm.DB { return db.Order("payment_methods.label") })
}

// List returns available accommodations matching params, newest first by default
func (s *AccommodationService) List(ctx context.Context, params url.Values) (*ListResult[model.Accommodation], error) {
	query := s.db.WithContext(ctx).Model(&model.Accommodation{}).Where("is_available = ?", true)
	return s.list(query, params)
}

// ListOwned returns the actor's own accommodations, available or not
func (s *AccommodationService) ListOwned(ctx context.Context, actor Actor, params url.Values) (*ListResult[model.Accommodation], error) {
	query := s.db.WithContext(ctx).Model(&model.Accommodation{}).Where("owner_id = ?", actor.ID)
	return s.list(query, params)
}

func (s *AccommodationService) list(query *gorm.DB, params url.Values) (*ListResult[model.Accommodation], error) {
	query, err := ApplyFilters(query, AccommodationFilters, params)
	if err != nil {
		return nil, err
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count accommodations: %w", err)
	}

	page := ParsePage(params)
	var rows []model.Accommodation
	err = preloadAccommodation(AccommodationOrdering.Apply(query, params)).
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list accommodations: %w", err)
	}

	return &ListResult[model.Accommodation]{Items: rows, Total: total, Page: page}, nil
}

// Get returns any accommodation by slug
func (s *AccommodationService) Get(ctx context.Context, slug string) (*model.Accommodation, error) {
	return s.find(s.db.WithContext(ctx), slug)
}

// GetOwned returns an accommodation the actor may manage
func (s *AccommodationService) GetOwned(ctx context.Context, actor Actor, slug string) (*model.Accommodation, error) {
	acc, err := s.find(s.db.WithContext(ctx), slug)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(acc.OwnerID) {
		return nil, ErrPermissionDenied
	}
	return acc, nil
}

func (s *AccommodationService) find(db *gorm.DB, slug string) (*model.Accommodation, error) {
	var acc model.Accommodation
	if err := preloadAccommodation(db).Where("slug = ?", slug).First(&acc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch accommodation: %w", err)
	}
	return &acc, nil
}

// Create validates in, then stores it owned by actor with a slug derived from the title
func (s *AccommodationService) Create(ctx context.Context, actor Actor, in dto.AccommodationWrite) (*model.Accommodation, error) {
	validation.SanitizeStrings(&in)
	if actor.ID == 0 {
		return nil, ErrPermissionDenied
	}

	verr := &ValidationError{}
	if err := s.validator.ValidateStruct(in); err != nil {
		verr.Merge(validation.FormatValidationErrors(err))
	}
	s.checkInvariants(in, verr)

	var created model.Accommodation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		refs, err := resolveAccommodationRefs(tx, in, verr)
		if err != nil {
			return err
		}
		if err := verr.Err(); err != nil {
			return err
		}

		acc := model.Accommodation{
			OwnerID:            actor.ID,
			AdminFee:           decimal.Zero,
			MaxOccupants:       1,
			GenderRestriction:  model.GenderAny,
			IsAvailable:        true,
			MinimumLeasePeriod: 12,
		}
		applyAccommodation(&acc, in)

		slug, err := uniqueSlug(tx, &model.Accommodation{}, acc.Title, "accommodation")
		if err != nil {
			return err
		}
		acc.Slug = slug

		if err := tx.Omit(clause.Associations).Create(&acc).Error; err != nil {
			return fmt.Errorf("failed to create accommodation: %w", err)
		}
		if err := refs.replace(tx, &acc); err != nil {
			return err
		}

		found, err := s.find(tx, acc.Slug)
		if err != nil {
			return err
		}
		created = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update applies in to the accommodation behind slug. A partial update touches only
// supplied fields; a full update additionally requires every required field. Sets are
// replaced wholesale when supplied and left alone when omitted. The slug never changes.
func (s *AccommodationService) Update(ctx context.Context, actor Actor, slug string, in dto.AccommodationWrite, partial bool) (*model.Accommodation, error) {
	validation.SanitizeStrings(&in)
	var updated model.Accommodation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var acc model.Accommodation
		if err := tx.Where("slug = ?", slug).First(&acc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to fetch accommodation: %w", err)
		}
		if !actor.CanManage(acc.OwnerID) {
			return ErrPermissionDenied
		}

		verr := &ValidationError{}
		var shapeErr error
		if partial {
			shapeErr = s.validator.ValidatePartial(in)
		} else {
			shapeErr = s.validator.ValidateStruct(in)
		}
		if shapeErr != nil {
			verr.Merge(validation.FormatValidationErrors(shapeErr))
		}
		s.checkInvariants(in, verr)

		refs, err := resolveAccommodationRefs(tx, in, verr)
		if err != nil {
			return err
		}
		if err := verr.Err(); err != nil {
			return err
		}

		applyAccommodation(&acc, in)
		if err := tx.Omit(clause.Associations).Save(&acc).Error; err != nil {
			return fmt.Errorf("failed to update accommodation: %w", err)
		}
		if err := refs.replace(tx, &acc); err != nil {
			return err
		}
		if actor.ID != acc.OwnerID {
			if err := recordAudit(tx, actor, "accommodation_update", "accommodation", acc.Slug, ""); err != nil {
				return err
			}
		}

		found, err := s.find(tx, acc.Slug)
		if err != nil {
			return err
		}
		updated = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete permanently removes the accommodation and its join rows
func (s *AccommodationService) Delete(ctx context.Context, actor Actor, slug string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var acc model.Accommodation
		if err := tx.Where("slug = ?", slug).First(&acc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to fetch accommodation: %w", err)
		}
		if !actor.CanManage(acc.OwnerID) {
			return ErrPermissionDenied
		}

		// Join rows are removed with the listing
		if err := tx.Select("EducationalInstitutions", "Amenities", "AcceptedPayments").Delete(&acc).Error; err != nil {
			return fmt.Errorf("failed to delete accommodation: %w", err)
		}
		if actor.ID != acc.OwnerID {
			return recordAudit(tx, actor, "accommodation_delete", "accommodation", acc.Slug, "")
		}
		return nil
	})
}

// SetVerified marks a listing as checked by an operator
func (s *AccommodationService) SetVerified(ctx context.Context, actor Actor, slug string, verified bool) (*model.Accommodation, error) {
	if !actor.Operator {
		return nil, ErrPermissionDenied
	}

	var result model.Accommodation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Accommodation{}).Where("slug = ?", slug).Update("is_verified", verified)
		if res.Error != nil {
			return fmt.Errorf("failed to update verification: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := recordAudit(tx, actor, "accommodation_verify", "accommodation", slug, fmt.Sprintf("is_verified=%t", verified)); err != nil {
			return err
		}

		found, err := s.find(tx, slug)
		if err != nil {
			return err
		}
		result = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// checkInvariants reports rule violations for the supplied fields only
func (s *AccommodationService) checkInvariants(in dto.AccommodationWrite, verr *ValidationError) {
	if in.MonthlyRent != nil && !in.MonthlyRent.IsPositive() {
		verr.Add("monthly_rent", "Rent must be a positive value.")
	}
	if in.DepositAmount != nil && in.DepositAmount.IsNegative() {
		verr.Add("deposit_amount", "Deposit cannot be negative.")
	}
	if in.AdminFee != nil && in.AdminFee.IsNegative() {
		verr.Add("admin_fee", "Admin fee cannot be negative.")
	}
	if in.MaxOccupants != nil && *in.MaxOccupants < 1 {
		verr.Add("max_occupants", "At least one occupant is required.")
	}
	if in.AvailableFrom != nil {
		if day, err := ParseDate(*in.AvailableFrom); err == nil && day.Before(today(s.now())) {
			verr.Add("available_from", "Available date must be in the future.")
		}
	}

	// column precision: money is decimal(10,2), bathrooms decimal(3,1)
	checkPrecision(verr, "monthly_rent", in.MonthlyRent, 10, 2)
	checkPrecision(verr, "admin_fee", in.AdminFee, 10, 2)
	checkPrecision(verr, "deposit_amount", in.DepositAmount, 10, 2)
	checkPrecision(verr, "bathrooms", in.Bathrooms, 3, 1)
}

// checkPrecision rejects a value the column would overflow or silently round.
// Digits are counted as written, so "4500.100" has three decimal places.
func checkPrecision(verr *ValidationError, field string, d *decimal.Decimal, maxDigits, places int) {
	if d == nil {
		return
	}
	coefficient := len(new(big.Int).Abs(d.Coefficient()).String())
	exp := int(d.Exponent())

	var digits, decimals int
	switch {
	case exp >= 0:
		digits, decimals = coefficient+exp, 0
	case -exp > coefficient:
		digits, decimals = -exp, -exp
	default:
		digits, decimals = coefficient, -exp
	}

	switch {
	case digits > maxDigits:
		verr.Add(field, fmt.Sprintf("Ensure that there are no more than %d digits in total.", maxDigits))
	case decimals > places:
		verr.Add(field, fmt.Sprintf("Ensure that there are no more than %d decimal places.", places))
	case digits-decimals > maxDigits-places:
		verr.Add(field, fmt.Sprintf("Ensure that there are no more than %d digits before the decimal point.", maxDigits-places))
	}
}

// applyAccommodation copies every supplied scalar onto acc
func applyAccommodation(acc *model.Accommodation, in dto.AccommodationWrite) {
	setString(&acc.Title, in.Title)
	setString(&acc.Description, in.Description)
	if in.PropertyType != nil {
		acc.PropertyTypeID = *in.PropertyType
	}
	setString(&acc.Address, in.Address)
	setString(&acc.City, in.City)
	setString(&acc.Province, in.Province)
	setString(&acc.PostalCode, in.PostalCode)
	setDecimal(&acc.MonthlyRent, in.MonthlyRent)
	setDecimal(&acc.AdminFee, in.AdminFee)
	setDecimal(&acc.DepositAmount, in.DepositAmount)
	if in.MaxOccupants != nil {
		acc.MaxOccupants = *in.MaxOccupants
	}
	setDecimal(&acc.Bathrooms, in.Bathrooms)
	if in.Furnished != nil {
		acc.Furnished = *in.Furnished
	}
	setString(&acc.GenderRestriction, in.GenderRestriction)
	if in.IsAvailable != nil {
		acc.IsAvailable = *in.IsAvailable
	}
	if in.AvailableFrom != nil {
		if day, err := ParseDate(*in.AvailableFrom); err == nil {
			acc.AvailableFrom = datatypes.Date(day)
		}
	}
	if in.MinimumLeasePeriod != nil {
		acc.MinimumLeasePeriod = *in.MinimumLeasePeriod
	}
	setString(&acc.ContactPhone, in.ContactPhone)
	setString(&acc.ContactEmail, in.ContactEmail)
	setString(&acc.Whatsapp, in.Whatsapp)
	setString(&acc.Website, in.Website)
}

// accommodationRefs holds the resolved sets of a write; nil means "not supplied"
type accommodationRefs struct {
	institutions []model.Institution
	amenities    []model.Amenity
	payments     []model.PaymentMethod
}

func resolveAccommodationRefs(tx *gorm.DB, in dto.AccommodationWrite, verr *ValidationError) (*accommodationRefs, error) {
	refs := &accommodationRefs{}
	var err error

	if in.PropertyType != nil {
		if _, err = resolveTaxonomy[model.PropertyType](tx, "property_type", []uint{*in.PropertyType}, verr); err != nil {
			return nil, err
		}
	}
	if in.EducationalInstitutions != nil {
		if refs.institutions, err = resolveTaxonomy[model.Institution](tx, "educational_institutions", *in.EducationalInstitutions, verr); err != nil {
			return nil, err
		}
	}
	if in.Amenities != nil {
		if refs.amenities, err = resolveTaxonomy[model.Amenity](tx, "amenities", *in.Amenities, verr); err != nil {
			return nil, err
		}
	}
	if in.AcceptedPayments != nil {
		if refs.payments, err = resolveTaxonomy[model.PaymentMethod](tx, "accepted_payments", *in.AcceptedPayments, verr); err != nil {
			return nil, err
		}
	}
	return refs, nil
}

func (r *accommodationRefs) replace(tx *gorm.DB, acc *model.Accommodation) error {
	if r.institutions != nil {
		if err := replaceSet(tx, acc, "EducationalInstitutions", r.institutions); err != nil {
			return err
		}
	}
	if r.amenities != nil {
		if err := replaceSet(tx, acc, "Amenities", r.amenities); err != nil {
			return err
		}
	}
	if r.payments != nil {
		if err := replaceSet(tx, acc, "AcceptedPayments", r.payments); err != nil {
			return err
		}
	}
	return nil
}

// replaceSet makes rows the complete membership of one many-to-many relation
func replaceSet[T any](tx *gorm.DB, owner interface{}, relation string, rows []T) error {
	assoc := tx.Model(owner).Association(relation)
	var err error
	if len(rows) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(rows)
	}
	if err != nil {
		return fmt.Errorf("failed to replace %s: %w", relation, err)
	}
	return nil
}

func recordAudit(tx *gorm.DB, actor Actor, action, resource, slug, detail string) error {
	entry := model.AuditLog{
		ActorID:      actor.ID,
		Action:       action,
		Resource:     resource,
		ResourceSlug: slug,
		Detail:       detail,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record audit log: %w", err)
	}
	return nil
}

// today is the calendar date of now, as UTC midnight
func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setDecimal(dst *decimal.Decimal, src *decimal.Decimal) {
	if src != nil {
		*dst = *src
	}
}
