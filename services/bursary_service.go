package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/mavhungutrezzy/umami-tube/dto"
	"github.com/mavhungutrezzy/umami-tube/model"
	"github.com/mavhungutrezzy/umami-tube/utils/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BursaryService owns the bursary aggregate
type BursaryService struct {
	db        *gorm.DB
	validator *validation.Validator
	now       func() time.Time
}

// NewBursaryService creates a new bursary service
func NewBursaryService(db *gorm.DB, v *validation.Validator) *BursaryService {
	return &BursaryService{db: db, validator: v, now: time.Now}
}

// WithClock replaces the clock that decides what "today" is
func (s *BursaryService) WithClock(now func() time.Time) *BursaryService {
	s.now = now
	return s
}

func preloadBursary(db *gorm.DB) *gorm.DB {
	return db.
		Preload("FieldsOfStudy", func(db *gorm.DB) *gorm.DB { return db.Order("fields_of_study.label") }).
		Preload("EducationLevels", func(db *gorm.DB) *gorm.DB { return db.Order("education_levels.label") }).
		Preload("StudyLevels", func(db *gorm.DB) *gorm.DB { return db.Order("study_levels.label") })
}

// List returns bursaries matching params, newest first by default
func (s *BursaryService) List(ctx context.Context, params url.Values) (*ListResult[model.Bursary], error) {
	return s.list(s.db.WithContext(ctx).Model(&model.Bursary{}), params)
}

// ListOwned returns the actor's own bursaries
func (s *BursaryService) ListOwned(ctx context.Context, actor Actor, params url.Values) (*ListResult[model.Bursary], error) {
	return s.list(s.db.WithContext(ctx).Model(&model.Bursary{}).Where("owner_id = ?", actor.ID), params)
}

func (s *BursaryService) list(query *gorm.DB, params url.Values) (*ListResult[model.Bursary], error) {
	query, err := ApplyFilters(query, BursaryFilters, params)
	if err != nil {
		return nil, err
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count bursaries: %w", err)
	}

	page := ParsePage(params)
	var rows []model.Bursary
	err = preloadBursary(BursaryOrdering.Apply(query, params)).
		Limit(page.Size).
		Offset(page.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bursaries: %w", err)
	}

	return &ListResult[model.Bursary]{Items: rows, Total: total, Page: page}, nil
}

// Get returns any bursary by slug
func (s *BursaryService) Get(ctx context.Context, slug string) (*model.Bursary, error) {
	return s.find(s.db.WithContext(ctx), slug)
}

// GetOwned returns a bursary the actor may manage
func (s *BursaryService) GetOwned(ctx context.Context, actor Actor, slug string) (*model.Bursary, error) {
	b, err := s.find(s.db.WithContext(ctx), slug)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(b.OwnerID) {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *BursaryService) find(db *gorm.DB, slug string) (*model.Bursary, error) {
	var b model.Bursary
	if err := preloadBursary(db).Where("slug = ?", slug).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch bursary: %w", err)
	}
	return &b, nil
}

// Create validates in, then stores it owned by actor with a slug derived from the name
func (s *BursaryService) Create(ctx context.Context, actor Actor, in dto.BursaryWrite) (*model.Bursary, error) {
	validation.SanitizeStrings(&in)
	if actor.ID == 0 {
		return nil, ErrPermissionDenied
	}

	verr := &ValidationError{}
	if err := s.validator.ValidateStruct(in); err != nil {
		verr.Merge(validation.FormatValidationErrors(err))
	}
	s.checkInvariants(in, verr)

	var created model.Bursary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		refs, err := resolveBursaryRefs(tx, in, verr)
		if err != nil {
			return err
		}
		if err := verr.Err(); err != nil {
			return err
		}

		b := model.Bursary{
			OwnerID: actor.ID,
			Status:  model.BursaryStatusOpen,
		}
		applyBursary(&b, in)

		slug, err := uniqueSlug(tx, &model.Bursary{}, b.Name, "bursary")
		if err != nil {
			return err
		}
		b.Slug = slug

		if err := tx.Omit(clause.Associations).Create(&b).Error; err != nil {
			return fmt.Errorf("failed to create bursary: %w", err)
		}
		if err := refs.replace(tx, &b); err != nil {
			return err
		}

		found, err := s.find(tx, b.Slug)
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

// Update applies in to the bursary behind slug; see AccommodationService.Update
func (s *BursaryService) Update(ctx context.Context, actor Actor, slug string, in dto.BursaryWrite, partial bool) (*model.Bursary, error) {
	validation.SanitizeStrings(&in)
	var updated model.Bursary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b model.Bursary
		if err := tx.Where("slug = ?", slug).First(&b).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to fetch bursary: %w", err)
		}
		if !actor.CanManage(b.OwnerID) {
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

		refs, err := resolveBursaryRefs(tx, in, verr)
		if err != nil {
			return err
		}
		if err := verr.Err(); err != nil {
			return err
		}

		applyBursary(&b, in)
		if err := tx.Omit(clause.Associations).Save(&b).Error; err != nil {
			return fmt.Errorf("failed to update bursary: %w", err)
		}
		if err := refs.replace(tx, &b); err != nil {
			return err
		}
		if actor.ID != b.OwnerID {
			if err := recordAudit(tx, actor, "bursary_update", "bursary", b.Slug, ""); err != nil {
				return err
			}
		}

		found, err := s.find(tx, b.Slug)
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

// Delete permanently removes the bursary and its join rows
func (s *BursaryService) Delete(ctx context.Context, actor Actor, slug string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b model.Bursary
		if err := tx.Where("slug = ?", slug).First(&b).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to fetch bursary: %w", err)
		}
		if !actor.CanManage(b.OwnerID) {
			return ErrPermissionDenied
		}

		if err := tx.Select("FieldsOfStudy", "EducationLevels", "StudyLevels").Delete(&b).Error; err != nil {
			return fmt.Errorf("failed to delete bursary: %w", err)
		}
		if actor.ID != b.OwnerID {
			return recordAudit(tx, actor, "bursary_delete", "bursary", b.Slug, "")
		}
		return nil
	})
}

func (s *BursaryService) checkInvariants(in dto.BursaryWrite, verr *ValidationError) {
	if in.ApplicationDeadline != nil && *in.ApplicationDeadline != "" {
		if day, err := ParseDate(*in.ApplicationDeadline); err == nil && day.Before(today(s.now())) {
			verr.Add("application_deadline", "Application deadline cannot be in the past")
		}
	}
}

func applyBursary(b *model.Bursary, in dto.BursaryWrite) {
	setString(&b.Name, in.Name)
	setString(&b.Provider, in.Provider)
	setString(&b.Content, in.Content)
	setString(&b.ApplicationURL, in.ApplicationURL)
	if in.ApplicationDeadline != nil {
		if *in.ApplicationDeadline == "" {
			b.ApplicationDeadline = nil
		} else if day, err := ParseDate(*in.ApplicationDeadline); err == nil {
			d := datatypes.Date(day)
			b.ApplicationDeadline = &d
		}
	}
	setString(&b.AcademicYear, in.AcademicYear)
	setString(&b.Status, in.Status)
}

type bursaryRefs struct {
	fields          []model.FieldOfStudy
	educationLevels []model.EducationLevel
	studyLevels     []model.StudyLevel
}

func resolveBursaryRefs(tx *gorm.DB, in dto.BursaryWrite, verr *ValidationError) (*bursaryRefs, error) {
	refs := &bursaryRefs{}
	var err error

	if in.FieldsOfStudy != nil {
		if refs.fields, err = resolveTaxonomy[model.FieldOfStudy](tx, "fields_of_study", *in.FieldsOfStudy, verr); err != nil {
			return nil, err
		}
	}
	if in.EducationLevels != nil {
		if refs.educationLevels, err = resolveTaxonomy[model.EducationLevel](tx, "education_levels", *in.EducationLevels, verr); err != nil {
			return nil, err
		}
	}
	if in.StudyLevels != nil {
		if refs.studyLevels, err = resolveTaxonomy[model.StudyLevel](tx, "study_levels", *in.StudyLevels, verr); err != nil {
			return nil, err
		}
	}
	return refs, nil
}

func (r *bursaryRefs) replace(tx *gorm.DB, b *model.Bursary) error {
	if r.fields != nil {
		if err := replaceSet(tx, b, "FieldsOfStudy", r.fields); err != nil {
			return err
		}
	}
	if r.educationLevels != nil {
		if err := replaceSet(tx, b, "EducationLevels", r.educationLevels); err != nil {
			return err
		}
	}
	if r.studyLevels != nil {
		if err := replaceSet(tx, b, "StudyLevels", r.studyLevels); err != nil {
			return err
		}
	}
	return nil
}
