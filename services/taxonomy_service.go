package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mavhungutrezzy/umami-tube/dto"
	"github.com/mavhungutrezzy/umami-tube/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Variant names a taxonomy; its value is the backing table
type Variant string

const (
	VariantInstitution    Variant = "institutions"
	VariantPropertyType   Variant = "property_types"
	VariantPaymentMethod  Variant = "payment_methods"
	VariantAmenity        Variant = "amenities"
	VariantFieldOfStudy   Variant = "fields_of_study"
	VariantStudyLevel     Variant = "study_levels"
	VariantEducationLevel Variant = "education_levels"
)

// Variants lists every taxonomy in seeding order
var Variants = []Variant{
	VariantInstitution,
	VariantPropertyType,
	VariantPaymentMethod,
	VariantAmenity,
	VariantFieldOfStudy,
	VariantStudyLevel,
	VariantEducationLevel,
}

// TaxonomyRegistry keeps an in-memory snapshot of every taxonomy for the public
// lookup endpoints. Writes never trust the snapshot; they resolve ids inside their
// own transaction.
type TaxonomyRegistry struct {
	db *gorm.DB

	mu       sync.RWMutex
	entries  map[Variant][]dto.TaxonomyItem
	loadedAt time.Time
}

// NewTaxonomyRegistry creates an empty registry; call Load before serving
func NewTaxonomyRegistry(db *gorm.DB) *TaxonomyRegistry {
	return &TaxonomyRegistry{db: db}
}

// Load reads every variant from the database and swaps the snapshot atomically
func (r *TaxonomyRegistry) Load(ctx context.Context) error {
	snapshot := make(map[Variant][]dto.TaxonomyItem, len(Variants))

	for _, v := range Variants {
		columns := "id, code, label, description"
		if v == VariantInstitution {
			columns += ", city, province"
		}

		var rows []dto.TaxonomyItem
		if err := r.db.WithContext(ctx).Table(string(v)).Select(columns).Find(&rows).Error; err != nil {
			return fmt.Errorf("failed to load %s: %w", v, err)
		}
		snapshot[v] = sortEntries(rows)
	}

	r.mu.Lock()
	r.entries = snapshot
	r.loadedAt = time.Now()
	r.mu.Unlock()
	return nil
}

// Reload refreshes the snapshot so out-of-band edits become visible
func (r *TaxonomyRegistry) Reload(ctx context.Context) error {
	return r.Load(ctx)
}

// LoadedAt reports when the current snapshot was taken
func (r *TaxonomyRegistry) LoadedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadedAt
}

// List returns the entries of one variant ordered by label, then code
func (r *TaxonomyRegistry) List(ctx context.Context, v Variant) ([]dto.TaxonomyItem, error) {
	if !v.valid() {
		return nil, ErrUnknownVariant
	}

	r.mu.RLock()
	loaded := r.entries != nil
	r.mu.RUnlock()
	if !loaded {
		if err := r.Load(ctx); err != nil {
			return nil, err
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]dto.TaxonomyItem, len(r.entries[v]))
	copy(out, r.entries[v])
	return out, nil
}

// Seed upserts the static enumerations by code. Running it twice changes nothing.
func (r *TaxonomyRegistry) Seed(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		institutions := make([]model.Institution, 0, len(model.InstitutionChoices))
		for _, c := range model.InstitutionChoices {
			institutions = append(institutions, model.Institution{
				Taxonomy: model.Taxonomy{Code: c.Code, Label: c.Label},
				City:     c.City,
				Province: c.Province,
			})
		}
		if err := upsertByCode(tx, institutions, "label", "city", "province"); err != nil {
			return err
		}

		if err := upsertByCode(tx, fromChoices(model.PropertyTypeChoices, func(t model.Taxonomy) model.PropertyType {
			return model.PropertyType{Taxonomy: t}
		}), "label"); err != nil {
			return err
		}
		if err := upsertByCode(tx, fromChoices(model.PaymentMethodChoices, func(t model.Taxonomy) model.PaymentMethod {
			return model.PaymentMethod{Taxonomy: t}
		}), "label"); err != nil {
			return err
		}
		if err := upsertByCode(tx, fromChoices(model.AmenityChoices, func(t model.Taxonomy) model.Amenity {
			return model.Amenity{Taxonomy: t}
		}), "label"); err != nil {
			return err
		}
		if err := upsertByCode(tx, fromChoices(model.FieldOfStudyChoices, func(t model.Taxonomy) model.FieldOfStudy {
			return model.FieldOfStudy{Taxonomy: t}
		}), "label"); err != nil {
			return err
		}
		if err := upsertByCode(tx, fromChoices(model.StudyLevelChoices, func(t model.Taxonomy) model.StudyLevel {
			return model.StudyLevel{Taxonomy: t}
		}), "label"); err != nil {
			return err
		}
		return upsertByCode(tx, fromChoices(model.EducationLevelChoices, func(t model.Taxonomy) model.EducationLevel {
			return model.EducationLevel{Taxonomy: t}
		}), "label")
	})
}

func (v Variant) valid() bool {
	for _, known := range Variants {
		if v == known {
			return true
		}
	}
	return false
}

func sortEntries(rows []dto.TaxonomyItem) []dto.TaxonomyItem {
	seen := make(map[string]struct{}, len(rows))
	out := make([]dto.TaxonomyItem, 0, len(rows))
	for _, row := range rows {
		if _, dup := seen[row.Code]; dup {
			continue
		}
		seen[row.Code] = struct{}{}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Label != out[j].Label {
			return out[i].Label < out[j].Label
		}
		return out[i].Code < out[j].Code
	})
	return out
}

func fromChoices[T any](choices []model.Choice, wrap func(model.Taxonomy) T) []T {
	rows := make([]T, 0, len(choices))
	for _, c := range choices {
		rows = append(rows, wrap(model.Taxonomy{Code: c.Code, Label: c.Label}))
	}
	return rows
}

func upsertByCode[T any](tx *gorm.DB, rows []T, updateColumns ...string) error {
	if len(rows) == 0 {
		return nil
	}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns(updateColumns),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to seed taxonomy: %w", err)
	}
	return nil
}

type taxonomyRow interface {
	TaxonomyID() uint
}

// resolveTaxonomy loads the rows behind ids inside tx. Every id without a row is
// reported against field on verr; database failures are returned.
func resolveTaxonomy[T taxonomyRow](tx *gorm.DB, field string, ids []uint, verr *ValidationError) ([]T, error) {
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	rows := make([]T, 0, len(unique))
	if len(unique) == 0 {
		return rows, nil
	}
	if err := tx.Where("id IN ?", unique).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", field, err)
	}

	found := make(map[uint]struct{}, len(rows))
	for _, row := range rows {
		found[row.TaxonomyID()] = struct{}{}
	}
	for _, id := range unique {
		if _, ok := found[id]; !ok {
			verr.Add(field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
		}
	}
	return rows, nil
}
