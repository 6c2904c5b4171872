package dto

import (
	"time"

	"github.com/mavhungutrezzy/umami-tube/model"
	"gorm.io/datatypes"
)

// DateLayout is the wire format of every calendar date
const DateLayout = "2006-01-02"

// TaxonomyRef is a taxonomy entity embedded in a listing
type TaxonomyRef struct {
	ID    uint   `json:"id"`
	Code  string `json:"code"`
	Label string `json:"label"`
}

// InstitutionRef adds the campus location to TaxonomyRef
type InstitutionRef struct {
	TaxonomyRef
	City     string `json:"city"`
	Province string `json:"province"`
}

// TaxonomyItem is one entry of a public lookup list.
// City and Province are only filled for institutions.
type TaxonomyItem struct {
	ID          uint   `json:"id"`
	Code        string `json:"code"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	City        string `json:"city,omitempty"`
	Province    string `json:"province,omitempty"`
}

func refOf(t model.Taxonomy) TaxonomyRef {
	return TaxonomyRef{ID: t.ID, Code: t.Code, Label: t.Label}
}

func institutionRefs(rows []model.Institution) []InstitutionRef {
	refs := make([]InstitutionRef, len(rows))
	for i, r := range rows {
		refs[i] = InstitutionRef{TaxonomyRef: refOf(r.Taxonomy), City: r.City, Province: r.Province}
	}
	return refs
}

// refsOf expands any lookup slice; get picks the embedded Taxonomy
func refsOf[T any](rows []T, get func(T) model.Taxonomy) []TaxonomyRef {
	refs := make([]TaxonomyRef, len(rows))
	for i, r := range rows {
		refs[i] = refOf(get(r))
	}
	return refs
}

func idsOf[T any](rows []T, get func(T) model.Taxonomy) []uint {
	ids := make([]uint, len(rows))
	for i, r := range rows {
		ids[i] = get(r).ID
	}
	return ids
}

func formatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

func formatOptionalDate(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := formatDate(*d)
	return &s
}
