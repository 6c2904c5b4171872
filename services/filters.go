package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type filterKind int

const (
	filterContains   filterKind = iota // case-insensitive substring on Column
	filterSearch                       // substring on any of Columns
	filterExact                        // string equality on Column
	filterEnum                         // equality, value must be one of Choices
	filterReference                    // Column = positive integer id
	filterCodeSet                      // Where with the list of supplied codes
	filterLabel                        // Where with the lowercased label
	filterBool                         // Column = true/false
	filterDecimalMin                   // Column >= decimal
	filterDecimalMax                   // Column <= decimal
	filterIntMax                       // Column <= integer
	filterDateMin                      // Column >= YYYY-MM-DD
	filterDateMax                      // Column <= YYYY-MM-DD
)

// FilterSpec binds one query parameter to one predicate
type FilterSpec struct {
	Param   string
	Kind    filterKind
	Column  string
	Columns []string
	Choices []string
	Where   string
}

// AccommodationFilters is the public filter contract for accommodations
var AccommodationFilters = []FilterSpec{
	{Param: "city", Kind: filterContains, Column: "city"},
	{Param: "province", Kind: filterContains, Column: "province"},
	{Param: "property_type", Kind: filterReference, Column: "property_type_id"},
	{Param: "educational_institutions", Kind: filterCodeSet, Where: `accommodations.id IN (
		SELECT ai.accommodation_id FROM accommodation_institutions ai
		JOIN institutions ON institutions.id = ai.institution_id
		WHERE institutions.code IN ?)`},
	{Param: "amenities", Kind: filterCodeSet, Where: `accommodations.id IN (
		SELECT aa.accommodation_id FROM accommodation_amenities aa
		JOIN amenities ON amenities.id = aa.amenity_id
		WHERE amenities.code IN ?)`},
	{Param: "payment_methods", Kind: filterCodeSet, Where: `accommodations.id IN (
		SELECT ap.accommodation_id FROM accommodation_payment_methods ap
		JOIN payment_methods ON payment_methods.id = ap.payment_method_id
		WHERE payment_methods.code IN ?)`},
	{Param: "gender_restriction", Kind: filterEnum, Column: "gender_restriction", Choices: []string{"any", "male", "female"}},
	{Param: "monthly_rent_min", Kind: filterDecimalMin, Column: "monthly_rent"},
	{Param: "monthly_rent_max", Kind: filterDecimalMax, Column: "monthly_rent"},
	{Param: "bathrooms_min", Kind: filterDecimalMin, Column: "bathrooms"},
	{Param: "bathrooms_max", Kind: filterDecimalMax, Column: "bathrooms"},
	{Param: "is_available", Kind: filterBool, Column: "is_available"},
	{Param: "furnished", Kind: filterBool, Column: "furnished"},
	{Param: "available_from", Kind: filterDateMin, Column: "available_from"},
	{Param: "minimum_lease_period", Kind: filterIntMax, Column: "minimum_lease_period"},
	{Param: "search", Kind: filterSearch, Columns: []string{"title", "description", "address", "city", "province"}},
}

// BursaryFilters is the public filter contract for bursaries
var BursaryFilters = []FilterSpec{
	{Param: "name", Kind: filterContains, Column: "name"},
	{Param: "provider", Kind: filterContains, Column: "provider"},
	{Param: "academic_year", Kind: filterExact, Column: "academic_year"},
	{Param: "status", Kind: filterEnum, Column: "status", Choices: []string{"open", "closed", "upcoming"}},
	{Param: "deadline_after", Kind: filterDateMin, Column: "application_deadline"},
	{Param: "deadline_before", Kind: filterDateMax, Column: "application_deadline"},
	{Param: "field_of_study", Kind: filterLabel, Where: `bursaries.id IN (
		SELECT bf.bursary_id FROM bursary_fields_of_study bf
		JOIN fields_of_study ON fields_of_study.id = bf.field_of_study_id
		WHERE LOWER(fields_of_study.label) = ?)`},
	{Param: "education_level", Kind: filterLabel, Where: `bursaries.id IN (
		SELECT be.bursary_id FROM bursary_education_levels be
		JOIN education_levels ON education_levels.id = be.education_level_id
		WHERE LOWER(education_levels.label) = ?)`},
	{Param: "study_level", Kind: filterLabel, Where: `bursaries.id IN (
		SELECT bs.bursary_id FROM bursary_study_levels bs
		JOIN study_levels ON study_levels.id = bs.study_level_id
		WHERE LOWER(study_levels.label) = ?)`},
	{Param: "search", Kind: filterSearch, Columns: []string{"name", "provider", "content"}},
}

// ApplyFilters adds one predicate per recognised, non-empty parameter. Unknown
// parameters are ignored; malformed values are all reported together.
func ApplyFilters(db *gorm.DB, specs []FilterSpec, params url.Values) (*gorm.DB, error) {
	verr := &ValidationError{}

	for _, spec := range specs {
		if spec.Kind == filterCodeSet {
			codes := splitList(params[spec.Param])
			if len(codes) > 0 {
				db = db.Where(spec.Where, codes)
			}
			continue
		}

		raw := lastValue(params, spec.Param)
		if raw == "" {
			continue
		}

		switch spec.Kind {
		case filterContains:
			db = db.Where(containsClause(spec.Column), containsPattern(raw))

		case filterSearch:
			clauses := make([]string, len(spec.Columns))
			args := make([]interface{}, len(spec.Columns))
			for i, col := range spec.Columns {
				clauses[i] = containsClause(col)
				args[i] = containsPattern(raw)
			}
			db = db.Where("("+strings.Join(clauses, " OR ")+")", args...)

		case filterExact:
			db = db.Where(spec.Column+" = ?", raw)

		case filterEnum:
			if !contains(spec.Choices, raw) {
				verr.Add(spec.Param, fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", raw))
				continue
			}
			db = db.Where(spec.Column+" = ?", raw)

		case filterReference:
			id, err := strconv.ParseUint(raw, 10, 64)
			if err != nil || id == 0 {
				verr.Add(spec.Param, "Select a valid choice. That choice is not one of the available choices.")
				continue
			}
			db = db.Where(spec.Column+" = ?", uint(id))

		case filterLabel:
			db = db.Where(spec.Where, strings.ToLower(raw))

		case filterBool:
			b, err := parseBool(raw)
			if err != nil {
				verr.Add(spec.Param, "Must be a valid boolean.")
				continue
			}
			db = db.Where(spec.Column+" = ?", b)

		case filterDecimalMin, filterDecimalMax:
			d, err := decimal.NewFromString(raw)
			if err != nil {
				verr.Add(spec.Param, "Enter a number.")
				continue
			}
			op := " >= ?"
			if spec.Kind == filterDecimalMax {
				op = " <= ?"
			}
			db = db.Where(spec.Column+op, d)

		case filterIntMax:
			n, err := strconv.Atoi(raw)
			if err != nil {
				verr.Add(spec.Param, "Enter a whole number.")
				continue
			}
			db = db.Where(spec.Column+" <= ?", n)

		case filterDateMin, filterDateMax:
			day, err := ParseDate(raw)
			if err != nil {
				verr.Add(spec.Param, "Enter a valid date.")
				continue
			}
			op := " >= ?"
			if spec.Kind == filterDateMax {
				op = " <= ?"
			}
			db = db.Where(spec.Column+op, day)
		}
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}
	return db, nil
}

// Ordering lists the fields a caller may sort by
type Ordering struct {
	Allowed []string
	Default string
}

var (
	AccommodationOrdering = Ordering{Allowed: []string{"created_at", "monthly_rent"}, Default: "-created_at"}
	BursaryOrdering       = Ordering{Allowed: []string{"created_at", "application_deadline"}, Default: "-created_at"}
)

// Apply sorts by the "ordering" parameter, falling back to the default when it is
// missing or names a field outside Allowed. id breaks ties in the same direction.
func (o Ordering) Apply(db *gorm.DB, params url.Values) *gorm.DB {
	field := lastValue(params, "ordering")
	name := strings.TrimPrefix(field, "-")
	if field == "" || !contains(o.Allowed, name) {
		field = o.Default
		name = strings.TrimPrefix(field, "-")
	}

	dir := "ASC"
	if strings.HasPrefix(field, "-") {
		dir = "DESC"
	}
	return db.Order(name + " " + dir).Order("id " + dir)
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a resolved page request
type Page struct {
	Number int
	Size   int
}

// Offset is the number of rows skipped before this page
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// ParsePage reads page and page_size, clamping bad values to the defaults
func ParsePage(params url.Values) Page {
	page := Page{Number: 1, Size: DefaultPageSize}
	if n, err := strconv.Atoi(lastValue(params, "page")); err == nil && n > 0 {
		page.Number = n
	}
	if n, err := strconv.Atoi(lastValue(params, "page_size")); err == nil && n > 0 {
		page.Size = n
	}
	if page.Size > MaxPageSize {
		page.Size = MaxPageSize
	}
	return page
}

// ParseDate reads a calendar date as UTC midnight
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(s), time.UTC)
}

func containsClause(column string) string {
	return "LOWER(" + column + `) LIKE ? ESCAPE '\'`
}

// containsPattern escapes LIKE wildcards so user input matches literally
func containsPattern(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return "%" + s + "%"
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

func lastValue(params url.Values, key string) string {
	values := params[key]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[len(values)-1])
}

// splitList accepts both repeated parameters and comma-separated values
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
