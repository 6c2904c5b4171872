package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mavhungutrezzy/umami-tube/model"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	accommodationSheet = "Accommodations"
	bursarySheet       = "Bursaries"
)

// ExportService renders the catalog as a spreadsheet for operators
type ExportService struct {
	db *gorm.DB
}

// NewExportService creates a new export service
func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

// Workbook returns an .xlsx file with one sheet per aggregate. params narrows the
// accommodation sheet with the accommodation filters and the bursary sheet with the
// bursary filters; availability is not restricted.
func (s *ExportService) Workbook(ctx context.Context, params url.Values) ([]byte, error) {
	accommodations, err := s.accommodations(ctx, params)
	if err != nil {
		return nil, err
	}
	bursaries, err := s.bursaries(ctx, params)
	if err != nil {
		return nil, err
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), accommodationSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := xl.NewSheet(bursarySheet); err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}

	header := []string{"id", "slug", "title", "property_type", "city", "province", "monthly_rent", "deposit_amount",
		"max_occupants", "gender_restriction", "is_available", "is_verified", "available_from", "amenities", "owner_id", "created_at"}
	if err := xl.SetSheetRow(accommodationSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, a := range accommodations {
		amenities := make([]string, len(a.Amenities))
		for j, am := range a.Amenities {
			amenities[j] = am.Code
		}
		record := []interface{}{
			a.ID,
			a.Slug,
			a.Title,
			a.PropertyType.Code,
			a.City,
			a.Province,
			a.MonthlyRent.InexactFloat64(),
			a.DepositAmount.InexactFloat64(),
			a.MaxOccupants,
			a.GenderRestriction,
			a.IsAvailable,
			a.IsVerified,
			time.Time(a.AvailableFrom).Format("2006-01-02"),
			strings.Join(amenities, ","),
			a.OwnerID,
			a.CreatedAt.UTC().Format(time.RFC3339),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := xl.SetSheetRow(accommodationSheet, cellRef, &record); err != nil {
			return nil, err
		}
	}

	header = []string{"id", "slug", "name", "provider", "academic_year", "status", "application_deadline",
		"fields_of_study", "owner_id", "created_at"}
	if err := xl.SetSheetRow(bursarySheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, b := range bursaries {
		fields := make([]string, len(b.FieldsOfStudy))
		for j, f := range b.FieldsOfStudy {
			fields[j] = f.Label
		}
		deadline := ""
		if b.ApplicationDeadline != nil {
			deadline = time.Time(*b.ApplicationDeadline).Format("2006-01-02")
		}
		record := []string{
			strconv.FormatUint(uint64(b.ID), 10),
			b.Slug,
			b.Name,
			b.Provider,
			b.AcademicYear,
			b.Status,
			deadline,
			strings.Join(fields, "; "),
			strconv.FormatUint(uint64(b.OwnerID), 10),
			b.CreatedAt.UTC().Format(time.RFC3339),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := xl.SetSheetRow(bursarySheet, cellRef, &record); err != nil {
			return nil, err
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *ExportService) accommodations(ctx context.Context, params url.Values) ([]model.Accommodation, error) {
	query, err := ApplyFilters(s.db.WithContext(ctx).Model(&model.Accommodation{}), AccommodationFilters, params)
	if err != nil {
		return nil, err
	}
	var rows []model.Accommodation
	if err := AccommodationOrdering.Apply(query, params).Preload("PropertyType").Preload("Amenities").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to export accommodations: %w", err)
	}
	return rows, nil
}

func (s *ExportService) bursaries(ctx context.Context, params url.Values) ([]model.Bursary, error) {
	query, err := ApplyFilters(s.db.WithContext(ctx).Model(&model.Bursary{}), BursaryFilters, params)
	if err != nil {
		return nil, err
	}
	var rows []model.Bursary
	if err := BursaryOrdering.Apply(query, params).Preload("FieldsOfStudy").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to export bursaries: %w", err)
	}
	return rows, nil
}
