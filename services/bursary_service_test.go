package services_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/mavhungutrezzy/umami-tube/dto"
	"github.com/mavhungutrezzy/umami-tube/model"
	"github.com/mavhungutrezzy/umami-tube/services"
	"github.com/mavhungutrezzy/umami-tube/testutil"
	"github.com/mavhungutrezzy/umami-tube/utils/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBursaryService(db *gorm.DB) *services.BursaryService {
	return services.NewBursaryService(db, validation.NewValidator()).WithClock(testutil.Clock())
}

func TestCreateBursary(t *testing.T) {
	db := testutil.NewSeededDB(t)
	svc := newBursaryService(db)
	provider := testutil.CreateUser(t, db, "provider@example.com", model.RoleProvider)
	ctx := context.Background()

	b, err := svc.Create(ctx, testutil.Actor(provider), testutil.BursaryInput(t, db, "Engineering Excellence Award"))
	require.NoError(t, err)
	assert.Equal(t, "engineering-excellence-award", b.Slug)
	assert.Equal(t, model.BursaryStatusOpen, b.Status)
	require.NotNil(t, b.ApplicationDeadline)
	require.Len(t, b.FieldsOfStudy, 1)
	assert.Equal(t, "Engineering", b.FieldsOfStudy[0].Label)

	in := testutil.BursaryInput(t, db, "Open Ended Fund")
	in.ApplicationDeadline = nil
	in.Status = testutil.Ptr(model.BursaryStatusUpcoming)
	open, err := svc.Create(ctx, testutil.Actor(provider), in)
	require.NoError(t, err)
	assert.Nil(t, open.ApplicationDeadline)
	assert.Equal(t, model.BursaryStatusUpcoming, open.Status)
}

func TestCreateBursary_Validation(t *testing.T) {
	db := testutil.NewSeededDB(t)
	svc := newBursaryService(db)
	provider := testutil.CreateUser(t, db, "provider@example.com", model.RoleProvider)
	actor := testutil.Actor(provider)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(in *dto.BursaryWrite)
		field   string
		message string
	}{
		{"past deadline", func(in *dto.BursaryWrite) { in.ApplicationDeadline = testutil.Ptr("2026-03-09") }, "application_deadline", "Application deadline cannot be in the past"},
		{"short year", func(in *dto.BursaryWrite) { in.AcademicYear = testutil.Ptr("27") }, "academic_year", "Ensure this field has exactly 4 characters."},
		{"bad status", func(in *dto.BursaryWrite) { in.Status = testutil.Ptr("archived") }, "status", "Must be one of: open, closed, upcoming."},
		{"bad url", func(in *dto.BursaryWrite) { in.ApplicationURL = testutil.Ptr("not a url") }, "application_url", "Enter a valid URL."},
		{"missing provider", func(in *dto.BursaryWrite) { in.Provider = nil }, "provider", "This field is required."},
		{"unknown field of study", func(in *dto.BursaryWrite) { in.FieldsOfStudy = testutil.Ptr([]uint{4242}) }, "fields_of_study", `Invalid pk "4242" - object does not exist.`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := testutil.BursaryInput(t, db, "Broken Bursary")
			tt.mutate(&in)

			_, err := svc.Create(ctx, actor, in)
			assert.Contains(t, requireFieldError(t, err, tt.field), tt.message)
		})
	}

	// Empty optional strings are accepted
	in := testutil.BursaryInput(t, db, "Quiet Fund")
	in.ApplicationURL = testutil.Ptr("")
	in.ApplicationDeadline = testutil.Ptr("")
	_, err := svc.Create(ctx, actor, in)
	require.NoError(t, err)
}

func TestUpdateBursary(t *testing.T) {
	db := testutil.NewSeededDB(t)
	svc := newBursaryService(db)
	provider := testutil.CreateUser(t, db, "provider@example.com", model.RoleProvider)
	other := testutil.CreateUser(t, db, "other@example.com", model.RoleProvider)
	ctx := context.Background()

	b, err := svc.Create(ctx, testutil.Actor(provider), testutil.BursaryInput(t, db, "Engineering Excellence Award"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, testutil.Actor(other), b.Slug, dto.BursaryWrite{Status: testutil.Ptr("closed")}, true)
	require.ErrorIs(t, err, services.ErrPermissionDenied)

	closed, err := svc.Update(ctx, testutil.Actor(provider), b.Slug, dto.BursaryWrite{Status: testutil.Ptr("closed")}, true)
	require.NoError(t, err)
	assert.Equal(t, "closed", closed.Status)
	assert.NotNil(t, closed.ApplicationDeadline)
	assert.Len(t, closed.FieldsOfStudy, 1)

	cleared, err := svc.Update(ctx, testutil.Actor(provider), b.Slug, dto.BursaryWrite{ApplicationDeadline: testutil.Ptr("")}, true)
	require.NoError(t, err)
	assert.Nil(t, cleared.ApplicationDeadline)
	assert.Equal(t, "engineering-excellence-award", cleared.Slug)

	require.NoError(t, svc.Delete(ctx, testutil.Actor(provider), b.Slug))
	_, err = svc.Get(ctx, b.Slug)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestListBursaries_Filters(t *testing.T) {
	db := testutil.NewSeededDB(t)
	svc := newBursaryService(db)
	provider := testutil.CreateUser(t, db, "provider@example.com", model.RoleProvider)
	actor := testutil.Actor(provider)
	ctx := context.Background()

	eng := testutil.BursaryInput(t, db, "Engineering Fund")
	_, err := svc.Create(ctx, actor, eng)
	require.NoError(t, err)

	law := testutil.BursaryInput(t, db, "Law Fund")
	law.FieldsOfStudy = testutil.Ptr([]uint{testutil.TaxonomyID[model.FieldOfStudy](t, db, "law")})
	law.ApplicationDeadline = testutil.Ptr("2026-09-30")
	law.Status = testutil.Ptr("closed")
	law.AcademicYear = testutil.Ptr("2026")
	_, err = svc.Create(ctx, actor, law)
	require.NoError(t, err)

	names := func(params url.Values) []string {
		t.Helper()
		result, err := svc.List(ctx, params)
		require.NoError(t, err)
		out := make([]string, len(result.Items))
		for i, b := range result.Items {
			out[i] = b.Name
		}
		return out
	}

	assert.Equal(t, []string{"Engineering Fund"}, names(url.Values{"field_of_study": {"ENGINEERING"}}))
	assert.Equal(t, []string{"Law Fund"}, names(url.Values{"status": {"closed"}}))
	assert.Equal(t, []string{"Law Fund"}, names(url.Values{"academic_year": {"2026"}}))
	assert.Equal(t, []string{"Law Fund"}, names(url.Values{"deadline_after": {"2026-07-01"}}))
	assert.Equal(t, []string{"Engineering Fund"}, names(url.Values{"deadline_before": {"2026-06-30"}}))
	assert.ElementsMatch(t, []string{"Engineering Fund", "Law Fund"}, names(url.Values{"search": {"fund"}}))
	assert.Equal(t, []string{"Engineering Fund", "Law Fund"}, names(url.Values{"ordering": {"application_deadline"}}))

	_, err = svc.List(ctx, url.Values{"status": {"archived"}})
	requireFieldError(t, err, "status")
}
