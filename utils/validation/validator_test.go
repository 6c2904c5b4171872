package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listingInput struct {
	Title    *string          `json:"title" validate:"required,min=1,max=10"`
	Rent     *decimal.Decimal `json:"rent" validate:"required,gte=0,lte=99"`
	Website  *string          `json:"website" validate:"omitempty,url|eq="`
	Deadline *string          `json:"deadline" validate:"omitempty,datetime=2006-01-02|eq="`
	Kind     *string          `json:"kind" validate:"omitempty,oneof=a b"`
	Ignored  string           `json:"-"`
}

func ptr[T any](v T) *T { return &v }

func TestValidateStruct_ReportsJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.ValidateStruct(listingInput{Title: ptr("far too long a title")})
	require.Error(t, err)

	fields := FormatValidationErrors(err)
	assert.Equal(t, []string{"Ensure this field has no more than 10 characters."}, fields["title"])
	assert.Equal(t, []string{"This field is required."}, fields["rent"])
}

func TestValidateStruct_Decimal(t *testing.T) {
	v := NewValidator()

	err := v.ValidateStruct(listingInput{Title: ptr("ok"), Rent: ptr(decimal.RequireFromString("120.5"))})
	fields := FormatValidationErrors(err)
	assert.Equal(t, []string{"Ensure this value is less than or equal to 99."}, fields["rent"])

	assert.NoError(t, v.ValidateStruct(listingInput{Title: ptr("ok"), Rent: ptr(decimal.RequireFromString("2.5"))}))
}

func TestValidateStruct_EmptyOptionalStrings(t *testing.T) {
	v := NewValidator()
	in := listingInput{Title: ptr("ok"), Rent: ptr(decimal.Zero), Website: ptr(""), Deadline: ptr("")}
	assert.NoError(t, v.ValidateStruct(in))

	in.Website = ptr("nope")
	in.Deadline = ptr("31-12-2026")
	fields := FormatValidationErrors(v.ValidateStruct(in))
	assert.Equal(t, []string{"Enter a valid URL."}, fields["website"])
	assert.Equal(t, []string{"Date has wrong format. Use this format instead: YYYY-MM-DD."}, fields["deadline"])
}

func TestValidatePartial_OnlySuppliedFields(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidatePartial(&listingInput{}))
	assert.NoError(t, v.ValidatePartial(&listingInput{Kind: ptr("a")}))

	fields := FormatValidationErrors(v.ValidatePartial(&listingInput{Kind: ptr("c")}))
	assert.Equal(t, []string{"Must be one of: a, b."}, fields["kind"])
	assert.NotContains(t, fields, "title")

	fields = FormatValidationErrors(v.ValidatePartial(&listingInput{Title: ptr("")}))
	assert.Contains(t, fields, "title")
}

func TestFormatValidationErrors_NonValidationError(t *testing.T) {
	assert.Empty(t, FormatValidationErrors(assert.AnError))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hel\x00lo \n"))
}

func TestSanitizeStrings(t *testing.T) {
	original := ptr("  Sea\x00 Point ")
	in := listingInput{Title: original, Kind: ptr("a"), Ignored: "  kept  "}

	SanitizeStrings(&in)

	assert.Equal(t, "Sea Point", *in.Title)
	assert.Equal(t, "  Sea\x00 Point ", *original)
	assert.Equal(t, "a", *in.Kind)
	assert.Nil(t, in.Website)
	assert.Nil(t, in.Rent)
	assert.Equal(t, "  kept  ", in.Ignored)

	assert.NotPanics(t, func() { SanitizeStrings(in) })
}
