package services

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Sunset Villas":      "sunset-villas",
		"  Hello   World  ":  "hello-world",
		"Café Déjà Vu!":      "cafe-deja-vu",
		"100% Pure_Living":   "100-pure_living",
		"Rooms - near - UCT": "rooms-near-uct",
		"---":                "",
		"日本語":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		query string
		want  Page
	}{
		{"", Page{Number: 1, Size: DefaultPageSize}},
		{"page=3&page_size=25", Page{Number: 3, Size: 25}},
		{"page=0&page_size=-4", Page{Number: 1, Size: DefaultPageSize}},
		{"page=abc", Page{Number: 1, Size: DefaultPageSize}},
		{"page_size=1000", Page{Number: 1, Size: MaxPageSize}},
	}
	for _, tt := range tests {
		params, err := url.ParseQuery(tt.query)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, ParsePage(params), tt.query)
	}

	assert.Equal(t, 20, Page{Number: 3, Size: 10}.Offset())
}

func TestContainsPatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%cape%", containsPattern("Cape"))
	assert.Equal(t, `%50\%\_off%`, containsPattern("50%_off"))
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"wifi", "gym", "parking"}, splitList([]string{"wifi, gym", "parking", " ", ","}))
	assert.Nil(t, splitList(nil))
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "1", "YES", "on"} {
		b, err := parseBool(s)
		assert.NoError(t, err)
		assert.True(t, b, s)
	}
	for _, s := range []string{"false", "0", "no", "Off"} {
		b, err := parseBool(s)
		assert.NoError(t, err)
		assert.False(t, b, s)
	}
	_, err := parseBool("maybe")
	assert.Error(t, err)
}

func TestOrderingAllowedFields(t *testing.T) {
	assert.Equal(t, "monthly_rent", lastValue(url.Values{"ordering": {"-created_at", " monthly_rent "}}, "ordering"))
	assert.True(t, contains(AccommodationOrdering.Allowed, "monthly_rent"))
	assert.False(t, contains(AccommodationOrdering.Allowed, "owner_id"))
}

func TestValidationErrorAggregates(t *testing.T) {
	verr := &ValidationError{}
	assert.NoError(t, verr.Err())

	verr.Add("title", "This field is required.")
	verr.Merge(map[string][]string{"city": {"This field is required."}, "title": {"Too long."}})
	assert.Error(t, verr.Err())
	assert.Equal(t, []string{"This field is required.", "Too long."}, verr.Fields["title"])
	assert.Equal(t, "validation failed: city, title", verr.Error())
}

func TestActorCanManage(t *testing.T) {
	assert.True(t, Actor{ID: 7}.CanManage(7))
	assert.False(t, Actor{ID: 7}.CanManage(8))
	assert.False(t, Actor{}.CanManage(0))
	assert.True(t, Actor{ID: 1, Operator: true}.CanManage(8))
}
