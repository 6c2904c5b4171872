package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mavhungutrezzy/umami-tube/api"
	"github.com/mavhungutrezzy/umami-tube/database"
	"github.com/mavhungutrezzy/umami-tube/model"
	"github.com/mavhungutrezzy/umami-tube/router"
	"github.com/mavhungutrezzy/umami-tube/services"
	"github.com/mavhungutrezzy/umami-tube/testutil"
	"github.com/mavhungutrezzy/umami-tube/utils/auth"
	"github.com/mavhungutrezzy/umami-tube/utils/logger"
	"github.com/mavhungutrezzy/umami-tube/utils/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var jwtConfig = auth.JWTConfig{Secret: "router-test-secret", Issuer: "catalog-test", Expiry: time.Hour}

type testServer struct {
	t   *testing.T
	app *fiber.App
	db  *gorm.DB
	jwt *auth.JWTManager
}

func newTestServer(t *testing.T, cacheTTL time.Duration) *testServer {
	t.Helper()
	db := testutil.NewSeededDB(t)
	app := api.NewEngine()

	router.SetupRoutes(app, router.Config{
		Store:    database.NewGORMStore(db, logger.Nop()),
		Registry: services.NewTaxonomyRegistry(db),
		JWT:      jwtConfig,
		Security: middleware.SecurityConfig{
			AllowedOrigins:   "http://localhost:3000",
			DisableAccessLog: true,
		},
		Log:                   logger.Nop(),
		AccommodationCacheTTL: cacheTTL,
		BursaryCacheTTL:       cacheTTL,
		TaxonomyCacheTTL:      cacheTTL,
		Clock:                 testutil.Clock(),
	})

	return &testServer{t: t, app: app, db: db, jwt: auth.NewJWTManager(jwtConfig)}
}

// token mints a token for a user id the catalog has never seen; the first
// request mirrors it into users
func (s *testServer) token(id uint, role string) string {
	s.t.Helper()
	token, _, err := s.jwt.GenerateAccessToken(id, fmt.Sprintf("user%d@example.com", id), "", role, 0)
	require.NoError(s.t, err)
	return token
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
	Error struct {
		Code    string              `json:"code"`
		Message string              `json:"message"`
		Fields  map[string][]string `json:"fields"`
	} `json:"error"`
}

func (s *testServer) do(method, path, token string, body interface{}) (*http.Response, envelope) {
	s.t.Helper()

	if body == nil {
		return s.send(method, path, token, "", nil)
	}
	raw, err := json.Marshal(body)
	require.NoError(s.t, err)
	return s.send(method, path, token, fiber.MIMEApplicationJSON, raw)
}

// send issues a request with a raw body
func (s *testServer) send(method, path, token, contentType string, body []byte) (*http.Response, envelope) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), fiber.MIMEApplicationJSON) {
		require.NoError(s.t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

func (s *testServer) accommodationBody(title string) map[string]interface{} {
	return map[string]interface{}{
		"title":                    title,
		"description":              "Bright rooms close to campus",
		"property_type":            testutil.TaxonomyID[model.PropertyType](s.t, s.db, "private_residence"),
		"educational_institutions": []uint{testutil.TaxonomyID[model.Institution](s.t, s.db, "cput")},
		"address":                  "12 Main Road",
		"city":                     "Cape Town",
		"province":                 "Western Cape",
		"postal_code":              "7700",
		"monthly_rent":             "4500.00",
		"deposit_amount":           "4500.00",
		"bathrooms":                "1.5",
		"available_from":           "2026-04-01",
		"amenities":                []uint{testutil.TaxonomyID[model.Amenity](s.t, s.db, "wifi")},
		"contact_phone":            "0211234567",
		"contact_email":            "landlord@example.com",
	}
}

func TestPing(t *testing.T) {
	s := newTestServer(t, 0)
	resp, _ := s.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAccommodationLifecycle(t *testing.T) {
	s := newTestServer(t, 0)
	landlord := s.token(1, model.RoleLandlord)
	stranger := s.token(2, model.RoleLandlord)
	operator := s.token(3, model.RoleAdmin)

	resp, _ := s.do(http.MethodPost, "/api/v1/landlord/accommodations", "", s.accommodationBody("Sunset Villas"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, env := s.do(http.MethodPost, "/api/v1/landlord/accommodations", landlord, s.accommodationBody("Sunset Villas"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var written struct {
		Slug        string `json:"slug"`
		MonthlyRent string `json:"monthly_rent"`
		Bathrooms   string `json:"bathrooms"`
		Amenities   []uint `json:"amenities"`
		IsAvailable bool   `json:"is_available"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &written))
	assert.Equal(t, "sunset-villas", written.Slug)
	assert.Equal(t, "4500.00", written.MonthlyRent)
	assert.Equal(t, "1.5", written.Bathrooms)
	assert.Len(t, written.Amenities, 1)
	assert.True(t, written.IsAvailable)

	resp, env = s.do(http.MethodGet, "/api/v1/accommodations", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, env.Pagination.Total)
	var list []struct {
		Slug         string `json:"slug"`
		PropertyType struct {
			Code string `json:"code"`
		} `json:"property_type"`
		EducationalInstitutions []struct {
			Code string `json:"code"`
			City string `json:"city"`
		} `json:"educational_institutions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "private_residence", list[0].PropertyType.Code)
	require.Len(t, list[0].EducationalInstitutions, 1)
	assert.Equal(t, "Cape Town", list[0].EducationalInstitutions[0].City)

	resp, env = s.do(http.MethodGet, "/api/v1/accommodations/sunset-villas", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "landlord@example.com", detail["contact_email"])
	assert.Equal(t, "0.00", detail["admin_fee"])

	resp, _ = s.do(http.MethodGet, "/api/v1/accommodations/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(http.MethodPatch, "/api/v1/landlord/accommodations/sunset-villas", stranger, map[string]interface{}{"title": "Mine now"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(http.MethodPatch, "/api/v1/landlord/accommodations/nowhere", landlord, map[string]interface{}{"title": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, env = s.do(http.MethodPatch, "/api/v1/landlord/accommodations/sunset-villas", landlord, map[string]interface{}{"monthly_rent": "0"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"Rent must be a positive value."}, env.Error.Fields["monthly_rent"])

	resp, _ = s.do(http.MethodPatch, "/api/v1/landlord/accommodations/sunset-villas", landlord, map[string]interface{}{"title": "Sunrise Villas"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(http.MethodPatch, "/api/v1/admin/accommodations/sunset-villas/verification", landlord, map[string]interface{}{"is_verified": true})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env = s.do(http.MethodPatch, "/api/v1/admin/accommodations/sunset-villas/verification", operator, map[string]interface{}{"is_verified": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, true, detail["is_verified"])
	assert.Equal(t, "Sunrise Villas", detail["title"])

	resp, env = s.do(http.MethodGet, "/api/v1/admin/audit-logs", operator, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, env.Pagination.Total)

	resp, _ = s.do(http.MethodDelete, "/api/v1/landlord/accommodations/sunset-villas", stranger, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(http.MethodDelete, "/api/v1/landlord/accommodations/sunset-villas", landlord, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/api/v1/accommodations/sunset-villas", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateAccommodation_ValidationEnvelope(t *testing.T) {
	s := newTestServer(t, 0)
	landlord := s.token(1, model.RoleLandlord)

	body := s.accommodationBody("Broken")
	delete(body, "city")
	body["available_from"] = "2020-01-01"

	resp, env := s.do(http.MethodPost, "/api/v1/landlord/accommodations", landlord, body)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, []string{"This field is required."}, env.Error.Fields["city"])
	assert.Equal(t, []string{"Available date must be in the future."}, env.Error.Fields["available_from"])
}

func TestCreateAccommodation_BodyTypeErrors(t *testing.T) {
	s := newTestServer(t, 0)
	landlord := s.token(1, model.RoleLandlord)
	path := "/api/v1/landlord/accommodations"

	cases := []struct {
		name  string
		body  string
		field string
		msg   string
	}{
		{"rent not a number", `{"monthly_rent":"abc"}`, "monthly_rent", "A valid number is required."},
		{"bathrooms an object", `{"title":"Ok","bathrooms":{}}`, "bathrooms", "A valid number is required."},
		{"property type a string", `{"property_type":"flat"}`, "property_type", "Incorrect type. Expected pk value."},
		{"occupants a string", `{"max_occupants":"two"}`, "max_occupants", "A valid integer is required."},
		{"furnished a string", `{"furnished":"very"}`, "furnished", "Must be a valid boolean."},
		{"title a number", `{"title":42}`, "title", "Not a valid string."},
		{"amenities not a list", `{"amenities":"wifi"}`, "amenities", "Expected a list of items."},
		{"amenities of strings", `{"amenities":["wifi"]}`, "amenities", "Incorrect type. Expected pk value."},
		{"malformed", `{"title":`, "non_field_errors", "Malformed JSON."},
		{"not an object", `[1,2]`, "non_field_errors", "Invalid data. Expected a dictionary."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, env := s.send(http.MethodPost, path, landlord, fiber.MIMEApplicationJSON, []byte(tc.body))
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
			assert.Equal(t, map[string][]string{tc.field: {tc.msg}}, env.Error.Fields)
		})
	}

	resp, _ := s.send(http.MethodPost, path, landlord, fiber.MIMETextPlain, []byte("title=x"))
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestMe_ReturnsMirroredUser(t *testing.T) {
	s := newTestServer(t, 0)
	token := s.token(7, model.RoleLandlord)

	resp, env := s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, uint(7), me.ID)
	assert.Equal(t, "user7@example.com", me.Email)
	assert.Equal(t, model.RoleLandlord, me.Role)

	var stored model.User
	require.NoError(t, s.db.First(&stored, 7).Error)
	assert.Equal(t, "user7@example.com", stored.Email)
}

func TestAccommodationFilters_BadValue(t *testing.T) {
	s := newTestServer(t, 0)
	resp, env := s.do(http.MethodGet, "/api/v1/accommodations?monthly_rent_min=cheap", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.Error.Fields, "monthly_rent_min")
}

func TestBursaryRoutes(t *testing.T) {
	s := newTestServer(t, 0)
	provider := s.token(1, model.RoleProvider)

	body := map[string]interface{}{
		"name":            "Engineering Fund",
		"provider":        "Example Trust",
		"content":         "<p>Covers tuition.</p>",
		"academic_year":   "2027",
		"fields_of_study": []uint{testutil.TaxonomyID[model.FieldOfStudy](t, s.db, "engineering")},
	}
	resp, env := s.do(http.MethodPost, "/api/v1/provider/bursaries", provider, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(env.Data))

	resp, env = s.do(http.MethodGet, "/api/v1/bursaries?field_of_study=Engineering", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, env.Pagination.Total)

	resp, env = s.do(http.MethodGet, "/api/v1/bursaries/engineering-fund", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail struct {
		Status              string  `json:"status"`
		ApplicationDeadline *string `json:"application_deadline"`
		Content             string  `json:"content"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, "open", detail.Status)
	assert.Nil(t, detail.ApplicationDeadline)
	assert.Equal(t, "<p>Covers tuition.</p>", detail.Content)

	resp, env = s.do(http.MethodGet, "/api/v1/provider/bursaries", provider, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, env.Pagination.Total)
}

func TestTaxonomyRoutes(t *testing.T) {
	s := newTestServer(t, 0)

	for _, path := range []string{
		"/api/v1/institutions",
		"/api/v1/property-types",
		"/api/v1/payment-methods",
		"/api/v1/amenities",
		"/api/v1/bursaries/fields-of-study",
		"/api/v1/bursaries/study-levels",
		"/api/v1/bursaries/education-levels",
	} {
		resp, env := s.do(http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		var items []map[string]interface{}
		require.NoError(t, json.Unmarshal(env.Data, &items))
		assert.NotEmpty(t, items, path)
	}
}

func TestResponseCache(t *testing.T) {
	s := newTestServer(t, time.Minute)

	resp, _ := s.do(http.MethodGet, "/api/v1/amenities", "", nil)
	assert.Equal(t, "miss", resp.Header.Get("X-Cache"))

	resp, _ = s.do(http.MethodGet, "/api/v1/amenities", "", nil)
	assert.Equal(t, "hit", resp.Header.Get("X-Cache"))
}

func TestLogoutRevokesToken(t *testing.T) {
	s := newTestServer(t, 0)
	token := s.token(1, model.RoleStudent)

	resp, _ := s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.do(http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// logout-all invalidates tokens minted with the old version
	other := s.token(1, model.RoleStudent)
	resp, _ = s.do(http.MethodPost, "/api/v1/auth/logout-all", other, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = s.do(http.MethodGet, "/api/v1/auth/me", other, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminExport(t *testing.T) {
	s := newTestServer(t, 0)

	resp, _ := s.do(http.MethodGet, "/api/v1/admin/export.xlsx", s.token(1, model.RoleStudent), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(http.MethodGet, "/api/v1/admin/export.xlsx", s.token(2, model.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", resp.Header.Get("Content-Type"))
}
