package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/url"
	"reflect"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mavhungutrezzy/umami-tube/services"
	"github.com/mavhungutrezzy/umami-tube/utils/logger"
	"github.com/mavhungutrezzy/umami-tube/utils/response"
	"github.com/shopspring/decimal"
)

// RespondError maps a service error onto the catalog's status codes.
// Anything unrecognised is logged and reported as a 500.
func RespondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return response.ValidationError(c, verr.Fields)
	case errors.Is(err, services.ErrNotFound):
		return response.NotFound(c, "")
	case errors.Is(err, services.ErrPermissionDenied):
		return response.Forbidden(c, services.ErrPermissionDenied.Error())
	case errors.Is(err, services.ErrUnknownVariant):
		return response.NotFound(c, "Unknown taxonomy.")
	}

	log.Error("Request failed",
		"method", c.Method(),
		"path", c.Path(),
		"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
		"error", err,
	)
	return response.InternalServerError(c, "Something went wrong")
}

// QueryValues copies the query string, keeping repeated keys
func QueryValues(c *fiber.Ctx) url.Values {
	values := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return values
}

// BodyError reports a body the decoder rejected. When the JSON is well formed the
// first field whose value has the wrong type is named; the decoder's own text is
// never echoed back.
func BodyError(c *fiber.Ctx, err error, target interface{}) error {
	var ferr *fiber.Error
	if errors.As(err, &ferr) && ferr.Code == fiber.StatusUnprocessableEntity {
		return response.Error(c, fiber.StatusUnsupportedMediaType, "Unsupported media type in request.")
	}

	msg := "Malformed JSON."
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err == nil {
		if field, fieldMsg, ok := firstBadField(raw, target); ok {
			return response.ValidationError(c, map[string][]string{field: {fieldMsg}})
		}
		msg = "Invalid data."
	} else if json.Valid(c.Body()) {
		msg = "Invalid data. Expected a dictionary."
	}
	return response.ValidationError(c, map[string][]string{"non_field_errors": {msg}})
}

// firstBadField decodes each supplied field of target on its own, in declaration
// order, and reports the first one that does not fit its type
func firstBadField(raw map[string]json.RawMessage, target interface{}) (string, string, bool) {
	typ := reflect.TypeOf(target)
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return "", "", false
	}

	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		value, ok := raw[name]
		if !ok {
			continue
		}
		if json.Unmarshal(value, reflect.New(f.Type).Interface()) != nil {
			return name, typeMessage(f.Type, value), true
		}
	}
	return "", "", false
}

func typeMessage(t reflect.Type, value json.RawMessage) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == reflect.TypeOf(decimal.Decimal{}) {
		return "A valid number is required."
	}
	switch t.Kind() {
	case reflect.Uint, reflect.Uint64, reflect.Uint32:
		return "Incorrect type. Expected pk value."
	case reflect.Int, reflect.Int64, reflect.Int32:
		return "A valid integer is required."
	case reflect.Bool:
		return "Must be a valid boolean."
	case reflect.String:
		return "Not a valid string."
	case reflect.Slice:
		if trimmed := bytes.TrimSpace(value); len(trimmed) > 0 && trimmed[0] == '[' {
			return "Incorrect type. Expected pk value."
		}
		return "Expected a list of items."
	}
	return "Invalid value."
}
