package taxonomy

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mavhungutrezzy/umami-tube/handlers"
	"github.com/mavhungutrezzy/umami-tube/services"
	"github.com/mavhungutrezzy/umami-tube/utils/logger"
	"github.com/mavhungutrezzy/umami-tube/utils/response"
)

// TaxonomyHandler serves the lookup lists used to build filter forms
type TaxonomyHandler struct {
	registry *services.TaxonomyRegistry
	log      *logger.Logger
}

// NewTaxonomyHandler creates a new taxonomy handler
func NewTaxonomyHandler(registry *services.TaxonomyRegistry, log *logger.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{registry: registry, log: log}
}

// List returns a handler for one variant, e.g. GET /api/v1/amenities
func (h *TaxonomyHandler) List(variant services.Variant) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := h.registry.List(c.UserContext(), variant)
		if err != nil {
			return handlers.RespondError(c, h.log, err)
		}
		return response.Success(c, items)
	}
}
