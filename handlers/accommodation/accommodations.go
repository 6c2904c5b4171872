package accommodation

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mavhungutrezzy/umami-tube/dto"
	"github.com/mavhungutrezzy/umami-tube/handlers"
	"github.com/mavhungutrezzy/umami-tube/services"
	"github.com/mavhungutrezzy/umami-tube/utils/logger"
	"github.com/mavhungutrezzy/umami-tube/utils/middleware"
	"github.com/mavhungutrezzy/umami-tube/utils/response"
)

// AccommodationHandler handles the public catalog and the landlord workspace
type AccommodationHandler struct {
	service *services.AccommodationService
	log     *logger.Logger
}

// NewAccommodationHandler creates a new accommodation handler
func NewAccommodationHandler(service *services.AccommodationService, log *logger.Logger) *AccommodationHandler {
	return &AccommodationHandler{service: service, log: log}
}

// VerificationRequest is the body of the operator verification toggle
type VerificationRequest struct {
	IsVerified *bool `json:"is_verified"`
}

// ListAccommodations handles GET /api/v1/accommodations
func (h *AccommodationHandler) ListAccommodations(c *fiber.Ctx) error {
	result, err := h.service.List(c.UserContext(), handlers.QueryValues(c))
	if err != nil {
		return handlers.RespondError(c, h.log, err)
	}
	pagination := response.CalculatePagination(result.Page.Number, result.Page.Size, result.Total)
	return response.Paginated(c, dto.NewAccommodationLists(result.Items), pagination)
}

// GetAccommodation handles GET /api/v1/accommodations/:slug
func (h *AccommodationHandler) GetAccommodation(c *fiber.Ctx) error {
	acc, err := h.service.Get(c.UserContext(), c.Params("slug"))
	if err != nil {
		return handlers.RespondError(c, h.log, err)
	}
	return response.Success(c, dto.NewAccommodationDetail(*acc))
}

// ListOwned handles GET /api/v1/landlord/accommodations
func (h *AccommodationHandler) ListOwned(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	result, err := h.service.ListOwned(c.UserContext(), actor, handlers.QueryValues(c))
	if err != nil {
		return handlers.RespondError(c, h.log, err)
	}
	pagination := response.CalculatePagination(result.Page.Number, result.Page.Size, result.Total)
	return response.Paginated(c, dto.NewAccommodationLists(result.Items), pagination)
}

// GetOwned handles GET /api/v1/landlord/accommodations/:slug
func (h *AccommodationHandler) GetOwned(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	acc, err := h.service.GetOwned(c.UserContext(), actor, c.Params("slug"))
	if err != nil {
		return handlers.RespondError(c, h.log, err)
	}
	return response.Success(c, dto.NewAccommodationDetail(*acc))
}

// CreateAccommodation handles POST /api/v1/landlord/accommodations
func (h *AccommodationHandler) CreateAccommodation(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req dto.AccommodationWrite
	if err := c.BodyParser(&req); err != nil {
		return handlers.BodyError(c, err, &req)
	}

	acc, err := h.service.Create(c.UserContext(), actor, req)
	if err != nil {
		return handlers.RespondError(c, h.log, err)
	}

	h.log.Info("Accommodation created", "slug", acc.Slug, "owner_id", acc.OwnerID)
	return response.Created(c, dto.NewAccommodationWritten(*acc))
}

// ReplaceAccommodation handles PUT /api/v1/landlord/accommodations/:slug
func (h *AccommodationHandler) ReplaceAccommodation(c *fiber.Ctx) error {
	return h.update(c, false)
}

// PatchAccommodation handles PATCH /api/v1/landlord/accommodations/:slug
func (h *AccommodationHandler) PatchAccommodation(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *AccommodationHandler) update(c *fiber.Ctx, partial bool) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req dto.AccommodationWrite
	if err := c.BodyParser(&req); err != nil {
		return handlers.BodyError(c, err, &req)
	}

	acc, err := h.service.Update(c.UserContext(), actor, c.Params("slug"), req, partial)
	if err != nil {
		return handlers.RespondError(c, h.log, err)
	}
	return response.Success(c, dto.NewAccommodationWritten(*acc))
}

// DeleteAccommodation handles DELETE /api/v1/landlord/accommodations/:slug
func (h *AccommodationHandler) DeleteAccommodation(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	slug := c.Params("slug")
	if err := h.service.Delete(c.UserContext(), actor, slug); err != nil {
		return handlers.RespondError(c, h.log, err)
	}

	h.log.Info("Accommodation deleted", "slug", slug, "actor_id", actor.ID)
	return response.NoContent(c)
}

// SetVerification handles PATCH /api/v1/admin/accommodations/:slug/verification
func (h *AccommodationHandler) SetVerification(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req VerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return handlers.BodyError(c, err, &req)
	}
	if req.IsVerified == nil {
		return response.ValidationError(c, map[string][]string{"is_verified": {"This field is required."}})
	}

	acc, err := h.service.SetVerified(c.UserContext(), actor, c.Params("slug"), *req.IsVerified)
	if err != nil {
		return handlers.RespondError(c, h.log, err)
	}
	return response.Success(c, dto.NewAccommodationDetail(*acc))
}
