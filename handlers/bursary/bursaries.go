package bursary

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mavhungutrezzy/umami-tube/dto"
	"github.com/mavhungutrezzy/umami-tube/handlers"
	"github.com/mavhungutrezzy/umami-tube/services"
	"github.com/mavhungutrezzy/umami-tube/utils/logger"
	"github.com/mavhungutrezzy/umami-tube/utils/middleware"
	"github.com/mavhungutrezzy/umami-tube/utils/response"
)

// BursaryHandler handles the public bursary catalog and the provider workspace
type BursaryHandler struct {
	service *services.BursaryService
	log     *logger.Logger
}

// NewBursaryHandler creates a new bursary handler
func NewBursaryHandler(service *services.BursaryService, log *logger.Logger) *BursaryHandler {
	return &BursaryHandler{service: service, log: log}
}

// ListBursaries handles GET /api/v1/bursaries
func (h *BursaryHandler) ListBursaries(c *fiber.Ctx) error {
	result, err := h.service.List(c.UserContext(), handlers.QueryValues(c))
	if err != nil {
		return handlers.RespondError(c, h.log, err)
	}
	pagination := response.CalculatePagination(result.Page.Number, result.Page.Size, result.Total)
	return response.Paginated(c, dto.NewBursaryLists(result.Items), pagination)
}

// GetBursary handles GET /api/v1/bursaries/:slug
func (h *BursaryHandler) GetBursary(c *fiber.Ctx) error {
	b, err := h.service.Get(c.UserContext(), c.Params("slug"))
	if err != nil {
		return handlers.RespondError(c, h.log, err)
	}
	return response.Success(c, dto.NewBursaryDetail(*b))
}

// ListOwned handles GET /api/v1/provider/bursaries
func (h *BursaryHandler) ListOwned(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	result, err := h.service.ListOwned(c.UserContext(), actor, handlers.QueryValues(c))
	if err != nil {
		return handlers.RespondError(c, h.log, err)
	}
	pagination := response.CalculatePagination(result.Page.Number, result.Page.Size, result.Total)
	return response.Paginated(c, dto.NewBursaryLists(result.Items), pagination)
}

// GetOwned handles GET /api/v1/provider/bursaries/:slug
func (h *BursaryHandler) GetOwned(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	b, err := h.service.GetOwned(c.UserContext(), actor, c.Params("slug"))
	if err != nil {
		return handlers.RespondError(c, h.log, err)
	}
	return response.Success(c, dto.NewBursaryDetail(*b))
}

// CreateBursary handles POST /api/v1/provider/bursaries
func (h *BursaryHandler) CreateBursary(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req dto.BursaryWrite
	if err := c.BodyParser(&req); err != nil {
		return handlers.BodyError(c, err, &req)
	}

	b, err := h.service.Create(c.UserContext(), actor, req)
	if err != nil {
		return handlers.RespondError(c, h.log, err)
	}

	h.log.Info("Bursary created", "slug", b.Slug, "owner_id", b.OwnerID)
	return response.Created(c, dto.NewBursaryWritten(*b))
}

// ReplaceBursary handles PUT /api/v1/provider/bursaries/:slug
func (h *BursaryHandler) ReplaceBursary(c *fiber.Ctx) error {
	return h.update(c, false)
}

// PatchBursary handles PATCH /api/v1/provider/bursaries/:slug
func (h *BursaryHandler) PatchBursary(c *fiber.Ctx) error {
	return h.update(c, true)
}

func (h *BursaryHandler) update(c *fiber.Ctx, partial bool) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req dto.BursaryWrite
	if err := c.BodyParser(&req); err != nil {
		return handlers.BodyError(c, err, &req)
	}

	b, err := h.service.Update(c.UserContext(), actor, c.Params("slug"), req, partial)
	if err != nil {
		return handlers.RespondError(c, h.log, err)
	}
	return response.Success(c, dto.NewBursaryWritten(*b))
}

// DeleteBursary handles DELETE /api/v1/provider/bursaries/:slug
func (h *BursaryHandler) DeleteBursary(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	slug := c.Params("slug")
	if err := h.service.Delete(c.UserContext(), actor, slug); err != nil {
		return handlers.RespondError(c, h.log, err)
	}

	h.log.Info("Bursary deleted", "slug", slug, "actor_id", actor.ID)
	return response.NoContent(c)
}
