package admin

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/mavhungutrezzy/umami-tube/handlers"
	"github.com/mavhungutrezzy/umami-tube/model"
	"github.com/mavhungutrezzy/umami-tube/services"
	"github.com/mavhungutrezzy/umami-tube/utils/logger"
	"github.com/mavhungutrezzy/umami-tube/utils/response"
	"gorm.io/gorm"
)

// AdminHandler serves operator-only views of the catalog
type AdminHandler struct {
	db     *gorm.DB
	export *services.ExportService
	log    *logger.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *gorm.DB, export *services.ExportService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{db: db, export: export, log: log}
}

// ListAuditLogs retrieves audit entries, newest first
// GET /admin/audit-logs
func (h *AdminHandler) ListAuditLogs(c *fiber.Ctx) error {
	params := handlers.QueryValues(c)
	page := services.ParsePage(params)

	query := h.db.WithContext(c.UserContext()).Model(&model.AuditLog{})

	if action := c.Query("action"); action != "" {
		query = query.Where("action = ?", action)
	}
	if resource := c.Query("resource"); resource != "" {
		query = query.Where("resource = ?", resource)
	}
	if actorID, err := strconv.ParseUint(c.Query("actor_id"), 10, 32); err == nil {
		query = query.Where("actor_id = ?", actorID)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return handlers.RespondError(c, h.log, err)
	}

	var logs []model.AuditLog
	if err := query.Order("created_at DESC").Order("id DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&logs).Error; err != nil {
		return handlers.RespondError(c, h.log, err)
	}

	return response.Paginated(c, logs, response.CalculatePagination(page.Number, page.Size, total))
}
