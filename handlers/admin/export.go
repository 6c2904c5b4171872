package admin

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mavhungutrezzy/umami-tube/handlers"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportCatalog streams the filtered catalog as a workbook
// GET /admin/export.xlsx
func (h *AdminHandler) ExportCatalog(c *fiber.Ctx) error {
	data, err := h.export.Workbook(c.UserContext(), handlers.QueryValues(c))
	if err != nil {
		return handlers.RespondError(c, h.log, err)
	}

	filename := fmt.Sprintf("catalog-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
