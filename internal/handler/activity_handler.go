package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/acadsuite/campus-api/internal/dto"
	"github.com/acadsuite/campus-api/internal/service"
	"github.com/acadsuite/campus-api/internal/utils"
)

// ActivityHandler exposes the read side of the audit trail.
type ActivityHandler struct {
	activity *service.ActivityService
	logger   zerolog.Logger
}

// NewActivityHandler constructs the handler.
func NewActivityHandler(activity *service.ActivityService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		activity: activity,
		logger:   logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register wires the audit trail routes.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	req := dto.ActivityListRequest{
		Action:    c.Query("action"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	}

	var err error
	if req.UserID, err = parseQueryUintPtr(c, "user_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user_id")
	}
	if req.Page, err = parseQueryInt(c, "page"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	if req.PageSize, err = parseQueryInt(c, "page_size"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page_size")
	}

	result, err := h.activity.List(c.Context(), userIDFromContext(c), req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendPage(c, "activity logs retrieved", result.Items, pageOf(result.Pagination))
}
