package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/acadsuite/campus-api/internal/dto"
	"github.com/acadsuite/campus-api/internal/service"
	"github.com/acadsuite/campus-api/internal/utils"
)

// UserAdminHandler handles admin user management endpoints.
type UserAdminHandler struct {
	users  *service.UserAdminService
	logger zerolog.Logger
}

// NewUserAdminHandler constructs the handler.
func NewUserAdminHandler(users *service.UserAdminService, logger zerolog.Logger) *UserAdminHandler {
	return &UserAdminHandler{
		users:  users,
		logger: logger.With().Str("component", "user_admin_handler").Logger(),
	}
}

// Register wires the user management routes.
func (h *UserAdminHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.deactivate)
}

func (h *UserAdminHandler) list(c *fiber.Ctx) error {
	req := dto.UserListRequest{
		Role:   c.Query("role"),
		Search: c.Query("search"),
		Sort:   c.Query("ordering"),
	}

	var err error
	if req.DepartmentID, err = parseQueryUintPtr(c, "department_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid department_id")
	}
	if req.Active, err = parseQueryBoolPtr(c, "is_active"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid is_active")
	}
	if req.Page, err = parseQueryInt(c, "page"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	if req.PageSize, err = parseQueryInt(c, "page_size"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page_size")
	}

	result, err := h.users.List(c.Context(), userIDFromContext(c), req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendPage(c, "users retrieved", result.Items, pageOf(result.Pagination))
}

func (h *UserAdminHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	result, err := h.users.Get(c.Context(), userIDFromContext(c), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "user retrieved", result)
}

func (h *UserAdminHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var req dto.AdminUserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.users.Update(c.Context(), userIDFromContext(c), id, req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "user updated", result)
}

func (h *UserAdminHandler) deactivate(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	result, err := h.users.Deactivate(c.Context(), userIDFromContext(c), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "user deactivated", result)
}
