package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/acadsuite/campus-api/internal/dto"
	"github.com/acadsuite/campus-api/internal/service"
	"github.com/acadsuite/campus-api/internal/utils"
)

// DepartmentHandler handles department endpoints.
type DepartmentHandler struct {
	departments *service.DepartmentService
	logger      zerolog.Logger
}

// NewDepartmentHandler constructs the handler.
func NewDepartmentHandler(departments *service.DepartmentService, logger zerolog.Logger) *DepartmentHandler {
	return &DepartmentHandler{
		departments: departments,
		logger:      logger.With().Str("component", "department_handler").Logger(),
	}
}

// Register wires the department routes.
func (h *DepartmentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.remove)
}

func (h *DepartmentHandler) create(c *fiber.Ctx) error {
	var req dto.DepartmentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.departments.Create(c.Context(), req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "department created", result)
}

func (h *DepartmentHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid department id")
	}

	result, err := h.departments.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "department retrieved", result)
}

func (h *DepartmentHandler) list(c *fiber.Ctx) error {
	req := dto.DepartmentListRequest{
		Name:   c.Query("name"),
		Code:   c.Query("code"),
		Search: c.Query("search"),
		Sort:   c.Query("ordering"),
	}

	var err error
	if req.CollegeID, err = parseQueryUintPtr(c, "college_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid college_id")
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

	result, err := h.departments.List(c.Context(), req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendPage(c, "departments retrieved", result.Items, pageOf(result.Pagination))
}

func (h *DepartmentHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid department id")
	}

	var req dto.DepartmentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.departments.Update(c.Context(), id, req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "department updated", result)
}

func (h *DepartmentHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid department id")
	}

	if err := h.departments.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "department deleted", nil)
}
