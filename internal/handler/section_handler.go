package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/acadsuite/campus-api/internal/dto"
	"github.com/acadsuite/campus-api/internal/service"
	"github.com/acadsuite/campus-api/internal/utils"
)

// SectionHandler handles section endpoints.
type SectionHandler struct {
	sections *service.SectionService
	logger   zerolog.Logger
}

// NewSectionHandler constructs the handler.
func NewSectionHandler(sections *service.SectionService, logger zerolog.Logger) *SectionHandler {
	return &SectionHandler{
		sections: sections,
		logger:   logger.With().Str("component", "section_handler").Logger(),
	}
}

// RegisterReads wires the read-only section routes.
func (h *SectionHandler) RegisterReads(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

// RegisterWrites wires the mutating section routes.
func (h *SectionHandler) RegisterWrites(router fiber.Router, guards ...fiber.Handler) {
	router.Post("", withGuards(guards, h.create)...)
	router.Put("/:id", withGuards(guards, h.update)...)
	router.Delete("/:id", withGuards(guards, h.remove)...)
}

func (h *SectionHandler) create(c *fiber.Ctx) error {
	var req dto.SectionCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.sections.Create(c.Context(), req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "section created", result)
}

func (h *SectionHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid section id")
	}

	result, err := h.sections.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "section retrieved", result)
}

func (h *SectionHandler) list(c *fiber.Ctx) error {
	req := dto.SectionListRequest{
		Semester: c.Query("semester"),
		Name:     c.Query("name"),
		Search:   c.Query("search"),
		Sort:     c.Query("ordering"),
	}

	var err error
	if req.DepartmentID, err = parseQueryUintPtr(c, "department_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid department_id")
	}
	if req.CollegeID, err = parseQueryUintPtr(c, "college_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid college_id")
	}
	if req.Page, err = parseQueryInt(c, "page"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	if req.PageSize, err = parseQueryInt(c, "page_size"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page_size")
	}

	result, err := h.sections.List(c.Context(), req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendPage(c, "sections retrieved", result.Items, pageOf(result.Pagination))
}

func (h *SectionHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid section id")
	}

	var req dto.SectionUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.sections.Update(c.Context(), id, req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "section updated", result)
}

func (h *SectionHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid section id")
	}

	if err := h.sections.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "section deleted", nil)
}
