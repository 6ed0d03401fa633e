package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/acadsuite/campus-api/internal/dto"
	"github.com/acadsuite/campus-api/internal/service"
	"github.com/acadsuite/campus-api/internal/utils"
)

// CollegeHandler handles college endpoints.
type CollegeHandler struct {
	colleges *service.CollegeService
	logger   zerolog.Logger
}

// NewCollegeHandler constructs the handler.
func NewCollegeHandler(colleges *service.CollegeService, logger zerolog.Logger) *CollegeHandler {
	return &CollegeHandler{
		colleges: colleges,
		logger:   logger.With().Str("component", "college_handler").Logger(),
	}
}

// RegisterReads wires the read-only college routes.
func (h *CollegeHandler) RegisterReads(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Get("/:id/summary", h.summary)
}

// RegisterWrites wires the mutating college routes.
func (h *CollegeHandler) RegisterWrites(router fiber.Router, guards ...fiber.Handler) {
	router.Post("", withGuards(guards, h.create)...)
	router.Put("/:id", withGuards(guards, h.update)...)
	router.Delete("/:id", withGuards(guards, h.remove)...)
}

func (h *CollegeHandler) create(c *fiber.Ctx) error {
	var req dto.CollegeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.colleges.Create(c.Context(), req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "college created", result)
}

func (h *CollegeHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid college id")
	}

	result, err := h.colleges.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "college retrieved", result)
}

func (h *CollegeHandler) list(c *fiber.Ctx) error {
	req := dto.CollegeListRequest{
		Name:   c.Query("name"),
		Code:   c.Query("code"),
		Search: c.Query("search"),
		Sort:   c.Query("ordering"),
	}

	var err error
	if req.Page, err = parseQueryInt(c, "page"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	if req.PageSize, err = parseQueryInt(c, "page_size"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page_size")
	}

	result, err := h.colleges.List(c.Context(), req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendPage(c, "colleges retrieved", result.Items, pageOf(result.Pagination))
}

func (h *CollegeHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid college id")
	}

	var req dto.CollegeUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.colleges.Update(c.Context(), id, req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "college updated", result)
}

func (h *CollegeHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid college id")
	}

	if err := h.colleges.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "college deleted", nil)
}

func (h *CollegeHandler) summary(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid college id")
	}

	result, err := h.colleges.Summary(c.Context(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "college summary retrieved", result)
}
