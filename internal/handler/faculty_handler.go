package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/acadsuite/campus-api/internal/dto"
	"github.com/acadsuite/campus-api/internal/service"
	"github.com/acadsuite/campus-api/internal/utils"
)

// FacultyHandler handles faculty endpoints including bulk upload.
type FacultyHandler struct {
	faculties *service.FacultyService
	logger    zerolog.Logger
}

// NewFacultyHandler constructs the handler.
func NewFacultyHandler(faculties *service.FacultyService, logger zerolog.Logger) *FacultyHandler {
	return &FacultyHandler{
		faculties: faculties,
		logger:    logger.With().Str("component", "faculty_handler").Logger(),
	}
}

// RegisterReads wires the read-only faculty routes.
func (h *FacultyHandler) RegisterReads(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

// RegisterWrites wires the mutating faculty routes.
func (h *FacultyHandler) RegisterWrites(router fiber.Router, guards ...fiber.Handler) {
	router.Post("", withGuards(guards, h.create)...)
	router.Post("/bulk-upload", withGuards(guards, h.bulkUpload)...)
	router.Put("/:id", withGuards(guards, h.update)...)
	router.Delete("/:id", withGuards(guards, h.remove)...)
}

func (h *FacultyHandler) create(c *fiber.Ctx) error {
	var req dto.FacultyCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.faculties.Create(c.Context(), req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "faculty created", result)
}

func (h *FacultyHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid faculty id")
	}

	result, err := h.faculties.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "faculty retrieved", result)
}

func (h *FacultyHandler) list(c *fiber.Ctx) error {
	req := dto.FacultyListRequest{
		Search: c.Query("search"),
		Sort:   c.Query("ordering"),
	}

	var err error
	if req.DepartmentID, err = parseQueryUintPtr(c, "department_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid department_id")
	}
	if req.CollegeID, err = parseQueryUintPtr(c, "college_id"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid college_id")
	}
	if req.ExperienceYears, err = parseQueryIntPtr(c, "experience_years"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid experience_years")
	}
	if req.Page, err = parseQueryInt(c, "page"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	if req.PageSize, err = parseQueryInt(c, "page_size"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page_size")
	}

	result, err := h.faculties.List(c.Context(), req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendPage(c, "faculties retrieved", result.Items, pageOf(result.Pagination))
}

func (h *FacultyHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid faculty id")
	}

	var req dto.FacultyUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.faculties.Update(c.Context(), id, req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "faculty updated", result)
}

func (h *FacultyHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid faculty id")
	}

	if err := h.faculties.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "faculty deleted", nil)
}

func (h *FacultyHandler) bulkUpload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	file, err := header.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "unable to read uploaded file")
	}
	defer file.Close()

	result, err := h.faculties.BulkImport(c.Context(), header.Filename, file)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "faculty import complete", result)
}
