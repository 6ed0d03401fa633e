package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/acadsuite/campus-api/internal/dto"
	"github.com/acadsuite/campus-api/internal/service"
	"github.com/acadsuite/campus-api/internal/utils"
)

// StudentHandler handles student endpoints including bulk upload.
type StudentHandler struct {
	students *service.StudentService
	logger   zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(students *service.StudentService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		students: students,
		logger:   logger.With().Str("component", "student_handler").Logger(),
	}
}

// RegisterReads wires the read-only student routes.
func (h *StudentHandler) RegisterReads(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

// RegisterWrites wires the mutating student routes.
func (h *StudentHandler) RegisterWrites(router fiber.Router, guards ...fiber.Handler) {
	router.Post("", withGuards(guards, h.create)...)
	router.Post("/bulk-upload", withGuards(guards, h.bulkUpload)...)
	router.Put("/:id", withGuards(guards, h.update)...)
	router.Delete("/:id", withGuards(guards, h.remove)...)
}

func (h *StudentHandler) create(c *fiber.Ctx) error {
	var req dto.StudentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.students.Create(c.Context(), req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student created", result)
}

func (h *StudentHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	result, err := h.students.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "student retrieved", result)
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	req := dto.StudentListRequest{
		CurrentSemester: c.Query("current_semester"),
		Search:          c.Query("search"),
		Sort:            c.Query("ordering"),
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

	result, err := h.students.List(c.Context(), req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendPage(c, "students retrieved", result.Items, pageOf(result.Pagination))
}

func (h *StudentHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	var req dto.StudentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.students.Update(c.Context(), id, req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "student updated", result)
}

func (h *StudentHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	if err := h.students.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "student deleted", nil)
}

func (h *StudentHandler) bulkUpload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	file, err := header.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "unable to read uploaded file")
	}
	defer file.Close()

	result, err := h.students.BulkImport(c.Context(), header.Filename, file)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "student import complete", result)
}
