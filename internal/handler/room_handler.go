package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/acadsuite/campus-api/internal/dto"
	"github.com/acadsuite/campus-api/internal/service"
	"github.com/acadsuite/campus-api/internal/utils"
)

// RoomHandler handles room endpoints.
type RoomHandler struct {
	rooms  *service.RoomService
	logger zerolog.Logger
}

// NewRoomHandler constructs the handler.
func NewRoomHandler(rooms *service.RoomService, logger zerolog.Logger) *RoomHandler {
	return &RoomHandler{
		rooms:  rooms,
		logger: logger.With().Str("component", "room_handler").Logger(),
	}
}

// RegisterReads wires the read-only room routes.
func (h *RoomHandler) RegisterReads(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

// RegisterWrites wires the mutating room routes.
func (h *RoomHandler) RegisterWrites(router fiber.Router, guards ...fiber.Handler) {
	router.Post("", withGuards(guards, h.create)...)
	router.Put("/:id", withGuards(guards, h.update)...)
	router.Delete("/:id", withGuards(guards, h.remove)...)
}

func (h *RoomHandler) create(c *fiber.Ctx) error {
	var req dto.RoomCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.rooms.Create(c.Context(), req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "room created", result)
}

func (h *RoomHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid room id")
	}

	result, err := h.rooms.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "room retrieved", result)
}

func (h *RoomHandler) list(c *fiber.Ctx) error {
	req := dto.RoomListRequest{
		RoomType: c.Query("room_type"),
		Search:   c.Query("search"),
		Sort:     c.Query("ordering"),
	}

	var err error
	if req.Capacity, err = parseQueryIntPtr(c, "capacity"); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid capacity")
	}
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

	result, err := h.rooms.List(c.Context(), req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendPage(c, "rooms retrieved", result.Items, pageOf(result.Pagination))
}

func (h *RoomHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid room id")
	}

	var req dto.RoomUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.rooms.Update(c.Context(), id, req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "room updated", result)
}

func (h *RoomHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid room id")
	}

	if err := h.rooms.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "room deleted", nil)
}
