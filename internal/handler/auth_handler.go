package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/acadsuite/campus-api/internal/dto"
	"github.com/acadsuite/campus-api/internal/service"
	"github.com/acadsuite/campus-api/internal/utils"
)

// AuthHandler handles registration, login, token lifecycle and self-service
// profile endpoints.
type AuthHandler struct {
	auth      *service.AuthService
	dashboard *service.DashboardService
	logger    zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(auth *service.AuthService, dashboard *service.DashboardService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		dashboard: dashboard,
		logger:    logger.With().Str("component", "auth_handler").Logger(),
	}
}

// RegisterPublic wires the endpoints that do not require a valid session.
func (h *AuthHandler) RegisterPublic(router fiber.Router) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
	router.Post("/token/refresh", h.refresh)
}

// RegisterProtected wires the endpoints that require an authenticated caller.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Post("/logout", h.logout)
	router.Get("/profile", h.profile)
	router.Put("/profile", h.updateProfile)
	router.Post("/password/change", h.changePassword)
	router.Get("/dashboard", h.dashboardView)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	var actorID *uint
	if id := userIDFromContext(c); id != 0 {
		actorID = &id
	}

	result, err := h.auth.Register(c.Context(), req, actorID, clientMeta(c))
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "account created", result)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.auth.Login(c.Context(), req, clientMeta(c))
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "login successful", result)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.auth.Logout(c.Context(), req, userIDFromContext(c), clientMeta(c)); err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "logout successful", nil)
}

func (h *AuthHandler) refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.auth.Refresh(c.Context(), req)
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "token refreshed", result)
}

func (h *AuthHandler) profile(c *fiber.Ctx) error {
	result, err := h.auth.Profile(c.Context(), userIDFromContext(c))
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "profile retrieved", result)
}

func (h *AuthHandler) updateProfile(c *fiber.Ctx) error {
	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.auth.UpdateProfile(c.Context(), userIDFromContext(c), req, clientMeta(c))
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "profile updated", result)
}

func (h *AuthHandler) changePassword(c *fiber.Ctx) error {
	var req dto.PasswordChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.auth.ChangePassword(c.Context(), userIDFromContext(c), req, clientMeta(c)); err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "password changed", nil)
}

func (h *AuthHandler) dashboardView(c *fiber.Ctx) error {
	result, err := h.dashboard.Dashboard(c.Context(), userIDFromContext(c))
	if err != nil {
		return respondServiceError(c, h.logger, err)
	}
	return utils.SendSuccess(c, "dashboard retrieved", result)
}
