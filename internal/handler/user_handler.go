package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"movie-catalog-service/internal/service"
	"movie-catalog-service/internal/viewstate"
)

// UserHandler handles the local login gate.
type UserHandler struct {
	svc     *service.UserService
	session *viewstate.SessionAdapter
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, session *viewstate.SessionAdapter) *UserHandler {
	return &UserHandler{svc: svc, session: session}
}

// CredentialsRequest is the request body for registration and login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the login result. Wrong password, unknown user and
// storage failure are indistinguishable here on purpose.
type LoginResponse struct {
	Success bool `json:"success"`
}

// Register stores the local user. Failures are swallowed: the response is
// the same either way and the error only reaches the log.
func (h *UserHandler) Register(c fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	if _, err := h.svc.Register(req.Username, req.Password); err != nil {
		slog.Error("registration failed", "username", req.Username, "error", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Login checks the supplied credentials against the stored record.
func (h *UserHandler) Login(c fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	return c.JSON(LoginResponse{Success: h.svc.Login(req.Username, req.Password)})
}

// Session returns the current session view.
func (h *UserHandler) Session(c fiber.Ctx) error {
	return c.JSON(h.session.State())
}

// Logout deletes all local user data.
func (h *UserHandler) Logout(c fiber.Ctx) error {
	if err := h.svc.Logout(); err != nil {
		slog.Error("logout failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to clear user data"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
