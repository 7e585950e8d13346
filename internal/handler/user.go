package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bloglist/bloglist/internal/auth"
	"github.com/bloglist/bloglist/internal/handler/dto"
	"github.com/bloglist/bloglist/internal/service"
)

// UserHandler handles HTTP requests for user and session operations.
type UserHandler struct {
	svc    *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := dto.ValidateStruct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_registered",
		"user_id", user.ID,
		"username", user.Username,
	)

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(user))
}

// Login handles POST /api/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := dto.ValidateStruct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	out, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("user_logged_in",
		"user_id", out.User.ID,
		"username", out.User.Username,
	)

	writeJSON(w, http.StatusOK, dto.ToLoginResponse(out.Token, out.User))
}

// Logout handles POST /api/logout.
// The session token is revoked for the remainder of its lifetime.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustAuthFromContext(r.Context())

	if err := h.svc.Logout(r.Context(), authCtx); err != nil {
		h.logger.Error("logout_failed", "error", err, "user_id", authCtx.UserID)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	h.logger.Info("user_logged_out", "user_id", authCtx.UserID)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps user service errors to HTTP responses.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		h.writeError(w, http.StatusConflict, "USERNAME_TAKEN", "Username already taken")
	case errors.Is(err, service.ErrInvalidCredentials):
		h.writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "wrong username or password")
	case errors.Is(err, auth.ErrUsernameLength),
		errors.Is(err, auth.ErrUsernameInvalid),
		errors.Is(err, auth.ErrPasswordLength),
		errors.Is(err, auth.ErrNameTooLong):
		h.writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		h.logger.Error("internal_error", "error", err)
		h.writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// writeError writes an error response.
func (h *UserHandler) writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
