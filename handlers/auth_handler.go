package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Dosada05/swiss-tournament/services"
)

type AuthHandler struct {
	authService services.AuthService
	logger      *slog.Logger
}

func NewAuthHandler(authService services.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

type tokenInput struct {
	Password string `json:"password"`
}

// Token godoc
// @Summary Exchange the organizer password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body tokenInput true "Organizer password"
// @Success 200 {object} map[string]interface{} "token and expires_at"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 503 {object} map[string]string "Authentication not configured"
// @Router /auth/token [post]
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var input tokenInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, h.logger, err)
		return
	}
	if input.Password == "" {
		badRequestResponse(w, r, h.logger, errors.New("password is required"))
		return
	}

	token, expiresAt, err := h.authService.IssueToken(r.Context(), input.Password)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}

	response := jsonResponse{
		"token":      token,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}
