package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
	logger        *slog.Logger
}

func NewPlayerHandler(ps services.PlayerService, logger *slog.Logger) *PlayerHandler {
	return &PlayerHandler{playerService: ps, logger: logger}
}

type registerPlayerInput struct {
	Name string `json:"name"`
}

// Register godoc
// @Summary Register a player
// @Tags players
// @Accept json
// @Produce json
// @Param body body registerPlayerInput true "Player name (need not be unique)"
// @Success 201 {object} map[string]interface{} "Registered player"
// @Failure 400 {object} map[string]string "Missing name"
// @Security BearerAuth
// @Router /players [post]
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input registerPlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, h.logger, err)
		return
	}

	player, err := h.playerService.RegisterPlayer(r.Context(), input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

// Count godoc
// @Summary Number of registered players
// @Tags players
// @Produce json
// @Success 200 {object} map[string]int
// @Router /players/count [get]
func (h *PlayerHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.playerService.CountPlayers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"count": count}, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

// DeleteAll godoc
// @Summary Remove every player and all match history
// @Tags players
// @Success 204
// @Security BearerAuth
// @Router /players [delete]
func (h *PlayerHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.playerService.DeletePlayers(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteMatches godoc
// @Summary Reset every player's record and clear match history
// @Tags matches
// @Success 204
// @Security BearerAuth
// @Router /matches [delete]
func (h *PlayerHandler) DeleteMatches(w http.ResponseWriter, r *http.Request) {
	if err := h.playerService.DeleteMatches(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
