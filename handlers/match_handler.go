package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type MatchHandler struct {
	matchService   services.MatchService
	pairingService services.PairingService
	logger         *slog.Logger
}

func NewMatchHandler(ms services.MatchService, ps services.PairingService, logger *slog.Logger) *MatchHandler {
	return &MatchHandler{matchService: ms, pairingService: ps, logger: logger}
}

type reportMatchInput struct {
	WinnerID int `json:"winner_id"`
	LoserID  int `json:"loser_id"`
}

// Report godoc
// @Summary Report the outcome of a match
// @Tags matches
// @Accept json
// @Param body body reportMatchInput true "Winner and loser ids"
// @Success 204
// @Failure 400 {object} map[string]string "Invalid ids"
// @Failure 404 {object} map[string]string "Unknown player"
// @Security BearerAuth
// @Router /matches [post]
func (h *MatchHandler) Report(w http.ResponseWriter, r *http.Request) {
	var input reportMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, h.logger, err)
		return
	}

	if err := h.matchService.ReportMatch(r.Context(), input.WinnerID, input.LoserID); err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List godoc
// @Summary Pairs that have already been scheduled
// @Tags matches
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /matches [get]
func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchService.ListMatches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

// PairRound godoc
// @Summary Generate the next round of Swiss pairings
// @Description Pairs are recorded immediately; the last-ranked player sits out when the field is odd.
// @Tags rounds
// @Produce json
// @Success 201 {object} map[string]interface{} "Pairings and optional bye"
// @Failure 409 {object} map[string]string "No valid pairing exists"
// @Security BearerAuth
// @Router /rounds [post]
func (h *MatchHandler) PairRound(w http.ResponseWriter, r *http.Request) {
	round, err := h.pairingService.NextRound(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"pairings": round.Pairings, "bye": round.Bye}, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}
