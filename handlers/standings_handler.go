package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/services"
)

type StandingsHandler struct {
	standingsService  services.StandingsService
	tournamentService services.TournamentService
	archiveService    services.ArchiveService
	logger            *slog.Logger
}

func NewStandingsHandler(
	ss services.StandingsService,
	ts services.TournamentService,
	as services.ArchiveService,
	logger *slog.Logger,
) *StandingsHandler {
	return &StandingsHandler{
		standingsService:  ss,
		tournamentService: ts,
		archiveService:    as,
		logger:            logger,
	}
}

// List godoc
// @Summary Player standings
// @Description Ordered by wins ascending by default; order=desc gives the pairing order. Ties break on id.
// @Tags standings
// @Produce json
// @Param order query string false "asc or desc"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid order"
// @Router /standings [get]
func (h *StandingsHandler) List(w http.ResponseWriter, r *http.Request) {
	order := models.StandingOrder(r.URL.Query().Get("order"))

	standings, err := h.standingsService.ListStandings(r.Context(), order)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

// Overview godoc
// @Summary Player count, standings and match history in one response
// @Tags standings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /overview [get]
func (h *StandingsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.tournamentService.Overview(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"overview": overview}, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

// Archive godoc
// @Summary Upload a standings snapshot to object storage
// @Tags standings
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 503 {object} map[string]string "Archive storage not configured"
// @Security BearerAuth
// @Router /archive [post]
func (h *StandingsHandler) Archive(w http.ResponseWriter, r *http.Request) {
	result, err := h.archiveService.Snapshot(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"snapshot": result}, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}
