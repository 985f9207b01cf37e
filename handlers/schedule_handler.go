package handlers

import (
	"net/http"

	"github.com/bowen700/fantasy-workplace/repositories"
	"github.com/bowen700/fantasy-workplace/services"
)

type ScheduleHandler struct {
	scheduleService services.ScheduleService
	scoreService    services.ScoreService
	matchupRepo     repositories.MatchupRepository
}

func NewScheduleHandler(
	scheduleService services.ScheduleService,
	scoreService services.ScoreService,
	matchupRepo repositories.MatchupRepository,
) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
		scoreService:    scoreService,
		matchupRepo:     matchupRepo,
	}
}

// GenerateMatchupsHandler godoc
// @Summary Generate matchups for a season week
// @Tags schedule
// @Param seasonID path int true "Season ID"
// @Param week path int true "Week number"
// @Param overwrite query bool false "Replace existing matchups"
// @Success 201 {object} map[string]interface{}
// @Router /seasons/{seasonID}/weeks/{week}/matchups [post]
func (h *ScheduleHandler) GenerateMatchupsHandler(w http.ResponseWriter, r *http.Request) {
	seasonID, err := getIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	week, err := getIDFromURL(r, "week")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	overwrite := r.URL.Query().Get("overwrite") == "true"

	matchups, err := h.scheduleService.GenerateMatchups(r.Context(), seasonID, week, overwrite)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matchups": matchups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMatchupsHandler godoc
// @Summary List matchups for a season week
// @Tags schedule
// @Param seasonID path int true "Season ID"
// @Param week path int true "Week number"
// @Success 200 {object} map[string]interface{}
// @Router /seasons/{seasonID}/weeks/{week}/matchups [get]
func (h *ScheduleHandler) ListMatchupsHandler(w http.ResponseWriter, r *http.Request) {
	seasonID, err := getIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	week, err := getIDFromURL(r, "week")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matchups, err := h.matchupRepo.ListBySeasonWeek(r.Context(), seasonID, week)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matchups": matchups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ShuffleWeekHandler godoc
// @Summary Randomly re-pair one week's matchups
// @Tags schedule
// @Param seasonID path int true "Season ID"
// @Param week path int true "Week number"
// @Success 200 {object} map[string]interface{}
// @Router /seasons/{seasonID}/weeks/{week}/shuffle [post]
func (h *ScheduleHandler) ShuffleWeekHandler(w http.ResponseWriter, r *http.Request) {
	seasonID, err := getIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	week, err := getIDFromURL(r, "week")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matchups, err := h.scheduleService.ShuffleWeek(r.Context(), seasonID, week)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matchups": matchups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ShuffleSeasonHandler godoc
// @Summary Re-pair all regular-season weeks minimizing repeat matchups
// @Tags schedule
// @Param seasonID path int true "Season ID"
// @Success 200 {object} map[string]interface{}
// @Router /seasons/{seasonID}/shuffle [post]
func (h *ScheduleHandler) ShuffleSeasonHandler(w http.ResponseWriter, r *http.Request) {
	seasonID, err := getIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.scheduleService.ShuffleSeason(r.Context(), seasonID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "season reshuffled"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RecalculateScoresHandler godoc
// @Summary Recompute scores and winners for a season week
// @Tags schedule
// @Param seasonID path int true "Season ID"
// @Param week path int true "Week number"
// @Success 200 {object} map[string]interface{}
// @Router /seasons/{seasonID}/weeks/{week}/scores [post]
func (h *ScheduleHandler) RecalculateScoresHandler(w http.ResponseWriter, r *http.Request) {
	seasonID, err := getIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	week, err := getIDFromURL(r, "week")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.scoreService.RecalculateScores(r.Context(), seasonID, week); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	matchups, err := h.matchupRepo.ListBySeasonWeek(r.Context(), seasonID, week)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matchups": matchups}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
