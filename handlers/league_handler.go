package handlers

import (
	"net/http"

	"github.com/bowen700/fantasy-workplace/services"
)

type LeagueHandler struct {
	leagueService services.LeagueService
}

func NewLeagueHandler(leagueService services.LeagueService) *LeagueHandler {
	return &LeagueHandler{leagueService: leagueService}
}

// CreateSeasonHandler godoc
// @Summary Create a season
// @Tags league
// @Accept json
// @Success 201 {object} map[string]interface{}
// @Router /seasons [post]
func (h *LeagueHandler) CreateSeasonHandler(w http.ResponseWriter, r *http.Request) {
	var input services.CreateSeasonInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	season, err := h.leagueService.CreateSeason(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"season": season}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetSeasonHandler godoc
// @Summary Get a season by ID
// @Tags league
// @Param seasonID path int true "Season ID"
// @Success 200 {object} map[string]interface{}
// @Router /seasons/{seasonID} [get]
func (h *LeagueHandler) GetSeasonHandler(w http.ResponseWriter, r *http.Request) {
	seasonID, err := getIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	season, err := h.leagueService.GetSeason(r.Context(), seasonID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"season": season}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListSeasonsHandler godoc
// @Summary List all seasons
// @Tags league
// @Success 200 {object} map[string]interface{}
// @Router /seasons [get]
func (h *LeagueHandler) ListSeasonsHandler(w http.ResponseWriter, r *http.Request) {
	seasons, err := h.leagueService.ListSeasons(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"seasons": seasons}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AdvanceWeekHandler godoc
// @Summary Advance the season's current week
// @Tags league
// @Param seasonID path int true "Season ID"
// @Success 200 {object} map[string]interface{}
// @Router /seasons/{seasonID}/advance-week [post]
func (h *LeagueHandler) AdvanceWeekHandler(w http.ResponseWriter, r *http.Request) {
	seasonID, err := getIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	season, err := h.leagueService.AdvanceWeek(r.Context(), seasonID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"season": season}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateMetricHandler godoc
// @Summary Create a metric definition
// @Tags league
// @Accept json
// @Success 201 {object} map[string]interface{}
// @Router /metrics [post]
func (h *LeagueHandler) CreateMetricHandler(w http.ResponseWriter, r *http.Request) {
	var input services.MetricDefinitionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	metric, err := h.leagueService.CreateMetric(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"metric": metric}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListMetricsHandler godoc
// @Summary List metric definitions
// @Tags league
// @Param active query bool false "Only active metrics"
// @Success 200 {object} map[string]interface{}
// @Router /metrics [get]
func (h *LeagueHandler) ListMetricsHandler(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	metrics, err := h.leagueService.ListMetrics(r.Context(), activeOnly)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"metrics": metrics}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateMetricHandler godoc
// @Summary Update a metric definition
// @Tags league
// @Accept json
// @Param metricID path int true "Metric ID"
// @Success 200 {object} map[string]interface{}
// @Router /metrics/{metricID} [put]
func (h *LeagueHandler) UpdateMetricHandler(w http.ResponseWriter, r *http.Request) {
	metricID, err := getIDFromURL(r, "metricID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.MetricDefinitionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	metric, err := h.leagueService.UpdateMetric(r.Context(), metricID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"metric": metric}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
