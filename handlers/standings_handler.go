package handlers

import (
	"net/http"

	"github.com/bowen700/fantasy-workplace/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
	reportService    services.ReportService
}

func NewStandingsHandler(standingsService services.StandingsService, reportService services.ReportService) *StandingsHandler {
	return &StandingsHandler{
		standingsService: standingsService,
		reportService:    reportService,
	}
}

// GetStandingsHandler godoc
// @Summary Current standings for a season
// @Tags standings
// @Param seasonID path int true "Season ID"
// @Success 200 {object} map[string]interface{}
// @Router /seasons/{seasonID}/standings [get]
func (h *StandingsHandler) GetStandingsHandler(w http.ResponseWriter, r *http.Request) {
	seasonID, err := getIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.standingsService.GetStandings(r.Context(), seasonID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ExportStandingsHandler godoc
// @Summary Export the season standings as a CSV report
// @Tags standings
// @Param seasonID path int true "Season ID"
// @Success 201 {object} map[string]interface{}
// @Router /seasons/{seasonID}/standings/export [post]
func (h *StandingsHandler) ExportStandingsHandler(w http.ResponseWriter, r *http.Request) {
	seasonID, err := getIDFromURL(r, "seasonID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.reportService.ExportStandings(r.Context(), seasonID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"report": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
