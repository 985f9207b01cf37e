package handlers

import (
	"net/http"
	"strconv"

	"github.com/bowen700/fantasy-workplace/middleware"
	"github.com/bowen700/fantasy-workplace/models"
	"github.com/bowen700/fantasy-workplace/services"
)

type SubmissionHandler struct {
	submissionService services.SubmissionService
	coachService      services.CoachService
}

func NewSubmissionHandler(submissionService services.SubmissionService, coachService services.CoachService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		coachService:      coachService,
	}
}

// SubmitMetricHandler godoc
// @Summary Submit a raw metric value for a week
// @Tags submissions
// @Accept json
// @Success 201 {object} map[string]interface{}
// @Router /submissions [post]
func (h *SubmissionHandler) SubmitMetricHandler(w http.ResponseWriter, r *http.Request) {
	var input services.SubmitMetricInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		errorResponse(w, r, http.StatusUnauthorized, err.Error())
		return
	}
	role, err := middleware.GetUserRoleFromContext(r.Context())
	if err != nil {
		errorResponse(w, r, http.StatusUnauthorized, err.Error())
		return
	}

	// Competitors may only submit for themselves; admins can backfill on
	// anyone's behalf.
	if input.CompetitorID == 0 {
		input.CompetitorID = userID
	}
	if input.CompetitorID != userID && role != string(models.RoleAdmin) {
		mapServiceErrorToHTTP(w, r, services.ErrForbiddenOperation)
		return
	}

	submission, err := h.submissionService.SubmitMetric(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"submission": submission}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListSubmissionsHandler godoc
// @Summary List one competitor's submissions for a week
// @Tags submissions
// @Param competitorID path int true "Competitor ID"
// @Param season_id query int true "Season ID"
// @Param week query int true "Week number"
// @Success 200 {object} map[string]interface{}
// @Router /competitors/{competitorID}/submissions [get]
func (h *SubmissionHandler) ListSubmissionsHandler(w http.ResponseWriter, r *http.Request) {
	competitorID, err := getIDFromURL(r, "competitorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	seasonID, week, err := seasonWeekFromQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	submissions, err := h.submissionService.ListForCompetitor(r.Context(), competitorID, seasonID, week)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"submissions": submissions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// WeeklySummariesHandler godoc
// @Summary Per-metric weekly summaries for a competitor
// @Tags submissions
// @Param competitorID path int true "Competitor ID"
// @Param season_id query int true "Season ID"
// @Param week query int true "Week number"
// @Success 200 {object} map[string]interface{}
// @Router /competitors/{competitorID}/summaries [get]
func (h *SubmissionHandler) WeeklySummariesHandler(w http.ResponseWriter, r *http.Request) {
	competitorID, err := getIDFromURL(r, "competitorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	seasonID, week, err := seasonWeekFromQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	summaries, err := h.coachService.WeeklySummaries(r.Context(), competitorID, seasonID, week)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"summaries": summaries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CoachingNoteHandler godoc
// @Summary Generate a coaching note from a competitor's weekly summaries
// @Tags submissions
// @Param competitorID path int true "Competitor ID"
// @Param season_id query int true "Season ID"
// @Param week query int true "Week number"
// @Success 200 {object} map[string]interface{}
// @Router /competitors/{competitorID}/coaching-note [post]
func (h *SubmissionHandler) CoachingNoteHandler(w http.ResponseWriter, r *http.Request) {
	competitorID, err := getIDFromURL(r, "competitorID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	seasonID, week, err := seasonWeekFromQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	note, err := h.coachService.CoachingNote(r.Context(), competitorID, seasonID, week)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"note": note}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func seasonWeekFromQuery(r *http.Request) (seasonID, week int, err error) {
	seasonID, err = strconv.Atoi(r.URL.Query().Get("season_id"))
	if err != nil || seasonID < 1 {
		return 0, 0, errInvalidQueryParam("season_id")
	}
	week, err = strconv.Atoi(r.URL.Query().Get("week"))
	if err != nil || week < 1 {
		return 0, 0, errInvalidQueryParam("week")
	}
	return seasonID, week, nil
}
