package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"surveypulse/internal/service"
	"surveypulse/internal/transport/rest/middleware"
)

// AnalyticsHandler serves computed survey summaries
type AnalyticsHandler struct {
	surveySvc    *service.SurveyService
	analyticsSvc *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(surveySvc *service.SurveyService, analyticsSvc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		surveySvc:    surveySvc,
		analyticsSvc: analyticsSvc,
	}
}

// Summary handles GET /v1/surveys/{surveyId}/analytics/summary
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	surveyID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	summary, err := h.analyticsSvc.SurveySummary(r.Context(), surveyID)
	if err != nil {
		writeAnalyticsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Questions handles GET /v1/surveys/{surveyId}/analytics/questions
func (h *AnalyticsHandler) Questions(w http.ResponseWriter, r *http.Request) {
	surveyID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	summaries, err := h.analyticsSvc.QuestionSummaries(r.Context(), surveyID)
	if err != nil {
		writeAnalyticsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"questions": summaries})
}

// Funnel handles GET /v1/surveys/{surveyId}/analytics/funnel
func (h *AnalyticsHandler) Funnel(w http.ResponseWriter, r *http.Request) {
	surveyID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	funnel, err := h.analyticsSvc.Funnel(r.Context(), surveyID)
	if err != nil {
		writeAnalyticsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"funnel": funnel})
}

// Report handles GET /v1/surveys/{surveyId}/analytics/report
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	surveyID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	report, err := h.analyticsSvc.Report(r.Context(), surveyID)
	if err != nil {
		writeAnalyticsError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// authorize checks survey ownership before serving analytics.
func (h *AnalyticsHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	surveyID := mux.Vars(r)["surveyId"]
	ownerID := middleware.GetOwnerID(r.Context())

	survey, err := h.surveySvc.GetByID(r.Context(), surveyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return "", false
	}
	if survey == nil {
		writeError(w, http.StatusNotFound, "survey not found")
		return "", false
	}
	if survey.OwnerID != ownerID {
		writeError(w, http.StatusForbidden, "not the survey owner")
		return "", false
	}
	return surveyID, true
}

func writeAnalyticsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSurveyNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrDataIntegrity):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
