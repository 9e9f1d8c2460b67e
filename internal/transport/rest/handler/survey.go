package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"surveypulse/internal/model"
	"surveypulse/internal/service"
	"surveypulse/internal/transport/rest/middleware"
)

// SurveyHandler handles survey authoring endpoints
type SurveyHandler struct {
	surveySvc *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

// SurveyRequest is the request body for creating or updating a survey
type SurveyRequest struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Visibility  model.SurveyVisibility `json:"visibility"`
	StartAt     *time.Time             `json:"startAt"`
	EndAt       *time.Time             `json:"endAt"`
	Options     model.SurveyOptions    `json:"options"`
	Questions   []model.Question       `json:"questions"`
}

func (req *SurveyRequest) toModel() *model.Survey {
	survey := &model.Survey{
		Title:       req.Title,
		Description: req.Description,
		Visibility:  req.Visibility,
		EndAt:       req.EndAt,
		Options:     req.Options,
		Questions:   req.Questions,
	}
	if req.StartAt != nil {
		survey.StartAt = *req.StartAt
	}
	return survey
}

// Create handles POST /v1/surveys
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())

	var req SurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	survey := req.toModel()
	survey.OwnerID = ownerID

	id, err := h.surveySvc.Create(r.Context(), survey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"surveyId": id})
}

// List handles GET /v1/surveys
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())

	surveys, err := h.surveySvc.GetByOwnerID(r.Context(), ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"surveys": surveys})
}

// Get handles GET /v1/surveys/{surveyId}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	ownerID := middleware.GetOwnerID(r.Context())

	survey, err := h.surveySvc.GetByID(r.Context(), surveyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if survey == nil {
		writeError(w, http.StatusNotFound, "survey not found")
		return
	}
	if survey.OwnerID != ownerID {
		writeError(w, http.StatusForbidden, "not the survey owner")
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// GetForm handles GET /v1/surveys/{surveyId}/form, the public
// respondent-facing view of an open survey.
func (h *SurveyHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	survey, err := h.surveySvc.GetByID(r.Context(), surveyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if survey == nil || survey.Visibility == model.VisibilityPrivate {
		writeError(w, http.StatusNotFound, "survey not found")
		return
	}
	if !survey.IsOpen(time.Now()) {
		writeError(w, http.StatusConflict, "survey is not accepting responses")
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// Update handles PUT /v1/surveys/{surveyId}
func (h *SurveyHandler) Update(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	ownerID := middleware.GetOwnerID(r.Context())

	var req SurveyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	survey := req.toModel()
	survey.ID = surveyID

	if err := h.surveySvc.Update(r.Context(), ownerID, survey); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// Publish handles POST /v1/surveys/{surveyId}/publish
func (h *SurveyHandler) Publish(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	ownerID := middleware.GetOwnerID(r.Context())

	survey, err := h.surveySvc.Publish(r.Context(), ownerID, surveyID)
	if err != nil {
		if errors.Is(err, service.ErrNotPublishable) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// Close handles POST /v1/surveys/{surveyId}/close
func (h *SurveyHandler) Close(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	ownerID := middleware.GetOwnerID(r.Context())

	survey, err := h.surveySvc.Close(r.Context(), ownerID, surveyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, survey)
}

// Delete handles DELETE /v1/surveys/{surveyId}
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	ownerID := middleware.GetOwnerID(r.Context())

	if err := h.surveySvc.Delete(r.Context(), ownerID, surveyID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// writeServiceError maps shared service errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSurveyNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
