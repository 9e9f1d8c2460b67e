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

// ResponseHandler handles response submission and listing
type ResponseHandler struct {
	responseSvc *service.ResponseService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseSvc *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{responseSvc: responseSvc}
}

// SubmitRequest is the request body for submitting a response
type SubmitRequest struct {
	Respondent string         `json:"respondent"`
	StartedAt  *time.Time     `json:"startedAt"`
	Answers    []model.Answer `json:"answers"`
}

// Submit handles POST /v1/surveys/{surveyId}/responses
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response := &model.SurveyResponse{
		Respondent: req.Respondent,
		UserAgent:  r.UserAgent(),
		Answers:    req.Answers,
	}
	if req.StartedAt != nil {
		response.StartedAt = *req.StartedAt
	}

	id, err := h.responseSvc.Submit(r.Context(), surveyID, response)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSurveyNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSurveyNotOpen),
			errors.Is(err, service.ErrResponseLimit),
			errors.Is(err, service.ErrAlreadyResponded):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrUnknownQuestion),
			errors.Is(err, service.ErrDuplicateAnswer),
			errors.Is(err, service.ErrValueShape):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"responseId": id,
		"isComplete": response.IsComplete,
	})
}

// List handles GET /v1/surveys/{surveyId}/responses
func (h *ResponseHandler) List(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	ownerID := middleware.GetOwnerID(r.Context())

	responses, err := h.responseSvc.GetBySurveyID(r.Context(), ownerID, surveyID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"responses": responses})
}
