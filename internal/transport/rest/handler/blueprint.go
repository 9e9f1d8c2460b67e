package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"surveypulse/internal/model"
	"surveypulse/internal/service"
	"surveypulse/internal/transport/rest/middleware"
)

// BlueprintHandler handles survey template endpoints
type BlueprintHandler struct {
	blueprintSvc *service.BlueprintService
}

// NewBlueprintHandler creates a new blueprint handler
func NewBlueprintHandler(blueprintSvc *service.BlueprintService) *BlueprintHandler {
	return &BlueprintHandler{blueprintSvc: blueprintSvc}
}

// BlueprintRequest is the request body for creating a blueprint
type BlueprintRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Category    string              `json:"category"`
	Tags        []string            `json:"tags"`
	IsPublic    bool                `json:"isPublic"`
	Data        model.BlueprintData `json:"data"`
}

// Create handles POST /v1/blueprints
func (h *BlueprintHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())

	var req BlueprintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	blueprint := &model.SurveyBlueprint{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
		Data:        req.Data,
	}

	id, err := h.blueprintSvc.Create(r.Context(), blueprint)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"blueprintId": id})
}

// List handles GET /v1/blueprints
func (h *BlueprintHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())

	blueprints, err := h.blueprintSvc.List(r.Context(), ownerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"blueprints": blueprints})
}

// Get handles GET /v1/blueprints/{blueprintId}
func (h *BlueprintHandler) Get(w http.ResponseWriter, r *http.Request) {
	blueprintID := mux.Vars(r)["blueprintId"]
	ownerID := middleware.GetOwnerID(r.Context())

	blueprint, err := h.blueprintSvc.GetByID(r.Context(), ownerID, blueprintID)
	if err != nil {
		writeBlueprintError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blueprint)
}

// Delete handles DELETE /v1/blueprints/{blueprintId}
func (h *BlueprintHandler) Delete(w http.ResponseWriter, r *http.Request) {
	blueprintID := mux.Vars(r)["blueprintId"]
	ownerID := middleware.GetOwnerID(r.Context())

	if err := h.blueprintSvc.Delete(r.Context(), ownerID, blueprintID); err != nil {
		writeBlueprintError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Use handles POST /v1/blueprints/{blueprintId}/use, creating a draft
// survey from the blueprint for the calling owner.
func (h *BlueprintHandler) Use(w http.ResponseWriter, r *http.Request) {
	blueprintID := mux.Vars(r)["blueprintId"]
	ownerID := middleware.GetOwnerID(r.Context())

	surveyID, err := h.blueprintSvc.Instantiate(r.Context(), ownerID, blueprintID)
	if err != nil {
		writeBlueprintError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"surveyId": surveyID})
}

func writeBlueprintError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrBlueprintNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
