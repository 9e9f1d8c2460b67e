package service

import (
	"context"
	"errors"
	"log"

	"surveypulse/internal/model"
	"surveypulse/internal/repository"
)

var ErrBlueprintNotFound = errors.New("blueprint not found")

// BlueprintService handles reusable survey templates. A blueprint holds
// a survey structure that Instantiate stamps into a fresh draft survey
// for the calling owner.
type BlueprintService struct {
	blueprintRepo repository.BlueprintRepo
	surveySvc     *SurveyService
}

// NewBlueprintService creates a new blueprint service
func NewBlueprintService(blueprintRepo repository.BlueprintRepo, surveySvc *SurveyService) *BlueprintService {
	return &BlueprintService{
		blueprintRepo: blueprintRepo,
		surveySvc:     surveySvc,
	}
}

// Create stores a new blueprint for the owner.
func (s *BlueprintService) Create(ctx context.Context, blueprint *model.SurveyBlueprint) (string, error) {
	return s.blueprintRepo.Create(ctx, blueprint)
}

// GetByID returns a blueprint if the owner may see it. Hidden
// blueprints are indistinguishable from missing ones.
func (s *BlueprintService) GetByID(ctx context.Context, ownerID, blueprintID string) (*model.SurveyBlueprint, error) {
	blueprint, err := s.blueprintRepo.GetByID(ctx, blueprintID)
	if err != nil {
		return nil, err
	}
	if blueprint == nil || !blueprint.VisibleTo(ownerID) {
		return nil, ErrBlueprintNotFound
	}
	return blueprint, nil
}

// List returns the blueprints visible to the owner: public ones plus
// the owner's private ones.
func (s *BlueprintService) List(ctx context.Context, ownerID string) ([]*model.SurveyBlueprint, error) {
	return s.blueprintRepo.ListVisibleTo(ctx, ownerID)
}

// Delete removes the owner's blueprint. Surveys already created from
// it are unaffected.
func (s *BlueprintService) Delete(ctx context.Context, ownerID, blueprintID string) error {
	blueprint, err := s.blueprintRepo.GetByID(ctx, blueprintID)
	if err != nil {
		return err
	}
	if blueprint == nil {
		return ErrBlueprintNotFound
	}
	if blueprint.OwnerID != ownerID {
		return ErrNotOwner
	}
	return s.blueprintRepo.Delete(ctx, blueprintID)
}

// Instantiate creates a draft survey for the owner from the blueprint's
// structure and bumps the blueprint's usage count. The new survey is an
// independent copy; later blueprint edits do not propagate.
func (s *BlueprintService) Instantiate(ctx context.Context, ownerID, blueprintID string) (string, error) {
	blueprint, err := s.GetByID(ctx, ownerID, blueprintID)
	if err != nil {
		return "", err
	}

	questions := make([]model.Question, len(blueprint.Data.Questions))
	copy(questions, blueprint.Data.Questions)
	for i := range questions {
		questions[i].ID = "" // fresh ids assigned on create
	}

	survey := &model.Survey{
		OwnerID:     ownerID,
		Title:       blueprint.Data.Title,
		Description: blueprint.Data.Description,
		Options:     blueprint.Data.Options,
		Questions:   questions,
	}
	if survey.Title == "" {
		survey.Title = blueprint.Name
	}

	surveyID, err := s.surveySvc.Create(ctx, survey)
	if err != nil {
		return "", err
	}

	if err := s.blueprintRepo.IncrementUsage(ctx, blueprintID); err != nil {
		log.Printf("failed to bump usage for blueprint %s: %v", blueprintID, err)
	}
	return surveyID, nil
}
