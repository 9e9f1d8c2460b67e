package service

import (
	"context"
	"errors"
	"time"

	"surveypulse/internal/model"
	"surveypulse/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSurveyNotFound = errors.New("survey not found")
	ErrNotOwner       = errors.New("not the survey owner")
	ErrNotPublishable = errors.New("only draft or paused surveys can be published")
)

// SurveyService handles survey authoring
type SurveyService struct {
	surveyRepo   repository.SurveyRepo
	responseRepo repository.ResponseRepo
}

// NewSurveyService creates a new survey service
func NewSurveyService(surveyRepo repository.SurveyRepo, responseRepo repository.ResponseRepo) *SurveyService {
	return &SurveyService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
	}
}

// Create stores a new draft survey, assigning question ids and order.
func (s *SurveyService) Create(ctx context.Context, survey *model.Survey) (string, error) {
	survey.Status = model.StatusDraft
	if survey.Visibility == "" {
		survey.Visibility = model.VisibilityPublic
	}
	if survey.StartAt.IsZero() {
		survey.StartAt = time.Now()
	}
	normalizeQuestions(survey)
	return s.surveyRepo.Create(ctx, survey)
}

// GetByID retrieves a survey by id
func (s *SurveyService) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	return s.surveyRepo.GetByID(ctx, id)
}

// GetByOwnerID retrieves all surveys for an owner
func (s *SurveyService) GetByOwnerID(ctx context.Context, ownerID string) ([]*model.Survey, error) {
	return s.surveyRepo.GetByOwnerID(ctx, ownerID)
}

// Update replaces a survey's authoring fields. Question edits do not
// retroactively alter existing answers; questions are frozen in
// practice once responses accumulate.
func (s *SurveyService) Update(ctx context.Context, ownerID string, survey *model.Survey) error {
	existing, err := s.mustOwn(ctx, ownerID, survey.ID)
	if err != nil {
		return err
	}
	survey.OwnerID = existing.OwnerID
	survey.Status = existing.Status
	survey.CreatedAt = existing.CreatedAt
	normalizeQuestions(survey)
	return s.surveyRepo.Update(ctx, survey)
}

// Publish transitions a draft or paused survey to active.
func (s *SurveyService) Publish(ctx context.Context, ownerID, surveyID string) (*model.Survey, error) {
	survey, err := s.mustOwn(ctx, ownerID, surveyID)
	if err != nil {
		return nil, err
	}
	if survey.Status != model.StatusDraft && survey.Status != model.StatusPaused {
		return nil, ErrNotPublishable
	}
	survey.Status = model.StatusActive
	if err := s.surveyRepo.Update(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

// Close transitions a survey to closed; it stops accepting responses.
func (s *SurveyService) Close(ctx context.Context, ownerID, surveyID string) (*model.Survey, error) {
	survey, err := s.mustOwn(ctx, ownerID, surveyID)
	if err != nil {
		return nil, err
	}
	survey.Status = model.StatusClosed
	if err := s.surveyRepo.Update(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

// Delete removes a survey and all its responses.
func (s *SurveyService) Delete(ctx context.Context, ownerID, surveyID string) error {
	if _, err := s.mustOwn(ctx, ownerID, surveyID); err != nil {
		return err
	}
	if err := s.responseRepo.DeleteBySurveyID(ctx, surveyID); err != nil {
		return err
	}
	return s.surveyRepo.Delete(ctx, surveyID)
}

func (s *SurveyService) mustOwn(ctx context.Context, ownerID, surveyID string) (*model.Survey, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}
	if survey.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return survey, nil
}

// normalizeQuestions assigns ids and sequential order positions to
// questions that lack them.
func normalizeQuestions(survey *model.Survey) {
	for i := range survey.Questions {
		if survey.Questions[i].ID == "" {
			survey.Questions[i].ID = uuid.NewString()
		}
		survey.Questions[i].Order = i + 1
	}
}
