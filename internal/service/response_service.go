package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"surveypulse/internal/cache"
	"surveypulse/internal/model"
	"surveypulse/internal/repository"
)

var (
	ErrSurveyNotOpen    = errors.New("survey is not accepting responses")
	ErrResponseLimit    = errors.New("survey has reached its response limit")
	ErrAlreadyResponded = errors.New("respondent has already submitted a response")
	ErrUnknownQuestion  = errors.New("answer references a question not in this survey")
	ErrDuplicateAnswer  = errors.New("multiple answers for the same question")
	ErrMissingRequired  = errors.New("missing answer for a required question")
	ErrValueShape       = errors.New("answer value does not match the question type")
)

// Broadcaster pushes live events to connected survey watchers
type Broadcaster interface {
	BroadcastToWatchers(surveyID string, msgType string, payload interface{})
}

// ResponseService handles response submission. Submission is the only
// write path for answers; once stored they are never mutated.
type ResponseService struct {
	surveyRepo   repository.SurveyRepo
	responseRepo repository.ResponseRepo
	summaryCache cache.SummaryCache
	broadcaster  Broadcaster
}

// NewResponseService creates a new response service
func NewResponseService(surveyRepo repository.SurveyRepo, responseRepo repository.ResponseRepo, summaryCache cache.SummaryCache) *ResponseService {
	return &ResponseService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		summaryCache: summaryCache,
	}
}

// SetBroadcaster injects the live-update broadcaster
func (s *ResponseService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit validates and stores one response atomically.
func (s *ResponseService) Submit(ctx context.Context, surveyID string, response *model.SurveyResponse) (string, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return "", err
	}
	if survey == nil {
		return "", ErrSurveyNotFound
	}
	if !survey.IsOpen(time.Now()) {
		return "", ErrSurveyNotOpen
	}

	if survey.Options.MaxResponses > 0 {
		count, err := s.responseRepo.CountBySurveyID(ctx, surveyID)
		if err != nil {
			return "", err
		}
		if count >= int64(survey.Options.MaxResponses) {
			return "", ErrResponseLimit
		}
	}

	// One response per named respondent unless the survey allows
	// repeats. Anonymous submissions carry no identifier to dedupe on.
	if !survey.Options.AllowMultipleResponses && response.Respondent != "" {
		count, err := s.responseRepo.CountByRespondent(ctx, surveyID, response.Respondent)
		if err != nil {
			return "", err
		}
		if count > 0 {
			return "", ErrAlreadyResponded
		}
	}

	if err := validateAnswers(survey, response.Answers); err != nil {
		return "", err
	}

	response.SurveyID = surveyID
	response.SubmittedAt = time.Now()
	if response.StartedAt.IsZero() {
		response.StartedAt = response.SubmittedAt
	}
	response.IsComplete = allRequiredAnswered(survey, response.Answers)

	id, err := s.responseRepo.Create(ctx, response)
	if err != nil {
		return "", err
	}

	// Cached summaries are stale now; next read recomputes.
	if err := s.summaryCache.Invalidate(ctx, surveyID); err != nil {
		log.Printf("failed to invalidate summaries for survey %s: %v", surveyID, err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToWatchers(surveyID, "response_received", map[string]interface{}{
			"responseId": id,
			"isComplete": response.IsComplete,
		})
	}

	return id, nil
}

// GetBySurveyID lists a survey's responses for its owner.
func (s *ResponseService) GetBySurveyID(ctx context.Context, ownerID, surveyID string) ([]*model.SurveyResponse, error) {
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
	return s.responseRepo.GetBySurveyID(ctx, surveyID)
}

// validateAnswers checks the uniqueness invariant and that each value
// matches its question's field type.
func validateAnswers(survey *model.Survey, answers []model.Answer) error {
	seen := make(map[string]bool, len(answers))
	for i := range answers {
		a := &answers[i]
		q := survey.QuestionByID(a.QuestionID)
		if q == nil {
			return fmt.Errorf("%w: %s", ErrUnknownQuestion, a.QuestionID)
		}
		if seen[a.QuestionID] {
			return fmt.Errorf("%w: %s", ErrDuplicateAnswer, a.QuestionID)
		}
		seen[a.QuestionID] = true
		if err := validateValue(q, a); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(q *model.Question, a *model.Answer) error {
	switch q.FieldType {
	case model.FieldShortText, model.FieldLongText, model.FieldEmail,
		model.FieldURL, model.FieldPhone, model.FieldFile:
		if a.Text == "" {
			return fmt.Errorf("%w: question %s expects text", ErrValueShape, q.ID)
		}
		if q.MaxLength > 0 && len(a.Text) > q.MaxLength {
			return fmt.Errorf("%w: question %s answer exceeds max length", ErrValueShape, q.ID)
		}
	case model.FieldNumber:
		if a.Number == nil {
			return fmt.Errorf("%w: question %s expects a number", ErrValueShape, q.ID)
		}
		if q.MinValue != nil && *a.Number < *q.MinValue {
			return fmt.Errorf("%w: question %s answer below minimum", ErrValueShape, q.ID)
		}
		if q.MaxValue != nil && *a.Number > *q.MaxValue {
			return fmt.Errorf("%w: question %s answer above maximum", ErrValueShape, q.ID)
		}
	case model.FieldRating, model.FieldScale:
		if a.Number == nil {
			return fmt.Errorf("%w: question %s expects a rating value", ErrValueShape, q.ID)
		}
		lo, hi := q.ScaleBounds()
		if *a.Number < float64(lo) || *a.Number > float64(hi) {
			return fmt.Errorf("%w: question %s rating outside scale bounds", ErrValueShape, q.ID)
		}
	case model.FieldSingleChoice:
		if len(a.Selected) != 1 {
			return fmt.Errorf("%w: question %s expects exactly one selection", ErrValueShape, q.ID)
		}
		if !q.HasOption(a.Selected[0]) {
			return fmt.Errorf("%w: question %s has no option %q", ErrValueShape, q.ID, a.Selected[0])
		}
	case model.FieldMultiChoice:
		if len(a.Selected) == 0 {
			return fmt.Errorf("%w: question %s expects at least one selection", ErrValueShape, q.ID)
		}
		for _, sel := range a.Selected {
			if !q.HasOption(sel) {
				return fmt.Errorf("%w: question %s has no option %q", ErrValueShape, q.ID, sel)
			}
		}
	case model.FieldBoolean:
		if a.Bool == nil {
			return fmt.Errorf("%w: question %s expects a boolean", ErrValueShape, q.ID)
		}
	case model.FieldDate, model.FieldDateTime:
		if a.Date == nil {
			return fmt.Errorf("%w: question %s expects a date", ErrValueShape, q.ID)
		}
	case model.FieldMatrix:
		if len(a.Extra) == 0 {
			return fmt.Errorf("%w: question %s expects matrix data", ErrValueShape, q.ID)
		}
	default:
		return fmt.Errorf("%w: question %s has unknown field type %q", ErrValueShape, q.ID, q.FieldType)
	}
	return nil
}

func allRequiredAnswered(survey *model.Survey, answers []model.Answer) bool {
	answered := make(map[string]bool, len(answers))
	for i := range answers {
		answered[answers[i].QuestionID] = true
	}
	for i := range survey.Questions {
		q := &survey.Questions[i]
		if q.IsRequired && !answered[q.ID] {
			return false
		}
	}
	return true
}
