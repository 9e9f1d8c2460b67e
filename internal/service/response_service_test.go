package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"surveypulse/internal/model"
)

func openSurvey() *model.Survey {
	return &model.Survey{
		ID:         "s1",
		OwnerID:    "o1",
		Title:      "Feedback",
		Status:     model.StatusActive,
		Visibility: model.VisibilityPublic,
		StartAt:    time.Now().Add(-time.Hour),
		Questions: []model.Question{
			{ID: "q1", Title: "Rate us", FieldType: model.FieldRating, IsRequired: true, Order: 1, ScaleMin: 1, ScaleMax: 5},
			{
				ID: "q2", Title: "Pick one", FieldType: model.FieldSingleChoice, Order: 2,
				Options: []model.Option{{Value: "a", Label: "A"}, {Value: "b", Label: "B"}},
			},
		},
	}
}

func newResponseService(survey *model.Survey) (*ResponseService, *stubResponseRepo, *stubSummaryCache, *stubBroadcaster) {
	responseRepo := &stubResponseRepo{}
	summaryCache := newStubSummaryCache()
	broadcaster := &stubBroadcaster{}

	svc := NewResponseService(newStubSurveyRepo(survey), responseRepo, summaryCache)
	svc.SetBroadcaster(broadcaster)
	return svc, responseRepo, summaryCache, broadcaster
}

func TestSubmitStoresResponse(t *testing.T) {
	svc, responseRepo, summaryCache, broadcaster := newResponseService(openSurvey())

	response := &model.SurveyResponse{
		StartedAt: time.Now().Add(-time.Minute),
		Answers: []model.Answer{
			{QuestionID: "q1", Number: floatPtr(4)},
			{QuestionID: "q2", Selected: []string{"a"}},
		},
	}

	id, err := svc.Submit(context.Background(), "s1", response)
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if id == "" {
		t.Fatal("expected a response id")
	}
	if len(responseRepo.responses) != 1 {
		t.Fatalf("expected 1 stored response, got %d", len(responseRepo.responses))
	}
	if !response.IsComplete {
		t.Fatal("expected response marked complete, all required questions answered")
	}
	if response.SubmittedAt.IsZero() {
		t.Fatal("expected SubmittedAt to be set")
	}
	if len(summaryCache.invalidated) != 1 || summaryCache.invalidated[0] != "s1" {
		t.Fatalf("expected cache invalidation for s1, got %v", summaryCache.invalidated)
	}
	if len(broadcaster.events) != 1 || broadcaster.events[0] != "response_received" {
		t.Fatalf("expected response_received broadcast, got %v", broadcaster.events)
	}
}

func TestSubmitIncompleteWhenRequiredMissing(t *testing.T) {
	svc, _, _, _ := newResponseService(openSurvey())

	response := &model.SurveyResponse{
		Answers: []model.Answer{{QuestionID: "q2", Selected: []string{"b"}}},
	}
	if _, err := svc.Submit(context.Background(), "s1", response); err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if response.IsComplete {
		t.Fatal("expected incomplete response, required q1 unanswered")
	}
	if response.StartedAt.IsZero() {
		t.Fatal("expected StartedAt fallback to submission time")
	}
}

func TestSubmitRejectsClosedSurvey(t *testing.T) {
	survey := openSurvey()
	survey.Status = model.StatusDraft
	svc, _, _, _ := newResponseService(survey)

	_, err := svc.Submit(context.Background(), "s1", &model.SurveyResponse{})
	if !errors.Is(err, ErrSurveyNotOpen) {
		t.Fatalf("expected ErrSurveyNotOpen, got %v", err)
	}
}

func TestSubmitUnknownSurvey(t *testing.T) {
	svc, _, _, _ := newResponseService(openSurvey())
	if _, err := svc.Submit(context.Background(), "missing", &model.SurveyResponse{}); !errors.Is(err, ErrSurveyNotFound) {
		t.Fatalf("expected ErrSurveyNotFound, got %v", err)
	}
}

func TestSubmitEnforcesResponseLimit(t *testing.T) {
	survey := openSurvey()
	survey.Options.MaxResponses = 1
	svc, _, _, _ := newResponseService(survey)

	first := &model.SurveyResponse{Answers: []model.Answer{{QuestionID: "q1", Number: floatPtr(3)}}}
	if _, err := svc.Submit(context.Background(), "s1", first); err != nil {
		t.Fatalf("first Submit error: %v", err)
	}

	second := &model.SurveyResponse{Answers: []model.Answer{{QuestionID: "q1", Number: floatPtr(5)}}}
	if _, err := svc.Submit(context.Background(), "s1", second); !errors.Is(err, ErrResponseLimit) {
		t.Fatalf("expected ErrResponseLimit, got %v", err)
	}
}

func TestSubmitRejectsRepeatRespondent(t *testing.T) {
	svc, _, _, _ := newResponseService(openSurvey())

	first := &model.SurveyResponse{
		Respondent: "alice@example.com",
		Answers:    []model.Answer{{QuestionID: "q1", Number: floatPtr(4)}},
	}
	if _, err := svc.Submit(context.Background(), "s1", first); err != nil {
		t.Fatalf("first Submit error: %v", err)
	}

	repeat := &model.SurveyResponse{
		Respondent: "alice@example.com",
		Answers:    []model.Answer{{QuestionID: "q1", Number: floatPtr(5)}},
	}
	if _, err := svc.Submit(context.Background(), "s1", repeat); !errors.Is(err, ErrAlreadyResponded) {
		t.Fatalf("expected ErrAlreadyResponded, got %v", err)
	}
}

func TestSubmitAllowsRepeatsWhenConfigured(t *testing.T) {
	survey := openSurvey()
	survey.Options.AllowMultipleResponses = true
	svc, responseRepo, _, _ := newResponseService(survey)

	for i := 0; i < 2; i++ {
		response := &model.SurveyResponse{
			Respondent: "alice@example.com",
			Answers:    []model.Answer{{QuestionID: "q1", Number: floatPtr(4)}},
		}
		if _, err := svc.Submit(context.Background(), "s1", response); err != nil {
			t.Fatalf("Submit %d error: %v", i, err)
		}
	}
	if len(responseRepo.responses) != 2 {
		t.Fatalf("expected 2 stored responses, got %d", len(responseRepo.responses))
	}
}

func TestSubmitAnonymousRepeatsNotDeduped(t *testing.T) {
	svc, responseRepo, _, _ := newResponseService(openSurvey())

	for i := 0; i < 2; i++ {
		response := &model.SurveyResponse{
			Answers: []model.Answer{{QuestionID: "q1", Number: floatPtr(3)}},
		}
		if _, err := svc.Submit(context.Background(), "s1", response); err != nil {
			t.Fatalf("Submit %d error: %v", i, err)
		}
	}
	if len(responseRepo.responses) != 2 {
		t.Fatalf("expected anonymous submissions to be accepted, got %d", len(responseRepo.responses))
	}
}

func TestSubmitValidation(t *testing.T) {
	cases := []struct {
		name    string
		answers []model.Answer
		want    error
	}{
		{
			"unknown question",
			[]model.Answer{{QuestionID: "ghost", Text: "hi"}},
			ErrUnknownQuestion,
		},
		{
			"duplicate answer",
			[]model.Answer{
				{QuestionID: "q1", Number: floatPtr(3)},
				{QuestionID: "q1", Number: floatPtr(4)},
			},
			ErrDuplicateAnswer,
		},
		{
			"rating outside scale",
			[]model.Answer{{QuestionID: "q1", Number: floatPtr(9)}},
			ErrValueShape,
		},
		{
			"rating without value",
			[]model.Answer{{QuestionID: "q1", Text: "four"}},
			ErrValueShape,
		},
		{
			"choice not among options",
			[]model.Answer{{QuestionID: "q2", Selected: []string{"zzz"}}},
			ErrValueShape,
		},
		{
			"single choice with two selections",
			[]model.Answer{{QuestionID: "q2", Selected: []string{"a", "b"}}},
			ErrValueShape,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, responseRepo, _, _ := newResponseService(openSurvey())
			_, err := svc.Submit(context.Background(), "s1", &model.SurveyResponse{Answers: tc.answers})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if len(responseRepo.responses) != 0 {
				t.Fatal("rejected submission must not be stored")
			}
		})
	}
}

func TestGetBySurveyIDOwnership(t *testing.T) {
	svc, responseRepo, _, _ := newResponseService(openSurvey())
	responseRepo.Create(context.Background(), &model.SurveyResponse{SurveyID: "s1"})

	responses, err := svc.GetBySurveyID(context.Background(), "o1", "s1")
	if err != nil {
		t.Fatalf("GetBySurveyID error: %v", err)
	}
	if len(responses) != 1 {
		t.Fatalf("expected 1 response, got %d", len(responses))
	}

	if _, err := svc.GetBySurveyID(context.Background(), "intruder", "s1"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
}
