package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"surveypulse/internal/model"
)

func TestCreateAssignsIDsAndOrder(t *testing.T) {
	surveyRepo := newStubSurveyRepo()
	svc := NewSurveyService(surveyRepo, &stubResponseRepo{})

	survey := &model.Survey{
		OwnerID: "o1",
		Title:   "New survey",
		Status:  model.StatusActive, // ignored, created surveys start as drafts
		Questions: []model.Question{
			{Title: "First", FieldType: model.FieldShortText},
			{Title: "Second", FieldType: model.FieldRating},
		},
	}

	id, err := svc.Create(context.Background(), survey)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	stored, _ := surveyRepo.GetByID(context.Background(), id)
	if stored.Status != model.StatusDraft {
		t.Fatalf("expected draft status, got %s", stored.Status)
	}
	if stored.Visibility != model.VisibilityPublic {
		t.Fatalf("expected default public visibility, got %s", stored.Visibility)
	}
	for i, q := range stored.Questions {
		if q.ID == "" {
			t.Fatalf("question %d has no id", i)
		}
		if q.Order != i+1 {
			t.Fatalf("question %d has order %d", i, q.Order)
		}
	}
}

func TestPublishTransitions(t *testing.T) {
	survey := &model.Survey{ID: "s1", OwnerID: "o1", Status: model.StatusDraft, StartAt: time.Now()}
	svc := NewSurveyService(newStubSurveyRepo(survey), &stubResponseRepo{})

	published, err := svc.Publish(context.Background(), "o1", "s1")
	if err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if published.Status != model.StatusActive {
		t.Fatalf("expected active, got %s", published.Status)
	}

	// Already active: not publishable again.
	if _, err := svc.Publish(context.Background(), "o1", "s1"); !errors.Is(err, ErrNotPublishable) {
		t.Fatalf("expected ErrNotPublishable, got %v", err)
	}
}

func TestPublishFromPaused(t *testing.T) {
	survey := &model.Survey{ID: "s1", OwnerID: "o1", Status: model.StatusPaused}
	svc := NewSurveyService(newStubSurveyRepo(survey), &stubResponseRepo{})

	published, err := svc.Publish(context.Background(), "o1", "s1")
	if err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if published.Status != model.StatusActive {
		t.Fatalf("expected active, got %s", published.Status)
	}
}

func TestCloseStopsSurvey(t *testing.T) {
	survey := &model.Survey{ID: "s1", OwnerID: "o1", Status: model.StatusActive}
	svc := NewSurveyService(newStubSurveyRepo(survey), &stubResponseRepo{})

	closed, err := svc.Close(context.Background(), "o1", "s1")
	if err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if closed.Status != model.StatusClosed {
		t.Fatalf("expected closed, got %s", closed.Status)
	}
}

func TestOwnershipChecks(t *testing.T) {
	survey := &model.Survey{ID: "s1", OwnerID: "o1", Status: model.StatusDraft}
	svc := NewSurveyService(newStubSurveyRepo(survey), &stubResponseRepo{})

	if _, err := svc.Publish(context.Background(), "intruder", "s1"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if err := svc.Delete(context.Background(), "intruder", "s1"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if _, err := svc.Publish(context.Background(), "o1", "missing"); !errors.Is(err, ErrSurveyNotFound) {
		t.Fatalf("expected ErrSurveyNotFound, got %v", err)
	}
}

func TestUpdatePreservesOwnershipAndStatus(t *testing.T) {
	surveyRepo := newStubSurveyRepo(&model.Survey{
		ID:        "s1",
		OwnerID:   "o1",
		Status:    model.StatusActive,
		CreatedAt: time.Now().Add(-time.Hour),
	})
	svc := NewSurveyService(surveyRepo, &stubResponseRepo{})

	update := &model.Survey{
		ID:      "s1",
		OwnerID: "attacker", // overridden from the stored record
		Status:  model.StatusDraft,
		Title:   "Renamed",
	}
	if err := svc.Update(context.Background(), "o1", update); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	stored, _ := surveyRepo.GetByID(context.Background(), "s1")
	if stored.OwnerID != "o1" {
		t.Fatalf("update must not change the owner, got %s", stored.OwnerID)
	}
	if stored.Status != model.StatusActive {
		t.Fatalf("update must not change the status, got %s", stored.Status)
	}
	if stored.Title != "Renamed" {
		t.Fatalf("expected renamed survey, got %s", stored.Title)
	}
}

func TestDeleteRemovesResponses(t *testing.T) {
	surveyRepo := newStubSurveyRepo(&model.Survey{ID: "s1", OwnerID: "o1", Status: model.StatusClosed})
	responseRepo := &stubResponseRepo{}
	responseRepo.Create(context.Background(), &model.SurveyResponse{SurveyID: "s1"})
	responseRepo.Create(context.Background(), &model.SurveyResponse{SurveyID: "other"})
	svc := NewSurveyService(surveyRepo, responseRepo)

	if err := svc.Delete(context.Background(), "o1", "s1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if s, _ := surveyRepo.GetByID(context.Background(), "s1"); s != nil {
		t.Fatal("expected survey removed")
	}
	if len(responseRepo.responses) != 1 || responseRepo.responses[0].SurveyID != "other" {
		t.Fatalf("expected only the other survey's responses to remain, got %v", responseRepo.responses)
	}
}
