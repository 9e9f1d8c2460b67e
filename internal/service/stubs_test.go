package service

import (
	"context"

	"github.com/google/uuid"

	"surveypulse/internal/model"
)

type stubSurveyRepo struct {
	surveys map[string]*model.Survey
}

func newStubSurveyRepo(surveys ...*model.Survey) *stubSurveyRepo {
	r := &stubSurveyRepo{surveys: map[string]*model.Survey{}}
	for _, s := range surveys {
		r.surveys[s.ID] = s
	}
	return r
}

func (r *stubSurveyRepo) Create(ctx context.Context, survey *model.Survey) (string, error) {
	if survey.ID == "" {
		survey.ID = uuid.NewString()
	}
	r.surveys[survey.ID] = survey
	return survey.ID, nil
}

func (r *stubSurveyRepo) GetByID(ctx context.Context, id string) (*model.Survey, error) {
	return r.surveys[id], nil
}

func (r *stubSurveyRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]*model.Survey, error) {
	var out []*model.Survey
	for _, s := range r.surveys {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubSurveyRepo) GetActive(ctx context.Context) ([]*model.Survey, error) {
	var out []*model.Survey
	for _, s := range r.surveys {
		if s.Status == model.StatusActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubSurveyRepo) Update(ctx context.Context, survey *model.Survey) error {
	r.surveys[survey.ID] = survey
	return nil
}

func (r *stubSurveyRepo) Delete(ctx context.Context, id string) error {
	delete(r.surveys, id)
	return nil
}

type stubResponseRepo struct {
	responses []*model.SurveyResponse
}

func (r *stubResponseRepo) Create(ctx context.Context, response *model.SurveyResponse) (string, error) {
	if response.ID == "" {
		response.ID = uuid.NewString()
	}
	r.responses = append(r.responses, response)
	return response.ID, nil
}

func (r *stubResponseRepo) GetByID(ctx context.Context, id string) (*model.SurveyResponse, error) {
	for _, resp := range r.responses {
		if resp.ID == id {
			return resp, nil
		}
	}
	return nil, nil
}

func (r *stubResponseRepo) GetBySurveyID(ctx context.Context, surveyID string) ([]*model.SurveyResponse, error) {
	var out []*model.SurveyResponse
	for _, resp := range r.responses {
		if resp.SurveyID == surveyID {
			out = append(out, resp)
		}
	}
	return out, nil
}

func (r *stubResponseRepo) CountBySurveyID(ctx context.Context, surveyID string) (int64, error) {
	var n int64
	for _, resp := range r.responses {
		if resp.SurveyID == surveyID {
			n++
		}
	}
	return n, nil
}

func (r *stubResponseRepo) CountByRespondent(ctx context.Context, surveyID, respondent string) (int64, error) {
	var n int64
	for _, resp := range r.responses {
		if resp.SurveyID == surveyID && resp.Respondent == respondent {
			n++
		}
	}
	return n, nil
}

func (r *stubResponseRepo) DeleteBySurveyID(ctx context.Context, surveyID string) error {
	var kept []*model.SurveyResponse
	for _, resp := range r.responses {
		if resp.SurveyID != surveyID {
			kept = append(kept, resp)
		}
	}
	r.responses = kept
	return nil
}

type stubBlueprintRepo struct {
	blueprints map[string]*model.SurveyBlueprint
}

func newStubBlueprintRepo(blueprints ...*model.SurveyBlueprint) *stubBlueprintRepo {
	r := &stubBlueprintRepo{blueprints: map[string]*model.SurveyBlueprint{}}
	for _, b := range blueprints {
		r.blueprints[b.ID] = b
	}
	return r
}

func (r *stubBlueprintRepo) Create(ctx context.Context, blueprint *model.SurveyBlueprint) (string, error) {
	if blueprint.ID == "" {
		blueprint.ID = uuid.NewString()
	}
	r.blueprints[blueprint.ID] = blueprint
	return blueprint.ID, nil
}

func (r *stubBlueprintRepo) GetByID(ctx context.Context, id string) (*model.SurveyBlueprint, error) {
	return r.blueprints[id], nil
}

func (r *stubBlueprintRepo) ListVisibleTo(ctx context.Context, ownerID string) ([]*model.SurveyBlueprint, error) {
	var out []*model.SurveyBlueprint
	for _, b := range r.blueprints {
		if b.VisibleTo(ownerID) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubBlueprintRepo) IncrementUsage(ctx context.Context, id string) error {
	if b, ok := r.blueprints[id]; ok {
		b.UsageCount++
	}
	return nil
}

func (r *stubBlueprintRepo) Delete(ctx context.Context, id string) error {
	delete(r.blueprints, id)
	return nil
}

type stubUserRepo struct {
	users map[string]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*model.User{}}
}

func (r *stubUserRepo) Create(ctx context.Context, user *model.User) (string, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users[user.ID] = user
	return user.ID, nil
}

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.users[id], nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type stubSummaryCache struct {
	reports     map[string]*model.SurveyReport
	setCalls    int
	invalidated []string
}

func newStubSummaryCache() *stubSummaryCache {
	return &stubSummaryCache{reports: map[string]*model.SurveyReport{}}
}

func (c *stubSummaryCache) GetReport(ctx context.Context, surveyID string) (*model.SurveyReport, error) {
	return c.reports[surveyID], nil
}

func (c *stubSummaryCache) SetReport(ctx context.Context, report *model.SurveyReport) error {
	c.setCalls++
	c.reports[report.SurveyID] = report
	return nil
}

func (c *stubSummaryCache) Invalidate(ctx context.Context, surveyID string) error {
	c.invalidated = append(c.invalidated, surveyID)
	delete(c.reports, surveyID)
	return nil
}

type stubBroadcaster struct {
	events []string
}

func (b *stubBroadcaster) BroadcastToWatchers(surveyID string, msgType string, payload interface{}) {
	b.events = append(b.events, msgType)
}

func floatPtr(v float64) *float64 { return &v }
