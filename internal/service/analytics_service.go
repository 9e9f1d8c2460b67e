package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/montanaflynn/stats"

	"surveypulse/internal/cache"
	"surveypulse/internal/model"
	"surveypulse/internal/repository"
)

// ErrDataIntegrity signals an upstream invariant violation: an answer
// referencing a question outside its survey, or an unknown field-type
// tag with answers present. Not retried.
var ErrDataIntegrity = errors.New("data integrity violation")

const (
	topWordLimit     = 20
	topAgentLimit    = 10
	numberBucketSize = 10
	dailyWindowDays  = 30
)

// AnalyticsService computes derived statistics over a survey's
// responses. All computations are read-only over a snapshot: the
// service never writes back to the response store, and repeated or
// concurrent invocations are safe.
type AnalyticsService struct {
	surveyRepo   repository.SurveyRepo
	responseRepo repository.ResponseRepo
	summaryCache cache.SummaryCache
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(surveyRepo repository.SurveyRepo, responseRepo repository.ResponseRepo, summaryCache cache.SummaryCache) *AnalyticsService {
	return &AnalyticsService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		summaryCache: summaryCache,
	}
}

// Report returns the full report for a survey, served from cache when
// fresh and recomputed from the response store on a miss.
func (s *AnalyticsService) Report(ctx context.Context, surveyID string) (*model.SurveyReport, error) {
	if cached, err := s.summaryCache.GetReport(ctx, surveyID); err == nil && cached != nil {
		return cached, nil
	}
	return s.Refresh(ctx, surveyID)
}

// Refresh recomputes the report from the store and re-caches it.
func (s *AnalyticsService) Refresh(ctx context.Context, surveyID string) (*model.SurveyReport, error) {
	survey, responses, err := s.snapshot(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	questions, err := ComputeQuestionSummaries(survey, responses)
	if err != nil {
		return nil, err
	}
	funnel, err := ComputeAbandonmentFunnel(survey, responses)
	if err != nil {
		return nil, err
	}

	report := &model.SurveyReport{
		SurveyID:    survey.ID,
		Title:       survey.Title,
		Description: survey.Description,
		Status:      survey.Status,
		CreatedAt:   survey.CreatedAt,
		Summary:     ComputeSurveySummary(responses),
		Questions:   questions,
		Funnel:      funnel,
		GeneratedAt: time.Now(),
	}

	if err := s.summaryCache.SetReport(ctx, report); err != nil {
		log.Printf("failed to cache report for survey %s: %v", surveyID, err)
	}
	return report, nil
}

// SurveySummary computes survey-level statistics from a fresh snapshot.
func (s *AnalyticsService) SurveySummary(ctx context.Context, surveyID string) (*model.SurveySummary, error) {
	_, responses, err := s.snapshot(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	summary := ComputeSurveySummary(responses)
	return &summary, nil
}

// QuestionSummaries computes per-question statistics from a fresh snapshot.
func (s *AnalyticsService) QuestionSummaries(ctx context.Context, surveyID string) ([]model.QuestionSummary, error) {
	survey, responses, err := s.snapshot(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return ComputeQuestionSummaries(survey, responses)
}

// Funnel computes the abandonment funnel from a fresh snapshot.
func (s *AnalyticsService) Funnel(ctx context.Context, surveyID string) ([]model.FunnelStage, error) {
	survey, responses, err := s.snapshot(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return ComputeAbandonmentFunnel(survey, responses)
}

// snapshot loads a survey and all its responses. Store failures are
// surfaced unchanged; retries belong to the store, not here.
func (s *AnalyticsService) snapshot(ctx context.Context, surveyID string) (*model.Survey, []*model.SurveyResponse, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}
	if survey == nil {
		return nil, nil, ErrSurveyNotFound
	}
	responses, err := s.responseRepo.GetBySurveyID(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}
	return survey, responses, nil
}

// ComputeSurveySummary computes survey-level response statistics.
// Zero responses yield an all-zero summary, not an error.
func ComputeSurveySummary(responses []*model.SurveyResponse) model.SurveySummary {
	summary := model.SurveySummary{
		TotalResponses:      len(responses),
		DailyResponseCounts: []model.DailyCount{},
		TopUserAgents:       []model.AgentCount{},
	}

	var completionSec float64
	for _, r := range responses {
		if r.IsComplete {
			summary.CompletedResponses++
			completionSec += r.CompletionTime().Seconds()
		}
	}

	if summary.TotalResponses > 0 {
		summary.CompletionRate = round2(float64(summary.CompletedResponses) / float64(summary.TotalResponses) * 100)
	}
	if summary.CompletedResponses > 0 {
		avg := round2(completionSec / float64(summary.CompletedResponses))
		summary.AverageCompletionTimeSec = &avg
	}

	// Daily counts over the most recent 30 days, ascending by day.
	cutoff := time.Now().AddDate(0, 0, -dailyWindowDays)
	byDay := make(map[string]int)
	for _, r := range responses {
		if r.SubmittedAt.Before(cutoff) {
			continue
		}
		byDay[r.SubmittedAt.UTC().Format("2006-01-02")]++
	}
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		summary.DailyResponseCounts = append(summary.DailyResponseCounts, model.DailyCount{Day: day, Count: byDay[day]})
	}

	// Top user agents, count descending. Ties keep first-encounter
	// order, same as the word and option distributions.
	byAgent := make(map[string]int)
	var agentOrder []string
	for _, r := range responses {
		if r.UserAgent == "" {
			continue
		}
		if byAgent[r.UserAgent] == 0 {
			agentOrder = append(agentOrder, r.UserAgent)
		}
		byAgent[r.UserAgent]++
	}
	agents := make([]model.AgentCount, 0, len(agentOrder))
	for _, ua := range agentOrder {
		agents = append(agents, model.AgentCount{UserAgent: ua, Count: byAgent[ua]})
	}
	sort.SliceStable(agents, func(i, j int) bool { return agents[i].Count > agents[j].Count })
	if len(agents) > topAgentLimit {
		agents = agents[:topAgentLimit]
	}
	summary.TopUserAgents = agents

	return summary
}

// ComputeQuestionSummaries computes per-question statistics in the
// survey's question order. The result is built fresh on every call and
// the inputs are never mutated.
func ComputeQuestionSummaries(survey *model.Survey, responses []*model.SurveyResponse) ([]model.QuestionSummary, error) {
	answersByQuestion, err := indexAnswers(survey, responses)
	if err != nil {
		return nil, err
	}

	totalResponses := len(responses)
	summaries := make([]model.QuestionSummary, 0, len(survey.Questions))

	for i := range survey.Questions {
		q := &survey.Questions[i]
		answers := answersByQuestion[q.ID]

		summary := model.QuestionSummary{
			QuestionID:    q.ID,
			QuestionTitle: q.Title,
			FieldType:     q.FieldType,
			TotalAnswers:  len(answers),
		}
		if totalResponses > 0 {
			summary.AnswerRate = round2(float64(len(answers)) / float64(totalResponses) * 100)
			summary.SkipRate = round2(float64(totalResponses-len(answers)) / float64(totalResponses) * 100)
		}

		switch q.FieldType {
		case model.FieldShortText, model.FieldLongText:
			summary.Text = summarizeText(answers)
		case model.FieldNumber:
			summary.Number = summarizeNumber(answers)
		case model.FieldSingleChoice, model.FieldMultiChoice:
			summary.Choice = summarizeChoice(answers)
		case model.FieldRating, model.FieldScale:
			summary.Rating = summarizeRating(q, answers)
		case model.FieldEmail, model.FieldDate, model.FieldDateTime,
			model.FieldBoolean, model.FieldFile, model.FieldURL,
			model.FieldPhone, model.FieldMatrix:
			// Recognized types without a type-specific summary.
		default:
			if len(answers) > 0 {
				return nil, fmt.Errorf("%w: question %s has unknown field type %q with answers present", ErrDataIntegrity, q.ID, q.FieldType)
			}
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// ComputeAbandonmentFunnel computes answered counts per question in
// ascending order position. This models drop-off under the assumption
// that respondents answer roughly in order; the assumption is not
// enforced, so the funnel is a heuristic, not an exact model.
func ComputeAbandonmentFunnel(survey *model.Survey, responses []*model.SurveyResponse) ([]model.FunnelStage, error) {
	answersByQuestion, err := indexAnswers(survey, responses)
	if err != nil {
		return nil, err
	}

	ordered := make([]*model.Question, 0, len(survey.Questions))
	for i := range survey.Questions {
		ordered = append(ordered, &survey.Questions[i])
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	totalResponses := len(responses)
	funnel := make([]model.FunnelStage, 0, len(ordered))
	for _, q := range ordered {
		answered := len(answersByQuestion[q.ID])
		stage := model.FunnelStage{
			QuestionOrder: q.Order,
			QuestionTitle: q.Title,
			AnsweredCount: answered,
		}
		if totalResponses > 0 {
			stage.AbandonmentRate = round2(float64(totalResponses-answered) / float64(totalResponses) * 100)
		}
		funnel = append(funnel, stage)
	}
	return funnel, nil
}

// indexAnswers groups answers by question id, preserving response
// order. An answer referencing a question outside the survey is an
// integrity violation the write path should have prevented.
func indexAnswers(survey *model.Survey, responses []*model.SurveyResponse) (map[string][]*model.Answer, error) {
	known := make(map[string]bool, len(survey.Questions))
	for i := range survey.Questions {
		known[survey.Questions[i].ID] = true
	}

	byQuestion := make(map[string][]*model.Answer)
	for _, r := range responses {
		for i := range r.Answers {
			a := &r.Answers[i]
			if !known[a.QuestionID] {
				return nil, fmt.Errorf("%w: answer references question %s outside survey %s", ErrDataIntegrity, a.QuestionID, survey.ID)
			}
			byQuestion[a.QuestionID] = append(byQuestion[a.QuestionID], a)
		}
	}
	return byQuestion, nil
}

// summarizeText builds word frequencies over all non-empty text
// answers. Words are case-folded and whitespace-tokenized. Ties in
// frequency keep first-encounter order across answers, which makes the
// top-20 deterministic for a given snapshot.
func summarizeText(answers []*model.Answer) *model.TextSummary {
	counts := make(map[string]int)
	var order []string
	var totalChars, textAnswers int

	for _, a := range answers {
		if a.Text == "" {
			continue
		}
		textAnswers++
		totalChars += utf8.RuneCountInString(a.Text)
		for _, word := range strings.Fields(strings.ToLower(a.Text)) {
			if counts[word] == 0 {
				order = append(order, word)
			}
			counts[word]++
		}
	}

	summary := &model.TextSummary{TopWords: []model.WordCount{}}
	if textAnswers == 0 {
		return summary
	}

	words := make([]model.WordCount, 0, len(order))
	for _, w := range order {
		words = append(words, model.WordCount{Word: w, Count: counts[w]})
	}
	sort.SliceStable(words, func(i, j int) bool { return words[i].Count > words[j].Count })
	if len(words) > topWordLimit {
		words = words[:topWordLimit]
	}

	summary.TopWords = words
	summary.AvgLength = round2(float64(totalChars) / float64(textAnswers))
	return summary
}

// summarizeNumber computes min/max/mean/population stddev and a
// ten-bucket equal-width distribution over the observed range. Buckets
// are contiguous and gapless; the last bucket includes the maximum.
func summarizeNumber(answers []*model.Answer) *model.NumberSummary {
	var values []float64
	for _, a := range answers {
		if a.Number != nil {
			values = append(values, *a.Number)
		}
	}

	summary := &model.NumberSummary{Distribution: []model.Bucket{}}
	if len(values) == 0 {
		return summary
	}

	minV, _ := stats.Min(values)
	maxV, _ := stats.Max(values)
	mean, _ := stats.Mean(values)
	stdDev, _ := stats.StandardDeviationPopulation(values)

	summary.Min = round2(minV)
	summary.Max = round2(maxV)
	summary.Average = round2(mean)
	summary.StdDev = round2(stdDev)

	if maxV == minV {
		summary.Distribution = []model.Bucket{{From: minV, To: maxV, Count: len(values)}}
		return summary
	}

	width := (maxV - minV) / numberBucketSize
	buckets := make([]model.Bucket, numberBucketSize)
	for i := range buckets {
		buckets[i].From = minV + float64(i)*width
		buckets[i].To = minV + float64(i+1)*width
	}
	buckets[numberBucketSize-1].To = maxV
	for _, v := range values {
		idx := int((v - minV) / width)
		if idx >= numberBucketSize {
			idx = numberBucketSize - 1
		}
		buckets[idx].Count++
	}
	summary.Distribution = buckets
	return summary
}

// summarizeChoice tallies option selections. Percentages are relative
// to the total number of selections, not the number of answers, since
// a multi-choice answer can select several options. The distribution
// is sorted by count descending; ties keep first-encounter order.
func summarizeChoice(answers []*model.Answer) *model.ChoiceSummary {
	counts := make(map[string]int)
	var order []string
	totalSelections := 0

	for _, a := range answers {
		for _, option := range a.Selected {
			if counts[option] == 0 {
				order = append(order, option)
			}
			counts[option]++
			totalSelections++
		}
	}

	summary := &model.ChoiceSummary{Distribution: []model.OptionCount{}}
	if totalSelections == 0 {
		return summary
	}

	dist := make([]model.OptionCount, 0, len(order))
	for _, option := range order {
		dist = append(dist, model.OptionCount{
			Option:     option,
			Count:      counts[option],
			Percentage: round2(float64(counts[option]) / float64(totalSelections) * 100),
		})
	}
	sort.SliceStable(dist, func(i, j int) bool { return dist[i].Count > dist[j].Count })

	summary.Distribution = dist
	most := dist[0]
	least := dist[len(dist)-1]
	summary.MostPopular = &most
	summary.LeastPopular = &least
	return summary
}

// summarizeRating tallies answers per distinct value, ascending, and
// derives a qualitative verdict from where the average falls within
// the question's scale bounds. The thresholds are monotonic in the
// average and symmetric around the scale midpoint.
func summarizeRating(q *model.Question, answers []*model.Answer) *model.RatingSummary {
	counts := make(map[float64]int)
	var sum float64
	n := 0
	for _, a := range answers {
		if a.Number != nil {
			counts[*a.Number]++
			sum += *a.Number
			n++
		}
	}

	summary := &model.RatingSummary{Distribution: []model.RatingCount{}}
	if n == 0 {
		return summary
	}

	values := make([]float64, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Float64s(values)
	for _, v := range values {
		summary.Distribution = append(summary.Distribution, model.RatingCount{Value: v, Count: counts[v]})
	}

	avg := sum / float64(n)
	summary.Average = round2(avg)
	summary.Verdict = ratingVerdict(q, avg)
	return summary
}

func ratingVerdict(q *model.Question, avg float64) string {
	lo, hi := q.ScaleBounds()
	span := float64(hi - lo)
	switch {
	case avg >= float64(lo)+0.7*span:
		return "mostly positive"
	case avg <= float64(lo)+0.3*span:
		return "mostly negative"
	default:
		return "mixed"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
