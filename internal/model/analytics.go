package model

import "time"

// SurveySummary holds survey-level response statistics.
// Derived data: always recomputed from responses, never authoritative.
type SurveySummary struct {
	TotalResponses     int     `json:"totalResponses" bson:"totalResponses"`
	CompletedResponses int     `json:"completedResponses" bson:"completedResponses"`
	CompletionRate     float64 `json:"completionRate" bson:"completionRate"`

	// Mean completion time in seconds over complete responses,
	// absent when none exist.
	AverageCompletionTimeSec *float64 `json:"averageCompletionTimeSec,omitempty" bson:"averageCompletionTimeSec,omitempty"`

	// Responses per calendar day over the most recent 30 days, ascending.
	DailyResponseCounts []DailyCount `json:"dailyResponseCounts" bson:"dailyResponseCounts"`

	// Most common user agents across all responses, count descending.
	TopUserAgents []AgentCount `json:"topUserAgents" bson:"topUserAgents"`
}

// AgentCount is a user agent with its response tally
type AgentCount struct {
	UserAgent string `json:"userAgent" bson:"userAgent"`
	Count     int    `json:"count" bson:"count"`
}

// DailyCount is a per-day response tally
type DailyCount struct {
	Day   string `json:"day" bson:"day"` // YYYY-MM-DD, UTC
	Count int    `json:"count" bson:"count"`
}

// QuestionSummary holds per-question statistics. At most one of the
// type-specific fields is set, selected by the question's field type.
type QuestionSummary struct {
	QuestionID    string    `json:"questionId" bson:"questionId"`
	QuestionTitle string    `json:"questionTitle" bson:"questionTitle"`
	FieldType     FieldType `json:"fieldType" bson:"fieldType"`

	TotalAnswers int     `json:"totalAnswers" bson:"totalAnswers"`
	AnswerRate   float64 `json:"answerRate" bson:"answerRate"`
	SkipRate     float64 `json:"skipRate" bson:"skipRate"`

	Text   *TextSummary   `json:"text,omitempty" bson:"text,omitempty"`
	Number *NumberSummary `json:"number,omitempty" bson:"number,omitempty"`
	Choice *ChoiceSummary `json:"choice,omitempty" bson:"choice,omitempty"`
	Rating *RatingSummary `json:"rating,omitempty" bson:"rating,omitempty"`
}

// WordCount is a word with its frequency
type WordCount struct {
	Word  string `json:"word" bson:"word"`
	Count int    `json:"count" bson:"count"`
}

// TextSummary summarizes free-text answers
type TextSummary struct {
	TopWords  []WordCount `json:"topWords" bson:"topWords"`
	AvgLength float64     `json:"avgLength" bson:"avgLength"` // characters
}

// Bucket is one contiguous slice of a numeric distribution
type Bucket struct {
	From  float64 `json:"from" bson:"from"`
	To    float64 `json:"to" bson:"to"`
	Count int     `json:"count" bson:"count"`
}

// NumberSummary summarizes numeric answers
type NumberSummary struct {
	Min          float64  `json:"min" bson:"min"`
	Max          float64  `json:"max" bson:"max"`
	Average      float64  `json:"average" bson:"average"`
	StdDev       float64  `json:"stdDev" bson:"stdDev"`
	Distribution []Bucket `json:"distribution" bson:"distribution"`
}

// OptionCount is one option's selection tally
type OptionCount struct {
	Option     string  `json:"option" bson:"option"`
	Count      int     `json:"count" bson:"count"`
	Percentage float64 `json:"percentage" bson:"percentage"`
}

// ChoiceSummary summarizes single/multi choice answers.
// Distribution is sorted by count descending.
type ChoiceSummary struct {
	Distribution []OptionCount `json:"distribution" bson:"distribution"`
	MostPopular  *OptionCount  `json:"mostPopular,omitempty" bson:"mostPopular,omitempty"`
	LeastPopular *OptionCount  `json:"leastPopular,omitempty" bson:"leastPopular,omitempty"`
}

// RatingCount is a distinct rating value with its tally
type RatingCount struct {
	Value float64 `json:"value" bson:"value"`
	Count int     `json:"count" bson:"count"`
}

// RatingSummary summarizes rating/scale answers.
// Distribution is ordered by value ascending.
type RatingSummary struct {
	Distribution []RatingCount `json:"distribution" bson:"distribution"`
	Average      float64       `json:"average" bson:"average"`
	Verdict      string        `json:"verdict" bson:"verdict"` // "mostly positive", "mixed", "mostly negative"
}

// FunnelStage is one step of the abandonment funnel
type FunnelStage struct {
	QuestionOrder   int     `json:"questionOrder" bson:"questionOrder"`
	QuestionTitle   string  `json:"questionTitle" bson:"questionTitle"`
	AnsweredCount   int     `json:"answeredCount" bson:"answeredCount"`
	AbandonmentRate float64 `json:"abandonmentRate" bson:"abandonmentRate"`
}

// SurveyReport bundles every summary for a survey
type SurveyReport struct {
	SurveyID    string       `json:"surveyId" bson:"surveyId"`
	Title       string       `json:"title" bson:"title"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Status      SurveyStatus `json:"status" bson:"status"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`

	Summary   SurveySummary     `json:"summary" bson:"summary"`
	Questions []QuestionSummary `json:"questions" bson:"questions"`
	Funnel    []FunnelStage     `json:"funnel" bson:"funnel"`

	GeneratedAt time.Time `json:"generatedAt" bson:"generatedAt"`
}
