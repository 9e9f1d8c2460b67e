package model

import "time"

// Answer is one respondent's value for one question within one response.
// Exactly one value field is set, chosen by the question's field type.
// Answers are created once at submission and never mutated.
type Answer struct {
	QuestionID string                 `json:"questionId" bson:"questionId"`
	Text       string                 `json:"text,omitempty" bson:"text,omitempty"`
	Number     *float64               `json:"number,omitempty" bson:"number,omitempty"`
	Bool       *bool                  `json:"bool,omitempty" bson:"bool,omitempty"`
	Date       *time.Time             `json:"date,omitempty" bson:"date,omitempty"`
	Selected   []string               `json:"selected,omitempty" bson:"selected,omitempty"`
	Extra      map[string]interface{} `json:"extra,omitempty" bson:"extra,omitempty"` // matrix and other structured answers
}

// SurveyResponse is one respondent's submission for a survey.
// Answers are embedded; the write path guarantees at most one answer
// per question.
type SurveyResponse struct {
	ID         string `json:"id" bson:"_id,omitempty"`
	SurveyID   string `json:"surveyId" bson:"surveyId"`
	Respondent string `json:"respondent,omitempty" bson:"respondent,omitempty"`

	StartedAt   time.Time `json:"startedAt" bson:"startedAt"`
	SubmittedAt time.Time `json:"submittedAt" bson:"submittedAt"`

	IsComplete bool `json:"isComplete" bson:"isComplete"`

	UserAgent string `json:"userAgent,omitempty" bson:"userAgent,omitempty"`

	Answers []Answer `json:"answers" bson:"answers"`
}

// CompletionTime returns how long the respondent took, valid for
// complete responses only.
func (r *SurveyResponse) CompletionTime() time.Duration {
	return r.SubmittedAt.Sub(r.StartedAt)
}
