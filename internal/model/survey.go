package model

import "time"

// SurveyStatus enumerates the lifecycle states of a survey
type SurveyStatus string

const (
	StatusDraft   SurveyStatus = "draft"
	StatusActive  SurveyStatus = "active"
	StatusPaused  SurveyStatus = "paused"
	StatusClosed  SurveyStatus = "closed"
	StatusExpired SurveyStatus = "expired"
)

// SurveyVisibility controls who can discover and open a survey
type SurveyVisibility string

const (
	VisibilityPublic     SurveyVisibility = "public"
	VisibilityPrivate    SurveyVisibility = "private"
	VisibilityInviteOnly SurveyVisibility = "invite_only"
)

// SurveyOptions configures respondent-facing behavior
type SurveyOptions struct {
	IsAnonymous            bool   `json:"isAnonymous" bson:"isAnonymous"`
	MaxResponses           int    `json:"maxResponses,omitempty" bson:"maxResponses,omitempty"` // 0 means unlimited
	AllowMultipleResponses bool   `json:"allowMultipleResponses" bson:"allowMultipleResponses"`
	ShowProgressBar        bool   `json:"showProgressBar" bson:"showProgressBar"`
	ThankYouMessage        string `json:"thankYouMessage,omitempty" bson:"thankYouMessage,omitempty"`
}

// Survey is a named collection of ordered questions plus configuration
type Survey struct {
	ID          string           `json:"id" bson:"_id,omitempty"`
	OwnerID     string           `json:"ownerId" bson:"ownerId"`
	Title       string           `json:"title" bson:"title"`
	Description string           `json:"description,omitempty" bson:"description,omitempty"`
	Status      SurveyStatus     `json:"status" bson:"status"`
	Visibility  SurveyVisibility `json:"visibility" bson:"visibility"`

	StartAt time.Time  `json:"startAt" bson:"startAt"`
	EndAt   *time.Time `json:"endAt,omitempty" bson:"endAt,omitempty"`

	Options   SurveyOptions `json:"options" bson:"options"`
	Questions []Question    `json:"questions" bson:"questions"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// IsOpen reports whether the survey accepts responses at the given time.
func (s *Survey) IsOpen(now time.Time) bool {
	if s.Status != StatusActive {
		return false
	}
	if now.Before(s.StartAt) {
		return false
	}
	if s.EndAt != nil && now.After(*s.EndAt) {
		return false
	}
	return true
}

// QuestionByID returns the question with the given id, or nil.
func (s *Survey) QuestionByID(id string) *Question {
	for i := range s.Questions {
		if s.Questions[i].ID == id {
			return &s.Questions[i]
		}
	}
	return nil
}
