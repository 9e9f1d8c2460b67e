package model

import "time"

// BlueprintData is the survey structure a blueprint stamps out.
// Question ids are assigned at instantiation, not stored here.
type BlueprintData struct {
	Title       string        `json:"title" bson:"title"`
	Description string        `json:"description,omitempty" bson:"description,omitempty"`
	Options     SurveyOptions `json:"options" bson:"options"`
	Questions   []Question    `json:"questions" bson:"questions"`
}

// SurveyBlueprint is a reusable survey template. Public blueprints are
// visible to every owner; private ones only to their creator.
type SurveyBlueprint struct {
	ID          string   `json:"id" bson:"_id,omitempty"`
	OwnerID     string   `json:"ownerId" bson:"ownerId"`
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Category    string   `json:"category,omitempty" bson:"category,omitempty"`
	Tags        []string `json:"tags,omitempty" bson:"tags,omitempty"`
	IsPublic    bool     `json:"isPublic" bson:"isPublic"`

	// UsageCount increments each time a survey is created from the
	// blueprint.
	UsageCount int64 `json:"usageCount" bson:"usageCount"`

	Data BlueprintData `json:"data" bson:"data"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// VisibleTo reports whether the given owner may read the blueprint.
func (b *SurveyBlueprint) VisibleTo(ownerID string) bool {
	return b.IsPublic || b.OwnerID == ownerID
}
