package model

// FieldType defines the input type of a question
type FieldType string

const (
	FieldShortText    FieldType = "short_text"
	FieldLongText     FieldType = "long_text"
	FieldNumber       FieldType = "number"
	FieldEmail        FieldType = "email"
	FieldSingleChoice FieldType = "single_choice"
	FieldMultiChoice  FieldType = "multi_choice"
	FieldRating       FieldType = "rating"
	FieldScale        FieldType = "scale"
	FieldDate         FieldType = "date"
	FieldDateTime     FieldType = "datetime"
	FieldBoolean      FieldType = "boolean"
	FieldFile         FieldType = "file"
	FieldURL          FieldType = "url"
	FieldPhone        FieldType = "phone"
	FieldMatrix       FieldType = "matrix"
)

// IsKnown reports whether the tag is one of the supported field types.
func (t FieldType) IsKnown() bool {
	switch t {
	case FieldShortText, FieldLongText, FieldNumber, FieldEmail,
		FieldSingleChoice, FieldMultiChoice, FieldRating, FieldScale,
		FieldDate, FieldDateTime, FieldBoolean, FieldFile,
		FieldURL, FieldPhone, FieldMatrix:
		return true
	}
	return false
}

// Option is one selectable choice of a single/multi choice question
type Option struct {
	Value string `json:"value" bson:"value"`
	Label string `json:"label" bson:"label"`
}

// Question is a single prompt within a survey
type Question struct {
	ID          string    `json:"id" bson:"id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	FieldType   FieldType `json:"fieldType" bson:"fieldType"`
	IsRequired  bool      `json:"isRequired" bson:"isRequired"`
	Order       int       `json:"order" bson:"order"`

	// Choice types
	Options []Option `json:"options,omitempty" bson:"options,omitempty"`

	// Rating / scale types
	ScaleMin int `json:"scaleMin,omitempty" bson:"scaleMin,omitempty"`
	ScaleMax int `json:"scaleMax,omitempty" bson:"scaleMax,omitempty"`

	// Validation hints
	MinLength int      `json:"minLength,omitempty" bson:"minLength,omitempty"`
	MaxLength int      `json:"maxLength,omitempty" bson:"maxLength,omitempty"`
	MinValue  *float64 `json:"minValue,omitempty" bson:"minValue,omitempty"`
	MaxValue  *float64 `json:"maxValue,omitempty" bson:"maxValue,omitempty"`
}

// HasOption reports whether value is one of the question's options.
func (q *Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// ScaleBounds returns the configured rating bounds, falling back to 1..5
// when the question carries none.
func (q *Question) ScaleBounds() (int, int) {
	if q.ScaleMax > q.ScaleMin {
		return q.ScaleMin, q.ScaleMax
	}
	return 1, 5
}
