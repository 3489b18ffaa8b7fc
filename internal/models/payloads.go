package models

// MathCategory is the category value that selects the math subject
const MathCategory = "math"

// Required text fields are pointers: nil means the key was absent or null,
// while an empty string is a valid value and is passed through unchanged.

// QuestionPayload is the payload of the question operation
type QuestionPayload struct {
	Topic    *string `json:"topic" validate:"required"`
	Category string  `json:"category"`
}

// GetTopic returns the topic, or "" when absent
func (p *QuestionPayload) GetTopic() string { return deref(p.Topic) }

// IsMath reports whether the question targets the math subject.
// Any other category value, including an empty one, selects science.
func (p *QuestionPayload) IsMath() bool {
	return p.Category == MathCategory
}

// FeedbackPayload is the payload of the feedback operation
type FeedbackPayload struct {
	Question    *string `json:"question" validate:"required"`
	Answer      *string `json:"answer" validate:"required"`
	ModelAnswer string  `json:"modelAnswer"`
}

// GetQuestion returns the question, or "" when absent
func (p *FeedbackPayload) GetQuestion() string { return deref(p.Question) }

// GetAnswer returns the student's answer, or "" when absent
func (p *FeedbackPayload) GetAnswer() string { return deref(p.Answer) }

// HasModelAnswer reports whether a non-empty model answer was supplied
func (p *FeedbackPayload) HasModelAnswer() bool {
	return p.ModelAnswer != ""
}

// SessionItem is one answered question of an interview session
type SessionItem struct {
	Question *string `json:"question" validate:"required"`
	Answer   string  `json:"answer"`
}

// GetQuestion returns the question, or "" when absent
func (s SessionItem) GetQuestion() string { return deref(s.Question) }

// ReportPayload is the payload of the report operation.
// SessionHistory must be present; an empty list is accepted.
type ReportPayload struct {
	SessionHistory []SessionItem `json:"sessionHistory" validate:"required,dive"`
}

// LoginPayload is the payload of the login operation
type LoginPayload struct {
	Password *string `json:"password" validate:"required"`
}

// GetPassword returns the submitted password, or "" when absent
func (p *LoginPayload) GetPassword() string { return deref(p.Password) }

// String returns a pointer to s, for building payloads in code
func String(s string) *string { return &s }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
