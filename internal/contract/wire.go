package contract

import (
	"errors"
	"strings"
	"time"

	"github.com/alexanderramin/rapport/internal/assistant"
	"github.com/alexanderramin/rapport/internal/domain"
)

// ProcessCommandRequest is the body of POST /api/process-command. Person,
// when present, is answered as-is and PersonID is not looked up.
type ProcessCommandRequest struct {
	Command  string         `json:"command"`
	PersonID string         `json:"personId"`
	Person   *domain.Person `json:"person,omitempty"`
}

func (r ProcessCommandRequest) Validate() error {
	if strings.TrimSpace(r.Command) == "" {
		return &domain.ValidationError{Field: "command", Message: "command is required"}
	}
	if r.Person == nil && strings.TrimSpace(r.PersonID) == "" {
		return &domain.ValidationError{Field: "personId", Message: "personId is required"}
	}
	return validateInline(r.Person)
}

// InsightRequest is the body of POST /api/insight.
type InsightRequest struct {
	PersonID string         `json:"personId"`
	Person   *domain.Person `json:"person,omitempty"`
}

func (r InsightRequest) Validate() error {
	if r.Person == nil && strings.TrimSpace(r.PersonID) == "" {
		return &domain.ValidationError{Field: "personId", Message: "personId is required"}
	}
	return validateInline(r.Person)
}

// validateInline checks an inline person the same way a stored one is
// checked, reporting fields under "person.".
func validateInline(p *domain.Person) error {
	if p == nil {
		return nil
	}
	err := p.Validate()
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return &domain.ValidationError{Field: "person." + ve.Field, Message: ve.Message}
	}
	return err
}

type CreatePersonRequest struct {
	Name               string `json:"name"`
	Role               string `json:"role"`
	Company            string `json:"company"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	ProfileImage       string `json:"profileImage"`
	RelationshipStatus string `json:"relationshipStatus"`
	ReputationScore    *int   `json:"reputationScore"`
}

// AddTaskRequest is the body of POST /api/people/{id}/tasks. DueDate
// accepts a calendar date or an RFC 3339 timestamp.
type AddTaskRequest struct {
	Title    string `json:"title"`
	Priority string `json:"priority,omitempty"`
	DueDate  string `json:"dueDate,omitempty"`
}

// ToNewTask parses priority and due date. Title checks are left to
// assistant.AddTask.
func (r AddTaskRequest) ToNewTask() (assistant.NewTask, error) {
	priority, err := domain.ParsePriority(r.Priority)
	if err != nil {
		return assistant.NewTask{}, err
	}
	nt := assistant.NewTask{Title: r.Title, Priority: priority}
	if r.DueDate != "" {
		due, err := ParseDate(r.DueDate)
		if err != nil {
			return assistant.NewTask{}, err
		}
		nt.DueDate = &due
	}
	return nt, nil
}

// LogMeetingRequest is the body of POST /api/people/{id}/meetings.
type LogMeetingRequest struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Sentiment string `json:"sentiment,omitempty"`
	Date      string `json:"date,omitempty"`
}

// RecordFinanceRequest is the body of POST /api/people/{id}/finances.
type RecordFinanceRequest struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency,omitempty"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Date        string  `json:"date,omitempty"`
}

// OptionalDate parses s with ParseDate, reporting errors against field.
// A blank s yields nil.
func OptionalDate(field, s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			ve.Field = field
		}
		return nil, err
	}
	return &t, nil
}

// ParseDate accepts "2006-01-02" or RFC 3339 and returns UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(domain.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: "dueDate", Message: "use YYYY-MM-DD or RFC 3339, got " + s}
	}
	return t.UTC(), nil
}

type HealthResponse struct {
	Status string `json:"status"`
}

type ErrorCode string

const (
	CodeBadRequest  ErrorCode = "BAD_REQUEST"
	CodeValidation  ErrorCode = "VALIDATION"
	CodeNotFound    ErrorCode = "NOT_FOUND"
	CodeRateLimited ErrorCode = "RATE_LIMITED"
	CodeTimeout     ErrorCode = "TIMEOUT"
	CodeInternal    ErrorCode = "INTERNAL_ERROR"
)

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Error string    `json:"error"`
	Code  ErrorCode `json:"code,omitempty"`
	Field string    `json:"field,omitempty"`
}
