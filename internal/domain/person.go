package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date form used for display and storage.
const DateLayout = "2006-01-02"

type Person struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Role               string             `json:"role"`
	Company            string             `json:"company"`
	Email              string             `json:"email,omitempty"`
	Phone              string             `json:"phone,omitempty"`
	ProfileImage       string             `json:"profileImage,omitempty"`
	ReputationScore    int                `json:"reputationScore"`
	RelationshipStatus RelationshipStatus `json:"relationshipStatus"`
	LastContacted      time.Time          `json:"lastContactedDate"`

	SocialProfiles []SocialProfile `json:"socialMedia"`
	Meetings       []Meeting       `json:"meetings"`
	Tasks          []Task          `json:"tasks"`
	Finances       []Finance       `json:"finances"`
	Timeline       []TimelineEntry `json:"timeline"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type SocialProfile struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Username string `json:"username"`
}

// Meetings are ordered newest first.
type Meeting struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Sentiment Sentiment `json:"sentiment"`
}

type Finance struct {
	ID          string      `json:"id"`
	Amount      float64     `json:"amount"`
	Currency    string      `json:"currency"`
	Date        time.Time   `json:"date"`
	Description string      `json:"description"`
	Type        FinanceType `json:"type"`
}

type TimelineEntry struct {
	ID          string       `json:"id"`
	Date        time.Time    `json:"date"`
	Type        TimelineType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
}

// FirstName returns the first whitespace-separated word of Name.
func (p *Person) FirstName() string {
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return p.Name
	}
	return fields[0]
}

// TaskByID returns the index of the task with the given id, or -1.
func (p *Person) TaskByID(id string) int {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy. Collections of the copy never alias the
// receiver's backing arrays.
func (p Person) Clone() Person {
	c := p
	c.SocialProfiles = cloneSlice(p.SocialProfiles)
	c.Meetings = cloneSlice(p.Meetings)
	c.Tasks = cloneSlice(p.Tasks)
	c.Finances = cloneSlice(p.Finances)
	c.Timeline = cloneSlice(p.Timeline)
	return c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

// Validate checks field ranges, enum membership and id uniqueness within
// every child collection.
func (p *Person) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if p.ReputationScore < 0 || p.ReputationScore > 100 {
		return &ValidationError{Field: "reputationScore", Message: fmt.Sprintf("must be between 0 and 100, got %d", p.ReputationScore)}
	}
	if !ValidRelationshipStatuses[p.RelationshipStatus] {
		return &ValidationError{Field: "relationshipStatus", Message: fmt.Sprintf("invalid status %q", p.RelationshipStatus)}
	}
	if err := uniqueIDs("meetings", p.Meetings, func(m Meeting) string { return m.ID }); err != nil {
		return err
	}
	for _, t := range p.Tasks {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	if err := uniqueIDs("tasks", p.Tasks, func(t Task) string { return t.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("finances", p.Finances, func(f Finance) string { return f.ID }); err != nil {
		return err
	}
	return uniqueIDs("timeline", p.Timeline, func(e TimelineEntry) string { return e.ID })
}

func uniqueIDs[T any](field string, items []T, id func(T) string) error {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		k := id(it)
		if seen[k] {
			return &ValidationError{Field: field, Message: fmt.Sprintf("duplicate id %q", k)}
		}
		seen[k] = true
	}
	return nil
}

// DaysSince returns whole days elapsed from t to now, by calendar date.
func DaysSince(t, now time.Time) int {
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
