package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/rapport/internal/domain"
)

// ValidateDataset checks the dataset for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateDataset(file DatasetFile) []error {
	var errs []error
	ids := make(map[string]bool)

	for i, p := range file {
		prefix := fmt.Sprintf("people[%d]", i)

		if p.ID != "" {
			if ids[p.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, p.ID))
			}
			ids[p.ID] = true
		}
		if strings.TrimSpace(p.Name) == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if p.ReputationScore != nil && (*p.ReputationScore < 0 || *p.ReputationScore > 100) {
			errs = append(errs, fmt.Errorf("%s.reputationScore: %d out of range 0-100", prefix, *p.ReputationScore))
		}
		if p.RelationshipStatus != "" {
			if _, err := domain.ParseRelationshipStatus(p.RelationshipStatus); err != nil {
				errs = append(errs, fmt.Errorf("%s.relationshipStatus: invalid value %q", prefix, p.RelationshipStatus))
			}
		}
		errs = append(errs, validateOptionalDate(prefix+".lastContactedDate", p.LastContactedDate)...)

		errs = append(errs, validateMeetings(prefix, p.Meetings)...)
		errs = append(errs, validateTasks(prefix, p.Tasks)...)
		errs = append(errs, validateFinances(prefix, p.Finances)...)
		errs = append(errs, validateTimeline(prefix, p.Timeline)...)
	}

	return errs
}

func validateMeetings(parent string, meetings []MeetingImport) []error {
	var errs []error
	ids := make(map[string]bool)

	for i, m := range meetings {
		prefix := fmt.Sprintf("%s.meetings[%d]", parent, i)
		errs = append(errs, validateItemID(prefix, m.ID, ids)...)
		if m.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if m.Sentiment != "" && !domain.ValidSentiments[domain.Sentiment(m.Sentiment)] {
			errs = append(errs, fmt.Errorf("%s.sentiment: invalid value %q", prefix, m.Sentiment))
		}
		errs = append(errs, validateRequiredDate(prefix+".date", m.Date)...)
	}

	return errs
}

func validateTasks(parent string, tasks []TaskImport) []error {
	var errs []error
	ids := make(map[string]bool)

	for i, t := range tasks {
		prefix := fmt.Sprintf("%s.tasks[%d]", parent, i)
		errs = append(errs, validateItemID(prefix, t.ID, ids)...)
		if strings.TrimSpace(t.Title) == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if t.Status != "" && !domain.ValidTaskStatuses[domain.TaskStatus(t.Status)] {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, t.Status))
		}
		if t.Priority != "" && !domain.ValidPriorities[domain.Priority(t.Priority)] {
			errs = append(errs, fmt.Errorf("%s.priority: invalid value %q", prefix, t.Priority))
		}
		errs = append(errs, validateRequiredDate(prefix+".dueDate", t.DueDate)...)
	}

	return errs
}

func validateFinances(parent string, finances []FinanceImport) []error {
	var errs []error
	ids := make(map[string]bool)

	for i, f := range finances {
		prefix := fmt.Sprintf("%s.finances[%d]", parent, i)
		errs = append(errs, validateItemID(prefix, f.ID, ids)...)
		if f.Amount <= 0 {
			errs = append(errs, fmt.Errorf("%s.amount must be positive", prefix))
		}
		if !domain.ValidFinanceTypes[domain.FinanceType(f.Type)] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, f.Type))
		}
		errs = append(errs, validateRequiredDate(prefix+".date", f.Date)...)
	}

	return errs
}

func validateTimeline(parent string, entries []TimelineImport) []error {
	var errs []error
	ids := make(map[string]bool)

	for i, e := range entries {
		prefix := fmt.Sprintf("%s.timeline[%d]", parent, i)
		errs = append(errs, validateItemID(prefix, e.ID, ids)...)
		if !domain.ValidTimelineTypes[domain.TimelineType(e.Type)] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, e.Type))
		}
		errs = append(errs, validateRequiredDate(prefix+".date", e.Date)...)
	}

	return errs
}

func validateItemID(prefix, id string, seen map[string]bool) []error {
	if id == "" {
		return []error{fmt.Errorf("%s.id is required", prefix)}
	}
	if seen[id] {
		return []error{fmt.Errorf("%s.id: duplicate id %q", prefix, id)}
	}
	seen[id] = true
	return nil
}

func validateRequiredDate(field, value string) []error {
	if value == "" {
		return []error{fmt.Errorf("%s is required", field)}
	}
	return validateOptionalDate(field, value)
}

func validateOptionalDate(field, value string) []error {
	if value == "" {
		return nil
	}
	if _, err := parseDate(value); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value)}
	}
	return nil
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(domain.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
