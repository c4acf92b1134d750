package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/rapport/internal/domain"
	"github.com/elliotchance/pie/v2"
	"github.com/google/uuid"
)

// defaultReputation applies when a record omits reputationScore.
const defaultReputation = 50

// Convert transforms a validated dataset into domain people ready for
// persistence. Call ValidateDataset first; Convert assumes the file is valid.
// Records without an id get a fresh UUID.
func Convert(file DatasetFile, now time.Time) ([]domain.Person, error) {
	people := make([]domain.Person, 0, len(file))
	for i, rec := range file {
		p, err := convertPerson(rec, now)
		if err != nil {
			return nil, fmt.Errorf("people[%d]: %w", i, err)
		}
		people = append(people, p)
	}
	return people, nil
}

func convertPerson(rec PersonImport, now time.Time) (domain.Person, error) {
	status, err := domain.ParseRelationshipStatus(rec.RelationshipStatus)
	if err != nil {
		return domain.Person{}, err
	}
	id := rec.ID
	if id == "" {
		id = uuid.New().String()
	}

	p := domain.Person{
		ID:                 id,
		Name:               strings.TrimSpace(rec.Name),
		Role:               rec.Role,
		Company:            rec.Company,
		Email:              rec.Email,
		Phone:              rec.Phone,
		ProfileImage:       rec.ProfileImage,
		ReputationScore:    domain.IntFromPtrWithDefault(defaultReputation, rec.ReputationScore),
		RelationshipStatus: status,
		LastContacted:      parseOptionalDate(rec.LastContactedDate, now),
		SocialProfiles: pie.Map(rec.SocialMedia, func(s SocialImport) domain.SocialProfile {
			return domain.SocialProfile{Platform: s.Platform, URL: s.URL, Username: s.Username}
		}),
		Meetings: pie.Map(rec.Meetings, func(m MeetingImport) domain.Meeting {
			return domain.Meeting{
				ID:        m.ID,
				Date:      parseOptionalDate(m.Date, now),
				Title:     m.Title,
				Summary:   m.Summary,
				Sentiment: domain.Sentiment(domain.CoalesceStr(m.Sentiment, string(domain.SentimentNeutral))),
			}
		}),
		Tasks: pie.Map(rec.Tasks, func(t TaskImport) domain.Task {
			return domain.Task{
				ID:       t.ID,
				Title:    strings.TrimSpace(t.Title),
				DueDate:  parseOptionalDate(t.DueDate, now),
				Status:   domain.TaskStatus(domain.CoalesceStr(t.Status, string(domain.TaskPending))),
				Priority: domain.Priority(domain.CoalesceStr(t.Priority, string(domain.PriorityMedium))),
			}
		}),
		Finances: pie.Map(rec.Finances, func(f FinanceImport) domain.Finance {
			return domain.Finance{
				ID:          f.ID,
				Amount:      f.Amount,
				Currency:    domain.CoalesceStr(strings.ToUpper(f.Currency), "USD"),
				Date:        parseOptionalDate(f.Date, now),
				Description: f.Description,
				Type:        domain.FinanceType(f.Type),
			}
		}),
		Timeline: pie.Map(rec.Timeline, func(e TimelineImport) domain.TimelineEntry {
			return domain.TimelineEntry{
				ID:          e.ID,
				Date:        parseOptionalDate(e.Date, now),
				Type:        domain.TimelineType(e.Type),
				Title:       e.Title,
				Description: e.Description,
			}
		}),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := p.Validate(); err != nil {
		return domain.Person{}, err
	}
	return p, nil
}

// Export converts people into the dataset form written by WriteDataset.
// Dates are written as calendar dates.
func Export(people []domain.Person) DatasetFile {
	return pie.Map(people, func(p domain.Person) PersonImport {
		score := p.ReputationScore
		return PersonImport{
			ID:                 p.ID,
			Name:               p.Name,
			ProfileImage:       p.ProfileImage,
			Role:               p.Role,
			Company:            p.Company,
			Email:              p.Email,
			Phone:              p.Phone,
			ReputationScore:    &score,
			LastContactedDate:  formatDate(p.LastContacted),
			RelationshipStatus: string(p.RelationshipStatus),
			SocialMedia: pie.Map(p.SocialProfiles, func(s domain.SocialProfile) SocialImport {
				return SocialImport{Platform: s.Platform, URL: s.URL, Username: s.Username}
			}),
			Meetings: pie.Map(p.Meetings, func(m domain.Meeting) MeetingImport {
				return MeetingImport{ID: m.ID, Date: formatDate(m.Date), Title: m.Title, Summary: m.Summary, Sentiment: string(m.Sentiment)}
			}),
			Tasks: pie.Map(p.Tasks, func(t domain.Task) TaskImport {
				return TaskImport{ID: t.ID, Title: t.Title, DueDate: formatDate(t.DueDate), Status: string(t.Status), Priority: string(t.Priority)}
			}),
			Finances: pie.Map(p.Finances, func(f domain.Finance) FinanceImport {
				return FinanceImport{ID: f.ID, Amount: f.Amount, Currency: f.Currency, Date: formatDate(f.Date), Description: f.Description, Type: string(f.Type)}
			}),
			Timeline: pie.Map(p.Timeline, func(e domain.TimelineEntry) TimelineImport {
				return TimelineImport{ID: e.ID, Date: formatDate(e.Date), Type: string(e.Type), Title: e.Title, Description: e.Description}
			}),
		}
	})
}

// parseOptionalDate returns the parsed date, or fallback for an empty
// string. Values are assumed validated.
func parseOptionalDate(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	t, err := parseDate(s)
	if err != nil {
		return fallback
	}
	return t
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(domain.DateLayout)
}
