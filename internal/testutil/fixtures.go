package testutil

import (
	"time"

	"github.com/alexanderramin/rapport/internal/domain"
	"github.com/google/uuid"
)

// Now is the fixed instant fixtures are built around.
var Now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

// DaysAgo returns the calendar date n days before Now.
func DaysAgo(n int) time.Time {
	d := Now.AddDate(0, 0, -n)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// Person options
type PersonOption func(*domain.Person)

func WithPersonID(id string) PersonOption {
	return func(p *domain.Person) { p.ID = id }
}

func WithRole(role, company string) PersonOption {
	return func(p *domain.Person) {
		p.Role = role
		p.Company = company
	}
}

func WithStatus(s domain.RelationshipStatus) PersonOption {
	return func(p *domain.Person) { p.RelationshipStatus = s }
}

func WithReputation(score int) PersonOption {
	return func(p *domain.Person) { p.ReputationScore = score }
}

func WithLastContacted(t time.Time) PersonOption {
	return func(p *domain.Person) { p.LastContacted = t }
}

func WithMeetings(ms ...domain.Meeting) PersonOption {
	return func(p *domain.Person) { p.Meetings = append(p.Meetings, ms...) }
}

func WithTasks(ts ...domain.Task) PersonOption {
	return func(p *domain.Person) { p.Tasks = append(p.Tasks, ts...) }
}

func WithFinances(fs ...domain.Finance) PersonOption {
	return func(p *domain.Person) { p.Finances = append(p.Finances, fs...) }
}

func WithTimeline(es ...domain.TimelineEntry) PersonOption {
	return func(p *domain.Person) { p.Timeline = append(p.Timeline, es...) }
}

func WithSocial(ps ...domain.SocialProfile) PersonOption {
	return func(p *domain.Person) { p.SocialProfiles = append(p.SocialProfiles, ps...) }
}

// NewTestPerson builds an Active contact last reached ten days before Now.
func NewTestPerson(name string, opts ...PersonOption) domain.Person {
	p := domain.Person{
		ID:                 uuid.New().String(),
		Name:               name,
		Role:               "Product Designer",
		Company:            "DesignHub",
		Email:              "someone@example.com",
		ReputationScore:    75,
		RelationshipStatus: domain.RelationshipActive,
		LastContacted:      DaysAgo(10),
		CreatedAt:          Now,
		UpdatedAt:          Now,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func NewTestTask(id, title string, status domain.TaskStatus) domain.Task {
	return domain.Task{
		ID:       id,
		Title:    title,
		DueDate:  DaysAgo(-7),
		Status:   status,
		Priority: domain.PriorityMedium,
	}
}

func NewTestMeeting(id, title string, sentiment domain.Sentiment) domain.Meeting {
	return domain.Meeting{
		ID:        id,
		Date:      DaysAgo(3),
		Title:     title,
		Summary:   "Walked through the roadmap and agreed on next steps.",
		Sentiment: sentiment,
	}
}

func NewTestFinance(id string, amount float64, typ domain.FinanceType) domain.Finance {
	return domain.Finance{
		ID:          id,
		Amount:      amount,
		Currency:    "USD",
		Date:        DaysAgo(5),
		Description: "Consultation fee",
		Type:        typ,
	}
}
