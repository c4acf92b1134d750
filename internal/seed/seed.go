// Package seed generates realistic mock contacts for demos and local
// development.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/rapport/internal/assistant"
	"github.com/alexanderramin/rapport/internal/db"
	"github.com/alexanderramin/rapport/internal/domain"
	"github.com/alexanderramin/rapport/internal/repository"
	"github.com/alexanderramin/rapport/internal/service"
	"github.com/elliotchance/pie/v2"
	"github.com/google/uuid"
)

// Generator builds mock contacts. All choices come from its Randomizer, so
// a seeded Randomizer and a fixed clock give identical output apart from
// person ids.
type Generator struct {
	rnd assistant.Randomizer
	now time.Time
}

func NewGenerator(rnd assistant.Randomizer, now time.Time) *Generator {
	if rnd == nil {
		rnd = assistant.DefaultRandom()
	}
	return &Generator{rnd: rnd, now: now.UTC()}
}

// People returns n generated contacts.
func (g *Generator) People(n int) []domain.Person {
	people := make([]domain.Person, 0, n)
	for range n {
		people = append(people, g.Person())
	}
	return people
}

// Person generates one contact with meetings, tasks, finances and a
// timeline derived from them, newest entry first.
func (g *Generator) Person() domain.Person {
	first, last := pick(g.rnd, firstNames), pick(g.rnd, lastNames)
	role, company := pick(g.rnd, roles), pick(g.rnd, companies)

	gender := "women"
	if g.rnd.Intn(2) == 1 {
		gender = "men"
	}

	p := domain.Person{
		ID:                 uuid.New().String(),
		Name:               first + " " + last,
		ProfileImage:       fmt.Sprintf("https://randomuser.me/api/portraits/%s/%d.jpg", gender, between(g.rnd, 1, 99)),
		Role:               role,
		Company:            company,
		Email:              fmt.Sprintf("%s.%s@%s.com", strings.ToLower(first), strings.ToLower(last), strings.ToLower(company)),
		Phone:              fmt.Sprintf("(555) %03d-%04d", between(g.rnd, 100, 999), between(g.rnd, 0, 9999)),
		ReputationScore:    between(g.rnd, 60, 100),
		RelationshipStatus: pick(g.rnd, []domain.RelationshipStatus{
			domain.RelationshipNew, domain.RelationshipActive, domain.RelationshipInactive, domain.RelationshipClose,
		}),
		LastContacted: g.daysAgo(between(g.rnd, 0, 180)),
		CreatedAt:     g.now,
		UpdatedAt:     g.now,
	}
	p.SocialProfiles = g.socialProfiles(first, last)
	p.Meetings = g.meetings(role)
	p.Tasks = g.tasks()
	p.Finances = g.finances()
	p.Timeline = g.timeline(p)
	return p
}

func (g *Generator) socialProfiles(first, last string) []domain.SocialProfile {
	chosen := sample(g.rnd, platforms, between(g.rnd, 1, 4))
	return pie.Map(chosen, func(platform string) domain.SocialProfile {
		username := fmt.Sprintf("%s%s%d", strings.ToLower(first), strings.ToLower(last), between(g.rnd, 1, 99))
		return domain.SocialProfile{
			Platform: platform,
			URL:      fmt.Sprintf("https://%s.com/%s", strings.ToLower(platform), username),
			Username: username,
		}
	})
}

func (g *Generator) meetings(role string) []domain.Meeting {
	n := between(g.rnd, 0, 3)
	meetings := make([]domain.Meeting, 0, n)
	for i := 1; i <= n; i++ {
		title := pick(g.rnd, meetingTitles)
		if strings.Contains(title, "%s") {
			title = fmt.Sprintf(title, role)
		}
		meetings = append(meetings, domain.Meeting{
			ID:      fmt.Sprintf("m%d", i),
			Date:    g.daysAgo(between(g.rnd, 0, 90)),
			Title:   title,
			Summary: strings.Join(sample(g.rnd, summarySentences, between(g.rnd, 3, 6)), " "),
			Sentiment: pick(g.rnd, []domain.Sentiment{
				domain.SentimentPositive, domain.SentimentNeutral, domain.SentimentNegative,
			}),
		})
	}
	return newestFirst(meetings, func(m domain.Meeting) time.Time { return m.Date })
}

func (g *Generator) tasks() []domain.Task {
	n := between(g.rnd, 0, 5)
	tasks := make([]domain.Task, 0, n)
	for i := 1; i <= n; i++ {
		tasks = append(tasks, domain.Task{
			ID:    fmt.Sprintf("t%d", i),
			Title: pick(g.rnd, taskTitles),
			// Negative offsets leave some tasks past due.
			DueDate: g.daysAgo(-between(g.rnd, -10, 30)),
			Status: pick(g.rnd, []domain.TaskStatus{
				domain.TaskPending, domain.TaskInProgress, domain.TaskCompleted, domain.TaskOverdue,
			}),
			Priority: pick(g.rnd, []domain.Priority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh}),
		})
	}
	return tasks
}

func (g *Generator) finances() []domain.Finance {
	n := between(g.rnd, 0, 3)
	finances := make([]domain.Finance, 0, n)
	for i := 1; i <= n; i++ {
		finances = append(finances, domain.Finance{
			ID:          fmt.Sprintf("f%d", i),
			Amount:      float64(between(g.rnd, 100, 5000)),
			Currency:    "USD",
			Date:        g.daysAgo(between(g.rnd, 0, 90)),
			Description: pick(g.rnd, financeDescriptions),
			Type:        pick(g.rnd, []domain.FinanceType{domain.FinanceOwed, domain.FinancePaid, domain.FinanceReceived}),
		})
	}
	return newestFirst(finances, func(f domain.Finance) time.Time { return f.Date })
}

func (g *Generator) timeline(p domain.Person) []domain.TimelineEntry {
	var entries []domain.TimelineEntry
	for _, m := range p.Meetings {
		entries = append(entries, domain.TimelineEntry{
			ID:          domain.TimelineIDFor(m.ID),
			Date:        m.Date,
			Type:        domain.TimelineMeeting,
			Title:       m.Title,
			Description: "Meeting: " + m.Title,
		})
	}
	for _, t := range p.Tasks {
		entries = append(entries, domain.TimelineEntry{
			ID:          domain.TimelineIDFor(t.ID),
			Date:        t.DueDate,
			Type:        domain.TimelineTask,
			Title:       t.Title,
			Description: "Task due: " + t.Title,
		})
	}
	for _, f := range p.Finances {
		entries = append(entries, service.FinanceTimelineEntry(f))
	}
	for i := 1; i <= between(g.rnd, 1, 3); i++ {
		channel := pick(g.rnd, contactChannels)
		entries = append(entries, domain.TimelineEntry{
			ID:          domain.TimelineIDFor(fmt.Sprintf("c%d", i)),
			Date:        g.daysAgo(between(g.rnd, 0, 120)),
			Type:        domain.TimelineContact,
			Title:       channel,
			Description: "Contact via " + strings.ToLower(channel),
		})
	}
	return newestFirst(entries, func(e domain.TimelineEntry) time.Time { return e.Date })
}

// daysAgo returns the calendar date n days before now. Negative n is in
// the future.
func (g *Generator) daysAgo(n int) time.Time {
	y, m, d := g.now.Date()
	return time.Date(y, m, d-n, 0, 0, 0, 0, time.UTC)
}

// Populate stores people in a single transaction.
func Populate(ctx context.Context, uow db.UnitOfWork, people []domain.Person) error {
	return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLitePersonRepo(tx)
		for i := range people {
			if err := repo.Create(ctx, &people[i]); err != nil {
				return fmt.Errorf("seeding %s: %w", people[i].Name, err)
			}
		}
		return nil
	})
}

func newestFirst[T comparable](items []T, date func(T) time.Time) []T {
	return pie.SortStableUsing(items, func(a, b T) bool {
		return date(a).After(date(b))
	})
}

func between(r assistant.Randomizer, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

func pick[T any](r assistant.Randomizer, items []T) T {
	return items[r.Intn(len(items))]
}

// sample returns n distinct items in random order using a partial
// Fisher-Yates shuffle of a copy.
func sample[T any](r assistant.Randomizer, items []T, n int) []T {
	pool := append([]T(nil), items...)
	n = min(n, len(pool))
	for i := range n {
		j := i + r.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
