package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/rapport/internal/assistant"
	"github.com/alexanderramin/rapport/internal/db"
	"github.com/alexanderramin/rapport/internal/domain"
	"github.com/alexanderramin/rapport/internal/repository"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// DefaultReputation is assigned to contacts created without a score.
const DefaultReputation = 50

type contactService struct {
	people repository.PersonRepo
	uow    db.UnitOfWork
	sink   assistant.EventSink

	now      func() time.Time
	observer UseCaseObserver
}

// NewContactService builds a ContactService. Task events are published to
// sink only after the owning transaction commits.
func NewContactService(
	people repository.PersonRepo,
	uow db.UnitOfWork,
	sink assistant.EventSink,
	observers ...UseCaseObserver,
) ContactService {
	if sink == nil {
		sink = assistant.NopSink{}
	}
	return &contactService{
		people:   people,
		uow:      uow,
		sink:     sink,
		now:      func() time.Time { return time.Now().UTC() },
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *contactService) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, err error) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *contactService) Create(ctx context.Context, in NewContact) (p *domain.Person, err error) {
	startedAt := time.Now()
	fields := map[string]any{"name": in.Name}
	defer func() { s.observe(ctx, "create-contact", startedAt, fields, err) }()

	status, err := domain.ParseRelationshipStatus(in.Status)
	if err != nil {
		return nil, err
	}
	now := s.now()
	p = &domain.Person{
		ID:                 uuid.New().String(),
		Name:               strings.TrimSpace(in.Name),
		Role:               strings.TrimSpace(in.Role),
		Company:            strings.TrimSpace(in.Company),
		Email:              strings.TrimSpace(in.Email),
		Phone:              strings.TrimSpace(in.Phone),
		ProfileImage:       in.ProfileImage,
		ReputationScore:    domain.IntFromPtrWithDefault(DefaultReputation, in.ReputationScore),
		RelationshipStatus: status,
		LastContacted:      now,
		CreatedAt:          now,
		UpdatedAt:          now,
		Timeline: []domain.TimelineEntry{{
			ID:          "tl_c1",
			Date:        now,
			Type:        domain.TimelineContact,
			Title:       "Added as contact",
			Description: fmt.Sprintf("%s was added to your contacts", strings.TrimSpace(in.Name)),
		}},
	}
	if err = p.Validate(); err != nil {
		return nil, err
	}
	fields["person_id"] = p.ID

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLitePersonRepo(tx).Create(ctx, p)
	})
	if err != nil {
		return nil, fmt.Errorf("creating contact: %w", err)
	}
	return p, nil
}

func (s *contactService) Get(ctx context.Context, id string) (*domain.Person, error) {
	return s.people.GetByID(ctx, id)
}

func (s *contactService) List(ctx context.Context) ([]*domain.Person, error) {
	return s.people.List(ctx)
}

func (s *contactService) Search(ctx context.Context, query string) ([]*domain.Person, error) {
	return s.people.SearchByName(ctx, query)
}

func (s *contactService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	defer func() { s.observe(ctx, "delete-contact", startedAt, map[string]any{"person_id": id}, err) }()
	return s.people.Delete(ctx, id)
}

// AddTask appends a task and a matching timeline entry in one transaction.
func (s *contactService) AddTask(ctx context.Context, personID string, nt assistant.NewTask) (task domain.Task, err error) {
	startedAt := time.Now()
	fields := map[string]any{"person_id": personID}
	defer func() { s.observe(ctx, "add-task", startedAt, fields, err) }()

	pending := &assistant.RecordingSink{}
	now := s.now()
	task, err = db.InTx(ctx, s.uow, func(ctx context.Context, tx db.DBTX) (domain.Task, error) {
		p, err := repository.NewSQLitePersonRepo(tx).GetByID(ctx, personID)
		if err != nil {
			return domain.Task{}, err
		}
		_, task, err := assistant.AddTask(ctx, pending, *p, nt, now)
		if err != nil {
			return domain.Task{}, err
		}
		if err := repository.NewSQLiteTaskRepo(tx).Insert(ctx, p.ID, task); err != nil {
			return domain.Task{}, err
		}
		entry := domain.TimelineEntry{
			ID:          domain.TimelineIDFor(task.ID),
			Date:        task.DueDate,
			Type:        domain.TimelineTask,
			Title:       task.Title,
			Description: "Task assigned: " + task.Title,
		}
		if err := repository.NewSQLiteTimelineRepo(tx).Insert(ctx, p.ID, entry); err != nil {
			return domain.Task{}, err
		}
		return task, nil
	})
	if err != nil {
		return domain.Task{}, fmt.Errorf("adding task: %w", err)
	}
	fields["task_id"] = task.ID
	s.flush(ctx, pending)
	return task, nil
}

// CompleteTask marks a stored task completed. Unknown tasks fail with
// repository.ErrNotFound.
func (s *contactService) CompleteTask(ctx context.Context, personID, taskID string) (task domain.Task, err error) {
	startedAt := time.Now()
	fields := map[string]any{"person_id": personID, "task_id": taskID}
	defer func() { s.observe(ctx, "complete-task", startedAt, fields, err) }()

	pending := &assistant.RecordingSink{}
	now := s.now()
	task, err = db.InTx(ctx, s.uow, func(ctx context.Context, tx db.DBTX) (domain.Task, error) {
		p, err := repository.NewSQLitePersonRepo(tx).GetByID(ctx, personID)
		if err != nil {
			return domain.Task{}, err
		}
		if p.TaskByID(taskID) < 0 {
			return domain.Task{}, fmt.Errorf("task %s: %w", taskID, repository.ErrNotFound)
		}
		updated := assistant.CompleteTask(ctx, pending, *p, taskID, now)
		task := updated.Tasks[updated.TaskByID(taskID)]

		if err := repository.NewSQLiteTaskRepo(tx).UpdateStatus(ctx, p.ID, taskID, task.Status); err != nil {
			return domain.Task{}, err
		}
		timeline := repository.NewSQLiteTimelineRepo(tx)
		desc := "Task completed: " + task.Title
		err = timeline.UpdateDescription(ctx, p.ID, domain.TimelineIDFor(taskID), desc)
		if errors.Is(err, repository.ErrNotFound) {
			err = timeline.Insert(ctx, p.ID, domain.TimelineEntry{
				ID:          domain.TimelineIDFor(taskID),
				Date:        now,
				Type:        domain.TimelineTask,
				Title:       task.Title,
				Description: desc,
			})
		}
		if err != nil {
			return domain.Task{}, err
		}
		return task, nil
	})
	if err != nil {
		return domain.Task{}, fmt.Errorf("completing task: %w", err)
	}
	s.flush(ctx, pending)
	return task, nil
}

// LogMeeting prepends a meeting, records it on the timeline and moves the
// last-contacted date forward when the meeting is newer.
func (s *contactService) LogMeeting(ctx context.Context, personID string, in NewMeeting) (m domain.Meeting, err error) {
	startedAt := time.Now()
	fields := map[string]any{"person_id": personID}
	defer func() { s.observe(ctx, "log-meeting", startedAt, fields, err) }()

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.Meeting{}, &domain.ValidationError{Field: "title", Message: "meeting title is required"}
	}
	sentiment := domain.Sentiment(domain.CoalesceStr(string(in.Sentiment), string(domain.SentimentNeutral)))
	if !domain.ValidSentiments[sentiment] {
		return domain.Meeting{}, &domain.ValidationError{Field: "sentiment", Message: fmt.Sprintf("invalid sentiment %q", in.Sentiment)}
	}
	now := s.now()
	date := now
	if in.Date != nil {
		date = in.Date.UTC()
	}

	m, err = db.InTx(ctx, s.uow, func(ctx context.Context, tx db.DBTX) (domain.Meeting, error) {
		people := repository.NewSQLitePersonRepo(tx)
		p, err := people.GetByID(ctx, personID)
		if err != nil {
			return domain.Meeting{}, err
		}
		m := domain.Meeting{
			ID:        domain.NextMeetingID(p.Meetings),
			Date:      date,
			Title:     title,
			Summary:   strings.TrimSpace(in.Summary),
			Sentiment: sentiment,
		}
		if err := repository.NewSQLiteMeetingRepo(tx).Insert(ctx, p.ID, m); err != nil {
			return domain.Meeting{}, err
		}
		if err := repository.NewSQLiteTimelineRepo(tx).Insert(ctx, p.ID, domain.TimelineEntry{
			ID:          domain.TimelineIDFor(m.ID),
			Date:        m.Date,
			Type:        domain.TimelineMeeting,
			Title:       m.Title,
			Description: "Meeting: " + m.Title,
		}); err != nil {
			return domain.Meeting{}, err
		}
		if m.Date.After(p.LastContacted) && !m.Date.After(now) {
			p.LastContacted = m.Date
		}
		p.UpdatedAt = now
		if err := people.Update(ctx, p); err != nil {
			return domain.Meeting{}, err
		}
		return m, nil
	})
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("logging meeting: %w", err)
	}
	fields["meeting_id"] = m.ID
	return m, nil
}

// RecordFinance prepends a finance record and its timeline entry.
func (s *contactService) RecordFinance(ctx context.Context, personID string, in NewFinance) (f domain.Finance, err error) {
	startedAt := time.Now()
	fields := map[string]any{"person_id": personID, "type": string(in.Type)}
	defer func() { s.observe(ctx, "record-finance", startedAt, fields, err) }()

	if in.Amount <= 0 {
		return domain.Finance{}, &domain.ValidationError{Field: "amount", Message: "amount must be positive"}
	}
	if !domain.ValidFinanceTypes[in.Type] {
		return domain.Finance{}, &domain.ValidationError{Field: "type", Message: fmt.Sprintf("invalid finance type %q (use owed, paid or received)", in.Type)}
	}
	date := s.now()
	if in.Date != nil {
		date = in.Date.UTC()
	}

	f, err = db.InTx(ctx, s.uow, func(ctx context.Context, tx db.DBTX) (domain.Finance, error) {
		p, err := repository.NewSQLitePersonRepo(tx).GetByID(ctx, personID)
		if err != nil {
			return domain.Finance{}, err
		}
		f := domain.Finance{
			ID:          domain.NextFinanceID(p.Finances),
			Amount:      in.Amount,
			Currency:    domain.CoalesceStr(strings.ToUpper(strings.TrimSpace(in.Currency)), "USD"),
			Date:        date,
			Description: strings.TrimSpace(in.Description),
			Type:        in.Type,
		}
		if err := repository.NewSQLiteFinanceRepo(tx).Insert(ctx, p.ID, f); err != nil {
			return domain.Finance{}, err
		}
		if err := repository.NewSQLiteTimelineRepo(tx).Insert(ctx, p.ID, FinanceTimelineEntry(f)); err != nil {
			return domain.Finance{}, err
		}
		return f, nil
	})
	if err != nil {
		return domain.Finance{}, fmt.Errorf("recording finance: %w", err)
	}
	fields["finance_id"] = f.ID
	return f, nil
}

// FinanceTimelineEntry describes f the way the timeline shows payments,
// e.g. "Owed: $1,250.5 - Consultation fee".
func FinanceTimelineEntry(f domain.Finance) domain.TimelineEntry {
	kind := string(f.Type)
	if kind != "" {
		kind = strings.ToUpper(kind[:1]) + kind[1:]
	}
	title := domain.CoalesceStr(f.Description, kind)
	return domain.TimelineEntry{
		ID:          domain.TimelineIDFor(f.ID),
		Date:        f.Date,
		Type:        domain.TimelinePayment,
		Title:       title,
		Description: fmt.Sprintf("%s: $%s - %s", kind, humanize.CommafWithDigits(f.Amount, 2), title),
	}
}

// flush forwards events recorded inside a committed transaction.
func (s *contactService) flush(ctx context.Context, pending *assistant.RecordingSink) {
	for _, ev := range pending.Events {
		s.sink.Publish(ctx, ev)
	}
}
