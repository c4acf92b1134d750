package repository

import (
	"context"

	"github.com/alexanderramin/rapport/internal/domain"
)

// PersonRepo stores contacts. GetByID, List and SearchByName return fully
// hydrated people with every collection in stored order.
type PersonRepo interface {
	Create(ctx context.Context, p *domain.Person) error
	GetByID(ctx context.Context, id string) (*domain.Person, error)
	List(ctx context.Context) ([]*domain.Person, error)
	SearchByName(ctx context.Context, query string) ([]*domain.Person, error)
	Update(ctx context.Context, p *domain.Person) error
	Delete(ctx context.Context, id string) error
}

// TaskRepo appends tasks in assignment order.
type TaskRepo interface {
	ListByPerson(ctx context.Context, personID string) ([]domain.Task, error)
	Insert(ctx context.Context, personID string, t domain.Task) error
	UpdateStatus(ctx context.Context, personID, taskID string, status domain.TaskStatus) error
}

// MeetingRepo keeps meetings newest first; Insert puts the meeting at the front.
type MeetingRepo interface {
	ListByPerson(ctx context.Context, personID string) ([]domain.Meeting, error)
	Insert(ctx context.Context, personID string, m domain.Meeting) error
}

// FinanceRepo keeps finance records newest first.
type FinanceRepo interface {
	ListByPerson(ctx context.Context, personID string) ([]domain.Finance, error)
	Insert(ctx context.Context, personID string, f domain.Finance) error
}

// TimelineRepo keeps timeline entries newest first.
type TimelineRepo interface {
	ListByPerson(ctx context.Context, personID string) ([]domain.TimelineEntry, error)
	Insert(ctx context.Context, personID string, e domain.TimelineEntry) error
	UpdateDescription(ctx context.Context, personID, entryID, description string) error
}
