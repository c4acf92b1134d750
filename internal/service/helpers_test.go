package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/rapport/internal/assistant"
	"github.com/alexanderramin/rapport/internal/db"
	"github.com/alexanderramin/rapport/internal/domain"
	"github.com/alexanderramin/rapport/internal/repository"
	"github.com/alexanderramin/rapport/internal/testutil"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	db     *sql.DB
	people *repository.SQLitePersonRepo
	events *assistant.RecordingSink
	obs    *recordingObserver
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &serviceFixture{
		db:     database,
		people: repository.NewSQLitePersonRepo(database),
		events: &assistant.RecordingSink{},
		obs:    &recordingObserver{},
	}
}

// contacts returns a ContactService running at testutil.Now on uow, or on
// the fixture database when uow is nil.
func (f *serviceFixture) contacts(uow db.UnitOfWork) *contactService {
	if uow == nil {
		uow = testutil.NewTestUoW(f.db)
	}
	svc := NewContactService(f.people, uow, f.events, f.obs).(*contactService)
	svc.now = assistant.FixedClock(testutil.Now)
	return svc
}

func (f *serviceFixture) store(t *testing.T, p domain.Person) domain.Person {
	t.Helper()
	require.NoError(t, f.people.Create(context.Background(), &p))
	return p
}

func (f *serviceFixture) reload(t *testing.T, id string) *domain.Person {
	t.Helper()
	p, err := f.people.GetByID(context.Background(), id)
	require.NoError(t, err)
	return p
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, ev UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, ev)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.events) == 0 {
		return UseCaseEvent{}
	}
	return o.events[len(o.events)-1]
}
