package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/rapport/internal/domain"
	"github.com/alexanderramin/rapport/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectionsSetup stores one contact and returns its id.
func collectionsSetup(t *testing.T, opts ...testutil.PersonOption) (string, *SQLitePersonRepo) {
	t.Helper()
	conn := testutil.NewTestDB(t)
	people := NewSQLitePersonRepo(conn)
	p := testutil.NewTestPerson("Ada Lovelace", opts...)
	require.NoError(t, people.Create(context.Background(), &p))
	return p.ID, people
}

func TestTaskRepo_InsertAppends(t *testing.T) {
	pid, people := collectionsSetup(t, testutil.WithTasks(testutil.NewTestTask("t1", "First", domain.TaskPending)))
	repo := NewSQLiteTaskRepo(people.db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, pid, testutil.NewTestTask("t2", "Second", domain.TaskPending)))
	require.NoError(t, repo.Insert(ctx, pid, testutil.NewTestTask("t3", "Third", domain.TaskInProgress)))

	tasks, err := repo.ListByPerson(ctx, pid)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []string{"t1", "t2", "t3"}, []string{tasks[0].ID, tasks[1].ID, tasks[2].ID})
	assert.Equal(t, domain.TaskInProgress, tasks[2].Status)
}

func TestTaskRepo_UpdateStatus(t *testing.T) {
	pid, people := collectionsSetup(t, testutil.WithTasks(testutil.NewTestTask("t1", "First", domain.TaskPending)))
	repo := NewSQLiteTaskRepo(people.db)
	ctx := context.Background()

	require.NoError(t, repo.UpdateStatus(ctx, pid, "t1", domain.TaskCompleted))
	tasks, err := repo.ListByPerson(ctx, pid)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, tasks[0].Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, pid, "t9", domain.TaskCompleted), ErrNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, "someone-else", "t1", domain.TaskCompleted), ErrNotFound)
}

func TestTaskRepo_DuplicateIDRejected(t *testing.T) {
	pid, people := collectionsSetup(t, testutil.WithTasks(testutil.NewTestTask("t1", "First", domain.TaskPending)))
	repo := NewSQLiteTaskRepo(people.db)

	err := repo.Insert(context.Background(), pid, testutil.NewTestTask("t1", "Again", domain.TaskPending))
	assert.Error(t, err)
}

func TestMeetingRepo_InsertPrepends(t *testing.T) {
	pid, people := collectionsSetup(t, testutil.WithMeetings(
		testutil.NewTestMeeting("m2", "Second", domain.SentimentNeutral),
		testutil.NewTestMeeting("m1", "First", domain.SentimentNeutral),
	))
	repo := NewSQLiteMeetingRepo(people.db)
	ctx := context.Background()

	m := testutil.NewTestMeeting("m3", "Third", domain.SentimentPositive)
	m.Date = testutil.Now
	require.NoError(t, repo.Insert(ctx, pid, m))

	meetings, err := repo.ListByPerson(ctx, pid)
	require.NoError(t, err)
	require.Len(t, meetings, 3)
	assert.Equal(t, "Third", meetings[0].Title)
	assert.Equal(t, "Second", meetings[1].Title)
	assert.Equal(t, domain.SentimentPositive, meetings[0].Sentiment)
}

func TestMeetingRepo_BlankSentimentStoredNeutral(t *testing.T) {
	pid, people := collectionsSetup(t)
	repo := NewSQLiteMeetingRepo(people.db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, pid, domain.Meeting{ID: "m1", Date: testutil.Now, Title: "Chat"}))
	meetings, err := repo.ListByPerson(ctx, pid)
	require.NoError(t, err)
	assert.Equal(t, domain.SentimentNeutral, meetings[0].Sentiment)
}

func TestFinanceRepo_InsertPrepends(t *testing.T) {
	pid, people := collectionsSetup(t, testutil.WithFinances(testutil.NewTestFinance("f1", 10, domain.FinancePaid)))
	repo := NewSQLiteFinanceRepo(people.db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, pid, domain.Finance{
		ID: "f2", Amount: 99.95, Date: testutil.Now, Description: "Invoice", Type: domain.FinanceReceived,
	}))

	records, err := repo.ListByPerson(ctx, pid)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "f2", records[0].ID)
	assert.Equal(t, "USD", records[0].Currency)
	assert.InDelta(t, 99.95, records[0].Amount, 0.0001)
}

func TestTimelineRepo_InsertAndUpdateDescription(t *testing.T) {
	pid, people := collectionsSetup(t)
	repo := NewSQLiteTimelineRepo(people.db)
	ctx := context.Background()

	for _, id := range []string{"tl-a", "tl-b"} {
		require.NoError(t, repo.Insert(ctx, pid, domain.TimelineEntry{
			ID: id, Date: testutil.Now, Type: domain.TimelineTask, Title: "Task assigned", Description: id,
		}))
	}
	require.NoError(t, repo.UpdateDescription(ctx, pid, "tl-a", "Task completed: a"))

	entries, err := repo.ListByPerson(ctx, pid)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "tl-b", entries[0].ID)
	assert.Equal(t, "Task completed: a", entries[1].Description)

	assert.ErrorIs(t, repo.UpdateDescription(ctx, pid, "missing", "x"), ErrNotFound)
}
