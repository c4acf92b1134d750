package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/rapport/internal/assistant"
	"github.com/alexanderramin/rapport/internal/domain"
	"github.com/alexanderramin/rapport/internal/repository"
	"github.com/alexanderramin/rapport/internal/seed"
	"github.com/alexanderramin/rapport/internal/service"
	"github.com/alexanderramin/rapport/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app    *App
	people *repository.SQLitePersonRepo
}

// newTestApp wires an App against a fresh in-memory store with a
// deterministic assistant.
func newTestApp(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	people := repository.NewSQLitePersonRepo(database)
	uow := testutil.NewTestUoW(database)
	engine := assistant.NewLocalEngine(
		assistant.WithRandomizer(assistant.FixedRandom(0)),
		assistant.WithClock(assistant.FixedClock(testutil.Now)),
	)

	app := &App{
		Contacts:  service.NewContactService(people, uow, nil),
		Assistant: service.NewAssistantService(people, engine),
		Populate: func(ctx context.Context, ps []domain.Person) error {
			return seed.Populate(ctx, uow, ps)
		},
		Random: assistant.NewRandom(42),
		Now:    func() time.Time { return testutil.Now },
		Plain:  true,
	}
	return &testEnv{app: app, people: people}
}

func (e *testEnv) store(t *testing.T, p domain.Person) domain.Person {
	t.Helper()
	require.NoError(t, e.people.Create(context.Background(), &p))
	return p
}

func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestContactAddListShow(t *testing.T) {
	env := newTestApp(t)

	out, err := executeCmd(t, env.app, "contact", "add",
		"--name", "Ada Lovelace", "--role", "Engineer", "--company", "Analytical",
		"--status", "active", "--score", "88")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Ada Lovelace")

	out, err = executeCmd(t, env.app, "contact", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Engineer at Analytical")

	out, err = executeCmd(t, env.app, "contact", "show", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "Score      88/100")
	assert.Contains(t, out, "No tasks")
}

func TestContactAdd_DefaultsAndValidation(t *testing.T) {
	env := newTestApp(t)

	_, err := executeCmd(t, env.app, "contact", "add", "--name", "Grace Hopper")
	require.NoError(t, err)
	people, err := env.app.Contacts.List(context.Background())
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, service.DefaultReputation, people[0].ReputationScore)
	assert.Equal(t, domain.RelationshipNew, people[0].RelationshipStatus)

	_, err = executeCmd(t, env.app, "contact", "add", "--name", "X", "--status", "bestie")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "relationshipStatus", ve.Field)

	_, err = executeCmd(t, env.app, "contact", "add", "--interactive")
	assert.ErrorContains(t, err, "needs a terminal")
}

func TestContactEmptyList(t *testing.T) {
	env := newTestApp(t)
	out, err := executeCmd(t, env.app, "contact", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No contacts yet")
}

func TestContactSearchAndRemove(t *testing.T) {
	env := newTestApp(t)
	env.store(t, testutil.NewTestPerson("Ada Lovelace"))
	env.store(t, testutil.NewTestPerson("Grace Hopper"))

	out, err := executeCmd(t, env.app, "contact", "search", "grace")
	require.NoError(t, err)
	assert.Contains(t, out, "Grace Hopper")
	assert.NotContains(t, out, "Ada Lovelace")

	out, err = executeCmd(t, env.app, "contact", "search", "linus")
	require.NoError(t, err)
	assert.Contains(t, out, `No contacts match "linus"`)

	out, err = executeCmd(t, env.app, "contact", "rm", "Grace Hopper")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed Grace Hopper")

	people, err := env.app.Contacts.List(context.Background())
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "Ada Lovelace", people[0].Name)
}

func TestAskAndInsight(t *testing.T) {
	env := newTestApp(t)
	env.store(t, testutil.NewTestPerson("Ada Lovelace",
		testutil.WithTasks(testutil.NewTestTask("t1", "Send deck", domain.TaskPending))))

	out, err := executeCmd(t, env.app, "ask", "ada", "what's", "the", "progress?")
	require.NoError(t, err)
	assert.Contains(t, out, string(assistant.IntentProgressReport))

	out, err = executeCmd(t, env.app, "insight", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, string(assistant.IntentGeneralInsight))

	_, err = executeCmd(t, env.app, "ask", "nobody", "status")
	assert.ErrorContains(t, err, "contact not found")

	_, err = executeCmd(t, env.app, "ask", "ada")
	assert.Error(t, err, "a command is required")
}

func TestTaskAddAndDone(t *testing.T) {
	env := newTestApp(t)
	ada := env.store(t, testutil.NewTestPerson("Ada Lovelace",
		testutil.WithTasks(testutil.NewTestTask("t1", "Send deck", domain.TaskPending))))

	out, err := executeCmd(t, env.app, "task", "add", "ada",
		"--title", "Review contract", "--priority", "HIGH", "--due", "2025-07-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Assigned Review contract to Ada Lovelace")
	assert.Contains(t, out, "high priority")

	got, err := env.app.Contacts.Get(context.Background(), ada.ID)
	require.NoError(t, err)
	require.Len(t, got.Tasks, 2)
	assert.Equal(t, "t2", got.Tasks[1].ID)
	assert.Equal(t, domain.PriorityHigh, got.Tasks[1].Priority)
	assert.Equal(t, "2025-07-01", got.Tasks[1].DueDate.Format(domain.DateLayout))

	out, err = executeCmd(t, env.app, "task", "done", "ada", "t1")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed Send deck")

	_, err = executeCmd(t, env.app, "task", "done", "ada", "t9")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskAdd_Validation(t *testing.T) {
	env := newTestApp(t)
	env.store(t, testutil.NewTestPerson("Ada Lovelace"))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown priority", []string{"--title", "x", "--priority", "urgent"}, "invalid priority"},
		{"bad due date", []string{"--title", "x", "--due", "next week"}, "YYYY-MM-DD"},
		{"blank title", []string{"--title", "   "}, "task title is required"},
		{"missing title", nil, `"title" not set`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"task", "add", "ada"}, tt.args...)
			_, err := executeCmd(t, env.app, args...)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestPriorityFlag(t *testing.T) {
	f := priorityFlag{value: domain.PriorityMedium}
	assert.Equal(t, "medium", f.String())
	require.NoError(t, f.Set("Low"))
	assert.Equal(t, domain.PriorityLow, f.value)
	assert.Error(t, f.Set("urgent"))
	assert.Equal(t, domain.PriorityLow, f.value, "a rejected value leaves the flag unchanged")
}

func TestMeetingLog(t *testing.T) {
	env := newTestApp(t)
	ada := env.store(t, testutil.NewTestPerson("Ada Lovelace"))

	out, err := executeCmd(t, env.app, "meeting", "log", "ada",
		"--title", "Kickoff", "--summary", "Agreed on scope.", "--sentiment", "Positive", "--date", "2025-06-10")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged Kickoff with Ada Lovelace on Jun 10, 2025 (positive)")

	got, err := env.app.Contacts.Get(context.Background(), ada.ID)
	require.NoError(t, err)
	require.Len(t, got.Meetings, 1)
	assert.Equal(t, "Agreed on scope.", got.Meetings[0].Summary)

	_, err = executeCmd(t, env.app, "meeting", "log", "ada", "--title", "x", "--sentiment", "elated")
	assert.ErrorContains(t, err, "invalid sentiment")

	_, err = executeCmd(t, env.app, "meeting", "log", "ada", "--title", "x", "--date", "yesterday")
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "date", ve.Field)
}

func TestFinanceAdd(t *testing.T) {
	env := newTestApp(t)
	ada := env.store(t, testutil.NewTestPerson("Ada Lovelace"))

	out, err := executeCmd(t, env.app, "finance", "add", "ada",
		"--amount", "1250.5", "--type", "Owed", "--description", "Consulting")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded owed $1,250.5 for Ada Lovelace")

	got, err := env.app.Contacts.Get(context.Background(), ada.ID)
	require.NoError(t, err)
	require.Len(t, got.Finances, 1)
	assert.Equal(t, "USD", got.Finances[0].Currency)

	_, err = executeCmd(t, env.app, "finance", "add", "ada", "--amount", "-3", "--type", "paid")
	assert.ErrorContains(t, err, "amount must be positive")

	_, err = executeCmd(t, env.app, "finance", "add", "ada", "--amount", "3", "--type", "gift")
	assert.ErrorContains(t, err, "invalid finance type")
}

func TestSeedStoresPeople(t *testing.T) {
	env := newTestApp(t)

	out, err := executeCmd(t, env.app, "seed", "--count", "3", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 3 contacts")

	people, err := env.app.Contacts.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, people, 3)

	_, err = executeCmd(t, env.app, "seed", "--count", "0")
	assert.ErrorContains(t, err, "--count must be positive")
}

func TestSeedExportThenImport(t *testing.T) {
	env := newTestApp(t)
	path := filepath.Join(t.TempDir(), "people.json")

	out, err := executeCmd(t, env.app, "seed", "-n", "4", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 4 contacts to "+path)

	people, err := env.app.Contacts.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, people, "--out must not store anything")

	out, err = executeCmd(t, env.app, "import", "--dry-run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid: 4 contacts")

	out, err = executeCmd(t, env.app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 4 contacts")

	people, err = env.app.Contacts.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, people, 4)

	_, err = executeCmd(t, env.app, "import", path)
	assert.ErrorContains(t, err, "importing", "re-importing the same ids fails")
}

func TestImportReportsEveryProblem(t *testing.T) {
	env := newTestApp(t)
	path := filepath.Join(t.TempDir(), "bad.json")
	writeFile(t, path, `[
		{"id": "1", "name": "Ada"},
		{"id": "1", "name": ""}
	]`)

	_, err := executeCmd(t, env.app, "import", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "problem(s)")
	assert.Contains(t, err.Error(), `duplicate id "1"`)

	_, err = executeCmd(t, env.app, "import", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestServeUsesAddrFlag(t *testing.T) {
	env := newTestApp(t)
	var gotAddr string
	env.app.Serve = func(_ context.Context, addr string) error {
		gotAddr = addr
		return nil
	}

	_, err := executeCmd(t, env.app, "serve", "--addr", "127.0.0.1:9999")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", gotAddr)

	env.app.Serve = nil
	_, err = executeCmd(t, env.app, "serve")
	assert.ErrorContains(t, err, "server not configured")
}

func TestSetupRunsWithConfigFlag(t *testing.T) {
	env := newTestApp(t)
	var gotPath string
	env.app.Setup = func(path string) error {
		gotPath = path
		return nil
	}

	_, err := executeCmd(t, env.app, "--config", "/tmp/rapport.yaml", "contact", "list")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/rapport.yaml", gotPath)
}

func TestChatNeedsTerminal(t *testing.T) {
	env := newTestApp(t)
	env.store(t, testutil.NewTestPerson("Ada Lovelace"))
	_, err := executeCmd(t, env.app, "chat", "ada")
	assert.ErrorContains(t, err, "needs a terminal")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestContactFormDefaultsToNew(t *testing.T) {
	var in service.NewContact
	require.NotNil(t, contactForm(&in))
	assert.Equal(t, string(domain.RelationshipNew), in.Status)
}
