package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/alexanderramin/rapport/internal/assistant"
	"github.com/alexanderramin/rapport/internal/domain"
	"github.com/alexanderramin/rapport/internal/repository"
	"github.com/alexanderramin/rapport/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssistantService(f *serviceFixture, engine assistant.Engine) AssistantService {
	if engine == nil {
		engine = assistant.NewLocalEngine(
			assistant.WithRandomizer(assistant.FixedRandom(0)),
			assistant.WithClock(assistant.FixedClock(testutil.Now)),
		)
	}
	return NewAssistantService(f.people, engine, f.obs)
}

func TestProcess_ClassifiesAgainstStoredContact(t *testing.T) {
	f := newFixture(t)
	p := f.store(t, testutil.NewTestPerson("Ada Lovelace",
		testutil.WithTasks(testutil.NewTestTask("t1", "Send deck", domain.TaskCompleted)),
	))
	svc := newAssistantService(f, nil)

	resp, err := svc.Process(context.Background(), p.ID, "How is the progress going?")
	require.NoError(t, err)
	assert.Equal(t, assistant.IntentProgressReport, resp.Intent)
	assert.Contains(t, resp.Message, "Ada")

	ev := f.obs.last()
	assert.Equal(t, "process-command", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, "progress_report", ev.Fields["intent"])
}

func TestProcess_Errors(t *testing.T) {
	f := newFixture(t)
	p := f.store(t, testutil.NewTestPerson("Ada"))
	svc := newAssistantService(f, nil)
	ctx := context.Background()

	_, err := svc.Process(ctx, p.ID, "  ")
	assert.ErrorIs(t, err, assistant.ErrEmptyCommand)

	_, err = svc.Process(ctx, "missing", "schedule a meeting")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.False(t, f.obs.last().Success)
}

type failingEngine struct{ err error }

func (e failingEngine) Respond(context.Context, string, domain.Person) (assistant.Response, error) {
	return assistant.Response{}, e.err
}

func (e failingEngine) Insight(context.Context, domain.Person) (assistant.Response, error) {
	return assistant.Response{}, e.err
}

func TestProcess_EngineErrorIsWrapped(t *testing.T) {
	f := newFixture(t)
	p := f.store(t, testutil.NewTestPerson("Ada"))
	boom := errors.New("engine down")

	_, err := newAssistantService(f, failingEngine{err: boom}).Process(context.Background(), p.ID, "hello")
	assert.ErrorIs(t, err, boom)
}

func TestInsight(t *testing.T) {
	f := newFixture(t)
	p := f.store(t, testutil.NewTestPerson("Ada Lovelace"))

	resp, err := newAssistantService(f, nil).Insight(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, assistant.IntentGeneralInsight, resp.Intent)
	assert.Equal(t, "insight", f.obs.last().Name)

	_, err = newAssistantService(f, nil).Insight(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf)
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "add-task", Success: true, Fields: map[string]any{"task_id": "t3"}})
	obs.ObserveUseCase(context.Background(), UseCaseEvent{Name: "add-task", Err: errors.New("boom")})

	out := buf.String()
	assert.Contains(t, out, "use_case=add-task")
	assert.Contains(t, out, "task_id=t3")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "error=boom")

	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
	assert.IsType(t, NoopUseCaseObserver{}, useCaseObserverOrNoop(nil))
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := LogSink{Logger: slog.New(slog.NewTextHandler(&buf, nil))}
	sink.Publish(context.Background(), assistant.Event{Kind: assistant.EventTaskAdded, TaskID: "t3"})
	assert.Contains(t, buf.String(), "kind=task_added")
	assert.Contains(t, buf.String(), "task_id=t3")

	LogSink{}.Publish(context.Background(), assistant.Event{})
}
