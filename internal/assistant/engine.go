package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/rapport/internal/domain"
)

// Engine turns a free-text command about a person into a Response.
type Engine interface {
	Respond(ctx context.Context, command string, p domain.Person) (Response, error)
	Insight(ctx context.Context, p domain.Person) (Response, error)
}

// request is the per-call input handed to a responder.
type request struct {
	command string
	lower   string
	person  domain.Person
	now     time.Time
}

type responder func(e *LocalEngine, req request) Response

var responders = map[IntentName]responder{
	IntentSummarizeMeeting:     (*LocalEngine).summarizeMeeting,
	IntentAssignTask:           (*LocalEngine).assignTask,
	IntentFollowUp:             (*LocalEngine).followUp,
	IntentRelationshipAnalysis: (*LocalEngine).analyzeRelationship,
	IntentFinancial:            (*LocalEngine).trackFinances,
	IntentProgressReport:       (*LocalEngine).reportProgress,
	IntentScheduleMeeting:      (*LocalEngine).scheduleMeeting,
	IntentDraftEmail:           (*LocalEngine).draftEmail,
	IntentUnclear:              (*LocalEngine).guessIntent,
}

// LocalEngine is the in-process rule table. It holds no external
// resources and is safe for concurrent use.
type LocalEngine struct {
	rnd Randomizer
	now func() time.Time
}

type Option func(*LocalEngine)

// WithRandomizer replaces the default wall-clock-seeded randomizer.
func WithRandomizer(r Randomizer) Option {
	return func(e *LocalEngine) { e.rnd = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *LocalEngine) { e.now = now }
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func NewLocalEngine(opts ...Option) *LocalEngine {
	e := &LocalEngine{
		rnd: DefaultRandom(),
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ Engine = (*LocalEngine)(nil)

// Respond classifies command, runs the matching responder and returns the
// normalized payload. It only fails on blank input or a done context.
func (e *LocalEngine) Respond(ctx context.Context, command string, p domain.Person) (Response, error) {
	if strings.TrimSpace(command) == "" {
		return Response{}, ErrEmptyCommand
	}
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	intent := Classify(command)
	req := request{
		command: command,
		lower:   strings.ToLower(command),
		person:  p,
		now:     e.now(),
	}
	r := responders[intent](e, req)
	return assemble(intent, ExtractEntities(command, p), r), nil
}

// Insight returns a general relationship overview that does not depend on
// any command text.
func (e *LocalEngine) Insight(ctx context.Context, p domain.Person) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	r := e.generalInsight(request{person: p, now: e.now()})
	return assemble(IntentGeneralInsight, []Entity{{Name: p.Name, Type: EntityPerson}}, r), nil
}
