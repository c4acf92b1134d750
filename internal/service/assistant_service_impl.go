package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/rapport/internal/assistant"
	"github.com/alexanderramin/rapport/internal/repository"
)

type assistantService struct {
	people   repository.PersonRepo
	engine   assistant.Engine
	observer UseCaseObserver
}

// NewAssistantService answers commands about stored contacts with engine.
func NewAssistantService(people repository.PersonRepo, engine assistant.Engine, observers ...UseCaseObserver) AssistantService {
	return &assistantService{
		people:   people,
		engine:   engine,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *assistantService) Process(ctx context.Context, personID, command string) (resp assistant.Response, err error) {
	startedAt := time.Now()
	fields := map[string]any{"person_id": personID}
	defer func() {
		if err == nil {
			fields["intent"] = string(resp.Intent)
			fields["confidence"] = resp.Confidence
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "process-command",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if strings.TrimSpace(command) == "" {
		return assistant.Response{}, assistant.ErrEmptyCommand
	}
	p, err := s.people.GetByID(ctx, personID)
	if err != nil {
		return assistant.Response{}, fmt.Errorf("loading contact: %w", err)
	}
	resp, err = s.engine.Respond(ctx, command, *p)
	if err != nil {
		return assistant.Response{}, fmt.Errorf("processing command: %w", err)
	}
	return resp, nil
}

func (s *assistantService) Insight(ctx context.Context, personID string) (resp assistant.Response, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "insight",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"person_id": personID},
		})
	}()

	p, err := s.people.GetByID(ctx, personID)
	if err != nil {
		return assistant.Response{}, fmt.Errorf("loading contact: %w", err)
	}
	return s.engine.Insight(ctx, *p)
}
