// Package api exposes the contact store and the assistant over HTTP.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/rapport/internal/assistant"
	"github.com/alexanderramin/rapport/internal/config"
	"github.com/alexanderramin/rapport/internal/contract"
	"github.com/alexanderramin/rapport/internal/domain"
	"github.com/alexanderramin/rapport/internal/service"
)

const shutdownTimeout = 5 * time.Second

// Server binds the services to HTTP routes.
type Server struct {
	contacts  service.ContactService
	assistant service.AssistantService
	engine    assistant.Engine
	hub       *Hub
	limiter   *RateLimiter
	logger    *slog.Logger
	timeout   time.Duration
}

// NewServer creates a server. engine answers requests that carry an inline
// person; hub may be nil, in which case /api/events is not routed.
func NewServer(
	cfg config.Server,
	contacts service.ContactService,
	asst service.AssistantService,
	engine assistant.Engine,
	hub *Hub,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		contacts:  contacts,
		assistant: asst,
		engine:    engine,
		hub:       hub,
		limiter:   NewRateLimiter(cfg.RateLimit, cfg.Burst),
		logger:    logger,
		timeout:   time.Duration(cfg.WriteTimeoutSec) * time.Second,
	}
}

// Handler returns the fully wrapped route table.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("GET /api/health", s.handleHealth)
	api.HandleFunc("POST /api/process-command", s.handleProcessCommand)
	api.HandleFunc("POST /api/insight", s.handleInsightBody)
	api.HandleFunc("GET /api/people", s.handleListPeople)
	api.HandleFunc("POST /api/people", s.handleCreatePerson)
	api.HandleFunc("GET /api/people/search", s.handleSearchPeople)
	api.HandleFunc("GET /api/people/{id}", s.handleGetPerson)
	api.HandleFunc("DELETE /api/people/{id}", s.handleDeletePerson)
	api.HandleFunc("GET /api/people/{id}/insight", s.handlePersonInsight)
	api.HandleFunc("POST /api/people/{id}/tasks", s.handleAddTask)
	api.HandleFunc("POST /api/people/{id}/tasks/{taskId}/complete", s.handleCompleteTask)
	api.HandleFunc("POST /api/people/{id}/meetings", s.handleLogMeeting)
	api.HandleFunc("POST /api/people/{id}/finances", s.handleRecordFinance)

	mux := http.NewServeMux()
	// Websocket connections are long-lived and need Hijack, so they skip
	// the timeout wrapper.
	if s.hub != nil {
		mux.Handle("GET /api/events", s.hub)
	}
	var routes http.Handler = api
	if s.timeout > 0 {
		routes = withTimeout(api, s.timeout)
	}
	mux.Handle("/", routes)

	handler := rateLimit(s.limiter, mux)
	handler = requestLogger(s.logger, handler)
	return securityHeaders(handler)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("http server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, contract.HealthResponse{Status: "healthy"})
}

func (s *Server) handleProcessCommand(w http.ResponseWriter, r *http.Request) {
	var req contract.ProcessCommandRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	var (
		resp assistant.Response
		err  error
	)
	if req.Person != nil {
		resp, err = s.engine.Respond(r.Context(), req.Command, *req.Person)
	} else {
		resp, err = s.assistant.Process(r.Context(), req.PersonID, req.Command)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInsightBody(w http.ResponseWriter, r *http.Request) {
	var req contract.InsightRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	var (
		resp assistant.Response
		err  error
	)
	if req.Person != nil {
		resp, err = s.engine.Insight(r.Context(), *req.Person)
	} else {
		resp, err = s.assistant.Insight(r.Context(), req.PersonID)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePersonInsight(w http.ResponseWriter, r *http.Request) {
	resp, err := s.assistant.Insight(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := s.contacts.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(people))
}

func (s *Server) handleSearchPeople(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		s.writeError(w, r, &domain.ValidationError{Field: "query", Message: "query is required"})
		return
	}
	people, err := s.contacts.Search(r.Context(), query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(people))
}

func (s *Server) handleCreatePerson(w http.ResponseWriter, r *http.Request) {
	var req contract.CreatePersonRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.contacts.Create(r.Context(), service.NewContact{
		Name:            req.Name,
		Role:            req.Role,
		Company:         req.Company,
		Email:           req.Email,
		Phone:           req.Phone,
		ProfileImage:    req.ProfileImage,
		Status:          req.RelationshipStatus,
		ReputationScore: req.ReputationScore,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetPerson(w http.ResponseWriter, r *http.Request) {
	p, err := s.contacts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePerson(w http.ResponseWriter, r *http.Request) {
	if err := s.contacts.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req contract.AddTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	nt, err := req.ToNewTask()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	task, err := s.contacts.AddTask(r.Context(), r.PathValue("id"), nt)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.contacts.CompleteTask(r.Context(), r.PathValue("id"), r.PathValue("taskId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleLogMeeting(w http.ResponseWriter, r *http.Request) {
	var req contract.LogMeetingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	date, err := contract.OptionalDate("date", req.Date)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.contacts.LogMeeting(r.Context(), r.PathValue("id"), service.NewMeeting{
		Title:     req.Title,
		Summary:   req.Summary,
		Sentiment: domain.Sentiment(strings.ToLower(strings.TrimSpace(req.Sentiment))),
		Date:      date,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleRecordFinance(w http.ResponseWriter, r *http.Request) {
	var req contract.RecordFinanceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	date, err := contract.OptionalDate("date", req.Date)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	f, err := s.contacts.RecordFinance(r.Context(), r.PathValue("id"), service.NewFinance{
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: req.Description,
		Type:        domain.FinanceType(strings.ToLower(strings.TrimSpace(req.Type))),
		Date:        date,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
