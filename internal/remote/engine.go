package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/rapport/internal/assistant"
	"github.com/alexanderramin/rapport/internal/config"
	"github.com/alexanderramin/rapport/internal/contract"
	"github.com/alexanderramin/rapport/internal/domain"
	"github.com/sony/gobreaker"
)

// Engine answers commands by calling another rapport server. Any remote
// failure is answered by the fallback engine when one is configured; a
// cancelled caller context is never masked.
type Engine struct {
	cfg      config.Remote
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker
	fallback assistant.Engine
	observer Observer
}

var _ assistant.Engine = (*Engine)(nil)

// New creates a remote Engine. fallback may be nil, in which case remote
// errors are returned to the caller.
func New(cfg config.Remote, fallback assistant.Engine, observer Observer) *Engine {
	if observer == nil {
		observer = NoopObserver{}
	}
	e := &Engine{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		fallback: fallback,
		observer: observer,
	}
	e.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "remote-engine",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout(),
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerMaxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrRejected) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			observer.OnBreakerStateChange(from.String(), to.String())
		},
	})
	return e
}

// State reports the breaker state: "closed", "open" or "half-open".
func (e *Engine) State() string {
	return e.breaker.State().String()
}

func (e *Engine) Respond(ctx context.Context, command string, p domain.Person) (assistant.Response, error) {
	if strings.TrimSpace(command) == "" {
		return assistant.Response{}, assistant.ErrEmptyCommand
	}
	body := contract.ProcessCommandRequest{Command: command, PersonID: p.ID, Person: &p}
	return e.call(ctx, "respond", "/api/process-command", body, func() (assistant.Response, error) {
		return e.fallback.Respond(ctx, command, p)
	})
}

func (e *Engine) Insight(ctx context.Context, p domain.Person) (assistant.Response, error) {
	body := contract.InsightRequest{PersonID: p.ID, Person: &p}
	return e.call(ctx, "insight", "/api/insight", body, func() (assistant.Response, error) {
		return e.fallback.Insight(ctx, p)
	})
}

func (e *Engine) call(ctx context.Context, op, path string, body any, fallback func() (assistant.Response, error)) (assistant.Response, error) {
	start := time.Now()
	resp, attempts, err := e.execute(ctx, path, body)

	event := CallEvent{
		Op:        op,
		LatencyMs: time.Since(start).Milliseconds(),
		Attempts:  attempts,
		Success:   err == nil,
		ErrorCode: errorCode(err),
	}
	if err == nil {
		e.observer.OnCallComplete(event)
		return resp, nil
	}
	// A rejection is the server's answer, not an outage
	if ctx.Err() != nil || e.fallback == nil || errors.Is(err, ErrRejected) {
		e.observer.OnCallComplete(event)
		if ctx.Err() != nil {
			return assistant.Response{}, ctx.Err()
		}
		return assistant.Response{}, err
	}
	event.FellBack = true
	e.observer.OnCallComplete(event)
	return fallback()
}

// execute runs the retry loop through the breaker. The breaker sees one
// outcome per call, not per attempt.
func (e *Engine) execute(ctx context.Context, path string, body any) (assistant.Response, int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return assistant.Response{}, 0, fmt.Errorf("marshaling request: %w", err)
	}

	attempts := 0
	out, err := e.breaker.Execute(func() (interface{}, error) {
		var lastErr error
		for i := 0; i <= e.cfg.MaxRetries; i++ {
			attempts++
			resp, err := e.doRequest(ctx, path, data)
			if err == nil {
				return resp, nil
			}
			lastErr = err

			// Don't retry on caller cancellation or a non-transient failure
			if ctx.Err() != nil || !retryable(err) {
				return nil, lastErr
			}
		}
		if attempts > 1 {
			return nil, fmt.Errorf("%w: %w", ErrRetryExhausted, lastErr)
		}
		return nil, lastErr
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return assistant.Response{}, attempts, ErrCircuitOpen
		}
		return assistant.Response{}, attempts, err
	}
	return out.(assistant.Response), attempts, nil
}

func (e *Engine) doRequest(ctx context.Context, path string, data []byte) (assistant.Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout())
	defer cancel()

	url := strings.TrimRight(e.cfg.BaseURL, "/") + path
	httpReq, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return assistant.Response{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := e.http.Do(httpReq)
	if err != nil {
		return assistant.Response{}, classify(ctx, attemptCtx, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
	if err != nil {
		return assistant.Response{}, classify(ctx, attemptCtx, err)
	}

	switch {
	case httpResp.StatusCode >= 500, httpResp.StatusCode == http.StatusTooManyRequests:
		return assistant.Response{}, fmt.Errorf("%w: status %d", ErrRemoteUnavailable, httpResp.StatusCode)
	case httpResp.StatusCode != http.StatusOK:
		var apiErr contract.ErrorResponse
		_ = json.Unmarshal(respBody, &apiErr)
		return assistant.Response{}, fmt.Errorf("%w: status %d: %s", ErrRejected, httpResp.StatusCode, apiErr.Error)
	}

	var resp assistant.Response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return assistant.Response{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if err := resp.Validate(); err != nil {
		return assistant.Response{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return resp, nil
}

// classify maps a transport error to a sentinel. A deadline on the attempt
// context is a timeout; cancellation of the caller context passes through.
func classify(ctx, attemptCtx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
}
