package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/rapport/internal/assistant"
	"github.com/alexanderramin/rapport/internal/contract"
	"github.com/alexanderramin/rapport/internal/domain"
	"github.com/alexanderramin/rapport/internal/repository"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Debug("failed to encode JSON response", "error", err)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return &domain.ValidationError{Message: "invalid JSON body: " + err.Error()}
	}
	return nil
}

// writeError maps err to a status code and JSON body. Unexpected errors
// are logged and reported without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, contract.ErrorResponse{Error: ve.Message, Code: contract.CodeValidation, Field: ve.Field})
	case errors.Is(err, assistant.ErrEmptyCommand):
		writeJSON(w, http.StatusBadRequest, contract.ErrorResponse{Error: "command is required", Code: contract.CodeValidation, Field: "command"})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, contract.ErrorResponse{Error: err.Error(), Code: contract.CodeNotFound})
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the body
		w.WriteHeader(499)
	default:
		s.logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, contract.ErrorResponse{Error: "internal server error", Code: contract.CodeInternal})
	}
}
