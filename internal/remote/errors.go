package remote

import "errors"

var (
	// ErrRemoteUnavailable indicates the remote server is unreachable or
	// answered with a 5xx or 429 status.
	ErrRemoteUnavailable = errors.New("remote engine unavailable")

	// ErrTimeout indicates an attempt exceeded the configured timeout.
	ErrTimeout = errors.New("remote engine request timed out")

	// ErrInvalidResponse indicates the body could not be decoded into a
	// valid assistant response.
	ErrInvalidResponse = errors.New("invalid remote engine response")

	// ErrRejected indicates the remote server refused the request with a
	// 4xx status other than 429. Rejections are not retried, do not trip the
	// breaker, and are returned to the caller without a local fallback.
	ErrRejected = errors.New("remote engine rejected request")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("remote engine retry attempts exhausted")

	// ErrCircuitOpen is returned while the circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("remote engine circuit breaker is open")
)

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCircuitOpen):
		return "CIRCUIT_OPEN"
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrRemoteUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidResponse):
		return "INVALID_RESPONSE"
	case errors.Is(err, ErrRejected):
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// retryable reports whether another attempt could succeed.
func retryable(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable) || errors.Is(err, ErrTimeout)
}
