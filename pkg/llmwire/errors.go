package llmwire

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned by New when a provider that requires
// authentication is constructed without one.
var ErrMissingAPIKey = errors.New("llmwire: API key required for this provider")

// ErrNoChoices is returned by DecodeTopMessageChoice when a response body
// decodes cleanly but carries zero choices.
var ErrNoChoices = errors.New("llmwire: response has no choices")

// ErrDecoding names the generic decode-failure kind. DecodeResponse and
// DecodeTopMessageChoice do not return it: a body that matches no known
// provider shape and no provider error body is reported as *BadJSONError.
var ErrDecoding = errors.New("llmwire: could not decode response body")

// HTTPError reports a non-2xx HTTP status. Body is the raw response body,
// preserved for the caller to inspect or log.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("llmwire: HTTP %d: %s", e.Status, e.Body)
}

// APIError reports a provider-shaped {"error":{"code","message"}} body.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("llmwire: API error %s: %s", e.Code, e.Message)
}

// BadJSONError wraps a response body that could not be parsed as any known
// shape. Raw is the body decoded as UTF-8 text.
type BadJSONError struct {
	Raw string
}

func (e *BadJSONError) Error() string {
	return fmt.Sprintf("llmwire: unrecognized response body: %s", e.Raw)
}
