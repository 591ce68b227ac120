package llmwire

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"
)

// Header is a single wire header, kept as a struct rather than a map so
// request descriptions preserve the order they were assembled in.
type Header struct {
	Name  string
	Value string
}

// RequestDescription is everything a Transport needs to perform one HTTP
// call. It carries no behavior of its own; BuildHTTPRequest produces one,
// Transport.Do consumes one.
type RequestDescription struct {
	Method  string
	URL     string
	Headers []Header
	Body    []byte
	Timeout Timeout
}

// ResponseDescription is the raw shape a Transport hands back; decoding it
// into a Response happens separately (see decode.go).
type ResponseDescription struct {
	Status  int
	Headers []Header
	Body    []byte
}

// Transport performs one HTTP round trip. The core depends only on this
// narrow interface so tests can substitute a fake and callers can swap in a
// non-net/http stack without touching the request-assembly or
// response-decoding logic.
type Transport interface {
	Do(ctx context.Context, req *RequestDescription) (*ResponseDescription, error)
}

// HTTPTransport is the default net/http-backed Transport.
type HTTPTransport struct {
	Client *http.Client
}

// NewHTTPTransport returns an HTTPTransport with its own zero-value
// http.Client. Per-request timeouts are applied through the request context
// in Do, never by mutating the shared client.
func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{Client: &http.Client{}}
}

func (t *HTTPTransport) Do(ctx context.Context, req *RequestDescription) (*ResponseDescription, error) {
	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	if !req.Timeout.None && req.Timeout.Milliseconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.Timeout.Milliseconds)*time.Millisecond)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, err
	}
	for _, h := range req.Headers {
		httpReq.Header.Set(h.Name, h.Value)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	headers := make([]Header, 0, len(resp.Header))
	for name, values := range resp.Header {
		for _, v := range values {
			headers = append(headers, Header{Name: name, Value: v})
		}
	}

	return &ResponseDescription{Status: resp.StatusCode, Headers: headers, Body: body}, nil
}
