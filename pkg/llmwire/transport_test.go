package llmwire

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPTransport_Do(t *testing.T) {
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"hello":"world"}` {
			t.Errorf("unexpected body: %s", body)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	transport := NewHTTPTransport()
	resp, err := transport.Do(context.Background(), &RequestDescription{
		Method:  "POST",
		URL:     srv.URL,
		Headers: []Header{{Name: "Authorization", Value: "Bearer test-key"}},
		Body:    []byte(`{"hello":"world"}`),
		Timeout: NoTimeout(),
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotHeader != "Bearer test-key" {
		t.Errorf("Authorization header = %q", gotHeader)
	}
	if resp.Status != http.StatusOK {
		t.Errorf("status = %d", resp.Status)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Errorf("body = %s", resp.Body)
	}
}

func TestHTTPTransport_NonOKStatusStillReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("down"))
	}))
	defer srv.Close()

	transport := NewHTTPTransport()
	resp, err := transport.Do(context.Background(), &RequestDescription{
		Method: "POST",
		URL:    srv.URL,
		Body:   []byte(`{}`),
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if resp.Status != 500 || string(resp.Body) != "down" {
		t.Errorf("resp = %+v", resp)
	}
}
