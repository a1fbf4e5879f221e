package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestNew_RejectsMalformedBaseURL(t *testing.T) {
	if _, err := New("not a url", time.Second); !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("err = %v, want ErrInvalidURL", err)
	}
	if _, err := New("", time.Second); !errors.Is(err, ErrInvalidURL) {
		t.Fatalf("err = %v, want ErrInvalidURL for empty base", err)
	}
}

func TestSend_AttachesBearerAndQuery(t *testing.T) {
	var gotAuth, gotQuery, gotContentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"ok":true}`))
	})

	query := url.Values{}
	query.Set("min_price", "100")
	var out struct {
		OK bool `json:"ok"`
	}
	err := c.Send(context.Background(), http.MethodPost, "/drones/", "tok123", query, map[string]string{"a": "b"}, &out)
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
	if gotQuery != "min_price=100" {
		t.Fatalf("query = %q", gotQuery)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q", gotContentType)
	}
	if !out.OK {
		t.Fatalf("response not decoded")
	}
}

func TestSend_NonSuccessBecomesHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Drone not found"}`))
	})

	var out map[string]string
	err := c.Send(context.Background(), http.MethodGet, "/drones/99", "", nil, nil, &out)
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %v, want HTTPError", err)
	}
	if httpErr.Status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", httpErr.Status)
	}
	if len(httpErr.Body) == 0 {
		t.Fatalf("raw body not captured")
	}
}

func TestSend_EmptyResponseSentinelSkipsDecode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	if err := c.Send(context.Background(), http.MethodPatch, "/drones/1/availability/", "tok", nil, nil, nil); err != nil {
		t.Fatalf("empty-response send: %v", err)
	}
}

func TestSend_UndecodableBodyBecomesDecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	var out map[string]string
	err := c.Send(context.Background(), http.MethodGet, "/owners/", "tok", nil, nil, &out)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("err = %v, want DecodeError", err)
	}
}

func TestSend_NetworkFailureBecomesTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c, err := New(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	srv.Close()

	var out map[string]string
	err = c.Send(context.Background(), http.MethodGet, "/drones/", "", nil, nil, &out)
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("err = %v, want TransportError", err)
	}
}

func TestMessage_MapsErrorKinds(t *testing.T) {
	if got := Message(&HTTPError{Status: 403}); got != "server returned status code 403" {
		t.Fatalf("http message = %q", got)
	}
	if got := Message(ErrMissingToken); got != "Authentication required" {
		t.Fatalf("missing token message = %q", got)
	}
}
