package client

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/mcoot/whoosh/internal/testutil"
	"github.com/mcoot/whoosh/internal/tokenstore/memory"
)

// recordedRequest is a request seen by the fake API
type recordedRequest struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	RequestID     string
	Body          []byte
}

// fakeAPI is an httptest server with scripted handlers under /api
type fakeAPI struct {
	t      *testing.T
	server *httptest.Server
	router *mux.Router

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	f := &fakeAPI{t: t, router: mux.NewRouter()}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			ContentType:   r.Header.Get("Content-Type"),
			RequestID:     r.Header.Get(RequestIDHeader),
			Body:          body,
		})
		f.mu.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(body))
		f.router.ServeHTTP(w, r)
	}))
	t.Cleanup(f.server.Close)
	return f
}

// handle registers a handler for an /api endpoint
func (f *fakeAPI) handle(method, endpoint string, h http.HandlerFunc) {
	f.router.HandleFunc("/api"+endpoint, h).Methods(method)
}

// respond registers a fixed JSON response
func (f *fakeAPI) respond(method, endpoint string, status int, body any) {
	f.handle(method, endpoint, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, status, body)
	})
}

// calls returns the recorded requests to an endpoint
func (f *fakeAPI) calls(endpoint string) []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []recordedRequest
	for _, req := range f.requests {
		if req.Path == "/api"+endpoint {
			out = append(out, req)
		}
	}
	return out
}

// newClient returns a client for the fake API backed by a fresh memory store
func (f *fakeAPI) newClient() (*Client, *memory.Store) {
	store := memory.New()
	c := New(store, Config{
		BaseURL: f.server.URL + "/api",
		Logger:  testutil.NopLogger(),
	})
	return c, store
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}
