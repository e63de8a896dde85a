package client

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/whoosh/internal/model"
	"github.com/mcoot/whoosh/internal/testutil"
	"github.com/mcoot/whoosh/internal/tokenstore/memory"
)

// expiringMe serves /users/me/ with 401 unless the request carries validToken
func expiringMe(validToken string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+validToken {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid for any token type"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"username": "bob"})
	}
}

func TestDoSendsBearerToken(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.MethodGet, EndpointMe, http.StatusOK, map[string]string{})
	c, store := api.newClient()
	ctx := context.Background()
	_ = store.Set(ctx, "A1", "R1")

	resp, err := c.Do(ctx, EndpointMe, RequestOptions{})
	require.NoError(t, err)
	discard(resp)

	calls := api.calls(EndpointMe)
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer A1", calls[0].Authorization)
	assert.Equal(t, "application/json", calls[0].ContentType)
	assert.NotEmpty(t, calls[0].RequestID)
	assert.Equal(t, http.MethodGet, calls[0].Method)
}

func TestDoWithoutTokenSendsNoAuthorization(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.MethodGet, EndpointHealth, http.StatusOK, map[string]string{"status": "ok"})
	c, _ := api.newClient()

	resp, err := c.Do(context.Background(), EndpointHealth, RequestOptions{})
	require.NoError(t, err)
	discard(resp)

	calls := api.calls(EndpointHealth)
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].Authorization)
}

func TestDoMergesCallerHeaders(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.MethodPost, EndpointMe, http.StatusOK, nil)
	c, store := api.newClient()
	ctx := context.Background()
	_ = store.Set(ctx, "A1", "R1")

	header := http.Header{}
	header.Set("Content-Type", "text/plain")
	header.Set("Authorization", "Bearer caller")

	resp, err := c.Do(ctx, EndpointMe, RequestOptions{
		Method: http.MethodPost,
		Header: header,
		Body:   []byte("hello"),
	})
	require.NoError(t, err)
	discard(resp)

	calls := api.calls(EndpointMe)
	require.Len(t, calls, 1)
	assert.Equal(t, "text/plain", calls[0].ContentType)
	assert.Equal(t, "Bearer A1", calls[0].Authorization)
	assert.Equal(t, "hello", string(calls[0].Body))
}

func TestDoReturnsNonSuccessAsIs(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.MethodGet, EndpointMe, http.StatusInternalServerError, map[string]string{"error": "boom"})
	c, store := api.newClient()
	ctx := context.Background()
	_ = store.Set(ctx, "A1", "R1")

	resp, err := c.Do(ctx, EndpointMe, RequestOptions{})
	require.NoError(t, err)
	defer discard(resp)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, api.calls(EndpointTokenRefresh))
}

func TestDo401WithoutTokenIsReturned(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodGet, EndpointMe, expiringMe("A2"))
	api.respond(http.MethodPost, EndpointTokenRefresh, http.StatusOK, map[string]string{"access": "A2"})
	c, _ := api.newClient()

	resp, err := c.Do(context.Background(), EndpointMe, RequestOptions{})
	require.NoError(t, err)
	defer discard(resp)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, api.calls(EndpointTokenRefresh))
}

func TestDoRefreshesAndRetriesOnce(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodGet, EndpointMe, expiringMe("A2"))
	api.respond(http.MethodPost, EndpointTokenRefresh, http.StatusOK, map[string]string{"access": "A2"})
	c, store := api.newClient()
	ctx := context.Background()
	_ = store.Set(ctx, "A1", "R1")

	resp, err := c.Do(ctx, EndpointMe, RequestOptions{})
	require.NoError(t, err)
	defer discard(resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	refreshCalls := api.calls(EndpointTokenRefresh)
	require.Len(t, refreshCalls, 1)
	assert.JSONEq(t, `{"refresh":"R1"}`, string(refreshCalls[0].Body))
	assert.Empty(t, refreshCalls[0].Authorization)

	meCalls := api.calls(EndpointMe)
	require.Len(t, meCalls, 2)
	assert.Equal(t, "Bearer A1", meCalls[0].Authorization)
	assert.Equal(t, "Bearer A2", meCalls[1].Authorization)
	assert.Equal(t, meCalls[0].RequestID, meCalls[1].RequestID)

	tokens, _ := store.Get(ctx)
	assert.Equal(t, model.TokenPair{AccessToken: "A2", RefreshToken: "R1"}, tokens)
}

func TestDoRetriesIdenticalBody(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodPatch, EndpointMe, expiringMe("A2"))
	api.respond(http.MethodPost, EndpointTokenRefresh, http.StatusOK, map[string]string{"access": "A2"})
	c, store := api.newClient()
	ctx := context.Background()
	_ = store.Set(ctx, "A1", "R1")

	resp, err := c.Do(ctx, EndpointMe, RequestOptions{
		Method: http.MethodPatch,
		Body:   []byte(`{"display_name":"Bob"}`),
	})
	require.NoError(t, err)
	discard(resp)

	meCalls := api.calls(EndpointMe)
	require.Len(t, meCalls, 2)
	assert.Equal(t, meCalls[0].Body, meCalls[1].Body)
	assert.Equal(t, http.MethodPatch, meCalls[1].Method)
}

func TestDoDoesNotRetryTwice(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodGet, EndpointMe, expiringMe("never"))
	api.respond(http.MethodPost, EndpointTokenRefresh, http.StatusOK, map[string]string{"access": "A2"})
	c, store := api.newClient()
	ctx := context.Background()
	_ = store.Set(ctx, "A1", "R1")

	resp, err := c.Do(ctx, EndpointMe, RequestOptions{})
	require.NoError(t, err)
	defer discard(resp)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Len(t, api.calls(EndpointTokenRefresh), 1)
	assert.Len(t, api.calls(EndpointMe), 2)
}

func TestDoRefreshFailureClearsSession(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodGet, EndpointMe, expiringMe("A2"))
	api.respond(http.MethodPost, EndpointTokenRefresh, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired"})
	c, store := api.newClient()
	ctx := context.Background()
	_ = store.Set(ctx, "A1", "R1")

	resp, err := c.Do(ctx, EndpointMe, RequestOptions{})
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, model.ErrSessionExpired)
	assert.Equal(t, "Session expired. Please login again.", err.Error())

	tokens, _ := store.Get(ctx)
	assert.Equal(t, model.TokenPair{}, tokens)
	assert.Len(t, api.calls(EndpointMe), 1)
}

func TestDoWithoutRefreshTokenExpiresWithoutRefreshCall(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodGet, EndpointMe, expiringMe("A2"))
	api.respond(http.MethodPost, EndpointTokenRefresh, http.StatusOK, map[string]string{"access": "A2"})
	c, store := api.newClient()
	ctx := context.Background()
	_ = store.Set(ctx, "A1", "")

	_, err := c.Do(ctx, EndpointMe, RequestOptions{})
	assert.ErrorIs(t, err, model.ErrSessionExpired)

	assert.Empty(t, api.calls(EndpointTokenRefresh))
	tokens, _ := store.Get(ctx)
	assert.False(t, tokens.HasAccess())
}

func TestDoTransportErrorPropagates(t *testing.T) {
	api := newFakeAPI(t)
	c, store := api.newClient()
	ctx := context.Background()
	_ = store.Set(ctx, "A1", "R1")
	api.server.Close()

	_, err := c.Do(ctx, EndpointMe, RequestOptions{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrSessionExpired)

	tokens, _ := store.Get(ctx)
	assert.Equal(t, "A1", tokens.AccessToken)
}

func TestRefreshWithoutRefreshToken(t *testing.T) {
	api := newFakeAPI(t)
	c, _ := api.newClient()

	assert.False(t, c.Refresh(context.Background()))
	assert.Empty(t, api.calls(EndpointTokenRefresh))
}

func TestRefreshRejected(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.MethodPost, EndpointTokenRefresh, http.StatusInternalServerError, nil)
	c, store := api.newClient()
	ctx := context.Background()
	_ = store.Set(ctx, "A1", "R1")

	assert.False(t, c.Refresh(ctx))

	tokens, _ := store.Get(ctx)
	assert.Equal(t, "A1", tokens.AccessToken)
}

func TestRefreshNetworkErrorIsSwallowed(t *testing.T) {
	api := newFakeAPI(t)
	c, store := api.newClient()
	ctx := context.Background()
	_ = store.Set(ctx, "A1", "R1")
	api.server.Close()

	assert.False(t, c.Refresh(ctx))
}

func TestRefreshRunsEvenWithValidToken(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.MethodPost, EndpointTokenRefresh, http.StatusOK, map[string]string{"access": "A2"})
	c, store := api.newClient()
	ctx := context.Background()
	_ = store.Set(ctx, "A1", "R1")

	assert.True(t, c.Refresh(ctx))
	assert.True(t, c.Refresh(ctx))
	assert.Len(t, api.calls(EndpointTokenRefresh), 2)
}

func TestConcurrentRefreshesAreCoalesced(t *testing.T) {
	api := newFakeAPI(t)
	release := make(chan struct{})
	api.handle(http.MethodPost, EndpointTokenRefresh, func(w http.ResponseWriter, r *http.Request) {
		<-release
		writeJSON(w, http.StatusOK, map[string]string{"access": "A2"})
	})
	c, store := api.newClient()
	ctx := context.Background()
	_ = store.Set(ctx, "A1", "R1")

	const callers = 4
	results := make([]bool, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Refresh(ctx)
		}(i)
	}

	// Every caller is waiting on the in-flight refresh
	require.Eventually(t, func() bool {
		return c.refreshWaiters.Load() == callers
	}, 5*time.Second, 5*time.Millisecond)
	close(release)
	wg.Wait()

	for _, ok := range results {
		assert.True(t, ok)
	}
	assert.Len(t, api.calls(EndpointTokenRefresh), 1)
}

func TestCancelledCallerDoesNotEndSharedRefresh(t *testing.T) {
	api := newFakeAPI(t)
	started := make(chan struct{})
	var startOnce sync.Once
	release := make(chan struct{})
	api.handle(http.MethodGet, EndpointMe, expiringMe("A2"))
	api.handle(http.MethodPost, EndpointTokenRefresh, func(w http.ResponseWriter, r *http.Request) {
		startOnce.Do(func() { close(started) })
		<-release
		writeJSON(w, http.StatusOK, map[string]string{"access": "A2"})
	})
	c, store := api.newClient()
	_ = store.Set(context.Background(), "A1", "R1")

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	errA := make(chan error, 1)
	go func() {
		_, err := c.Do(ctxA, EndpointMe, RequestOptions{})
		errA <- err
	}()

	<-started
	type result struct {
		resp *http.Response
		err  error
	}
	resB := make(chan result, 1)
	go func() {
		resp, err := c.Do(context.Background(), EndpointMe, RequestOptions{})
		resB <- result{resp, err}
	}()

	cancelA()
	require.ErrorIs(t, <-errA, context.Canceled)

	// The cancelled caller leaves the session in place
	tokens, _ := store.Get(context.Background())
	assert.Equal(t, "R1", tokens.RefreshToken)

	close(release)
	b := <-resB
	require.NoError(t, b.err)
	defer discard(b.resp)
	assert.Equal(t, http.StatusOK, b.resp.StatusCode)

	tokens, _ = store.Get(context.Background())
	assert.Equal(t, model.TokenPair{AccessToken: "A2", RefreshToken: "R1"}, tokens)
}

func TestDoLogsRedactedToken(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(http.MethodGet, EndpointMe, http.StatusOK, map[string]string{})
	store := memory.New()
	logger, logs := testutil.CaptureLogger()
	c := New(store, Config{BaseURL: api.server.URL + "/api", Logger: logger})
	ctx := context.Background()
	token := "eyJhbGciOiJIUzI1NiJ9.secret-payload.signature"
	_ = store.Set(ctx, token, "R1")

	resp, err := c.Do(ctx, EndpointMe, RequestOptions{})
	require.NoError(t, err)
	discard(resp)

	assert.Contains(t, logs.String(), `"token":"eyJhbGci***"`)
	assert.NotContains(t, logs.String(), "secret-payload")
}
