package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/whoosh/internal/client"
	"github.com/mcoot/whoosh/internal/dependencies/mocks"
	"github.com/mcoot/whoosh/internal/services/accounts"
	storagememory "github.com/mcoot/whoosh/internal/storage/memory"
	"github.com/mcoot/whoosh/internal/testutil"
	"github.com/mcoot/whoosh/internal/tokenstore/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	Memory    *memory.Store
}

// NewTestApp creates an App talking to baseURL with an in-memory store and a mocked clock
func NewTestApp(baseURL string) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	cfg := client.DefaultConfig()
	cfg.BaseURL = baseURL
	app := newWithDependencies(store, mockClock, cfg, testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		Memory:    store,
	}
}

// TestBackend extends Backend with test-specific helpers
type TestBackend struct {
	*Backend

	MockClock *mocks.MockClock
	Memory    *storagememory.Storage
}

// NewTestBackend creates a stub backend with in-memory storage, a mocked clock
// and the cheapest bcrypt cost
func NewTestBackend() *TestBackend {
	store := storagememory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	cfg := accounts.DefaultConfig()
	cfg.BcryptCost = bcrypt.MinCost
	backend := newBackendWithDependencies(store, mockClock, cfg, testutil.NopLogger())

	return &TestBackend{
		Backend:   backend,
		MockClock: mockClock,
		Memory:    store,
	}
}
