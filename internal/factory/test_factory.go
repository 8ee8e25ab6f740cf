package factory

import (
	"log/slog"
	"time"

	"github.com/Diana2886/websockets-ui/internal/dependencies/mocks"
	"github.com/Diana2886/websockets-ui/internal/storage/memory"
	"github.com/Diana2886/websockets-ui/internal/testutil"
)

// TestApp bundles an App with its mocked dependencies for tests
type TestApp struct {
	*App

	MemoryStorage *memory.Storage
	MockClock     *mocks.MockClock
	MockRandom    *mocks.MockRandom
}

// NewTestApp creates an App backed by in-memory storage and mocked clock
// and random, suitable for deterministic tests.
func NewTestApp(logger *slog.Logger) *TestApp {
	if logger == nil {
		logger = testutil.NopLogger()
	}

	store := memory.New()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	rnd := mocks.NewMockRandom()

	return &TestApp{
		App:           newWithDependencies(store, clk, rnd, logger),
		MemoryStorage: store,
		MockClock:     clk,
		MockRandom:    rnd,
	}
}
