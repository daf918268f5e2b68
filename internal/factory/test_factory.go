package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/whist-team/whist-server-go/internal/dependencies/mocks"
	"github.com/whist-team/whist-server-go/internal/dependencies/random"
	"github.com/whist-team/whist-server-go/internal/notify"
	"github.com/whist-team/whist-server-go/internal/services/auth"
	"github.com/whist-team/whist-server-go/internal/services/room"
	"github.com/whist-team/whist-server-go/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing. The clock is mocked and
// the room service draws randomness from a controllable queue; session token
// generation keeps real randomness so tokens stay unique without queueing.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	authService := auth.New(store, mockClock, random.New(), auth.DefaultConfig())
	hubManager := notify.NewHubManager(logger)
	roomService := room.New(store, authService, hubManager, mockClock, mockRandom, logger)

	app := &App{
		Storage:     store,
		Clock:       mockClock,
		Random:      mockRandom,
		AuthService: authService,
		RoomService: roomService,
		HubManager:  hubManager,
	}

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
