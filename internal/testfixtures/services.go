package testfixtures

import (
	"time"

	"github.com/example/campus-events/internal/application"
)

// TestTokenSecret signs tokens issued by harness services.
const TestTokenSecret = "campus-events-test-secret"

// ServiceHarness bundles the application services over a MemoryStore with a
// deterministic clock and identifier sequence, for service and handler tests.
type ServiceHarness struct {
	Clock  *Clock
	IDs    *IDGenerator
	Store  *MemoryStore
	Tokens *application.TokenManager
	Auth   *application.AuthService
	Events *application.EventService
	RSVPs  *application.RSVPService
}

// ServiceHarnessOption configures a ServiceHarness under construction.
type ServiceHarnessOption func(*ServiceHarness)

// WithHarnessClock overrides the harness clock.
func WithHarnessClock(clock *Clock) ServiceHarnessOption {
	return func(h *ServiceHarness) {
		h.Clock = clock
	}
}

// WithHarnessTokenTTL rebuilds the token manager with the given lifetime.
func WithHarnessTokenTTL(ttl time.Duration) ServiceHarnessOption {
	return func(h *ServiceHarness) {
		h.Tokens = application.NewTokenManager(TestTokenSecret, ttl, h.Clock.NowFunc())
	}
}

// NewServiceHarness constructs a fully wired ServiceHarness.
func NewServiceHarness(opts ...ServiceHarnessOption) *ServiceHarness {
	harness := &ServiceHarness{
		Clock: NewClock(time.Time{}),
		IDs:   NewIDGenerator(),
		Store: NewMemoryStore(),
	}
	for _, opt := range opts {
		opt(harness)
	}
	if harness.Tokens == nil {
		harness.Tokens = application.NewTokenManager(TestTokenSecret, 72*time.Hour, harness.Clock.NowFunc())
	}

	now := harness.Clock.NowFunc()
	ids := harness.IDs.NextFunc()

	harness.Auth = application.NewAuthService(harness.Store, harness.Tokens, ids, now)
	harness.Events = application.NewEventService(harness.Store, harness.Store, harness.Store, ids, now, 10)
	harness.RSVPs = application.NewRSVPService(harness.Store, harness.Store, harness.Events.InvalidateEvent, ids, now)
	return harness
}
