package usecase

import (
	"time"

	"github.com/secmon-lab/riskcalc/pkg/domain/interfaces"
	"github.com/secmon-lab/riskcalc/pkg/service/sentry"
)

// UseCases is the explicitly constructed application core, built once per
// process and passed by reference. There is no package-level singleton.
type UseCases struct {
	Assessment *AssessmentUseCase

	reporter interfaces.Reporter
	clock    func() time.Time
}

type Option func(*UseCases)

// WithReporter sets the error-observability collaborator. Without it all
// reports are discarded.
func WithReporter(reporter interfaces.Reporter) Option {
	return func(uc *UseCases) {
		uc.reporter = reporter
	}
}

// WithClock overrides the time source for tests.
func WithClock(clock func() time.Time) Option {
	return func(uc *UseCases) {
		uc.clock = clock
	}
}

// New builds the use cases. A nil remote means the store operates in
// cache-only mode.
func New(remote interfaces.RemoteStore, cache interfaces.Cache, opts ...Option) *UseCases {
	uc := &UseCases{
		reporter: sentry.Noop{},
		clock:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(uc)
	}

	uc.Assessment = NewAssessmentUseCase(remote, cache, uc.reporter, uc.clock)

	return uc
}
