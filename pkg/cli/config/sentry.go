package config

import (
	"github.com/secmon-lab/riskcalc/pkg/domain/interfaces"
	"github.com/secmon-lab/riskcalc/pkg/service/sentry"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Sentry holds CLI flags for error reporting configuration
type Sentry struct {
	dsn         string
	environment string
}

// Flags returns CLI flags for Sentry configuration
func (s *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN (reporting is disabled when empty)",
			Sources:     cli.EnvVars("RISKCALC_SENTRY_DSN"),
			Destination: &s.dsn,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment name",
			Value:       "production",
			Sources:     cli.EnvVars("RISKCALC_SENTRY_ENV"),
			Destination: &s.environment,
		},
	}
}

// Configure builds the error reporter. Without a DSN the no-op reporter is
// returned, so callers never branch on whether Sentry is enabled.
func (s *Sentry) Configure(release string) (interfaces.Reporter, func(), error) {
	if s.dsn == "" {
		logging.Default().Info("Sentry DSN not configured, error reporting disabled")
		return sentry.Noop{}, func() {}, nil
	}

	client, closer, err := sentry.New(s.dsn, s.environment, release)
	if err != nil {
		return nil, nil, err
	}
	logging.Default().Info("Sentry error reporting enabled", "environment", s.environment)
	return client, closer, nil
}
