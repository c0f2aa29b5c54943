// Package sentry wires the error-observability collaborator. Reports are
// diagnostics only: if the collaborator is absent or misconfigured, the
// application behaves identically.
package sentry

import (
	"context"
	"errors"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/domain/interfaces"
)

type Client struct {
	hub *sentrygo.Hub
}

var _ interfaces.Reporter = &Client{}

// New creates a reporter bound to its own hub. The returned closer flushes
// pending events.
func New(dsn, environment, release string) (*Client, func(), error) {
	client, err := sentrygo.NewClient(sentrygo.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     release,
	})
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize sentry client", goerr.V("environment", environment))
	}

	hub := sentrygo.NewHub(client, sentrygo.NewScope())
	closer := func() {
		hub.Flush(2 * time.Second)
	}

	return &Client{hub: hub}, closer, nil
}

func (c *Client) ReportError(_ context.Context, err error, tags map[string]string) {
	c.hub.WithScope(func(scope *sentrygo.Scope) {
		if len(tags) > 0 {
			scope.SetTags(tags)
		}
		var ge *goerr.Error
		if errors.As(err, &ge) {
			for k, v := range ge.Values() {
				scope.SetExtra(k, v)
			}
		}
		c.hub.CaptureException(err)
	})
}

func (c *Client) ReportMessage(_ context.Context, level interfaces.ReportLevel, msg string) {
	c.hub.WithScope(func(scope *sentrygo.Scope) {
		scope.SetLevel(toSentryLevel(level))
		c.hub.CaptureMessage(msg)
	})
}

func (c *Client) AddBreadcrumb(_ context.Context, category, msg string, data map[string]any) {
	c.hub.AddBreadcrumb(&sentrygo.Breadcrumb{
		Category:  category,
		Message:   msg,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}, nil)
}

func toSentryLevel(level interfaces.ReportLevel) sentrygo.Level {
	switch level {
	case interfaces.ReportLevelError:
		return sentrygo.LevelError
	case interfaces.ReportLevelWarning:
		return sentrygo.LevelWarning
	default:
		return sentrygo.LevelInfo
	}
}

// Noop discards all reports. Used when no DSN is configured.
type Noop struct{}

var _ interfaces.Reporter = Noop{}

func (Noop) ReportError(context.Context, error, map[string]string)         {}
func (Noop) ReportMessage(context.Context, interfaces.ReportLevel, string) {}
func (Noop) AddBreadcrumb(context.Context, string, string, map[string]any) {}
