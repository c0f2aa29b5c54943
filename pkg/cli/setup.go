package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/cli/config"
	"github.com/secmon-lab/riskcalc/pkg/usecase"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
)

// buildUseCases wires the remote store, the local cache and the error
// reporter into the use case layer. The returned closer releases the remote
// client and flushes pending reports.
func buildUseCases(ctx context.Context, release string, appCfg *config.App, repoCfg *config.Repository, sentryCfg *config.Sentry) (*usecase.UseCases, func(), error) {
	app, err := appCfg.Configure()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load app configuration")
	}
	if app != nil {
		app.Apply(repoCfg)
		logging.Default().Info("Loaded app configuration", "organization", app.Organization)
	}

	remote, err := repoCfg.Configure(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize remote store")
	}

	fileCache, err := repoCfg.ConfigureCache()
	if err != nil {
		if remote != nil {
			_ = remote.Close()
		}
		return nil, nil, goerr.Wrap(err, "failed to initialize cache")
	}
	logging.Default().Info("Using local cache", "path", fileCache.Path())

	reporter, reporterCloser, err := sentryCfg.Configure(release)
	if err != nil {
		if remote != nil {
			_ = remote.Close()
		}
		return nil, nil, goerr.Wrap(err, "failed to initialize error reporter")
	}

	uc := usecase.New(remote, fileCache, usecase.WithReporter(reporter))

	closer := func() {
		if remote != nil {
			if err := remote.Close(); err != nil {
				logging.Default().Error("failed to close remote store", "error", err.Error())
			}
		}
		reporterCloser()
	}

	return uc, closer, nil
}
