package cli

import (
	"context"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/riskcalc/pkg/cli/config"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/usecase"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
	"github.com/secmon-lab/riskcalc/pkg/utils/safe"
)

func cmdExport(version string) *cli.Command {
	var output string
	var appCfg config.App
	var repoCfg config.Repository
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output destination: a local path, gs://bucket/object, or '-' for stdout",
			Value:       "-",
			Sources:     cli.EnvVars("RISKCALC_EXPORT_OUTPUT"),
			Destination: &output,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "export",
		Aliases: []string{"e"},
		Usage:   "Export the assessment collection as CSV",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closer, err := buildUseCases(ctx, version, &appCfg, &repoCfg, &sentryCfg)
			if err != nil {
				return err
			}
			defer closer()

			assessments := uc.Assessment.Load(ctx)
			if advisory, ok := uc.Assessment.Advisory(); ok {
				logging.Default().Warn("Collection loaded in degraded mode", "advisory", advisory)
			}

			if err := writeExport(ctx, output, assessments); err != nil {
				return err
			}
			logging.Default().Info("Exported assessments", "count", len(assessments), "output", output)
			return nil
		},
	}
}

func writeExport(ctx context.Context, output string, assessments []*model.Assessment) error {
	switch {
	case output == "-":
		return usecase.WriteCSV(os.Stdout, assessments)

	case strings.HasPrefix(output, "gs://"):
		bucket, object, ok := strings.Cut(strings.TrimPrefix(output, "gs://"), "/")
		if !ok || bucket == "" || object == "" {
			return goerr.New("invalid gs:// destination", goerr.V("output", output))
		}

		client, err := storage.NewClient(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to create storage client")
		}
		defer safe.Close(ctx, client)

		w := client.Bucket(bucket).Object(object).NewWriter(ctx)
		w.ContentType = "text/csv"
		if err := usecase.WriteCSV(w, assessments); err != nil {
			_ = w.Close()
			return err
		}
		if err := w.Close(); err != nil {
			return goerr.Wrap(err, "failed to finish object upload", goerr.V("output", output))
		}
		return nil

	default:
		f, err := os.Create(output)
		if err != nil {
			return goerr.Wrap(err, "failed to create export file", goerr.V("path", output))
		}
		if err := usecase.WriteCSV(f, assessments); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return goerr.Wrap(err, "failed to close export file", goerr.V("path", output))
		}
		return nil
	}
}
