package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/riskcalc/pkg/cli/config"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
)

func cmdList(version string) *cli.Command {
	var method string
	var appCfg config.App
	var repoCfg config.Repository
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "method",
			Usage:       "Only show assessments of one scoring method (qualitative or quantitative)",
			Destination: &method,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "Show the assessment collection, newest first",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closer, err := buildUseCases(ctx, version, &appCfg, &repoCfg, &sentryCfg)
			if err != nil {
				return err
			}
			defer closer()

			var assessments []*model.Assessment
			if method != "" {
				m := types.Method(method)
				if err := m.Validate(); err != nil {
					return err
				}
				uc.Assessment.Load(ctx)
				assessments = uc.Assessment.SearchByMethod(ctx, m)
			} else {
				assessments = uc.Assessment.Load(ctx)
			}

			if advisory, ok := uc.Assessment.Advisory(); ok {
				logging.Default().Warn("Collection loaded in degraded mode", "advisory", advisory)
			}

			if len(assessments) == 0 {
				fmt.Println("No assessments found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tASSET\tMETHOD\tINHERENT\tRESIDUAL\tLEVEL\tCREATED")
			for _, a := range assessments {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%.2f\t%s\t%s\n",
					a.ID,
					a.Name,
					a.Asset,
					a.Method,
					a.InherentRisk,
					a.ResidualRisk,
					levelColor(a.RiskLevel).Sprint(a.RiskLevel),
					a.CreatedAt.Format("2006-01-02"),
				)
			}
			return w.Flush()
		},
	}
}
