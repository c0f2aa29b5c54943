package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/riskcalc/pkg/cli/config"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
)

func cmdMatrix(version string) *cli.Command {
	var appCfg config.App
	var repoCfg config.Repository
	var sentryCfg config.Sentry

	var flags []cli.Flag
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:  "matrix",
		Usage: "Render the 5x5 probability/impact matrix",
		Flags: flags,
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

			counts := map[[2]int]int{}
			clamp := func(v int) int {
				if v < 1 {
					return 1
				}
				if v > 5 {
					return 5
				}
				return v
			}
			for _, a := range assessments {
				counts[[2]int{clamp(a.Probability), clamp(a.Impact)}]++
			}

			fmt.Println("          Probability ->")
			fmt.Println("Impact      1      2      3      4      5")
			for impact := 5; impact >= 1; impact-- {
				fmt.Printf("  %d    ", impact)
				for probability := 1; probability <= 5; probability++ {
					score := probability * impact
					cell := fmt.Sprintf("%2d", score)
					if n := counts[[2]int{probability, impact}]; n > 0 {
						cell = fmt.Sprintf("%2d(%d)", score, n)
					}
					fmt.Printf(" %s", levelColor(types.LevelOf(float64(score))).Sprintf("%-6s", cell))
				}
				fmt.Println()
			}
			fmt.Println()
			for _, level := range []types.RiskLevel{
				types.RiskLevelCritical,
				types.RiskLevelHigh,
				types.RiskLevelMedium,
				types.RiskLevelLow,
				types.RiskLevelVeryLow,
			} {
				fmt.Printf("  %s", levelColor(level).Sprint(level))
			}
			fmt.Println()
			return nil
		},
	}
}
