package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/riskcalc/pkg/cli/config"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
)

func cmdAdd(version string) *cli.Command {
	var appCfg config.App
	var repoCfg config.Repository
	var sentryCfg config.Sentry

	var (
		name          string
		asset         string
		description   string
		threat        string
		vulnerability string
		method        string

		probability           int
		impact                int
		vulnSeverity          float64
		controlEffectiveness  float64
		detectionCapability   int
		responseCapability    int
		confidentialityImpact int
		integrityImpact       int
		availabilityImpact    int

		existingControls string
		proposedControls string
	)

	flags := []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "Risk name", Required: true, Destination: &name},
		&cli.StringFlag{Name: "asset", Usage: "Affected asset", Required: true, Destination: &asset},
		&cli.StringFlag{Name: "description", Usage: "Risk description", Required: true, Destination: &description},
		&cli.StringFlag{Name: "threat", Usage: "Threat description", Required: true, Destination: &threat},
		&cli.StringFlag{Name: "vulnerability", Usage: "Vulnerability description", Required: true, Destination: &vulnerability},
		&cli.StringFlag{Name: "method", Usage: "Scoring method (qualitative or quantitative)", Value: "qualitative", Destination: &method},
		&cli.IntFlag{Name: "probability", Usage: "Probability rating (1-5)", Required: true, Destination: &probability},
		&cli.IntFlag{Name: "impact", Usage: "Impact rating (1-5)", Required: true, Destination: &impact},
		&cli.FloatFlag{Name: "vulnerability-severity", Usage: "CVSS-like severity (0-10, quantitative only)", Destination: &vulnSeverity},
		&cli.FloatFlag{Name: "control-effectiveness", Usage: "Existing control effectiveness in percent (0-100, quantitative only)", Destination: &controlEffectiveness},
		&cli.IntFlag{Name: "detection-capability", Usage: "Detection capability (1-5, quantitative only)", Destination: &detectionCapability},
		&cli.IntFlag{Name: "response-capability", Usage: "Response capability (1-5, quantitative only)", Destination: &responseCapability},
		&cli.IntFlag{Name: "confidentiality-impact", Usage: "Confidentiality impact (1-5, quantitative only)", Destination: &confidentialityImpact},
		&cli.IntFlag{Name: "integrity-impact", Usage: "Integrity impact (1-5, quantitative only)", Destination: &integrityImpact},
		&cli.IntFlag{Name: "availability-impact", Usage: "Availability impact (1-5, quantitative only)", Destination: &availabilityImpact},
		&cli.StringFlag{Name: "existing-controls", Usage: "Existing controls", Destination: &existingControls},
		&cli.StringFlag{Name: "proposed-controls", Usage: "Proposed controls", Destination: &proposedControls},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "add",
		Aliases: []string{"a"},
		Usage:   "Score and save a new risk assessment",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			m := types.Method(method)
			if err := m.Validate(); err != nil {
				return err
			}

			var input model.Input
			switch m {
			case types.MethodQualitative:
				input = model.Qualitative{
					Probability: probability,
					Impact:      impact,
				}
			case types.MethodQuantitative:
				input = model.Quantitative{
					Probability:           probability,
					Impact:                impact,
					VulnerabilitySeverity: vulnSeverity,
					ControlEffectiveness:  controlEffectiveness,
					DetectionCapability:   detectionCapability,
					ResponseCapability:    responseCapability,
					ConfidentialityImpact: confidentialityImpact,
					IntegrityImpact:       integrityImpact,
					AvailabilityImpact:    availabilityImpact,
				}
			}

			draft := &model.Draft{
				Name:             name,
				Asset:            asset,
				Description:      description,
				Threat:           threat,
				Vulnerability:    vulnerability,
				Input:            input,
				ExistingControls: existingControls,
				ProposedControls: proposedControls,
			}
			if err := draft.Validate(); err != nil {
				return err
			}

			uc, closer, err := buildUseCases(ctx, version, &appCfg, &repoCfg, &sentryCfg)
			if err != nil {
				return err
			}
			defer closer()

			// Merge with the existing collection so the cache write keeps
			// previously saved assessments.
			uc.Assessment.Load(ctx)

			record := uc.Assessment.Add(ctx, draft)

			fmt.Printf("Saved assessment %s\n", record.ID)
			fmt.Printf("  Inherent risk: %.2f\n", record.InherentRisk)
			fmt.Printf("  Residual risk: %.2f\n", record.ResidualRisk)
			fmt.Printf("  Level:         %s\n", levelColor(record.RiskLevel).Sprint(record.RiskLevel))

			if advisory, ok := uc.Assessment.Advisory(); ok {
				logging.Default().Warn("Assessment saved in degraded mode", "advisory", advisory)
			}
			return nil
		},
	}
}
