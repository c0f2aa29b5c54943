// Package scoring computes inherent and residual risk scores. It is a pure
// transformation: no I/O, no validation, no clamping, so every result is
// auditable against the input fields.
package scoring

import (
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
)

// Result holds the derived fields of an assessment. The three values are
// always computed together so a record can never carry a RiskLevel that
// disagrees with its own ResidualRisk.
type Result struct {
	InherentRisk float64
	ResidualRisk float64
	RiskLevel    types.RiskLevel
}

// Score evaluates the input variant and returns the derived fields.
//
// Inherent risk:
//   - qualitative:  probability * impact (range 1-25)
//   - quantitative: probability * severity * avg(CIA impacts) / 10
//
// Residual risk uses the same dampening formula for both methods:
//
//	inherent * (1 - control/100) * (1 + (6-detection)/5 + (6-response)/5) / 3
//
// A qualitative input takes the variant defaults (control 0, detection 1,
// response 1), which makes the dampening factor exactly 1: residual equals
// inherent when no control data exists.
func Score(input model.Input) Result {
	var inherent float64
	var control, detection, response float64

	switch in := input.(type) {
	case model.Qualitative:
		inherent = float64(in.Probability) * float64(in.Impact)
		control = 0
		detection = 1
		response = 1
	case model.Quantitative:
		n := in.Normalized()
		avgImpact := float64(n.ConfidentialityImpact+n.IntegrityImpact+n.AvailabilityImpact) / 3
		inherent = float64(n.Probability) * n.VulnerabilitySeverity * avgImpact / 10
		control = n.ControlEffectiveness
		detection = float64(n.DetectionCapability)
		response = float64(n.ResponseCapability)
	}

	controlReduction := control / 100
	detectionFactor := (6 - detection) / 5
	responseFactor := (6 - response) / 5
	residual := inherent * (1 - controlReduction) * (1 + detectionFactor + responseFactor) / 3

	return Result{
		InherentRisk: inherent,
		ResidualRisk: residual,
		RiskLevel:    types.LevelOf(residual),
	}
}

// Apply stamps the derived fields onto an assessment record.
func (r Result) Apply(a *model.Assessment) {
	a.InherentRisk = r.InherentRisk
	a.ResidualRisk = r.ResidualRisk
	a.RiskLevel = r.RiskLevel
}
