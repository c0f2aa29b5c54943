package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
)

// Input is the tagged variant of scoring inputs. Exactly two variants
// exist: Qualitative and Quantitative. The scoring engine switches on the
// concrete type, so the default-field rules are explicit per variant
// instead of being implied by absent fields.
type Input interface {
	Method() types.Method
	Validate() error
}

// Qualitative scores from coarse probability/impact ratings only.
type Qualitative struct {
	Probability int
	Impact      int
}

func (q Qualitative) Method() types.Method {
	return types.MethodQualitative
}

// Validate enforces the documented input ranges. Range enforcement is the
// caller's job; the scoring engine itself never clamps.
func (q Qualitative) Validate() error {
	if q.Probability < 1 || q.Probability > 5 {
		return goerr.Wrap(ErrInvalidInput, "probability must be between 1 and 5", goerr.V("probability", q.Probability))
	}
	if q.Impact < 1 || q.Impact > 5 {
		return goerr.Wrap(ErrInvalidInput, "impact must be between 1 and 5", goerr.V("impact", q.Impact))
	}
	return nil
}

// Quantitative scores with vulnerability severity, per-dimension impact and
// control/detection/response effectiveness.
type Quantitative struct {
	Probability           int
	Impact                int
	VulnerabilitySeverity float64
	ControlEffectiveness  float64
	DetectionCapability   int
	ResponseCapability    int
	ConfidentialityImpact int
	IntegrityImpact       int
	AvailabilityImpact    int
}

func (q Quantitative) Method() types.Method {
	return types.MethodQuantitative
}

// Normalized fills unset optional fields with their documented defaults:
// severity, detection, response and each CIA impact default to 1, control
// effectiveness stays 0.
func (q Quantitative) Normalized() Quantitative {
	if q.VulnerabilitySeverity == 0 {
		q.VulnerabilitySeverity = 1
	}
	if q.DetectionCapability == 0 {
		q.DetectionCapability = 1
	}
	if q.ResponseCapability == 0 {
		q.ResponseCapability = 1
	}
	if q.ConfidentialityImpact == 0 {
		q.ConfidentialityImpact = 1
	}
	if q.IntegrityImpact == 0 {
		q.IntegrityImpact = 1
	}
	if q.AvailabilityImpact == 0 {
		q.AvailabilityImpact = 1
	}
	return q
}

// Validate enforces the documented input ranges on the normalized variant.
func (q Quantitative) Validate() error {
	n := q.Normalized()
	if n.Probability < 1 || n.Probability > 5 {
		return goerr.Wrap(ErrInvalidInput, "probability must be between 1 and 5", goerr.V("probability", n.Probability))
	}
	if n.Impact < 1 || n.Impact > 5 {
		return goerr.Wrap(ErrInvalidInput, "impact must be between 1 and 5", goerr.V("impact", n.Impact))
	}
	if n.VulnerabilitySeverity < 1 || n.VulnerabilitySeverity > 10 {
		return goerr.Wrap(ErrInvalidInput, "vulnerability severity must be between 1 and 10", goerr.V("severity", n.VulnerabilitySeverity))
	}
	if n.ControlEffectiveness < 0 || n.ControlEffectiveness > 100 {
		return goerr.Wrap(ErrInvalidInput, "control effectiveness must be between 0 and 100", goerr.V("controlEffectiveness", n.ControlEffectiveness))
	}
	for name, v := range map[string]int{
		"detectionCapability":   n.DetectionCapability,
		"responseCapability":    n.ResponseCapability,
		"confidentialityImpact": n.ConfidentialityImpact,
		"integrityImpact":       n.IntegrityImpact,
		"availabilityImpact":    n.AvailabilityImpact,
	} {
		if v < 1 || v > 5 {
			return goerr.Wrap(ErrInvalidInput, "rating must be between 1 and 5", goerr.V("field", name), goerr.V("value", v))
		}
	}
	return nil
}
