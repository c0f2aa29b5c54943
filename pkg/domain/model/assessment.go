package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
)

// Assessment is one risk-evaluation record: an asset/threat/vulnerability
// triple plus its computed scores. Records are immutable once persisted;
// there is no update or delete path.
type Assessment struct {
	ID   types.AssessmentID `json:"id"`
	Slot types.SlotID       `json:"slot,omitempty"`

	Name          string       `json:"name"`
	Asset         string       `json:"asset"`
	Description   string       `json:"description"`
	Threat        string       `json:"threat"`
	Vulnerability string       `json:"vulnerability"`
	Method        types.Method `json:"method"`

	Probability           int     `json:"probability"`
	Impact                int     `json:"impact"`
	VulnerabilitySeverity float64 `json:"vulnerabilitySeverity,omitempty"`
	ControlEffectiveness  float64 `json:"controlEffectiveness,omitempty"`
	DetectionCapability   int     `json:"detectionCapability,omitempty"`
	ResponseCapability    int     `json:"responseCapability,omitempty"`
	ConfidentialityImpact int     `json:"confidentialityImpact,omitempty"`
	IntegrityImpact       int     `json:"integrityImpact,omitempty"`
	AvailabilityImpact    int     `json:"availabilityImpact,omitempty"`

	ExistingControls string `json:"existingControls,omitempty"`
	ProposedControls string `json:"proposedControls,omitempty"`

	// Derived fields. Always recomputed together by the scoring engine;
	// RiskLevel must agree with ResidualRisk.
	InherentRisk float64         `json:"inherentRisk"`
	ResidualRisk float64         `json:"residualRisk"`
	RiskLevel    types.RiskLevel `json:"riskLevel"`

	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a copy to prevent external modification of stored records.
func (a *Assessment) Clone() *Assessment {
	copied := *a
	return &copied
}

// Draft is a submitted form before scoring and persistence.
type Draft struct {
	Name          string
	Asset         string
	Description   string
	Threat        string
	Vulnerability string

	Input Input

	ExistingControls string
	ProposedControls string
}

// Validate checks required descriptive fields and delegates range checks to
// the input variant.
func (d *Draft) Validate() error {
	for name, v := range map[string]string{
		"name":          d.Name,
		"asset":         d.Asset,
		"description":   d.Description,
		"threat":        d.Threat,
		"vulnerability": d.Vulnerability,
	} {
		if v == "" {
			return goerr.Wrap(ErrMissingRequired, "required field is empty", goerr.V("field", name))
		}
	}
	if d.Input == nil {
		return goerr.Wrap(ErrMissingRequired, "scoring input is required")
	}
	return d.Input.Validate()
}

// Assessment builds the record skeleton from the draft. Derived fields are
// left zero; the store fills them from the scoring engine so they can never
// drift from the inputs.
func (d *Draft) Assessment(now time.Time) *Assessment {
	a := &Assessment{
		Name:             d.Name,
		Asset:            d.Asset,
		Description:      d.Description,
		Threat:           d.Threat,
		Vulnerability:    d.Vulnerability,
		Method:           d.Input.Method(),
		ExistingControls: d.ExistingControls,
		ProposedControls: d.ProposedControls,
		CreatedAt:        now,
	}

	switch in := d.Input.(type) {
	case Qualitative:
		a.Probability = in.Probability
		a.Impact = in.Impact
	case Quantitative:
		n := in.Normalized()
		a.Probability = n.Probability
		a.Impact = n.Impact
		a.VulnerabilitySeverity = n.VulnerabilitySeverity
		a.ControlEffectiveness = n.ControlEffectiveness
		a.DetectionCapability = n.DetectionCapability
		a.ResponseCapability = n.ResponseCapability
		a.ConfidentialityImpact = n.ConfidentialityImpact
		a.IntegrityImpact = n.IntegrityImpact
		a.AvailabilityImpact = n.AvailabilityImpact
	}

	return a
}
