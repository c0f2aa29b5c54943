package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
)

func validDraft() *model.Draft {
	return &model.Draft{
		Name:          "Exposed admin panel",
		Asset:         "Customer database",
		Description:   "Admin panel reachable from the internet",
		Threat:        "Credential stuffing",
		Vulnerability: "No rate limiting on login",
		Input:         model.Qualitative{Probability: 4, Impact: 4},
	}
}

func TestDraftValidate(t *testing.T) {
	t.Run("valid draft passes", func(t *testing.T) {
		gt.NoError(t, validDraft().Validate())
	})

	t.Run("missing descriptive field fails", func(t *testing.T) {
		d := validDraft()
		d.Asset = ""
		err := d.Validate()
		gt.Value(t, err).NotNil()
		gt.Error(t, err).Is(model.ErrMissingRequired)
	})

	t.Run("missing input fails", func(t *testing.T) {
		d := validDraft()
		d.Input = nil
		err := d.Validate()
		gt.Value(t, err).NotNil()
		gt.Error(t, err).Is(model.ErrMissingRequired)
	})

	t.Run("out of range probability fails", func(t *testing.T) {
		d := validDraft()
		d.Input = model.Qualitative{Probability: 6, Impact: 3}
		err := d.Validate()
		gt.Value(t, err).NotNil()
		gt.Error(t, err).Is(model.ErrInvalidInput)
	})

	t.Run("quantitative ranges enforced", func(t *testing.T) {
		d := validDraft()
		d.Input = model.Quantitative{Probability: 3, Impact: 3, VulnerabilitySeverity: 11}
		err := d.Validate()
		gt.Value(t, err).NotNil()
		gt.Error(t, err).Is(model.ErrInvalidInput)

		d.Input = model.Quantitative{Probability: 3, Impact: 3, ControlEffectiveness: 120}
		err = d.Validate()
		gt.Value(t, err).NotNil()
		gt.Error(t, err).Is(model.ErrInvalidInput)
	})
}

func TestQuantitativeNormalized(t *testing.T) {
	n := model.Quantitative{Probability: 2, Impact: 3}.Normalized()

	gt.Number(t, n.VulnerabilitySeverity).Equal(1)
	gt.Number(t, n.DetectionCapability).Equal(1)
	gt.Number(t, n.ResponseCapability).Equal(1)
	gt.Number(t, n.ConfidentialityImpact).Equal(1)
	gt.Number(t, n.IntegrityImpact).Equal(1)
	gt.Number(t, n.AvailabilityImpact).Equal(1)
	gt.Number(t, n.ControlEffectiveness).Equal(0)
}

func TestDraftAssessment(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("qualitative draft", func(t *testing.T) {
		a := validDraft().Assessment(now)

		gt.Value(t, a.Method).Equal(types.MethodQualitative)
		gt.Number(t, a.Probability).Equal(4)
		gt.Number(t, a.Impact).Equal(4)
		gt.Value(t, a.CreatedAt).Equal(now)
		gt.Number(t, a.InherentRisk).Equal(0) // derived fields are filled by the store
	})

	t.Run("quantitative draft carries normalized fields", func(t *testing.T) {
		d := validDraft()
		d.Input = model.Quantitative{Probability: 4, Impact: 3, ControlEffectiveness: 60}
		a := d.Assessment(now)

		gt.Value(t, a.Method).Equal(types.MethodQuantitative)
		gt.Number(t, a.VulnerabilitySeverity).Equal(1)
		gt.Number(t, a.ControlEffectiveness).Equal(60)
		gt.Number(t, a.DetectionCapability).Equal(1)
	})
}

func TestAssessmentClone(t *testing.T) {
	a := validDraft().Assessment(time.Now().UTC())
	a.ID = "abc"

	b := a.Clone()
	b.Name = "changed"

	gt.Value(t, a.Name).Equal("Exposed admin panel")
	gt.Value(t, b.ID).Equal(a.ID)
}
