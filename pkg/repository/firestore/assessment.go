package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
	"google.golang.org/api/iterator"
)

type assessmentDocument struct {
	Name          string `firestore:"name"`
	Asset         string `firestore:"asset"`
	Description   string `firestore:"description"`
	Threat        string `firestore:"threat"`
	Vulnerability string `firestore:"vulnerability"`
	Method        string `firestore:"method"`

	Probability           int     `firestore:"probability"`
	Impact                int     `firestore:"impact"`
	VulnerabilitySeverity float64 `firestore:"vulnerability_severity"`
	ControlEffectiveness  float64 `firestore:"control_effectiveness"`
	DetectionCapability   int     `firestore:"detection_capability"`
	ResponseCapability    int     `firestore:"response_capability"`
	ConfidentialityImpact int     `firestore:"confidentiality_impact"`
	IntegrityImpact       int     `firestore:"integrity_impact"`
	AvailabilityImpact    int     `firestore:"availability_impact"`

	ExistingControls string `firestore:"existing_controls"`
	ProposedControls string `firestore:"proposed_controls"`

	InherentRisk float64 `firestore:"inherent_risk"`
	ResidualRisk float64 `firestore:"residual_risk"`
	RiskLevel    string  `firestore:"risk_level"`

	CreatedAt time.Time `firestore:"created_at"`
}

func toDocument(a *model.Assessment) *assessmentDocument {
	return &assessmentDocument{
		Name:                  a.Name,
		Asset:                 a.Asset,
		Description:           a.Description,
		Threat:                a.Threat,
		Vulnerability:         a.Vulnerability,
		Method:                a.Method.String(),
		Probability:           a.Probability,
		Impact:                a.Impact,
		VulnerabilitySeverity: a.VulnerabilitySeverity,
		ControlEffectiveness:  a.ControlEffectiveness,
		DetectionCapability:   a.DetectionCapability,
		ResponseCapability:    a.ResponseCapability,
		ConfidentialityImpact: a.ConfidentialityImpact,
		IntegrityImpact:       a.IntegrityImpact,
		AvailabilityImpact:    a.AvailabilityImpact,
		ExistingControls:      a.ExistingControls,
		ProposedControls:      a.ProposedControls,
		InherentRisk:          a.InherentRisk,
		ResidualRisk:          a.ResidualRisk,
		RiskLevel:             a.RiskLevel.String(),
		CreatedAt:             a.CreatedAt.UTC(),
	}
}

func (d *assessmentDocument) toModel(id string) *model.Assessment {
	return &model.Assessment{
		ID:                    types.AssessmentID(id),
		Name:                  d.Name,
		Asset:                 d.Asset,
		Description:           d.Description,
		Threat:                d.Threat,
		Vulnerability:         d.Vulnerability,
		Method:                types.Method(d.Method),
		Probability:           d.Probability,
		Impact:                d.Impact,
		VulnerabilitySeverity: d.VulnerabilitySeverity,
		ControlEffectiveness:  d.ControlEffectiveness,
		DetectionCapability:   d.DetectionCapability,
		ResponseCapability:    d.ResponseCapability,
		ConfidentialityImpact: d.ConfidentialityImpact,
		IntegrityImpact:       d.IntegrityImpact,
		AvailabilityImpact:    d.AvailabilityImpact,
		ExistingControls:      d.ExistingControls,
		ProposedControls:      d.ProposedControls,
		InherentRisk:          d.InherentRisk,
		ResidualRisk:          d.ResidualRisk,
		RiskLevel:             types.RiskLevel(d.RiskLevel),
		CreatedAt:             d.CreatedAt,
	}
}

// List returns all assessments ordered by creation time, newest first.
func (f *Firestore) List(ctx context.Context) ([]*model.Assessment, error) {
	query := f.client.Collection(f.collection()).
		OrderBy("created_at", firestore.Desc)
	return f.runQuery(ctx, query)
}

// ListByMethod returns assessments of one scoring method, newest first.
// Requires the composite index managed by the migrate command.
func (f *Firestore) ListByMethod(ctx context.Context, method types.Method) ([]*model.Assessment, error) {
	query := f.client.Collection(f.collection()).
		Where("method", "==", method.String()).
		OrderBy("created_at", firestore.Desc)
	return f.runQuery(ctx, query)
}

func (f *Firestore) runQuery(ctx context.Context, query firestore.Query) ([]*model.Assessment, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var assessments []*model.Assessment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessments")
		}

		var d assessmentDocument
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", doc.Ref.ID))
		}

		assessments = append(assessments, d.toModel(doc.Ref.ID))
	}

	return assessments, nil
}

// Insert persists a record and returns the Firestore-assigned document ID.
// The local ID and slot are intentionally not stored; the document ID is the
// identity once the remote write succeeds.
func (f *Firestore) Insert(ctx context.Context, assessment *model.Assessment) (types.AssessmentID, error) {
	docRef := f.client.Collection(f.collection()).NewDoc()
	if _, err := docRef.Set(ctx, toDocument(assessment)); err != nil {
		return "", goerr.Wrap(err, "failed to insert assessment", goerr.V("name", assessment.Name))
	}

	return types.AssessmentID(docRef.ID), nil
}
