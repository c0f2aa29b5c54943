package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskcalc/pkg/domain/interfaces"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
	"github.com/secmon-lab/riskcalc/pkg/repository/firestore"
	"github.com/secmon-lab/riskcalc/pkg/repository/memory"
	"github.com/secmon-lab/riskcalc/pkg/scoring"
)

func newAssessment(name string, input model.Input, createdAt time.Time) *model.Assessment {
	d := &model.Draft{
		Name:          name,
		Asset:         "payment gateway",
		Description:   "third-party dependency with known CVEs",
		Threat:        "supply chain compromise",
		Vulnerability: "outdated library versions",
		Input:         input,
	}
	a := d.Assessment(createdAt)
	scoring.Score(input).Apply(a)
	return a
}

func runRemoteStoreTest(t *testing.T, newStore func(t *testing.T) interfaces.RemoteStore) {
	t.Helper()

	t.Run("Insert assigns a non-empty identifier", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		id, err := store.Insert(ctx, newAssessment("risk-a", model.Qualitative{Probability: 3, Impact: 4}, time.Now().UTC()))
		gt.NoError(t, err).Required()
		gt.Value(t, id.String()).NotEqual("")
	})

	t.Run("List returns newest first", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		base := time.Now().UTC().Add(-time.Hour)

		_, err := store.Insert(ctx, newAssessment("older", model.Qualitative{Probability: 2, Impact: 2}, base))
		gt.NoError(t, err).Required()
		_, err = store.Insert(ctx, newAssessment("newer", model.Qualitative{Probability: 3, Impact: 3}, base.Add(10*time.Minute)))
		gt.NoError(t, err).Required()

		listed, err := store.List(ctx)
		gt.NoError(t, err).Required()
		gt.Number(t, len(listed)).Equal(2)
		gt.Value(t, listed[0].Name).Equal("newer")
		gt.Value(t, listed[1].Name).Equal("older")
		gt.Value(t, listed[0].ID.String()).NotEqual("")
	})

	t.Run("List round-trips scoring fields", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()

		in := model.Quantitative{
			Probability:           4,
			Impact:                4,
			VulnerabilitySeverity: 7.5,
			ControlEffectiveness:  60,
			DetectionCapability:   3,
			ResponseCapability:    2,
			ConfidentialityImpact: 3,
			IntegrityImpact:       4,
			AvailabilityImpact:    5,
		}
		_, err := store.Insert(ctx, newAssessment("quant", in, time.Now().UTC()))
		gt.NoError(t, err).Required()

		listed, err := store.List(ctx)
		gt.NoError(t, err).Required()
		gt.Number(t, len(listed)).Equal(1)

		got := listed[0]
		gt.Value(t, got.Method).Equal(types.MethodQuantitative)
		gt.Number(t, got.VulnerabilitySeverity).Equal(7.5)
		gt.Number(t, got.InherentRisk).Equal(12.0)
		gt.Value(t, got.RiskLevel).Equal(types.RiskLevelVeryLow)
		gt.Value(t, got.RiskLevel).Equal(types.LevelOf(got.ResidualRisk))
	})

	t.Run("ListByMethod filters while keeping order", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		base := time.Now().UTC().Add(-time.Hour)

		_, err := store.Insert(ctx, newAssessment("qual-old", model.Qualitative{Probability: 2, Impact: 3}, base))
		gt.NoError(t, err).Required()
		_, err = store.Insert(ctx, newAssessment("quant", model.Quantitative{Probability: 3, Impact: 3}, base.Add(5*time.Minute)))
		gt.NoError(t, err).Required()
		_, err = store.Insert(ctx, newAssessment("qual-new", model.Qualitative{Probability: 4, Impact: 4}, base.Add(10*time.Minute)))
		gt.NoError(t, err).Required()

		listed, err := store.ListByMethod(ctx, types.MethodQualitative)
		gt.NoError(t, err).Required()
		gt.Number(t, len(listed)).Equal(2)
		gt.Value(t, listed[0].Name).Equal("qual-new")
		gt.Value(t, listed[1].Name).Equal("qual-old")
	})

	t.Run("identical inserts produce distinct records", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		now := time.Now().UTC()

		a := newAssessment("dup", model.Qualitative{Probability: 3, Impact: 3}, now)
		id1, err := store.Insert(ctx, a)
		gt.NoError(t, err).Required()
		id2, err := store.Insert(ctx, a)
		gt.NoError(t, err).Required()

		gt.Value(t, id1).NotEqual(id2)

		listed, err := store.List(ctx)
		gt.NoError(t, err).Required()
		gt.Number(t, len(listed)).Equal(2)
	})
}

func newFirestoreStore(t *testing.T) interfaces.RemoteStore {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	ctx := context.Background()
	prefix := fmt.Sprintf("test_%d", time.Now().UnixNano())
	store, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix(prefix))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close firestore store: %v", err)
		}
	})
	return store
}

func TestMemoryRemoteStore(t *testing.T) {
	runRemoteStoreTest(t, func(t *testing.T) interfaces.RemoteStore {
		return memory.New()
	})
}

func TestFirestoreRemoteStore(t *testing.T) {
	runRemoteStoreTest(t, newFirestoreStore)
}
