package cache_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskcalc/pkg/cache"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
)

func cachePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), cache.DefaultFileName)
}

func TestLoadMissingFile(t *testing.T) {
	c := cache.New(cachePath(t))

	assessments, err := c.Load(context.Background())
	gt.NoError(t, err)
	gt.Number(t, len(assessments)).Equal(0)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := cache.New(cachePath(t))
	ctx := context.Background()

	created := time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC)
	in := []*model.Assessment{
		{
			ID:           "1741944600000000000",
			Slot:         types.NewSlotID(),
			Name:         "Phishing campaign",
			Asset:        "Mail gateway",
			Method:       types.MethodQualitative,
			Probability:  4,
			Impact:       3,
			InherentRisk: 12,
			ResidualRisk: 12,
			RiskLevel:    types.RiskLevelMedium,
			CreatedAt:    created,
		},
	}

	gt.NoError(t, c.Save(ctx, in))

	out, err := c.Load(ctx)
	gt.NoError(t, err).Required()
	gt.Number(t, len(out)).Equal(1)
	gt.Value(t, out[0].Name).Equal("Phishing campaign")
	gt.Value(t, out[0].ID).Equal(in[0].ID)
	gt.Value(t, out[0].RiskLevel).Equal(types.RiskLevelMedium)
	// Serialized timestamps convert back to the canonical temporal type.
	gt.Value(t, out[0].CreatedAt.Equal(created)).Equal(true)
}

func TestSaveReplacesWholeCollection(t *testing.T) {
	c := cache.New(cachePath(t))
	ctx := context.Background()

	gt.NoError(t, c.Save(ctx, []*model.Assessment{{Name: "first"}, {Name: "second"}}))
	gt.NoError(t, c.Save(ctx, []*model.Assessment{{Name: "only"}}))

	out, err := c.Load(ctx)
	gt.NoError(t, err).Required()
	gt.Number(t, len(out)).Equal(1)
	gt.Value(t, out[0].Name).Equal("only")
}

func TestCorruptCacheReadsAsEmpty(t *testing.T) {
	path := cachePath(t)
	gt.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	c := cache.New(path)
	out, err := c.Load(context.Background())
	gt.NoError(t, err)
	gt.Number(t, len(out)).Equal(0)
}

func TestSaveNilWritesEmptyCollection(t *testing.T) {
	c := cache.New(cachePath(t))
	ctx := context.Background()

	gt.NoError(t, c.Save(ctx, nil))

	out, err := c.Load(ctx)
	gt.NoError(t, err)
	gt.Number(t, len(out)).Equal(0)
}
