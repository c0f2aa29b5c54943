package cli

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
)

func TestWriteExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	assessments := []*model.Assessment{
		{
			Name:         "Phishing campaign",
			Asset:        "Mail gateway",
			Probability:  3,
			Impact:       4,
			InherentRisk: 12,
			ResidualRisk: 12,
			RiskLevel:    types.RiskLevelMedium,
			CreatedAt:    time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		},
	}

	gt.NoError(t, writeExport(context.Background(), path, assessments)).Required()

	data, err := os.ReadFile(path)
	gt.NoError(t, err).Required()

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	gt.NoError(t, err).Required()
	gt.Number(t, len(rows)).Equal(2)
	gt.Value(t, rows[1][0]).Equal("Phishing campaign")
}

func TestWriteExportRejectsBadBucketURL(t *testing.T) {
	err := writeExport(context.Background(), "gs://bucket-only", nil)
	gt.Error(t, err)
}
