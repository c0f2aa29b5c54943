package cli

import (
	"testing"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/gt"
)

func TestGetIndexConfig(t *testing.T) {
	cfg := getIndexConfig("")
	gt.Number(t, len(cfg.Collections)).Equal(1)
	gt.Value(t, cfg.Collections[0].Name).Equal("risk_assessments")

	indexes := cfg.Collections[0].Indexes
	gt.Number(t, len(indexes)).Equal(1)
	gt.Number(t, len(indexes[0].Fields)).Equal(2)
	gt.Value(t, indexes[0].Fields[0].Path).Equal("method")
	gt.Value(t, indexes[0].Fields[0].Order).Equal(fireconf.OrderAscending)
	gt.Value(t, indexes[0].Fields[1].Path).Equal("created_at")
	gt.Value(t, indexes[0].Fields[1].Order).Equal(fireconf.OrderDescending)
}

func TestGetIndexConfigWithPrefix(t *testing.T) {
	cfg := getIndexConfig("staging")
	gt.Value(t, cfg.Collections[0].Name).Equal("staging_risk_assessments")
}
