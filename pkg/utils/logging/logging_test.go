package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
)

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)
	logger.Info("hello", "asset", "db")

	gt.Value(t, strings.Contains(buf.String(), `"asset":"db"`)).Equal(true)
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelWarn, logging.FormatJSON)
	logger.Info("dropped")

	gt.Value(t, buf.String()).Equal("")
}

func TestContextPropagation(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, slog.LevelInfo, logging.FormatJSON)

	ctx := logging.With(context.Background(), logger)
	logging.From(ctx).Info("via context")

	gt.Value(t, strings.Contains(buf.String(), "via context")).Equal(true)
}

func TestFromFallsBackToDefault(t *testing.T) {
	gt.Value(t, logging.From(context.Background())).Equal(logging.Default())
}
