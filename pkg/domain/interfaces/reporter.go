package interfaces

import "context"

// ReportLevel is the severity of a diagnostic message.
type ReportLevel string

const (
	ReportLevelInfo    ReportLevel = "info"
	ReportLevelWarning ReportLevel = "warning"
	ReportLevelError   ReportLevel = "error"
)

// Reporter is the fire-and-forget error-observability collaborator.
// Implementations must never affect functional behavior; a no-op reporter
// is always a valid substitute.
type Reporter interface {
	ReportError(ctx context.Context, err error, tags map[string]string)
	ReportMessage(ctx context.Context, level ReportLevel, msg string)
	AddBreadcrumb(ctx context.Context, category, msg string, data map[string]any)
}
