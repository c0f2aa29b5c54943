package interfaces

import (
	"context"

	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
)

// RemoteStore is the remote document store holding the authoritative
// assessment collection. Implementations must distinguish permission-denied
// failures (grpc codes.PermissionDenied) from other errors so the store can
// degrade instead of failing.
type RemoteStore interface {
	// List returns all assessments ordered by creation time, newest first.
	List(ctx context.Context) ([]*model.Assessment, error)

	// ListByMethod returns assessments of one scoring method, newest first.
	ListByMethod(ctx context.Context, method types.Method) ([]*model.Assessment, error)

	// Insert persists a record and returns the store-assigned identifier.
	Insert(ctx context.Context, assessment *model.Assessment) (types.AssessmentID, error)

	Close() error
}
