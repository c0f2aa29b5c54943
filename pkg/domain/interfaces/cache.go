package interfaces

import (
	"context"

	"github.com/secmon-lab/riskcalc/pkg/domain/model"
)

// Cache is the local durable fallback for the assessment collection. Writes
// always replace the whole collection, so partial-update races cannot occur.
// A missing or unparsable cache reads as empty and never returns an error
// that should abort a load.
type Cache interface {
	Load(ctx context.Context) ([]*model.Assessment, error)
	Save(ctx context.Context, assessments []*model.Assessment) error
}
