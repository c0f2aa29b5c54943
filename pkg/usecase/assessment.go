package usecase

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/secmon-lab/riskcalc/pkg/domain/interfaces"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
	"github.com/secmon-lab/riskcalc/pkg/scoring"
	"github.com/secmon-lab/riskcalc/pkg/utils/async"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
)

// Advisory messages surfaced to the presentation layer. None of them is
// fatal; the store always yields a best-effort collection.
const (
	adviceCacheOnly        = "remote store is not configured; assessments are kept on this device only"
	adviceLoadPermission   = "remote store denied access; showing locally cached assessments"
	adviceLoadUnavailable  = "remote store is unreachable; showing locally cached assessments"
	adviceWritePermission  = "remote store denied access; the assessment was saved locally only"
	adviceWriteUnavailable = "remote store is unreachable; the assessment was saved locally only"
)

// AssessmentUseCase owns the in-memory assessment collection and mediates
// between the remote document store and the local cache. The remote is
// preferred and authoritative when reachable; the cache keeps the
// application usable when it is not.
//
// Known gap: a record whose remote write failed stays in cache and memory
// under its local ID with no retry queue. If the process ends before the
// next successful remote write, that record never reaches the remote store.
type AssessmentUseCase struct {
	remote   interfaces.RemoteStore
	cache    interfaces.Cache
	reporter interfaces.Reporter
	clock    func() time.Time

	mu          sync.RWMutex
	assessments []*model.Assessment
	advisory    string

	loadGroup singleflight.Group
}

func NewAssessmentUseCase(remote interfaces.RemoteStore, cache interfaces.Cache, reporter interfaces.Reporter, clock func() time.Time) *AssessmentUseCase {
	return &AssessmentUseCase{
		remote:   remote,
		cache:    cache,
		reporter: reporter,
		clock:    clock,
	}
}

// Assessments returns a copy of the collection, newest first.
func (uc *AssessmentUseCase) Assessments() []*model.Assessment {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return cloneAll(uc.assessments)
}

// Advisory returns the current non-fatal condition, if any.
func (uc *AssessmentUseCase) Advisory() (string, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.advisory, uc.advisory != ""
}

// Load populates the collection: cache first so callers always have data,
// then the remote store, which replaces both the collection and the cache
// when reachable. Load never fails outward; every path resolves to a
// best-effort collection. Overlapping calls are collapsed into one.
func (uc *AssessmentUseCase) Load(ctx context.Context) []*model.Assessment {
	v, _, _ := uc.loadGroup.Do("load", func() (any, error) {
		return uc.load(ctx), nil
	})
	return v.([]*model.Assessment)
}

func (uc *AssessmentUseCase) load(ctx context.Context) []*model.Assessment {
	cached, err := uc.cache.Load(ctx)
	if err != nil {
		// Cache faults never propagate; start from an empty collection.
		logging.From(ctx).Warn("failed to load assessment cache", "error", err.Error())
		cached = nil
	}

	uc.mu.Lock()
	uc.assessments = cached
	uc.mu.Unlock()

	if uc.remote == nil {
		uc.setAdvisory(adviceCacheOnly)
		uc.breadcrumb(ctx, "load", "remote store not configured, cache-only mode", nil)
		return cloneAll(cached)
	}

	listed, err := uc.remote.List(ctx)
	if err != nil {
		if isPermissionDenied(err) {
			uc.setAdvisory(adviceLoadPermission)
			uc.reportMessage(ctx, interfaces.ReportLevelWarning, "assessment load denied by remote store")
		} else {
			uc.setAdvisory(adviceLoadUnavailable)
			uc.reportError(ctx, err, map[string]string{"operation": "load"})
		}
		logging.From(ctx).Warn("remote load failed, keeping cached assessments",
			"error", err.Error(),
			"cached", len(cached),
		)
		return cloneAll(cached)
	}

	// Remote is authoritative once reachable: replace memory and cache.
	uc.mu.Lock()
	uc.assessments = listed
	uc.advisory = ""
	uc.mu.Unlock()

	if err := uc.cache.Save(ctx, listed); err != nil {
		logging.From(ctx).Warn("failed to sync cache after remote load", "error", err.Error())
	}

	uc.breadcrumb(ctx, "load", "assessments loaded from remote store", map[string]any{"count": len(listed)})
	return cloneAll(listed)
}

// Add scores the draft and persists it: the record is prepended to the
// collection and written to the cache before any remote I/O, so callers see
// it immediately. A failed remote write is treated as succeeded-locally and
// is never rolled back. Add is not idempotent: every call is a new
// evaluation event.
//
// The draft must already be validated (Draft.Validate); the scoring engine
// does not clamp.
func (uc *AssessmentUseCase) Add(ctx context.Context, draft *model.Draft) *model.Assessment {
	record := draft.Assessment(uc.clock())
	scoring.Score(draft.Input).Apply(record)
	record.ID = types.NewLocalAssessmentID()
	record.Slot = types.NewSlotID()

	uc.mu.Lock()
	uc.assessments = append([]*model.Assessment{record}, uc.assessments...)
	snapshot := cloneAll(uc.assessments)
	uc.mu.Unlock()

	uc.saveCache(ctx, snapshot)

	if uc.remote == nil {
		uc.setAdvisory(adviceCacheOnly)
		uc.breadcrumb(ctx, "add", "assessment saved in cache-only mode", map[string]any{"id": record.ID.String()})
		return record.Clone()
	}

	remoteID, err := uc.remote.Insert(ctx, record)
	if err != nil {
		if isPermissionDenied(err) {
			uc.setAdvisory(adviceWritePermission)
			uc.reportMessage(ctx, interfaces.ReportLevelWarning, "assessment write denied by remote store")
		} else {
			uc.setAdvisory(adviceWriteUnavailable)
			uc.reportError(ctx, err, map[string]string{"operation": "add"})
		}
		logging.From(ctx).Warn("remote write failed, assessment kept locally",
			"error", err.Error(),
			"id", record.ID.String(),
		)
		return record.Clone()
	}

	// Swap the temporary local ID for the remote one. The record is found by
	// its slot, not by ID equality, so records created in the same clock
	// tick cannot collide.
	committed := record.Clone()
	committed.ID = remoteID

	uc.mu.Lock()
	for i, a := range uc.assessments {
		if a.Slot == record.Slot {
			uc.assessments[i] = committed
			break
		}
	}
	uc.advisory = ""
	snapshot = cloneAll(uc.assessments)
	uc.mu.Unlock()

	uc.saveCache(ctx, snapshot)

	uc.breadcrumb(ctx, "add", "assessment persisted to remote store", map[string]any{"id": remoteID.String()})
	return committed.Clone()
}

// SearchByMethod returns assessments of one scoring method, newest first.
// The remote store is queried when configured; any failure falls back to
// filtering the in-memory collection.
func (uc *AssessmentUseCase) SearchByMethod(ctx context.Context, method types.Method) []*model.Assessment {
	if uc.remote != nil {
		listed, err := uc.remote.ListByMethod(ctx, method)
		if err == nil {
			return listed
		}
		logging.From(ctx).Warn("remote search failed, filtering local collection",
			"method", method.String(),
			"error", err.Error(),
		)
	}

	uc.mu.RLock()
	defer uc.mu.RUnlock()

	var matched []*model.Assessment
	for _, a := range uc.assessments {
		if a.Method == method {
			matched = append(matched, a.Clone())
		}
	}
	return matched
}

func (uc *AssessmentUseCase) saveCache(ctx context.Context, assessments []*model.Assessment) {
	if err := uc.cache.Save(ctx, assessments); err != nil {
		logging.From(ctx).Warn("failed to write assessment cache", "error", err.Error())
		uc.reportError(ctx, err, map[string]string{"operation": "cache-save"})
	}
}

func (uc *AssessmentUseCase) setAdvisory(msg string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.advisory = msg
}

// Reporter calls are fire-and-forget: dispatched off the request path and
// never allowed to affect functional behavior.
func (uc *AssessmentUseCase) reportError(ctx context.Context, err error, tags map[string]string) {
	reporter := uc.reporter
	async.Dispatch(ctx, func(ctx context.Context) error {
		reporter.ReportError(ctx, err, tags)
		return nil
	})
}

func (uc *AssessmentUseCase) reportMessage(ctx context.Context, level interfaces.ReportLevel, msg string) {
	reporter := uc.reporter
	async.Dispatch(ctx, func(ctx context.Context) error {
		reporter.ReportMessage(ctx, level, msg)
		return nil
	})
}

func (uc *AssessmentUseCase) breadcrumb(ctx context.Context, category, msg string, data map[string]any) {
	uc.reporter.AddBreadcrumb(ctx, category, msg, data)
}

func isPermissionDenied(err error) bool {
	return status.Code(err) == codes.PermissionDenied
}

func cloneAll(assessments []*model.Assessment) []*model.Assessment {
	cloned := make([]*model.Assessment, len(assessments))
	for i, a := range assessments {
		cloned[i] = a.Clone()
	}
	return cloned
}
