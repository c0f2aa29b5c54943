package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/domain/interfaces"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/domain/types"
)

// Memory is an in-memory RemoteStore for development and tests. It mirrors
// the Firestore backend's semantics: random document IDs and newest-first
// ordering. Failures can be injected to exercise the store's degradation
// paths.
type Memory struct {
	mu          sync.RWMutex
	assessments map[types.AssessmentID]*model.Assessment

	failList   error
	failInsert error
}

var _ interfaces.RemoteStore = &Memory{}

func New() *Memory {
	return &Memory{
		assessments: make(map[types.AssessmentID]*model.Assessment),
	}
}

// FailWith injects errors returned by subsequent List and Insert calls.
// Pass nil to clear.
func (m *Memory) FailWith(listErr, insertErr error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failList = listErr
	m.failInsert = insertErr
}

func (m *Memory) List(ctx context.Context) ([]*model.Assessment, error) {
	return m.list(ctx, "")
}

func (m *Memory) ListByMethod(ctx context.Context, method types.Method) ([]*model.Assessment, error) {
	return m.list(ctx, method)
}

func (m *Memory) list(_ context.Context, method types.Method) ([]*model.Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failList != nil {
		return nil, goerr.Wrap(m.failList, "failed to list assessments")
	}

	assessments := make([]*model.Assessment, 0, len(m.assessments))
	for _, a := range m.assessments {
		if method != "" && a.Method != method {
			continue
		}
		assessments = append(assessments, a.Clone())
	}

	sort.Slice(assessments, func(i, j int) bool {
		return assessments[i].CreatedAt.After(assessments[j].CreatedAt)
	})

	return assessments, nil
}

func (m *Memory) Insert(_ context.Context, assessment *model.Assessment) (types.AssessmentID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failInsert != nil {
		return "", goerr.Wrap(m.failInsert, "failed to insert assessment")
	}

	id := types.AssessmentID(uuid.NewString())
	stored := assessment.Clone()
	stored.ID = id
	stored.Slot = ""
	m.assessments[id] = stored

	return id, nil
}

func (m *Memory) Close() error {
	return nil
}
