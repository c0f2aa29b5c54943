// Package cache provides the local durable fallback for the assessment
// collection: a single well-known file holding the whole serialized
// collection, replaced atomically on every write.
package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/domain/interfaces"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
)

// DefaultFileName is the well-known cache key for the assessment collection.
const DefaultFileName = "assessments.json"

// FileCache stores the collection as a JSON file. Writes go through a
// temporary file and rename, so readers never observe a partial write.
type FileCache struct {
	path string
}

var _ interfaces.Cache = &FileCache{}

func New(path string) *FileCache {
	return &FileCache{path: path}
}

// Path returns the cache file location.
func (c *FileCache) Path() string {
	return c.path
}

// Load reads the cached collection. A missing file reads as empty. An
// unparsable file is treated as cache-empty with a warning: corruption must
// never abort a load.
func (c *FileCache) Load(ctx context.Context) ([]*model.Assessment, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to read cache file", goerr.V("path", c.path))
	}

	var assessments []*model.Assessment
	if err := json.Unmarshal(data, &assessments); err != nil {
		logging.From(ctx).Warn("cache file is unparsable, treating as empty",
			"path", c.path,
			"error", err.Error(),
		)
		return nil, nil
	}

	return assessments, nil
}

// Save replaces the cached collection.
func (c *FileCache) Save(_ context.Context, assessments []*model.Assessment) error {
	if assessments == nil {
		assessments = []*model.Assessment{}
	}
	data, err := json.Marshal(assessments)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal assessments")
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return goerr.Wrap(err, "failed to create cache directory", goerr.V("dir", dir))
	}

	tmp, err := os.CreateTemp(dir, ".assessments-*.json")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary cache file", goerr.V("dir", dir))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return goerr.Wrap(err, "failed to write cache file", goerr.V("path", tmpName))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return goerr.Wrap(err, "failed to close cache file", goerr.V("path", tmpName))
	}

	if err := os.Rename(tmpName, c.path); err != nil {
		_ = os.Remove(tmpName)
		return goerr.Wrap(err, "failed to replace cache file", goerr.V("path", c.path))
	}

	return nil
}
