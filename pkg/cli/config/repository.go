package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcalc/pkg/cache"
	"github.com/secmon-lab/riskcalc/pkg/domain/interfaces"
	"github.com/secmon-lab/riskcalc/pkg/repository/firestore"
	"github.com/secmon-lab/riskcalc/pkg/repository/memory"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for remote store and cache configuration
type Repository struct {
	backend          string
	projectID        string
	databaseID       string
	collectionPrefix string
	cachePath        string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Remote store backend (firestore, memory or none)",
			Value:       "firestore",
			Sources:     cli.EnvVars("RISKCALC_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Sources:     cli.EnvVars("RISKCALC_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Sources:     cli.EnvVars("RISKCALC_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "collection-prefix",
			Usage:       "Prefix for Firestore collection names",
			Sources:     cli.EnvVars("RISKCALC_COLLECTION_PREFIX"),
			Destination: &r.collectionPrefix,
		},
		&cli.StringFlag{
			Name:        "cache-path",
			Usage:       "Path of the local assessment cache file (defaults to the user cache dir)",
			Sources:     cli.EnvVars("RISKCALC_CACHE_PATH"),
			Destination: &r.cachePath,
		},
	}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// Configure initializes the remote store for the configured backend. The
// "none" backend returns nil: the application then runs in cache-only mode.
// The caller is responsible for calling Close() on a non-nil store.
func (r *Repository) Configure(ctx context.Context) (interfaces.RemoteStore, error) {
	switch r.backend {
	case "firestore":
		if r.projectID == "" {
			return nil, goerr.New("firestore-project-id is required when using firestore backend")
		}
		var opts []firestore.Option
		if r.collectionPrefix != "" {
			opts = append(opts, firestore.WithCollectionPrefix(r.collectionPrefix))
		}
		store, err := firestore.New(ctx, r.projectID, r.databaseID, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore store")
		}
		logging.Default().Info("Using Firestore remote store",
			"project_id", r.projectID,
			"database_id", r.databaseID,
			"collection_prefix", r.collectionPrefix,
		)
		return store, nil

	case "memory":
		logging.Default().Info("Using in-memory remote store (development mode)")
		return memory.New(), nil

	case "none":
		logging.Default().Warn("Remote store disabled, assessments are kept locally only")
		return nil, nil

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", r.backend))
	}
}

// ConfigureCache builds the local file cache. When no path is given the
// cache lands under the user cache directory.
func (r *Repository) ConfigureCache() (*cache.FileCache, error) {
	path := r.cachePath
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to resolve user cache dir")
		}
		path = filepath.Join(dir, "riskcalc", cache.DefaultFileName)
	}
	return cache.New(path), nil
}
