package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestLoadAppConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riskcalc.toml")
	body := `
organization = "Acme Corp"
collection_prefix = "acme_"
cache_path = "/var/cache/riskcalc/assessments.json"
`
	gt.NoError(t, os.WriteFile(path, []byte(body), 0600)).Required()

	cfg, err := LoadAppConfiguration(path)
	gt.NoError(t, err).Required()
	gt.Value(t, cfg.Organization).Equal("Acme Corp")
	gt.Value(t, cfg.CollectionPrefix).Equal("acme_")
	gt.Value(t, cfg.CachePath).Equal("/var/cache/riskcalc/assessments.json")
}

func TestLoadAppConfigurationRequiresOrganization(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riskcalc.toml")
	gt.NoError(t, os.WriteFile(path, []byte(`collection_prefix = "x_"`), 0600)).Required()

	_, err := LoadAppConfiguration(path)
	gt.Error(t, err)
}

func TestLoadAppConfigurationMissingFile(t *testing.T) {
	_, err := LoadAppConfiguration(filepath.Join(t.TempDir(), "missing.toml"))
	gt.Error(t, err)
}

func TestAppConfigApplyKeepsExplicitFlags(t *testing.T) {
	cfg := &AppConfig{
		Organization:     "Acme Corp",
		CollectionPrefix: "from_file_",
		CachePath:        "/from/file.json",
	}

	repo := &Repository{collectionPrefix: "from_flag_"}
	cfg.Apply(repo)

	gt.Value(t, repo.collectionPrefix).Equal("from_flag_")
	gt.Value(t, repo.cachePath).Equal("/from/file.json")
}
