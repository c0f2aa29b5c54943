package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// AppConfig represents the optional application configuration file
type AppConfig struct {
	Organization     string `toml:"organization"`
	CollectionPrefix string `toml:"collection_prefix"`
	CachePath        string `toml:"cache_path"`
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if a.Organization == "" {
		return goerr.New("organization is required in app configuration")
	}
	return nil
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read app configuration", goerr.V("path", path))
	}

	var cfg AppConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse app configuration", goerr.V("path", path))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// App holds the CLI flag pointing at the configuration file
type App struct {
	path string
}

// Flags returns CLI flags for the app configuration file
func (a *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to the application configuration file (TOML)",
			Sources:     cli.EnvVars("RISKCALC_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Configure loads the configuration file when one was given. Returns nil
// without error when no file is configured.
func (a *App) Configure() (*AppConfig, error) {
	if a.path == "" {
		return nil, nil
	}
	return LoadAppConfiguration(a.path)
}

// Apply overlays file-based defaults onto flag-based repository settings.
// Explicit flags win over the configuration file.
func (a *AppConfig) Apply(repo *Repository) {
	if repo.collectionPrefix == "" {
		repo.collectionPrefix = a.CollectionPrefix
	}
	if repo.cachePath == "" {
		repo.cachePath = a.CachePath
	}
}
