package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pixelgraph/pkg/errors"
	"github.com/matzehuels/pixelgraph/pkg/plugin/imageplugin"
)

// Config holds flag defaults read from the config file. Explicit flags win
// over the file, and the file wins over the built-in defaults.
//
//	verbose = false
//
//	[export]
//	property = "viewSelection"
//
//	[import]
//	type = "Boolean"
//	name = "data"
//	radius = 0.0
//	neighborhood = "Circular"
type Config struct {
	Verbose bool         `toml:"verbose"`
	Export  ExportConfig `toml:"export"`
	Import  ImportConfig `toml:"import"`
}

// ExportConfig holds defaults for the export, load-mask and nodelink commands.
type ExportConfig struct {
	Property string `toml:"property"`
}

// ImportConfig holds defaults for the import command.
type ImportConfig struct {
	Type         string  `toml:"type"`
	Name         string  `toml:"name"`
	Radius       float64 `toml:"radius"`
	Neighborhood string  `toml:"neighborhood"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Export: ExportConfig{Property: imageplugin.DefaultSelection},
		Import: ImportConfig{
			Type:         imageplugin.PropertyTypeColor,
			Name:         "data",
			Neighborhood: "Circular",
		},
	}
}

// configFile returns the default config path using XDG standard
// (~/.config/pixelgraph/config.toml).
func configFile() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads path over the built-in defaults. An empty path means the
// default location, which may be absent; an explicit path must exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		var err error
		if path, err = configFile(); err != nil {
			return cfg, nil
		}
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "config file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config file %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}
