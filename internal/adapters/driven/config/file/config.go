// Package file loads convertd settings from a TOML file.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application settings. Every field has a working
// default so a missing config file yields a usable local-only setup.
type Config struct {
	Output  OutputConfig  `toml:"output"`
	Publish PublishConfig `toml:"publish"`
}

// OutputConfig controls where converted artifacts are staged and how
// their download URLs are built.
type OutputConfig struct {
	// Dir is the local directory converted files are moved into.
	Dir string `toml:"dir"`
	// BaseURL is the public prefix under which files in Dir are served.
	BaseURL string `toml:"base_url"`
}

// PublishConfig configures the optional SFTP upload of artifacts.
// Publishing is enabled when Host is non-empty.
type PublishConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	User      string `toml:"user"`
	Password  string `toml:"password"`
	RemoteDir string `toml:"remote_dir"`
}

// Enabled reports whether artifacts should be uploaded.
func (p PublishConfig) Enabled() bool {
	return p.Host != ""
}

// DefaultPath returns ~/.convertd/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".convertd", "config.toml"), nil
}

// Default returns the built-in settings: artifacts staged under the
// user's home and served from localhost.
func Default() Config {
	dir := "convertd-output"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".convertd", "output")
	}
	return Config{
		Output: OutputConfig{
			Dir:     dir,
			BaseURL: "http://localhost:8000/files",
		},
		Publish: PublishConfig{Port: 22},
	}
}

// Load reads the config file at path, layered over the defaults. A
// missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Publish.Port == 0 {
		cfg.Publish.Port = 22
	}
	return cfg, nil
}
