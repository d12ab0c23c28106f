// Package config resolves runtime settings from defaults, an optional YAML
// file, IFCHESS_* environment variables and command-line flags. Remembered
// preferences fill whatever none of those chose.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/immadshahid/ifchess/internal/board"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "IFCHESS_"

// Config holds every runtime setting.
type Config struct {
	Strict       bool   `yaml:"strict"`        // reject own-piece captures
	Unicode      bool   `yaml:"unicode"`       // figurines instead of letters
	StartFEN     string `yaml:"start_fen"`     // empty means the standard position
	Snapshot     string `yaml:"snapshot"`      // PNG path rewritten after each move
	SnapshotSize int    `yaml:"snapshot_size"` // square size in pixels
	DataDir      string `yaml:"data_dir"`      // empty means the platform default
	NoStats      bool   `yaml:"no_stats"`
	Verbose      bool   `yaml:"verbose"`

	chosen chosen
}

// chosen records which remembered settings a file, env var or flag set
// explicitly. Stored preferences only fill the others.
type chosen struct {
	strict  bool
	unicode bool
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		SnapshotSize: 64,
	}
}

// Load returns Default overlaid with the YAML file at path. An empty path
// skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("'%s': %w", path, err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("'%s': %w", path, err)
	}
	return cfg, nil
}

// Parse overlays YAML data onto cfg. Unknown keys are an error so typos
// do not go unnoticed.
func Parse(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	var keys map[string]yaml.Node
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return err
	}
	_, strict := keys["strict"]
	_, unicode := keys["unicode"]
	cfg.chosen.strict = cfg.chosen.strict || strict
	cfg.chosen.unicode = cfg.chosen.unicode || unicode
	return nil
}

// ApplyEnv overlays IFCHESS_* variables. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	bools := []struct {
		name   string
		dst    *bool
		chosen *bool
	}{
		{"STRICT", &c.Strict, &c.chosen.strict},
		{"UNICODE", &c.Unicode, &c.chosen.unicode},
		{"NO_STATS", &c.NoStats, nil},
		{"VERBOSE", &c.Verbose, nil},
	}
	for _, b := range bools {
		v := getenv(EnvPrefix + b.name)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, b.name, err)
		}
		*b.dst = parsed
		if b.chosen != nil {
			*b.chosen = true
		}
	}

	strs := []struct {
		name string
		dst  *string
	}{
		{"FEN", &c.StartFEN},
		{"SNAPSHOT", &c.Snapshot},
		{"DATA_DIR", &c.DataDir},
	}
	for _, s := range strs {
		if v := getenv(EnvPrefix + s.name); v != "" {
			*s.dst = v
		}
	}

	if v := getenv(EnvPrefix + "SNAPSHOT_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sSNAPSHOT_SIZE: %w", EnvPrefix, err)
		}
		c.SnapshotSize = n
	}

	return nil
}

// ApplyPreferences fills Strict and Unicode from remembered values where
// no file, env var or flag chose them.
func (c *Config) ApplyPreferences(strict, unicode bool) {
	if !c.chosen.strict {
		c.Strict = strict
	}
	if !c.chosen.unicode {
		c.Unicode = unicode
	}
}

// Validate checks settings that would otherwise fail later.
func (c Config) Validate() error {
	if c.Snapshot != "" && c.SnapshotSize < 8 {
		return fmt.Errorf("snapshot_size must be at least 8, got %d", c.SnapshotSize)
	}
	if c.StartFEN != "" {
		if _, _, err := board.ParseFEN(c.StartFEN); err != nil {
			return fmt.Errorf("start_fen: %w", err)
		}
	}
	return nil
}
