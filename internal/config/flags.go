package config

import "flag"

// Flags holds the command-line flags that override a Config.
type Flags struct {
	fs           *flag.FlagSet
	strict       *bool
	unicode      *bool
	fen          *string
	snapshot     *string
	snapshotSize *int
	dataDir      *string
	noStats      *bool
	verbose      *bool
}

// RegisterFlags defines the settings flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	d := Default()
	return &Flags{
		fs:           fs,
		strict:       fs.Bool("strict", d.Strict, "reject moves onto your own pieces"),
		unicode:      fs.Bool("unicode", d.Unicode, "draw pieces as Unicode figurines"),
		fen:          fs.String("fen", d.StartFEN, "start from this FEN placement and side to move"),
		snapshot:     fs.String("snapshot", d.Snapshot, "rewrite this PNG file after every move"),
		snapshotSize: fs.Int("snapshot-size", d.SnapshotSize, "snapshot square size in pixels"),
		dataDir:      fs.String("data-dir", d.DataDir, "directory for the statistics database"),
		noStats:      fs.Bool("no-stats", d.NoStats, "do not record session statistics"),
		verbose:      fs.Bool("v", d.Verbose, "log why moves are rejected"),
	}
}

// Apply copies every flag that was set on the command line onto c. Flags
// left at their default do not touch c. Call after fs.Parse.
func (f *Flags) Apply(c *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "strict":
			c.Strict = *f.strict
			c.chosen.strict = true
		case "unicode":
			c.Unicode = *f.unicode
			c.chosen.unicode = true
		case "fen":
			c.StartFEN = *f.fen
		case "snapshot":
			c.Snapshot = *f.snapshot
		case "snapshot-size":
			c.SnapshotSize = *f.snapshotSize
		case "data-dir":
			c.DataDir = *f.dataDir
		case "no-stats":
			c.NoStats = *f.noStats
		case "v":
			c.Verbose = *f.verbose
		}
	})
}

// Resolve layers defaults, the YAML file at path, IFCHESS_* variables read
// through getenv and the parsed flags, in that order, then validates.
func Resolve(path string, getenv func(string) string, f *Flags) (Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return cfg, err
	}
	if f != nil {
		f.Apply(&cfg)
	}
	return cfg, cfg.Validate()
}
