package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/immadshahid/ifchess/internal/config"
	"github.com/immadshahid/ifchess/internal/console"
	"github.com/immadshahid/ifchess/internal/game"
	"github.com/immadshahid/ifchess/internal/render"
	"github.com/immadshahid/ifchess/internal/rules"
	"github.com/immadshahid/ifchess/internal/storage"
)

var (
	configPath = flag.String("config", os.Getenv("IFCHESS_CONFIG"), "YAML config file")
	showStats  = flag.Bool("stats", false, "print recorded statistics and exit")
	settings   = config.RegisterFlags(flag.CommandLine)
)

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	cfg, err := config.Resolve(*configPath, os.Getenv, settings)
	if err != nil {
		log.Printf("config: %v", err)
		return 1
	}

	var store *storage.Storage
	if !cfg.NoStats || *showStats {
		opts := storage.Options{Dir: cfg.DataDir}
		if cfg.Verbose {
			opts.Logger = log.Default()
		}
		store, err = storage.Open(opts)
		if err != nil {
			if *showStats {
				log.Printf("open statistics: %v", err)
				return 1
			}
			log.Printf("Warning: statistics disabled: %v", err)
		} else {
			defer store.Close()
			loadPreferences(store, &cfg)
		}
	}

	if *showStats {
		return printStats(store)
	}

	engine := rules.Engine{Strict: cfg.Strict}
	session := game.New(engine)
	if cfg.StartFEN != "" {
		session, err = game.FromFEN(cfg.StartFEN, engine)
		if err != nil {
			log.Printf("start position: %v", err)
			return 1
		}
	}

	opts := console.Options{
		Unicode: cfg.Unicode,
		Banner:  true,
		Verbose: cfg.Verbose,
	}
	if cfg.Snapshot != "" {
		r, err := render.New(cfg.SnapshotSize, nil)
		if err != nil {
			log.Printf("snapshot renderer: %v", err)
			return 1
		}
		opts.Snapshot = r
		opts.SnapshotPath = cfg.Snapshot
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := console.New(session, os.Stdin, os.Stdout, opts)
	code := 0
	if err := c.Run(ctx); err != nil {
		log.Printf("input: %v", err)
		code = 1
	}

	if store != nil {
		if err := store.RecordSession(c.Result()); err != nil {
			log.Printf("Warning: statistics not saved: %v", err)
		}
		prefs := &storage.UserPreferences{Unicode: cfg.Unicode, Strict: cfg.Strict}
		if err := store.SavePreferences(prefs); err != nil {
			log.Printf("Warning: preferences not saved: %v", err)
		}
	}

	return code
}

// loadPreferences applies the settings remembered from the last session
// to whatever the file, env and flags left open.
func loadPreferences(store *storage.Storage, cfg *config.Config) {
	prefs, err := store.LoadPreferences()
	if err != nil {
		log.Printf("Warning: Failed to load preferences: %v", err)
		return
	}
	cfg.ApplyPreferences(prefs.Strict, prefs.Unicode)
}

func printStats(store *storage.Storage) int {
	stats, err := store.LoadStats()
	if err != nil {
		log.Printf("load statistics: %v", err)
		return 1
	}
	prefs, err := store.LoadPreferences()
	if err != nil {
		log.Printf("load preferences: %v", err)
		return 1
	}

	fmt.Printf("Sessions:        %d\n", stats.Sessions)
	fmt.Printf("Moves accepted:  %d (%.1f%%)\n", stats.MovesAccepted, stats.AcceptRate())
	fmt.Printf("Moves rejected:  %d\n", stats.MovesRejected)
	for _, reason := range rules.Reasons() {
		if n := stats.RejectedByReason[reason]; n > 0 {
			fmt.Printf("  %-14s %d\n", reason, n)
		}
	}
	fmt.Printf("Captures:        %d\n", stats.Captures)
	fmt.Printf("Longest session: %d moves\n", stats.LongestSession)
	fmt.Printf("Time played:     %s\n", stats.TotalPlayTime.Round(time.Second))
	fmt.Printf("Last settings:   strict=%v unicode=%v (%s)\n",
		prefs.Strict, prefs.Unicode, prefs.LastPlayed.Format("2006-01-02 15:04"))
	return 0
}
