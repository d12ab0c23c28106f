package storage

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
)

// UserPreferences stores display and rule settings between runs.
type UserPreferences struct {
	Unicode    bool      `json:"unicode"`
	Strict     bool      `json:"strict"`
	LastPlayed time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		LastPlayed: time.Now(),
	}
}

// SessionStats stores aggregate statistics over every session played.
// Individual moves are never stored.
type SessionStats struct {
	Sessions         int            `json:"sessions"`
	MovesAccepted    int            `json:"moves_accepted"`
	MovesRejected    int            `json:"moves_rejected"`
	Captures         int            `json:"captures"`
	RejectedByReason map[string]int `json:"rejected_by_reason"`
	CapturesByPiece  map[string]int `json:"captures_by_piece"`
	TotalPlayTime    time.Duration  `json:"total_play_time"`
	LongestSession   int            `json:"longest_session"`
}

// NewSessionStats returns empty statistics
func NewSessionStats() *SessionStats {
	return &SessionStats{
		RejectedByReason: make(map[string]int),
		CapturesByPiece:  make(map[string]int),
	}
}

// SessionResult summarises one finished session.
type SessionResult struct {
	Accepted         int
	Rejected         int
	RejectedByReason map[string]int
	CapturesByPiece  map[string]int // keyed by the captured piece's type name
	Duration         time.Duration
}

// Captures returns the total number of captures in the session.
func (r SessionResult) Captures() int {
	n := 0
	for _, c := range r.CapturesByPiece {
		n += c
	}
	return n
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Options controls how the database is opened.
type Options struct {
	Dir      string      // data directory; empty means GetDataDir
	InMemory bool        // keep everything in memory, nothing touches disk
	Logger   *log.Logger // nil silences badger
}

// Open opens (or creates) the database.
func Open(o Options) (*Storage, error) {
	var opts badger.Options
	if o.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		dbDir, err := DatabaseDir(o.Dir)
		if err != nil {
			return nil, err
		}
		opts = badger.DefaultOptions(dbDir)
	}

	if o.Logger != nil {
		opts.Logger = &badgerLogger{l: o.Logger}
	} else {
		opts.Logger = nil
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	err := s.get(keyPreferences, prefs)
	return prefs, err
}

// SaveStats saves session statistics
func (s *Storage) SaveStats(stats *SessionStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads session statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*SessionStats, error) {
	stats := NewSessionStats()
	if err := s.get(keyStats, stats); err != nil {
		return nil, err
	}
	// Older records may lack the maps.
	if stats.RejectedByReason == nil {
		stats.RejectedByReason = make(map[string]int)
	}
	if stats.CapturesByPiece == nil {
		stats.CapturesByPiece = make(map[string]int)
	}
	return stats, nil
}

// RecordSession folds a finished session into the stored statistics.
func (s *Storage) RecordSession(result SessionResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.Sessions++
	stats.MovesAccepted += result.Accepted
	stats.MovesRejected += result.Rejected
	stats.Captures += result.Captures()
	stats.TotalPlayTime += result.Duration
	for reason, n := range result.RejectedByReason {
		stats.RejectedByReason[reason] += n
	}
	for piece, n := range result.CapturesByPiece {
		stats.CapturesByPiece[piece] += n
	}
	if result.Accepted > stats.LongestSession {
		stats.LongestSession = result.Accepted
	}

	return s.SaveStats(stats)
}

// AcceptRate returns the share of submitted moves that were legal (0-100).
func (s *SessionStats) AcceptRate() float64 {
	total := s.MovesAccepted + s.MovesRejected
	if total == 0 {
		return 0
	}
	return float64(s.MovesAccepted) / float64(total) * 100
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the value under key into v, leaving v untouched if absent.
func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// badgerLogger routes badger's leveled logging onto a standard logger.
type badgerLogger struct {
	l *log.Logger
}

func (b *badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Printf("badger ERROR: "+format, args...)
}

func (b *badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Printf("badger WARN: "+format, args...)
}

func (b *badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Printf("badger: "+format, args...)
}

func (b *badgerLogger) Debugf(format string, args ...interface{}) {}
