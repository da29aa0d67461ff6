// Package store keeps player preferences and the history of finished runs
// in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lixenwraith/into-the-hole/event"
)

// ErrClosed is returned by operations on a closed store
var ErrClosed = errors.New("store: closed")

// Run is one finished game
type Run struct {
	ID       int64
	Mode     string
	Distance float64
	Bonus    int
	Score    float64
	Seed     uint64
	EndedAt  time.Time
}

// Store is safe for concurrent use
// Runs reported through HandleEvent are written by a background goroutine
type Store struct {
	db  *sql.DB
	log *log.Logger

	ch   chan Run
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

// writeQueue bounds pending background run writes
const writeQueue = 64

// OpenSQLite opens or creates the database at path
func OpenSQLite(path string, logger *log.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if logger == nil {
		logger = log.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{
		db:  db,
		log: logger,
		ch:  make(chan Run, writeQueue),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS prefs (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			distance REAL NOT NULL,
			bonus INTEGER NOT NULL,
			score REAL NOT NULL,
			seed INTEGER NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS runs_mode_score ON runs(mode, score DESC);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// Close drains pending run writes and closes the database
func (s *Store) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

// GetPref returns the stored value for key and whether it exists
func (s *Store) GetPref(ctx context.Context, key string) (string, bool, error) {
	if s.closed.Load() {
		return "", false, ErrClosed
	}
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM prefs WHERE key=?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get pref %s: %w", key, err)
	}
	return v, true, nil
}

// SetPref upserts a preference
func (s *Store) SetPref(ctx context.Context, key, value string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO prefs(key,value) VALUES(?,?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("set pref %s: %w", key, err)
	}
	return nil
}

// RecordRun inserts r and returns its row id; a zero EndedAt is stamped now
func (s *Store) RecordRun(ctx context.Context, r Run) (int64, error) {
	if s.closed.Load() {
		return 0, ErrClosed
	}
	return s.insertRun(ctx, r)
}

func (s *Store) insertRun(ctx context.Context, r Run) (int64, error) {
	if r.EndedAt.IsZero() {
		r.EndedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs(mode,distance,bonus,score,seed,ended_at) VALUES(?,?,?,?,?,?)`,
		r.Mode, r.Distance, r.Bonus, r.Score, int64(r.Seed), r.EndedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	return res.LastInsertId()
}

// Best returns the highest scoring run in mode
func (s *Store) Best(ctx context.Context, mode string) (Run, bool, error) {
	if s.closed.Load() {
		return Run{}, false, ErrClosed
	}
	row := s.db.QueryRowContext(ctx,
		`SELECT id,mode,distance,bonus,score,seed,ended_at FROM runs WHERE mode=? ORDER BY score DESC, id ASC LIMIT 1`, mode)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("best %s: %w", mode, err)
	}
	return r, true, nil
}

// Recent returns up to limit runs, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,mode,distance,bonus,score,seed,ended_at FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("recent runs: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r     Run
		seed  int64
		ended string
	)
	if err := sc.Scan(&r.ID, &r.Mode, &r.Distance, &r.Bonus, &r.Score, &seed, &ended); err != nil {
		return Run{}, err
	}
	r.Seed = uint64(seed)
	t, err := time.Parse(time.RFC3339Nano, ended)
	if err != nil {
		return Run{}, fmt.Errorf("ended_at %q: %w", ended, err)
	}
	r.EndedAt = t
	return r, nil
}

// EventTypes implements event.Handler
func (s *Store) EventTypes() []event.EventType {
	return []event.EventType{event.EventGameEnd}
}

// HandleEvent queues a finished run for the background writer
// Drops the run when the writer falls behind rather than stall the game loop
func (s *Store) HandleEvent(ev event.Event) {
	if s.closed.Load() || ev.Type != event.EventGameEnd {
		return
	}
	p, ok := ev.Payload.(*event.GameEndPayload)
	if !ok {
		return
	}
	r := Run{
		Mode:     p.Mode,
		Distance: p.Distance,
		Bonus:    p.Bonus,
		Score:    p.Score,
		Seed:     p.Seed,
		EndedAt:  time.Now(),
	}
	select {
	case s.ch <- r:
	default:
		s.log.Printf("store: dropped run record, writer behind")
	}
}

func (s *Store) loop() {
	ctx := context.Background()
	for r := range s.ch {
		if _, err := s.insertRun(ctx, r); err != nil {
			s.log.Printf("store: %v", err)
		}
	}
}
