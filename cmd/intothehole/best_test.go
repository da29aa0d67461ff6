package main

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/into-the-hole/event"
	"github.com/lixenwraith/into-the-hole/game"
	"github.com/lixenwraith/into-the-hole/store"
)

func TestBestTracker(t *testing.T) {
	ctx := context.Background()
	db, err := store.OpenSQLite(filepath.Join(t.TempDir(), "runs.db"), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if _, err := db.RecordRun(ctx, store.Run{Mode: "hard", Score: 80}); err != nil {
		t.Fatal(err)
	}

	b := newBestTracker(ctx, db)
	b.load(game.ModeHard)
	if b.value() != 80 {
		t.Fatalf("loaded best = %v", b.value())
	}

	end := func(mode string, score float64) {
		b.HandleEvent(event.Event{Type: event.EventGameEnd, Payload: &event.GameEndPayload{Mode: mode, Score: score}})
	}
	end("hard", 50)
	end("easy", 500)
	if b.value() != 80 {
		t.Errorf("best = %v after lower and other-mode runs", b.value())
	}
	end("hard", 120)
	if b.value() != 120 {
		t.Errorf("best = %v, want 120", b.value())
	}

	b.load(game.ModeMedium)
	if b.value() != 0 {
		t.Errorf("medium best = %v, want 0", b.value())
	}
}

func TestBestTrackerWithoutStore(t *testing.T) {
	b := newBestTracker(context.Background(), nil)
	b.load(game.ModeEasy)
	b.HandleEvent(event.Event{Type: event.EventGameEnd, Payload: &event.GameEndPayload{Mode: "easy", Score: 3}})
	if b.value() != 3 {
		t.Errorf("best = %v", b.value())
	}
}
