package main

import (
	"context"

	"github.com/lixenwraith/into-the-hole/event"
	"github.com/lixenwraith/into-the-hole/game"
	"github.com/lixenwraith/into-the-hole/store"
)

// bestTracker caches the best score of the active mode for the HUD
// Finished runs raise it immediately; the store catches up in the background
type bestTracker struct {
	ctx  context.Context
	db   *store.Store
	mode string
	best float64
}

func newBestTracker(ctx context.Context, db *store.Store) *bestTracker {
	return &bestTracker{ctx: ctx, db: db}
}

func (b *bestTracker) load(m game.Mode) {
	b.mode = m.String()
	b.best = 0
	if b.db == nil {
		return
	}
	if r, ok, err := b.db.Best(b.ctx, b.mode); err == nil && ok {
		b.best = r.Score
	}
}

func (b *bestTracker) value() float64 { return b.best }

func (b *bestTracker) EventTypes() []event.EventType {
	return []event.EventType{event.EventGameEnd}
}

func (b *bestTracker) HandleEvent(ev event.Event) {
	p, ok := ev.Payload.(*event.GameEndPayload)
	if !ok || p.Mode != b.mode {
		return
	}
	if p.Score > b.best {
		b.best = p.Score
	}
}
