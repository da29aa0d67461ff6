package main

import (
	"github.com/lixenwraith/into-the-hole/game"
	"github.com/lixenwraith/into-the-hole/status"
)

// recordMetrics publishes per-frame counters for the observer
func recordMetrics(reg *status.Registry, g *game.Game, dt float64) {
	if dt > 0 {
		reg.Floats.Get("game.fps").Smooth(1/dt, 0.1)
	}
	reg.Ints.Get("game.frame").Store(g.Frame())
	reg.Strings.Get("game.state").Store(g.State().String())
	reg.Strings.Get("game.mode").Store(g.Mode().String())

	reg.Ints.Get("event.dropped").Store(int64(g.Router().Queue().Dropped()))

	chain := g.Chain()
	reg.Ints.Get("chain.advanced").Store(int64(chain.Advanced()))
	reg.Ints.Get("chain.items").Store(int64(chain.ItemCount()))

	items := chain.Pool()
	for _, t := range items.Templates() {
		st := items.Stats(t)
		reg.Ints.Get("pool." + t + ".created").Store(int64(st.Created))
		reg.Ints.Get("pool." + t + ".free").Store(int64(st.Free))
	}
}
