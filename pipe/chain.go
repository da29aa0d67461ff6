// Package pipe builds the endless tunnel: torus-segment meshes, the ring of
// recycled segments chained end to end, and the items placed along them.
package pipe

import (
	"fmt"
	"log"

	"github.com/lixenwraith/into-the-hole/event"
	"github.com/lixenwraith/into-the-hole/placement"
	"github.com/lixenwraith/into-the-hole/vmath"
)

// Chain is a fixed ring of segments reused indefinitely
// Index 0 is behind the player, index 1 is the current segment, the rest lie ahead
// Not safe for concurrent use; driven from the game loop
type Chain struct {
	cfg      Config
	segments []*Segment
	items    *ItemPool
	placers  *placement.Selector
	rng      *vmath.FastRand
	log      *log.Logger

	generating bool
	advanced   int
}

// NewChain validates cfg and allocates the segment ring
// Every placer template must be registered in items
func NewChain(cfg Config, items *ItemPool, placers *placement.Selector, rng *vmath.FastRand, logger *log.Logger) (*Chain, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, invalid("nil item pool")
	}
	if placers == nil || placers.Len() == 0 {
		return nil, invalid("no item placers")
	}
	registered := make(map[string]bool)
	for _, t := range items.Templates() {
		registered[t] = true
	}
	for _, p := range placers.Placers() {
		if len(p.Templates()) == 0 {
			return nil, invalid("placer %s has no templates", p.Name())
		}
		for _, t := range p.Templates() {
			if !registered[t] {
				return nil, invalid("placer %s template %q not in item pool", p.Name(), t)
			}
		}
	}
	if rng == nil {
		rng = vmath.NewFastRand(1)
	}
	if logger == nil {
		logger = log.Default()
	}

	c := &Chain{
		cfg:      cfg,
		segments: make([]*Segment, cfg.PipeCount),
		items:    items,
		placers:  placers,
		rng:      rng,
		log:      logger,
	}
	for i := range c.segments {
		c.segments[i] = newSegment(cfg)
	}
	return c, nil
}

func (c *Chain) Config() Config        { return c.cfg }
func (c *Chain) Segments() []*Segment  { return c.segments }
func (c *Chain) Current() *Segment     { return c.segments[1] }
func (c *Chain) Generating() bool      { return c.generating }
func (c *Chain) Advanced() int         { return c.advanced }
func (c *Chain) SetGenerating(on bool) { c.generating = on }
func (c *Chain) Pool() *ItemPool       { return c.items }
func (c *Chain) Rand() *vmath.FastRand { return c.rng }
func (c *Chain) Tail() *Segment        { return c.segments[len(c.segments)-1] }

// EventTypes gates item generation on game start/end
func (c *Chain) EventTypes() []event.EventType {
	return []event.EventType{event.EventGameStart, event.EventGameEnd}
}

func (c *Chain) HandleEvent(ev event.Event) {
	on := c.generating
	switch ev.Type {
	case event.EventGameStart:
		on = true
	case event.EventGameEnd:
		on = false
	}
	if on != c.generating {
		c.log.Printf("chain: item generation %v at advance %d", on, c.advanced)
	}
	c.generating = on
}

// SetupFirst regenerates the whole ring and returns the current segment
// Segments up to EmptyCount stay clear of items
func (c *Chain) SetupFirst() (*Segment, error) {
	c.advanced = 0
	for i, s := range c.segments {
		if err := c.generate(s, c.generating && i > c.cfg.EmptyCount); err != nil {
			return nil, err
		}
		if i == 0 {
			s.relativeRotation = 0
			s.transform = vmath.Identity()
			continue
		}
		s.alignWith(c.segments[i-1], c.rng)
	}
	c.anchorCurrent()
	c.log.Printf("chain: setup %d segments, %d items", len(c.segments), c.ItemCount())
	return c.Current(), nil
}

// SetupNext recycles the segment behind the player to the far end and
// returns the new current segment
func (c *Chain) SetupNext() (*Segment, error) {
	c.shift()
	c.anchorCurrent()

	n := len(c.segments)
	tail := c.segments[n-1]
	if err := c.generate(tail, c.generating); err != nil {
		return nil, err
	}
	tail.alignWith(c.segments[n-2], c.rng)
	c.advanced++
	return c.Current(), nil
}

// generate rebuilds s with a fresh random curve and optionally repopulates it
func (c *Chain) generate(s *Segment, withItems bool) error {
	s.clearItems(c.items)

	radius := c.rng.Range(c.cfg.MinCurveRadius, c.cfg.MaxCurveRadius)
	segments := c.rng.IntRange(c.cfg.MinCurveSegments, c.cfg.MaxCurveSegments)
	if err := s.Rebuild(radius, segments); err != nil {
		c.log.Printf("chain: rebuild R=%.2f curve=%d failed: %v", radius, segments, err)
		return err
	}

	if !withItems {
		return nil
	}
	placer := c.placers.Pick(c.rng)
	if err := s.populate(c.items, placer, c.rng); err != nil {
		c.log.Printf("chain: %s placement failed: %v", placer.Name(), err)
		return fmt.Errorf("chain generate: %w", err)
	}
	return nil
}

// shift rotates the ring so the oldest segment becomes the tail
func (c *Chain) shift() {
	first := c.segments[0]
	copy(c.segments, c.segments[1:])
	c.segments[len(c.segments)-1] = first
}

// anchorCurrent re-expresses every segment relative to the current one,
// keeping relative placement intact and coordinates near the origin
func (c *Chain) anchorCurrent() {
	inv := c.Current().transform.Inverse()
	for _, s := range c.segments {
		s.transform = vmath.Compose(inv, s.transform)
	}
	c.Current().transform = vmath.Identity()
}

// Release returns every attached item to the pool
func (c *Chain) Release() {
	for _, s := range c.segments {
		s.clearItems(c.items)
	}
}

// ItemCount returns the number of attached items across the ring
func (c *Chain) ItemCount() int {
	n := 0
	for _, s := range c.segments {
		n += len(s.items)
	}
	return n
}
