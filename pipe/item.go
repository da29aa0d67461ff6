package pipe

import (
	"github.com/lixenwraith/into-the-hole/parameter"
	"github.com/lixenwraith/into-the-hole/placement"
	"github.com/lixenwraith/into-the-hole/pool"
	"github.com/lixenwraith/into-the-hole/vmath"
)

// Kind separates items that end a run from items that score
type Kind int

const (
	KindObstacle Kind = iota
	KindBonus
)

func (k Kind) String() string {
	if k == KindBonus {
		return "bonus"
	}
	return "obstacle"
}

// Item is a pooled instance attached to a segment at a slot
type Item struct {
	template string
	kind     Kind

	Slot placement.Slot
	// Local is the anchor in segment space
	Local vmath.Vec3
	// Collected items stay attached but are skipped by collision and rendering
	Collected bool
}

func (i *Item) Template() string { return i.template }
func (i *Item) Kind() Kind       { return i.kind }

// Reset clears placement state before the item returns to the pool
func (i *Item) Reset() {
	i.Slot = placement.Slot{}
	i.Local = vmath.Vec3{}
	i.Collected = false
}

// attach positions the item on the tube wall of s
func (i *Item) attach(s *Segment, slot placement.Slot) {
	i.Slot = slot
	i.Collected = false
	radius := s.pipeRadius * (1 - parameter.ItemInset)
	i.Local = PointOnTorus(s.curveRadius, radius, slot.CurveOffset*vmath.Deg2Rad, slot.RingRotation*vmath.Deg2Rad)
}

// ItemPool is the pool service the chain draws items from
type ItemPool = pool.Pool[*Item]

// NewItemPool registers a factory per template; templates listed in bonus
// produce KindBonus items, all others KindObstacle
func NewItemPool(templates []string, bonus ...string) *ItemPool {
	isBonus := make(map[string]bool, len(bonus))
	for _, b := range bonus {
		isBonus[b] = true
	}

	p := pool.New[*Item]()
	factory := func(template string) *Item {
		k := KindObstacle
		if isBonus[template] {
			k = KindBonus
		}
		return &Item{template: template, kind: k}
	}
	for _, t := range templates {
		p.Register(t, factory)
	}
	for _, b := range bonus {
		p.Register(b, factory)
	}
	return p
}
