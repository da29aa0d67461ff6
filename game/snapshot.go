package game

import (
	"github.com/lixenwraith/into-the-hole/vmath"
)

// Snapshot is an immutable copy of the visible run state
// Safe to hand to other goroutines
type Snapshot struct {
	Frame    int64             `json:"frame"`
	State    string            `json:"state"`
	Mode     string            `json:"mode"`
	Seed     uint64            `json:"seed"`
	Player   PlayerSnapshot    `json:"player"`
	Camera   TransformSnapshot `json:"camera"`
	Segments []SegmentSnapshot `json:"segments"`
}

type PlayerSnapshot struct {
	Distance      float64 `json:"distance"`
	Velocity      float64 `json:"velocity"`
	CurveRotation float64 `json:"curve_rotation"`
	Ring          float64 `json:"ring"`
	WorldRotation float64 `json:"world_rotation"`
	Bonus         int     `json:"bonus"`
	Score         float64 `json:"score"`
}

type TransformSnapshot struct {
	Position [3]float64 `json:"position"`
	// Rotation is a quaternion as w, x, y, z
	Rotation [4]float64 `json:"rotation"`
}

type SegmentSnapshot struct {
	Transform        TransformSnapshot `json:"transform"`
	CurveRadius      float64           `json:"curve_radius"`
	CurveAngle       float64           `json:"curve_angle"`
	CurveSegments    int               `json:"curve_segments"`
	RadialSegments   int               `json:"radial_segments"`
	PipeRadius       float64           `json:"pipe_radius"`
	RelativeRotation float64           `json:"relative_rotation"`
	Items            []ItemSnapshot    `json:"items"`
}

type ItemSnapshot struct {
	Template     string     `json:"template"`
	Kind         string     `json:"kind"`
	CurveOffset  float64    `json:"curve_offset"`
	RingRotation float64    `json:"ring_rotation"`
	Position     [3]float64 `json:"position"`
	Collected    bool       `json:"collected"`
}

func transformSnapshot(t vmath.Transform) TransformSnapshot {
	return TransformSnapshot{
		Position: [3]float64{t.Position.X, t.Position.Y, t.Position.Z},
		Rotation: [4]float64{t.Rotation.W, t.Rotation.X, t.Rotation.Y, t.Rotation.Z},
	}
}

// Snapshot copies the current state; positions are in chain space
func (g *Game) Snapshot() Snapshot {
	p := g.player
	snap := Snapshot{
		Frame: g.frame,
		State: g.state.String(),
		Mode:  g.mode.String(),
		Seed:  g.seed,
		Player: PlayerSnapshot{
			Distance:      p.Distance,
			Velocity:      p.Velocity,
			CurveRotation: p.CurveRotation,
			Ring:          p.Ring,
			WorldRotation: p.WorldRotation,
			Bonus:         p.Bonus,
			Score:         p.Score(),
		},
	}
	if g.current != nil {
		snap.Camera = transformSnapshot(g.Camera())
	}

	segs := g.chain.Segments()
	snap.Segments = make([]SegmentSnapshot, 0, len(segs))
	for _, s := range segs {
		ss := SegmentSnapshot{
			Transform:        transformSnapshot(s.Transform()),
			CurveRadius:      s.CurveRadius(),
			CurveAngle:       s.CurveAngle(),
			CurveSegments:    s.CurveSegments(),
			RadialSegments:   s.RadialSegments(),
			PipeRadius:       s.PipeRadius(),
			RelativeRotation: s.RelativeRotation(),
			Items:            make([]ItemSnapshot, 0, len(s.Items())),
		}
		for _, it := range s.Items() {
			w := s.WorldItem(it)
			ss.Items = append(ss.Items, ItemSnapshot{
				Template:     it.Template(),
				Kind:         it.Kind().String(),
				CurveOffset:  it.Slot.CurveOffset,
				RingRotation: it.Slot.RingRotation,
				Position:     [3]float64{w.X, w.Y, w.Z},
				Collected:    it.Collected,
			})
		}
		snap.Segments = append(snap.Segments, ss)
	}
	return snap
}
