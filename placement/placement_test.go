package placement

import (
	"math"
	"testing"

	"github.com/lixenwraith/into-the-hole/vmath"
)

type geom struct {
	radial, curve int
	angle         float64
}

func (g geom) RadialSegments() int { return g.radial }
func (g geom) CurveSegments() int  { return g.curve }
func (g geom) CurveAngle() float64 { return g.angle }

func TestRandomOnePerStep(t *testing.T) {
	g := geom{radial: 8, curve: 6, angle: 30}
	slots := NewRandom("cube").Place(g, vmath.NewFastRand(1))

	if len(slots) != 6 {
		t.Fatalf("slots = %d, want 6", len(slots))
	}
	for i, s := range slots {
		if want := float64(i) * 5; !vmath.NearlyEqual(s.CurveOffset, want, 1e-9) {
			t.Errorf("slot %d curve offset = %v, want %v", i, s.CurveOffset, want)
		}
		if s.RingRotation < 0 || s.RingRotation >= 360 {
			t.Errorf("slot %d ring rotation %v out of range", i, s.RingRotation)
		}
		if s.Template != "cube" {
			t.Errorf("slot %d template = %q", i, s.Template)
		}
	}
}

func TestRandomCoversRingUniformly(t *testing.T) {
	const radial, trials = 8, 4000
	g := geom{radial: radial, curve: 10, angle: 45}
	p := NewRandom("cube")
	rng := vmath.NewFastRand(12345)

	counts := make([]int, radial)
	total := 0
	for i := 0; i < trials; i++ {
		for _, s := range p.Place(g, rng) {
			bin := int(s.RingRotation / (360.0 / radial))
			counts[bin]++
			total++
		}
	}

	expected := float64(total) / radial
	for bin, c := range counts {
		if dev := math.Abs(float64(c)-expected) / expected; dev > 0.05 {
			t.Errorf("bin %d count %d deviates %.3f from %v", bin, c, dev, expected)
		}
	}
}

func TestSpiralConstantStep(t *testing.T) {
	g := geom{radial: 12, curve: 9, angle: 40}
	cell := 360.0 / 12
	p := NewSpiral("cube", "spike")

	for seed := uint64(1); seed <= 50; seed++ {
		slots := p.Place(g, vmath.NewFastRand(seed))
		if len(slots) != 9 {
			t.Fatalf("slots = %d, want 9", len(slots))
		}
		dir := vmath.AngleDelta(slots[0].RingRotation, slots[1].RingRotation)
		if !vmath.NearlyEqual(math.Abs(dir), cell, 1e-9) {
			t.Fatalf("seed %d: first step %v, want ±%v", seed, dir, cell)
		}
		for i := 1; i < len(slots); i++ {
			d := vmath.AngleDelta(slots[i-1].RingRotation, slots[i].RingRotation)
			if !vmath.NearlyEqual(d, dir, 1e-9) {
				t.Errorf("seed %d step %d: delta %v, want %v", seed, i, d, dir)
			}
		}
	}
}

func TestSpiralUsesBothDirections(t *testing.T) {
	g := geom{radial: 12, curve: 3, angle: 10}
	p := NewSpiral("cube")
	seen := map[float64]bool{}
	for seed := uint64(1); seed <= 64; seed++ {
		slots := p.Place(g, vmath.NewFastRand(seed))
		d := vmath.AngleDelta(slots[0].RingRotation, slots[1].RingRotation)
		seen[math.Copysign(1, d)] = true
	}
	if !seen[1] || !seen[-1] {
		t.Errorf("directions seen = %v, want both", seen)
	}
}

func TestCircleGatesEquallySpaced(t *testing.T) {
	g := geom{radial: 8, curve: 5, angle: 25}
	spacing := 360.0 / 8 * 2
	slots := NewCircle("gate").Place(g, vmath.NewFastRand(9))

	perGate := GateSize(8)
	if perGate != 4 {
		t.Fatalf("GateSize(8) = %d, want 4", perGate)
	}
	// curve steps 0, 2, 4
	if len(slots) != 3*perGate {
		t.Fatalf("slots = %d, want %d", len(slots), 3*perGate)
	}

	for gate := 0; gate < 3; gate++ {
		ring := slots[gate*perGate : (gate+1)*perGate]
		wantCurve := float64(gate*2) * 5
		for k, s := range ring {
			if !vmath.NearlyEqual(s.CurveOffset, wantCurve, 1e-9) {
				t.Errorf("gate %d item %d curve = %v, want %v", gate, k, s.CurveOffset, wantCurve)
			}
			if s.Template != "gate" {
				t.Errorf("template = %q, want gate", s.Template)
			}
		}
		// closed polygon: each neighbour, including last->first, is spacing apart
		for k := range ring {
			next := ring[(k+1)%len(ring)]
			d := vmath.WrapDegrees(next.RingRotation - ring[k].RingRotation)
			if !vmath.NearlyEqual(d, spacing, 1e-9) {
				t.Errorf("gate %d: gap %d = %v, want %v", gate, k, d, spacing)
			}
		}
	}
}

func TestSelectorUniform(t *testing.T) {
	s := NewSelector(NewRandom("a"), NewSpiral("a"), NewCircle("a"))
	rng := vmath.NewFastRand(77)
	counts := map[string]int{}
	const n = 3000
	for i := 0; i < n; i++ {
		counts[s.Pick(rng).Name()]++
	}
	for _, name := range []string{NameRandom, NameSpiral, NameCircle} {
		if c := counts[name]; c < n/3-150 || c > n/3+150 {
			t.Errorf("%s picked %d times of %d", name, c, n)
		}
	}
	if NewSelector().Pick(rng) != nil {
		t.Error("empty selector should return nil")
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{NameRandom, NameSpiral, NameCircle} {
		p, ok := ByName(name, []string{"x"})
		if !ok || p.Name() != name {
			t.Errorf("ByName(%q) = %v, %v", name, p, ok)
		}
	}
	if _, ok := ByName("zigzag", nil); ok {
		t.Error("unknown placer name accepted")
	}
}
