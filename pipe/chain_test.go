package pipe

import (
	"bytes"
	"errors"
	"io"
	"log"
	"math"
	"strings"
	"testing"

	"github.com/lixenwraith/into-the-hole/event"
	"github.com/lixenwraith/into-the-hole/parameter"
	"github.com/lixenwraith/into-the-hole/placement"
	"github.com/lixenwraith/into-the-hole/vmath"
)

const tol = 1e-6

var quiet = log.New(io.Discard, "", 0)

func newTestChain(t *testing.T, seed uint64) *Chain {
	t.Helper()
	items := NewItemPool([]string{"cube", "gate"}, "bonus")
	placers := placement.NewSelector(
		placement.NewRandom("cube", "bonus"),
		placement.NewSpiral("cube"),
		placement.NewCircle("gate"),
	)
	cfg := DefaultConfig()
	cfg.RadialSegments = 12
	c, err := NewChain(cfg, items, placers, vmath.NewFastRand(seed), quiet)
	if err != nil {
		t.Fatalf("NewChain: %v", err)
	}
	return c
}

// assertContinuous checks every neighbour pair in the ring
func assertContinuous(t *testing.T, c *Chain) {
	t.Helper()
	segs := c.Segments()
	for n := 0; n+1 < len(segs); n++ {
		prev, next := segs[n], segs[n+1]
		radial := prev.RadialSegments()
		cell := 360.0 / float64(radial)

		shift := int(math.Round(next.RelativeRotation() / cell))
		if !vmath.NearlyEqual(float64(shift)*cell, next.RelativeRotation(), 1e-9) {
			t.Fatalf("segment %d roll %v is not a whole cell", n+1, next.RelativeRotation())
		}

		trailing := prev.WorldRing(prev.CurveSegments())
		leading := next.WorldRing(0)
		for k := 0; k < radial; k++ {
			want := trailing[(k+shift)%radial]
			if !vmath.V3NearlyEqual(leading[k], want, tol) {
				t.Fatalf("segment %d ring vertex %d = %+v, want %+v", n+1, k, leading[k], want)
			}
		}

		// Leading frame equals trailing frame rolled by the relative rotation
		trailFrame := vmath.Compose(prev.Transform(), prev.FrameAt(prev.CurveAngle()))
		leadFrame := vmath.Compose(next.Transform(), next.FrameAt(0))
		if !vmath.V3NearlyEqual(trailFrame.Position, leadFrame.Position, tol) {
			t.Fatalf("segment %d centre %+v, want %+v", n+1, leadFrame.Position, trailFrame.Position)
		}
		wantRot := vmath.QMul(trailFrame.Rotation, vmath.QuatRotX(next.RelativeRotation()))
		if !vmath.QNearlyEqual(leadFrame.Rotation, wantRot, tol) {
			t.Fatalf("segment %d rotation mismatch", n+1)
		}
		tangentPrev := trailFrame.ApplyDir(vmath.Vec3X)
		tangentNext := leadFrame.ApplyDir(vmath.Vec3X)
		if !vmath.V3NearlyEqual(tangentPrev, tangentNext, tol) {
			t.Fatalf("segment %d tangent %+v, want %+v", n+1, tangentNext, tangentPrev)
		}
	}
}

func TestSetupFirstContinuity(t *testing.T) {
	c := newTestChain(t, 3)
	cur, err := c.SetupFirst()
	if err != nil {
		t.Fatalf("SetupFirst: %v", err)
	}
	if cur != c.Segments()[1] {
		t.Error("current segment is not index 1")
	}
	if !vmath.TransformNearlyEqual(cur.Transform(), vmath.Identity(), 1e-12) {
		t.Errorf("current transform = %+v, want identity", cur.Transform())
	}
	assertContinuous(t, c)
}

func TestSetupNextKeepsContinuity(t *testing.T) {
	c := newTestChain(t, 11)
	c.SetGenerating(true)
	if _, err := c.SetupFirst(); err != nil {
		t.Fatal(err)
	}

	for step := 0; step < 50; step++ {
		oldHead := c.Segments()[0]
		oldNext := c.Segments()[2]
		cur, err := c.SetupNext()
		if err != nil {
			t.Fatalf("step %d: %v", step, err)
		}
		if cur != oldNext {
			t.Fatalf("step %d: current is not the previous lookahead", step)
		}
		if c.Tail() != oldHead {
			t.Fatalf("step %d: oldest segment was not recycled to the tail", step)
		}
		if !vmath.TransformNearlyEqual(cur.Transform(), vmath.Identity(), 1e-12) {
			t.Fatalf("step %d: current not anchored at origin", step)
		}
		assertContinuous(t, c)
	}
	if c.Advanced() != 50 {
		t.Errorf("Advanced = %d, want 50", c.Advanced())
	}
}

func TestSegmentDrawsWithinConfig(t *testing.T) {
	c := newTestChain(t, 5)
	cfg := c.Config()
	if _, err := c.SetupFirst(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 40; i++ {
		s, err := c.SetupNext()
		if err != nil {
			t.Fatal(err)
		}
		tail := c.Tail()
		if r := tail.CurveRadius(); r < cfg.MinCurveRadius || r >= cfg.MaxCurveRadius {
			t.Errorf("curve radius %v out of [%v,%v)", r, cfg.MinCurveRadius, cfg.MaxCurveRadius)
		}
		if n := tail.CurveSegments(); n < cfg.MinCurveSegments || n > cfg.MaxCurveSegments {
			t.Errorf("curve segments %d out of [%d,%d]", n, cfg.MinCurveSegments, cfg.MaxCurveSegments)
		}
		if got, want := len(s.Mesh().Vertices), s.RadialSegments()*s.CurveSegments()*4; got != want {
			t.Errorf("vertices = %d, want %d", got, want)
		}
	}
}

func TestChainLogsSetupAndGating(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	c, err := NewChain(cfg, NewItemPool([]string{"cube"}), placement.NewSelector(placement.NewRandom("cube")),
		vmath.NewFastRand(4), log.New(&buf, "", 0))
	if err != nil {
		t.Fatal(err)
	}
	q := event.NewQueue()
	r := event.NewRouter(q)
	r.Register(c)

	if _, err := c.SetupFirst(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "chain: setup") {
		t.Errorf("setup not logged: %q", buf.String())
	}

	q.Emit(event.EventGameStart, nil)
	q.Emit(event.EventGameStart, nil)
	r.Dispatch()
	if n := strings.Count(buf.String(), "item generation true"); n != 1 {
		t.Errorf("generation-on logged %d times, want 1", n)
	}

	q.Emit(event.EventGameEnd, nil)
	r.Dispatch()
	if !strings.Contains(buf.String(), "item generation false") {
		t.Errorf("generation-off not logged: %q", buf.String())
	}
}

func TestItemsGatedByGameEvents(t *testing.T) {
	c := newTestChain(t, 21)
	q := event.NewQueue()
	r := event.NewRouter(q)
	r.Register(c)

	if _, err := c.SetupFirst(); err != nil {
		t.Fatal(err)
	}
	if n := c.ItemCount(); n != 0 {
		t.Fatalf("items before game start = %d, want 0", n)
	}

	q.Emit(event.EventGameStart, nil)
	r.Dispatch()
	if !c.Generating() {
		t.Fatal("GameStart did not enable generation")
	}
	if _, err := c.SetupFirst(); err != nil {
		t.Fatal(err)
	}
	for i, s := range c.Segments() {
		if i <= c.Config().EmptyCount && len(s.Items()) != 0 {
			t.Errorf("run-in segment %d has %d items", i, len(s.Items()))
		}
		if i > c.Config().EmptyCount && len(s.Items()) == 0 {
			t.Errorf("segment %d has no items", i)
		}
	}

	q.Emit(event.EventGameEnd, nil)
	r.Dispatch()
	if c.Generating() {
		t.Fatal("GameEnd did not disable generation")
	}
	if _, err := c.SetupNext(); err != nil {
		t.Fatal(err)
	}
	if n := len(c.Tail().Items()); n != 0 {
		t.Errorf("tail generated after game end has %d items", n)
	}
}

func TestItemsReturnToPool(t *testing.T) {
	c := newTestChain(t, 8)
	c.SetGenerating(true)
	if _, err := c.SetupFirst(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		if _, err := c.SetupNext(); err != nil {
			t.Fatal(err)
		}
	}

	acquired := 0
	for _, tpl := range []string{"cube", "gate", "bonus"} {
		acquired += c.Pool().Stats(tpl).Acquired
	}
	if acquired != c.ItemCount() {
		t.Errorf("pool reports %d acquired, ring holds %d", acquired, c.ItemCount())
	}

	c.Release()
	for _, tpl := range []string{"cube", "gate", "bonus"} {
		if st := c.Pool().Stats(tpl); st.Acquired != 0 {
			t.Errorf("%s still has %d acquired after Release", tpl, st.Acquired)
		}
	}
}

func TestItemsSitOnTubeWall(t *testing.T) {
	c := newTestChain(t, 13)
	c.SetGenerating(true)
	if _, err := c.SetupFirst(); err != nil {
		t.Fatal(err)
	}
	for _, s := range c.Segments() {
		for _, it := range s.Items() {
			centre := s.FrameAt(it.Slot.CurveOffset).Position
			d := vmath.V3Dist(centre, it.Local)
			want := s.PipeRadius() * (1 - parameter.ItemInset)
			if !vmath.NearlyEqual(d, want, 1e-9) {
				t.Errorf("item %s at %v from centre line, want %v", it.Template(), d, want)
			}
			if it.Slot.CurveOffset < 0 || it.Slot.CurveOffset > s.CurveAngle() {
				t.Errorf("item curve offset %v outside [0,%v]", it.Slot.CurveOffset, s.CurveAngle())
			}
		}
	}
}

func TestItemKinds(t *testing.T) {
	p := NewItemPool([]string{"cube"}, "bonus")
	cube, err := p.Acquire("cube")
	if err != nil {
		t.Fatal(err)
	}
	bonus, err := p.Acquire("bonus")
	if err != nil {
		t.Fatal(err)
	}
	if cube.Kind() != KindObstacle || bonus.Kind() != KindBonus {
		t.Errorf("kinds = %v/%v", cube.Kind(), bonus.Kind())
	}
}

func TestNewChainRejects(t *testing.T) {
	items := NewItemPool([]string{"cube"})
	good := placement.NewSelector(placement.NewRandom("cube"))

	bad := DefaultConfig()
	bad.RadialSegments = 0
	if _, err := NewChain(bad, items, good, nil, quiet); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("bad config: err = %v", err)
	}
	if _, err := NewChain(DefaultConfig(), items, placement.NewSelector(), nil, quiet); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("no placers: err = %v", err)
	}
	missing := placement.NewSelector(placement.NewCircle("gate"))
	if _, err := NewChain(DefaultConfig(), items, missing, nil, quiet); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unregistered template: err = %v", err)
	}
	empty := placement.NewSelector(placement.NewSpiral())
	if _, err := NewChain(DefaultConfig(), items, empty, nil, quiet); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("templateless placer: err = %v", err)
	}
}
