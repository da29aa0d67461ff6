// Package game runs the player through the pipe chain: forward motion,
// segment advance, rotation around the tube, collisions and scoring.
package game

import (
	"fmt"
	"log"
	"math"

	"github.com/lixenwraith/into-the-hole/event"
	"github.com/lixenwraith/into-the-hole/parameter"
	"github.com/lixenwraith/into-the-hole/pipe"
	"github.com/lixenwraith/into-the-hole/vmath"
)

// State is the run phase
type State int

const (
	// StateMenu drifts through an empty pipe, no collisions
	StateMenu State = iota
	StateRunning
	StateOver
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateOver:
		return "over"
	default:
		return "menu"
	}
}

// Input is the per-frame control state, Rotate in [-1, 1]
type Input struct {
	Rotate float64
}

// Player is the kinematic state of the avatar
type Player struct {
	Distance     float64
	Velocity     float64
	Acceleration float64
	// CurveRotation is the position along the current segment in degrees
	CurveRotation float64
	// Ring is the angle around the tube in the current segment's frame
	Ring float64
	// WorldRotation accumulates segment rolls for display
	WorldRotation float64
	Bonus         int
}

// Score combines distance and collected bonus points
func (p Player) Score() float64 {
	return p.Distance + float64(p.Bonus)
}

// Game owns the run state and drives the chain
type Game struct {
	chain  *pipe.Chain
	queue  *event.Queue
	router *event.Router
	log    *log.Logger

	rotationVelocity float64

	player          Player
	mode            Mode
	state           State
	seed            uint64
	frame           int64
	current         *pipe.Segment
	deltaToRotation float64
}

// New wires the chain to the router so start/end gate item generation
func New(chain *pipe.Chain, router *event.Router, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	router.Register(chain)
	return &Game{
		chain:            chain,
		queue:            router.Queue(),
		router:           router,
		log:              logger,
		rotationVelocity: parameter.RotationVelocity,
		state:            StateMenu,
	}
}

func (g *Game) Chain() *pipe.Chain     { return g.chain }
func (g *Game) Player() Player         { return g.player }
func (g *Game) Mode() Mode             { return g.mode }
func (g *Game) State() State           { return g.state }
func (g *Game) Seed() uint64           { return g.seed }
func (g *Game) Frame() int64           { return g.frame }
func (g *Game) Current() *pipe.Segment { return g.current }
func (g *Game) Router() *event.Router  { return g.router }

// SetRotationVelocity overrides the turn rate in degrees per second
func (g *Game) SetRotationVelocity(v float64) {
	g.rotationVelocity = v
}

// Menu resets to an item-free drift through a fresh chain
func (g *Game) Menu(seed uint64) error {
	g.chain.SetGenerating(false)
	g.chain.Rand().Seed(seed)
	g.seed = seed
	g.state = StateMenu
	g.player = Player{Velocity: parameter.StartVelocity}
	return g.setupFirst()
}

// Start begins a run in mode with a deterministic seed
func (g *Game) Start(mode Mode, seed uint64) error {
	g.chain.Rand().Seed(seed)
	g.seed = seed
	g.mode = mode
	g.player = Player{
		Velocity:     parameter.StartVelocity,
		Acceleration: mode.Acceleration(),
	}

	g.queue.Emit(event.EventGameStart, &event.GameStartPayload{Mode: mode.String(), Seed: seed})
	g.router.Dispatch()

	if err := g.setupFirst(); err != nil {
		return err
	}
	g.state = StateRunning
	g.log.Printf("run started: mode=%s seed=%d", mode, seed)
	return nil
}

// Quit ends a running game without a collision
func (g *Game) Quit() {
	if g.state != StateRunning {
		return
	}
	g.end(true)
	g.router.Dispatch()
}

func (g *Game) setupFirst() error {
	cur, err := g.chain.SetupFirst()
	if err != nil {
		return fmt.Errorf("setup first pipe: %w", err)
	}
	g.current = cur
	g.setupCurrent()
	return nil
}

// setupCurrent recomputes per-segment factors after the current segment changes
func (g *Game) setupCurrent() {
	g.deltaToRotation = 360.0 / (vmath.TwoPi * g.current.CurveRadius())
	g.player.WorldRotation = vmath.WrapDegrees(g.player.WorldRotation + g.current.RelativeRotation())
}

// Update advances one frame of dt seconds and dispatches queued events
func (g *Game) Update(dt float64, in Input) error {
	g.frame++
	g.queue.SetFrame(g.frame)
	if dt > parameter.MaxFrameDelta {
		dt = parameter.MaxFrameDelta
	}
	if dt <= 0 {
		g.router.Dispatch()
		return nil
	}

	p := &g.player
	if g.state == StateRunning {
		p.Velocity += p.Acceleration * dt
	}
	delta := p.Velocity * dt
	from := p.CurveRotation
	p.CurveRotation += delta * g.deltaToRotation
	if g.state == StateRunning {
		p.Distance += delta
	}

	for p.CurveRotation >= g.current.CurveAngle() {
		if g.state == StateRunning {
			g.collide(g.current, from, g.current.CurveAngle())
			if g.state != StateRunning {
				break
			}
		}
		overflow := (p.CurveRotation - g.current.CurveAngle()) / g.deltaToRotation
		if err := g.advance(); err != nil {
			return err
		}
		from = 0
		p.CurveRotation = overflow * g.deltaToRotation
	}

	if g.state == StateRunning {
		g.collide(g.current, from, p.CurveRotation)
	}

	if in.Rotate != 0 {
		in.Rotate = vmath.Clamp(in.Rotate, -1, 1)
		p.Ring = vmath.WrapDegrees(p.Ring + g.rotationVelocity*dt*in.Rotate)
	}

	g.router.Dispatch()
	return nil
}

// advance moves to the next segment and rebases the ring angle into its frame
func (g *Game) advance() error {
	cur, err := g.chain.SetupNext()
	if err != nil {
		return fmt.Errorf("setup next pipe: %w", err)
	}
	g.current = cur
	g.player.Ring = vmath.WrapDegrees(g.player.Ring - cur.RelativeRotation())
	g.setupCurrent()

	g.queue.Emit(event.EventSegmentAdvanced, &event.SegmentAdvancedPayload{
		Count:            g.chain.Advanced(),
		CurveRadius:      cur.CurveRadius(),
		CurveAngle:       cur.CurveAngle(),
		RelativeRotation: cur.RelativeRotation(),
	})
	return nil
}

// collide checks items of s swept between curve angles from and to
func (g *Game) collide(s *pipe.Segment, from, to float64) {
	lo := from - parameter.CollisionCurveTolerance
	hi := to + parameter.CollisionCurveTolerance
	for _, it := range s.Items() {
		if it.Collected {
			continue
		}
		if it.Slot.CurveOffset < lo || it.Slot.CurveOffset > hi {
			continue
		}
		if math.Abs(vmath.AngleDelta(g.player.Ring, it.Slot.RingRotation)) > parameter.CollisionRingTolerance {
			continue
		}

		hit := &event.ItemHitPayload{
			Template:     it.Template(),
			CurveOffset:  it.Slot.CurveOffset,
			RingRotation: it.Slot.RingRotation,
		}
		if it.Kind() == pipe.KindBonus {
			it.Collected = true
			g.player.Bonus += parameter.BonusScore
			g.queue.Emit(event.EventBonusCollected, hit)
			continue
		}

		g.queue.Emit(event.EventObstacleHit, hit)
		g.end(false)
		return
	}
}

func (g *Game) end(quit bool) {
	g.state = StateOver
	res := &event.GameEndPayload{
		Mode:     g.mode.String(),
		Distance: g.player.Distance,
		Bonus:    g.player.Bonus,
		Score:    g.player.Score(),
		Seed:     g.seed,
		Quit:     quit,
	}
	g.queue.Emit(event.EventGameEnd, res)
	g.log.Printf("run ended: mode=%s distance=%.1f bonus=%d quit=%v", g.mode, res.Distance, res.Bonus, quit)
}

// Camera returns the chain-space frame on the centre line at the player's
// position, rolled so +Y points at the player's side of the wall
func (g *Game) Camera() vmath.Transform {
	s := g.current
	frame := vmath.Compose(s.Transform(), s.FrameAt(g.player.CurveRotation))
	return frame.Rotate(vmath.QuatRotX(g.player.Ring))
}
