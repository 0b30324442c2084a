package combat

import (
	"math"

	"github.com/milk9111/otterblade/common"
	"github.com/milk9111/otterblade/perception"
)

// EnemyState is a regular enemy's behavior tier, escalated by alert level.
type EnemyState string

const (
	EnemyPatrol      EnemyState = "patrol"
	EnemyInvestigate EnemyState = "investigate"
	EnemyChase       EnemyState = "chase"
)

const (
	// footstepInterval spaces out emitted footstep sounds while moving.
	footstepInterval = 0.35
	// investigateReach is how close counts as having reached an
	// investigation point.
	investigateReach = 12.0
)

// EnemyConfig assembles a regular enemy.
type EnemyConfig struct {
	ID         string
	Pos        common.Vec2
	MaxHP      int
	MoveSpeed  float64
	Vision     perception.Vision
	MemorySpan float64
	// PatrolMinX/PatrolMaxX bound the idle patrol sweep.
	PatrolMinX float64
	PatrolMaxX float64
	Bus        *perception.Bus
}

// Enemy is a regular perceiving agent. It shares the boss's perception
// model but expresses decisions as movement intents; the physics layer is
// the one that actually moves the body and writes Pos back.
type Enemy struct {
	ID     string
	Pos    common.Vec2
	HP     int
	MaxHP  int
	Facing float64
	Dead   bool

	State            EnemyState
	CurrentAnimation string
	// MoveIntent is the desired x velocity in world units per second.
	MoveIntent float64

	Perception *perception.State

	moveSpeed  float64
	patrolMinX float64
	patrolMaxX float64
	patrolDir  float64
	bus        *perception.Bus
	target     *Target
	stepTimer  float64
	flash      int
}

func NewEnemy(cfg EnemyConfig) *Enemy {
	if cfg.MaxHP <= 0 {
		cfg.MaxHP = 1
	}
	if cfg.Vision.Range <= 0 {
		cfg.Vision = perception.Vision{FOV: math.Pi / 3, Range: 250}
	}
	if cfg.MoveSpeed <= 0 {
		cfg.MoveSpeed = 60
	}

	e := &Enemy{
		ID:               cfg.ID,
		Pos:              cfg.Pos,
		HP:               cfg.MaxHP,
		MaxHP:            cfg.MaxHP,
		Facing:           1,
		State:            EnemyPatrol,
		CurrentAnimation: "walk",
		Perception:       perception.NewState(cfg.Vision, cfg.MemorySpan),
		moveSpeed:        cfg.MoveSpeed,
		patrolMinX:       cfg.PatrolMinX,
		patrolMaxX:       cfg.PatrolMaxX,
		patrolDir:        1,
		bus:              cfg.Bus,
	}
	if e.bus != nil {
		e.bus.Register(e)
	}
	return e
}

// Position implements perception.Listener.
func (e *Enemy) Position() common.Vec2 {
	return e.Pos
}

// OnHearSound implements perception.Listener; own footsteps are ignored.
func (e *Enemy) OnHearSound(ev perception.SoundEvent, distance float64) {
	if ev.Source == e.ID {
		return
	}
	e.Perception.Hear(ev, distance)
}

// SetTarget points the enemy at the player snapshot.
func (e *Enemy) SetTarget(t *Target) {
	e.target = t
}

// Update runs one decision tick: perception first, then the
// patrol/investigate/chase escalation, then movement intent and footstep
// noise.
func (e *Enemy) Update(delta float64) {
	if e.Dead {
		e.MoveIntent = 0
		return
	}

	if e.target != nil {
		e.Perception.Update(e.Pos, e.Facing, e.target.ID, e.target.Pos, delta)
	} else {
		// Visibility is only meaningful against a live snapshot; without
		// one the enemy falls back to investigating or patrolling.
		e.Perception.TargetVisible = false
	}

	switch {
	case e.Perception.TargetVisible:
		e.State = EnemyChase
	case e.Perception.HasInvestigate && e.Perception.Alert > perception.AlertUnaware:
		e.State = EnemyInvestigate
	default:
		e.State = EnemyPatrol
	}

	switch e.State {
	case EnemyChase:
		e.moveToward(e.target.Pos.X)
		e.CurrentAnimation = "run"
	case EnemyInvestigate:
		goal := e.Perception.InvestigatePos
		if math.Abs(goal.X-e.Pos.X) <= investigateReach {
			e.MoveIntent = 0
			e.CurrentAnimation = "look"
			e.Perception.ClearInvestigate()
		} else {
			e.moveToward(goal.X)
			e.CurrentAnimation = "walk"
		}
	default:
		e.patrol()
		e.CurrentAnimation = "walk"
	}

	if e.MoveIntent != 0 && e.bus != nil {
		e.stepTimer -= delta
		if e.stepTimer <= 0 {
			e.stepTimer = footstepInterval
			e.bus.Emit(e.Pos, 0.3, perception.SoundFootstep, e.ID)
		}
	}

	if e.flash > 0 {
		e.flash--
	}
}

// TakeDamage applies damage; stays safe to call after death.
func (e *Enemy) TakeDamage(amount int) {
	if e.Dead || amount <= 0 {
		return
	}
	e.HP -= amount
	e.flash = damageFlashTicks
	// Getting hit tells the enemy roughly where the attacker is.
	e.Perception.Alert = perception.AlertFull
	if e.bus != nil {
		e.bus.Emit(e.Pos, 0.5, perception.SoundDamage, e.ID)
	}
	if e.HP <= 0 {
		e.HP = 0
		e.Dead = true
		e.MoveIntent = 0
		e.CurrentAnimation = "death"
	}
}

func (e *Enemy) moveToward(x float64) {
	dx := x - e.Pos.X
	if math.Abs(dx) < 0.001 {
		e.MoveIntent = 0
		return
	}
	if dx > 0 {
		e.Facing = 1
	} else {
		e.Facing = -1
	}
	e.MoveIntent = e.Facing * e.moveSpeed
}

// patrol sweeps between the patrol bounds, turning at the edges. With no
// bounds configured the enemy just holds position.
func (e *Enemy) patrol() {
	if e.patrolMaxX <= e.patrolMinX {
		e.MoveIntent = 0
		return
	}
	if e.Pos.X >= e.patrolMaxX {
		e.patrolDir = -1
	} else if e.Pos.X <= e.patrolMinX {
		e.patrolDir = 1
	}
	e.Facing = e.patrolDir
	e.MoveIntent = e.patrolDir * e.moveSpeed
}
