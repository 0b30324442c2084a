package combat

import (
	"math"
	"math/rand"

	"github.com/milk9111/otterblade/common"
	"github.com/milk9111/otterblade/fuzzy"
	"github.com/milk9111/otterblade/perception"
)

const (
	// phaseTransitionHeal is restored on every phase advance.
	phaseTransitionHeal = 50
	// phaseInvulnWindow is how long the boss shrugs off damage after a
	// phase transition, in simulated seconds.
	phaseInvulnWindow = 2.0
	// interAttackCooldown is the shared gap between pattern starts.
	interAttackCooldown = 1.0
	// damageFlashTicks is how many renderer frames the hit flash lasts.
	damageFlashTicks = 8
)

// DefaultPhaseThresholds maps descending health ratios to phases 1..3.
var DefaultPhaseThresholds = []float64{1.0, 0.6, 0.25}

// Target is the engine's read-only snapshot view of the player. The game
// loop owns the pointed-to value and refreshes it every tick.
type Target struct {
	ID    string
	Pos   common.Vec2
	HP    int
	MaxHP int
}

// HealthPct returns target health as a percentage in [0, 100].
func (t *Target) HealthPct() float64 {
	if t == nil || t.MaxHP <= 0 {
		return 0
	}
	return float64(t.HP) / float64(t.MaxHP) * 100
}

// BossConfig assembles a boss. Patterns and thresholds are fixed for the
// boss's lifetime once built.
type BossConfig struct {
	ID     string
	Name   string
	MaxHP  int
	Pos    common.Vec2
	Vision perception.Vision
	// MemorySpan overrides the default perception memory span when > 0.
	MemorySpan      float64
	PhaseThresholds []float64
	Patterns        []*Pattern
	Fuzzy           fuzzy.Config
	Effects         EffectsSink
	Bus             *perception.Bus
	Seed            int64
}

// Boss is the combat-decision state machine for one boss encounter. All
// of its time is simulated: Update(delta) advances an internal clock that
// cooldowns, invulnerability windows, and step sequences compare against.
type Boss struct {
	ID     string
	Name   string
	Pos    common.Vec2
	HP     int
	MaxHP  int
	Facing float64 // +1 right, -1 left

	Phase        int
	Dead         bool
	Invulnerable bool

	CurrentAnimation string
	// TransitionEffects counts pending phase-transition cinematics for
	// the renderer to consume.
	TransitionEffects int
	DamageFlash       int
	// LastAggression is the most recent fuzzy evaluator output, kept for
	// decision traces.
	LastAggression float64

	Projectiles []Projectile
	HazardZones []HazardZone

	Perception *perception.State

	patterns        []*Pattern
	phaseThresholds []float64
	target          *Target
	bus             *perception.Bus
	effects         EffectsSink
	evaluator       *fuzzy.ThreatEvaluator
	rng             *rand.Rand

	now            float64
	invulnUntil    float64
	attackCooldown float64
	run            *patternRun
}

// NewBoss builds a boss from config. A nil effects sink and a zero fuzzy
// config fall back to no-op and default sets respectively.
func NewBoss(cfg BossConfig) *Boss {
	if cfg.MaxHP <= 0 {
		cfg.MaxHP = 1
	}
	if cfg.Effects == nil {
		cfg.Effects = NopEffects{}
	}
	if len(cfg.PhaseThresholds) == 0 {
		cfg.PhaseThresholds = DefaultPhaseThresholds
	}
	if cfg.Vision.Range <= 0 {
		cfg.Vision = perception.Vision{FOV: math.Pi / 2, Range: 600}
	}
	if (cfg.Fuzzy == fuzzy.Config{}) {
		cfg.Fuzzy = fuzzy.DefaultConfig()
	}

	b := &Boss{
		ID:               cfg.ID,
		Name:             cfg.Name,
		Pos:              cfg.Pos,
		HP:               cfg.MaxHP,
		MaxHP:            cfg.MaxHP,
		Facing:           1,
		Phase:            1,
		CurrentAnimation: "idle",
		Perception:       perception.NewState(cfg.Vision, cfg.MemorySpan),
		patterns:         cfg.Patterns,
		phaseThresholds:  cfg.PhaseThresholds,
		bus:              cfg.Bus,
		effects:          cfg.Effects,
		evaluator:        fuzzy.NewThreatEvaluator(cfg.Fuzzy),
		rng:              rand.New(rand.NewSource(cfg.Seed)),
	}
	if b.bus != nil {
		b.bus.Register(b)
	}
	return b
}

// Position implements perception.Listener.
func (b *Boss) Position() common.Vec2 {
	return b.Pos
}

// OnHearSound implements perception.Listener; the boss ignores its own
// noise.
func (b *Boss) OnHearSound(ev perception.SoundEvent, distance float64) {
	if ev.Source == b.ID {
		return
	}
	b.Perception.Hear(ev, distance)
}

// SetTarget points the boss at the player snapshot. Passing nil returns
// the boss to idle; every perception and selection operation treats a
// missing target as a silent no-op.
func (b *Boss) SetTarget(t *Target) {
	b.target = t
}

// Target returns the current target snapshot, if any.
func (b *Boss) Target() *Target {
	return b.target
}

// Now returns the boss's simulated clock.
func (b *Boss) Now() float64 {
	return b.now
}

// Update advances the boss by delta seconds: phase checks first, then
// perception, then timers, in-flight pattern steps, and descriptor
// pruning. It never starts attacks; the orchestrating loop calls
// SelectAndExecuteAttack separately.
func (b *Boss) Update(delta float64) {
	b.now += delta

	if b.Invulnerable && b.now >= b.invulnUntil {
		b.Invulnerable = false
	}

	if !b.Dead {
		b.checkPhaseTransition()

		if b.target != nil {
			b.Perception.Update(b.Pos, b.Facing, b.target.ID, b.target.Pos, delta)
		}
	}

	b.attackCooldown -= delta
	if b.attackCooldown < 0 {
		b.attackCooldown = 0
	}

	// An in-flight step sequence keeps advancing even after death.
	b.advancePattern(delta)

	b.pruneSpawned()

	if !b.Dead && b.target != nil {
		if b.target.Pos.X >= b.Pos.X {
			b.Facing = 1
		} else {
			b.Facing = -1
		}
	}

	if b.DamageFlash > 0 {
		b.DamageFlash--
	}
}

// TakeDamage applies damage unless the boss is dead or inside an
// invulnerability window. Phase thresholds are re-checked immediately so a
// transition (and its invulnerability) lands on the same call that
// crossed the boundary.
func (b *Boss) TakeDamage(amount int) {
	if b.Dead || b.Invulnerable || amount <= 0 {
		return
	}

	b.HP -= amount
	b.DamageFlash = damageFlashTicks
	if b.bus != nil {
		b.bus.Emit(b.Pos, 0.6, perception.SoundDamage, b.ID)
	}

	if b.HP <= 0 {
		b.HP = 0
		b.Dead = true
		b.effects.OnBossDefeated()
		return
	}

	b.checkPhaseTransition()
}

// checkPhaseTransition advances the phase when the health ratio crosses a
// threshold. Phases never regress: a heal that lifts the ratio back above
// a threshold does not undo the transition.
func (b *Boss) checkPhaseTransition() {
	ratio := float64(b.HP) / float64(b.MaxHP)

	computed := 1
	for i, th := range b.phaseThresholds {
		if ratio <= th {
			computed = i + 1
		}
	}

	if computed <= b.Phase {
		return
	}

	b.Phase = computed
	b.HP += phaseTransitionHeal
	if b.HP > b.MaxHP {
		b.HP = b.MaxHP
	}
	b.Invulnerable = true
	b.invulnUntil = b.now + phaseInvulnWindow
	b.TransitionEffects++
	b.effects.OnPhaseChanged(b.Phase)
}

// advancePattern drives the in-flight step sequence with simulated time.
func (b *Boss) advancePattern(delta float64) {
	if b.run == nil {
		return
	}
	if b.run.wait > 0 {
		b.run.wait -= delta
		if b.run.wait > 0 {
			return
		}
		b.run.wait = 0
	}
	b.runSteps()
}

// runSteps executes steps until the sequence blocks on a delay or ends.
func (b *Boss) runSteps() {
	r := b.run
	for r.step < len(r.pattern.Steps) {
		step := r.pattern.Steps[r.step]
		r.step++
		switch step.Kind {
		case StepAnimation:
			b.CurrentAnimation = step.Animation
		case StepSound:
			b.effects.PlaySound(step.Sound)
			if b.bus != nil {
				b.bus.Emit(b.Pos, 0.8, perception.SoundAttack, b.ID)
			}
		case StepEffect:
			if step.Effect != nil {
				step.Effect(b)
			}
		case StepDelay:
			r.wait = step.Duration
			return
		}
	}
	b.run = nil
}

// PatternInFlight reports whether a step sequence is currently running.
func (b *Boss) PatternInFlight() bool {
	return b.run != nil
}

// Patterns returns the fixed pattern set.
func (b *Boss) Patterns() []*Pattern {
	return b.patterns
}

// pruneSpawned drops expired projectiles and hazard zones.
func (b *Boss) pruneSpawned() {
	proj := b.Projectiles[:0]
	for _, p := range b.Projectiles {
		if b.now-p.CreatedAt <= p.Lifetime {
			proj = append(proj, p)
		}
	}
	b.Projectiles = proj

	hz := b.HazardZones[:0]
	for _, h := range b.HazardZones {
		if b.now-h.CreatedAt <= h.Duration {
			hz = append(hz, h)
		}
	}
	b.HazardZones = hz
}

// PlayEffectSound cues a one-off sound through the effects sink.
func (b *Boss) PlayEffectSound(id string) {
	b.effects.PlaySound(id)
}

// EmitNoise pushes a sound event from the boss's position onto the shared
// bus, alerting nearby listeners.
func (b *Boss) EmitNoise(loudness float64, kind perception.SoundKind) {
	if b.bus == nil {
		return
	}
	b.bus.Emit(b.Pos, loudness, kind, b.ID)
}

// SpawnProjectile appends a projectile descriptor at the boss's position.
// The velocity's x component is flipped to match facing.
func (b *Boss) SpawnProjectile(vel common.Vec2, damage int, warmthDrain, lifetime float64) {
	b.Projectiles = append(b.Projectiles, Projectile{
		Pos:         b.Pos,
		Vel:         common.Vec2{X: vel.X * b.Facing, Y: vel.Y},
		Damage:      damage,
		WarmthDrain: warmthDrain,
		Lifetime:    lifetime,
		CreatedAt:   b.now,
	})
}

// SpawnHazard appends a hazard zone offset from the boss's position; the
// x offset is flipped to match facing.
func (b *Boss) SpawnHazard(offset common.Vec2, width, height float64, damage int, duration float64) {
	x := b.Pos.X + offset.X*b.Facing
	if b.Facing < 0 {
		x -= width
	}
	b.HazardZones = append(b.HazardZones, HazardZone{
		Bounds:    common.Rect{X: x, Y: b.Pos.Y + offset.Y, Width: width, Height: height},
		Damage:    damage,
		Duration:  duration,
		CreatedAt: b.now,
	})
}
