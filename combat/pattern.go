package combat

import "math"

// EffectFunc applies a pattern step's gameplay effect to the boss, usually
// by spawning projectiles or hazard zones.
type EffectFunc func(b *Boss)

// StepKind discriminates pattern steps.
type StepKind int

const (
	StepAnimation StepKind = iota
	StepDelay
	StepSound
	StepEffect
)

// Step is one entry in a pattern's step sequence. Sequences run
// cooperatively: the boss advances them with simulated time each tick, so
// tests never sleep.
type Step struct {
	Kind      StepKind
	Animation string
	Sound     string
	Duration  float64 // seconds, StepDelay only
	Effect    EffectFunc
}

func AnimationStep(name string) Step {
	return Step{Kind: StepAnimation, Animation: name}
}

func DelayStep(seconds float64) Step {
	return Step{Kind: StepDelay, Duration: seconds}
}

func SoundStep(id string) Step {
	return Step{Kind: StepSound, Sound: id}
}

func EffectStep(fn EffectFunc) Step {
	return Step{Kind: StepEffect, Effect: fn}
}

// Pattern is an attack-pattern descriptor. The full set is fixed at boss
// construction; only the last-used timestamp mutates afterward.
type Pattern struct {
	Name        string
	MinPhase    int
	Cooldown    float64 // seconds
	WarmthDrain float64
	Steps       []Step

	lastUsed float64
}

func NewPattern(name string, minPhase int, cooldown, warmthDrain float64, steps []Step) *Pattern {
	return &Pattern{
		Name:        name,
		MinPhase:    minPhase,
		Cooldown:    cooldown,
		WarmthDrain: warmthDrain,
		Steps:       steps,
		lastUsed:    math.Inf(-1),
	}
}

// CooldownReady reports whether enough simulated time has passed since the
// pattern last started.
func (p *Pattern) CooldownReady(now float64) bool {
	return now-p.lastUsed > p.Cooldown
}

// markUsed stamps the cooldown clock. This happens when the step sequence
// starts, not when it finishes, so cooldowns measure start-to-start.
func (p *Pattern) markUsed(now float64) {
	p.lastUsed = now
}

// patternRun tracks one in-flight step sequence.
type patternRun struct {
	pattern *Pattern
	step    int
	wait    float64
}
