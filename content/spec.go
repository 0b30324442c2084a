package content

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/otterblade/fuzzy"
)

// BossSpec is the authored description of a boss encounter.
type BossSpec struct {
	ID              string        `yaml:"id"`
	Name            string        `yaml:"name"`
	MaxHealth       int           `yaml:"max_health"`
	PhaseThresholds []float64     `yaml:"phase_thresholds"`
	Vision          VisionSpec    `yaml:"vision"`
	MemorySpan      float64       `yaml:"memory_span"`
	Fuzzy           *fuzzy.Config `yaml:"fuzzy"`
	Patterns        []PatternSpec `yaml:"patterns"`
}

// EnemySpec is the authored description of a regular enemy.
type EnemySpec struct {
	ID         string     `yaml:"id"`
	Name       string     `yaml:"name"`
	MaxHealth  int        `yaml:"max_health"`
	MoveSpeed  float64    `yaml:"move_speed"`
	Vision     VisionSpec `yaml:"vision"`
	MemorySpan float64    `yaml:"memory_span"`
	Patrol     PatrolSpec `yaml:"patrol"`
}

type VisionSpec struct {
	FOVDegrees float64 `yaml:"fov_degrees"`
	Range      float64 `yaml:"range"`
}

type PatrolSpec struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
}

// PatternSpec describes one attack pattern: its gating and its step
// sequence. Durations are authored in milliseconds.
type PatternSpec struct {
	Name        string     `yaml:"name"`
	MinPhase    int        `yaml:"min_phase"`
	CooldownMs  float64    `yaml:"cooldown_ms"`
	WarmthDrain float64    `yaml:"warmth_drain"`
	Steps       []StepSpec `yaml:"steps"`
}

// StepSpec is one authored step. Exactly one field should be set; the
// builder reports a step with nothing usable.
type StepSpec struct {
	Animation string      `yaml:"animation,omitempty"`
	DelayMs   float64     `yaml:"delay_ms,omitempty"`
	Sound     string      `yaml:"sound,omitempty"`
	Script    string      `yaml:"script,omitempty"`
	Effect    *EffectSpec `yaml:"effect,omitempty"`
}

// EffectSpec is a declarative, non-scripted step effect.
type EffectSpec struct {
	Projectile *ProjectileSpec `yaml:"projectile,omitempty"`
	Hazard     *HazardSpec     `yaml:"hazard,omitempty"`
	Noise      *NoiseSpec      `yaml:"noise,omitempty"`
}

type ProjectileSpec struct {
	VX          float64 `yaml:"vx"`
	VY          float64 `yaml:"vy"`
	Damage      int     `yaml:"damage"`
	WarmthDrain float64 `yaml:"warmth_drain"`
	LifetimeMs  float64 `yaml:"lifetime_ms"`
}

type HazardSpec struct {
	OffsetX    float64 `yaml:"offset_x"`
	OffsetY    float64 `yaml:"offset_y"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Damage     int     `yaml:"damage"`
	DurationMs float64 `yaml:"duration_ms"`
}

type NoiseSpec struct {
	Loudness float64 `yaml:"loudness"`
	Kind     string  `yaml:"kind"`
}

// LoadSpec loads and unmarshals a spec file into T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("content: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("content: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadBossSpec loads a boss spec by file name, e.g. "bosses/riverlord_heron.yaml".
func LoadBossSpec(filename string) (BossSpec, error) {
	return LoadSpec[BossSpec](filename)
}

// LoadEnemySpec loads an enemy spec by file name.
func LoadEnemySpec(filename string) (EnemySpec, error) {
	return LoadSpec[EnemySpec](filename)
}
