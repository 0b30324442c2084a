package content

import (
	"fmt"
	"math"

	"github.com/milk9111/otterblade/combat"
	"github.com/milk9111/otterblade/common"
	"github.com/milk9111/otterblade/fuzzy"
	"github.com/milk9111/otterblade/perception"
	"github.com/milk9111/otterblade/script"
)

// BuildDeps carries the injected services a built agent hangs off of.
type BuildDeps struct {
	Bus     *perception.Bus
	Effects combat.EffectsSink
	Scripts *script.Runtime
	Seed    int64
}

// BuildBoss turns a spec into a live boss at pos. Scripted steps are
// compiled on first use through the runtime in deps.
func BuildBoss(spec BossSpec, pos common.Vec2, deps BuildDeps) (*combat.Boss, error) {
	if spec.MaxHealth <= 0 {
		return nil, fmt.Errorf("content: boss %q has no max_health", spec.Name)
	}
	if len(spec.Patterns) == 0 {
		return nil, fmt.Errorf("content: boss %q has no patterns", spec.Name)
	}

	patterns := make([]*combat.Pattern, 0, len(spec.Patterns))
	for _, ps := range spec.Patterns {
		p, err := buildPattern(ps, deps.Scripts)
		if err != nil {
			return nil, fmt.Errorf("content: boss %q: %w", spec.Name, err)
		}
		patterns = append(patterns, p)
	}

	cfg := combat.BossConfig{
		ID:              spec.ID,
		Name:            spec.Name,
		MaxHP:           spec.MaxHealth,
		Pos:             pos,
		Vision:          spec.Vision.toVision(),
		MemorySpan:      spec.MemorySpan,
		PhaseThresholds: spec.PhaseThresholds,
		Patterns:        patterns,
		Effects:         deps.Effects,
		Bus:             deps.Bus,
		Seed:            deps.Seed,
	}
	if spec.Fuzzy != nil {
		cfg.Fuzzy = *spec.Fuzzy
	} else {
		cfg.Fuzzy = fuzzy.DefaultConfig()
	}

	return combat.NewBoss(cfg), nil
}

// BuildEnemy turns a spec into a live enemy at pos.
func BuildEnemy(spec EnemySpec, pos common.Vec2, deps BuildDeps) *combat.Enemy {
	return combat.NewEnemy(combat.EnemyConfig{
		ID:         spec.ID,
		Pos:        pos,
		MaxHP:      spec.MaxHealth,
		MoveSpeed:  spec.MoveSpeed,
		Vision:     spec.Vision.toVision(),
		MemorySpan: spec.MemorySpan,
		PatrolMinX: spec.Patrol.MinX,
		PatrolMaxX: spec.Patrol.MaxX,
		Bus:        deps.Bus,
	})
}

func (v VisionSpec) toVision() perception.Vision {
	return perception.Vision{
		FOV:   v.FOVDegrees * math.Pi / 180,
		Range: v.Range,
	}
}

func buildPattern(ps PatternSpec, scripts *script.Runtime) (*combat.Pattern, error) {
	steps := make([]combat.Step, 0, len(ps.Steps))
	for i, ss := range ps.Steps {
		step, err := buildStep(ss, scripts)
		if err != nil {
			return nil, fmt.Errorf("pattern %q step %d: %w", ps.Name, i, err)
		}
		steps = append(steps, step)
	}
	return combat.NewPattern(ps.Name, ps.MinPhase, ps.CooldownMs/1000, ps.WarmthDrain, steps), nil
}

func buildStep(ss StepSpec, scripts *script.Runtime) (combat.Step, error) {
	switch {
	case ss.Animation != "":
		return combat.AnimationStep(ss.Animation), nil
	case ss.DelayMs > 0:
		return combat.DelayStep(ss.DelayMs / 1000), nil
	case ss.Sound != "":
		return combat.SoundStep(ss.Sound), nil
	case ss.Script != "":
		fn, err := scriptEffect(ss.Script, scripts)
		if err != nil {
			return combat.Step{}, err
		}
		return combat.EffectStep(fn), nil
	case ss.Effect != nil:
		return combat.EffectStep(declarativeEffect(*ss.Effect)), nil
	}
	return combat.Step{}, fmt.Errorf("empty step")
}

func scriptEffect(name string, scripts *script.Runtime) (combat.EffectFunc, error) {
	if scripts == nil {
		return nil, fmt.Errorf("scripted step %q with no script runtime", name)
	}
	if !scripts.Has(name) {
		src, err := LoadScript(name)
		if err != nil {
			return nil, err
		}
		if err := scripts.Compile(name, src); err != nil {
			return nil, err
		}
	}
	return scripts.EffectFunc(name)
}

func declarativeEffect(spec EffectSpec) combat.EffectFunc {
	return func(b *combat.Boss) {
		if p := spec.Projectile; p != nil {
			b.SpawnProjectile(common.Vec2{X: p.VX, Y: p.VY}, p.Damage, p.WarmthDrain, p.LifetimeMs/1000)
		}
		if h := spec.Hazard; h != nil {
			b.SpawnHazard(common.Vec2{X: h.OffsetX, Y: h.OffsetY}, h.Width, h.Height, h.Damage, h.DurationMs/1000)
		}
		if n := spec.Noise; n != nil {
			b.EmitNoise(n.Loudness, perception.SoundKind(n.Kind))
		}
	}
}
