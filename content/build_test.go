package content

import (
	"testing"

	"github.com/milk9111/otterblade/combat"
	"github.com/milk9111/otterblade/common"
	"github.com/milk9111/otterblade/perception"
	"github.com/milk9111/otterblade/script"
)

func defaultDeps() BuildDeps {
	return BuildDeps{
		Bus:     perception.NewBus(32),
		Effects: combat.NopEffects{},
		Scripts: script.NewRuntime(),
	}
}

func TestLoadEmbeddedBossSpec(t *testing.T) {
	spec, err := LoadBossSpec("bosses/riverlord_heron.yaml")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if spec.Name != "Riverlord Heron" {
		t.Fatalf("unexpected name %q", spec.Name)
	}
	if spec.MaxHealth != 500 {
		t.Fatalf("unexpected max health %d", spec.MaxHealth)
	}
	if len(spec.Patterns) != 4 {
		t.Fatalf("expected 4 patterns, got %d", len(spec.Patterns))
	}
	if spec.Patterns[2].MinPhase != 2 {
		t.Fatalf("Talon Dive should be phase-gated at 2, got %d", spec.Patterns[2].MinPhase)
	}
}

func TestBuildBossFromEmbeddedSpec(t *testing.T) {
	spec, err := LoadBossSpec("bosses/riverlord_heron.yaml")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	b, err := BuildBoss(spec, common.Vec2{X: 400, Y: 200}, defaultDeps())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if b.MaxHP != 500 || b.HP != 500 {
		t.Fatalf("unexpected health %d/%d", b.HP, b.MaxHP)
	}
	if len(b.Patterns()) != 4 {
		t.Fatalf("expected 4 built patterns, got %d", len(b.Patterns()))
	}

	// The scripted pattern actually fires: run Talon Dive's effect steps.
	b.SetTarget(&combat.Target{ID: "player", Pos: common.Vec2{X: 300}, HP: 100, MaxHP: 100})
	b.Phase = 2

	dive := b.Patterns()[2]
	for _, step := range dive.Steps {
		if step.Kind == combat.StepEffect && step.Effect != nil {
			step.Effect(b)
		}
	}
	if len(b.Projectiles) != 2 {
		t.Fatalf("phase-2 talon dive should spawn 2 projectiles, got %d", len(b.Projectiles))
	}
}

func TestBuildBossValidation(t *testing.T) {
	cases := []struct {
		name string
		spec BossSpec
	}{
		{"no_health", BossSpec{Name: "x", Patterns: []PatternSpec{{Name: "p"}}}},
		{"no_patterns", BossSpec{Name: "x", MaxHealth: 100}},
		{"empty_step", BossSpec{
			Name:      "x",
			MaxHealth: 100,
			Patterns:  []PatternSpec{{Name: "p", Steps: []StepSpec{{}}}},
		}},
		{"unknown_script", BossSpec{
			Name:      "x",
			MaxHealth: 100,
			Patterns:  []PatternSpec{{Name: "p", Steps: []StepSpec{{Script: "does_not_exist"}}}},
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := BuildBoss(c.spec, common.Vec2{}, defaultDeps()); err == nil {
				t.Fatalf("expected build error")
			}
		})
	}
}

func TestBuildEnemyFromEmbeddedSpec(t *testing.T) {
	spec, err := LoadEnemySpec("enemies/marsh_stoat.yaml")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	e := BuildEnemy(spec, common.Vec2{X: 50}, defaultDeps())
	if e.MaxHP != 40 {
		t.Fatalf("unexpected max hp %d", e.MaxHP)
	}
	if e.State != combat.EnemyPatrol {
		t.Fatalf("fresh enemy should patrol, got %s", e.State)
	}
}
