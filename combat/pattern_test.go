package combat

import (
	"testing"

	"github.com/milk9111/otterblade/common"
)

func TestCooldownGating(t *testing.T) {
	p := NewPattern("Gale Slash", 1, 2.0, 25, nil)

	if !p.CooldownReady(0) {
		t.Fatalf("fresh pattern should be eligible")
	}

	p.markUsed(10)
	cases := []struct {
		name string
		now  float64
		want bool
	}{
		{"immediately_after", 10, false},
		{"mid_cooldown", 11, false},
		{"exactly_at_cooldown", 12, false},
		{"just_past_cooldown", 12.001, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := p.CooldownReady(c.now); got != c.want {
				t.Fatalf("CooldownReady(%v) = %v, want %v", c.now, got, c.want)
			}
		})
	}
}

func TestCooldownMeasuredFromPatternStart(t *testing.T) {
	// A long-running sequence must not push its own cooldown out: the
	// stamp lands at invocation start.
	p := NewPattern("Talon Dive", 1, 2.0, 45, []Step{
		DelayStep(1.5),
		AnimationStep("idle"),
	})
	b := newTestBoss(100, nil, p)
	b.SetTarget(&Target{ID: "player", Pos: common.Vec2{X: 10}, HP: 100, MaxHP: 100})

	b.SelectAndExecuteAttack()
	start := b.Now()

	// Finish the sequence 1.5s later; cooldown still counts from start.
	b.Update(1.6)
	if b.PatternInFlight() {
		t.Fatalf("sequence should have finished")
	}
	if p.CooldownReady(start + 1.9) {
		t.Fatalf("cooldown should still be running 1.9s after start")
	}
	if !p.CooldownReady(start + 2.1) {
		t.Fatalf("cooldown should clear 2.1s after start, regardless of the 1.5s runtime")
	}
}

func TestStepSequenceAdvancesWithSimulatedTime(t *testing.T) {
	var fired []string
	p := NewPattern("Reed Pillar Zone", 1, 5.0, 15, []Step{
		AnimationStep("cast"),
		DelayStep(0.3),
		EffectStep(func(b *Boss) { fired = append(fired, "first") }),
		DelayStep(0.2),
		EffectStep(func(b *Boss) { fired = append(fired, "second") }),
		AnimationStep("idle"),
	})
	b := newTestBoss(100, nil, p)
	b.SetTarget(&Target{ID: "player", Pos: common.Vec2{X: 10}, HP: 100, MaxHP: 100})

	b.SelectAndExecuteAttack()
	if b.CurrentAnimation != "cast" {
		t.Fatalf("leading animation should apply at invocation, got %q", b.CurrentAnimation)
	}
	if len(fired) != 0 {
		t.Fatalf("effects must wait for their delays, fired %v", fired)
	}

	b.Update(0.15)
	if len(fired) != 0 {
		t.Fatalf("first delay not elapsed yet, fired %v", fired)
	}

	b.Update(0.2)
	if len(fired) != 1 || fired[0] != "first" {
		t.Fatalf("expected first effect after 0.3s, got %v", fired)
	}

	b.Update(0.25)
	if len(fired) != 2 || fired[1] != "second" {
		t.Fatalf("expected second effect after second delay, got %v", fired)
	}
	if b.CurrentAnimation != "idle" {
		t.Fatalf("trailing animation should apply, got %q", b.CurrentAnimation)
	}
	if b.PatternInFlight() {
		t.Fatalf("sequence should be finished")
	}
}
