package combat

import (
	"testing"

	"github.com/milk9111/otterblade/common"
)

type recordingSink struct {
	sounds   []string
	phases   []int
	defeated int
}

func (s *recordingSink) PlaySound(id string) { s.sounds = append(s.sounds, id) }

func (s *recordingSink) OnPhaseChanged(phase int) { s.phases = append(s.phases, phase) }

func (s *recordingSink) OnBossDefeated() { s.defeated++ }

func basicPattern(name string, minPhase int, cooldown, cost float64) *Pattern {
	return NewPattern(name, minPhase, cooldown, cost, []Step{
		AnimationStep("attack"),
		DelayStep(0.3),
		AnimationStep("idle"),
	})
}

func newTestBoss(maxHP int, sink EffectsSink, patterns ...*Pattern) *Boss {
	return NewBoss(BossConfig{
		ID:       "boss",
		Name:     "Riverlord Heron",
		MaxHP:    maxHP,
		Patterns: patterns,
		Effects:  sink,
	})
}

func TestPhaseTransitionMonotonic(t *testing.T) {
	b := newTestBoss(1000, nil)

	// Drive the health ratio through 1.0 -> 0.5 -> 0.7 -> 0.2 and confirm
	// the phase sequence 1, 2, 2, 3. The partial recovery must not drop
	// the phase back.
	steps := []struct {
		hp        int
		wantPhase int
	}{
		{1000, 1},
		{500, 2},
		{700, 2},
		{200, 3},
	}

	for _, s := range steps {
		b.HP = s.hp
		b.Invulnerable = false
		b.checkPhaseTransition()
		if b.Phase != s.wantPhase {
			t.Fatalf("hp=%d: phase = %d, want %d", s.hp, b.Phase, s.wantPhase)
		}
		// Undo the transition heal so the scripted hp values stay exact.
		b.HP = s.hp
	}
}

func TestPhaseTransitionHealAndInvulnerability(t *testing.T) {
	sink := &recordingSink{}
	b := newTestBoss(500, sink)

	b.TakeDamage(210) // 290/500 = 0.58 crosses the 0.6 threshold

	if b.Phase != 2 {
		t.Fatalf("expected phase 2, got %d", b.Phase)
	}
	if b.HP != 340 {
		t.Fatalf("expected transition heal to 340, got %d", b.HP)
	}
	if !b.Invulnerable {
		t.Fatalf("expected invulnerability window after transition")
	}
	if len(sink.phases) != 1 || sink.phases[0] != 2 {
		t.Fatalf("expected phase-change notification, got %v", sink.phases)
	}

	// Damage inside the window is rejected.
	b.TakeDamage(100)
	if b.HP != 340 {
		t.Fatalf("invulnerable damage changed hp to %d", b.HP)
	}

	// After the window elapses damage lands again.
	b.Update(2.01)
	if b.Invulnerable {
		t.Fatalf("invulnerability should expire after the window")
	}
	b.TakeDamage(100)
	if b.HP != 240 {
		t.Fatalf("expected hp 240 after window, got %d", b.HP)
	}
}

func TestTakeDamageAfterDeathIsNoop(t *testing.T) {
	sink := &recordingSink{}
	b := newTestBoss(100, sink)
	// Skip phase transitions so the kill lands in one hit.
	b.phaseThresholds = []float64{1.0}

	b.TakeDamage(150)
	if !b.Dead || b.HP != 0 {
		t.Fatalf("expected dead boss at 0 hp, got dead=%v hp=%d", b.Dead, b.HP)
	}
	if sink.defeated != 1 {
		t.Fatalf("expected one defeat notification, got %d", sink.defeated)
	}

	b.TakeDamage(50)
	if b.HP != 0 || sink.defeated != 1 {
		t.Fatalf("damage after death must be a no-op")
	}
}

func TestUpdateFacesTarget(t *testing.T) {
	b := newTestBoss(100, nil)
	target := &Target{ID: "player", Pos: common.Vec2{X: -50}, HP: 100, MaxHP: 100}
	b.SetTarget(target)

	b.Update(0.016)
	if b.Facing != -1 {
		t.Fatalf("expected boss to face left toward target, got %v", b.Facing)
	}

	target.Pos.X = 50
	b.Update(0.016)
	if b.Facing != 1 {
		t.Fatalf("expected boss to face right toward target, got %v", b.Facing)
	}
}

func TestSpawnedDescriptorsExpire(t *testing.T) {
	b := newTestBoss(100, nil)
	b.SpawnProjectile(common.Vec2{X: 100}, 10, 5, 1.0)
	b.SpawnHazard(common.Vec2{X: 40}, 60, 30, 8, 2.0)

	b.Update(0.5)
	if len(b.Projectiles) != 1 || len(b.HazardZones) != 1 {
		t.Fatalf("descriptors should survive within their lifetime")
	}

	b.Update(0.6) // projectile past 1.0s lifetime
	if len(b.Projectiles) != 0 {
		t.Fatalf("projectile should be pruned after lifetime")
	}
	if len(b.HazardZones) != 1 {
		t.Fatalf("hazard should survive its longer duration")
	}

	b.Update(1.0) // hazard past 2.0s duration
	if len(b.HazardZones) != 0 {
		t.Fatalf("hazard should be pruned after duration")
	}
}

func TestDeathDoesNotCancelInFlightPattern(t *testing.T) {
	fired := false
	p := NewPattern("Gale Slash", 1, 2.0, 25, []Step{
		DelayStep(0.5),
		EffectStep(func(b *Boss) { fired = true }),
	})
	b := newTestBoss(100, nil, p)
	b.phaseThresholds = []float64{1.0}
	b.SetTarget(&Target{ID: "player", Pos: common.Vec2{X: 10}, HP: 100, MaxHP: 100})

	b.SelectAndExecuteAttack()
	if !b.PatternInFlight() {
		t.Fatalf("expected pattern in flight")
	}

	b.TakeDamage(200)
	if !b.Dead {
		t.Fatalf("expected dead boss")
	}

	// The delayed continuation still fires after death.
	b.Update(0.6)
	if !fired {
		t.Fatalf("in-flight step sequence should keep advancing after death")
	}
}

func TestEndToEndEncounter(t *testing.T) {
	sink := &recordingSink{}
	slash := basicPattern("Gale Slash", 1, 2.0, 25)
	b := newTestBoss(500, sink, slash)
	target := &Target{ID: "player", Pos: common.Vec2{X: 80}, HP: 100, MaxHP: 100}
	b.SetTarget(target)

	// Whittle down to 290: phase 2, healed to 340, invulnerable.
	b.Update(0.016)
	b.TakeDamage(110)
	b.TakeDamage(100)

	if b.Phase != 2 || b.HP != 340 || !b.Invulnerable {
		t.Fatalf("after crossing threshold: phase=%d hp=%d invuln=%v", b.Phase, b.HP, b.Invulnerable)
	}

	b.TakeDamage(100)
	if b.HP != 340 {
		t.Fatalf("invulnerable hp changed to %d", b.HP)
	}

	b.Update(2.1)
	b.TakeDamage(100)
	if b.HP != 240 {
		t.Fatalf("expected 240 after window, got %d", b.HP)
	}

	// The boss still fights: selection picks the only pattern.
	b.SelectAndExecuteAttack()
	if b.CurrentAnimation != "attack" {
		t.Fatalf("expected attack animation, got %q", b.CurrentAnimation)
	}
}
