package perception

import (
	"math"
	"testing"

	"github.com/milk9111/otterblade/common"
)

func newTestState() *State {
	return NewState(Vision{FOV: math.Pi / 2, Range: 200}, 3.0)
}

func TestUpdateDirectSight(t *testing.T) {
	s := newTestState()
	s.Update(common.Vec2{}, 1, "player", common.Vec2{X: 100}, 0.016)

	if !s.TargetVisible {
		t.Fatalf("target directly ahead should be visible")
	}
	if s.Alert != AlertFull {
		t.Fatalf("direct sight should force full alert, got %v", s.Alert)
	}
	rec, ok := s.Memory.Get("player")
	if !ok {
		t.Fatalf("sighting should create a memory record")
	}
	if rec.Threat != 1.0 {
		t.Fatalf("sighted target threat should be 1.0, got %v", rec.Threat)
	}
}

func TestUpdateRecallDrivesInvestigation(t *testing.T) {
	s := newTestState()
	// See the player once, then lose sight behind the agent.
	s.Update(common.Vec2{}, 1, "player", common.Vec2{X: 100}, 0.016)
	s.Update(common.Vec2{}, 1, "player", common.Vec2{X: -100}, 0.5)

	if s.TargetVisible {
		t.Fatalf("target behind the agent should not be visible")
	}
	if !s.HasInvestigate {
		t.Fatalf("recent memory should set an investigate position")
	}
	if s.InvestigatePos.X != 100 {
		t.Fatalf("investigate position should be the remembered one, got %v", s.InvestigatePos)
	}
	if s.Alert < AlertSuspicious {
		t.Fatalf("recall should hold alert at suspicious or above, got %v", s.Alert)
	}
}

func TestUpdateRecallNeverLowersAlert(t *testing.T) {
	s := newTestState()
	s.Update(common.Vec2{}, 1, "player", common.Vec2{X: 100}, 0.016)
	s.Update(common.Vec2{}, 1, "player", common.Vec2{X: -100}, 0.5)

	if s.Alert != AlertFull {
		t.Fatalf("recall branch must not lower an existing full alert, got %v", s.Alert)
	}
}

func TestUpdateAlertDecaysWithoutStimulus(t *testing.T) {
	s := newTestState()
	s.Alert = 1.0
	// Target far out of range, no memory at all.
	s.Update(common.Vec2{}, 1, "player", common.Vec2{X: 5000}, 2.0)

	want := 1.0 - 2.0*alertDecayRate
	if math.Abs(s.Alert-want) > 1e-9 {
		t.Fatalf("expected alert %v after decay, got %v", want, s.Alert)
	}

	for i := 0; i < 10; i++ {
		s.Update(common.Vec2{}, 1, "player", common.Vec2{X: 5000}, 2.0)
	}
	if s.Alert != AlertUnaware {
		t.Fatalf("alert should floor at zero, got %v", s.Alert)
	}
}

func TestHearRaisesAlertByDistance(t *testing.T) {
	cases := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"point_blank", 0, 0.5},
		{"mid", 150, 0.25},
		{"faint", 299, (1 - 299.0/300.0) * 0.5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newTestState()
			s.Hear(SoundEvent{Position: common.Vec2{X: 50}, Kind: SoundFootstep}, c.distance)
			if math.Abs(s.Alert-c.want) > 1e-9 {
				t.Fatalf("expected alert %v, got %v", c.want, s.Alert)
			}
			if !s.HasInvestigate || s.InvestigatePos.X != 50 {
				t.Fatalf("non-ambient sound should set investigate position")
			}
		})
	}
}

func TestHearClampsAndSkipsAmbientInvestigate(t *testing.T) {
	s := newTestState()
	for i := 0; i < 10; i++ {
		s.Hear(SoundEvent{Kind: SoundAttack}, 0)
	}
	if s.Alert != AlertFull {
		t.Fatalf("alert should clamp at %v, got %v", AlertFull, s.Alert)
	}

	s2 := newTestState()
	s2.Hear(SoundEvent{Position: common.Vec2{X: 9}, Kind: SoundItem}, 10)
	if s2.HasInvestigate {
		t.Fatalf("ambient sound should not redirect investigation")
	}
}
