package perception

import "github.com/milk9111/otterblade/common"

// Alert levels. The alert value is continuous; these are the meaningful
// waypoints on the [0, 2] scale.
const (
	AlertUnaware    = 0.0
	AlertSuspicious = 1.0
	AlertFull       = 2.0
)

const (
	// alertDecayRate is how fast alert drains per second with no stimulus.
	alertDecayRate = 0.2
	// recallHorizon is how recent a memory must be to drive investigation.
	recallHorizon = 2.0
	// hearingFalloff is the distance at which a heard sound adds nothing.
	hearingFalloff = 300.0
)

// State is the perception side of one agent: what it can see right now,
// what it remembers, and how alert that has made it.
type State struct {
	Vision Vision
	Memory *Memory

	Alert          float64
	InvestigatePos common.Vec2
	HasInvestigate bool

	// TargetVisible is true when the tracked target was in the vision cone
	// on the last Update.
	TargetVisible bool
}

func NewState(vision Vision, memorySpan float64) *State {
	return &State{
		Vision: vision,
		Memory: NewMemory(memorySpan),
	}
}

// Update runs one perception tick against the tracked target: a direct
// sighting refreshes memory and forces full alert; otherwise a recent
// memory keeps the agent at least suspicious and points investigation at
// the remembered position; with nothing usable, alert decays toward zero.
// Memory aging always runs last so a fresh sighting survives the tick.
func (s *State) Update(selfPos common.Vec2, facing float64, targetID string, targetPos common.Vec2, delta float64) {
	if s.Vision.CanSee(selfPos, facing, targetPos) {
		s.Memory.Remember(targetID, targetPos)
		s.Memory.SetThreat(targetID, 1.0)
		s.Alert = AlertFull
		s.TargetVisible = true
	} else {
		s.TargetVisible = false
		if rec, ok := s.Memory.Get(targetID); ok && rec.Elapsed < recallHorizon {
			s.InvestigatePos = rec.LastPosition
			s.HasInvestigate = true
			if s.Alert < AlertSuspicious {
				s.Alert = AlertSuspicious
			}
		} else {
			s.Alert -= delta * alertDecayRate
			if s.Alert < AlertUnaware {
				s.Alert = AlertUnaware
			}
		}
	}

	s.Memory.Update(delta)
}

// Hear applies a sound notification: closer sounds raise alert more, and
// non-ambient sounds redirect investigation unless the agent is already
// fully alert (a fully alert agent trusts its eyes over its ears).
func (s *State) Hear(ev SoundEvent, distance float64) {
	s.Alert += (1 - distance/hearingFalloff) * 0.5
	if s.Alert > AlertFull {
		s.Alert = AlertFull
	}
	if s.Alert < AlertFull && !ev.Kind.Ambient() {
		s.InvestigatePos = ev.Position
		s.HasInvestigate = true
	}
}

// ClearInvestigate drops the current investigation point.
func (s *State) ClearInvestigate() {
	s.HasInvestigate = false
	s.InvestigatePos = common.Vec2{}
}
