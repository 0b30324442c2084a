package combat

// EffectsSink receives presentation-side notifications from the engine.
// The game loop wires in an implementation that plays audio and drives
// cinematics; the engine never talks to an audio manager directly.
type EffectsSink interface {
	PlaySound(id string)
	OnPhaseChanged(phase int)
	OnBossDefeated()
}

// NopEffects discards every notification. Useful default for tests and
// headless runs.
type NopEffects struct{}

func (NopEffects) PlaySound(string) {}

func (NopEffects) OnPhaseChanged(int) {}

func (NopEffects) OnBossDefeated() {}
