package perception

import "github.com/milk9111/otterblade/common"

const (
	// soundHorizon is how long an emitted event stays in the buffer.
	soundHorizon = 2.0
	// LoudnessRadiusScale converts loudness in [0,1] to a hearing radius.
	LoudnessRadiusScale = 150.0
)

// SoundKind tags the gameplay source of a sound event.
type SoundKind string

const (
	SoundFootstep SoundKind = "footstep"
	SoundAttack   SoundKind = "attack"
	SoundItem     SoundKind = "item"
	SoundDamage   SoundKind = "damage"
	SoundDoor     SoundKind = "door"
	SoundJump     SoundKind = "jump"
)

// Ambient reports whether the kind is background noise that should not
// redirect a listener's investigation.
func (k SoundKind) Ambient() bool {
	return k == SoundItem || k == SoundDoor
}

// SoundEvent is one emitted noise.
type SoundEvent struct {
	Position  common.Vec2
	Loudness  float64 // 0..1
	Kind      SoundKind
	Source    string
	CreatedAt float64
}

// Listener receives sound notifications from a Bus.
type Listener interface {
	Position() common.Vec2
	OnHearSound(ev SoundEvent, distance float64)
}

// Bus is the sound-propagation service shared by every agent in an
// encounter. It is constructed per encounter and injected; all calls are
// assumed to happen on the game-loop goroutine.
type Bus struct {
	capacity  int
	events    []SoundEvent
	listeners []Listener
	now       float64
}

// NewBus creates a bus with a bounded event buffer.
func NewBus(capacity int) *Bus {
	if capacity <= 0 {
		capacity = 32
	}
	return &Bus{capacity: capacity}
}

// Register adds a listener. Listeners are notified in registration order.
func (b *Bus) Register(l Listener) {
	if l == nil {
		return
	}
	b.listeners = append(b.listeners, l)
}

// Unregister removes a listener. Agents that are rebuilt or torn down
// mid-encounter must unregister or they keep hearing sounds.
func (b *Bus) Unregister(l Listener) {
	for i, existing := range b.listeners {
		if existing == l {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Emit appends an event, evicting the oldest when the buffer is full, and
// synchronously notifies every listener within loudness * 150 world units.
// The radius is evaluated once, at emission time.
func (b *Bus) Emit(pos common.Vec2, loudness float64, kind SoundKind, source string) {
	ev := SoundEvent{
		Position:  pos,
		Loudness:  loudness,
		Kind:      kind,
		Source:    source,
		CreatedAt: b.now,
	}
	if len(b.events) >= b.capacity {
		b.events = b.events[1:]
	}
	b.events = append(b.events, ev)

	radius := loudness * LoudnessRadiusScale
	for _, l := range b.listeners {
		dist := common.Dist(l.Position(), pos)
		if dist < radius {
			l.OnHearSound(ev, dist)
		}
	}
}

// Update advances the bus clock and drops events older than the horizon.
func (b *Bus) Update(delta float64) {
	b.now += delta
	kept := b.events[:0]
	for _, ev := range b.events {
		if b.now-ev.CreatedAt <= soundHorizon {
			kept = append(kept, ev)
		}
	}
	b.events = kept
}

// Events returns the live event buffer, oldest first.
func (b *Bus) Events() []SoundEvent {
	return b.events
}
