package combat

import "github.com/milk9111/otterblade/common"

// Projectile is a descriptor for a boss-spawned projectile. The engine
// decides when one exists and for how long; the physics layer owns its
// motion and collision against the player.
type Projectile struct {
	Pos         common.Vec2
	Vel         common.Vec2
	Damage      int
	WarmthDrain float64
	Lifetime    float64 // seconds
	CreatedAt   float64
}

// HazardZone is a time-limited rectangular area that deals periodic damage
// to anything inside it. Like projectiles, collision testing happens
// outside the engine.
type HazardZone struct {
	Bounds    common.Rect
	Damage    int
	Duration  float64 // seconds
	CreatedAt float64
}
