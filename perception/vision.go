package perception

import (
	"math"

	"github.com/milk9111/otterblade/common"
)

// Vision describes an agent's sight cone.
type Vision struct {
	FOV   float64 // radians, total arc width
	Range float64 // world units
}

// CanSee reports whether a target point falls inside the vision cone of an
// observer at selfPos facing left (-1) or right (+1). Facing is a sign
// along the x axis, not a full heading; the side-scrolling agents only
// ever look left or right, and the angular check widens that into a cone.
func (v Vision) CanSee(selfPos common.Vec2, facing float64, targetPos common.Vec2) bool {
	to := targetPos.Sub(selfPos)
	dist := to.Len()
	if dist > v.Range {
		return false
	}
	if dist == 0 {
		return true
	}

	forward := common.Vec2{X: 1}
	if facing < 0 {
		forward = common.Vec2{X: -1}
	}

	dot := common.Clamp(forward.Dot(to.Normalized()), -1, 1)
	angle := math.Acos(dot)
	return angle <= v.FOV/2
}
