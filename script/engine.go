package script

import (
	"strings"

	"github.com/d5/tengo/v2"

	"github.com/milk9111/otterblade/combat"
	"github.com/milk9111/otterblade/common"
	"github.com/milk9111/otterblade/perception"
)

// buildEngine exposes the boss surface a script effect may touch.
// Durations cross the boundary in milliseconds to match the content
// specs; the engine converts to seconds internally.
func buildEngine(b *combat.Boss) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["spawn_projectile"] = &tengo.UserFunction{Name: "spawn_projectile", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b == nil || len(args) < 5 {
			return tengo.FalseValue, nil
		}
		vx := argFloat(args[0])
		vy := argFloat(args[1])
		damage := int(argFloat(args[2]))
		warmth := argFloat(args[3])
		lifetime := argFloat(args[4]) / 1000
		b.SpawnProjectile(common.Vec2{X: vx, Y: vy}, damage, warmth, lifetime)
		return tengo.TrueValue, nil
	}}

	values["spawn_hazard"] = &tengo.UserFunction{Name: "spawn_hazard", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b == nil || len(args) < 6 {
			return tengo.FalseValue, nil
		}
		offX := argFloat(args[0])
		offY := argFloat(args[1])
		width := argFloat(args[2])
		height := argFloat(args[3])
		damage := int(argFloat(args[4]))
		duration := argFloat(args[5]) / 1000
		b.SpawnHazard(common.Vec2{X: offX, Y: offY}, width, height, damage, duration)
		return tengo.TrueValue, nil
	}}

	values["play_sound"] = &tengo.UserFunction{Name: "play_sound", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		// Routed through the boss's sink by a dedicated sound step is
		// preferred, but scripts may cue one-off stingers directly.
		name := argString(args[0])
		if name == "" {
			return tengo.FalseValue, nil
		}
		b.PlayEffectSound(name)
		return tengo.TrueValue, nil
	}}

	values["set_animation"] = &tengo.UserFunction{Name: "set_animation", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		b.CurrentAnimation = argString(args[0])
		return tengo.TrueValue, nil
	}}

	values["emit_noise"] = &tengo.UserFunction{Name: "emit_noise", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		loudness := argFloat(args[0])
		kind := perception.SoundKind(argString(args[1]))
		b.EmitNoise(loudness, kind)
		return tengo.TrueValue, nil
	}}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b == nil {
			return vec2Array(common.Vec2{}), nil
		}
		return vec2Array(b.Pos), nil
	}}

	values["get_target_position"] = &tengo.UserFunction{Name: "get_target_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b == nil || b.Target() == nil {
			return vec2Array(common.Vec2{}), nil
		}
		return vec2Array(b.Target().Pos), nil
	}}

	values["get_facing"] = &tengo.UserFunction{Name: "get_facing", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b == nil {
			return &tengo.Float{Value: 1}, nil
		}
		return &tengo.Float{Value: b.Facing}, nil
	}}

	values["get_phase"] = &tengo.UserFunction{Name: "get_phase", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b == nil {
			return &tengo.Int{Value: 1}, nil
		}
		return &tengo.Int{Value: int64(b.Phase)}, nil
	}}

	values["get_aggression"] = &tengo.UserFunction{Name: "get_aggression", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if b == nil {
			return &tengo.Float{Value: 0.5}, nil
		}
		return &tengo.Float{Value: b.LastAggression}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func vec2Array(v common.Vec2) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: v.X},
		&tengo.Float{Value: v.Y},
	}}
}

func argFloat(obj tengo.Object) float64 {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value
	case *tengo.Int:
		return float64(v.Value)
	}
	return 0
}

func argString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	if s, ok := obj.(*tengo.String); ok {
		return s.Value
	}
	return strings.Trim(obj.String(), "\"")
}
