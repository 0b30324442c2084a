package combat

import (
	"strings"

	"github.com/milk9111/otterblade/common"
)

const (
	aggressionHighCutoff   = 0.75
	aggressionMediumCutoff = 0.5

	highPowerCost   = 40.0
	mediumCostFloor = 20.0
	mediumCostCeil  = 40.0
)

// SelectAndExecuteAttack picks an eligible pattern by aggression bucket
// and starts its step sequence. Every early exit is a silent no-op: still
// on cooldown, no target, a sequence already in flight, or nothing
// eligible are all valid idle conditions, not errors.
func (b *Boss) SelectAndExecuteAttack() {
	if b.Dead || b.attackCooldown > 0 || b.run != nil || b.target == nil {
		return
	}

	eligible := b.eligiblePatterns()
	if len(eligible) == 0 {
		return
	}

	distance := common.Dist(b.Pos, b.target.Pos)
	ownPct := float64(b.HP) / float64(b.MaxHP) * 100
	aggression := b.evaluator.Evaluate(distance, b.target.HealthPct(), ownPct)
	b.LastAggression = aggression

	chosen := b.pickByAggression(eligible, aggression)

	chosen.markUsed(b.now)
	b.attackCooldown = interAttackCooldown
	b.run = &patternRun{pattern: chosen}
	b.runSteps()
}

// eligiblePatterns filters the fixed set by phase gate and cooldown.
func (b *Boss) eligiblePatterns() []*Pattern {
	var out []*Pattern
	for _, p := range b.patterns {
		if p.MinPhase <= b.Phase && p.CooldownReady(b.now) {
			out = append(out, p)
		}
	}
	return out
}

// pickByAggression buckets eligible patterns by the aggression score:
// high aggression reaches for expensive patterns, medium for mid-cost
// ones, and low for defensive zone/pillar patterns. A bucket whose filter
// matches nothing falls back to the first eligible pattern, so an attack
// is always chosen when anything is eligible.
func (b *Boss) pickByAggression(eligible []*Pattern, aggression float64) *Pattern {
	var bucket []*Pattern
	switch {
	case aggression > aggressionHighCutoff:
		for _, p := range eligible {
			if p.WarmthDrain > highPowerCost {
				bucket = append(bucket, p)
			}
		}
	case aggression > aggressionMediumCutoff:
		for _, p := range eligible {
			if p.WarmthDrain >= mediumCostFloor && p.WarmthDrain <= mediumCostCeil {
				bucket = append(bucket, p)
			}
		}
	default:
		for _, p := range eligible {
			if strings.Contains(p.Name, "Zone") || strings.Contains(p.Name, "Pillar") {
				bucket = append(bucket, p)
			}
		}
	}

	if len(bucket) == 0 {
		return eligible[0]
	}
	return bucket[b.rng.Intn(len(bucket))]
}
