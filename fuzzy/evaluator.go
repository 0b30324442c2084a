package fuzzy

// Crisp output levels for the aggression rules.
const (
	OutputRetreat    = 0.0
	OutputCautious   = 0.5
	OutputAggressive = 1.0
)

// Config holds the membership sets the evaluator reasons over. Distance
// sets are in world units; health sets are percentages in [0, 100].
type Config struct {
	DistClose  Trapezoid `yaml:"dist_close"`
	DistMedium Trapezoid `yaml:"dist_medium"`
	DistFar    Trapezoid `yaml:"dist_far"`

	HealthLow    Trapezoid `yaml:"health_low"`
	HealthMedium Trapezoid `yaml:"health_medium"`
	HealthHigh   Trapezoid `yaml:"health_high"`
}

// DefaultConfig returns the stock membership sets tuned for the arena
// scale used by the shipped encounters.
func DefaultConfig() Config {
	return Config{
		DistClose:  Trapezoid{A: 0, B: 0, C: 60, D: 150},
		DistMedium: Trapezoid{A: 100, B: 180, C: 300, D: 420},
		DistFar:    Trapezoid{A: 350, B: 480, C: 1e9, D: 1e9 + 1},

		HealthLow:    Trapezoid{A: 0, B: 0, C: 20, D: 40},
		HealthMedium: Trapezoid{A: 30, B: 45, C: 55, D: 70},
		HealthHigh:   Trapezoid{A: 60, B: 80, C: 100, D: 101},
	}
}

// ThreatEvaluator maps a combat snapshot to an aggression score. It is
// stateless beyond its configuration; identical inputs always produce
// identical outputs.
type ThreatEvaluator struct {
	cfg Config
}

func NewThreatEvaluator(cfg Config) *ThreatEvaluator {
	return &ThreatEvaluator{cfg: cfg}
}

// Evaluate returns an aggression score in [0, 1] given the distance to the
// target and both combatants' health percentages. When no rule fires it
// returns a neutral 0.5.
func (e *ThreatEvaluator) Evaluate(distance, targetHealthPct, ownHealthPct float64) float64 {
	distClose := e.cfg.DistClose.Degree(distance)
	distMedium := e.cfg.DistMedium.Degree(distance)
	distFar := e.cfg.DistFar.Degree(distance)

	targetLow := e.cfg.HealthLow.Degree(targetHealthPct)
	targetHigh := e.cfg.HealthHigh.Degree(targetHealthPct)
	ownLow := e.cfg.HealthLow.Degree(ownHealthPct)
	ownMedium := e.cfg.HealthMedium.Degree(ownHealthPct)
	ownHigh := e.cfg.HealthHigh.Degree(ownHealthPct)

	rules := []struct {
		strength float64
		output   float64
	}{
		// In close, target weak, self strong: press the advantage.
		{min3(distClose, targetLow, ownHigh), OutputAggressive},
		// Too far away or badly hurt: disengage.
		{max2(distFar, ownLow), OutputRetreat},
		// Mid-range with middling health: probe.
		{min2(distMedium, ownMedium), OutputCautious},
		// Both healthy: fight.
		{min2(ownHigh, targetHigh), OutputAggressive},
	}

	var num, den float64
	for _, r := range rules {
		num += r.strength * r.output
		den += r.strength
	}
	if den == 0 {
		return 0.5
	}
	return num / den
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func min3(a, b, c float64) float64 {
	return min2(min2(a, b), c)
}

func max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
