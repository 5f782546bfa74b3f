package advisor

// Tuning holds the thresholds of the recommendation heuristics.
type Tuning struct {
	// Risk table.
	TrumpStakeThreshold     int // points at stake for a trump play to count as exposed
	TrumpExposureProb       int // trump probability above which an exposed trump play is high risk
	ValuableCardPoints      int // a card worth at least this is a point card
	VeryHighRiskTrumpProb   int
	HighRiskTrumpProb       int
	StrongCardStrength      int
	StrongCardStakeMinimum  int
	WeakCardStrength        int
	TrumpWarningProbability int

	// Reasoning.
	RichTrickPoints       int
	LowCardStrength       int
	BehindRemainingPoints int

	// Priority.
	StyleBonus float64
}

// DefaultTuning is the calibration used by Generate.
var DefaultTuning = Tuning{
	TrumpStakeThreshold:     20,
	TrumpExposureProb:       50,
	ValuableCardPoints:      10,
	VeryHighRiskTrumpProb:   60,
	HighRiskTrumpProb:       40,
	StrongCardStrength:      9,
	StrongCardStakeMinimum:  15,
	WeakCardStrength:        5,
	TrumpWarningProbability: 70,

	RichTrickPoints:       15,
	LowCardStrength:       6,
	BehindRemainingPoints: 40,

	StyleBonus: 10,
}
