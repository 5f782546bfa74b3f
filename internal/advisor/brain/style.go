package brain

import (
	"fmt"
	"math"

	"bisca/internal/domain"
)

// PlayKind is the classification of a single play.
type PlayKind int

const (
	PlayNeutral PlayKind = iota
	PlayAggressive
	PlayDefensive
)

const (
	minPlaysForStyle      = 3
	styleRatioThreshold   = 0.6
	minAdjustConfidence   = 50
	minDescribeConfidence = 40
)

// ClassifyPlay decides whether a play was aggressive, defensive or neutral. trickBefore
// holds the cards already in the trick when the card was played, so an empty slice means
// the card opened the trick. knownHand is the player's remaining hand when it is known.
func ClassifyPlay(card domain.Card, trickBefore []domain.Card, trump *domain.Card, knownHand []domain.Card) PlayKind {
	points, strength := card.Points(), card.Strength()
	opening := len(trickBefore) == 0
	trickPoints := domain.TotalPoints(trickBefore)

	switch {
	case points >= 10:
		return PlayAggressive
	case domain.IsTrump(card, trump) && strength >= 9:
		return PlayAggressive
	case !opening && trickPoints >= 10 && strength >= 7:
		return PlayAggressive
	}

	if strength <= 5 && holdsStrongCard(knownHand) && trickPoints >= 10 {
		return PlayDefensive
	}
	if points == 0 && strength <= 6 {
		return PlayDefensive
	}
	return PlayNeutral
}

func holdsStrongCard(hand []domain.Card) bool {
	for _, c := range hand {
		if c.Strength() >= 9 || c.Points() >= 10 {
			return true
		}
	}
	return false
}

// NewStyleAnalysis returns the starting analysis of a player.
func NewStyleAnalysis(id domain.PlayerID) domain.StyleAnalysis {
	return domain.StyleAnalysis{PlayerID: id, Style: domain.StyleUndetermined}
}

// RecordPlay folds one classified play into the running analysis.
func RecordPlay(a domain.StyleAnalysis, kind PlayKind) domain.StyleAnalysis {
	switch kind {
	case PlayAggressive:
		a.Counts.AggressivePlays++
	case PlayDefensive:
		a.Counts.DefensivePlays++
	case PlayNeutral:
	}
	a.Counts.TotalPlays++
	a.Style, a.Confidence = classify(a.Counts)
	return a
}

func classify(c domain.StyleCounts) (domain.Style, int) {
	if c.TotalPlays < minPlaysForStyle {
		return domain.StyleUndetermined, 0
	}
	aggressive := float64(c.AggressivePlays) / float64(c.TotalPlays)
	defensive := float64(c.DefensivePlays) / float64(c.TotalPlays)
	switch {
	case aggressive >= styleRatioThreshold:
		return domain.StyleAggressive, percent(aggressive)
	case defensive >= styleRatioThreshold:
		return domain.StyleDefensive, percent(defensive)
	default:
		return domain.StyleBalanced, percent(1 - math.Abs(aggressive-defensive))
	}
}

func percent(ratio float64) int {
	return int(math.Min(100, math.Round(ratio*100)))
}

// Adjustment is the bias an opponent's style puts on the user's choice.
type Adjustment struct {
	PreferAggressive bool
	PreferDefensive  bool
	Factor           float64
}

// AdjustmentFor returns how to lean against an opponent of the given style.
func AdjustmentFor(style domain.Style, confidence int) Adjustment {
	if confidence < minAdjustConfidence {
		return Adjustment{}
	}
	factor := float64(confidence) / 100
	switch style {
	case domain.StyleAggressive:
		return Adjustment{PreferDefensive: true, Factor: factor}
	case domain.StyleDefensive:
		return Adjustment{PreferAggressive: true, Factor: factor}
	case domain.StyleBalanced:
		return Adjustment{Factor: factor * 0.5}
	case domain.StyleUndetermined:
		return Adjustment{}
	}
	return Adjustment{}
}

// DescribeStyle renders an analysis as a short sentence.
func DescribeStyle(a domain.StyleAnalysis) string {
	if a.Confidence < minDescribeConfidence {
		return "Play pattern still undetermined, more plays are needed."
	}
	switch a.Style {
	case domain.StyleAggressive:
		return fmt.Sprintf("Aggressive player (%d%% confidence). Tends to play strong cards to win points.", a.Confidence)
	case domain.StyleDefensive:
		return fmt.Sprintf("Defensive player (%d%% confidence). Tends to keep strong cards and play weak ones.", a.Confidence)
	case domain.StyleBalanced:
		return fmt.Sprintf("Balanced player (%d%% confidence). Alternates between aggressive and defensive plays.", a.Confidence)
	case domain.StyleUndetermined:
	}
	return "Play pattern still undetermined."
}
