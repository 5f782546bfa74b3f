package advisor

import (
	"bisca/internal/domain"
)

// RiskLevel grades a play from the card, the points already in the trick and the chance that
// an opponent still holds trump.
func (t Tuning) RiskLevel(c domain.Card, trickPoints, trumpProbability int, trump *domain.Card) domain.RiskLevel {
	points, strength := c.Points(), c.Strength()
	atStake := points + trickPoints

	if domain.IsTrump(c, trump) && atStake >= t.TrumpStakeThreshold && trumpProbability > t.TrumpExposureProb {
		return domain.RiskHigh
	}
	if points >= t.ValuableCardPoints {
		switch {
		case trumpProbability > t.VeryHighRiskTrumpProb:
			return domain.RiskVeryHigh
		case trumpProbability > t.HighRiskTrumpProb:
			return domain.RiskHigh
		default:
			return domain.RiskMedium
		}
	}
	if strength >= t.StrongCardStrength && atStake >= t.StrongCardStakeMinimum {
		return domain.RiskMedium
	}
	if strength <= t.WeakCardStrength && points == 0 {
		return domain.RiskVeryLow
	}
	return domain.RiskLow
}
