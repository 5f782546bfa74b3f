package brain

import (
	"math"

	"bisca/internal/domain"
)

const trumpStrengthBonus = 20

// BeatFraction returns the share of unseen cards that would beat c if c opened the trick.
func BeatFraction(c domain.Card, unseen []domain.Card, trump *domain.Card) float64 {
	if len(unseen) == 0 {
		return 0
	}
	beaters := 0
	for _, u := range unseen {
		if domain.CompareCards(u, c, trump, c) > 0 {
			beaters++
		}
	}
	return float64(beaters) / float64(len(unseen))
}

// HandStrength scores a card from its strength, points and trump status, discounted by how
// many unseen cards could beat it.
func HandStrength(c domain.Card, trump *domain.Card, beatFraction float64) int {
	base := c.Strength()*5 + c.Points()*2
	if domain.IsTrump(c, trump) {
		base += trumpStrengthBonus
	}
	return int(math.Round(float64(base) * (1 - 0.5*beatFraction)))
}

// TrumpProbability returns the rounded percentage chance that at least one of the
// opponents holds a trump, treating each as drawing from the unseen population.
func TrumpProbability(unseen []domain.Card, trump *domain.Card, opponents int) int {
	if trump == nil || len(unseen) == 0 || opponents <= 0 {
		return 0
	}
	trumps := 0
	for _, c := range unseen {
		if domain.IsTrump(c, trump) {
			trumps++
		}
	}
	if trumps == 0 {
		return 0
	}
	perOpponent := float64(trumps) / float64(len(unseen))
	return int(math.Round((1 - math.Pow(1-perOpponent, float64(opponents))) * 100))
}
