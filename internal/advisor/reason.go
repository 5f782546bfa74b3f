package advisor

import (
	"fmt"
	"strings"

	"bisca/internal/domain"
)

const fallbackReason = "Reasonable play in the current context."

type playContext struct {
	trickPoints      int
	opening          bool
	winning          bool
	remainingPoints  int
	risk             domain.RiskLevel
	trumpProbability int
}

func (t Tuning) reason(c domain.Card, ctx playContext, trump *domain.Card) string {
	points, strength := c.Points(), c.Strength()
	isTrump := domain.IsTrump(c, trump)

	var reasons []string
	if ctx.opening {
		switch {
		case points == 0 && strength <= t.LowCardStrength:
			reasons = append(reasons, "Weak card, ideal to open the trick")
		case points >= t.ValuableCardPoints && ctx.winning:
			reasons = append(reasons, "You are ahead and can risk winning points")
		case isTrump && strength >= t.StrongCardStrength:
			reasons = append(reasons, "Strong trump to secure points")
		}
	} else {
		switch {
		case ctx.trickPoints >= t.RichTrickPoints && (isTrump || strength >= t.StrongCardStrength):
			reasons = append(reasons, fmt.Sprintf("%d points at stake, worth trying to win", ctx.trickPoints))
		case ctx.trickPoints >= t.RichTrickPoints && points == 0 && strength <= t.WeakCardStrength:
			reasons = append(reasons, "Many points at stake, better not to risk a good card")
		case ctx.trickPoints == 0:
			reasons = append(reasons, "No points in the trick, save strong cards")
		}
	}

	if !ctx.winning && ctx.remainingPoints < t.BehindRemainingPoints {
		reasons = append(reasons, "You are behind and need to be more aggressive")
	}

	switch ctx.risk {
	case domain.RiskVeryLow:
		reasons = append(reasons, "Safe play")
	case domain.RiskVeryHigh:
		reasons = append(reasons, "Risky play, but it may pay off")
	case domain.RiskLow, domain.RiskMedium, domain.RiskHigh:
	}

	if ctx.trumpProbability > t.TrumpWarningProbability && !isTrump && points >= t.ValuableCardPoints {
		reasons = append(reasons, "Careful: an opponent very likely holds trump")
	}

	if len(reasons) == 0 {
		return fallbackReason
	}
	return strings.Join(reasons, ". ") + "."
}
