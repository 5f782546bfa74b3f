// Package advisor ranks the cards of the user's tracked hand and explains the choice.
package advisor

import (
	"fmt"
	"math"
	"sort"

	"bisca/internal/advisor/brain"
	"bisca/internal/domain"
)

// view is the part of the game state shared by every card evaluation.
type view struct {
	state            *domain.GameState
	unseen           []domain.Card
	opponents        []domain.PlayerID
	trickPoints      int
	opening          bool
	userPoints       float64
	opponentAverage  float64
	remainingPoints  int
	trumpProbability int
}

func newView(s *domain.GameState) view {
	user := s.Config.UserID
	v := view{
		state:           s,
		unseen:          brain.MemoryFromState(s.UserHand, s.PlayedCards).Unseen(),
		opponents:       domain.Opponents(s, user),
		opening:         true,
		userPoints:      float64(domain.SidePoints(s, user)),
		remainingPoints: domain.RemainingPoints(s.PlayedCards),
	}
	if s.Current != nil && len(s.Current.PlayedCards) > 0 {
		v.opening = false
		v.trickPoints = domain.TotalPoints(s.Current.Cards())
	}
	switch {
	case len(v.opponents) == 0:
	case s.IsTeamGame():
		// Team points are pooled, so each opponent carries the whole opposing team's score.
		v.opponentAverage = float64(domain.SidePoints(s, v.opponents[0]))
	default:
		total := 0
		for _, id := range v.opponents {
			if p, ok := s.Players[id]; ok {
				total += p.Points
			}
		}
		v.opponentAverage = float64(total) / float64(len(v.opponents))
	}
	v.trumpProbability = brain.TrumpProbability(v.unseen, s.Trump, len(v.opponents))
	return v
}

// Generate returns a recommendation for every card of the tracked hand, best first. Cards of
// equal priority keep their hand order.
func Generate(s *domain.GameState) []domain.Recommendation {
	return DefaultTuning.Generate(s)
}

// Generate ranks the hand using the receiver's thresholds.
func (t Tuning) Generate(s *domain.GameState) []domain.Recommendation {
	if s == nil || len(s.UserHand) == 0 {
		return nil
	}
	v := newView(s)
	recs := make([]domain.Recommendation, 0, len(s.UserHand))
	for _, c := range s.UserHand {
		recs = append(recs, t.evaluate(c, v))
	}
	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Priority > recs[j].Priority })
	return recs
}

// Best returns the top recommendation, or false for an empty hand.
func Best(s *domain.GameState) (domain.Recommendation, bool) {
	recs := Generate(s)
	if len(recs) == 0 {
		return domain.Recommendation{}, false
	}
	return recs[0], true
}

// Explain describes how good a specific card would be right now.
func Explain(c domain.Card, s *domain.GameState) string {
	rec := DefaultTuning.evaluate(c, newView(s))
	return fmt.Sprintf("%s (priority: %d/100, risk: %s)", rec.Reason, rec.Priority, rec.RiskLevel)
}

func (t Tuning) evaluate(c domain.Card, v view) domain.Recommendation {
	s := v.state
	beat := brain.BeatFraction(c, v.unseen, s.Trump)
	strength := brain.HandStrength(c, s.Trump, beat)
	risk := t.RiskLevel(c, v.trickPoints, v.trumpProbability, s.Trump)

	priority := float64(strength)
	for _, id := range v.opponents {
		a, ok := s.StyleAnalyses[id]
		if !ok {
			continue
		}
		adj := brain.AdjustmentFor(a.Style, a.Confidence)
		switch {
		case adj.PreferAggressive && (c.Points() >= t.ValuableCardPoints || c.Strength() >= t.StrongCardStrength):
			priority += t.StyleBonus * adj.Factor
		case adj.PreferDefensive && c.Points() == 0 && c.Strength() <= t.LowCardStrength:
			priority += t.StyleBonus * adj.Factor
		}
	}
	priority = math.Max(0, math.Min(100, priority))

	winning := v.userPoints > v.opponentAverage
	ctx := playContext{
		trickPoints:      v.trickPoints,
		opening:          v.opening,
		winning:          winning,
		remainingPoints:  v.remainingPoints,
		risk:             risk,
		trumpProbability: v.trumpProbability,
	}

	return domain.Recommendation{
		Card:           c,
		Priority:       int(math.Round(priority)),
		Reason:         t.reason(c, ctx, s.Trump),
		RiskLevel:      risk,
		WinProbability: domain.WinProbability(v.userPoints, v.opponentAverage, float64(v.remainingPoints)),
		Details: domain.RecommendationDetails{
			HandStrength:       strength,
			RemainingCardCount: len(v.unseen),
			TrumpProbability:   v.trumpProbability,
			PointsAtStake:      v.trickPoints + c.Points(),
		},
	}
}
