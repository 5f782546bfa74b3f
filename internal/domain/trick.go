package domain

import (
	"errors"
	"sort"
)

// ErrEmptyTrick is returned when a trick with no cards is resolved.
var ErrEmptyTrick = errors.New("trick has no played cards")

// TrickLeader is the card currently winning a trick and a short justification.
type TrickLeader struct {
	Play   PlayedCard
	Reason string
}

// TrickResult is the outcome of a finalized trick.
type TrickResult struct {
	Winner      PlayerID
	WinningCard Card
	PointsWon   int
}

func sortedByOrder(played []PlayedCard) []PlayedCard {
	out := append([]PlayedCard(nil), played...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// foldWinner returns the play that wins the sorted trick. The first card stays in front
// until a later card compares strictly greater against it.
func foldWinner(sorted []PlayedCard, trump *Card) PlayedCard {
	lead := sorted[0].Card
	winner := sorted[0]
	for _, pc := range sorted[1:] {
		if CompareCards(pc.Card, winner.Card, trump, lead) > 0 {
			winner = pc
		}
	}
	return winner
}

// CurrentTrickLeader resolves who is winning an in-progress trick. ok is false for an empty trick.
func CurrentTrickLeader(played []PlayedCard, trump *Card) (TrickLeader, bool) {
	if len(played) == 0 {
		return TrickLeader{}, false
	}
	sorted := sortedByOrder(played)
	winner := foldWinner(sorted, trump)
	return TrickLeader{Play: winner, Reason: leaderReason(winner.Card, sorted, trump)}, true
}

func leaderReason(c Card, sorted []PlayedCard, trump *Card) string {
	single := len(sorted) == 1
	switch {
	case IsTrump(c, trump) && single:
		return "only card played"
	case IsTrump(c, trump):
		return "wins with the strongest trump"
	case c.Suit == sorted[0].Card.Suit && single:
		return "opening card, sets the lead suit"
	case c.Suit == sorted[0].Card.Suit:
		return "wins with the strongest card of the lead suit"
	default:
		return "wins"
	}
}

// FinalizeTrick resolves the winner of a trick and the points it carries.
func FinalizeTrick(r Round, trump *Card) (TrickResult, error) {
	if len(r.PlayedCards) == 0 {
		return TrickResult{}, ErrEmptyTrick
	}
	winner := foldWinner(sortedByOrder(r.PlayedCards), trump)
	return TrickResult{
		Winner:      winner.PlayerID,
		WinningCard: winner.Card,
		PointsWon:   TotalPoints(r.Cards()),
	}, nil
}
