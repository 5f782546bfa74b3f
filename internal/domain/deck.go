package domain

import (
	"math/rand"
)

// NewDeck returns the 40-card deck in suit-major order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, NewCard(r, s))
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given cards. rng.Shuffle is a Fisher-Yates
// shuffle, so every permutation is equally likely.
func ShuffleDeck(rng *rand.Rand, deck []Card) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// CardsEqual compares cards structurally on rank and suit.
func CardsEqual(a, b Card) bool {
	return a.Rank == b.Rank && a.Suit == b.Suit
}

// FindCard returns the index of the first card equal to target, or -1.
func FindCard(cards []Card, target Card) int {
	for i, c := range cards {
		if CardsEqual(c, target) {
			return i
		}
	}
	return -1
}

// RemoveCard returns a copy of cards without the first match of target.
func RemoveCard(cards []Card, target Card) []Card {
	idx := FindCard(cards, target)
	if idx < 0 {
		return cards
	}
	out := make([]Card, 0, len(cards)-1)
	out = append(out, cards[:idx]...)
	return append(out, cards[idx+1:]...)
}

// ValidatePlay reports whether the card is held. Any held card may be played; there is no
// obligation to follow suit.
func ValidatePlay(card Card, hand []Card) bool {
	return FindCard(hand, card) >= 0
}

// TotalPoints sums the points of the given cards.
func TotalPoints(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Points()
	}
	return total
}

// IsTrump reports whether the card shares the trump card's suit. No trump means false.
func IsTrump(c Card, trump *Card) bool {
	if trump == nil {
		return false
	}
	return c.Suit == trump.Suit
}

// CompareCards returns 1 when a beats b, -1 when b beats a and 0 otherwise, given the
// trump and the card that opened the trick. Zero is not a tie to be broken: callers keep
// the current trick leader, which is how the opening card wins when nobody followed suit.
func CompareCards(a, b Card, trump *Card, lead Card) int {
	aTrump, bTrump := IsTrump(a, trump), IsTrump(b, trump)
	switch {
	case aTrump && !bTrump:
		return 1
	case bTrump && !aTrump:
		return -1
	case aTrump && bTrump:
		return compareStrength(a, b)
	}

	aLead, bLead := a.Suit == lead.Suit, b.Suit == lead.Suit
	switch {
	case aLead && !bLead:
		return 1
	case bLead && !aLead:
		return -1
	case aLead && bLead:
		return compareStrength(a, b)
	}
	return 0
}

func compareStrength(a, b Card) int {
	sa, sb := a.Strength(), b.Strength()
	switch {
	case sa > sb:
		return 1
	case sa < sb:
		return -1
	default:
		return 0
	}
}
