package brain

import (
	"bisca/internal/domain"
)

// CardStatus represents what the assistant knows about a specific card.
type CardStatus int

const (
	StatusUnknown CardStatus = iota // Not seen yet
	StatusMine                      // In the user's tracked hand
	StatusPlayed                    // Already on the table
)

// GameMemory is the assistant's view of the 40 cards.
type GameMemory struct {
	// DeckStatus tracks all 40 cards. Index = domain.Card.Index().
	DeckStatus [domain.DeckSize]CardStatus
}

// NewMemory initializes a fresh memory state.
func NewMemory() *GameMemory {
	return &GameMemory{}
}

// MemoryFromState builds the memory for the given hand and globally played cards.
func MemoryFromState(hand, played []domain.Card) *GameMemory {
	m := NewMemory()
	m.MarkMine(hand)
	m.MarkPlayed(played)
	return m
}

// Reset clears the memory for a new game.
func (m *GameMemory) Reset() {
	for i := range m.DeckStatus {
		m.DeckStatus[i] = StatusUnknown
	}
}

// MarkMine records the cards currently in the user's hand.
func (m *GameMemory) MarkMine(cards []domain.Card) {
	for _, c := range cards {
		if idx := c.Index(); idx >= 0 && m.DeckStatus[idx] != StatusPlayed {
			m.DeckStatus[idx] = StatusMine
		}
	}
}

// MarkPlayed records cards that have been played on the table.
func (m *GameMemory) MarkPlayed(cards []domain.Card) {
	for _, c := range cards {
		if idx := c.Index(); idx >= 0 {
			m.DeckStatus[idx] = StatusPlayed
		}
	}
}

// IsPlayed checks if a card has already been played.
func (m *GameMemory) IsPlayed(c domain.Card) bool {
	idx := c.Index()
	return idx >= 0 && m.DeckStatus[idx] == StatusPlayed
}

// Unseen returns every card not yet played, in deck order. Cards in the user's own hand are
// included: probabilities are taken over the whole unplayed population.
func (m *GameMemory) Unseen() []domain.Card {
	out := make([]domain.Card, 0, domain.DeckSize)
	for i, st := range m.DeckStatus {
		if st != StatusPlayed {
			out = append(out, domain.CardAt(i))
		}
	}
	return out
}
