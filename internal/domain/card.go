package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Suit is one of the four suits of the 40-card deck.
type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Spades   Suit = "spades"
	Clubs    Suit = "clubs"
)

// Rank is one of the ten ranks of the deck (8, 9 and 10 are removed).
type Rank string

const (
	Ace   Rank = "A"
	Seven Rank = "7"
	King  Rank = "K"
	Jack  Rank = "J"
	Queen Rank = "Q"
	Six   Rank = "6"
	Five  Rank = "5"
	Four  Rank = "4"
	Three Rank = "3"
	Two   Rank = "2"
)

const (
	// DeckSize is the number of cards in a full deck.
	DeckSize = 40
	// DeckPoints is the sum of the points of every card in the deck.
	DeckPoints = 120
	// MajorityPoints is the score past which a side can no longer be caught.
	MajorityPoints = DeckPoints / 2
)

// Suits lists the suits in deck construction order.
var Suits = []Suit{Hearts, Diamonds, Spades, Clubs}

// Ranks lists the ranks from strongest to weakest.
var Ranks = []Rank{Ace, Seven, King, Jack, Queen, Six, Five, Four, Three, Two}

// Card is a single card. Points and strength derive from the rank; points are written to JSON
// for clients and ignored when decoding.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	type plain Card
	return json.Marshal(struct {
		plain
		Points int `json:"points"`
	}{plain(c), c.Points()})
}

// NewCard builds a card from its rank and suit.
func NewCard(r Rank, s Suit) Card {
	return Card{Rank: r, Suit: s}
}

// PointsFor returns the point value of a rank.
func PointsFor(r Rank) int {
	switch r {
	case Ace:
		return 11
	case Seven:
		return 10
	case King:
		return 4
	case Jack:
		return 3
	case Queen:
		return 2
	default:
		return 0
	}
}

// StrengthFor returns the trick-taking strength of a rank. It is a separate scale from points.
func StrengthFor(r Rank) int {
	switch r {
	case Ace:
		return 11
	case Seven:
		return 10
	case King:
		return 9
	case Jack:
		return 8
	case Queen:
		return 7
	case Six:
		return 6
	case Five:
		return 5
	case Four:
		return 4
	case Three:
		return 3
	case Two:
		return 2
	default:
		return 0
	}
}

// Points returns the point value of the card.
func (c Card) Points() int { return PointsFor(c.Rank) }

// Strength returns the trick-taking strength of the card.
func (c Card) Strength() int { return StrengthFor(c.Rank) }

// Valid reports whether both rank and suit belong to the deck.
func (c Card) Valid() bool {
	return suitIndex(c.Suit) >= 0 && rankIndex(c.Rank) >= 0
}

func (c Card) String() string {
	return string(c.Rank) + suitSymbol(c.Suit)
}

func suitSymbol(s Suit) string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Spades:
		return "♠"
	case Clubs:
		return "♣"
	default:
		return string(s)
	}
}

// ParseCard reads a card written as rank followed by suit, where the suit is a symbol
// (♥ ♦ ♠ ♣, with or without the emoji variation selector) or a letter (H D S C).
func ParseCard(s string) (Card, error) {
	in := strings.TrimSpace(strings.ReplaceAll(s, "\uFE0F", ""))
	if in == "" {
		return Card{}, fmt.Errorf("empty card")
	}
	runes := []rune(in)
	rank := Rank(strings.ToUpper(string(runes[:len(runes)-1])))
	var suit Suit
	switch strings.ToUpper(string(runes[len(runes)-1])) {
	case "♥", "H":
		suit = Hearts
	case "♦", "D":
		suit = Diamonds
	case "♠", "S":
		suit = Spades
	case "♣", "C":
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("unknown suit in %q", s)
	}
	c := Card{Rank: rank, Suit: suit}
	if rankIndex(c.Rank) < 0 {
		return Card{}, fmt.Errorf("unknown rank in %q", s)
	}
	return c, nil
}

func suitIndex(s Suit) int {
	for i, v := range Suits {
		if v == s {
			return i
		}
	}
	return -1
}

func rankIndex(r Rank) int {
	for i, v := range Ranks {
		if v == r {
			return i
		}
	}
	return -1
}

// Index maps a valid card to 0..39 (suit-major, strongest rank first). Invalid cards return -1.
func (c Card) Index() int {
	s, r := suitIndex(c.Suit), rankIndex(c.Rank)
	if s < 0 || r < 0 {
		return -1
	}
	return s*len(Ranks) + r
}

// CardAt is the inverse of Index.
func CardAt(i int) Card {
	return Card{Rank: Ranks[i%len(Ranks)], Suit: Suits[i/len(Ranks)]}
}
