package domain

import (
	"fmt"
	"strings"
)

// PlayOrder computes the seating order of the next trick.
//
// In a 2-player game the order is player1 then player2 until a trick has been won, after
// which the previous winner leads. In a 4-player game the fixed seat cycle is rotated to
// start at the previous winner, or at the opener for the first trick. When neither is known
// yet the rotation starts at player1; callers recompute once the opener is fixed.
func PlayOrder(playerCount int, previousWinner, opener PlayerID) []PlayerID {
	if playerCount == 2 {
		if previousWinner == Player2 {
			return []PlayerID{Player2, Player1}
		}
		return []PlayerID{Player1, Player2}
	}

	start := previousWinner
	if start == "" {
		start = opener
	}
	return rotateFrom(SeatCycle, start)
}

func rotateFrom(cycle []PlayerID, start PlayerID) []PlayerID {
	idx := 0
	for i, id := range cycle {
		if id == start {
			idx = i
			break
		}
	}
	out := make([]PlayerID, 0, len(cycle))
	for i := range cycle {
		out = append(out, cycle[(idx+i)%len(cycle)])
	}
	return out
}

// NextPlayer returns the seat after current in order. ok is false when current was the
// last to play or is not part of the order.
func NextPlayer(order []PlayerID, current PlayerID) (PlayerID, bool) {
	for i, id := range order {
		if id != current {
			continue
		}
		if i+1 < len(order) {
			return order[i+1], true
		}
		return "", false
	}
	return "", false
}

// Opponent returns the other seat of a 2-player game.
func Opponent(id PlayerID) PlayerID {
	if id == Player1 {
		return Player2
	}
	return Player1
}

// ParsePlayerID accepts "player3", "p3" or "3".
func ParsePlayerID(s string) (PlayerID, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimPrefix(strings.TrimPrefix(v, "player"), "p")
	for i, id := range SeatCycle {
		if v == fmt.Sprint(i+1) {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown player %q", s)
}
