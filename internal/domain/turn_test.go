package domain

import (
	"reflect"
	"testing"
)

func TestPlayOrder(t *testing.T) {
	tests := []struct {
		name           string
		playerCount    int
		previousWinner PlayerID
		opener         PlayerID
		want           []PlayerID
	}{
		{"two players first round", 2, "", "", []PlayerID{Player1, Player2}},
		{"two players after player2 wins", 2, Player2, "", []PlayerID{Player2, Player1}},
		{"two players after player1 wins", 2, Player1, "", []PlayerID{Player1, Player2}},
		{"four players opener seat 3", 4, "", Player3, []PlayerID{Player3, Player4, Player1, Player2}},
		{"four players winner overrides opener", 4, Player2, Player3, []PlayerID{Player2, Player3, Player4, Player1}},
		{"four players nothing known", 4, "", "", []PlayerID{Player1, Player2, Player3, Player4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlayOrder(tt.playerCount, tt.previousWinner, tt.opener)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextPlayer(t *testing.T) {
	order := []PlayerID{Player3, Player4, Player1, Player2}
	if next, ok := NextPlayer(order, Player4); !ok || next != Player1 {
		t.Errorf("expected player1 after player4, got %s %v", next, ok)
	}
	if _, ok := NextPlayer(order, Player2); ok {
		t.Errorf("last player of the trick has no successor")
	}
	if _, ok := NextPlayer([]PlayerID{Player1, Player2}, Player3); ok {
		t.Errorf("unknown player has no successor")
	}
}

func TestParsePlayerID(t *testing.T) {
	for in, want := range map[string]PlayerID{"player3": Player3, "P2": Player2, "4": Player4, " 1 ": Player1} {
		got, err := ParsePlayerID(in)
		if err != nil || got != want {
			t.Errorf("ParsePlayerID(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParsePlayerID("player5"); err == nil {
		t.Errorf("expected error for unknown seat")
	}
}
