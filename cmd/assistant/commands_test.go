package main

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"

	"bisca/internal/app"
	"bisca/internal/domain"
	"bisca/internal/logging"
	"bisca/internal/ports/memory"
)

func TestParseCommand(t *testing.T) {
	trump := domain.NewCard(domain.Four, domain.Spades)
	tests := []struct {
		line    string
		want    command
		wantErr bool
	}{
		{"start", command{action: app.Start{Config: domain.Config{PlayerCount: 2, UserID: domain.Player1}}}, false},
		{"start 4 p3 Ana,Rui,Eva,Tó 4S", command{action: app.Start{Config: domain.Config{
			PlayerCount: 4, UserID: domain.Player3, PlayerNames: []string{"Ana", "Rui", "Eva", "Tó"}, Trump: &trump,
		}}}, false},
		{"start four", command{}, true},
		{"play 2 7♥", command{action: app.RegisterPlay{PlayerID: domain.Player2, Card: domain.NewCard(domain.Seven, domain.Hearts)}}, false},
		{"play p2", command{}, true},
		{"play 2 9H", command{}, true},
		{"hand AH 2c", command{action: app.UpdateHand{Cards: []domain.Card{
			domain.NewCard(domain.Ace, domain.Hearts), domain.NewCard(domain.Two, domain.Clubs),
		}}}, false},
		{"recommend", command{action: app.RequestRecommendation{}}, false},
		{"FINALIZE", command{action: app.FinalizeRound{}}, false},
		{"reset", command{action: app.Reset{}}, false},
		{"score", command{query: queryScore}, false},
		{"leader", command{query: queryLeader}, false},
		{"styles", command{query: queryStyles}, false},
		{"quit", command{quit: true}, false},
		{"dance", command{}, true},
		{"   ", command{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseCommand(tt.line, 2)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.query != tt.want.query || got.quit != tt.want.quit {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			if !sameAction(got.action, tt.want.action) {
				t.Errorf("action %#v, want %#v", got.action, tt.want.action)
			}
		})
	}
}

func sameAction(a, b app.Action) bool {
	if sa, ok := a.(app.Start); ok {
		sb, ok := b.(app.Start)
		if !ok {
			return false
		}
		ca, cb := sa.Config, sb.Config
		if ca.PlayerCount != cb.PlayerCount || ca.UserID != cb.UserID || strings.Join(ca.PlayerNames, ",") != strings.Join(cb.PlayerNames, ",") {
			return false
		}
		if (ca.Trump == nil) != (cb.Trump == nil) {
			return false
		}
		return ca.Trump == nil || *ca.Trump == *cb.Trump
	}
	if ha, ok := a.(app.UpdateHand); ok {
		hb, ok := b.(app.UpdateHand)
		if !ok || len(ha.Cards) != len(hb.Cards) {
			return false
		}
		for i := range ha.Cards {
			if !domain.CardsEqual(ha.Cards[i], hb.Cards[i]) {
				return false
			}
		}
		return true
	}
	return a == b
}

func TestRunSession(t *testing.T) {
	ctx := context.Background()
	sess, err := app.OpenSession(ctx, app.NewService(rand.New(rand.NewSource(7)), logging.Nop()), memory.NewStore(), "slot", logging.Nop())
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	input := strings.Join([]string{
		"start 2 1 Ana,Rui 4S",
		"hand AH 2C KD",
		"recommend",
		"play 1 AH",
		"leader",
		"play 2 7H",
		"finalize",
		"styles",
		"bogus",
		"quit",
		"play 1 2C",
	}, "\n")

	var out bytes.Buffer
	if err := run(ctx, sess, 2, strings.NewReader(input), &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"play ",
		"Ana leads with A♥",
		"leader player1 by 21, 99 points left",
		`unknown command "bogus"`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "error (") {
		t.Errorf("no action should be rejected:\n%s", text)
	}
	if n := len(sess.State().PlayedCards); n != 2 {
		t.Errorf("input after quit must be ignored, got %d played cards", n)
	}
}

func TestRenderResultRejection(t *testing.T) {
	var out bytes.Buffer
	renderResult(&out, app.Result{Error: "game not started", Kind: app.KindInvalidState}, domain.NewGameState())
	if got := out.String(); got != "error (invalid_state): game not started\n" {
		t.Errorf("unexpected output %q", got)
	}
}
