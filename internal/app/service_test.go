package app

import (
	"math/rand"
	"reflect"
	"testing"

	"bisca/internal/domain"
	"bisca/internal/logging"
)

func newTestService(seed int64) *Service {
	return NewService(rand.New(rand.NewSource(seed)), logging.Nop())
}

func mustApply(t *testing.T, svc *Service, state *domain.GameState, action Action) (*domain.GameState, Result) {
	t.Helper()
	next, res := svc.Apply(state, action)
	if !res.Success {
		t.Fatalf("%T failed: %s (%s)", action, res.Error, res.Kind)
	}
	return next, res
}

func card(r domain.Rank, s domain.Suit) domain.Card { return domain.NewCard(r, s) }

func startTwoPlayer(t *testing.T, svc *Service) *domain.GameState {
	t.Helper()
	trump := card(domain.Four, domain.Spades)
	state, _ := mustApply(t, svc, nil, Start{Config: domain.Config{
		PlayerCount: 2,
		PlayerNames: []string{"Ana", "Rui"},
		UserID:      domain.Player1,
		Trump:       &trump,
	}})
	return state
}

func TestStartTwoPlayer(t *testing.T) {
	svc := newTestService(42)
	state := startTwoPlayer(t, svc)

	if state.Status != domain.StatusInProgress {
		t.Fatalf("status = %s, want in_progress", state.Status)
	}
	if state.Trump == nil || *state.Trump != card(domain.Four, domain.Spades) {
		t.Fatalf("configured trump not applied: %v", state.Trump)
	}
	if state.Current == nil || state.Current.Number != 1 {
		t.Fatalf("expected round 1 to be active")
	}
	if state.Next != domain.Player1 {
		t.Errorf("next = %s, want player1", state.Next)
	}
	if state.CardsRemainingInDeck != 34 {
		t.Errorf("stock = %d, want 34", state.CardsRemainingInDeck)
	}
	for _, id := range []domain.PlayerID{domain.Player1, domain.Player2} {
		p := state.Players[id]
		if p == nil || p.HandSize != TwoPlayerHandSize {
			t.Fatalf("player %s not dealt: %+v", id, p)
		}
		if a := state.StyleAnalyses[id]; a.Style != domain.StyleUndetermined {
			t.Errorf("style of %s should start undetermined, got %s", id, a.Style)
		}
	}
	if !state.Players[domain.Player1].IsUser || state.Players[domain.Player2].IsUser {
		t.Errorf("only player1 should be the user")
	}
	if state.Teams != nil {
		t.Errorf("2-player game should have no teams")
	}
}

func TestStartDrawsTrumpFromDeck(t *testing.T) {
	svc := newTestService(7)
	state, _ := mustApply(t, svc, nil, Start{Config: domain.Config{PlayerCount: 4}})
	if state.Trump == nil || !state.Trump.Valid() {
		t.Fatalf("expected a trump drawn from the deck, got %v", state.Trump)
	}
	if state.Players[domain.Player3].Name != "Player 3" {
		t.Errorf("missing names should default, got %q", state.Players[domain.Player3].Name)
	}
	if state.CardsRemainingInDeck != 0 || state.Players[domain.Player1].HandSize != FourPlayerHandSize {
		t.Errorf("4-player game deals the whole deck")
	}
	if state.Teams[domain.TeamA].MemberIDs[1] != domain.Player3 || state.Teams[domain.TeamB].MemberIDs[0] != domain.Player2 {
		t.Errorf("unexpected team partition %+v %+v", state.Teams[domain.TeamA], state.Teams[domain.TeamB])
	}
}

func TestEndToEndTwoPlayerTrick(t *testing.T) {
	svc := newTestService(1)
	state := startTwoPlayer(t, svc)

	state, _ = mustApply(t, svc, state, RegisterPlay{PlayerID: domain.Player1, Card: card(domain.Two, domain.Hearts)})
	if state.Next != domain.Player2 {
		t.Fatalf("next = %s, want player2", state.Next)
	}
	if state.FirstPlayerOfGame != domain.Player1 {
		t.Errorf("first player should be recorded, got %q", state.FirstPlayerOfGame)
	}
	state, _ = mustApply(t, svc, state, RegisterPlay{PlayerID: domain.Player2, Card: card(domain.Seven, domain.Hearts)})
	if state.Next != "" {
		t.Errorf("complete trick should have no next player, got %s", state.Next)
	}

	state, res := mustApply(t, svc, state, FinalizeRound{})
	var finalized *RoundFinalizedPayload
	for _, ev := range res.Events {
		if ev.Kind == EventRoundFinalized {
			p := ev.Payload.(RoundFinalizedPayload)
			finalized = &p
		}
	}
	if finalized == nil {
		t.Fatalf("expected a round finalized event")
	}
	if finalized.Result.Winner != domain.Player2 || finalized.Result.PointsWon != 10 {
		t.Errorf("unexpected trick result %+v", finalized.Result)
	}
	if got := state.Players[domain.Player2].Points; got != 10 {
		t.Errorf("player2 points = %d, want 10", got)
	}
	if got := svc.Scorecard(state).RemainingPoints; got != 110 {
		t.Errorf("remaining points = %d, want 110", got)
	}
	if state.Next != domain.Player2 {
		t.Errorf("trick winner should lead next, got %s", state.Next)
	}
	if !reflect.DeepEqual(svc.PlayOrder(state), []domain.PlayerID{domain.Player2, domain.Player1}) {
		t.Errorf("unexpected order %v", svc.PlayOrder(state))
	}
	if state.CardsRemainingInDeck != 32 || state.Players[domain.Player1].HandSize != TwoPlayerHandSize {
		t.Errorf("both players should draw after the trick: stock %d hand %d", state.CardsRemainingInDeck, state.Players[domain.Player1].HandSize)
	}
	if len(state.Rounds) != 1 || !state.Rounds[0].Complete || state.Current.Number != 2 {
		t.Errorf("unexpected round bookkeeping: %+v current %+v", state.Rounds, state.Current)
	}
}

func TestApplyErrors(t *testing.T) {
	svc := newTestService(3)
	started := startTwoPlayer(t, svc)
	afterOne, _ := mustApply(t, svc, started, RegisterPlay{PlayerID: domain.Player1, Card: card(domain.Two, domain.Hearts)})

	tests := []struct {
		name   string
		state  *domain.GameState
		action Action
		kind   ErrorKind
	}{
		{"play before start", domain.NewGameState(), RegisterPlay{PlayerID: domain.Player1, Card: card(domain.Ace, domain.Hearts)}, KindInvalidState},
		{"start twice", started, Start{Config: domain.Config{PlayerCount: 2}}, KindInvalidState},
		{"three players", nil, Start{Config: domain.Config{PlayerCount: 3}}, KindInvalidInput},
		{"user outside game", nil, Start{Config: domain.Config{PlayerCount: 2, UserID: domain.Player3}}, KindInvalidInput},
		{"opener in two player game", nil, Start{Config: domain.Config{PlayerCount: 2, Opener: domain.Player2}}, KindInvalidInput},
		{"wrong turn", started, RegisterPlay{PlayerID: domain.Player2, Card: card(domain.Ace, domain.Hearts)}, KindInvalidTurn},
		{"played twice", afterOne, RegisterPlay{PlayerID: domain.Player1, Card: card(domain.Ace, domain.Hearts)}, KindInvalidTurn},
		{"card already played", afterOne, RegisterPlay{PlayerID: domain.Player2, Card: card(domain.Two, domain.Hearts)}, KindInvalidInput},
		{"unknown seat", started, RegisterPlay{PlayerID: domain.Player4, Card: card(domain.Ace, domain.Hearts)}, KindInvalidInput},
		{"invalid card", started, RegisterPlay{PlayerID: domain.Player1, Card: domain.Card{Rank: "9", Suit: domain.Hearts}}, KindInvalidInput},
		{"recommend empty hand", started, RequestRecommendation{}, KindMissingContext},
		{"finalize empty trick", started, FinalizeRound{}, KindUnresolvableTrick},
		{"finalize incomplete trick", afterOne, FinalizeRound{}, KindMissingContext},
		{"finalize before start", domain.NewGameState(), FinalizeRound{}, KindMissingContext},
		{"duplicate hand card", started, UpdateHand{Cards: []domain.Card{card(domain.Ace, domain.Hearts), card(domain.Ace, domain.Hearts)}}, KindInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res := svc.Apply(tt.state, tt.action)
			if res.Success {
				t.Fatalf("expected failure")
			}
			if res.Kind != tt.kind {
				t.Errorf("kind = %s, want %s (%s)", res.Kind, tt.kind, res.Error)
			}
			if res.Error == "" {
				t.Errorf("expected an error message")
			}
			if tt.state != nil && got != tt.state {
				t.Errorf("failed action must return the original state")
			}
		})
	}

	if len(started.PlayedCards) != 0 || len(started.Current.PlayedCards) != 0 {
		t.Errorf("successful play must not modify the input state")
	}
}

func TestUserHandAndRecommendation(t *testing.T) {
	svc := newTestService(5)
	state := startTwoPlayer(t, svc)
	hand := []domain.Card{card(domain.Two, domain.Hearts), card(domain.Ace, domain.Spades), card(domain.King, domain.Clubs)}

	state, _ = mustApply(t, svc, state, UpdateHand{Cards: hand})
	state, res := mustApply(t, svc, state, RequestRecommendation{})
	if state.Recommendation == nil || state.Recommendation.Card != card(domain.Ace, domain.Spades) {
		t.Fatalf("expected A♠ to be recommended, got %+v", state.Recommendation)
	}
	if res.Message == "" {
		t.Errorf("expected a message")
	}

	state, _ = mustApply(t, svc, state, RegisterPlay{PlayerID: domain.Player1, Card: card(domain.Two, domain.Hearts)})
	if state.Recommendation != nil {
		t.Errorf("recommendation should be cleared after a play")
	}
	if len(state.UserHand) != 2 || domain.FindCard(state.UserHand, card(domain.Two, domain.Hearts)) >= 0 {
		t.Errorf("played card should leave the tracked hand: %v", state.UserHand)
	}
	if got := state.StyleAnalyses[domain.Player1].Counts.TotalPlays; got != 1 {
		t.Errorf("user play should be analyzed, got %d plays", got)
	}
}

func TestFourPlayerDynamicOpener(t *testing.T) {
	svc := newTestService(9)
	trump := card(domain.Four, domain.Spades)
	state, _ := mustApply(t, svc, nil, Start{Config: domain.Config{PlayerCount: 4, UserID: domain.Player1, Trump: &trump}})
	if state.Next != "" || state.FirstPlayerOfGame != "" {
		t.Fatalf("opener should be unresolved before the first card, next %q first %q", state.Next, state.FirstPlayerOfGame)
	}

	plays := []RegisterPlay{
		{PlayerID: domain.Player3, Card: card(domain.Ace, domain.Hearts)},
		{PlayerID: domain.Player4, Card: card(domain.Seven, domain.Hearts)},
		{PlayerID: domain.Player1, Card: card(domain.Two, domain.Spades)},
		{PlayerID: domain.Player2, Card: card(domain.King, domain.Hearts)},
	}
	state, _ = mustApply(t, svc, state, plays[0])
	if state.FirstPlayerOfGame != domain.Player3 {
		t.Fatalf("opener should be player3, got %q", state.FirstPlayerOfGame)
	}
	if !reflect.DeepEqual(svc.PlayOrder(state), []domain.PlayerID{domain.Player3, domain.Player4, domain.Player1, domain.Player2}) {
		t.Errorf("unexpected order %v", svc.PlayOrder(state))
	}
	if state.Next != domain.Player4 {
		t.Errorf("next = %s, want player4", state.Next)
	}
	for _, p := range plays[1:] {
		state, _ = mustApply(t, svc, state, p)
	}
	leader, ok := svc.TrickLeader(state)
	if !ok || leader.Play.PlayerID != domain.Player1 {
		t.Errorf("trump should lead the trick, got %+v", leader)
	}

	state, _ = mustApply(t, svc, state, FinalizeRound{})
	if got := state.Teams[domain.TeamA].Points; got != 25 {
		t.Errorf("team A points = %d, want 25", got)
	}
	if got := state.Players[domain.Player1].Points; got != 25 {
		t.Errorf("player1 points = %d, want 25", got)
	}
	if state.Next != domain.Player1 {
		t.Errorf("winner should lead round 2, got %s", state.Next)
	}
	if state.FirstPlayerOfGame != domain.Player3 {
		t.Errorf("opener must never change, got %s", state.FirstPlayerOfGame)
	}
	sc := svc.Scorecard(state)
	if sc.Leader != string(domain.TeamA) || sc.RemainingPoints != 95 {
		t.Errorf("unexpected scorecard %+v", sc)
	}
}

func TestFourPlayerConfiguredOpener(t *testing.T) {
	svc := newTestService(11)
	state, _ := mustApply(t, svc, nil, Start{Config: domain.Config{PlayerCount: 4, Opener: domain.Player2}})
	if state.Next != domain.Player2 || state.FirstPlayerOfGame != domain.Player2 {
		t.Fatalf("configured opener should lead, next %s first %s", state.Next, state.FirstPlayerOfGame)
	}
}

func TestOpponentCannotPlayTrackedHandCard(t *testing.T) {
	svc := newTestService(6)
	state := startTwoPlayer(t, svc)
	state, _ = mustApply(t, svc, state, UpdateHand{Cards: []domain.Card{card(domain.Ace, domain.Hearts), card(domain.Two, domain.Clubs)}})
	state, _ = mustApply(t, svc, state, RegisterPlay{PlayerID: domain.Player1, Card: card(domain.Three, domain.Clubs)})

	got, res := svc.Apply(state, RegisterPlay{PlayerID: domain.Player2, Card: card(domain.Ace, domain.Hearts)})
	if res.Success || res.Kind != KindInvalidInput {
		t.Fatalf("expected invalid_input, got %+v", res)
	}
	if got != state || domain.FindCard(state.PlayedCards, card(domain.Ace, domain.Hearts)) >= 0 {
		t.Errorf("rejected play must leave the state untouched")
	}

	state, _ = mustApply(t, svc, state, RegisterPlay{PlayerID: domain.Player2, Card: card(domain.Seven, domain.Hearts)})
	state, _ = mustApply(t, svc, state, FinalizeRound{})
	state, _ = mustApply(t, svc, state, RequestRecommendation{})
	for _, c := range state.UserHand {
		if domain.FindCard(state.PlayedCards, c) >= 0 {
			t.Errorf("tracked hand holds played card %s", c)
		}
	}
	if domain.FindCard(state.PlayedCards, state.Recommendation.Card) >= 0 {
		t.Errorf("recommended a played card: %s", state.Recommendation.Card)
	}
}

func TestFullTwoPlayerGame(t *testing.T) {
	svc := newTestService(13)
	state := startTwoPlayer(t, svc)
	deck := domain.NewDeck()

	for trick := 0; trick < domain.DeckSize/2; trick++ {
		first := state.Next
		second := domain.Opponent(first)
		state, _ = mustApply(t, svc, state, RegisterPlay{PlayerID: first, Card: deck[2*trick]})
		state, _ = mustApply(t, svc, state, RegisterPlay{PlayerID: second, Card: deck[2*trick+1]})
		state, _ = mustApply(t, svc, state, FinalizeRound{})
	}

	if state.Status != domain.StatusFinished {
		t.Fatalf("status = %s, want finished", state.Status)
	}
	if state.Current != nil || len(state.Rounds) != 20 {
		t.Errorf("expected 20 finalized rounds and no active round")
	}
	p1, p2 := state.Players[domain.Player1], state.Players[domain.Player2]
	if p1.Points+p2.Points != domain.DeckPoints {
		t.Errorf("points should add up to 120, got %d + %d", p1.Points, p2.Points)
	}
	want := ""
	switch {
	case p1.Points > p2.Points:
		want = string(domain.Player1)
	case p2.Points > p1.Points:
		want = string(domain.Player2)
	}
	if state.Winner != want {
		t.Errorf("winner = %q, want %q", state.Winner, want)
	}
	if state.CardsRemainingInDeck != 0 || p1.HandSize != 0 || p2.HandSize != 0 {
		t.Errorf("stock and hands should be empty: stock %d hands %d %d", state.CardsRemainingInDeck, p1.HandSize, p2.HandSize)
	}

	_, res := svc.Apply(state, RegisterPlay{PlayerID: domain.Player1, Card: deck[0]})
	if res.Success || res.Kind != KindInvalidState {
		t.Errorf("finished game should reject plays, got %+v", res)
	}
}

func TestReset(t *testing.T) {
	svc := newTestService(17)
	state := startTwoPlayer(t, svc)
	state, _ = mustApply(t, svc, state, RegisterPlay{PlayerID: domain.Player1, Card: card(domain.Two, domain.Hearts)})

	state, _ = mustApply(t, svc, state, Reset{})
	if state.Status != domain.StatusSetup || len(state.PlayedCards) != 0 || len(state.Players) != 0 {
		t.Errorf("reset should return a fresh setup state, got %+v", state)
	}
	if _, res := svc.Apply(state, Start{Config: domain.Config{PlayerCount: 2}}); !res.Success {
		t.Errorf("start after reset should succeed: %s", res.Error)
	}
}
