package app

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"bisca/internal/advisor"
	"bisca/internal/advisor/brain"
	"bisca/internal/domain"
	"bisca/internal/logging"
)

// Service contains the Bisca assistant use-cases operating on domain state.
type Service struct {
	rng    *rand.Rand
	logger runtime.Logger
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand, logger runtime.Logger) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{rng: rng, logger: logger}
}

// Result is the outcome of an action, shaped for the caller to render.
type Result struct {
	Success      bool      `json:"success"`
	Message      string    `json:"message,omitempty"`
	Error        string    `json:"error,omitempty"`
	Kind         ErrorKind `json:"kind,omitempty"`
	PersistError string    `json:"persistError,omitempty"`
	Events       []Event   `json:"-"`
}

// Apply runs an action against a copy of state. On success it returns the new state; on
// failure it returns the given state untouched and a result describing the error.
func (s *Service) Apply(state *domain.GameState, action Action) (*domain.GameState, Result) {
	if state == nil {
		state = domain.NewGameState()
	}
	if action == nil {
		return state, s.fail("nil", fmt.Errorf("%w: no action", ErrInvalidInput))
	}

	next := state.Clone()
	var (
		msg    string
		events []Event
		err    error
	)
	switch a := action.(type) {
	case Start:
		msg, events, err = s.start(next, a.Config)
	case RegisterPlay:
		msg, events, err = s.registerPlay(next, a.PlayerID, a.Card)
	case UpdateHand:
		msg, events, err = s.updateHand(next, a.Cards)
	case RequestRecommendation:
		msg, events, err = s.requestRecommendation(next)
	case FinalizeRound:
		msg, events, err = s.finalizeRound(next)
	case Reset:
		next = domain.NewGameState()
		msg, events = "Game reset.", []Event{{Kind: EventGameReset}}
	default:
		err = fmt.Errorf("%w: unknown action %T", ErrInvalidInput, action)
	}
	if err != nil {
		return state, s.fail(action.actionName(), err)
	}

	s.logger.Debug("Dispatch: %s applied: %s", action.actionName(), msg)
	return next, Result{Success: true, Message: msg, Events: events}
}

func (s *Service) fail(name string, err error) Result {
	kind := KindOf(err)
	s.logger.Warn("Dispatch: %s rejected (%s): %v", name, kind, err)
	return Result{Success: false, Error: err.Error(), Kind: kind}
}

func (s *Service) start(g *domain.GameState, cfg domain.Config) (string, []Event, error) {
	if g.Status != domain.StatusSetup {
		return "", nil, fmt.Errorf("%w: game already started, reset first", ErrInvalidState)
	}
	if cfg.PlayerCount != 2 && cfg.PlayerCount != 4 {
		return "", nil, fmt.Errorf("%w: player count must be 2 or 4, got %d", ErrInvalidInput, cfg.PlayerCount)
	}
	seats := domain.PlayerIDs(cfg.PlayerCount)
	if cfg.UserID == "" {
		cfg.UserID = domain.Player1
	}
	if !containsSeat(seats, cfg.UserID) {
		return "", nil, fmt.Errorf("%w: user %q is not a seat of a %d-player game", ErrInvalidInput, cfg.UserID, cfg.PlayerCount)
	}
	if len(cfg.PlayerNames) > cfg.PlayerCount {
		return "", nil, fmt.Errorf("%w: %d names for %d players", ErrInvalidInput, len(cfg.PlayerNames), cfg.PlayerCount)
	}
	if cfg.Trump != nil && !cfg.Trump.Valid() {
		return "", nil, fmt.Errorf("%w: trump %v is not a card of the deck", ErrInvalidInput, *cfg.Trump)
	}
	if cfg.Opener != "" && (cfg.PlayerCount != 4 || !containsSeat(seats, cfg.Opener)) {
		return "", nil, fmt.Errorf("%w: opener %q is only valid as a seat of a 4-player game", ErrInvalidInput, cfg.Opener)
	}

	names := make([]string, cfg.PlayerCount)
	for i := range names {
		if i < len(cfg.PlayerNames) && strings.TrimSpace(cfg.PlayerNames[i]) != "" {
			names[i] = strings.TrimSpace(cfg.PlayerNames[i])
		} else {
			names[i] = fmt.Sprintf("Player %d", i+1)
		}
	}
	cfg.PlayerNames = names

	deck := domain.ShuffleDeck(s.rng, domain.NewDeck())
	trump := deck[len(deck)-1]
	if cfg.Trump != nil {
		trump = *cfg.Trump
	}

	handSize, stock := FourPlayerHandSize, 0
	if cfg.PlayerCount == 2 {
		handSize = TwoPlayerHandSize
		stock = domain.DeckSize - 2*TwoPlayerHandSize
	}

	g.Config = cfg
	g.Trump = &trump
	g.Players = make(map[domain.PlayerID]*domain.Player, len(seats))
	g.StyleAnalyses = make(map[domain.PlayerID]domain.StyleAnalysis, len(seats))
	for i, id := range seats {
		g.Players[id] = &domain.Player{
			ID:       id,
			Name:     names[i],
			HandSize: handSize,
			IsUser:   id == cfg.UserID,
		}
		g.StyleAnalyses[id] = brain.NewStyleAnalysis(id)
	}
	g.Teams = nil
	if cfg.PlayerCount == 4 {
		g.Teams = map[domain.TeamID]*domain.Team{
			domain.TeamA: newTeam(domain.TeamA, names[0], names[2], domain.Player1, domain.Player3),
			domain.TeamB: newTeam(domain.TeamB, names[1], names[3], domain.Player2, domain.Player4),
		}
	}

	g.Rounds = nil
	g.Current = &domain.Round{Number: 1}
	g.PlayedCards = nil
	g.Winner = ""
	g.Recommendation = nil
	g.CardsRemainingInDeck = stock
	g.FirstPlayerOfGame = cfg.Opener
	g.Next = ""
	if cfg.PlayerCount == 2 || cfg.Opener != "" {
		g.Next = domain.PlayOrder(cfg.PlayerCount, "", cfg.Opener)[0]
	}
	g.Status = domain.StatusInProgress

	msg := fmt.Sprintf("Game started with %d players. Trump: %s.", cfg.PlayerCount, trump)
	return msg, []Event{{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{Trump: trump, PlayerCount: cfg.PlayerCount, FirstPlayer: g.Next},
	}}, nil
}

func newTeam(id domain.TeamID, nameA, nameB string, a, b domain.PlayerID) *domain.Team {
	return &domain.Team{
		ID:        id,
		Name:      nameA + " & " + nameB,
		MemberIDs: []domain.PlayerID{a, b},
	}
}

func containsSeat(seats []domain.PlayerID, id domain.PlayerID) bool {
	for _, s := range seats {
		if s == id {
			return true
		}
	}
	return false
}

func (s *Service) registerPlay(g *domain.GameState, pid domain.PlayerID, card domain.Card) (string, []Event, error) {
	if g.Status != domain.StatusInProgress {
		return "", nil, fmt.Errorf("%w: no game in progress", ErrInvalidState)
	}
	if g.Current == nil {
		return "", nil, fmt.Errorf("%w: no active round", ErrMissingContext)
	}
	pl, ok := g.Players[pid]
	if !ok {
		return "", nil, fmt.Errorf("%w: unknown player %q", ErrInvalidInput, pid)
	}
	if !card.Valid() {
		return "", nil, fmt.Errorf("%w: %v is not a card of the deck", ErrInvalidInput, card)
	}
	round := g.Current
	if round.Complete || len(round.PlayedCards) >= g.Config.PlayerCount {
		return "", nil, fmt.Errorf("%w: trick %d is complete, finalize it first", ErrInvalidTurn, round.Number)
	}
	if round.HasPlayed(pid) {
		return "", nil, fmt.Errorf("%w: %s already played in trick %d", ErrInvalidTurn, pl.Name, round.Number)
	}
	if domain.FindCard(g.PlayedCards, card) >= 0 {
		return "", nil, fmt.Errorf("%w: %s was already played", ErrInvalidInput, card)
	}
	if pid != g.Config.UserID && domain.FindCard(g.UserHand, card) >= 0 {
		return "", nil, fmt.Errorf("%w: %s is in the user's tracked hand", ErrInvalidInput, card)
	}
	if g.Config.PlayerCount == 2 && g.Next != "" && pid != g.Next {
		return "", nil, fmt.Errorf("%w: expected %s, got %s", ErrInvalidTurn, g.Next, pid)
	}

	trickBefore := round.Cards()
	round.PlayedCards = append(round.PlayedCards, domain.PlayedCard{
		Card:     card,
		PlayerID: pid,
		Order:    len(round.PlayedCards) + 1,
	})
	g.PlayedCards = append(g.PlayedCards, card)
	if pl.HandSize > 0 {
		pl.HandSize--
	}

	var knownHand []domain.Card
	if pid == g.Config.UserID {
		g.UserHand = domain.RemoveCard(g.UserHand, card)
		knownHand = g.UserHand
	}
	analysis, ok := g.StyleAnalyses[pid]
	if !ok {
		analysis = brain.NewStyleAnalysis(pid)
	}
	g.StyleAnalyses[pid] = brain.RecordPlay(analysis, brain.ClassifyPlay(card, trickBefore, g.Trump, knownHand))

	if g.FirstPlayerOfGame == "" {
		g.FirstPlayerOfGame = pid
	}
	g.Next = nextToPlay(g, pid)
	g.Recommendation = nil

	leader, _ := domain.CurrentTrickLeader(round.PlayedCards, g.Trump)
	msg := fmt.Sprintf("%s played %s.", pl.Name, card)
	if leaderPl, ok := g.Players[leader.Play.PlayerID]; ok {
		msg += fmt.Sprintf(" %s leads: %s.", leaderPl.Name, leader.Reason)
	}
	return msg, []Event{{
		Kind: EventCardRegistered,
		Payload: CardRegisteredPayload{
			PlayerID:   pid,
			Card:       card,
			Leader:     leader,
			NextPlayer: g.Next,
		},
	}}, nil
}

// nextToPlay returns the seat expected after pid in the current trick, or empty once every
// seat has played. Seats that played out of rotation are skipped.
func nextToPlay(g *domain.GameState, pid domain.PlayerID) domain.PlayerID {
	round := g.Current
	if round == nil || len(round.PlayedCards) >= g.Config.PlayerCount {
		return ""
	}
	order := domain.PlayOrder(g.Config.PlayerCount, g.PreviousWinner(), g.FirstPlayerOfGame)
	if next, ok := domain.NextPlayer(order, pid); ok && !round.HasPlayed(next) {
		return next
	}
	for _, id := range order {
		if !round.HasPlayed(id) {
			return id
		}
	}
	return ""
}

func (s *Service) updateHand(g *domain.GameState, cards []domain.Card) (string, []Event, error) {
	seen := make(map[domain.Card]bool, len(cards))
	for _, c := range cards {
		if !c.Valid() {
			return "", nil, fmt.Errorf("%w: %v is not a card of the deck", ErrInvalidInput, c)
		}
		if seen[c] {
			return "", nil, fmt.Errorf("%w: %s appears twice", ErrInvalidInput, c)
		}
		if domain.FindCard(g.PlayedCards, c) >= 0 {
			return "", nil, fmt.Errorf("%w: %s was already played", ErrInvalidInput, c)
		}
		seen[c] = true
	}
	g.UserHand = append([]domain.Card(nil), cards...)
	return fmt.Sprintf("Hand updated: %d cards.", len(cards)), []Event{{
		Kind:    EventHandUpdated,
		Payload: HandUpdatedPayload{Cards: g.UserHand},
	}}, nil
}

func (s *Service) requestRecommendation(g *domain.GameState) (string, []Event, error) {
	if len(g.UserHand) == 0 {
		return "", nil, fmt.Errorf("%w: tracked hand is empty", ErrMissingContext)
	}
	best, ok := advisor.Best(g)
	if !ok {
		return "", nil, fmt.Errorf("%w: no recommendation available", ErrMissingContext)
	}
	g.Recommendation = &best
	msg := fmt.Sprintf("Play %s. %s", best.Card, best.Reason)
	return msg, []Event{{
		Kind:    EventRecommendationReady,
		Payload: RecommendationReadyPayload{Recommendation: best},
	}}, nil
}

func (s *Service) finalizeRound(g *domain.GameState) (string, []Event, error) {
	if g.Current == nil {
		return "", nil, fmt.Errorf("%w: no active round", ErrMissingContext)
	}
	round := g.Current
	res, err := domain.FinalizeTrick(*round, g.Trump)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrUnresolvableTrick, err)
	}
	if len(round.PlayedCards) < g.Config.PlayerCount {
		return "", nil, fmt.Errorf("%w: trick %d has %d of %d cards", ErrMissingContext, round.Number, len(round.PlayedCards), g.Config.PlayerCount)
	}

	round.Winner = res.Winner
	round.PointsWon = res.PointsWon
	round.Complete = true
	trick := round.Cards()
	winner := g.Players[res.Winner]
	winner.Credit(trick)
	if g.Teams != nil {
		if team, ok := g.Teams[domain.TeamOf(res.Winner)]; ok {
			team.Credit(trick)
		}
	}
	g.Rounds = append(g.Rounds, *round)
	g.Current = nil
	g.Recommendation = nil
	s.drawFromStock(g)

	events := []Event{{
		Kind:    EventRoundFinalized,
		Payload: RoundFinalizedPayload{Number: round.Number, Result: res},
	}}
	msg := fmt.Sprintf("Round %d won by %s with %s (%d points).", round.Number, winner.Name, res.WinningCard, res.PointsWon)

	if len(g.PlayedCards) >= domain.DeckSize {
		sc := domain.BuildScorecard(g)
		g.Winner = sc.Leader
		g.Status = domain.StatusFinished
		g.Next = ""
		events = append(events, Event{
			Kind:    EventGameFinished,
			Payload: GameFinishedPayload{Winner: g.Winner, Scorecard: sc},
		})
		if g.Winner == "" {
			return msg + " Game over: tie.", events, nil
		}
		return msg + fmt.Sprintf(" Game over: %s wins.", sideName(g, g.Winner)), events, nil
	}

	g.Current = &domain.Round{Number: round.Number + 1}
	g.Next = domain.PlayOrder(g.Config.PlayerCount, res.Winner, g.FirstPlayerOfGame)[0]
	return msg, events, nil
}

// drawFromStock gives every player a card from the stock while it lasts (2-player only).
func (s *Service) drawFromStock(g *domain.GameState) {
	n := len(g.Players)
	if g.CardsRemainingInDeck < n {
		return
	}
	g.CardsRemainingInDeck -= n
	for _, p := range g.Players {
		p.HandSize++
	}
}

func sideName(g *domain.GameState, id string) string {
	if g.Teams != nil {
		if t, ok := g.Teams[domain.TeamID(id)]; ok {
			return t.Name
		}
	}
	if p, ok := g.Players[domain.PlayerID(id)]; ok {
		return p.Name
	}
	return id
}

// Scorecard returns the running scores of the game.
func (s *Service) Scorecard(g *domain.GameState) domain.Scorecard {
	return domain.BuildScorecard(g)
}

// TrickLeader returns who is winning the current trick, if any card has been played.
func (s *Service) TrickLeader(g *domain.GameState) (domain.TrickLeader, bool) {
	if g == nil || g.Current == nil {
		return domain.TrickLeader{}, false
	}
	return domain.CurrentTrickLeader(g.Current.PlayedCards, g.Trump)
}

// PlayOrder returns the seating order of the current trick.
func (s *Service) PlayOrder(g *domain.GameState) []domain.PlayerID {
	if g == nil || g.Status == domain.StatusSetup {
		return nil
	}
	return domain.PlayOrder(g.Config.PlayerCount, g.PreviousWinner(), g.FirstPlayerOfGame)
}
