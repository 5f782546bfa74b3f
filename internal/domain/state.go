package domain

// Status represents the lifecycle stage of an assisted game.
type Status string

const (
	// StatusSetup is the state before a configuration has been applied.
	StatusSetup Status = "setup"
	// StatusInProgress is the state while tricks are being played.
	StatusInProgress Status = "in_progress"
	// StatusFinished is the state after the 40th card has been played and its trick finalized.
	StatusFinished Status = "finished"
)

// PlayerID identifies a seat. Only the first two are used in a 2-player game.
type PlayerID string

const (
	Player1 PlayerID = "player1"
	Player2 PlayerID = "player2"
	Player3 PlayerID = "player3"
	Player4 PlayerID = "player4"
)

// SeatCycle is the fixed clockwise seating order.
var SeatCycle = []PlayerID{Player1, Player2, Player3, Player4}

// TeamID identifies one side of a 4-player game.
type TeamID string

const (
	TeamA TeamID = "teamA" // seats 1 and 3
	TeamB TeamID = "teamB" // seats 2 and 4
)

// TeamOf returns the fixed team of a seat.
func TeamOf(id PlayerID) TeamID {
	if id == Player1 || id == Player3 {
		return TeamA
	}
	return TeamB
}

// PlayerIDs returns the seats in use for the given player count.
func PlayerIDs(playerCount int) []PlayerID {
	if playerCount == 2 {
		return []PlayerID{Player1, Player2}
	}
	return append([]PlayerID(nil), SeatCycle...)
}

// Tally is the running score of a player or team. Points always equals TotalPoints(WonCards).
type Tally struct {
	Points   int    `json:"points"`
	WonCards []Card `json:"wonCards"`
}

// Credit adds the cards of a won trick and recomputes the points from them.
func (t *Tally) Credit(trick []Card) {
	t.WonCards = append(t.WonCards, trick...)
	t.Points = TotalPoints(t.WonCards)
}

// Player holds the tracked state of one seat.
type Player struct {
	ID       PlayerID `json:"id"`
	Name     string   `json:"name"`
	HandSize int      `json:"handSize"`
	IsUser   bool     `json:"isUser"`
	Tally
}

// Team holds the combined tally of two partnered seats.
type Team struct {
	ID        TeamID     `json:"id"`
	Name      string     `json:"name"`
	MemberIDs []PlayerID `json:"memberIds"`
	Tally
}

// PlayedCard is one card in a trick. Order is the 1-based position within the trick.
type PlayedCard struct {
	Card     Card     `json:"card"`
	PlayerID PlayerID `json:"playerId"`
	Order    int      `json:"order"`
}

// Round is a single trick.
type Round struct {
	Number      int          `json:"number"`
	PlayedCards []PlayedCard `json:"playedCards"`
	Winner      PlayerID     `json:"winner,omitempty"`
	PointsWon   int          `json:"pointsWon"`
	Complete    bool         `json:"complete"`
}

// Cards returns the cards of the trick in play order.
func (r *Round) Cards() []Card {
	out := make([]Card, 0, len(r.PlayedCards))
	for _, pc := range sortedByOrder(r.PlayedCards) {
		out = append(out, pc.Card)
	}
	return out
}

// HasPlayed reports whether the player already has a card in this trick.
func (r *Round) HasPlayed(id PlayerID) bool {
	for _, pc := range r.PlayedCards {
		if pc.PlayerID == id {
			return true
		}
	}
	return false
}

// Style is the observed tendency of a player.
type Style string

const (
	StyleAggressive   Style = "aggressive"
	StyleDefensive    Style = "defensive"
	StyleBalanced     Style = "balanced"
	StyleUndetermined Style = "undetermined"
)

// StyleCounts are the running play counters behind a style classification.
type StyleCounts struct {
	AggressivePlays int `json:"aggressivePlays"`
	DefensivePlays  int `json:"defensivePlays"`
	TotalPlays      int `json:"totalPlays"`
}

// StyleAnalysis is the current classification of one player.
type StyleAnalysis struct {
	PlayerID   PlayerID    `json:"playerId"`
	Style      Style       `json:"style"`
	Confidence int         `json:"confidence"` // 0-100
	Counts     StyleCounts `json:"counts"`
}

// RiskLevel grades how much a play exposes.
type RiskLevel string

const (
	RiskVeryLow  RiskLevel = "very_low"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
)

// RecommendationDetails carries the figures behind a recommendation.
type RecommendationDetails struct {
	HandStrength       int `json:"handStrength"`
	RemainingCardCount int `json:"remainingCardCount"`
	TrumpProbability   int `json:"trumpProbability"`
	PointsAtStake      int `json:"pointsAtStake"`
}

// Recommendation is a ranked, explained suggestion for one card of the user's hand.
type Recommendation struct {
	Card           Card                  `json:"card"`
	Priority       int                   `json:"priority"` // 0-100
	Reason         string                `json:"reason"`
	RiskLevel      RiskLevel             `json:"riskLevel"`
	WinProbability int                   `json:"winProbability"` // 0-100
	Details        RecommendationDetails `json:"details"`
}

// Config is the game configuration applied by the start action.
type Config struct {
	PlayerCount int      `json:"playerCount"`
	PlayerNames []string `json:"playerNames"`
	UserID      PlayerID `json:"userId"`
	// Trump, when set, replaces the last card of the shuffled deck as trump.
	Trump *Card `json:"trump,omitempty"`
	// Opener, when set, fixes the seat opening the first trick of a 4-player game.
	Opener PlayerID `json:"opener,omitempty"`
}

// GameState is the aggregate root of an assisted game.
type GameState struct {
	Status  Status               `json:"status"`
	Config  Config               `json:"config"`
	Players map[PlayerID]*Player `json:"players"`
	Teams   map[TeamID]*Team     `json:"teams,omitempty"`
	Trump   *Card                `json:"trump,omitempty"`
	Rounds  []Round              `json:"rounds"`
	Current *Round               `json:"currentRound,omitempty"`
	Next    PlayerID             `json:"nextPlayer,omitempty"`

	// FirstPlayerOfGame goes from empty to a seat exactly once and is never reassigned.
	FirstPlayerOfGame    PlayerID                   `json:"firstPlayerOfGame,omitempty"`
	CardsRemainingInDeck int                        `json:"cardsRemainingInDeck"`
	PlayedCards          []Card                     `json:"playedCards"`
	UserHand             []Card                     `json:"userHand"`
	Winner               string                     `json:"winner,omitempty"`
	StyleAnalyses        map[PlayerID]StyleAnalysis `json:"styleAnalyses"`
	Recommendation       *Recommendation            `json:"currentRecommendation,omitempty"`
}

// NewGameState returns a fresh state in setup.
func NewGameState() *GameState {
	return &GameState{
		Status:               StatusSetup,
		Config:               Config{PlayerCount: 2, UserID: Player1},
		Players:              map[PlayerID]*Player{},
		CardsRemainingInDeck: DeckSize,
		StyleAnalyses:        map[PlayerID]StyleAnalysis{},
	}
}

// SeatIDs returns the seats of the configured game in seat order.
func (s *GameState) SeatIDs() []PlayerID {
	return PlayerIDs(s.Config.PlayerCount)
}

// IsTeamGame reports whether points are pooled per team.
func (s *GameState) IsTeamGame() bool {
	return s.Config.PlayerCount == 4
}

// PreviousWinner returns the winner of the last finalized trick, or empty before the first.
func (s *GameState) PreviousWinner() PlayerID {
	if len(s.Rounds) == 0 {
		return ""
	}
	return s.Rounds[len(s.Rounds)-1].Winner
}

// Clone returns a deep copy so a transition can be applied without touching the original.
func (s *GameState) Clone() *GameState {
	if s == nil {
		return nil
	}
	out := *s
	out.Config.PlayerNames = append([]string(nil), s.Config.PlayerNames...)
	out.Config.Trump = cloneCard(s.Config.Trump)
	out.Trump = cloneCard(s.Trump)

	out.Players = make(map[PlayerID]*Player, len(s.Players))
	for id, p := range s.Players {
		cp := *p
		cp.WonCards = append([]Card(nil), p.WonCards...)
		out.Players[id] = &cp
	}
	if s.Teams != nil {
		out.Teams = make(map[TeamID]*Team, len(s.Teams))
		for id, t := range s.Teams {
			ct := *t
			ct.MemberIDs = append([]PlayerID(nil), t.MemberIDs...)
			ct.WonCards = append([]Card(nil), t.WonCards...)
			out.Teams[id] = &ct
		}
	}

	out.Rounds = make([]Round, len(s.Rounds))
	for i, r := range s.Rounds {
		out.Rounds[i] = cloneRound(r)
	}
	if s.Current != nil {
		r := cloneRound(*s.Current)
		out.Current = &r
	}

	out.PlayedCards = append([]Card(nil), s.PlayedCards...)
	out.UserHand = append([]Card(nil), s.UserHand...)
	out.StyleAnalyses = make(map[PlayerID]StyleAnalysis, len(s.StyleAnalyses))
	for id, a := range s.StyleAnalyses {
		out.StyleAnalyses[id] = a
	}
	if s.Recommendation != nil {
		rec := *s.Recommendation
		out.Recommendation = &rec
	}
	return &out
}

func cloneCard(c *Card) *Card {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func cloneRound(r Round) Round {
	r.PlayedCards = append([]PlayedCard(nil), r.PlayedCards...)
	return r
}
