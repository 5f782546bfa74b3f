package app

import "bisca/internal/domain"

// EventKind identifies events emitted by a successful action.
type EventKind string

const (
	EventGameStarted         EventKind = "game_started"
	EventCardRegistered      EventKind = "card_registered"
	EventHandUpdated         EventKind = "hand_updated"
	EventRecommendationReady EventKind = "recommendation_ready"
	EventRoundFinalized      EventKind = "round_finalized"
	EventGameFinished        EventKind = "game_finished"
	EventGameReset           EventKind = "game_reset"
)

// Event is an app event describing what a transition changed.
type Event struct {
	Kind    EventKind
	Payload any
}

type GameStartedPayload struct {
	Trump       domain.Card
	PlayerCount int
	FirstPlayer domain.PlayerID // empty until the first card when the opener is dynamic
}

type CardRegisteredPayload struct {
	PlayerID   domain.PlayerID
	Card       domain.Card
	Leader     domain.TrickLeader
	NextPlayer domain.PlayerID
}

type HandUpdatedPayload struct {
	Cards []domain.Card
}

type RecommendationReadyPayload struct {
	Recommendation domain.Recommendation
}

type RoundFinalizedPayload struct {
	Number int
	Result domain.TrickResult
}

type GameFinishedPayload struct {
	Winner    string // empty on a tie
	Scorecard domain.Scorecard
}
