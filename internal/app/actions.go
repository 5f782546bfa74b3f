package app

import "bisca/internal/domain"

// Action is one of the discrete operations a session accepts.
type Action interface {
	actionName() string
}

// Start applies a configuration to a game in setup.
type Start struct {
	Config domain.Config
}

// RegisterPlay records a card played by a seat in the current trick.
type RegisterPlay struct {
	PlayerID domain.PlayerID
	Card     domain.Card
}

// UpdateHand replaces the tracked user hand.
type UpdateHand struct {
	Cards []domain.Card
}

// RequestRecommendation computes and stores the best play for the tracked hand.
type RequestRecommendation struct{}

// FinalizeRound resolves the current trick.
type FinalizeRound struct{}

// Reset discards the game and returns to setup.
type Reset struct{}

func (Start) actionName() string                 { return "start" }
func (RegisterPlay) actionName() string          { return "register_play" }
func (UpdateHand) actionName() string            { return "update_hand" }
func (RequestRecommendation) actionName() string { return "request_recommendation" }
func (FinalizeRound) actionName() string         { return "finalize_round" }
func (Reset) actionName() string                 { return "reset" }
