package app

// Hand sizes dealt at the start of a game. A 2-player game keeps a stock and both players
// draw after each trick; a 4-player game deals the whole deck.
const (
	TwoPlayerHandSize  = 3
	FourPlayerHandSize = 10
)
