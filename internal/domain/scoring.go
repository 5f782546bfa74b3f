package domain

import "math"

// RemainingPoints returns the points still in play after the given cards.
func RemainingPoints(played []Card) int {
	return DeckPoints - TotalPoints(played)
}

// PointsPercentage returns points as a rounded share of the deck total.
func PointsPercentage(points int) int {
	return int(math.Round(float64(points) / DeckPoints * 100))
}

// CanStillWin reports whether a side holding points can still finish ahead. Opponent points
// may be an average over several opponents, hence the float arguments.
func CanStillWin(points, opponentPoints, remaining float64) bool {
	return points > MajorityPoints || points+remaining > opponentPoints
}

// WinProbability estimates the chance (0-100) that a side finishes ahead.
func WinProbability(points, opponentPoints, remaining float64) int {
	if !CanStillWin(points, opponentPoints, remaining) {
		return 0
	}
	if points > MajorityPoints {
		return 100
	}
	if remaining <= 0 {
		// Nothing left to play and still able to win means already ahead.
		return 100
	}
	p := 50 + 50*(points-opponentPoints)/remaining
	return int(math.Round(clamp(p, 0, 100)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Statistics summarizes how a player or team has fared over the finalized tricks.
type Statistics struct {
	Points                   int `json:"points"`
	Percentage               int `json:"percentage"`
	RoundsWon                int `json:"roundsWon"`
	WinRate                  int `json:"winRate"` // percent of completed rounds
	AveragePointsPerWonRound int `json:"averagePointsPerWonRound"`
}

// ComputeStatistics builds the statistics of a side made of members holding points.
func ComputeStatistics(members []PlayerID, points int, rounds []Round) Statistics {
	completed, won := 0, 0
	for _, r := range rounds {
		if !r.Complete {
			continue
		}
		completed++
		for _, m := range members {
			if r.Winner == m {
				won++
				break
			}
		}
	}
	st := Statistics{Points: points, Percentage: PointsPercentage(points), RoundsWon: won}
	if completed > 0 {
		st.WinRate = int(math.Round(float64(won) / float64(completed) * 100))
	}
	if won > 0 {
		st.AveragePointsPerWonRound = int(math.Round(float64(points) / float64(won)))
	}
	return st
}

// SideScore is one line of a scorecard: a player in a 2-player game, a team otherwise.
type SideScore struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Members []PlayerID `json:"members"`
	Statistics
}

// Scorecard is the running score of both sides.
type Scorecard struct {
	Sides           []SideScore `json:"sides"`
	Leader          string      `json:"leader,omitempty"`
	Difference      int         `json:"difference"`
	RemainingPoints int         `json:"remainingPoints"`
}

// BuildScorecard scores the game by player in 2-player mode and by team in 4-player mode.
func BuildScorecard(s *GameState) Scorecard {
	var sides []SideScore
	if s.IsTeamGame() && s.Teams != nil {
		for _, id := range []TeamID{TeamA, TeamB} {
			t, ok := s.Teams[id]
			if !ok {
				continue
			}
			sides = append(sides, SideScore{
				ID:         string(t.ID),
				Name:       t.Name,
				Members:    append([]PlayerID(nil), t.MemberIDs...),
				Statistics: ComputeStatistics(t.MemberIDs, t.Points, s.Rounds),
			})
		}
	} else {
		for _, id := range s.SeatIDs() {
			p, ok := s.Players[id]
			if !ok {
				continue
			}
			members := []PlayerID{p.ID}
			sides = append(sides, SideScore{
				ID:         string(p.ID),
				Name:       p.Name,
				Members:    members,
				Statistics: ComputeStatistics(members, p.Points, s.Rounds),
			})
		}
	}

	sc := Scorecard{Sides: sides, RemainingPoints: RemainingPoints(s.PlayedCards)}
	if len(sides) == 2 {
		a, b := sides[0], sides[1]
		switch {
		case a.Points > b.Points:
			sc.Leader = a.ID
		case b.Points > a.Points:
			sc.Leader = b.ID
		}
		sc.Difference = a.Points - b.Points
		if sc.Difference < 0 {
			sc.Difference = -sc.Difference
		}
	}
	return sc
}

// GameWinner returns the side with strictly more points once the game is over, or empty on a tie.
func GameWinner(s *GameState) string {
	return BuildScorecard(s).Leader
}

// SidePoints returns the points of the side a seat belongs to.
func SidePoints(s *GameState, id PlayerID) int {
	if s.IsTeamGame() && s.Teams != nil {
		if t, ok := s.Teams[TeamOf(id)]; ok {
			return t.Points
		}
		return 0
	}
	if p, ok := s.Players[id]; ok {
		return p.Points
	}
	return 0
}

// Opponents returns the seats playing against id.
func Opponents(s *GameState, id PlayerID) []PlayerID {
	var out []PlayerID
	for _, seat := range s.SeatIDs() {
		if seat == id {
			continue
		}
		if s.IsTeamGame() && TeamOf(seat) == TeamOf(id) {
			continue
		}
		out = append(out, seat)
	}
	return out
}
