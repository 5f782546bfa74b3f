package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"bisca/internal/advisor"
	"bisca/internal/advisor/brain"
	"bisca/internal/app"
	"bisca/internal/domain"
)

type query int

const (
	queryNone query = iota
	queryScore
	queryLeader
	queryStyles
	queryHelp
)

// command is one parsed input line: an action to dispatch, a read-only query, or quit.
type command struct {
	action app.Action
	query  query
	quit   bool
}

const usage = `commands:
  start <2|4> [userSeat] [name,name,...] [trumpCard]
  play <seat> <card>        e.g. play 2 7♥ or play p2 7H
  hand <card>...            replace your hand
  recommend                 best card for your hand
  finalize                  resolve the current trick
  reset
  score | leader | styles | help | quit`

// parseCommand turns an input line into a command. defaultPlayers is used when start omits
// the player count.
func parseCommand(line string, defaultPlayers int) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{}, fmt.Errorf("empty command")
	}
	args := fields[1:]
	switch strings.ToLower(fields[0]) {
	case "start":
		cfg, err := parseStart(args, defaultPlayers)
		if err != nil {
			return command{}, err
		}
		return command{action: app.Start{Config: cfg}}, nil
	case "play":
		if len(args) != 2 {
			return command{}, fmt.Errorf("usage: play <seat> <card>")
		}
		id, err := domain.ParsePlayerID(args[0])
		if err != nil {
			return command{}, err
		}
		c, err := domain.ParseCard(args[1])
		if err != nil {
			return command{}, err
		}
		return command{action: app.RegisterPlay{PlayerID: id, Card: c}}, nil
	case "hand":
		cards := make([]domain.Card, 0, len(args))
		for _, a := range args {
			c, err := domain.ParseCard(a)
			if err != nil {
				return command{}, err
			}
			cards = append(cards, c)
		}
		return command{action: app.UpdateHand{Cards: cards}}, nil
	case "recommend", "rec":
		return command{action: app.RequestRecommendation{}}, nil
	case "finalize", "fin":
		return command{action: app.FinalizeRound{}}, nil
	case "reset":
		return command{action: app.Reset{}}, nil
	case "score":
		return command{query: queryScore}, nil
	case "leader":
		return command{query: queryLeader}, nil
	case "styles":
		return command{query: queryStyles}, nil
	case "help", "?":
		return command{query: queryHelp}, nil
	case "quit", "exit":
		return command{quit: true}, nil
	}
	return command{}, fmt.Errorf("unknown command %q (try help)", fields[0])
}

func parseStart(args []string, defaultPlayers int) (domain.Config, error) {
	cfg := domain.Config{PlayerCount: defaultPlayers, UserID: domain.Player1}
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return cfg, fmt.Errorf("player count %q: %w", args[0], err)
		}
		cfg.PlayerCount = n
	}
	if len(args) > 1 {
		id, err := domain.ParsePlayerID(args[1])
		if err != nil {
			return cfg, err
		}
		cfg.UserID = id
	}
	if len(args) > 2 {
		cfg.PlayerNames = strings.Split(args[2], ",")
	}
	if len(args) > 3 {
		trump, err := domain.ParseCard(args[3])
		if err != nil {
			return cfg, err
		}
		cfg.Trump = &trump
	}
	if len(args) > 4 {
		return cfg, fmt.Errorf("usage: start <2|4> [userSeat] [names] [trumpCard]")
	}
	return cfg, nil
}

func renderResult(w io.Writer, res app.Result, s *domain.GameState) {
	if !res.Success {
		fmt.Fprintf(w, "error (%s): %s\n", res.Kind, res.Error)
		return
	}
	if res.Message != "" {
		fmt.Fprintln(w, res.Message)
	}
	if res.PersistError != "" {
		fmt.Fprintf(w, "warning: game not saved: %s\n", res.PersistError)
	}
	scored := false
	for _, ev := range res.Events {
		switch ev.Kind {
		case app.EventRecommendationReady:
			renderRecommendation(w, s)
		case app.EventRoundFinalized, app.EventGameFinished:
			if !scored {
				renderScore(w, domain.BuildScorecard(s))
				scored = true
			}
		}
	}
	if s.Status == domain.StatusInProgress && s.Next != "" {
		fmt.Fprintf(w, "next: %s\n", playerName(s, s.Next))
	}
}

func renderRecommendation(w io.Writer, s *domain.GameState) {
	rec := s.Recommendation
	if rec == nil {
		fmt.Fprintln(w, "no recommendation")
		return
	}
	fmt.Fprintf(w, "play %s: %s\n", rec.Card, rec.Reason)
	fmt.Fprintf(w, "  win probability %d%%, hand strength %d, trump risk %d%%\n",
		rec.WinProbability, rec.Details.HandStrength, rec.Details.TrumpProbability)
	for _, c := range s.UserHand {
		fmt.Fprintf(w, "  %s\n", advisor.Explain(c, s))
	}
}

func renderScore(w io.Writer, sc domain.Scorecard) {
	for _, side := range sc.Sides {
		fmt.Fprintf(w, "%-12s %3d pts (%d%%)  rounds %d  win rate %d%%\n",
			side.Name, side.Points, side.Percentage, side.RoundsWon, side.WinRate)
	}
	if sc.Leader != "" {
		fmt.Fprintf(w, "leader %s by %d, %d points left\n", sc.Leader, sc.Difference, sc.RemainingPoints)
	} else {
		fmt.Fprintf(w, "tied, %d points left\n", sc.RemainingPoints)
	}
}

func renderLeader(w io.Writer, s *domain.GameState, svc *app.Service) {
	lead, ok := svc.TrickLeader(s)
	if !ok {
		fmt.Fprintln(w, "no card played in this trick")
		return
	}
	fmt.Fprintf(w, "%s leads with %s: %s\n", playerName(s, lead.Play.PlayerID), lead.Play.Card, lead.Reason)
	if order := svc.PlayOrder(s); len(order) > 0 {
		names := make([]string, len(order))
		for i, id := range order {
			names[i] = playerName(s, id)
		}
		fmt.Fprintf(w, "order: %s\n", strings.Join(names, " > "))
	}
}

func renderStyles(w io.Writer, s *domain.GameState) {
	if len(s.StyleAnalyses) == 0 {
		fmt.Fprintln(w, "no plays observed yet")
		return
	}
	ids := make([]domain.PlayerID, 0, len(s.StyleAnalyses))
	for id := range s.StyleAnalyses {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		fmt.Fprintf(w, "%s: %s\n", playerName(s, id), brain.DescribeStyle(s.StyleAnalyses[id]))
	}
}

func playerName(s *domain.GameState, id domain.PlayerID) string {
	if p, ok := s.Players[id]; ok && p.Name != "" {
		return p.Name
	}
	return string(id)
}
