package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case SessionResult:
		o.printSession(v.Session)
	case JoinResult:
		fmt.Printf("Player ID: %s\n\n", v.PlayerID)
		o.printSession(v.Session)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Session response types (match the API)

// SessionResult wraps a snapshot
type SessionResult struct {
	Session Snapshot `json:"session"`
}

// JoinResult is the join response
type JoinResult struct {
	PlayerID string   `json:"player_id"`
	Session  Snapshot `json:"session"`
}

// Snapshot is the per-viewer session view
type Snapshot struct {
	ID            string   `json:"id"`
	Phase         string   `json:"phase"`
	QuestionText  string   `json:"question_text,omitempty"`
	RevealedHints []string `json:"revealed_hints,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	Pot           int      `json:"pot"`
	CurrentBet    int      `json:"current_bet"`
	BettingRound  int      `json:"betting_round,omitempty"`
	MinimumRaise  int      `json:"minimum_raise"`
	ActivePlayer  string   `json:"active_player,omitempty"`
	HandNumber    int      `json:"hand_number"`
	Dealer        string   `json:"dealer,omitempty"`
	BlindsEnabled bool     `json:"blinds_enabled"`
	HostID        string   `json:"host_id,omitempty"`
	Players       []PlayerView `json:"players"`
	You           string   `json:"you,omitempty"`
}

// PlayerView is one seat in a snapshot
type PlayerView struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	Balance        int     `json:"balance"`
	RoundBet       int     `json:"round_bet"`
	Folded         bool    `json:"folded"`
	AllIn          bool    `json:"all_in"`
	HasAnswered    bool    `json:"has_answered"`
	Answer         *string `json:"answer,omitempty"`
	AnswerRevealed bool    `json:"answer_revealed"`
	Connected      bool    `json:"connected"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSession(s Snapshot) {
	fmt.Printf("Session: %s\n", s.ID)
	fmt.Printf("Phase: %s\n", s.Phase)
	fmt.Printf("Hand: %d\n", s.HandNumber)
	if s.QuestionText != "" {
		fmt.Printf("Question: %s\n", s.QuestionText)
	}
	for i, hint := range s.RevealedHints {
		fmt.Printf("Hint %d: %s\n", i+1, hint)
	}
	if s.CorrectAnswer != "" {
		fmt.Printf("Answer: %s\n", s.CorrectAnswer)
	}
	fmt.Printf("Pot: %d  Current Bet: %d  Minimum Raise: %d\n", s.Pot, s.CurrentBet, s.MinimumRaise)

	fmt.Printf("Players (%d):\n", len(s.Players))
	for _, p := range s.Players {
		var tags []string
		if p.ID == s.ActivePlayer {
			tags = append(tags, "to act")
		}
		if p.ID == s.Dealer {
			tags = append(tags, "dealer")
		}
		if p.Folded {
			tags = append(tags, "folded")
		}
		if p.AllIn {
			tags = append(tags, "all-in")
		}
		if p.HasAnswered {
			tags = append(tags, "answered")
		}
		if !p.Connected {
			tags = append(tags, "away")
		}
		tagStr := ""
		if len(tags) > 0 {
			tagStr = " [" + strings.Join(tags, ", ") + "]"
		}
		fmt.Printf("  - %s: %d chips, bet %d%s\n", p.Name, p.Balance, p.RoundBet, tagStr)
		if p.Answer != nil {
			fmt.Printf("      answer: %s\n", *p.Answer)
		}
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
