package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Membership events
	EventPlayerJoined      EventType = "player_joined"
	EventPlayerLeft        EventType = "player_left"
	EventPlayerKicked      EventType = "player_kicked"
	EventPlayerReconnected EventType = "player_reconnected"
	EventHostJoined        EventType = "host_joined"
	EventHostLeft          EventType = "host_left"

	// Hand lifecycle events
	EventHandStarted   EventType = "hand_started"
	EventAnswerLocked  EventType = "answer_locked"
	EventPhaseChanged  EventType = "phase_changed"
	EventHintRevealed  EventType = "hint_revealed"
	EventAnswerShown   EventType = "answer_shown"
	EventHandResolved  EventType = "hand_resolved"
	EventHandReset     EventType = "hand_reset"
	EventGameReset     EventType = "game_reset"
	EventBlindIncrease EventType = "blind_increase"

	// Betting events
	EventBetPlaced  EventType = "bet_placed"
	EventTurnPassed EventType = "turn_passed"

	// Administrative events
	EventBalanceAdjusted EventType = "balance_adjusted"
	EventAnswerRevealed  EventType = "answer_revealed"
)

// Event is the base structure for all events. Target, when set, narrows
// delivery to a single player; an empty Target broadcasts to the table.
type Event struct {
	Type      EventType
	Timestamp time.Time
	SessionID SessionID
	PlayerID  PlayerID // The player who triggered or is affected
	Target    PlayerID // Empty for broadcast events
	Payload   any      // Type-specific data
}

// PlayerJoinedPayload contains data for player joined events
type PlayerJoinedPayload struct {
	PlayerID   PlayerID
	Name       string
	AvatarSeed string
	Balance    int
	Rejoined   bool
}

// PlayerLeftPayload contains data for player left events
type PlayerLeftPayload struct {
	PlayerID PlayerID
	Name     string
	Folded   bool // true if leaving mid-hand auto-folded the player
}

// PlayerKickedPayload contains data for player kicked events
type PlayerKickedPayload struct {
	PlayerID PlayerID
	Name     string
}

// HandStartedPayload contains data for hand started events. The question
// text is public; the correct answer and hints are not.
type HandStartedPayload struct {
	HandNumber   int
	QuestionText string
	MinimumRaise int
}

// AnswerLockedPayload announces that a player has committed an answer
// without disclosing it.
type AnswerLockedPayload struct {
	PlayerID  PlayerID
	Name      string
	Answered  int // players who have answered so far
	OutOf     int // total participants expected to answer
}

// PhaseChangedPayload contains data for phase changed events
type PhaseChangedPayload struct {
	From         Phase
	To           Phase
	BettingRound int      // non-zero when To is a betting phase
	ActivePlayer PlayerID // first to act, when To is a betting phase
}

// HintRevealedPayload contains data for hint revealed events
type HintRevealedPayload struct {
	Hint      string
	HintIndex int // 1-based position among the question's hints
	Remaining int
}

// AnswerShownPayload contains data for answer shown events
type AnswerShownPayload struct {
	CorrectAnswer string
}

// BetPlacedPayload contains data for betting action events
type BetPlacedPayload struct {
	PlayerID   PlayerID
	Name       string
	Kind       string // fold, check, call, raise, all_in
	Amount     int    // chips moved to the pot by this action
	Pot        int
	CurrentBet int
	NextPlayer PlayerID // empty when the action closed the round
}

// TurnPassedPayload contains data for turn passed events
type TurnPassedPayload struct {
	ActivePlayer PlayerID
	Name         string
}

// HandResolvedPayload contains data for hand resolved events
type HandResolvedPayload struct {
	FoldOut       bool
	CorrectAnswer string
	Winners       []PlayerID
	Payouts       map[PlayerID]int
	Pot           int
}

// BlindIncreasePayload warns the table that the next hand escalates the
// minimum raise.
type BlindIncreasePayload struct {
	NextMinimumRaise int
	NextHandNumber   int
}

// BalanceAdjustedPayload contains data for balance adjusted events
type BalanceAdjustedPayload struct {
	PlayerID   PlayerID
	Name       string
	Delta      int
	NewBalance int
}

// AnswerRevealedPayload contains data for a player voluntarily showing
// their own answer.
type AnswerRevealedPayload struct {
	PlayerID PlayerID
	Name     string
	Answer   string
}
