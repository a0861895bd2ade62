package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/quizpoker/quizpoker/internal/dependencies/clock"
	"github.com/quizpoker/quizpoker/internal/dependencies/random"
	"github.com/quizpoker/quizpoker/internal/model"
	"github.com/quizpoker/quizpoker/internal/services/betting"
	"github.com/quizpoker/quizpoker/internal/services/question"
	"github.com/quizpoker/quizpoker/internal/services/showdown"
	"github.com/quizpoker/quizpoker/internal/services/turn"
	"github.com/quizpoker/quizpoker/internal/storage"
)

const (
	// SessionIDLength is the length of generated session codes
	SessionIDLength = 6
	// SessionIDAlphabet is the characters used in session codes (avoid confusing chars)
	SessionIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// MaxNameLength bounds display names
	MaxNameLength = 32

	// MinParticipants is the smallest table a hand can start with
	MinParticipants = 1
)

// Controller drives the session state machine. Every public method is
// one command: it validates, mutates, saves exactly once, and returns
// the events to publish. Callers serialize commands per session
// through the Registry.
type Controller struct {
	storage         storage.Storage
	turnService     *turn.Service
	bettingService  *betting.Service
	showdownService *showdown.Service
	questionService *question.Service
	clock           clock.Clock
	random          random.Random
	logger          *slog.Logger
}

// NewController creates a new session controller
func NewController(
	storage storage.Storage,
	turnService *turn.Service,
	bettingService *betting.Service,
	showdownService *showdown.Service,
	questionService *question.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:         storage,
		turnService:     turnService,
		bettingService:  bettingService,
		showdownService: showdownService,
		questionService: questionService,
		clock:           clock,
		random:          random,
		logger:          logger,
	}
}

// CreateSession creates a new empty table
func (c *Controller) CreateSession(ctx context.Context) (*model.Session, error) {
	var id model.SessionID
	for {
		id = model.SessionID(c.random.String(SessionIDLength, SessionIDAlphabet))
		exists, err := c.storage.SessionExists(ctx, id)
		if err != nil {
			return nil, err
		}
		if !exists {
			break
		}
	}

	session := model.NewSession(id, c.clock.Now())
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session created", slog.String("session_id", string(id)))
	return session, nil
}

// GetSession retrieves a session by ID
func (c *Controller) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	return c.storage.GetSession(ctx, id)
}

// Join adds a participant to the table, or reconnects a disconnected
// participant with the same display name under their new connection ID.
func (c *Controller) Join(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, name, avatarSeed string) (*model.Session, []model.Event, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return nil, nil, model.ErrInvalidName
	}

	now := c.clock.Now()
	var events []model.Event

	if existing := session.FindByName(name); existing != nil {
		if existing.Connected {
			return nil, nil, model.ErrNameTaken
		}
		c.migrateIdentity(session, existing, playerID)
		existing.Connected = true
		if avatarSeed != "" {
			existing.AvatarSeed = avatarSeed
		}
		events = append(events, c.event(session, model.EventPlayerReconnected, playerID, model.PlayerJoinedPayload{
			PlayerID:   playerID,
			Name:       name,
			AvatarSeed: existing.AvatarSeed,
			Balance:    existing.Balance,
			Rejoined:   true,
		}))
	} else {
		player := &model.Player{
			ID:         playerID,
			Name:       name,
			Role:       model.RoleParticipant,
			AvatarSeed: avatarSeed,
			Balance:    model.StartingBalance,
			Connected:  true,
			JoinedAt:   now,
		}
		// Joining mid-hand sits the player out until the next deal
		if session.Phase != model.PhaseWaiting {
			player.Folded = true
		}
		session.Players[playerID] = player
		session.Order = append(session.Order, playerID)
		events = append(events, c.event(session, model.EventPlayerJoined, playerID, model.PlayerJoinedPayload{
			PlayerID:   playerID,
			Name:       name,
			AvatarSeed: avatarSeed,
			Balance:    player.Balance,
		}))
	}

	session.UpdatedAt = now
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	c.logger.Info("player joined",
		slog.String("session_id", string(sessionID)),
		slog.String("player_id", string(playerID)),
		slog.String("name", name),
	)

	return session, events, nil
}

// JoinHost seats the host. A table has at most one host at a time.
func (c *Controller) JoinHost(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, name string) (*model.Session, []model.Event, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if session.HostID != "" {
		return nil, nil, model.ErrHostExists
	}

	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return nil, nil, model.ErrInvalidName
	}

	now := c.clock.Now()
	session.Players[playerID] = &model.Player{
		ID:        playerID,
		Name:      name,
		Role:      model.RoleHost,
		Connected: true,
		JoinedAt:  now,
	}
	session.HostID = playerID
	session.UpdatedAt = now

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	events := []model.Event{c.event(session, model.EventHostJoined, playerID, model.PlayerJoinedPayload{
		PlayerID: playerID,
		Name:     name,
	})}

	c.logger.Info("host joined",
		slog.String("session_id", string(sessionID)),
		slog.String("player_id", string(playerID)),
	)

	return session, events, nil
}

// Leave marks a participant disconnected, auto-folding them if it was
// their turn. Their seat and chips survive for a later reconnect. A
// leaving host vacates the host seat entirely.
func (c *Controller) Leave(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID) (*model.Session, []model.Event, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	player := session.Player(playerID)
	if player == nil {
		return nil, nil, model.ErrPlayerNotFound
	}

	var events []model.Event

	if player.Role == model.RoleHost {
		delete(session.Players, playerID)
		session.HostID = ""
		events = append(events, c.event(session, model.EventHostLeft, playerID, model.PlayerLeftPayload{
			PlayerID: playerID,
			Name:     player.Name,
		}))
	} else {
		player.Connected = false
		folded := false
		if session.Phase.IsBetting() && !player.Folded {
			if session.ActivePlayer == playerID {
				player.Folded = true
				folded = true
				session.RecordAction(player.Name, string(betting.ActionFold), 0, c.clock.Now())
				events = append(events, c.advanceAfterAction(session)...)
			}
		}
		events = append([]model.Event{c.event(session, model.EventPlayerLeft, playerID, model.PlayerLeftPayload{
			PlayerID: playerID,
			Name:     player.Name,
			Folded:   folded,
		})}, events...)

		if session.Phase == model.PhaseAnswering {
			events = append(events, c.maybeBeginFirstRound(session)...)
		}
	}

	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	c.logger.Info("player left",
		slog.String("session_id", string(sessionID)),
		slog.String("player_id", string(playerID)),
	)

	return session, events, nil
}

// Kick removes a participant outright. Their chips leave the table
// with them; anything already in the pot stays.
func (c *Controller) Kick(ctx context.Context, sessionID model.SessionID, hostID, targetID model.PlayerID) (*model.Session, []model.Event, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if err := c.requireHost(session, hostID); err != nil {
		return nil, nil, err
	}

	target := session.Player(targetID)
	if target == nil || !target.IsParticipant() {
		return nil, nil, model.ErrPlayerNotFound
	}

	var events []model.Event

	// Fold them out of the hand before the seat disappears so the pot
	// and turn state resolve normally
	if session.Phase.IsBetting() && !target.Folded {
		target.Folded = true
		if session.ActivePlayer == targetID {
			events = append(events, c.advanceAfterAction(session)...)
		} else if len(session.ActiveParticipants()) <= 1 {
			events = append(events, c.completeBettingRound(session)...)
		}
	}

	delete(session.Players, targetID)
	if idx := session.OrderIndex(targetID); idx >= 0 {
		session.Order = append(session.Order[:idx], session.Order[idx+1:]...)
	}
	if n := len(session.Order); n > 0 {
		session.DealerPos %= n
	} else {
		session.DealerPos = 0
	}

	events = append([]model.Event{c.event(session, model.EventPlayerKicked, targetID, model.PlayerKickedPayload{
		PlayerID: targetID,
		Name:     target.Name,
	})}, events...)

	if session.Phase == model.PhaseAnswering {
		events = append(events, c.maybeBeginFirstRound(session)...)
	}

	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	c.logger.Info("player kicked",
		slog.String("session_id", string(sessionID)),
		slog.String("player_id", string(targetID)),
	)

	return session, events, nil
}

// StartHand deals a new question and opens the answering phase
func (c *Controller) StartHand(ctx context.Context, sessionID model.SessionID, hostID model.PlayerID) (*model.Session, []model.Event, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if err := c.requireHost(session, hostID); err != nil {
		return nil, nil, err
	}
	if session.Phase != model.PhaseWaiting {
		return nil, nil, model.ErrWrongPhase
	}

	connected := 0
	for _, p := range session.Participants() {
		if p.Connected {
			connected++
		}
	}
	if connected < MinParticipants {
		return nil, nil, model.ErrInsufficientPlayers
	}

	q, err := c.questionService.Pick(ctx, session.LastQuestionID)
	if err != nil {
		return nil, nil, err
	}
	if err := c.questionService.MarkUsed(ctx, q.ID); err != nil {
		return nil, nil, err
	}

	session.HandNumber++
	session.Question = q
	session.CorrectAnswer = q.Answer
	session.RemainingHints = append([]string(nil), q.Hints...)
	session.RevealedHints = nil
	session.LastQuestionID = q.ID
	session.MinimumRaise = c.bettingService.MinimumRaiseFor(session.HandNumber, session.BlindsEnabled)
	for _, p := range session.Participants() {
		p.ResetForHand()
	}

	from := session.Phase
	session.Phase = model.PhaseAnswering
	session.UpdatedAt = c.clock.Now()

	events := []model.Event{
		c.event(session, model.EventHandStarted, hostID, model.HandStartedPayload{
			HandNumber:   session.HandNumber,
			QuestionText: q.Text,
			MinimumRaise: session.MinimumRaise,
		}),
		c.event(session, model.EventPhaseChanged, "", model.PhaseChangedPayload{
			From: from,
			To:   model.PhaseAnswering,
		}),
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	c.logger.Info("hand started",
		slog.String("session_id", string(sessionID)),
		slog.Int("hand_number", session.HandNumber),
		slog.String("question_id", string(q.ID)),
	)

	return session, events, nil
}

// SubmitAnswer locks in a participant's answer. Re-submitting before
// betting opens replaces the previous answer. Once every connected,
// non-folded participant has answered, the first betting round begins.
func (c *Controller) SubmitAnswer(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, answer string) (*model.Session, []model.Event, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if session.Phase != model.PhaseAnswering {
		return nil, nil, model.ErrWrongPhase
	}

	player := session.Player(playerID)
	if player == nil || !player.IsParticipant() {
		return nil, nil, model.ErrPlayerNotFound
	}
	if player.Folded {
		return nil, nil, model.ErrAlreadyFolded
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, nil, model.ErrInvalidAnswer
	}
	player.Answer = &answer

	answered, total := c.answerProgress(session)
	events := []model.Event{c.event(session, model.EventAnswerLocked, playerID, model.AnswerLockedPayload{
		PlayerID: playerID,
		Name:     player.Name,
		Answered: answered,
		OutOf:    total,
	})}

	events = append(events, c.maybeBeginFirstRound(session)...)

	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	return session, events, nil
}

// Act applies a betting action for the active player
func (c *Controller) Act(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, action string, amount int) (*model.Session, []model.Event, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if !session.Phase.IsBetting() {
		return nil, nil, model.ErrWrongPhase
	}

	player := session.Player(playerID)
	if player == nil || !player.IsParticipant() {
		return nil, nil, model.ErrPlayerNotFound
	}
	if session.ActivePlayer != playerID {
		return nil, nil, model.ErrNotYourTurn
	}

	var outcome betting.Outcome
	switch action {
	case "fold":
		outcome, err = c.bettingService.Fold(session, player)
	case "check", "call":
		outcome, err = c.bettingService.Call(session, player)
	case "raise":
		outcome, err = c.bettingService.Raise(session, player, amount)
	default:
		return nil, nil, model.ErrInvalidAction
	}
	if err != nil {
		return nil, nil, err
	}

	if outcome.Raised {
		session.LastAggressor = playerID
	}
	session.RecordAction(player.Name, string(outcome.Kind), outcome.Amount, c.clock.Now())

	betEvent := c.event(session, model.EventBetPlaced, playerID, model.BetPlacedPayload{
		PlayerID:   playerID,
		Name:       player.Name,
		Kind:       string(outcome.Kind),
		Amount:     outcome.Amount,
		Pot:        session.Pot,
		CurrentBet: session.CurrentBet,
	})

	followUps := c.advanceAfterAction(session)

	// Patch the next actor in now that the turn has advanced
	payload := betEvent.Payload.(model.BetPlacedPayload)
	payload.NextPlayer = session.ActivePlayer
	betEvent.Payload = payload

	events := append([]model.Event{betEvent}, followUps...)

	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	return session, events, nil
}

// RevealHint publishes the next hint and opens the following betting round
func (c *Controller) RevealHint(ctx context.Context, sessionID model.SessionID, hostID model.PlayerID) (*model.Session, []model.Event, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if err := c.requireHost(session, hostID); err != nil {
		return nil, nil, err
	}
	round, ok := session.Phase.HintRound()
	if !ok {
		return nil, nil, model.ErrWrongPhase
	}
	if len(session.RemainingHints) == 0 {
		return nil, nil, model.ErrNoHintsRemaining
	}

	hint := session.RemainingHints[0]
	session.RemainingHints = session.RemainingHints[1:]
	session.RevealedHints = append(session.RevealedHints, hint)

	events := []model.Event{c.event(session, model.EventHintRevealed, hostID, model.HintRevealedPayload{
		Hint:      hint,
		HintIndex: len(session.RevealedHints),
		Remaining: len(session.RemainingHints),
	})}

	events = append(events, c.beginBettingRound(session, round+1)...)

	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	return session, events, nil
}

// RevealAnswer publishes the correct answer and opens the final betting round
func (c *Controller) RevealAnswer(ctx context.Context, sessionID model.SessionID, hostID model.PlayerID) (*model.Session, []model.Event, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if err := c.requireHost(session, hostID); err != nil {
		return nil, nil, err
	}
	if session.Phase != model.PhaseAnswerReveal {
		return nil, nil, model.ErrWrongPhase
	}

	events := []model.Event{c.event(session, model.EventAnswerShown, hostID, model.AnswerShownPayload{
		CorrectAnswer: session.CorrectAnswer,
	})}

	events = append(events, c.beginBettingRound(session, 4)...)

	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	return session, events, nil
}

// ResolveShowdown compares answers, pays the pot out, and returns the
// table to waiting for the next hand
func (c *Controller) ResolveShowdown(ctx context.Context, sessionID model.SessionID, hostID model.PlayerID) (*model.Session, []model.Event, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if err := c.requireHost(session, hostID); err != nil {
		return nil, nil, err
	}
	if session.Phase != model.PhaseShowdown {
		return nil, nil, model.ErrWrongPhase
	}

	result, err := c.showdownService.Resolve(session)
	if err != nil {
		return nil, nil, err
	}

	events := c.applyResult(session, result)

	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	c.logger.Info("hand resolved",
		slog.String("session_id", string(sessionID)),
		slog.Int("pot", result.Pot),
		slog.Int("winners", len(result.Winners)),
	)

	return session, events, nil
}

// ResetHand restarts the current question from the answering phase.
// The pot is preserved so chips are never destroyed; hints go back in
// the deck and all answers and fold flags clear.
func (c *Controller) ResetHand(ctx context.Context, sessionID model.SessionID, hostID model.PlayerID) (*model.Session, []model.Event, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if err := c.requireHost(session, hostID); err != nil {
		return nil, nil, err
	}
	if session.Question == nil {
		return nil, nil, model.ErrNoActiveQuestion
	}

	from := session.Phase
	session.Phase = model.PhaseAnswering
	session.RemainingHints = append([]string(nil), session.Question.Hints...)
	session.RevealedHints = nil
	session.CurrentBet = 0
	session.BettingRound = 0
	session.ActivePlayer = ""
	session.LastAggressor = ""
	session.OpenedBy = ""
	for _, p := range session.Participants() {
		p.RoundBet = 0
		p.Folded = false
		p.AllIn = false
		p.Acted = false
		p.Answer = nil
		p.AnswerRevealed = false
	}

	events := []model.Event{
		c.event(session, model.EventHandReset, hostID, nil),
		c.event(session, model.EventPhaseChanged, "", model.PhaseChangedPayload{
			From: from,
			To:   model.PhaseAnswering,
		}),
	}

	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	return session, events, nil
}

// ResetGame tears the table down to a fresh waiting state. Every seat
// except the host's is removed; the pot, question, hand counter, and
// action history are all discarded.
func (c *Controller) ResetGame(ctx context.Context, sessionID model.SessionID, hostID model.PlayerID) (*model.Session, []model.Event, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if err := c.requireHost(session, hostID); err != nil {
		return nil, nil, err
	}

	from := session.Phase
	for id, p := range session.Players {
		if p.Role != model.RoleHost {
			delete(session.Players, id)
		}
	}
	session.Order = nil
	session.Phase = model.PhaseWaiting
	session.ClearQuestion()
	session.LastQuestionID = ""
	session.Pot = 0
	session.CurrentBet = 0
	session.BettingRound = 0
	session.MinimumRaise = model.BaseMinimumRaise
	session.ActivePlayer = ""
	session.LastAggressor = ""
	session.OpenedBy = ""
	session.HandNumber = 0
	session.DealerPos = 0
	session.ActionLog = nil

	events := []model.Event{
		c.event(session, model.EventGameReset, hostID, nil),
		c.event(session, model.EventPhaseChanged, "", model.PhaseChangedPayload{
			From: from,
			To:   model.PhaseWaiting,
		}),
	}

	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	c.logger.Info("game reset", slog.String("session_id", string(sessionID)))

	return session, events, nil
}

// RevealOwnAnswer lets a participant show the table their locked
// answer once betting has begun
func (c *Controller) RevealOwnAnswer(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID) (*model.Session, []model.Event, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if session.Phase == model.PhaseWaiting || session.Phase == model.PhaseAnswering {
		return nil, nil, model.ErrWrongPhase
	}

	player := session.Player(playerID)
	if player == nil || !player.IsParticipant() {
		return nil, nil, model.ErrPlayerNotFound
	}
	if player.Answer == nil {
		return nil, nil, model.ErrInvalidAnswer
	}

	player.AnswerRevealed = true

	events := []model.Event{c.event(session, model.EventAnswerRevealed, playerID, model.AnswerRevealedPayload{
		PlayerID: playerID,
		Name:     player.Name,
		Answer:   *player.Answer,
	})}

	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	return session, events, nil
}

// AdjustBalance lets the host grant or remove chips between hands
func (c *Controller) AdjustBalance(ctx context.Context, sessionID model.SessionID, hostID, targetID model.PlayerID, delta int) (*model.Session, []model.Event, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if err := c.requireHost(session, hostID); err != nil {
		return nil, nil, err
	}
	if session.Phase != model.PhaseWaiting {
		return nil, nil, model.ErrWrongPhase
	}

	target := session.Player(targetID)
	if target == nil || !target.IsParticipant() {
		return nil, nil, model.ErrPlayerNotFound
	}
	if delta == 0 || target.Balance+delta < 0 {
		return nil, nil, model.ErrInvalidAmount
	}

	target.Balance += delta

	events := []model.Event{c.event(session, model.EventBalanceAdjusted, targetID, model.BalanceAdjustedPayload{
		PlayerID:   targetID,
		Name:       target.Name,
		Delta:      delta,
		NewBalance: target.Balance,
	})}

	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	return session, events, nil
}

// SetBlindsEnabled toggles minimum-raise escalation between hands
func (c *Controller) SetBlindsEnabled(ctx context.Context, sessionID model.SessionID, hostID model.PlayerID, enabled bool) (*model.Session, []model.Event, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if err := c.requireHost(session, hostID); err != nil {
		return nil, nil, err
	}
	if session.Phase != model.PhaseWaiting {
		return nil, nil, model.ErrWrongPhase
	}

	session.BlindsEnabled = enabled
	session.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	return session, nil, nil
}

// requireHost verifies the acting player holds the host seat
func (c *Controller) requireHost(session *model.Session, playerID model.PlayerID) error {
	if session.HostID == "" || session.HostID != playerID {
		return model.ErrNotHost
	}
	return nil
}

// migrateIdentity moves a player record to a new connection ID,
// updating every pointer that referenced the old one
func (c *Controller) migrateIdentity(session *model.Session, player *model.Player, newID model.PlayerID) {
	oldID := player.ID
	delete(session.Players, oldID)
	player.ID = newID
	session.Players[newID] = player

	if idx := session.OrderIndex(oldID); idx >= 0 {
		session.Order[idx] = newID
	}
	if session.HostID == oldID {
		session.HostID = newID
	}
	if session.ActivePlayer == oldID {
		session.ActivePlayer = newID
	}
	if session.LastAggressor == oldID {
		session.LastAggressor = newID
	}
	if session.OpenedBy == oldID {
		session.OpenedBy = newID
	}
}

// answerProgress counts answers in from the players expected to answer
func (c *Controller) answerProgress(session *model.Session) (answered, total int) {
	for _, p := range session.Participants() {
		if !p.Connected || p.Folded {
			continue
		}
		total++
		if p.HasAnswered() {
			answered++
		}
	}
	return answered, total
}

// maybeBeginFirstRound opens betting round 1 once everyone expected to
// answer has done so
func (c *Controller) maybeBeginFirstRound(session *model.Session) []model.Event {
	if session.Phase != model.PhaseAnswering {
		return nil
	}
	answered, total := c.answerProgress(session)
	if total == 0 || answered < total {
		return nil
	}
	return c.beginBettingRound(session, 1)
}

// beginBettingRound resets per-round bet state and hands the turn to
// the first eligible actor. If nobody can act (everyone all-in), the
// round completes immediately.
func (c *Controller) beginBettingRound(session *model.Session, round int) []model.Event {
	phase, ok := model.BettingPhase(round)
	if !ok {
		return nil
	}

	from := session.Phase
	session.Phase = phase
	session.BettingRound = round
	session.CurrentBet = 0
	session.LastAggressor = ""
	session.ActivePlayer = ""
	session.OpenedBy = ""
	for _, p := range session.Participants() {
		p.RoundBet = 0
		p.Acted = false
	}

	first, ok := c.turnService.FirstActor(session)
	if !ok {
		events := []model.Event{c.event(session, model.EventPhaseChanged, "", model.PhaseChangedPayload{
			From:         from,
			To:           phase,
			BettingRound: round,
		})}
		return append(events, c.completeBettingRound(session)...)
	}

	session.ActivePlayer = first
	session.OpenedBy = first

	return []model.Event{c.event(session, model.EventPhaseChanged, "", model.PhaseChangedPayload{
		From:         from,
		To:           phase,
		BettingRound: round,
		ActivePlayer: first,
	})}
}

// advanceAfterAction moves the turn along after the active player has
// acted (or been folded), completing the round when betting is closed
func (c *Controller) advanceAfterAction(session *model.Session) []model.Event {
	next, complete := c.turnService.Advance(session)
	if complete {
		return c.completeBettingRound(session)
	}
	session.ActivePlayer = next
	return nil
}

// completeBettingRound closes the current betting round and moves the
// hand to whatever comes next: a fold-out award, a hint phase, the
// answer reveal, or the showdown.
func (c *Controller) completeBettingRound(session *model.Session) []model.Event {
	round := session.BettingRound
	session.ActivePlayer = ""
	session.LastAggressor = ""
	session.OpenedBy = ""

	contenders := session.ActiveParticipants()
	if len(contenders) <= 1 {
		if len(contenders) == 1 {
			result := c.showdownService.FoldOut(session, contenders[0])
			return c.applyResult(session, result)
		}
		// Everyone gone mid-hand; nothing to award, just reset
		from := session.Phase
		session.Pot = 0
		session.ResetForNextHand()
		return []model.Event{c.event(session, model.EventPhaseChanged, "", model.PhaseChangedPayload{
			From: from,
			To:   session.Phase,
		})}
	}

	allIn := true
	for _, p := range contenders {
		if p.CanAct() {
			allIn = false
			break
		}
	}

	var to model.Phase
	switch {
	case round >= 4:
		to = model.PhaseShowdown
	case round == 3:
		if allIn {
			to = model.PhaseShowdown
		} else {
			to = model.PhaseAnswerReveal
		}
	case allIn || len(session.RemainingHints) == 0:
		to = model.PhaseShowdown
	default:
		hintPhase, _ := model.HintPhase(round)
		to = hintPhase
	}

	from := session.Phase
	session.Phase = to

	return []model.Event{c.event(session, model.EventPhaseChanged, "", model.PhaseChangedPayload{
		From: from,
		To:   to,
	})}
}

// applyResult pays the pot out, warns about a coming blind increase,
// and returns the table to waiting
func (c *Controller) applyResult(session *model.Session, result showdown.Result) []model.Event {
	for id, amount := range result.Payouts {
		if p := session.Player(id); p != nil {
			p.Balance += amount
		}
	}
	session.Pot = 0

	events := []model.Event{c.event(session, model.EventHandResolved, "", model.HandResolvedPayload{
		FoldOut:       result.Mode == showdown.ModeFoldOut,
		CorrectAnswer: session.CorrectAnswer,
		Winners:       result.Winners,
		Payouts:       result.Payouts,
		Pot:           result.Pot,
	})}

	if session.BlindsEnabled {
		current := c.bettingService.MinimumRaiseFor(session.HandNumber, true)
		next := c.bettingService.MinimumRaiseFor(session.HandNumber+1, true)
		if next > current {
			events = append(events, c.event(session, model.EventBlindIncrease, "", model.BlindIncreasePayload{
				NextMinimumRaise: next,
				NextHandNumber:   session.HandNumber + 1,
			}))
		}
	}

	from := session.Phase
	session.ResetForNextHand()

	events = append(events, c.event(session, model.EventPhaseChanged, "", model.PhaseChangedPayload{
		From: from,
		To:   session.Phase,
	}))

	return events
}

// event builds an event stamped with the session and current time
func (c *Controller) event(session *model.Session, eventType model.EventType, playerID model.PlayerID, payload any) model.Event {
	return model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		SessionID: session.ID,
		PlayerID:  playerID,
		Payload:   payload,
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateSession(ctx context.Context) (*model.Session, error)
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	Join(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, name, avatarSeed string) (*model.Session, []model.Event, error)
	JoinHost(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, name string) (*model.Session, []model.Event, error)
	Leave(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID) (*model.Session, []model.Event, error)
	Kick(ctx context.Context, sessionID model.SessionID, hostID, targetID model.PlayerID) (*model.Session, []model.Event, error)
	StartHand(ctx context.Context, sessionID model.SessionID, hostID model.PlayerID) (*model.Session, []model.Event, error)
	SubmitAnswer(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, answer string) (*model.Session, []model.Event, error)
	Act(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, action string, amount int) (*model.Session, []model.Event, error)
	RevealHint(ctx context.Context, sessionID model.SessionID, hostID model.PlayerID) (*model.Session, []model.Event, error)
	RevealAnswer(ctx context.Context, sessionID model.SessionID, hostID model.PlayerID) (*model.Session, []model.Event, error)
	ResolveShowdown(ctx context.Context, sessionID model.SessionID, hostID model.PlayerID) (*model.Session, []model.Event, error)
	ResetHand(ctx context.Context, sessionID model.SessionID, hostID model.PlayerID) (*model.Session, []model.Event, error)
	ResetGame(ctx context.Context, sessionID model.SessionID, hostID model.PlayerID) (*model.Session, []model.Event, error)
	RevealOwnAnswer(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID) (*model.Session, []model.Event, error)
	AdjustBalance(ctx context.Context, sessionID model.SessionID, hostID, targetID model.PlayerID, delta int) (*model.Session, []model.Event, error)
	SetBlindsEnabled(ctx context.Context, sessionID model.SessionID, hostID model.PlayerID, enabled bool) (*model.Session, []model.Event, error)
}

var _ ControllerInterface = (*Controller)(nil)
