package game

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/samber/lo"

	"quizmaster/internal/model"
)

const (
	// Delay between "game started" and the first question, giving clients
	// time to switch screens.
	startCountdownSec = 3
	// Delay between question resolution and the next question.
	revealDelaySec = 5

	recordTimeout = 10 * time.Second
)

// Engine drives the per-room game state machine: lobby, countdown, open
// question, reveal, finished. Every transition for a room runs under that
// room's lock; broadcasts are issued while the lock is held so clients see
// events in the order the engine produced them. Timer callbacks are bound to
// the room's UUID, never just its code, so a countdown that outlives its room
// cannot touch a newer room reusing the same code.
type Engine struct {
	registry *Registry
	clock    *Clock
	gateway  Gateway
	recorder ResultRecorder
}

// NewEngine creates the game engine.
func NewEngine(registry *Registry, clock *Clock, gateway Gateway, recorder ResultRecorder) *Engine {
	return &Engine{
		registry: registry,
		clock:    clock,
		gateway:  gateway,
		recorder: recorder,
	}
}

type roomAndPlayer struct {
	Room   model.RoomSnapshot `json:"room"`
	Player model.Player       `json:"player"`
}

type questionPayload struct {
	Question  model.Question  `json:"question"`
	GameState model.GameState `json:"gameState"`
}

type answerAck struct {
	IsCorrect bool `json:"isCorrect"`
}

type questionEndPayload struct {
	CorrectAnswer string                 `json:"correctAnswer"`
	GameState     model.GameState        `json:"gameState"`
	Results       []model.QuestionResult `json:"results"`
}

type playerLeftPayload struct {
	PlayerID string `json:"playerId"`
}

// CreateRoom handles the create intent. The caller becomes sole member and
// host of a fresh room.
func (e *Engine) CreateRoom(ctx context.Context, connID, name string, settings model.GameSettings) error {
	room, host, err := e.registry.Create(ctx, connID, name, settings)
	if err != nil {
		return err
	}

	e.gateway.Subscribe(connID, room.Code)

	room.mu.Lock()
	snap := room.snapshot()
	room.mu.Unlock()

	e.gateway.SendTo(connID, EventRoomJoined, roomAndPlayer{Room: snap, Player: *host})
	log.Printf("Room %s created by %s", room.Code, name)
	return nil
}

// JoinRoom handles the join intent.
func (e *Engine) JoinRoom(connID, code, name string) error {
	room, player, err := e.registry.Join(connID, code, name)
	if err != nil {
		return err
	}

	e.gateway.Subscribe(connID, room.Code)

	room.mu.Lock()
	snap := room.snapshot()
	joined := *player
	e.gateway.Broadcast(room.Code, EventRoomUpdated, snap)
	e.gateway.Broadcast(room.Code, EventPlayerJoined, joined)
	e.gateway.SendTo(connID, EventRoomJoined, roomAndPlayer{Room: snap, Player: joined})
	room.mu.Unlock()

	log.Printf("%s joined room %s", name, room.Code)
	return nil
}

// LeaveRoom handles both the explicit leave intent and disconnects. Removing
// the last member deletes the room and cancels its pending countdown; an
// unanswered departure mid-question may complete the all-answered condition
// for the remaining members.
func (e *Engine) LeaveRoom(connID string) {
	res := e.registry.Leave(connID)
	if res == nil {
		return
	}

	e.gateway.Unsubscribe(connID)
	room := res.Room

	if res.Deleted {
		e.clock.Cancel(room.Code)
		log.Printf("Room %s deleted (empty)", room.Code)
		return
	}

	room.mu.Lock()
	e.gateway.Broadcast(room.Code, EventRoomUpdated, room.snapshot())
	e.gateway.Broadcast(room.Code, EventPlayerLeft, playerLeftPayload{PlayerID: connID})
	if room.Phase == model.PhaseQuestion && room.allAnswered() {
		e.resolveQuestionLocked(room)
	}
	room.mu.Unlock()

	log.Printf("Player %s left room %s", connID, room.Code)
}

// HandleDisconnect treats a dropped connection as a leave.
func (e *Engine) HandleDisconnect(connID string) {
	e.LeaveRoom(connID)
}

// StartGame handles the start intent. Host only, two players minimum.
func (e *Engine) StartGame(connID string) error {
	room := e.registry.Resolve(connID)
	if room == nil {
		return ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.HostID != connID {
		return ErrNotHost
	}
	if len(room.Players) < 2 {
		return ErrInsufficientPlayers
	}
	if room.Started {
		return ErrGameAlreadyStarted
	}

	room.Started = true
	room.Phase = model.PhaseCountdown
	room.CurrentQuestionIndex = 0
	room.StartedAt = time.Now()
	room.resetForStart()

	e.gateway.Broadcast(room.Code, EventGameStarted, room.snapshot())

	roomID := room.ID
	code := room.Code
	e.clock.Start(code, startCountdownSec, nil, func() {
		e.openQuestion(roomID, code)
	})

	log.Printf("Game started in room %s with %d players", code, len(room.Players))
	return nil
}

// SubmitAnswer handles the answer intent. Late, duplicate, or out-of-room
// submissions are silently ignored; the next broadcast corrects the client.
func (e *Engine) SubmitAnswer(connID, answer string) {
	room := e.registry.Resolve(connID)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.Phase != model.PhaseQuestion {
		return
	}
	player := room.playerByID(connID)
	if player == nil || player.HasAnswered {
		return
	}
	question := room.currentQuestion()
	if question == nil {
		return
	}

	player.HasAnswered = true
	player.CurrentAnswer = answer
	player.LastAnswerTime = time.Now()

	correct := answer == question.CorrectAnswer
	e.gateway.SendTo(connID, EventAnswerSubmitted, answerAck{IsCorrect: correct})

	if room.allAnswered() {
		e.resolveQuestionLocked(room)
	}
}

// SetReady marks the caller ready in the lobby. Readiness never gates the
// host's start.
func (e *Engine) SetReady(connID string) {
	room := e.registry.Resolve(connID)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	player := room.playerByID(connID)
	if player == nil {
		return
	}
	player.IsReady = true
	e.gateway.Broadcast(room.Code, EventRoomUpdated, room.snapshot())
}

// openQuestion is the countdown/advance terminal callback: it emits the
// question at the current index, or finishes the game when the sequence is
// exhausted. Stale callbacks for deleted or replaced rooms are ignored.
func (e *Engine) openQuestion(roomID, code string) {
	room := e.lookup(roomID, code)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if !room.Started || room.Finished {
		return
	}
	e.openQuestionLocked(room)
}

// openQuestionLocked emits the current question and arms its countdown.
// Caller holds room.mu.
func (e *Engine) openQuestionLocked(room *Room) {
	question := room.currentQuestion()
	if question == nil {
		e.finishGameLocked(room)
		return
	}

	room.Phase = model.PhaseQuestion
	room.QuestionStartTime = time.Now()
	room.clearAnswers()

	state := model.GameState{
		CurrentQuestionIndex: room.CurrentQuestionIndex,
		TimeRemaining:        room.Settings.TimePerQuestion,
		IsQuestionActive:     true,
		Scores:               room.scores(),
	}
	e.gateway.Broadcast(room.Code, EventGameQuestion, questionPayload{
		Question:  question.Public(),
		GameState: state,
	})

	roomID := room.ID
	code := room.Code
	e.clock.Start(code, room.Settings.TimePerQuestion,
		func(remaining int) {
			e.tick(roomID, code, remaining)
		},
		func() {
			e.questionTimeout(roomID, code)
		},
	)

	log.Printf("Question %d/%d sent to room %s", room.CurrentQuestionIndex+1, len(room.Questions), code)
}

// tick broadcasts the remaining seconds. It takes the room lock so a tick in
// flight during resolution is dropped instead of trailing the resolution
// event.
func (e *Engine) tick(roomID, code string, remaining int) {
	room := e.lookup(roomID, code)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.Phase != model.PhaseQuestion {
		return
	}
	e.gateway.Broadcast(code, EventTimerUpdate, remaining)
}

// questionTimeout is the question countdown's terminal callback.
func (e *Engine) questionTimeout(roomID, code string) {
	room := e.lookup(roomID, code)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.Phase != model.PhaseQuestion {
		return
	}
	e.resolveQuestionLocked(room)
}

// resolveQuestionLocked closes answer acceptance, scores every member,
// broadcasts the outcome, and schedules the advance to the next question.
// Caller holds room.mu.
func (e *Engine) resolveQuestionLocked(room *Room) {
	e.clock.Cancel(room.Code)

	question := room.currentQuestion()
	if question == nil {
		e.finishGameLocked(room)
		return
	}

	results := make([]model.QuestionResult, 0, len(room.Players))
	for _, p := range room.Players {
		correct := p.HasAnswered && p.CurrentAnswer == question.CorrectAnswer
		elapsed := float64(room.Settings.TimePerQuestion)
		if p.HasAnswered {
			elapsed = elapsedSeconds(room.QuestionStartTime, p.LastAnswerTime)
		}

		points := 0
		if correct {
			points = score(question.TimeLimit, elapsed)
			p.Score += points
		}

		results = append(results, model.QuestionResult{
			PlayerID:     p.ID,
			PlayerName:   p.Name,
			Answer:       p.CurrentAnswer,
			IsCorrect:    correct,
			TimeToAnswer: elapsed,
			PointsEarned: points,
		})
	}

	room.Phase = model.PhaseReveal

	state := model.GameState{
		CurrentQuestionIndex: room.CurrentQuestionIndex,
		TimeRemaining:        0,
		IsQuestionActive:     false,
		Scores:               room.scores(),
		CorrectAnswer:        question.CorrectAnswer,
		ShowResults:          true,
	}
	e.gateway.Broadcast(room.Code, EventQuestionEnd, questionEndPayload{
		CorrectAnswer: question.CorrectAnswer,
		GameState:     state,
		Results:       results,
	})

	roomID := room.ID
	code := room.Code
	e.clock.Start(code, revealDelaySec, nil, func() {
		e.advanceQuestion(roomID, code)
	})
}

// advanceQuestion is the reveal delay's terminal callback: it moves to the
// next question or finishes the game.
func (e *Engine) advanceQuestion(roomID, code string) {
	room := e.lookup(roomID, code)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if !room.Started || room.Finished {
		return
	}

	room.CurrentQuestionIndex++
	e.openQuestionLocked(room)
}

// finishGameLocked computes the final ranking, broadcasts it, and hands the
// record to the persistence collaborator without waiting on it.
// Caller holds room.mu.
func (e *Engine) finishGameLocked(room *Room) {
	e.clock.Cancel(room.Code)

	room.Finished = true
	room.Phase = model.PhaseFinished

	ranked := lo.Map(room.Players, func(p *model.Player, _ int) model.FinalScore {
		return model.FinalScore{PlayerID: p.ID, PlayerName: p.Name, Score: p.Score}
	})
	// Stable sort keeps join order for ties.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	e.gateway.Broadcast(room.Code, EventRoomUpdated, room.snapshot())
	e.gateway.Broadcast(room.Code, EventGameFinished, ranked)

	log.Printf("Game finished in room %s", room.Code)

	if e.recorder == nil || len(ranked) == 0 {
		return
	}

	now := time.Now()
	rec := &model.GameRecord{
		RoomCode:    room.Code,
		Settings:    room.Settings,
		Questions:   room.Questions,
		FinalScores: ranked,
		Winner:      model.Winner{Name: ranked[0].PlayerName, Score: ranked[0].Score},
		StartedAt:   room.StartedAt,
		FinishedAt:  now,
		DurationSec: int(now.Sub(room.StartedAt).Seconds()),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := e.recorder.Record(ctx, rec); err != nil {
			log.Printf("Failed to record game %s: %v", rec.RoomCode, err)
		}
	}()
}

// lookup resolves a timer callback's target room, discarding callbacks whose
// room is gone or has been replaced by a new room reusing the code.
func (e *Engine) lookup(roomID, code string) *Room {
	room := e.registry.Get(code)
	if room == nil || room.ID != roomID {
		return nil
	}
	return room
}
