package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quizmaster/internal/model"
)

type gatewayEvent struct {
	target  string
	event   string
	payload interface{}
}

// fakeGateway records every send so tests can assert on event order.
type fakeGateway struct {
	mu     sync.Mutex
	events []gatewayEvent
}

func (g *fakeGateway) SendTo(connID, event string, payload interface{}) {
	g.record(connID, event, payload)
}

func (g *fakeGateway) Broadcast(roomCode, event string, payload interface{}) {
	g.record(roomCode, event, payload)
}

func (g *fakeGateway) Subscribe(connID, roomCode string) {}
func (g *fakeGateway) Unsubscribe(connID string)         {}

func (g *fakeGateway) record(target, event string, payload interface{}) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.events = append(g.events, gatewayEvent{target: target, event: event, payload: payload})
}

func (g *fakeGateway) all() []gatewayEvent {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]gatewayEvent, len(g.events))
	copy(out, g.events)
	return out
}

func (g *fakeGateway) ofType(event string) []gatewayEvent {
	var out []gatewayEvent
	for _, e := range g.all() {
		if e.event == event {
			out = append(out, e)
		}
	}
	return out
}

func (g *fakeGateway) count(event string) int {
	return len(g.ofType(event))
}

type fakeRecorder struct {
	records chan *model.GameRecord
}

func (r *fakeRecorder) Record(ctx context.Context, rec *model.GameRecord) error {
	r.records <- rec
	return nil
}

func newTestEngine(questions []model.Question) (*Engine, *fakeGateway, *fakeRecorder) {
	gateway := &fakeGateway{}
	recorder := &fakeRecorder{records: make(chan *model.GameRecord, 1)}
	registry := NewRegistry(&stubSource{questions: questions})
	clock := newTestClock()
	return NewEngine(registry, clock, gateway, recorder), gateway, recorder
}

// twoPlayerRoom creates a room with Alice hosting and Bob joined, returning
// the room code.
func twoPlayerRoom(t *testing.T, e *Engine) string {
	t.Helper()
	req := require.New(t)

	req.NoError(e.CreateRoom(context.Background(), "alice", "Alice", testSettings()))
	room := e.registry.Resolve("alice")
	req.NotNil(room)
	req.NoError(e.JoinRoom("bob", room.Code, "Bob"))
	return room.Code
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, time.Millisecond, msg)
}

func TestEngine_Create_Sends_Room_Joined(t *testing.T) {
	req := require.New(t)
	engine, gateway, _ := newTestEngine(makeQuestions(2, 20))

	req.NoError(engine.CreateRoom(context.Background(), "alice", "Alice", testSettings()))

	joined := gateway.ofType(EventRoomJoined)
	req.Len(joined, 1)
	req.Equal("alice", joined[0].target)

	payload := joined[0].payload.(roomAndPlayer)
	req.Equal("Alice", payload.Player.Name)
	req.True(payload.Player.IsHost)
	req.Regexp(codePattern, payload.Room.Code)
}

func TestEngine_Join_Broadcasts_Before_Private_Ack(t *testing.T) {
	req := require.New(t)
	engine, gateway, _ := newTestEngine(makeQuestions(2, 20))

	twoPlayerRoom(t, engine)

	req.Equal(1, gateway.count(EventRoomUpdated))
	req.Equal(1, gateway.count(EventPlayerJoined))
	req.Equal(2, gateway.count(EventRoomJoined))

	// Bob's private ack carries the snapshot that already includes him
	bobJoined := gateway.ofType(EventRoomJoined)[1]
	req.Equal("bob", bobJoined.target)
	req.Len(bobJoined.payload.(roomAndPlayer).Room.Players, 2)
}

func TestEngine_StartGame_Authorization(t *testing.T) {
	req := require.New(t)
	engine, _, _ := newTestEngine(makeQuestions(2, 20))

	req.ErrorIs(engine.StartGame("ghost"), ErrRoomNotFound)

	code := twoPlayerRoom(t, engine)
	req.ErrorIs(engine.StartGame("bob"), ErrNotHost)

	req.NoError(engine.StartGame("alice"))
	req.ErrorIs(engine.StartGame("alice"), ErrGameAlreadyStarted)

	room := engine.registry.Get(code)
	room.mu.Lock()
	req.True(room.Started)
	req.Equal(model.PhaseCountdown, room.Phase)
	room.mu.Unlock()
}

func TestEngine_StartGame_Needs_Two_Players(t *testing.T) {
	req := require.New(t)
	engine, _, _ := newTestEngine(makeQuestions(2, 20))

	req.NoError(engine.CreateRoom(context.Background(), "alice", "Alice", testSettings()))
	req.ErrorIs(engine.StartGame("alice"), ErrInsufficientPlayers)
}

func TestEngine_Start_Resets_Scores(t *testing.T) {
	req := require.New(t)
	engine, _, _ := newTestEngine(makeQuestions(2, 20))

	code := twoPlayerRoom(t, engine)
	room := engine.registry.Get(code)

	room.mu.Lock()
	room.Players[0].Score = 999
	room.Players[1].IsReady = true
	room.mu.Unlock()

	req.NoError(engine.StartGame("alice"))

	room.mu.Lock()
	defer room.mu.Unlock()
	req.Zero(room.Players[0].Score)
	req.False(room.Players[1].IsReady)
}

func TestEngine_Full_Game_Ranks_And_Records(t *testing.T) {
	req := require.New(t)
	engine, gateway, recorder := newTestEngine(makeQuestions(2, 20))

	twoPlayerRoom(t, engine)
	req.NoError(engine.StartGame("alice"))
	req.Equal(1, gateway.count(EventGameStarted))

	// Question 1 opens after the start countdown
	waitFor(t, func() bool { return gateway.count(EventGameQuestion) >= 1 }, "question 1 never opened")

	engine.SubmitAnswer("alice", "A") // correct
	engine.SubmitAnswer("bob", "B")   // wrong, completes all-answered

	req.Equal(1, gateway.count(EventQuestionEnd))

	// Question 2 opens after the reveal delay
	waitFor(t, func() bool { return gateway.count(EventGameQuestion) >= 2 }, "question 2 never opened")

	engine.SubmitAnswer("alice", "A")
	engine.SubmitAnswer("bob", "A")

	waitFor(t, func() bool { return gateway.count(EventGameFinished) >= 1 }, "game never finished")

	ranked := gateway.ofType(EventGameFinished)[0].payload.([]model.FinalScore)
	req.Len(ranked, 2)
	req.Equal("Alice", ranked[0].PlayerName)
	req.Equal(1, ranked[0].Rank)
	req.Equal("Bob", ranked[1].PlayerName)
	req.Equal(2, ranked[1].Rank)
	req.Greater(ranked[0].Score, ranked[1].Score)
	req.Greater(ranked[1].Score, 0) // Bob got question 2 right

	select {
	case rec := <-recorder.records:
		req.Equal("Alice", rec.Winner.Name)
		req.Len(rec.FinalScores, 2)
		req.Len(rec.Questions, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("game record never persisted")
	}
}

func TestEngine_Correct_Answer_Gets_Private_Ack(t *testing.T) {
	req := require.New(t)
	engine, gateway, _ := newTestEngine(makeQuestions(2, 20))

	twoPlayerRoom(t, engine)
	req.NoError(engine.StartGame("alice"))
	waitFor(t, func() bool { return gateway.count(EventGameQuestion) >= 1 }, "question never opened")

	engine.SubmitAnswer("alice", "A")
	engine.SubmitAnswer("alice", "C") // duplicate, ignored

	acks := gateway.ofType(EventAnswerSubmitted)
	req.Len(acks, 1)
	req.Equal("alice", acks[0].target)
	req.True(acks[0].payload.(answerAck).IsCorrect)
}

func TestEngine_Answer_Outside_Question_Phase_Ignored(t *testing.T) {
	req := require.New(t)
	engine, gateway, _ := newTestEngine(makeQuestions(2, 20))

	twoPlayerRoom(t, engine)

	// Lobby: no question is open yet
	engine.SubmitAnswer("alice", "A")
	req.Zero(gateway.count(EventAnswerSubmitted))
}

func TestEngine_Timeout_Resolves_Unanswered_Question(t *testing.T) {
	req := require.New(t)
	questions := makeQuestions(1, 15)
	engine, gateway, _ := newTestEngine(questions)

	settings := testSettings()
	settings.TimePerQuestion = 15

	req.NoError(engine.CreateRoom(context.Background(), "alice", "Alice", settings))
	room := engine.registry.Resolve("alice")
	req.NoError(engine.JoinRoom("bob", room.Code, "Bob"))
	req.NoError(engine.StartGame("alice"))

	waitFor(t, func() bool { return gateway.count(EventQuestionEnd) >= 1 }, "question never timed out")

	end := gateway.ofType(EventQuestionEnd)[0].payload.(questionEndPayload)
	req.Equal("A", end.CorrectAnswer)
	req.Len(end.Results, 2)
	for _, res := range end.Results {
		req.False(res.IsCorrect)
		req.Zero(res.PointsEarned)
	}
}

func TestEngine_Ticks_Precede_Question_End(t *testing.T) {
	req := require.New(t)
	engine, gateway, _ := newTestEngine(makeQuestions(1, 15))

	settings := testSettings()
	settings.TimePerQuestion = 15

	req.NoError(engine.CreateRoom(context.Background(), "alice", "Alice", settings))
	room := engine.registry.Resolve("alice")
	req.NoError(engine.JoinRoom("bob", room.Code, "Bob"))
	req.NoError(engine.StartGame("alice"))

	waitFor(t, func() bool { return gateway.count(EventQuestionEnd) >= 1 }, "question never timed out")

	// Every timer update for the question lands before its resolution event,
	// and the remaining values strictly decrease.
	endSeen := false
	prev := settings.TimePerQuestion
	for _, e := range gateway.all() {
		switch e.event {
		case EventQuestionEnd:
			endSeen = true
		case EventTimerUpdate:
			req.False(endSeen, "timer update after question end")
			remaining := e.payload.(int)
			req.Less(remaining, prev)
			prev = remaining
		}
	}
	req.True(endSeen)
}

func TestEngine_Leave_Promotes_Host_And_Notifies(t *testing.T) {
	req := require.New(t)
	engine, gateway, _ := newTestEngine(makeQuestions(2, 20))

	code := twoPlayerRoom(t, engine)
	engine.LeaveRoom("alice")

	left := gateway.ofType(EventPlayerLeft)
	req.Len(left, 1)
	req.Equal("alice", left[0].payload.(playerLeftPayload).PlayerID)

	room := engine.registry.Get(code)
	req.NotNil(room)
	room.mu.Lock()
	defer room.mu.Unlock()
	req.Equal("bob", room.HostID)
}

func TestEngine_Last_Leave_Deletes_Room(t *testing.T) {
	req := require.New(t)
	engine, _, _ := newTestEngine(makeQuestions(2, 20))

	code := twoPlayerRoom(t, engine)
	engine.LeaveRoom("alice")
	engine.HandleDisconnect("bob")

	req.Nil(engine.registry.Get(code))
}

func TestEngine_Disconnect_Mid_Question_Completes_All_Answered(t *testing.T) {
	req := require.New(t)
	engine, gateway, _ := newTestEngine(makeQuestions(2, 20))

	twoPlayerRoom(t, engine)
	req.NoError(engine.StartGame("alice"))
	waitFor(t, func() bool { return gateway.count(EventGameQuestion) >= 1 }, "question never opened")

	engine.SubmitAnswer("alice", "A")
	req.Zero(gateway.count(EventQuestionEnd))

	// Bob drops without answering; Alice's answer now covers everyone
	engine.HandleDisconnect("bob")
	req.Equal(1, gateway.count(EventQuestionEnd))

	end := gateway.ofType(EventQuestionEnd)[0].payload.(questionEndPayload)
	req.Len(end.Results, 1)
	req.True(end.Results[0].IsCorrect)
}

func TestEngine_SetReady_Broadcasts_Snapshot(t *testing.T) {
	req := require.New(t)
	engine, gateway, _ := newTestEngine(makeQuestions(2, 20))

	code := twoPlayerRoom(t, engine)
	before := gateway.count(EventRoomUpdated)

	engine.SetReady("bob")

	req.Equal(before+1, gateway.count(EventRoomUpdated))
	room := engine.registry.Get(code)
	room.mu.Lock()
	defer room.mu.Unlock()
	req.True(room.playerByID("bob").IsReady)
}
