package game

import (
	"sync"
	"time"

	"github.com/samber/lo"

	"quizmaster/internal/model"
)

// Room is the live state of one game session. All mutation happens under mu;
// the registry and engine are the only writers. Rooms in different games
// never share a lock.
type Room struct {
	mu sync.Mutex

	ID                   string
	Code                 string
	HostID               string
	Players              []*model.Player
	Settings             model.GameSettings
	Questions            []model.Question
	Phase                model.GamePhase
	Started              bool
	Finished             bool
	CurrentQuestionIndex int
	CreatedAt            time.Time
	StartedAt            time.Time
	QuestionStartTime    time.Time
}

// playerByID returns the member with the given connection ID, or nil.
// Caller holds mu.
func (r *Room) playerByID(id string) *model.Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// allAnswered reports whether every current member has answered the open
// question. Caller holds mu.
func (r *Room) allAnswered() bool {
	for _, p := range r.Players {
		if !p.HasAnswered {
			return false
		}
	}
	return len(r.Players) > 0
}

// currentQuestion returns the question at the current index, or nil when the
// sequence is exhausted. Caller holds mu.
func (r *Room) currentQuestion() *model.Question {
	if r.CurrentQuestionIndex < 0 || r.CurrentQuestionIndex >= len(r.Questions) {
		return nil
	}
	return &r.Questions[r.CurrentQuestionIndex]
}

// scores builds the playerID -> cumulative score map. Caller holds mu.
func (r *Room) scores() map[string]int {
	return lo.Associate(r.Players, func(p *model.Player) (string, int) {
		return p.ID, p.Score
	})
}

// snapshot builds the client-facing projection. Player structs are copied so
// the snapshot never aliases live state. Caller holds mu.
func (r *Room) snapshot() model.RoomSnapshot {
	return model.RoomSnapshot{
		ID:     r.ID,
		Code:   r.Code,
		HostID: r.HostID,
		Players: lo.Map(r.Players, func(p *model.Player, _ int) model.Player {
			return *p
		}),
		Settings:             r.Settings,
		Started:              r.Started,
		Finished:             r.Finished,
		CurrentQuestionIndex: r.CurrentQuestionIndex,
		QuestionCount:        len(r.Questions),
		CreatedAt:            r.CreatedAt,
	}
}

// resetForStart zeroes every member's score and per-question state.
// Caller holds mu.
func (r *Room) resetForStart() {
	for _, p := range r.Players {
		p.Score = 0
		p.IsReady = false
		p.HasAnswered = false
		p.CurrentAnswer = ""
		p.LastAnswerTime = time.Time{}
	}
}

// clearAnswers resets the per-question transient fields before a question
// opens. Caller holds mu.
func (r *Room) clearAnswers() {
	for _, p := range r.Players {
		p.HasAnswered = false
		p.CurrentAnswer = ""
		p.LastAnswerTime = time.Time{}
	}
}
