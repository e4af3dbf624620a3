package model

import "time"

// GamePhase tracks where a room is in its lifecycle.
type GamePhase string

const (
	PhaseLobby     GamePhase = "lobby"
	PhaseCountdown GamePhase = "countdown"
	PhaseQuestion  GamePhase = "question"
	PhaseReveal    GamePhase = "reveal"
	PhaseFinished  GamePhase = "finished"
)

// GameSettings is the host-chosen configuration, validated at room creation.
type GameSettings struct {
	MaxPlayers      int    `json:"maxPlayers" bson:"maxPlayers" validate:"min=2,max=10"`
	QuestionCount   int    `json:"questionCount" bson:"questionCount" validate:"min=5,max=25"`
	TimePerQuestion int    `json:"timePerQuestion" bson:"timePerQuestion" validate:"min=15,max=60"`
	Category        string `json:"category" bson:"category"`
	Difficulty      string `json:"difficulty" bson:"difficulty" validate:"omitempty,oneof=easy medium hard mixed"`
}

// RoomSnapshot is the client-facing projection of a room. It is rebuilt on
// every broadcast; it never aliases live engine state.
type RoomSnapshot struct {
	ID                   string       `json:"id"`
	Code                 string       `json:"code"`
	HostID               string       `json:"hostId"`
	Players              []Player     `json:"players"`
	Settings             GameSettings `json:"settings"`
	Started              bool         `json:"isGameStarted"`
	Finished             bool         `json:"isGameFinished"`
	CurrentQuestionIndex int          `json:"currentQuestionIndex"`
	QuestionCount        int          `json:"questionCount"`
	CreatedAt            time.Time    `json:"createdAt"`
}

// GameState is the transient per-question projection sent alongside
// question and resolution events.
type GameState struct {
	CurrentQuestionIndex int            `json:"currentQuestionIndex"`
	TimeRemaining        int            `json:"timeRemaining"`
	IsQuestionActive     bool           `json:"isQuestionActive"`
	Scores               map[string]int `json:"scores"`
	CorrectAnswer        string         `json:"correctAnswer,omitempty"`
	ShowResults          bool           `json:"showResults"`
}
