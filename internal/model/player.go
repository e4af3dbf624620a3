package model

import "time"

// Player represents a participant in a room. The identity is the transport
// connection ID, so it is stable for the lifetime of the socket.
type Player struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	IsHost   bool      `json:"isHost"`
	Score    int       `json:"score"`
	Avatar   string    `json:"avatar"`
	IsReady  bool      `json:"isReady"`
	JoinedAt time.Time `json:"joinedAt"`

	// Per-question transient state. The raw answer and its timestamp stay
	// server-side; only correctness and points ever reach other clients.
	HasAnswered    bool      `json:"hasAnswered"`
	CurrentAnswer  string    `json:"-"`
	LastAnswerTime time.Time `json:"-"`
}

// FinalScore is one entry of the ranked result list broadcast on game end.
type FinalScore struct {
	PlayerID   string `json:"playerId" bson:"playerId"`
	PlayerName string `json:"playerName" bson:"playerName"`
	Score      int    `json:"score" bson:"score"`
	Rank       int    `json:"rank" bson:"rank"`
}
