package model

import "time"

// Winner is the top-ranked player of a finished game.
type Winner struct {
	Name  string `json:"name" bson:"name"`
	Score int    `json:"score" bson:"score"`
}

// GameRecord is the append-only document persisted once per finished game.
// Live game flow never depends on it.
type GameRecord struct {
	RoomCode    string       `json:"roomCode" bson:"roomCode"`
	Settings    GameSettings `json:"settings" bson:"settings"`
	Questions   []Question   `json:"questions" bson:"questions"`
	FinalScores []FinalScore `json:"finalScores" bson:"finalScores"`
	Winner      Winner       `json:"winner" bson:"winner"`
	StartedAt   time.Time    `json:"startedAt" bson:"startedAt"`
	FinishedAt  time.Time    `json:"finishedAt" bson:"finishedAt"`
	DurationSec int          `json:"durationSec" bson:"durationSec"`
	CreatedAt   time.Time    `json:"createdAt" bson:"createdAt"`
}

// GlobalStats aggregates all persisted games.
type GlobalStats struct {
	TotalGames      int     `json:"totalGames" bson:"totalGames"`
	TotalPlayers    int     `json:"totalPlayers" bson:"totalPlayers"`
	AverageScore    float64 `json:"averageScore" bson:"averageScore"`
	AverageDuration float64 `json:"averageDuration" bson:"averageDuration"`
}
