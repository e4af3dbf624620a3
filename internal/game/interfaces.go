package game

import (
	"context"

	"quizmaster/internal/model"
)

// Gateway delivers engine-produced events to connections. The engine never
// touches transport handles directly. Subscribe/Unsubscribe maintain the
// broadcast set for a room, the way socket rooms work.
type Gateway interface {
	SendTo(connID string, event string, payload interface{})
	Broadcast(roomCode string, event string, payload interface{})
	Subscribe(connID, roomCode string)
	Unsubscribe(connID string)
}

// QuestionSource supplies the fixed question sequence for a new room. The
// returned slice must have exactly settings.QuestionCount entries.
type QuestionSource interface {
	Fetch(ctx context.Context, settings model.GameSettings) ([]model.Question, error)
}

// ResultRecorder persists a finished game. Calls are fire-and-forget; a
// failure must never reach players.
type ResultRecorder interface {
	Record(ctx context.Context, rec *model.GameRecord) error
}
