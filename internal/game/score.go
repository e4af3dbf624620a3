package game

import (
	"math"
	"time"
)

const (
	basePoints = 1000
	maxBonus   = 500
)

// score computes the points for a correct answer: full base plus a speed
// bonus that decays linearly from maxBonus at t=0 to zero at the time limit.
func score(timeLimit int, elapsedSec float64) int {
	if timeLimit <= 0 {
		return basePoints
	}
	bonus := math.Floor(maxBonus * math.Max(0, float64(timeLimit)-elapsedSec) / float64(timeLimit))
	return basePoints + int(bonus)
}

// elapsedSeconds is the server-side answer latency, clamped to at least one
// second. Client-reported durations are never trusted.
func elapsedSeconds(questionStart, answeredAt time.Time) float64 {
	sec := answeredAt.Sub(questionStart).Seconds()
	if sec < 1 {
		return 1
	}
	return sec
}
