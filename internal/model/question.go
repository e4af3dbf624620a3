package model

// Difficulty tags understood by the question providers.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyMixed  = "mixed"
)

// Question is immutable once placed in a room's question sequence.
type Question struct {
	ID            string   `json:"id" bson:"id"`
	Prompt        string   `json:"question" bson:"question"`
	Options       []string `json:"options" bson:"options"`
	CorrectAnswer string   `json:"correctAnswer,omitempty" bson:"correctAnswer"`
	Category      string   `json:"category" bson:"category"`
	Difficulty    string   `json:"difficulty" bson:"difficulty"`
	TimeLimit     int      `json:"timeLimit" bson:"timeLimit"`
}

// Public returns a copy safe to broadcast while the question is open.
func (q Question) Public() Question {
	q.CorrectAnswer = ""
	return q
}

// QuestionResult is the per-player outcome computed at question resolution.
type QuestionResult struct {
	PlayerID     string  `json:"playerId"`
	PlayerName   string  `json:"playerName"`
	Answer       string  `json:"answer"`
	IsCorrect    bool    `json:"isCorrect"`
	TimeToAnswer float64 `json:"timeToAnswer"`
	PointsEarned int     `json:"pointsEarned"`
}
