package question

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"quizmaster/internal/model"
)

const (
	openTriviaURL = "https://opentdb.com/api.php"
	quizAPIURL    = "https://quizapi.io/api/v1/questions"
)

// Category is one selectable question category, using Open Trivia DB ids.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Service fetches question sequences from third-party trivia providers,
// degrading to the built-in bank when neither provider can fill the request.
// Fetch never fails a room creation.
type Service struct {
	client     *http.Client
	quizAPIKey string
	triviaURL  string
	quizURL    string
}

// NewService creates a question service. quizAPIKey may be empty, in which
// case the QuizAPI provider is skipped.
func NewService(quizAPIKey string) *Service {
	return &Service{
		client:     &http.Client{Timeout: 8 * time.Second},
		quizAPIKey: quizAPIKey,
		triviaURL:  openTriviaURL,
		quizURL:    quizAPIURL,
	}
}

// Fetch returns exactly settings.QuestionCount questions: Open Trivia DB
// first, QuizAPI second, both combined third, fallback bank last.
func (s *Service) Fetch(ctx context.Context, settings model.GameSettings) ([]model.Question, error) {
	trivia, err := s.fetchOpenTrivia(ctx, settings)
	if err != nil {
		log.Printf("Open Trivia DB unavailable: %v", err)
	}
	if len(trivia) >= settings.QuestionCount {
		return trivia[:settings.QuestionCount], nil
	}

	quizAPI, err := s.fetchQuizAPI(ctx, settings)
	if err != nil {
		log.Printf("QuizAPI unavailable: %v", err)
	}
	if len(quizAPI) >= settings.QuestionCount {
		return quizAPI[:settings.QuestionCount], nil
	}

	combined := append(trivia, quizAPI...)
	if len(combined) >= settings.QuestionCount {
		return combined[:settings.QuestionCount], nil
	}

	log.Printf("Falling back to built-in question bank (%d fetched, %d needed)",
		len(combined), settings.QuestionCount)
	return s.fallback(settings), nil
}

// Categories lists the selectable categories exposed to clients.
func (s *Service) Categories() []Category {
	return []Category{
		{ID: "any", Name: "All categories"},
		{ID: "9", Name: "General Knowledge"},
		{ID: "17", Name: "Science & Nature"},
		{ID: "21", Name: "Sports"},
		{ID: "22", Name: "Geography"},
		{ID: "23", Name: "History"},
		{ID: "24", Name: "Politics"},
		{ID: "25", Name: "Art & Literature"},
		{ID: "26", Name: "Celebrities"},
		{ID: "27", Name: "Animals"},
	}
}

type openTriviaQuestion struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type openTriviaResponse struct {
	ResponseCode int                  `json:"response_code"`
	Results      []openTriviaQuestion `json:"results"`
}

func (s *Service) fetchOpenTrivia(ctx context.Context, settings model.GameSettings) ([]model.Question, error) {
	amount := settings.QuestionCount
	if amount > 50 {
		amount = 50
	}

	params := url.Values{}
	params.Set("amount", fmt.Sprintf("%d", amount))
	params.Set("type", "multiple")
	if settings.Category != "" && settings.Category != "any" {
		params.Set("category", settings.Category)
	}
	if settings.Difficulty != "" && settings.Difficulty != model.DifficultyMixed {
		params.Set("difficulty", settings.Difficulty)
	}

	var resp openTriviaResponse
	if err := s.getJSON(ctx, s.triviaURL+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if resp.ResponseCode != 0 {
		return nil, fmt.Errorf("open trivia db response code %d", resp.ResponseCode)
	}

	questions := make([]model.Question, 0, len(resp.Results))
	for _, q := range resp.Results {
		options := make([]string, 0, len(q.IncorrectAnswers)+1)
		for _, a := range q.IncorrectAnswers {
			options = append(options, html.UnescapeString(a))
		}
		correct := html.UnescapeString(q.CorrectAnswer)
		options = append(options, correct)
		shuffle(options)

		questions = append(questions, model.Question{
			ID:            uuid.NewString(),
			Prompt:        html.UnescapeString(q.Question),
			Options:       options,
			CorrectAnswer: correct,
			Category:      html.UnescapeString(q.Category),
			Difficulty:    q.Difficulty,
			TimeLimit:     settings.TimePerQuestion,
		})
	}
	return questions, nil
}

type quizAPIQuestion struct {
	Question               string            `json:"question"`
	Answers                map[string]string `json:"answers"`
	MultipleCorrectAnswers string            `json:"multiple_correct_answers"`
	CorrectAnswers         map[string]string `json:"correct_answers"`
	Category               string            `json:"category"`
	Difficulty             string            `json:"difficulty"`
}

var quizAPICategories = map[string]string{
	"9":  "general_knowledge",
	"17": "science",
	"21": "sport_and_leisure",
	"22": "geography",
	"23": "history",
	"25": "art_and_literature",
	"27": "animals",
}

func (s *Service) fetchQuizAPI(ctx context.Context, settings model.GameSettings) ([]model.Question, error) {
	if s.quizAPIKey == "" {
		return nil, fmt.Errorf("no api key configured")
	}

	limit := settings.QuestionCount
	if limit > 20 {
		limit = 20
	}

	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))
	if mapped, ok := quizAPICategories[settings.Category]; ok {
		params.Set("category", mapped)
	}
	if settings.Difficulty != "" && settings.Difficulty != model.DifficultyMixed {
		params.Set("difficulty", settings.Difficulty)
	}

	var raw []quizAPIQuestion
	headers := map[string]string{"X-Api-Key": s.quizAPIKey}
	if err := s.getJSON(ctx, s.quizURL+"?"+params.Encode(), headers, &raw); err != nil {
		return nil, err
	}

	questions := make([]model.Question, 0, len(raw))
	for _, q := range raw {
		if q.MultipleCorrectAnswers != "false" {
			continue
		}
		converted, ok := convertQuizAPI(q, settings.TimePerQuestion)
		if !ok {
			continue
		}
		questions = append(questions, converted)
	}
	return questions, nil
}

func convertQuizAPI(q quizAPIQuestion, timeLimit int) (model.Question, bool) {
	var correctKey string
	for key, val := range q.CorrectAnswers {
		if val == "true" {
			correctKey = key[:len(key)-len("_correct")]
			break
		}
	}
	correct := q.Answers[correctKey]
	if correct == "" {
		return model.Question{}, false
	}

	options := make([]string, 0, len(q.Answers))
	for _, a := range q.Answers {
		if a != "" {
			options = append(options, a)
		}
	}
	if len(options) != 4 {
		return model.Question{}, false
	}
	shuffle(options)

	category := q.Category
	if category == "" {
		category = "General"
	}
	difficulty := q.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}

	return model.Question{
		ID:            uuid.NewString(),
		Prompt:        q.Question,
		Options:       options,
		CorrectAnswer: correct,
		Category:      category,
		Difficulty:    difficulty,
		TimeLimit:     timeLimit,
	}, true
}

// fallback fills the request from the built-in bank, repeating questions with
// fresh ids when the filtered bank is smaller than the request.
func (s *Service) fallback(settings model.GameSettings) []model.Question {
	bank := make([]model.Question, 0, len(fallbackBank))
	for _, q := range fallbackBank {
		if settings.Difficulty != "" && settings.Difficulty != model.DifficultyMixed && q.Difficulty != settings.Difficulty {
			continue
		}
		bank = append(bank, q)
	}
	if len(bank) == 0 {
		bank = append(bank, fallbackBank...)
	}
	shuffle(bank)

	selected := make([]model.Question, 0, settings.QuestionCount)
	for len(selected) < settings.QuestionCount {
		for _, q := range bank {
			if len(selected) == settings.QuestionCount {
				break
			}
			q.ID = uuid.NewString()
			q.TimeLimit = settings.TimePerQuestion
			selected = append(selected, q)
		}
	}
	return selected
}

func (s *Service) getJSON(ctx context.Context, rawURL string, headers map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "QuizMaster/1.0")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func shuffle[T any](items []T) {
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}
