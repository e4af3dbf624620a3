package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config is loaded from the environment at startup. Mongo and Redis are
// optional: an empty address disables that backend and the server keeps
// running with live games only.
type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	MongoURI  string `envconfig:"MONGO_URI"`
	MongoDB   string `envconfig:"MONGO_DB" default:"quizmaster"`
	RedisAddr string `envconfig:"REDIS_ADDR"`
	// QUIZ_API_KEY unlocks the quizapi.io question provider
	QuizAPIKey string `envconfig:"QUIZ_API_KEY"`
}

func Load() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
