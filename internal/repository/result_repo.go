package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quizmaster/internal/model"
)

// GameResultRepo stores one append-only record per finished game.
type GameResultRepo interface {
	Insert(ctx context.Context, rec *model.GameRecord) error
	ListRecent(ctx context.Context, limit, page int) ([]model.GameRecord, error)
	GetByCode(ctx context.Context, roomCode string) (*model.GameRecord, error)
	GlobalStats(ctx context.Context) (*model.GlobalStats, error)
}

type gameResultRepo struct {
	collection *mongo.Collection
}

// NewGameResultRepo creates a Mongo-backed game result repository.
func NewGameResultRepo(db *mongo.Database) GameResultRepo {
	return &gameResultRepo{
		collection: db.Collection("game_results"),
	}
}

func (r *gameResultRepo) Insert(ctx context.Context, rec *model.GameRecord) error {
	_, err := r.collection.InsertOne(ctx, rec)
	return err
}

func (r *gameResultRepo) ListRecent(ctx context.Context, limit, page int) ([]model.GameRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if page < 0 {
		page = 0
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(page * limit))

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []model.GameRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *gameResultRepo) GetByCode(ctx context.Context, roomCode string) (*model.GameRecord, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var rec model.GameRecord
	err := r.collection.FindOne(ctx, bson.D{{Key: "roomCode", Value: roomCode}}, opts).Decode(&rec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *gameResultRepo) GlobalStats(ctx context.Context) (*model.GlobalStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalGames", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "totalPlayers", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$size", Value: "$finalScores"}}}}},
			{Key: "averageScore", Value: bson.D{{Key: "$avg", Value: "$winner.score"}}},
			{Key: "averageDuration", Value: bson.D{{Key: "$avg", Value: "$durationSec"}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []model.GlobalStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &model.GlobalStats{}, nil
	}
	return &results[0], nil
}
