package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"quizmaster/internal/cache"
	"quizmaster/internal/model"
	"quizmaster/internal/repository"
)

// ResultService persists finished games and serves the history read side.
// It implements game.ResultRecorder. The repo and cache may both be nil, in
// which case recording degrades to a log line; live games never depend on
// this service succeeding.
type ResultService struct {
	repo  repository.GameResultRepo
	stats cache.StatsCache
}

// NewResultService creates a result service.
func NewResultService(repo repository.GameResultRepo, stats cache.StatsCache) *ResultService {
	return &ResultService{
		repo:  repo,
		stats: stats,
	}
}

// Record appends one finished-game record and updates the winners board.
func (s *ResultService) Record(ctx context.Context, rec *model.GameRecord) error {
	rec.CreatedAt = time.Now()

	if s.repo == nil {
		log.Printf("No result store configured; dropping record for room %s", rec.RoomCode)
		return nil
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return fmt.Errorf("inserting game record: %w", err)
	}

	if s.stats != nil {
		if err := s.stats.RecordWin(ctx, rec.Winner.Name); err != nil {
			log.Printf("Failed to record win for %s: %v", rec.Winner.Name, err)
		}
		if err := s.stats.InvalidateStats(ctx); err != nil {
			log.Printf("Failed to invalidate stats cache: %v", err)
		}
	}

	log.Printf("Game %s saved (%d players, winner %s)",
		rec.RoomCode, len(rec.FinalScores), rec.Winner.Name)
	return nil
}

// ListRecent returns the most recent finished games, newest first.
func (s *ResultService) ListRecent(ctx context.Context, limit, page int) ([]model.GameRecord, error) {
	if s.repo == nil {
		return []model.GameRecord{}, nil
	}
	return s.repo.ListRecent(ctx, limit, page)
}

// GetByCode returns the latest finished game for a room code, or nil.
func (s *ResultService) GetByCode(ctx context.Context, roomCode string) (*model.GameRecord, error) {
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.GetByCode(ctx, roomCode)
}

// GlobalStats returns aggregate totals, served from cache when fresh.
func (s *ResultService) GlobalStats(ctx context.Context) (*model.GlobalStats, error) {
	if s.stats != nil {
		cached, err := s.stats.GetStats(ctx)
		if err != nil {
			log.Printf("Stats cache read failed: %v", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	if s.repo == nil {
		return &model.GlobalStats{}, nil
	}
	stats, err := s.repo.GlobalStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.stats != nil {
		if err := s.stats.SetStats(ctx, stats); err != nil {
			log.Printf("Stats cache write failed: %v", err)
		}
	}
	return stats, nil
}

// TopWinners returns the all-time winners board.
func (s *ResultService) TopWinners(ctx context.Context, limit int) ([]cache.WinnerEntry, error) {
	if s.stats == nil {
		return []cache.WinnerEntry{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.stats.TopWinners(ctx, limit)
}
