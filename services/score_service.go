package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/bowling-tracker/metrics"
	"github.com/Dosada05/bowling-tracker/models"
	"github.com/Dosada05/bowling-tracker/repositories"
	"golang.org/x/sync/errgroup"
)

// StatsNotifier receives a user's fresh stats after every write.
type StatsNotifier interface {
	NotifyStats(userID int, stats models.Stats)
}

// SeriesInput is a validated-by-type series submission. A zero BowledOn means today.
type SeriesInput struct {
	Game1      int
	Game2      int
	Game3      int
	LeagueName string
	BowledOn   time.Time
}

type SingleInput struct {
	Score      int
	LeagueName string
	BowledOn   time.Time
}

// Overview is everything the listing pages render for one user.
type Overview struct {
	User        *models.User
	Records     []models.ScoreRecord
	Stats       models.Stats
	LeagueStats []models.LeagueStats
}

type ScoreService struct {
	scores   repositories.ScoreRepository
	users    repositories.UserRepository
	notifier StatsNotifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewScoreService(scores repositories.ScoreRepository, users repositories.UserRepository, notifier StatsNotifier, logger *slog.Logger) *ScoreService {
	return &ScoreService{
		scores:   scores,
		users:    users,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// RecordSeries stores a three-game series with total and average fixed at write time.
func (s *ScoreService) RecordSeries(ctx context.Context, userID int, input SeriesInput) (*models.ScoreRecord, error) {
	games := []int{input.Game1, input.Game2, input.Game3}
	for i, g := range games {
		if err := validateGame(fmt.Sprintf("game%d", i+1), g); err != nil {
			return nil, err
		}
	}

	total := input.Game1 + input.Game2 + input.Game3
	rec := &models.ScoreRecord{
		UserID:     userID,
		Kind:       models.KindSeries,
		LeagueName: strings.TrimSpace(input.LeagueName),
		BowledOn:   s.bowledOn(input.BowledOn),
		Games:      games,
		Total:      total,
		Average:    float64(total) / float64(models.SeriesGames),
	}
	return rec, s.save(ctx, rec)
}

// RecordScore stores a single game.
func (s *ScoreService) RecordScore(ctx context.Context, userID int, input SingleInput) (*models.ScoreRecord, error) {
	if err := validateGame("score", input.Score); err != nil {
		return nil, err
	}

	rec := &models.ScoreRecord{
		UserID:     userID,
		Kind:       models.KindSingle,
		LeagueName: strings.TrimSpace(input.LeagueName),
		BowledOn:   s.bowledOn(input.BowledOn),
		Games:      []int{input.Score},
		Total:      input.Score,
		Average:    float64(input.Score),
	}
	return rec, s.save(ctx, rec)
}

func (s *ScoreService) ListRecords(ctx context.Context, userID int) ([]models.ScoreRecord, error) {
	records, err := s.scores.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records for user %d: %w", userID, err)
	}
	return records, nil
}

// Stats is always recomputed from the full record set.
func (s *ScoreService) Stats(ctx context.Context, userID int) (models.Stats, error) {
	records, err := s.ListRecords(ctx, userID)
	if err != nil {
		return models.Stats{}, err
	}
	return ComputeStats(records), nil
}

// Overview loads the user and all of their records concurrently.
func (s *ScoreService) Overview(ctx context.Context, userID int) (*Overview, error) {
	var (
		user    *models.User
		records []models.ScoreRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.users.GetByID(gctx, userID)
		if err != nil {
			return mapUserError(err)
		}
		user = u
		return nil
	})
	g.Go(func() error {
		r, err := s.ListRecords(gctx, userID)
		if err != nil {
			return err
		}
		records = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return &Overview{
		User:        user,
		Records:     records,
		Stats:       ComputeStats(records),
		LeagueStats: ComputeLeagueStats(records),
	}, nil
}

func (s *ScoreService) save(ctx context.Context, rec *models.ScoreRecord) error {
	if err := s.scores.Create(ctx, rec); err != nil {
		return fmt.Errorf("failed to save %s record: %w", rec.Kind, err)
	}
	metrics.ObserveRecord(string(rec.Kind), rec.Total)

	if s.notifier == nil {
		return nil
	}
	stats, err := s.Stats(ctx, rec.UserID)
	if err != nil {
		// The record is saved; only the live push is skipped.
		s.logger.Warn("failed to compute stats for live update", slog.Int("user_id", rec.UserID), slog.Any("error", err))
		return nil
	}
	s.notifier.NotifyStats(rec.UserID, stats)
	return nil
}

func (s *ScoreService) bowledOn(d time.Time) time.Time {
	if d.IsZero() {
		d = s.now()
	}
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
