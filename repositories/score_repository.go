package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/bowling-tracker/models"
	"github.com/lib/pq"
)

type ScoreRepository interface {
	Create(ctx context.Context, record *models.ScoreRecord) error
	ListByUser(ctx context.Context, userID int) ([]models.ScoreRecord, error)
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

func (r *postgresScoreRepository) Create(ctx context.Context, record *models.ScoreRecord) error {
	query := `
		INSERT INTO score_records (user_id, kind, league_name, bowled_on, games, total, average)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	games := make([]int64, len(record.Games))
	for i, g := range record.Games {
		games[i] = int64(g)
	}

	err := r.db.QueryRowContext(ctx, query,
		record.UserID,
		string(record.Kind),
		record.LeagueName,
		record.BowledOn,
		pq.Array(games),
		record.Total,
		record.Average,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert score record: %w", err)
	}
	return nil
}

// ListByUser возвращает все записи пользователя, новые даты первыми.
func (r *postgresScoreRepository) ListByUser(ctx context.Context, userID int) ([]models.ScoreRecord, error) {
	query := `
		SELECT id, user_id, kind, league_name, bowled_on, games, total, average, created_at
		FROM score_records
		WHERE user_id = $1
		ORDER BY bowled_on DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query score records: %w", err)
	}
	defer rows.Close()

	records := make([]models.ScoreRecord, 0)
	for rows.Next() {
		var (
			rec   models.ScoreRecord
			kind  string
			games pq.Int64Array
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&kind,
			&rec.LeagueName,
			&rec.BowledOn,
			&games,
			&rec.Total,
			&rec.Average,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan score record: %w", err)
		}
		rec.Kind = models.RecordKind(kind)
		rec.Games = make([]int, len(games))
		for i, g := range games {
			rec.Games[i] = int(g)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
