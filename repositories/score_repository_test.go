package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Dosada05/bowling-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresScoreRepository(db)
	bowled := time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 5, 7, 21, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO score_records")).
		WithArgs(3, "series", "Tuesday Trios", bowled, "{180,200,150}", 530, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, created))

	rec := &models.ScoreRecord{
		UserID:     3,
		Kind:       models.KindSeries,
		LeagueName: "Tuesday Trios",
		BowledOn:   bowled,
		Games:      []int{180, 200, 150},
		Total:      530,
		Average:    530.0 / 3,
	}
	require.NoError(t, repo.Create(context.Background(), rec))
	assert.Equal(t, 11, rec.ID)
	assert.Equal(t, created, rec.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScoreRepository_ListByUser(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresScoreRepository(db)
	day := time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "user_id", "kind", "league_name", "bowled_on", "games", "total", "average", "created_at"}).
		AddRow(2, 3, "series", "Tuesday Trios", day, "{7,8,9}", 24, 8.0, day).
		AddRow(1, 3, "single", "", day.AddDate(0, 0, -7), "{212}", 212, 212.0, day)

	mock.ExpectQuery(regexp.QuoteMeta("FROM score_records")).WithArgs(3).WillReturnRows(rows)

	records, err := repo.ListByUser(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, models.KindSeries, records[0].Kind)
	assert.Equal(t, []int{7, 8, 9}, records[0].Games)
	assert.Equal(t, models.KindSingle, records[1].Kind)
	assert.Equal(t, []int{212}, records[1].Games)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScoreRepository_ListByUserEmpty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPostgresScoreRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM score_records")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "kind", "league_name", "bowled_on", "games", "total", "average", "created_at"}))

	records, err := repo.ListByUser(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}
