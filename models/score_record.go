package models

import "time"

// RecordKind отличает одиночный результат от серии из трёх игр.
type RecordKind string

const (
	KindSingle RecordKind = "single"
	KindSeries RecordKind = "series"
)

// SeriesGames is the number of games in a league series.
const SeriesGames = 3

// ScoreRecord is one submission. Total and Average are fixed at write time.
type ScoreRecord struct {
	ID         int        `json:"id"`
	UserID     int        `json:"user_id"`
	Kind       RecordKind `json:"kind"`
	LeagueName string     `json:"league_name,omitempty"`
	BowledOn   time.Time  `json:"date"`
	Games      []int      `json:"games"`
	Total      int        `json:"total"`
	Average    float64    `json:"average"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Game returns the score of game n (1-based) or 0 when the record has no such game.
func (r ScoreRecord) Game(n int) int {
	if n < 1 || n > len(r.Games) {
		return 0
	}
	return r.Games[n-1]
}
