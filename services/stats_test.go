package services

import (
	"testing"

	"github.com/Dosada05/bowling-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(league string, g1, g2, g3 int) models.ScoreRecord {
	total := g1 + g2 + g3
	return models.ScoreRecord{
		Kind:       models.KindSeries,
		LeagueName: league,
		Games:      []int{g1, g2, g3},
		Total:      total,
		Average:    float64(total) / 3,
	}
}

func single(score int) models.ScoreRecord {
	return models.ScoreRecord{Kind: models.KindSingle, Games: []int{score}, Total: score, Average: float64(score)}
}

func TestComputeStats_Empty(t *testing.T) {
	st := ComputeStats(nil)
	assert.False(t, st.HasData)
	assert.Equal(t, 0, st.TotalScores)
	assert.Zero(t, st.AverageScore)
	assert.Zero(t, st.GameAverage)
	assert.Zero(t, st.HighGame)

	assert.Equal(t, st, ComputeStats([]models.ScoreRecord{}))
}

func TestComputeStats_SingleSeries(t *testing.T) {
	st := ComputeStats([]models.ScoreRecord{series("", 180, 200, 150)})

	require.True(t, st.HasData)
	assert.Equal(t, 1, st.TotalScores)
	assert.Equal(t, 530, st.SumOfTotals)
	assert.Equal(t, 530.0, st.AverageScore)
	assert.Equal(t, 176.67, Round2(st.GameAverage))
	assert.Equal(t, 530, st.HighestScore)
	assert.Equal(t, 530, st.LowestScore)
	assert.Equal(t, 200, st.HighGame)
	assert.Equal(t, 150, st.LowGame)
	assert.Equal(t, 180.0, st.Game1Average)
	assert.Equal(t, 200.0, st.Game2Average)
	assert.Equal(t, 150.0, st.Game3Average)
}

func TestComputeStats_CountAndAverageInvariant(t *testing.T) {
	sets := [][]models.ScoreRecord{
		{series("A", 7, 8, 9)},
		{series("A", 100, 120, 140), series("B", 200, 210, 220)},
		{series("A", 300, 300, 300), single(0), single(150)},
		{single(99), single(101)},
	}

	for _, records := range sets {
		st := ComputeStats(records)
		sum := 0
		for _, r := range records {
			sum += r.Total
		}
		assert.Equal(t, len(records), st.TotalScores)
		assert.Equal(t, sum, st.SumOfTotals)
		assert.InDelta(t, float64(sum)/float64(len(records)), st.AverageScore, 1e-9)
	}
}

func TestComputeStats_PerSlotUsesAllSeries(t *testing.T) {
	records := []models.ScoreRecord{
		series("A", 100, 200, 300),
		series("A", 200, 100, 0),
		single(250),
	}
	st := ComputeStats(records)

	assert.Equal(t, 2, st.SeriesCount)
	assert.Equal(t, 150.0, st.Game1Average)
	assert.Equal(t, 150.0, st.Game2Average)
	assert.Equal(t, 150.0, st.Game3Average)
	assert.Equal(t, 7, st.GamesBowled)
	assert.Equal(t, 300, st.HighGame)
	assert.Equal(t, 0, st.LowGame)
	assert.Equal(t, 600, st.HighestScore)
	assert.Equal(t, 250, st.LowestScore)
}

func TestComputeStats_SinglesOnly(t *testing.T) {
	st := ComputeStats([]models.ScoreRecord{single(120), single(180)})
	assert.Equal(t, 150.0, st.AverageScore)
	assert.Equal(t, 150.0, st.GameAverage)
	assert.Zero(t, st.SeriesCount)
	assert.Zero(t, st.Game1Average)
}

func TestComputeLeagueStats(t *testing.T) {
	records := []models.ScoreRecord{
		series("Wednesday Mixers", 150, 150, 150),
		series("Monday Majors", 200, 200, 200),
		series("Wednesday Mixers", 180, 180, 180),
	}

	got := ComputeLeagueStats(records)
	require.Len(t, got, 2)
	assert.Equal(t, "Monday Majors", got[0].LeagueName)
	assert.Equal(t, 1, got[0].Stats.TotalScores)
	assert.Equal(t, "Wednesday Mixers", got[1].LeagueName)
	assert.Equal(t, 2, got[1].Stats.TotalScores)
	assert.Equal(t, 495.0, got[1].Stats.AverageScore)

	assert.Empty(t, ComputeLeagueStats(nil))
}
