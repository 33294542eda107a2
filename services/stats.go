package services

import (
	"math"
	"sort"

	"github.com/Dosada05/bowling-tracker/models"
)

// ComputeStats reduces a record set to its aggregate view.
// An empty set yields zero values with HasData == false.
func ComputeStats(records []models.ScoreRecord) models.Stats {
	var st models.Stats
	if len(records) == 0 {
		return st
	}

	st.HasData = true
	st.TotalScores = len(records)
	st.HighestScore = records[0].Total
	st.LowestScore = records[0].Total
	st.HighGame = math.MinInt
	st.LowGame = math.MaxInt

	var slotSums [models.SeriesGames]int
	for _, rec := range records {
		st.SumOfTotals += rec.Total
		st.HighestScore = max(st.HighestScore, rec.Total)
		st.LowestScore = min(st.LowestScore, rec.Total)

		for _, g := range rec.Games {
			st.GamesBowled++
			st.HighGame = max(st.HighGame, g)
			st.LowGame = min(st.LowGame, g)
		}

		if rec.Kind == models.KindSeries && len(rec.Games) == models.SeriesGames {
			st.SeriesCount++
			for i, g := range rec.Games {
				slotSums[i] += g
			}
		}
	}

	st.AverageScore = float64(st.SumOfTotals) / float64(st.TotalScores)
	if st.GamesBowled > 0 {
		st.GameAverage = float64(st.SumOfTotals) / float64(st.GamesBowled)
	} else {
		st.HighGame, st.LowGame = 0, 0
	}
	if st.SeriesCount > 0 {
		n := float64(st.SeriesCount)
		st.Game1Average = float64(slotSums[0]) / n
		st.Game2Average = float64(slotSums[1]) / n
		st.Game3Average = float64(slotSums[2]) / n
	}
	return st
}

// ComputeLeagueStats groups records by league name, ordered by name.
// Records without a league are grouped under the empty name.
func ComputeLeagueStats(records []models.ScoreRecord) []models.LeagueStats {
	groups := make(map[string][]models.ScoreRecord)
	for _, rec := range records {
		groups[rec.LeagueName] = append(groups[rec.LeagueName], rec)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]models.LeagueStats, 0, len(names))
	for _, name := range names {
		out = append(out, models.LeagueStats{LeagueName: name, Stats: ComputeStats(groups[name])})
	}
	return out
}

// Round2 rounds to two decimals for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
