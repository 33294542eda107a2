package models

// Stats is the aggregate view over a user's records. It is never stored.
type Stats struct {
	HasData      bool    `json:"has_data"`
	TotalScores  int     `json:"total_scores"`
	SumOfTotals  int     `json:"sum_of_totals"`
	AverageScore float64 `json:"average_score"`
	GamesBowled  int     `json:"games_bowled"`
	GameAverage  float64 `json:"game_average"`
	HighestScore int     `json:"highest_score"`
	LowestScore  int     `json:"lowest_score"`
	HighGame     int     `json:"high_game"`
	LowGame      int     `json:"low_game"`
	SeriesCount  int     `json:"series_count"`
	Game1Average float64 `json:"game1_average"`
	Game2Average float64 `json:"game2_average"`
	Game3Average float64 `json:"game3_average"`
}

type LeagueStats struct {
	LeagueName string `json:"league_name"`
	Stats      Stats  `json:"stats"`
}
