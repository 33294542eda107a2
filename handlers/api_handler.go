package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Dosada05/bowling-tracker/models"
	"github.com/Dosada05/bowling-tracker/services"
)

// APIHandler serves the JSON score endpoints used by the browser script.
type APIHandler struct {
	scoreService *services.ScoreService
	logger       *slog.Logger
}

func NewAPIHandler(scoreService *services.ScoreService, logger *slog.Logger) *APIHandler {
	return &APIHandler{scoreService: scoreService, logger: logger}
}

// scoreInput is either a series (game1..game3) or a single score.
type scoreInput struct {
	Game1      *int   `json:"game1"`
	Game2      *int   `json:"game2"`
	Game3      *int   `json:"game3"`
	Score      *int   `json:"score"`
	LeagueName string `json:"league_name"`
	Date       string `json:"date"`
}

func (h *APIHandler) CreateScore(w http.ResponseWriter, r *http.Request) {
	var input scoreInput
	if err := readJSON(w, r, &input); err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}

	record, err := h.record(r, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}

	response := jsonResponse{
		"success": true,
		"message": fmt.Sprintf("%s saved", record.Kind),
		"record":  record,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.logger.Error("failed to write response", slog.Any("error", err))
	}
}

func (h *APIHandler) record(r *http.Request, input scoreInput) (*models.ScoreRecord, error) {
	userID := currentUser(r).ID

	var bowledOn time.Time
	if input.Date != "" {
		d, err := services.ParseDate("date", input.Date)
		if err != nil {
			return nil, err
		}
		bowledOn = d
	}

	isSeries := input.Game1 != nil || input.Game2 != nil || input.Game3 != nil
	switch {
	case isSeries && input.Score != nil:
		return nil, fmt.Errorf("%w: send either game1..game3 or score", services.ErrValidationFailed)
	case isSeries:
		for i, g := range []*int{input.Game1, input.Game2, input.Game3} {
			if g == nil {
				return nil, fmt.Errorf("%w: game%d", services.ErrMissingField, i+1)
			}
		}
		return h.scoreService.RecordSeries(r.Context(), userID, services.SeriesInput{
			Game1:      *input.Game1,
			Game2:      *input.Game2,
			Game3:      *input.Game3,
			LeagueName: input.LeagueName,
			BowledOn:   bowledOn,
		})
	case input.Score != nil:
		return h.scoreService.RecordScore(r.Context(), userID, services.SingleInput{
			Score:      *input.Score,
			LeagueName: input.LeagueName,
			BowledOn:   bowledOn,
		})
	default:
		return nil, fmt.Errorf("%w: game1..game3 or score", services.ErrMissingField)
	}
}

func (h *APIHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.scoreService.Stats(r.Context(), currentUser(r).ID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}

	response := jsonResponse{
		"success": true,
		"game1":   services.Round2(stats.Game1Average),
		"game2":   services.Round2(stats.Game2Average),
		"game3":   services.Round2(stats.Game3Average),
		"total":   stats.SumOfTotals,
		"average": services.Round2(stats.GameAverage),
		"stats":   stats,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.logger.Error("failed to write response", slog.Any("error", err))
	}
}
