package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Dosada05/bowling-tracker/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	chartLine       = drawing.ColorFromHex("1f6feb")
	chartAccent     = drawing.ColorFromHex("f2a900")
	chartBackground = drawing.ColorFromHex("ffffff")
	chartText       = drawing.ColorFromHex("24292f")
)

type ChartService struct {
	scores *ScoreService
}

func NewChartService(scores *ScoreService) *ChartService {
	return &ChartService{scores: scores}
}

// TotalsChart renders the user's record totals, oldest first, as a PNG.
func (s *ChartService) TotalsChart(ctx context.Context, userID int) ([]byte, error) {
	records, err := s.scores.ListRecords(ctx, userID)
	if err != nil {
		return nil, err
	}
	return RenderTotalsChart(records)
}

// RenderTotalsChart draws one point per record. records are expected newest
// first, as ListByUser returns them. Fewer than two points renders a placeholder.
func RenderTotalsChart(records []models.ScoreRecord) ([]byte, error) {
	if len(records) < 2 {
		return renderPlaceholder("Bowl at least two series to see a chart")
	}

	n := len(records)
	xValues := make([]float64, n)
	yValues := make([]float64, n)
	maxTotal := 0
	for i := range records {
		rec := records[n-1-i]
		xValues[i] = float64(i + 1)
		yValues[i] = float64(rec.Total)
		maxTotal = max(maxTotal, rec.Total)
	}

	graph := chart.Chart{
		Width:      800,
		Height:     400,
		Background: chart.Style{FillColor: chartBackground},
		Canvas:     chart.Style{FillColor: chartBackground},
		XAxis: chart.XAxis{
			Name:           "Entry",
			ValueFormatter: func(v interface{}) string { return fmt.Sprintf("%.0f", v) },
			Style:          chart.Style{FontColor: chartText},
		},
		YAxis: chart.YAxis{
			Name:  "Total",
			Style: chart.Style{FontColor: chartText},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxTotal + 50)},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Totals",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: chartLine,
					StrokeWidth: 2,
					DotWidth:    4,
					DotColor:    chartAccent,
				},
			},
		},
	}

	buffer := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buffer.Bytes(), nil
}

// renderPlaceholder draws msg over an invisible flat series; go-chart refuses
// to render a chart without a series.
func renderPlaceholder(msg string) ([]byte, error) {
	graph := chart.Chart{
		Width:      400,
		Height:     200,
		Background: chart.Style{FillColor: chartBackground},
		Canvas:     chart.Style{FillColor: chartBackground},
		XAxis:      chart.XAxis{Style: chart.Style{Hidden: true}},
		YAxis: chart.YAxis{
			Style: chart.Style{Hidden: true},
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 0},
				Style:   chart.Style{StrokeColor: chartBackground, StrokeWidth: 1},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, _ chart.Style) {
				r.SetFontColor(chartText)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				r.Text(msg, (cb.Width()-tb.Width())/2, (cb.Height()+tb.Height())/2)
			},
		},
	}
	buffer := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render placeholder: %w", err)
	}
	return buffer.Bytes(), nil
}
