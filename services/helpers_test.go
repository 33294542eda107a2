package services

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/bowling-tracker/models"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []notification
}

type notification struct {
	userID int
	stats  models.Stats
}

func (n *recordingNotifier) NotifyStats(userID int, stats models.Stats) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notification{userID: userID, stats: stats})
}

func (n *recordingNotifier) last() (notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.calls) == 0 {
		return notification{}, false
	}
	return n.calls[len(n.calls)-1], true
}

// testRecords returns a series and an older single game, newest first.
func testRecords() []models.ScoreRecord {
	s := series("Tuesday Mixed", 180, 200, 150)
	s.BowledOn = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	g := single(212)
	g.BowledOn = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []models.ScoreRecord{s, g}
}
