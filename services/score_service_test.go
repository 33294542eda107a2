package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/bowling-tracker/models"
	"github.com/Dosada05/bowling-tracker/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scoreFixture struct {
	svc      *ScoreService
	scores   *memory.Scores
	users    *memory.Users
	notifier *recordingNotifier
	user     *models.User
}

func newScoreFixture(t *testing.T) *scoreFixture {
	t.Helper()
	users := memory.NewUsers()
	scores := memory.NewScores()
	notifier := &recordingNotifier{}
	user := &models.User{Username: "alice", FirstName: "Alice", LastName: "Lane", Leagues: models.Leagues{{Name: "Tuesday Mixed"}}}
	require.NoError(t, users.Create(context.Background(), user))

	svc := NewScoreService(scores, users, notifier, discardLogger())
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 21, 30, 0, 0, time.UTC) }
	return &scoreFixture{svc: svc, scores: scores, users: users, notifier: notifier, user: user}
}

func TestRecordSeries_FixesTotalAndAverage(t *testing.T) {
	f := newScoreFixture(t)

	rec, err := f.svc.RecordSeries(context.Background(), f.user.ID, SeriesInput{Game1: 7, Game2: 8, Game3: 9, LeagueName: " Tuesday Mixed "})
	require.NoError(t, err)

	assert.Equal(t, models.KindSeries, rec.Kind)
	assert.Equal(t, []int{7, 8, 9}, rec.Games)
	assert.Equal(t, 24, rec.Total)
	assert.Equal(t, 8.0, rec.Average)
	assert.Equal(t, "Tuesday Mixed", rec.LeagueName)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), rec.BowledOn)
	assert.NotZero(t, rec.ID)
}

func TestRecordSeries_RejectsOutOfRangeGames(t *testing.T) {
	f := newScoreFixture(t)

	for _, in := range []SeriesInput{
		{Game1: -1, Game2: 100, Game3: 100},
		{Game1: 100, Game2: 301, Game3: 100},
	} {
		_, err := f.svc.RecordSeries(context.Background(), f.user.ID, in)
		assert.ErrorIs(t, err, ErrInvalidScore)
		assert.True(t, IsValidation(err))
	}
	assert.Zero(t, f.scores.Calls)
	_, notified := f.notifier.last()
	assert.False(t, notified)
}

func TestRecordScore_Single(t *testing.T) {
	f := newScoreFixture(t)
	day := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)

	rec, err := f.svc.RecordScore(context.Background(), f.user.ID, SingleInput{Score: 212, BowledOn: day})
	require.NoError(t, err)
	assert.Equal(t, models.KindSingle, rec.Kind)
	assert.Equal(t, 212, rec.Total)
	assert.Equal(t, 212.0, rec.Average)
	assert.Equal(t, day, rec.BowledOn)
}

func TestRecord_NotifiesFreshStats(t *testing.T) {
	f := newScoreFixture(t)
	ctx := context.Background()

	_, err := f.svc.RecordSeries(ctx, f.user.ID, SeriesInput{Game1: 180, Game2: 200, Game3: 150})
	require.NoError(t, err)

	n, ok := f.notifier.last()
	require.True(t, ok)
	assert.Equal(t, f.user.ID, n.userID)
	assert.Equal(t, 1, n.stats.TotalScores)
	assert.Equal(t, 530, n.stats.SumOfTotals)

	_, err = f.svc.RecordScore(ctx, f.user.ID, SingleInput{Score: 100})
	require.NoError(t, err)
	n, _ = f.notifier.last()
	assert.Equal(t, 2, n.stats.TotalScores)
	assert.Equal(t, 630, n.stats.SumOfTotals)
}

func TestRecord_StoreFailure(t *testing.T) {
	f := newScoreFixture(t)
	f.scores.Err = errors.New("connection refused")

	_, err := f.svc.RecordSeries(context.Background(), f.user.ID, SeriesInput{Game1: 1, Game2: 2, Game3: 3})
	require.Error(t, err)
	assert.False(t, IsValidation(err))
	_, notified := f.notifier.last()
	assert.False(t, notified)
}

func TestOverview(t *testing.T) {
	f := newScoreFixture(t)
	ctx := context.Background()

	_, err := f.svc.RecordSeries(ctx, f.user.ID, SeriesInput{Game1: 180, Game2: 200, Game3: 150, LeagueName: "Tuesday Mixed"})
	require.NoError(t, err)

	ov, err := f.svc.Overview(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", ov.User.Username)
	require.Len(t, ov.Records, 1)
	assert.Equal(t, 530, ov.Records[0].Total)
	assert.Equal(t, 176.67, Round2(ov.Records[0].Average))
	assert.True(t, ov.Stats.HasData)
	require.Len(t, ov.LeagueStats, 1)
	assert.Equal(t, "Tuesday Mixed", ov.LeagueStats[0].LeagueName)

	_, err = f.svc.Overview(ctx, f.user.ID+100)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRecordsAreIsolatedPerUser(t *testing.T) {
	f := newScoreFixture(t)
	ctx := context.Background()
	other := &models.User{Username: "bob"}
	require.NoError(t, f.users.Create(ctx, other))

	_, err := f.svc.RecordScore(ctx, other.ID, SingleInput{Score: 250})
	require.NoError(t, err)

	stats, err := f.svc.Stats(ctx, f.user.ID)
	require.NoError(t, err)
	assert.False(t, stats.HasData)
}
