package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaguesValueAndScan(t *testing.T) {
	v, err := Leagues(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	in := Leagues{{Name: "Tuesday Mixed", Day: "Tuesday"}, {Name: "Sunday Doubles"}}
	v, err = in.Value()
	require.NoError(t, err)

	var out Leagues
	require.NoError(t, out.Scan([]byte(v.(string))))
	assert.Equal(t, in, out)
	assert.Equal(t, []string{"Tuesday Mixed", "Sunday Doubles"}, out.Names())

	require.NoError(t, out.Scan(nil))
	assert.Empty(t, out)
	assert.Error(t, out.Scan(42))
	assert.Error(t, out.Scan("{not json"))
}

func TestScoreRecordGame(t *testing.T) {
	rec := ScoreRecord{Games: []int{180, 200, 150}}
	assert.Equal(t, 180, rec.Game(1))
	assert.Equal(t, 150, rec.Game(3))
	assert.Zero(t, rec.Game(0))
	assert.Zero(t, rec.Game(4))
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	s := Session{ExpiresAt: now}
	assert.True(t, s.Expired(now))
	assert.False(t, s.Expired(now.Add(-time.Second)))
}
