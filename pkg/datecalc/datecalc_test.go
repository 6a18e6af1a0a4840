package datecalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOnly(t *testing.T) {
	at := time.Date(2026, time.March, 6, 23, 45, 12, 999, time.FixedZone("X", 3*3600))

	got := DateOnly(at)

	assert.Equal(t, time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC), got)
}

func TestTodayIn(t *testing.T) {
	// 07:30 UTC 6 марта: в Гонолулу (UTC-10) еще 5 марта,
	// в Нью-Йорке (UTC-5) уже 6 марта
	now := time.Date(2026, time.March, 6, 7, 30, 0, 0, time.UTC)

	honolulu, err := TodayIn(now, "Pacific/Honolulu")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), honolulu)

	newYork, err := TodayIn(now, "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC), newYork)
}

func TestTodayIn_UnknownZone(t *testing.T) {
	_, err := TodayIn(time.Now(), "Pacific/Nowhere")
	assert.Error(t, err)
}

func TestTomorrowIn(t *testing.T) {
	now := time.Date(2026, time.March, 6, 7, 30, 0, 0, time.UTC)

	tomorrow, err := TomorrowIn(now, "Pacific/Honolulu")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 6, 0, 0, 0, 0, time.UTC), tomorrow)
}

func TestSameDate(t *testing.T) {
	a := time.Date(2026, time.March, 6, 1, 0, 0, 0, time.UTC)
	b := time.Date(2026, time.March, 6, 23, 59, 0, 0, time.UTC)
	c := time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(a, c))
}
