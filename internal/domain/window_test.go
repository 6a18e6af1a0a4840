package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSelectWindow(t *testing.T) {
	horizonStart := date(2026, time.March, 2) // tomorrow
	horizonEnd := horizonStart.AddDate(0, 0, BookingWindowDays-1)

	tests := []struct {
		name      string
		target    time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "target in the middle of the horizon",
			target:    date(2026, time.March, 8),
			wantStart: date(2026, time.March, 6),
			wantEnd:   date(2026, time.March, 10),
		},
		{
			name:      "target at horizon start clamps left",
			target:    horizonStart,
			wantStart: horizonStart,
			wantEnd:   horizonStart.AddDate(0, 0, 4),
		},
		{
			name:      "target one day into the horizon still clamps left",
			target:    horizonStart.AddDate(0, 0, 1),
			wantStart: horizonStart,
			wantEnd:   horizonStart.AddDate(0, 0, 4),
		},
		{
			name:      "first unclamped target",
			target:    horizonStart.AddDate(0, 0, 2),
			wantStart: horizonStart,
			wantEnd:   horizonStart.AddDate(0, 0, 4),
		},
		{
			name:      "target at horizon end clamps right",
			target:    horizonEnd,
			wantStart: horizonEnd.AddDate(0, 0, -4),
			wantEnd:   horizonEnd,
		},
		{
			name:      "target two days before horizon end clamps right",
			target:    horizonEnd.AddDate(0, 0, -2),
			wantStart: horizonEnd.AddDate(0, 0, -4),
			wantEnd:   horizonEnd,
		},
		{
			name:      "target before the horizon clamps to the start",
			target:    horizonStart.AddDate(0, 0, -7),
			wantStart: horizonStart,
			wantEnd:   horizonStart.AddDate(0, 0, 4),
		},
		{
			name:      "target past the horizon clamps to the end",
			target:    horizonEnd.AddDate(0, 0, 10),
			wantStart: horizonEnd.AddDate(0, 0, -4),
			wantEnd:   horizonEnd,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := SelectWindow(tt.target, horizonStart)

			assert.Equal(t, tt.wantStart, window.Start)
			assert.Equal(t, tt.wantEnd, window.End)
			assert.Len(t, window.Days(), DisplayWindowDays)
		})
	}
}

func TestDateWindow_Days(t *testing.T) {
	window := DateWindow{
		Start: date(2026, time.March, 6),
		End:   date(2026, time.March, 10),
	}

	days := window.Days()

	assert.Len(t, days, 5)
	assert.Equal(t, date(2026, time.March, 6), days[0])
	assert.Equal(t, date(2026, time.March, 10), days[4])
}

func TestDateWindow_Contains(t *testing.T) {
	window := DateWindow{
		Start: date(2026, time.March, 6),
		End:   date(2026, time.March, 10),
	}

	assert.True(t, window.Contains(date(2026, time.March, 6)))
	assert.True(t, window.Contains(date(2026, time.March, 8)))
	assert.True(t, window.Contains(date(2026, time.March, 10)))
	assert.False(t, window.Contains(date(2026, time.March, 5)))
	assert.False(t, window.Contains(date(2026, time.March, 11)))
}
