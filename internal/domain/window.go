package domain

import "time"

// DateWindow is the five-day date range shown to the customer while
// picking a slot
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// Days lists every date of the window in ascending order
func (w DateWindow) Days() []time.Time {
	days := make([]time.Time, 0, DisplayWindowDays)
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Contains reports whether date falls inside the window, bounds inclusive
func (w DateWindow) Contains(date time.Time) bool {
	return !date.Before(w.Start) && !date.After(w.End)
}

// SelectWindow picks a DisplayWindowDays-long window around the requested
// date without leaving the booking horizon.
//
// The horizon is [horizonStart, horizonStart+BookingWindowDays-1], where
// horizonStart is tomorrow in the branch time zone. The window is centered
// on target; near either edge of the horizon it slides to the boundary and
// stays exactly five days long. The customer always gets adjacent days to
// choose from and never sees past dates or dates beyond the horizon.
func SelectWindow(target, horizonStart time.Time) DateWindow {
	horizonEnd := horizonStart.AddDate(0, 0, BookingWindowDays-1)
	half := DisplayWindowDays / 2

	if target.AddDate(0, 0, -half).Before(horizonStart) {
		return DateWindow{
			Start: horizonStart,
			End:   horizonStart.AddDate(0, 0, DisplayWindowDays-1),
		}
	}

	if !target.AddDate(0, 0, half).Before(horizonEnd) {
		return DateWindow{
			Start: horizonEnd.AddDate(0, 0, -(DisplayWindowDays - 1)),
			End:   horizonEnd,
		}
	}

	return DateWindow{
		Start: target.AddDate(0, 0, -half),
		End:   target.AddDate(0, 0, half),
	}
}
