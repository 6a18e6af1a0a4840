package domain

import (
	"sort"
	"time"

	"github.com/avilov/BOH-SchedulingService/pkg/types"
)

// SlotGrid is a time-by-date table of slots. Rows[i][j] holds the slot at
// Times[i] on Days[j], or nil when no such slot exists or it did not pass
// the query filter. Rows are hours, columns are days.
type SlotGrid struct {
	Days  []time.Time
	Times []types.TimeString
	Rows  [][]*Slot
}

// BranchSlotGrid is one branch's grid of open slots for the customer funnel
type BranchSlotGrid struct {
	BranchID      int64
	BranchName    string
	BranchAddress string
	Grid          SlotGrid
}

// AgentSlotView is one agent's schedule with slots in every state
type AgentSlotView struct {
	AgentID       int64
	AgentName     string
	BranchName    string
	BranchAddress string
	Grid          SlotGrid
}

// BuildGrid lays a flat slot list out into a time-by-date table.
// The axes are the sorted sets of encountered times and dates; when window
// is given, its days become the columns wholesale so that empty days stay
// visible.
func BuildGrid(slots []*Slot, window *DateWindow) SlotGrid {
	var days []time.Time
	if window != nil {
		days = window.Days()
	} else {
		seen := make(map[time.Time]struct{})
		for _, s := range slots {
			if _, ok := seen[s.Date]; !ok {
				seen[s.Date] = struct{}{}
				days = append(days, s.Date)
			}
		}
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	}

	seenTimes := make(map[types.TimeString]struct{})
	var times []types.TimeString
	for _, s := range slots {
		if _, ok := seenTimes[s.Time]; !ok {
			seenTimes[s.Time] = struct{}{}
			times = append(times, s.Time)
		}
	}
	sort.Slice(times, func(i, j int) bool { return times[i].IsBefore(times[j]) })

	rows := make([][]*Slot, len(times))
	for i, t := range times {
		row := make([]*Slot, len(days))
		for j, d := range days {
			for _, s := range slots {
				if s.Time == t && SameDay(s.Date, d) {
					row[j] = s
					break
				}
			}
		}
		rows[i] = row
	}

	return SlotGrid{Days: days, Times: times, Rows: rows}
}

// SameDay reports whether a and b fall on the same calendar date
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
