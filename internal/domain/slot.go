package domain

import (
	"time"

	"github.com/avilov/BOH-SchedulingService/pkg/types"
)

// SlotState represents the booking state of a slot
type SlotState string

const (
	// StateBookable slot is open for customer booking, customer fields are null
	StateBookable SlotState = "bookable"
	// StateHeld agent manually blocked the slot from customer booking
	StateHeld SlotState = "held"
	// StateBooked a customer occupies the slot, contact fields are populated
	StateBooked SlotState = "booked"
)

// Slot represents one bookable unit of agent time: a date plus a one-hour
// starting time, owned by exactly one agent. The (agent, date, time) tuple
// is unique.
type Slot struct {
	ID      int64
	AgentID int64
	Date    time.Time // calendar date, midnight UTC
	Time    types.TimeString
	State   SlotState

	// Customer fields, populated only in state booked
	BookedAt      *time.Time
	Topic         *string
	CustomerName  *string
	CustomerPhone *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable returns true if the slot is open for customer booking
func (s *Slot) IsBookable() bool {
	return s.State == StateBookable
}

// IsBooked returns true if a customer occupies the slot
func (s *Slot) IsBooked() bool {
	return s.State == StateBooked
}

// IsHeld returns true if the agent blocked the slot
func (s *Slot) IsHeld() bool {
	return s.State == StateHeld
}

// IsFuture returns true if the slot date is strictly after the given day
func (s *Slot) IsFuture(today time.Time) bool {
	return s.Date.After(today)
}

// ValidState reports whether state is one of the known slot states
func ValidState(state SlotState) bool {
	switch state {
	case StateBookable, StateHeld, StateBooked:
		return true
	default:
		return false
	}
}

// SlotFilter narrows slot queries.
// All fields are optional; a nil field does not constrain the result.
type SlotFilter struct {
	AgentID     *int64
	BranchID    *int64
	MarketName  *string
	ServiceName *string
	State       *SlotState
	DateFrom    *time.Time // inclusive
	DateTo      *time.Time // inclusive
	DateAfter   *time.Time // strictly after, for future-only queries
}
