package domain

// Slot generation defaults
const (
	// DefaultHorizonDays how many days ahead of today the generator fills
	DefaultHorizonDays = 15
	// DefaultStartHour first working hour of an agent's day (inclusive)
	DefaultStartHour = 8
	// DefaultEndHour last working hour of an agent's day (inclusive)
	DefaultEndHour = 15
)

// Booking window defaults
const (
	// BookingWindowDays length of the booking window: tomorrow plus 13 days
	BookingWindowDays = 14
	// DisplayWindowDays size of the date window shown to the customer
	DisplayWindowDays = 5
	// DefaultLookaheadDays availability search window for the funnel
	DefaultLookaheadDays = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// PhonePrefix prefix prepended to a national customer phone number
const PhonePrefix = "+1"
