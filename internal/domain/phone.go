package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidPhone is returned when a phone number cannot be normalized.
var ErrInvalidPhone = errors.New("invalid phone number")

// NormalizePhone converts a customer phone number to the canonical
// "+1XXXXXXXXXX" form. Customers type numbers with dashes, parentheses,
// spaces or a country code; bookings are matched by phone, so every
// variant has to collapse to a single spelling.
func NormalizePhone(raw string) (string, error) {
	digits := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= '0' && c <= '9':
			digits = append(digits, c)
		case c == '+' || c == ' ' || c == '-' || c == '(' || c == ')' || c == '.':
			// separators and the plus sign carry no information
		default:
			return "", fmt.Errorf("%w: unexpected character %q", ErrInvalidPhone, c)
		}
	}

	switch {
	case len(digits) == 10:
		return PhonePrefix + string(digits), nil
	case len(digits) == 11 && digits[0] == '1':
		return "+" + string(digits), nil
	default:
		return "", fmt.Errorf("%w: expected 10 digits, got %d", ErrInvalidPhone, len(digits))
	}
}
