package cancel_bookings

import "errors"

var (
	// ErrInvalidPhone возвращается при нераспознанном номере телефона
	ErrInvalidPhone = errors.New("cancel_bookings: invalid phone number")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_bookings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_bookings: internal error")
)
