package create_booking

import "errors"

var (
	// ErrAgentNotFound возвращается, когда агент не найден
	ErrAgentNotFound = errors.New("create_booking: agent not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата за горизонтом бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrSlotNotAvailable возвращается, когда слот не существует или уже занят
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrCustomerHasActiveBooking возвращается, когда у клиента уже есть
	// активное бронирование
	ErrCustomerHasActiveBooking = errors.New("create_booking: customer already has an active booking")

	// ErrInvalidPhone возвращается при нераспознанном номере телефона
	ErrInvalidPhone = errors.New("create_booking: invalid phone number")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
