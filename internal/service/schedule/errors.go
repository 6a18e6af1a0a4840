package schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule: invalid input data")

	// ErrAgentNotFound возвращается, когда агент не найден
	ErrAgentNotFound = errors.New("schedule: agent not found")

	// ErrAccessDenied возвращается, когда агент не управляет расписанием
	ErrAccessDenied = errors.New("schedule: access denied")

	// ErrSlotNotFound возвращается, когда слот не найден или его состояние
	// не совпадает с ожидаемым
	ErrSlotNotFound = errors.New("schedule: slot not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
