package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AgentID <= 0 {
		return fmt.Errorf("%w: agentID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Topic) == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}

	return nil
}

// normalizePhone приводит телефон к каноническому виду "+1XXXXXXXXXX"
func normalizePhone(raw string) (string, error) {
	phone, err := domain.NormalizePhone(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPhone, err)
	}
	return phone, nil
}

// validateDate проверяет, что дата попадает в горизонт бронирования
// [horizonStart, horizonStart+BookingWindowDays-1]. Бронировать на сегодня
// и задним числом нельзя.
func validateDate(date, horizonStart time.Time) error {
	if date.Before(horizonStart) {
		return fmt.Errorf("%w: bookings start from %s", ErrInvalidDate, horizonStart.Format(domain.DateFormat))
	}

	horizonEnd := horizonStart.AddDate(0, 0, domain.BookingWindowDays-1)
	if date.After(horizonEnd) {
		return fmt.Errorf("%w: can only book through %s", ErrDateTooFarInFuture, horizonEnd.Format(domain.DateFormat))
	}

	return nil
}
