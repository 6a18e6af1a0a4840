package cancel_bookings

import (
	"time"

	"github.com/avilov/BOH-SchedulingService/pkg/types"
)

// Request модель запроса на отмену бронирований клиента
type Request struct {
	CustomerPhone string // Телефон клиента в любом привычном написании
}

// CancelledSlot описание одного отмененного бронирования
type CancelledSlot struct {
	SlotID    int64            // ID слота
	AgentID   int64            // ID агента
	AgentName string           // Имя агента
	Date      time.Time        // Дата встречи
	Time      types.TimeString // Время встречи
}

// Response модель ответа: все отмененные бронирования клиента.
// Пустой список означает, что активных бронирований не было; это
// не ошибка, отмена идемпотентна.
type Response struct {
	CustomerPhone string          // Нормализованный телефон клиента
	Cancelled     []CancelledSlot // Отмененные бронирования
}
