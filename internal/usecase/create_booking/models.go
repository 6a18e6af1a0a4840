package create_booking

import (
	"time"

	"github.com/avilov/BOH-SchedulingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	AgentID       int64            // ID агента, чей слот бронируется
	Date          time.Time        // Дата слота (без времени)
	Time          types.TimeString // Время слота (например, "10:00")
	CustomerName  string           // Имя клиента
	CustomerPhone string           // Телефон клиента в любом привычном написании
	Topic         string           // Тема встречи
}

// Response модель ответа с созданным бронированием
type Response struct {
	SlotID        int64            // ID забронированного слота
	AgentID       int64            // ID агента
	AgentName     string           // Имя агента
	BranchName    string           // Название филиала
	BranchAddress string           // Адрес филиала
	Date          time.Time        // Дата встречи
	Time          types.TimeString // Время встречи
	State         string           // Состояние слота (booked)
	CustomerName  string           // Имя клиента
	CustomerPhone string           // Нормализованный телефон клиента
	Topic         string           // Тема встречи
	BookedAt      time.Time        // Момент бронирования
}
