package get_market_slots

import (
	"time"

	"github.com/avilov/BOH-SchedulingService/internal/domain"
)

// Request модель запроса свободных слотов рынка
type Request struct {
	ServiceName string    // Название услуги
	MarketName  string    // Название рынка
	Date        time.Time // Желаемая дата встречи
}

// Response модель ответа: пятидневное окно дат и сетка свободных слотов
// по каждому филиалу рынка, предлагающему услугу
type Response struct {
	ServiceName string                  // Название услуги
	MarketName  string                  // Название рынка
	Days        []time.Time             // Даты окна по возрастанию
	Branches    []domain.BranchSlotGrid // Сетки филиалов, отсортированы по ID
}
