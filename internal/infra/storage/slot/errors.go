package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	// (в том числе когда его фактическое состояние не совпало с ожидаемым)
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotTaken возвращается, когда условное обновление не захватило слот:
	// он уже занят другим клиентом или закрыт агентом
	ErrSlotTaken = errors.New("slot.repository: slot is no longer bookable")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
