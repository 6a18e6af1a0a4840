package identity

import "errors"

var (
	// ErrAgentNotFound возвращается, когда агент не найден в справочнике
	ErrAgentNotFound = errors.New("identity: agent not found")

	// ErrInternal возвращается при ошибках подготовки или выполнения запроса
	ErrInternal = errors.New("identity: internal error")

	// ErrInvalidResponse возвращается при неожиданном ответе справочника
	ErrInvalidResponse = errors.New("identity: invalid response")
)
