package userservice

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль посетителя не найден
	ErrProfileNotFound = errors.New("userservice client: profile not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("userservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("userservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что UserService недоступен: запись остаётся pending
	// до ручного подтверждения владельцем
	ErrServiceDegraded = errors.New("userservice unavailable: graceful degradation applied")
)
