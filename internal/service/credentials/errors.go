package credentials

import "errors"

var (
	// ErrCredentialNotFound возвращается, когда живого кода доступа нет
	ErrCredentialNotFound = errors.New("credentials: credential not found")

	// ErrReservationNotFound возвращается, когда запись на просмотр не найдена
	ErrReservationNotFound = errors.New("credentials: reservation not found")

	// ErrOutsideWindow возвращается при попытке прочитать код вне окна
	// действия [valid_from, valid_until]
	ErrOutsideWindow = errors.New("credentials: outside validity window")

	// ErrInvalidState возвращается при попытке выпустить код для записи
	// не в статусе confirmed
	ErrInvalidState = errors.New("credentials: reservation is not confirmed")

	// ErrAccessDenied возвращается, когда код запрашивает не владелец записи
	ErrAccessDenied = errors.New("credentials: access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("credentials: internal error")
)
