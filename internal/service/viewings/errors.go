package viewings

import "errors"

var (
	// ErrViewingNotFound возвращается, когда запись на просмотр не найдена
	ErrViewingNotFound = errors.New("viewings: viewing not found")

	// ErrPropertyNotFound возвращается, когда объект недвижимости не найден
	ErrPropertyNotFound = errors.New("viewings: property not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("viewings: access denied")

	// ErrInvalidState возвращается при недопустимом переходе статуса,
	// в том числе при повторной отмене уже терминальной записи
	ErrInvalidState = errors.New("viewings: invalid reservation state")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("viewings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("viewings: internal error")
)
