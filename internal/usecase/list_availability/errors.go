package list_availability

import "errors"

var (
	// ErrPropertyNotFound объект не найден
	ErrPropertyNotFound = errors.New("property not found")
	// ErrInvalidWindow некорректное окно фильтрации (from >= to)
	ErrInvalidWindow = errors.New("invalid time window")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
