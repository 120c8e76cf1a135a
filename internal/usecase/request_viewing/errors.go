package request_viewing

import "errors"

var (
	// ErrSlotNotFound слот не найден
	ErrSlotNotFound = errors.New("slot not found")
	// ErrSlotExpired слот уже начался или закончился
	ErrSlotExpired = errors.New("slot already started")
	// ErrSlotConflict слот уже занят другим посетителем
	ErrSlotConflict = errors.New("slot is already reserved")
	// ErrPropertyNotListed объект снят с публикации
	ErrPropertyNotListed = errors.New("property is not listed")
	// ErrOwnViewing владелец не может бронировать просмотр собственного объекта
	ErrOwnViewing = errors.New("owner cannot reserve a viewing of own property")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
