package confirm_viewing

import "errors"

var (
	// ErrViewingNotFound бронирование не найдено
	ErrViewingNotFound = errors.New("viewing not found")
	// ErrAccessDenied подтверждать может только владелец объекта
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidState бронирование не в состоянии pending
	ErrInvalidState = errors.New("viewing is not pending")
	// ErrSlotExpired слот уже начался, подтверждение невозможно
	ErrSlotExpired = errors.New("slot already started")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
