package revoke_availability

import "errors"

var (
	// ErrSlotNotFound слот не найден
	ErrSlotNotFound = errors.New("slot not found")
	// ErrAccessDenied отзывать слот может только его владелец
	ErrAccessDenied = errors.New("access denied")
	// ErrHasActiveReservation на слоте есть активное бронирование и force не задан
	ErrHasActiveReservation = errors.New("slot has an active reservation")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
