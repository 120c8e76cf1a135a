package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда запись на просмотр не найдена
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotTaken возвращается, когда на слот уже есть активная запись
	// Это результат условной вставки: из N конкурентных попыток
	// успешной становится ровно одна
	ErrSlotTaken = errors.New("reservation.repository: slot already has an active reservation")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
