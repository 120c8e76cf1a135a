package publish_availability

import "errors"

var (
	// ErrPropertyNotFound объект не найден
	ErrPropertyNotFound = errors.New("property not found")
	// ErrPropertyNotListed объект снят с публикации
	ErrPropertyNotListed = errors.New("property is not listed")
	// ErrAccessDenied попытка опубликовать слоты чужого объекта
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidInterval некорректный интервал
	ErrInvalidInterval = errors.New("invalid interval")
	// ErrOverlapConflict интервал пересекается с другим (в запросе или с существующим слотом)
	ErrOverlapConflict = errors.New("interval overlaps another slot")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
