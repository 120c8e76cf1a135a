package notifier

import "errors"

var (
	// ErrConnect возвращается при невозможности установить соединение с брокером
	ErrConnect = errors.New("notifier: failed to connect to broker")

	// ErrPublish возвращается при ошибке публикации события
	// Вызывающая сторона логирует её и продолжает: уведомления не должны
	// откатывать переходы статусов
	ErrPublish = errors.New("notifier: failed to publish event")
)
