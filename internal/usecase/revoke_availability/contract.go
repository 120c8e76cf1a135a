package revoke_availability

import (
	"context"
	"time"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/notifier"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	Delete(ctx context.Context, id int64) error
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetActiveBySlot(ctx context.Context, slotID int64) (*domain.Reservation, error)
	Cancel(ctx context.Context, id int64, actor domain.CancelActor, reason string) error
}

// CredentialRevoker интерфейс отзыва кода доступа
type CredentialRevoker interface {
	Revoke(ctx context.Context, reservationID int64) error
}

// Notifier интерфейс публикации событий о переходах бронирования
type Notifier interface {
	PublishTransition(ctx context.Context, event notifier.ViewingEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
