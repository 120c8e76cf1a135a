package viewings

import (
	"context"
	"time"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/listingservice"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/notifier"
)

// ReservationRepository интерфейс репозитория записей на просмотр
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByVisitor(ctx context.Context, visitorID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetByPropertyWithFilter(ctx context.Context, filter domain.PropertyViewingsFilter) ([]*domain.Reservation, error)
	Cancel(ctx context.Context, id int64, actor domain.CancelActor, reason string) error
	ExpirePendingDue(ctx context.Context, now time.Time) (int64, error)
	CompleteConfirmedDue(ctx context.Context, now time.Time) (int64, error)
}

// CredentialRevoker отзыв кода доступа при отмене записи
// Реализуется сервисом credentials; работает в той же транзакции
type CredentialRevoker interface {
	Revoke(ctx context.Context, reservationID int64) error
}

// ListingServiceClient интерфейс клиента для ListingService
type ListingServiceClient interface {
	GetProperty(ctx context.Context, propertyID int64) (*listingservice.Property, error)
}

// Notifier интерфейс публикации событий переходов
type Notifier interface {
	PublishTransition(ctx context.Context, event notifier.ViewingEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
