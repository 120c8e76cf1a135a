package request_viewing

import (
	"context"
	"time"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/listingservice"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/notifier"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/userservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	CreateExclusive(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
}

// CredentialIssuer интерфейс выпуска кода доступа (внутри той же транзакции)
type CredentialIssuer interface {
	Issue(ctx context.Context, reservation *domain.Reservation) (*domain.AccessCredential, error)
}

// ListingServiceClient интерфейс клиента для ListingService
type ListingServiceClient interface {
	GetProperty(ctx context.Context, propertyID int64) (*listingservice.Property, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetProfileWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.Profile, error)
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
