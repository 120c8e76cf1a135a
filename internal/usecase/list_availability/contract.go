package list_availability

import (
	"context"
	"time"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/listingservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListByProperty(ctx context.Context, propertyID int64, from, to *time.Time) ([]*domain.Slot, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListActiveBySlots(ctx context.Context, slotIDs []int64) ([]*domain.Reservation, error)
	ExpirePendingDue(ctx context.Context, now time.Time) (int64, error)
	CompleteConfirmedDue(ctx context.Context, now time.Time) (int64, error)
}

// ListingServiceClient интерфейс клиента для ListingService
type ListingServiceClient interface {
	GetProperty(ctx context.Context, propertyID int64) (*listingservice.Property, error)
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
