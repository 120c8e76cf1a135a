package credentials

import (
	"context"
	"time"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
)

// CredentialRepository интерфейс репозитория кодов доступа
type CredentialRepository interface {
	Create(ctx context.Context, cred *domain.AccessCredential) (*domain.AccessCredential, error)
	GetLiveByReservation(ctx context.Context, reservationID int64) (*domain.AccessCredential, error)
	Revoke(ctx context.Context, reservationID int64) error
}

// ReservationRepository интерфейс репозитория записей на просмотр
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ExpirePendingDue(ctx context.Context, now time.Time) (int64, error)
	CompleteConfirmedDue(ctx context.Context, now time.Time) (int64, error)
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
