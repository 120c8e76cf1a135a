package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
	credentialRepo "github.com/keyvisit/KV-ViewingService/internal/infra/storage/credential"
	reservationRepo "github.com/keyvisit/KV-ViewingService/internal/infra/storage/reservation"
	"github.com/keyvisit/KV-ViewingService/internal/service/credentials/models"
)

// Service сервис выпуска и выдачи кодов доступа
// Единственный путь чтения кода - Reveal: коды не попадают в выборки
// слотов, записей и объектов
type Service struct {
	credentialRepo  CredentialRepository
	reservationRepo ReservationRepository
	policy          domain.AccessWindowPolicy
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса кодов доступа
func NewService(
	credentialRepo CredentialRepository,
	reservationRepo ReservationRepository,
	policy domain.AccessWindowPolicy,
	logger Logger,
) *Service {
	return &Service{
		credentialRepo:  credentialRepo,
		reservationRepo: reservationRepo,
		policy:          policy,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Issue выпускает код доступа для подтверждённой записи
// Вызывается только usecase-ом подтверждения внутри его транзакции:
// переход в confirmed и выпуск кода - единое атомарное действие,
// подтверждённой записи без живого кода не существует
func (s *Service) Issue(ctx context.Context, res *domain.Reservation) (*domain.AccessCredential, error) {
	if res.Status != domain.StatusConfirmed {
		s.logger.Warn("Issue: reservation id=%d is not confirmed (status=%s)", res.ID, res.Status)
		return nil, ErrInvalidState
	}

	code, err := generateAccessCode(domain.AccessCodeLength)
	if err != nil {
		s.logger.Error("Issue: failed to generate code for reservation id=%d: %v", res.ID, err)
		return nil, fmt.Errorf("%w: Issue - generate code: %v", ErrInternal, err)
	}

	validFrom, validUntil := s.policy.WindowFor(&domain.Slot{
		StartAt: res.SlotStartAt,
		EndAt:   res.SlotEndAt,
	})

	cred := &domain.AccessCredential{
		ReservationID: res.ID,
		Code:          code,
		ValidFrom:     validFrom,
		ValidUntil:    validUntil,
	}

	created, err := s.credentialRepo.Create(ctx, cred)
	if err != nil {
		if errors.Is(err, credentialRepo.ErrAlreadyIssued) {
			s.logger.Warn("Issue: credential already issued for reservation id=%d", res.ID)
			return nil, fmt.Errorf("%w: credential already issued", ErrInvalidState)
		}
		s.logger.Error("Issue: repository error for reservation id=%d: %v", res.ID, err)
		return nil, fmt.Errorf("%w: Issue - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Issue: credential issued for reservation id=%d, window=[%s, %s]",
		res.ID, validFrom.Format("2006-01-02 15:04"), validUntil.Format("2006-01-02 15:04"))
	return created, nil
}

// Reveal возвращает код доступа, если запрошенный момент попадает в окно
// действия. Перед проверкой выполняется ленивый sweep, чтобы запись,
// чей слот уже прошёл, не осталась в активном статусе.
// Код читает только посетитель, на которого оформлена запись.
func (s *Service) Reveal(ctx context.Context, req *models.RevealRequest) (*models.RevealResponse, error) {
	s.logger.Info("Reveal: reservation id=%d, user=%d, at=%s",
		req.ReservationID, req.UserID, req.At.Format("2006-01-02 15:04:05"))

	// Ленивый sweep: просроченные pending отменяются, завершившиеся
	// confirmed становятся completed
	s.sweep(ctx)

	res, err := s.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Reveal: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Reveal: repository error for reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: Reveal - repository error: %v", ErrInternal, err)
	}

	if res.VisitorID != req.UserID {
		s.logger.Warn("Reveal: access denied for user=%d to reservation id=%d", req.UserID, req.ReservationID)
		return nil, ErrAccessDenied
	}

	cred, err := s.credentialRepo.GetLiveByReservation(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, credentialRepo.ErrCredentialNotFound) {
			s.logger.Warn("Reveal: no live credential for reservation id=%d", req.ReservationID)
			return nil, ErrCredentialNotFound
		}
		s.logger.Error("Reveal: repository error for reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: Reveal - repository error: %v", ErrInternal, err)
	}

	if !cred.InWindow(req.At) {
		s.logger.Warn("Reveal: outside window for reservation id=%d (window=[%s, %s], at=%s)",
			req.ReservationID,
			cred.ValidFrom.Format("2006-01-02 15:04"),
			cred.ValidUntil.Format("2006-01-02 15:04"),
			req.At.Format("2006-01-02 15:04"))
		return nil, ErrOutsideWindow
	}

	s.logger.Info("Reveal: code revealed for reservation id=%d", req.ReservationID)
	return models.FromDomainCredential(cred), nil
}

// Revoke немедленно отзывает код доступа записи
// Вызывается при отмене записи внутри транзакции отмены: после её
// коммита отозванный код не читается ни в каком окне
func (s *Service) Revoke(ctx context.Context, reservationID int64) error {
	err := s.credentialRepo.Revoke(ctx, reservationID)
	if err != nil {
		// У pending-записи кода ещё нет - это не ошибка отмены
		if errors.Is(err, credentialRepo.ErrCredentialNotFound) {
			s.logger.Info("Revoke: no live credential for reservation id=%d, nothing to revoke", reservationID)
			return nil
		}
		s.logger.Error("Revoke: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Revoke - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Revoke: credential revoked for reservation id=%d", reservationID)
	return nil
}

// sweep выполняет ленивые переходы по времени; ошибки не прерывают чтение
func (s *Service) sweep(ctx context.Context) {
	now := s.timeProvider.Now()

	if n, err := s.reservationRepo.ExpirePendingDue(ctx, now); err != nil {
		s.logger.Error("sweep: failed to expire pending reservations: %v", err)
	} else if n > 0 {
		s.logger.Info("sweep: expired %d pending reservations", n)
	}

	if n, err := s.reservationRepo.CompleteConfirmedDue(ctx, now); err != nil {
		s.logger.Error("sweep: failed to complete confirmed reservations: %v", err)
	} else if n > 0 {
		s.logger.Info("sweep: completed %d confirmed reservations", n)
	}
}
