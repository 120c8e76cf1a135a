package viewings

import (
	"context"
	"errors"
	"fmt"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
	reservationRepo "github.com/keyvisit/KV-ViewingService/internal/infra/storage/reservation"
	listingClient "github.com/keyvisit/KV-ViewingService/internal/integrations/listingservice"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/notifier"
	"github.com/keyvisit/KV-ViewingService/internal/service/viewings/models"
)

// Service сервис для работы с записями на просмотр: чтение, отмена,
// ленивые переходы по времени
type Service struct {
	reservationRepo   ReservationRepository
	credentialRevoker CredentialRevoker
	listingClient     ListingServiceClient
	notifier          Notifier
	txManager         TransactionManager
	timeProvider      TimeProvider
	logger            Logger
}

// NewService создает новый экземпляр сервиса записей на просмотр
func NewService(
	reservationRepo ReservationRepository,
	credentialRevoker CredentialRevoker,
	listingClient ListingServiceClient,
	notifierClient Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo:   reservationRepo,
		credentialRevoker: credentialRevoker,
		listingClient:     listingClient,
		notifier:          notifierClient,
		txManager:         txManager,
		timeProvider:      &RealTimeProvider{},
		logger:            logger,
	}
}

// GetByID получает запись на просмотр по ID
// Запись видит её посетитель или владелец объекта
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ViewingResponse, error) {
	s.logger.Info("GetByID: fetching viewing id=%d for user=%d", id, userID)

	s.Sweep(ctx)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: viewing id=%d not found", id)
			return nil, ErrViewingNotFound
		}
		s.logger.Error("GetByID: repository error for viewing id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, res, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to viewing id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched viewing id=%d", id)
	return models.FromDomainReservation(res), nil
}

// GetVisitorViewings получает историю записей посетителя
// Опционально фильтрует по статусу
func (s *Service) GetVisitorViewings(ctx context.Context, req *models.GetVisitorViewingsRequest) (*models.ViewingListResponse, error) {
	s.logger.Info("GetVisitorViewings: fetching viewings for visitor=%d, status=%v", req.VisitorID, req.Status)

	s.Sweep(ctx)

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetVisitorViewings: invalid status=%s for visitor=%d", *req.Status, req.VisitorID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByVisitor(ctx, req.VisitorID, domainStatus)
	if err != nil {
		s.logger.Error("GetVisitorViewings: repository error for visitor=%d: %v", req.VisitorID, err)
		return nil, fmt.Errorf("%w: GetVisitorViewings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVisitorViewings: successfully fetched %d viewings for visitor=%d", len(reservations), req.VisitorID)
	return models.FromDomainReservationList(reservations), nil
}

// GetPropertyViewings получает записи на просмотр по объекту
// Доступно только владельцу объекта; используется дашбордом владельца
func (s *Service) GetPropertyViewings(ctx context.Context, req *models.GetPropertyViewingsRequest) (*models.ViewingListResponse, error) {
	s.logger.Info("GetPropertyViewings: fetching viewings for property=%d, user=%d", req.PropertyID, req.UserID)

	if err := s.checkOwnerAccess(ctx, req.PropertyID, req.UserID); err != nil {
		return nil, err
	}

	s.Sweep(ctx)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetPropertyViewings: invalid filter for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	reservations, err := s.reservationRepo.GetByPropertyWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetPropertyViewings: repository error for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: GetPropertyViewings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPropertyViewings: successfully fetched %d viewings for property=%d", len(reservations), req.PropertyID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет запись на просмотр
// Посетитель может отменить свою запись, владелец объекта - любую запись
// на свой объект. Отмена и отзыв кода доступа - одна транзакция: после
// её коммита не существует момента, когда отменённая запись имеет
// читаемый код.
// Повторная отмена терминальной записи возвращает ErrInvalidState.
func (s *Service) Cancel(ctx context.Context, viewingID int64, req *models.CancelViewingRequest) error {
	s.logger.Info("Cancel: cancelling viewing id=%d by user=%d", viewingID, req.UserID)

	var cancelled *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Читаем запись под блокировкой FOR UPDATE
		res, err := s.reservationRepo.GetByID(txCtx, viewingID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrViewingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if !res.CanBeCancelled() {
			s.logger.Warn("Cancel: viewing id=%d cannot be cancelled, status=%s", viewingID, res.Status)
			return ErrInvalidState
		}

		// Определяем инициатора отмены
		actor := domain.ActorVisitor
		if res.VisitorID != req.UserID {
			if err := s.checkOwnerAccess(txCtx, res.PropertyID, req.UserID); err != nil {
				s.logger.Warn("Cancel: access denied for user=%d to cancel viewing id=%d", req.UserID, viewingID)
				return ErrAccessDenied
			}
			actor = domain.ActorOwner
		}

		if err := s.reservationRepo.Cancel(txCtx, viewingID, actor, req.Reason); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrViewingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// Синхронный отзыв кода доступа в той же транзакции
		if err := s.credentialRevoker.Revoke(txCtx, viewingID); err != nil {
			return fmt.Errorf("%w: Cancel - revoke credential: %v", ErrInternal, err)
		}

		res.Status = domain.StatusCancelled
		cancelled = res
		return nil
	})

	if err != nil {
		return err
	}

	// Уведомление fire-and-forget: ошибка публикации не откатывает отмену
	if s.notifier != nil {
		event := notifier.NewViewingEvent(domain.TransitionCancelled, cancelled, s.timeProvider.Now())
		if err := s.notifier.PublishTransition(ctx, event); err != nil {
			s.logger.Error("Cancel: failed to publish cancellation event for viewing id=%d: %v", viewingID, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled viewing id=%d", viewingID)
	return nil
}

// Sweep выполняет ленивые переходы по времени: pending с прошедшим началом
// слота отменяются, confirmed с прошедшим концом - завершаются.
// Идемпотентна; ошибки логируются и не прерывают вызвавшую операцию.
func (s *Service) Sweep(ctx context.Context) {
	now := s.timeProvider.Now()

	if n, err := s.reservationRepo.ExpirePendingDue(ctx, now); err != nil {
		s.logger.Error("Sweep: failed to expire pending reservations: %v", err)
	} else if n > 0 {
		s.logger.Info("Sweep: expired %d pending reservations", n)
	}

	if n, err := s.reservationRepo.CompleteConfirmedDue(ctx, now); err != nil {
		s.logger.Error("Sweep: failed to complete confirmed reservations: %v", err)
	} else if n > 0 {
		s.logger.Info("Sweep: completed %d confirmed reservations", n)
	}
}

// checkUserAccess проверяет, что пользователь имеет доступ к записи
// Доступ есть у посетителя записи и у владельца объекта
func (s *Service) checkUserAccess(ctx context.Context, res *domain.Reservation, userID int64) error {
	if res.VisitorID == userID {
		return nil
	}

	if err := s.checkOwnerAccess(ctx, res.PropertyID, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем объекта
func (s *Service) checkOwnerAccess(ctx context.Context, propertyID int64, userID int64) error {
	property, err := s.listingClient.GetProperty(ctx, propertyID)
	if err != nil {
		if errors.Is(err, listingClient.ErrPropertyNotFound) {
			s.logger.Warn("checkOwnerAccess: property id=%d not found", propertyID)
			return ErrPropertyNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get property id=%d: %v", propertyID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get property: %v", ErrInternal, err)
	}

	if property.OwnerID != userID {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of property=%d", userID, propertyID)
		return ErrAccessDenied
	}

	return nil
}
