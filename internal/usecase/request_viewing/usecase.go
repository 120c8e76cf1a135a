package request_viewing

import (
	"context"
	"errors"
	"fmt"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
	"github.com/keyvisit/KV-ViewingService/internal/infra/storage/reservation"
	"github.com/keyvisit/KV-ViewingService/internal/infra/storage/slot"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/listingservice"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/notifier"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/userservice"
)

// UseCase бронирование просмотра посетителем.
//
// Эксклюзивность слота гарантирует условный insert в репозитории:
// при активном бронировании на тот же слот строка не вставляется
// и конкурирующий запрос получает ErrSlotConflict.
type UseCase struct {
	slotRepo         SlotRepository
	reservationRepo  ReservationRepository
	credentialIssuer CredentialIssuer
	listingClient    ListingServiceClient
	userClient       UserServiceClient
	notifier         Notifier
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// New создает новый UseCase бронирования просмотра
func New(
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	credentialIssuer CredentialIssuer,
	listingClient ListingServiceClient,
	userClient UserServiceClient,
	notifier Notifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}

	return &UseCase{
		slotRepo:         slotRepo,
		reservationRepo:  reservationRepo,
		credentialIssuer: credentialIssuer,
		listingClient:    listingClient,
		userClient:       userClient,
		notifier:         notifier,
		txManager:        txManager,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// Execute создает бронирование на свободный слот.
// Верифицированным посетителям бронирование подтверждается автоматически,
// с выпуском кода доступа в той же транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *RequestViewingRequest) (*RequestViewingResponse, error) {
	now := uc.timeProvider.Now()

	// 1. Профиль посетителя: при деградации UserService или отсутствии
	// профиля бронирование остается pending вместо отказа
	profile, err := uc.userClient.GetProfileWithGracefulDegradation(ctx, req.VisitorID)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrServiceDegraded):
			uc.logger.Warn("RequestViewing: user service degraded for visitor %d, reservation stays pending: %v", req.VisitorID, err)
		case errors.Is(err, userservice.ErrProfileNotFound):
			uc.logger.Info("RequestViewing: no profile for visitor %d, reservation stays pending", req.VisitorID)
		default:
			uc.logger.Error("RequestViewing: failed to get visitor profile %d: %v", req.VisitorID, err)
			return nil, fmt.Errorf("%w: Execute - failed to get visitor profile: %v", ErrInternal, err)
		}
		profile = nil
	}

	autoConfirm := profile != nil && profile.IsVerified

	var created *domain.Reservation

	// 2. Транзакция: слот под блокировкой, условный insert, автоподтверждение
	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		sl, err := uc.slotRepo.GetByID(ctx, req.SlotID)
		if err != nil {
			if errors.Is(err, slot.ErrSlotNotFound) {
				return fmt.Errorf("%w: slot %d", ErrSlotNotFound, req.SlotID)
			}
			return fmt.Errorf("failed to get slot: %w", err)
		}

		if sl.HasStarted(now) {
			return fmt.Errorf("%w: slot %d started at %s", ErrSlotExpired, sl.ID, sl.StartAt)
		}

		if sl.OwnerID == req.VisitorID {
			return fmt.Errorf("%w: user %d owns property %d", ErrOwnViewing, req.VisitorID, sl.PropertyID)
		}

		property, err := uc.listingClient.GetProperty(ctx, sl.PropertyID)
		if err != nil {
			if errors.Is(err, listingservice.ErrPropertyNotFound) {
				return fmt.Errorf("%w: property %d", ErrPropertyNotListed, sl.PropertyID)
			}
			return fmt.Errorf("failed to get property: %w", err)
		}

		if !property.IsListed() || !property.SelfViewingEnabled {
			return fmt.Errorf("%w: property %d", ErrPropertyNotListed, sl.PropertyID)
		}

		created, err = uc.reservationRepo.CreateExclusive(ctx, &domain.Reservation{
			SlotID:      sl.ID,
			PropertyID:  sl.PropertyID,
			VisitorID:   req.VisitorID,
			Status:      domain.StatusPending,
			SlotStartAt: sl.StartAt,
			SlotEndAt:   sl.EndAt,
		})
		if err != nil {
			if errors.Is(err, reservation.ErrSlotTaken) {
				return fmt.Errorf("%w: slot %d", ErrSlotConflict, sl.ID)
			}
			return fmt.Errorf("failed to create reservation: %w", err)
		}

		if autoConfirm {
			if err := uc.reservationRepo.UpdateStatus(ctx, created.ID, domain.StatusConfirmed); err != nil {
				return fmt.Errorf("failed to auto-confirm reservation: %w", err)
			}
			created.Status = domain.StatusConfirmed

			if _, err := uc.credentialIssuer.Issue(ctx, created); err != nil {
				return fmt.Errorf("failed to issue access credential: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotFound),
			errors.Is(err, ErrSlotExpired),
			errors.Is(err, ErrSlotConflict),
			errors.Is(err, ErrOwnViewing),
			errors.Is(err, ErrPropertyNotListed):
			return nil, err
		default:
			uc.logger.Error("RequestViewing: transaction failed for slot %d: %v", req.SlotID, err)
			return nil, fmt.Errorf("%w: Execute - transaction failed: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("RequestViewing: reservation %d created for slot %d by visitor %d (status=%s)",
		created.ID, created.SlotID, created.VisitorID, created.Status)

	// 3. Событие о подтверждении публикуется после фиксации транзакции;
	// сбой нотификации бронирование не откатывает
	if autoConfirm && uc.notifier != nil {
		event := notifier.NewViewingEvent(domain.TransitionConfirmed, created, uc.timeProvider.Now())
		if err := uc.notifier.PublishTransition(ctx, event); err != nil {
			uc.logger.Warn("RequestViewing: failed to publish confirmed event for reservation %d: %v",
				created.ID, err)
		}
	}

	return FromDomainReservation(created, autoConfirm), nil
}
