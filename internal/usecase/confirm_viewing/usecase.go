package confirm_viewing

import (
	"context"
	"errors"
	"fmt"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
	"github.com/keyvisit/KV-ViewingService/internal/infra/storage/reservation"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/notifier"
)

// UseCase подтверждение бронирования владельцем объекта
type UseCase struct {
	reservationRepo  ReservationRepository
	credentialIssuer CredentialIssuer
	listingClient    ListingServiceClient
	notifier         Notifier
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// New создает новый UseCase подтверждения бронирования
func New(
	reservationRepo ReservationRepository,
	credentialIssuer CredentialIssuer,
	listingClient ListingServiceClient,
	notifier Notifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}

	return &UseCase{
		reservationRepo:  reservationRepo,
		credentialIssuer: credentialIssuer,
		listingClient:    listingClient,
		notifier:         notifier,
		txManager:        txManager,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// Execute переводит pending-бронирование в confirmed и выпускает
// код доступа в той же транзакции: подтвержденное бронирование
// без кода существовать не может.
func (uc *UseCase) Execute(ctx context.Context, req *ConfirmRequest) (*ConfirmResponse, error) {
	now := uc.timeProvider.Now()

	var confirmed *domain.Reservation

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		res, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservation.ErrReservationNotFound) {
				return fmt.Errorf("%w: reservation %d", ErrViewingNotFound, req.ReservationID)
			}
			return fmt.Errorf("failed to get reservation: %w", err)
		}

		property, err := uc.listingClient.GetProperty(ctx, res.PropertyID)
		if err != nil {
			return fmt.Errorf("failed to get property: %w", err)
		}

		if property.OwnerID != req.UserID {
			return fmt.Errorf("%w: user %d is not the owner of property %d",
				ErrAccessDenied, req.UserID, res.PropertyID)
		}

		if !res.CanBeConfirmed() {
			return fmt.Errorf("%w: reservation %d is %s", ErrInvalidState, res.ID, res.Status)
		}

		if !res.SlotStartAt.After(now) {
			return fmt.Errorf("%w: slot started at %s", ErrSlotExpired, res.SlotStartAt)
		}

		if err := uc.reservationRepo.UpdateStatus(ctx, res.ID, domain.StatusConfirmed); err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}
		res.Status = domain.StatusConfirmed
		res.UpdatedAt = now

		if _, err := uc.credentialIssuer.Issue(ctx, res); err != nil {
			return fmt.Errorf("failed to issue access credential: %w", err)
		}

		confirmed = res
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrViewingNotFound),
			errors.Is(err, ErrAccessDenied),
			errors.Is(err, ErrInvalidState),
			errors.Is(err, ErrSlotExpired):
			return nil, err
		default:
			uc.logger.Error("ConfirmViewing: transaction failed for reservation %d: %v",
				req.ReservationID, err)
			return nil, fmt.Errorf("%w: Execute - transaction failed: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("ConfirmViewing: reservation %d confirmed by owner %d", confirmed.ID, req.UserID)

	if uc.notifier != nil {
		event := notifier.NewViewingEvent(domain.TransitionConfirmed, confirmed, now)
		if err := uc.notifier.PublishTransition(ctx, event); err != nil {
			uc.logger.Warn("ConfirmViewing: failed to publish confirmed event for reservation %d: %v",
				confirmed.ID, err)
		}
	}

	return FromDomainReservation(confirmed), nil
}
