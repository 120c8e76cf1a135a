package revoke_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
	"github.com/keyvisit/KV-ViewingService/internal/infra/storage/reservation"
	"github.com/keyvisit/KV-ViewingService/internal/infra/storage/slot"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/notifier"
)

// UseCase отзыв слота владельцем, с каскадной отменой активного бронирования
type UseCase struct {
	slotRepo          SlotRepository
	reservationRepo   ReservationRepository
	credentialRevoker CredentialRevoker
	notifier          Notifier
	txManager         TransactionManager
	timeProvider      TimeProvider
	logger            Logger
}

// New создает новый UseCase отзыва слота
func New(
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	credentialRevoker CredentialRevoker,
	notifier Notifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}

	return &UseCase{
		slotRepo:          slotRepo,
		reservationRepo:   reservationRepo,
		credentialRevoker: credentialRevoker,
		notifier:          notifier,
		txManager:         txManager,
		timeProvider:      timeProvider,
		logger:            logger,
	}
}

// Execute удаляет слот. При активном бронировании без force возвращает
// ErrHasActiveReservation; с force — отменяет бронирование от имени владельца
// и отзывает код доступа в одной транзакции с удалением слота.
func (uc *UseCase) Execute(ctx context.Context, req *RevokeRequest) (*RevokeResponse, error) {
	var cancelled *domain.Reservation

	err := uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		sl, err := uc.slotRepo.GetByID(ctx, req.SlotID)
		if err != nil {
			if errors.Is(err, slot.ErrSlotNotFound) {
				return fmt.Errorf("%w: slot %d", ErrSlotNotFound, req.SlotID)
			}
			return fmt.Errorf("failed to get slot: %w", err)
		}

		if sl.OwnerID != req.OwnerID {
			return fmt.Errorf("%w: user %d is not the owner of slot %d",
				ErrAccessDenied, req.OwnerID, req.SlotID)
		}

		active, err := uc.reservationRepo.GetActiveBySlot(ctx, sl.ID)
		if err != nil && !errors.Is(err, reservation.ErrReservationNotFound) {
			return fmt.Errorf("failed to get active reservation: %w", err)
		}

		if active != nil {
			if !req.Force {
				return fmt.Errorf("%w: slot %d, reservation %d",
					ErrHasActiveReservation, sl.ID, active.ID)
			}

			if err := uc.reservationRepo.Cancel(ctx, active.ID, domain.ActorOwner, domain.ReasonSlotRevoked); err != nil {
				return fmt.Errorf("failed to cancel reservation %d: %w", active.ID, err)
			}

			if err := uc.credentialRevoker.Revoke(ctx, active.ID); err != nil {
				return fmt.Errorf("failed to revoke credential for reservation %d: %w", active.ID, err)
			}

			active.Status = domain.StatusCancelled
			cancelled = active
		}

		if err := uc.slotRepo.Delete(ctx, sl.ID); err != nil {
			return fmt.Errorf("failed to delete slot: %w", err)
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotFound),
			errors.Is(err, ErrAccessDenied),
			errors.Is(err, ErrHasActiveReservation):
			return nil, err
		default:
			uc.logger.Error("RevokeAvailability: transaction failed for slot %d: %v", req.SlotID, err)
			return nil, fmt.Errorf("%w: Execute - transaction failed: %v", ErrInternal, err)
		}
	}

	resp := &RevokeResponse{SlotID: req.SlotID}

	if cancelled != nil {
		resp.CancelledReservationID = &cancelled.ID

		uc.logger.Info("RevokeAvailability: slot %d revoked by owner %d, reservation %d cancelled",
			req.SlotID, req.OwnerID, cancelled.ID)

		if uc.notifier != nil {
			event := notifier.NewViewingEvent(domain.TransitionCancelled, cancelled, uc.timeProvider.Now())
			if err := uc.notifier.PublishTransition(ctx, event); err != nil {
				uc.logger.Warn("RevokeAvailability: failed to publish cancelled event for reservation %d: %v",
					cancelled.ID, err)
			}
		}
	} else {
		uc.logger.Info("RevokeAvailability: slot %d revoked by owner %d", req.SlotID, req.OwnerID)
	}

	return resp, nil
}
