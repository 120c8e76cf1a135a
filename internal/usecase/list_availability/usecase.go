package list_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/listingservice"
)

// UseCase список слотов объекта с признаком занятости
type UseCase struct {
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
	listingClient   ListingServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// New создает новый UseCase списка доступности
func New(
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	listingClient ListingServiceClient,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}

	return &UseCase{
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		listingClient:   listingClient,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute возвращает слоты объекта в окне запроса, отсортированные по началу.
// Перед чтением досрочно завершает просроченные бронирования, чтобы
// занятость слотов отражала актуальное состояние.
func (uc *UseCase) Execute(ctx context.Context, req *ListRequest) (*ListResponse, error) {
	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidWindow)
	}

	if _, err := uc.listingClient.GetProperty(ctx, req.PropertyID); err != nil {
		if errors.Is(err, listingservice.ErrPropertyNotFound) {
			return nil, fmt.Errorf("%w: property %d", ErrPropertyNotFound, req.PropertyID)
		}
		uc.logger.Error("ListAvailability: failed to get property %d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get property: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	uc.sweep(ctx, now)

	slots, err := uc.slotRepo.ListByProperty(ctx, req.PropertyID, req.From, req.To)
	if err != nil {
		uc.logger.Error("ListAvailability: failed to list slots for property %d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: Execute - failed to list slots: %v", ErrInternal, err)
	}

	slotIDs := make([]int64, 0, len(slots))
	for _, s := range slots {
		slotIDs = append(slotIDs, s.ID)
	}

	active, err := uc.reservationRepo.ListActiveBySlots(ctx, slotIDs)
	if err != nil {
		uc.logger.Error("ListAvailability: failed to list reservations for property %d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: Execute - failed to list reservations: %v", ErrInternal, err)
	}

	bySlot := make(map[int64]*domain.Reservation, len(active))
	for _, r := range active {
		bySlot[r.SlotID] = r
	}

	items := make([]*domain.SlotAvailability, 0, len(slots))
	for _, s := range slots {
		item := &domain.SlotAvailability{Slot: *s}
		if r, ok := bySlot[s.ID]; ok {
			item.Reserved = true
			item.ReservationStatus = &r.Status
		}
		items = append(items, item)
	}

	return FromDomainAvailability(req.PropertyID, items, now), nil
}

// sweep досрочно завершает просроченные бронирования; ошибки не фатальны
func (uc *UseCase) sweep(ctx context.Context, now time.Time) {
	if n, err := uc.reservationRepo.ExpirePendingDue(ctx, now); err != nil {
		uc.logger.Warn("ListAvailability: sweep expire failed: %v", err)
	} else if n > 0 {
		uc.logger.Info("ListAvailability: expired %d overdue pending reservations", n)
	}

	if n, err := uc.reservationRepo.CompleteConfirmedDue(ctx, now); err != nil {
		uc.logger.Warn("ListAvailability: sweep complete failed: %v", err)
	} else if n > 0 {
		uc.logger.Info("ListAvailability: completed %d finished reservations", n)
	}
}
