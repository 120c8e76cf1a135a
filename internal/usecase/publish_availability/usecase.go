package publish_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
	"github.com/keyvisit/KV-ViewingService/internal/infra/storage/slot"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/listingservice"
)

// UseCase публикация окон доступности для самостоятельных просмотров
type UseCase struct {
	slotRepo      SlotRepository
	listingClient ListingServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// New создает новый UseCase публикации доступности
func New(
	slotRepo SlotRepository,
	listingClient ListingServiceClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}

	return &UseCase{
		slotRepo:      slotRepo,
		listingClient: listingClient,
		txManager:     txManager,
		timeProvider:  timeProvider,
		logger:        logger,
	}
}

// Execute публикует набор интервалов как слоты просмотра.
// Весь батч атомарен: либо создаются все слоты, либо ни одного.
func (uc *UseCase) Execute(ctx context.Context, req *PublishRequest) (*PublishResponse, error) {
	now := uc.timeProvider.Now()

	// 1. Валидация интервалов (включая попарные пересечения внутри запроса)
	if err := validateIntervals(req.Intervals, now); err != nil {
		return nil, err
	}

	// 2. Проверка объекта и прав владельца
	property, err := uc.listingClient.GetProperty(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, listingservice.ErrPropertyNotFound) {
			return nil, fmt.Errorf("%w: property %d", ErrPropertyNotFound, req.PropertyID)
		}
		uc.logger.Error("PublishAvailability: failed to get property %d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: Execute - failed to get property: %v", ErrInternal, err)
	}

	if property.OwnerID != req.OwnerID {
		return nil, fmt.Errorf("%w: user %d is not the owner of property %d",
			ErrAccessDenied, req.OwnerID, req.PropertyID)
	}

	if !property.IsListed() || !property.SelfViewingEnabled {
		return nil, fmt.Errorf("%w: property %d", ErrPropertyNotListed, req.PropertyID)
	}

	// Окно, покрывающее весь батч, для проверки пересечений с существующими слотами
	spanFrom, spanTo := batchSpan(req.Intervals)

	var created []*domain.Slot

	// 3. Транзакция: блокируем существующие слоты в окне батча,
	// проверяем пересечения и создаем новые слоты одним insert'ом
	err = uc.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		existing, err := uc.slotRepo.ListByProperty(ctx, req.PropertyID, &spanFrom, &spanTo)
		if err != nil {
			return fmt.Errorf("failed to list existing slots: %w", err)
		}

		for i, iv := range req.Intervals {
			for _, ex := range existing {
				if ex.Overlaps(iv.StartAt, iv.EndAt) {
					return fmt.Errorf("%w: interval %d overlaps existing slot %d",
						ErrOverlapConflict, i, ex.ID)
				}
			}
		}

		slots := make([]*domain.Slot, 0, len(req.Intervals))
		for _, iv := range req.Intervals {
			slots = append(slots, &domain.Slot{
				PropertyID: req.PropertyID,
				OwnerID:    req.OwnerID,
				StartAt:    iv.StartAt,
				EndAt:      iv.EndAt,
			})
		}

		created, err = uc.slotRepo.CreateBatch(ctx, slots)
		if err != nil {
			if errors.Is(err, slot.ErrInvalidInterval) {
				return fmt.Errorf("%w: %v", ErrInvalidInterval, err)
			}
			return fmt.Errorf("failed to create slots: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrOverlapConflict) || errors.Is(err, ErrInvalidInterval) {
			return nil, err
		}
		uc.logger.Error("PublishAvailability: transaction failed for property %d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: Execute - transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("PublishAvailability: published %d slots for property %d by owner %d",
		len(created), req.PropertyID, req.OwnerID)

	return FromDomainSlots(req.PropertyID, created), nil
}

// batchSpan возвращает минимальное окно, покрывающее все интервалы запроса
func batchSpan(intervals []domain.Interval) (time.Time, time.Time) {
	from, to := intervals[0].StartAt, intervals[0].EndAt
	for _, iv := range intervals[1:] {
		if iv.StartAt.Before(from) {
			from = iv.StartAt
		}
		if iv.EndAt.After(to) {
			to = iv.EndAt
		}
	}
	return from, to
}
