package publish_availability

import (
	"time"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
	publishAvailability "github.com/keyvisit/KV-ViewingService/internal/usecase/publish_availability"
)

// IntervalRequest интервал доступности в HTTP запросе
type IntervalRequest struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
}

// PublishAvailabilityRequest HTTP request model
type PublishAvailabilityRequest struct {
	Intervals []IntervalRequest `json:"intervals"`
}

// SlotResponse созданный слот в HTTP ответе
type SlotResponse struct {
	ID      int64  `json:"id"`
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
}

// PublishAvailabilityResponse HTTP response model
type PublishAvailabilityResponse struct {
	PropertyID int64          `json:"propertyId"`
	Slots      []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PublishAvailabilityRequest) ToUseCaseRequest(ownerID, propertyID int64) *publishAvailability.PublishRequest {
	intervals := make([]domain.Interval, 0, len(r.Intervals))
	for _, iv := range r.Intervals {
		intervals = append(intervals, domain.Interval{
			StartAt: iv.StartAt,
			EndAt:   iv.EndAt,
		})
	}

	return &publishAvailability.PublishRequest{
		OwnerID:    ownerID,
		PropertyID: propertyID,
		Intervals:  intervals,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *publishAvailability.PublishResponse) *PublishAvailabilityResponse {
	out := &PublishAvailabilityResponse{
		PropertyID: resp.PropertyID,
		Slots:      make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			ID:      s.ID,
			StartAt: s.StartAt.Format(time.RFC3339),
			EndAt:   s.EndAt.Format(time.RFC3339),
		})
	}

	return out
}
