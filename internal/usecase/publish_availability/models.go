package publish_availability

import (
	"time"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
)

// PublishRequest запрос на публикацию окон доступности
type PublishRequest struct {
	OwnerID    int64
	PropertyID int64
	Intervals  []domain.Interval
}

// PublishedSlot созданный слот в ответе
type PublishedSlot struct {
	ID      int64     `json:"id"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

// PublishResponse ответ с созданными слотами (в порядке интервалов запроса)
type PublishResponse struct {
	PropertyID int64           `json:"property_id"`
	Slots      []PublishedSlot `json:"slots"`
}

// FromDomainSlots преобразует доменные слоты в ответ
func FromDomainSlots(propertyID int64, slots []*domain.Slot) *PublishResponse {
	resp := &PublishResponse{
		PropertyID: propertyID,
		Slots:      make([]PublishedSlot, 0, len(slots)),
	}

	for _, s := range slots {
		resp.Slots = append(resp.Slots, PublishedSlot{
			ID:      s.ID,
			StartAt: s.StartAt,
			EndAt:   s.EndAt,
		})
	}

	return resp
}
