package list_availability

import (
	"time"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
)

// ListRequest запрос списка слотов объекта в окне [From, To)
type ListRequest struct {
	PropertyID int64
	From       *time.Time
	To         *time.Time
}

// SlotView слот с признаком доступности для бронирования
type SlotView struct {
	ID                int64     `json:"id"`
	StartAt           time.Time `json:"start_at"`
	EndAt             time.Time `json:"end_at"`
	Reserved          bool      `json:"reserved"`
	Bookable          bool      `json:"bookable"`
	ReservationStatus *string   `json:"reservation_status,omitempty"`
}

// ListResponse ответ со слотами объекта
type ListResponse struct {
	PropertyID int64      `json:"property_id"`
	Slots      []SlotView `json:"slots"`
}

// FromDomainAvailability преобразует доменные слоты с аннотацией занятости в ответ
func FromDomainAvailability(propertyID int64, items []*domain.SlotAvailability, now time.Time) *ListResponse {
	resp := &ListResponse{
		PropertyID: propertyID,
		Slots:      make([]SlotView, 0, len(items)),
	}

	for _, it := range items {
		view := SlotView{
			ID:       it.Slot.ID,
			StartAt:  it.Slot.StartAt,
			EndAt:    it.Slot.EndAt,
			Reserved: it.Reserved,
			Bookable: it.IsBookable(now),
		}
		if it.ReservationStatus != nil {
			s := string(*it.ReservationStatus)
			view.ReservationStatus = &s
		}
		resp.Slots = append(resp.Slots, view)
	}

	return resp
}
