package list_availability

import (
	"time"

	listAvailability "github.com/keyvisit/KV-ViewingService/internal/usecase/list_availability"
)

// SlotView слот в HTTP ответе
type SlotView struct {
	ID                int64   `json:"id"`
	StartAt           string  `json:"startAt"`
	EndAt             string  `json:"endAt"`
	Reserved          bool    `json:"reserved"`
	Bookable          bool    `json:"bookable"`
	ReservationStatus *string `json:"reservationStatus,omitempty"`
}

// ListAvailabilityResponse HTTP response model
type ListAvailabilityResponse struct {
	PropertyID int64      `json:"propertyId"`
	Slots      []SlotView `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listAvailability.ListResponse) *ListAvailabilityResponse {
	out := &ListAvailabilityResponse{
		PropertyID: resp.PropertyID,
		Slots:      make([]SlotView, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotView{
			ID:                s.ID,
			StartAt:           s.StartAt.Format(time.RFC3339),
			EndAt:             s.EndAt.Format(time.RFC3339),
			Reserved:          s.Reserved,
			Bookable:          s.Bookable,
			ReservationStatus: s.ReservationStatus,
		})
	}

	return out
}
