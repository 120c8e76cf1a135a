package request_viewing

import (
	"time"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
)

// RequestViewingRequest запрос на бронирование просмотра
type RequestViewingRequest struct {
	VisitorID int64
	SlotID    int64
}

// RequestViewingResponse ответ с созданным бронированием
type RequestViewingResponse struct {
	ID            int64     `json:"id"`
	SlotID        int64     `json:"slot_id"`
	PropertyID    int64     `json:"property_id"`
	Status        string    `json:"status"`
	AutoConfirmed bool      `json:"auto_confirmed"`
	SlotStartAt   time.Time `json:"slot_start_at"`
	SlotEndAt     time.Time `json:"slot_end_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// FromDomainReservation преобразует доменное бронирование в ответ
func FromDomainReservation(res *domain.Reservation, autoConfirmed bool) *RequestViewingResponse {
	return &RequestViewingResponse{
		ID:            res.ID,
		SlotID:        res.SlotID,
		PropertyID:    res.PropertyID,
		Status:        string(res.Status),
		AutoConfirmed: autoConfirmed,
		SlotStartAt:   res.SlotStartAt,
		SlotEndAt:     res.SlotEndAt,
		CreatedAt:     res.CreatedAt,
	}
}
