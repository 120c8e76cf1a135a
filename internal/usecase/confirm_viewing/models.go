package confirm_viewing

import (
	"time"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
)

// ConfirmRequest запрос на подтверждение бронирования владельцем
type ConfirmRequest struct {
	ReservationID int64
	UserID        int64
}

// ConfirmResponse ответ с подтвержденным бронированием
type ConfirmResponse struct {
	ID          int64     `json:"id"`
	SlotID      int64     `json:"slot_id"`
	PropertyID  int64     `json:"property_id"`
	VisitorID   int64     `json:"visitor_id"`
	Status      string    `json:"status"`
	SlotStartAt time.Time `json:"slot_start_at"`
	SlotEndAt   time.Time `json:"slot_end_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FromDomainReservation преобразует доменное бронирование в ответ
func FromDomainReservation(res *domain.Reservation) *ConfirmResponse {
	return &ConfirmResponse{
		ID:          res.ID,
		SlotID:      res.SlotID,
		PropertyID:  res.PropertyID,
		VisitorID:   res.VisitorID,
		Status:      string(res.Status),
		SlotStartAt: res.SlotStartAt,
		SlotEndAt:   res.SlotEndAt,
		UpdatedAt:   res.UpdatedAt,
	}
}
