package notifier

import (
	"time"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
)

// ViewingEvent событие перехода записи на просмотр, публикуемое в очередь
// Доставка at-least-once: потребители дедуплицируют по паре
// (reservation_id, transition), event_id идентифицирует конкретную попытку
// доставки
type ViewingEvent struct {
	EventID       string `json:"event_id"`
	Transition    string `json:"transition"`
	ReservationID int64  `json:"reservation_id"`
	SlotID        int64  `json:"slot_id"`
	PropertyID    int64  `json:"property_id"`
	VisitorID     int64  `json:"visitor_id"`
	SlotStartAt   string `json:"slot_start_at"`
	SlotEndAt     string `json:"slot_end_at"`
	OccurredAt    string `json:"occurred_at"`
}

// NewViewingEvent собирает событие из доменной записи
func NewViewingEvent(transition string, res *domain.Reservation, occurredAt time.Time) ViewingEvent {
	return ViewingEvent{
		Transition:    transition,
		ReservationID: res.ID,
		SlotID:        res.SlotID,
		PropertyID:    res.PropertyID,
		VisitorID:     res.VisitorID,
		SlotStartAt:   res.SlotStartAt.UTC().Format(time.RFC3339),
		SlotEndAt:     res.SlotEndAt.UTC().Format(time.RFC3339),
		OccurredAt:    occurredAt.UTC().Format(time.RFC3339),
	}
}
