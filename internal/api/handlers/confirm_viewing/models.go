package confirm_viewing

import (
	"time"

	confirmViewing "github.com/keyvisit/KV-ViewingService/internal/usecase/confirm_viewing"
)

// ViewingResponse HTTP response model
type ViewingResponse struct {
	ID          int64  `json:"id"`
	SlotID      int64  `json:"slotId"`
	PropertyID  int64  `json:"propertyId"`
	VisitorID   int64  `json:"visitorId"`
	Status      string `json:"status"`
	SlotStartAt string `json:"slotStartAt"`
	SlotEndAt   string `json:"slotEndAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmViewing.ConfirmResponse) *ViewingResponse {
	return &ViewingResponse{
		ID:          resp.ID,
		SlotID:      resp.SlotID,
		PropertyID:  resp.PropertyID,
		VisitorID:   resp.VisitorID,
		Status:      resp.Status,
		SlotStartAt: resp.SlotStartAt.Format(time.RFC3339),
		SlotEndAt:   resp.SlotEndAt.Format(time.RFC3339),
	}
}
