package request_viewing

import (
	"time"

	requestViewing "github.com/keyvisit/KV-ViewingService/internal/usecase/request_viewing"
)

// RequestViewingRequest HTTP request model
type RequestViewingRequest struct {
	SlotID int64 `json:"slotId"`
}

// ViewingResponse HTTP response model
type ViewingResponse struct {
	ID            int64  `json:"id"`
	SlotID        int64  `json:"slotId"`
	PropertyID    int64  `json:"propertyId"`
	Status        string `json:"status"`
	AutoConfirmed bool   `json:"autoConfirmed"`
	SlotStartAt   string `json:"slotStartAt"`
	SlotEndAt     string `json:"slotEndAt"`
	CreatedAt     string `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestViewing.RequestViewingResponse) *ViewingResponse {
	return &ViewingResponse{
		ID:            resp.ID,
		SlotID:        resp.SlotID,
		PropertyID:    resp.PropertyID,
		Status:        resp.Status,
		AutoConfirmed: resp.AutoConfirmed,
		SlotStartAt:   resp.SlotStartAt.Format(time.RFC3339),
		SlotEndAt:     resp.SlotEndAt.Format(time.RFC3339),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
