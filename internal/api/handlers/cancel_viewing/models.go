package cancel_viewing

import (
	"github.com/keyvisit/KV-ViewingService/internal/service/viewings/models"
	"github.com/keyvisit/KV-ViewingService/pkg/ptr"
)

// CancelViewingRequest HTTP request model
type CancelViewingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelViewingRequest) ToServiceRequest(userID int64) *models.CancelViewingRequest {
	return &models.CancelViewingRequest{
		UserID: userID,
		Reason: ptr.Value(r.Reason),
	}
}
