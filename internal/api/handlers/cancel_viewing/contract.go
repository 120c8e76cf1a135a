package cancel_viewing

import (
	"context"

	"github.com/keyvisit/KV-ViewingService/internal/service/viewings/models"
)

type ViewingService interface {
	Cancel(ctx context.Context, viewingID int64, req *models.CancelViewingRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
