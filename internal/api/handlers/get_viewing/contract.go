package get_viewing

import (
	"context"

	"github.com/keyvisit/KV-ViewingService/internal/service/viewings/models"
)

type ViewingService interface {
	GetByID(ctx context.Context, id int64, userID int64) (*models.ViewingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
