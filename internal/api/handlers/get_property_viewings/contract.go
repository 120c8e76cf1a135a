package get_property_viewings

import (
	"context"

	"github.com/keyvisit/KV-ViewingService/internal/service/viewings/models"
)

type ViewingService interface {
	GetPropertyViewings(ctx context.Context, req *models.GetPropertyViewingsRequest) (*models.ViewingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
