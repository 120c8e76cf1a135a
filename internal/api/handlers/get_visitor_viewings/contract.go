package get_visitor_viewings

import (
	"context"

	"github.com/keyvisit/KV-ViewingService/internal/service/viewings/models"
)

type ViewingService interface {
	GetVisitorViewings(ctx context.Context, req *models.GetVisitorViewingsRequest) (*models.ViewingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
