package list_availability

import (
	"context"

	listAvailability "github.com/keyvisit/KV-ViewingService/internal/usecase/list_availability"
)

type ListAvailabilityUseCase interface {
	Execute(ctx context.Context, req *listAvailability.ListRequest) (*listAvailability.ListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
