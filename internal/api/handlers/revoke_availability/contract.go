package revoke_availability

import (
	"context"

	revokeAvailability "github.com/keyvisit/KV-ViewingService/internal/usecase/revoke_availability"
)

type RevokeAvailabilityUseCase interface {
	Execute(ctx context.Context, req *revokeAvailability.RevokeRequest) (*revokeAvailability.RevokeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
