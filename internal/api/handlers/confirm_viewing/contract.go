package confirm_viewing

import (
	"context"

	confirmViewing "github.com/keyvisit/KV-ViewingService/internal/usecase/confirm_viewing"
)

type ConfirmViewingUseCase interface {
	Execute(ctx context.Context, req *confirmViewing.ConfirmRequest) (*confirmViewing.ConfirmResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
