package request_viewing

import (
	"context"

	requestViewing "github.com/keyvisit/KV-ViewingService/internal/usecase/request_viewing"
)

type RequestViewingUseCase interface {
	Execute(ctx context.Context, req *requestViewing.RequestViewingRequest) (*requestViewing.RequestViewingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
