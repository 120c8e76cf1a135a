package get_access_code

import (
	"context"

	"github.com/keyvisit/KV-ViewingService/internal/service/credentials/models"
)

type CredentialService interface {
	Reveal(ctx context.Context, req *models.RevealRequest) (*models.RevealResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
