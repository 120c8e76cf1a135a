package models

import (
	"time"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
)

// RevealRequest запрос на чтение кода доступа
type RevealRequest struct {
	ReservationID int64
	UserID        int64     // Инициатор запроса; код читает только посетитель записи
	At            time.Time // Момент, для которого проверяется окно действия
}

// RevealResponse ответ с кодом доступа и границами окна действия
type RevealResponse struct {
	Code       string    `json:"code"`
	ValidFrom  time.Time `json:"validFrom"`
	ValidUntil time.Time `json:"validUntil"`
}

// FromDomainCredential конвертирует доменную модель в ответ сервиса
func FromDomainCredential(cred *domain.AccessCredential) *RevealResponse {
	return &RevealResponse{
		Code:       cred.Code,
		ValidFrom:  cred.ValidFrom,
		ValidUntil: cred.ValidUntil,
	}
}
