package models

import (
	"errors"
	"time"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// CancelViewingRequest запрос на отмену записи на просмотр
type CancelViewingRequest struct {
	UserID int64  `json:"userId"`
	Reason string `json:"reason"`
}

// GetVisitorViewingsRequest запрос на получение записей посетителя
type GetVisitorViewingsRequest struct {
	VisitorID int64   `json:"visitorId"`
	Status    *string `json:"status,omitempty"`
}

// GetPropertyViewingsRequest запрос на получение записей по объекту
type GetPropertyViewingsRequest struct {
	UserID          int64      `json:"userId"`
	PropertyID      int64      `json:"propertyId"`
	SlotID          *int64     `json:"slotId,omitempty"`
	From            *time.Time `json:"from,omitempty"`
	To              *time.Time `json:"to,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeTerminal bool       `json:"includeTerminal"`
}

// ToDomainFilter конвертирует request в доменный фильтр
func (r *GetPropertyViewingsRequest) ToDomainFilter() (domain.PropertyViewingsFilter, error) {
	filter := domain.PropertyViewingsFilter{
		PropertyID:      r.PropertyID,
		SlotID:          r.SlotID,
		From:            r.From,
		To:              r.To,
		IncludeTerminal: r.IncludeTerminal,
	}

	if r.Status != nil {
		status, err := ToDomainReservationStatus(*r.Status)
		if err != nil {
			return domain.PropertyViewingsFilter{}, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ViewingResponse запись на просмотр в ответе сервиса
// Код доступа в эту модель не входит: он читается только через
// отдельный time-gated путь
type ViewingResponse struct {
	ID                 int64      `json:"id"`
	SlotID             int64      `json:"slotId"`
	PropertyID         int64      `json:"propertyId"`
	VisitorID          int64      `json:"visitorId"`
	Status             string     `json:"status"`
	SlotStartAt        time.Time  `json:"slotStartAt"`
	SlotEndAt          time.Time  `json:"slotEndAt"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledBy        *string    `json:"cancelledBy,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// ViewingListResponse список записей на просмотр
type ViewingListResponse struct {
	Viewings []*ViewingResponse `json:"viewings"`
	Total    int                `json:"total"`
}

// FromDomainReservation конвертирует доменную модель в ответ сервиса
func FromDomainReservation(res *domain.Reservation) *ViewingResponse {
	resp := &ViewingResponse{
		ID:                 res.ID,
		SlotID:             res.SlotID,
		PropertyID:         res.PropertyID,
		VisitorID:          res.VisitorID,
		Status:             string(res.Status),
		SlotStartAt:        res.SlotStartAt,
		SlotEndAt:          res.SlotEndAt,
		CancellationReason: res.CancellationReason,
		CancelledAt:        res.CancelledAt,
		CreatedAt:          res.CreatedAt,
		UpdatedAt:          res.UpdatedAt,
	}

	if res.CancelledBy != nil {
		actor := string(*res.CancelledBy)
		resp.CancelledBy = &actor
	}

	return resp
}

// FromDomainReservationList конвертирует список доменных моделей
func FromDomainReservationList(reservations []*domain.Reservation) *ViewingListResponse {
	viewings := make([]*ViewingResponse, len(reservations))
	for i, res := range reservations {
		viewings[i] = FromDomainReservation(res)
	}

	return &ViewingListResponse{
		Viewings: viewings,
		Total:    len(viewings),
	}
}

// ToDomainReservationStatus валидирует и конвертирует строковый статус
func ToDomainReservationStatus(s string) (domain.ReservationStatus, error) {
	switch domain.ReservationStatus(s) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled, domain.StatusCompleted:
		return domain.ReservationStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
