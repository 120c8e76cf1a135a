package request_viewing

import (
	"errors"
	"net/http"

	"github.com/keyvisit/KV-ViewingService/internal/api/handlers"
	requestViewing "github.com/keyvisit/KV-ViewingService/internal/usecase/request_viewing"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotID      = "некорректный ID слота"
	msgSlotNotFound       = "слот не найден"
	msgSlotExpired        = "слот уже начался"
	msgSlotConflict       = "слот уже забронирован"
	msgPropertyNotListed  = "объект недоступен для просмотров"
	msgOwnViewing         = "нельзя бронировать просмотр собственного объекта"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase RequestViewingUseCase
	logger  Logger
}

func NewHandler(useCase RequestViewingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/viewings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	visitorID, err := handlers.UserID(r)
	if err != nil {
		h.logger.Warn("POST /viewings - Missing user header: %v", err)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req RequestViewingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /viewings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.SlotID <= 0 {
		h.logger.Warn("POST /viewings - Invalid slot ID: %d", req.SlotID)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &requestViewing.RequestViewingRequest{
		VisitorID: visitorID,
		SlotID:    req.SlotID,
	})
	if err != nil {
		switch {
		case errors.Is(err, requestViewing.ErrSlotNotFound):
			h.logger.Warn("POST /viewings - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, requestViewing.ErrSlotExpired):
			h.logger.Warn("POST /viewings - Slot expired: slot_id=%d", req.SlotID)
			handlers.RespondBadRequest(w, msgSlotExpired)

		case errors.Is(err, requestViewing.ErrSlotConflict):
			h.logger.Warn("POST /viewings - Slot conflict: slot_id=%d, visitor_id=%d", req.SlotID, visitorID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, requestViewing.ErrPropertyNotListed):
			h.logger.Warn("POST /viewings - Property not listed: slot_id=%d", req.SlotID)
			handlers.RespondBadRequest(w, msgPropertyNotListed)

		case errors.Is(err, requestViewing.ErrOwnViewing):
			h.logger.Warn("POST /viewings - Own property: slot_id=%d, visitor_id=%d", req.SlotID, visitorID)
			handlers.RespondBadRequest(w, msgOwnViewing)

		default:
			h.logger.Error("POST /viewings - Failed to request viewing: slot_id=%d, visitor_id=%d, error=%v",
				req.SlotID, visitorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /viewings - Viewing created: viewing_id=%d, slot_id=%d, visitor_id=%d, status=%s",
		result.ID, result.SlotID, visitorID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
