package cancel_viewing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/keyvisit/KV-ViewingService/internal/api/handlers"
	"github.com/keyvisit/KV-ViewingService/internal/service/viewings"
)

const (
	msgInvalidViewingID   = "некорректный ID просмотра"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "просмотр не найден"
	msgForbidden          = "доступ запрещен"
	msgCannotCancel       = "просмотр не может быть отменен"
	msgInvalidReason      = "слишком длинная причина отмены"
)

type Handler struct {
	service ViewingService
	logger  Logger
}

func NewHandler(service ViewingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/viewings/{viewingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	viewingID, err := strconv.ParseInt(vars["viewingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /viewings/{id}/cancel - Invalid viewing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidViewingID)
		return
	}

	userID, err := handlers.UserID(r)
	if err != nil {
		h.logger.Warn("PATCH /viewings/{id}/cancel - Missing user header: %v", err)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req CancelViewingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /viewings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.Cancel(r.Context(), viewingID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, viewings.ErrViewingNotFound):
			h.logger.Warn("PATCH /viewings/{id}/cancel - Viewing not found: viewing_id=%d", viewingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, viewings.ErrAccessDenied):
			h.logger.Warn("PATCH /viewings/{id}/cancel - Access denied: viewing_id=%d, user_id=%d",
				viewingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, viewings.ErrInvalidState):
			h.logger.Warn("PATCH /viewings/{id}/cancel - Cannot cancel: viewing_id=%d", viewingID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, viewings.ErrInvalidInput):
			h.logger.Warn("PATCH /viewings/{id}/cancel - Invalid input: viewing_id=%d, error=%v",
				viewingID, err)
			handlers.RespondBadRequest(w, msgInvalidReason)

		default:
			h.logger.Error("PATCH /viewings/{id}/cancel - Failed to cancel viewing: viewing_id=%d, error=%v",
				viewingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /viewings/{id}/cancel - Viewing cancelled: viewing_id=%d, user_id=%d",
		viewingID, userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
