package confirm_viewing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/keyvisit/KV-ViewingService/internal/api/handlers"
	confirmViewing "github.com/keyvisit/KV-ViewingService/internal/usecase/confirm_viewing"
)

const (
	msgInvalidViewingID = "некорректный ID просмотра"
	msgNotFound         = "просмотр не найден"
	msgForbidden        = "доступ запрещен"
	msgInvalidState     = "просмотр не ожидает подтверждения"
	msgSlotExpired      = "слот уже начался, подтверждение невозможно"
)

type Handler struct {
	useCase ConfirmViewingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmViewingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/viewings/{viewingId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	viewingID, err := strconv.ParseInt(vars["viewingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /viewings/{id}/confirm - Invalid viewing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidViewingID)
		return
	}

	userID, err := handlers.UserID(r)
	if err != nil {
		h.logger.Warn("PATCH /viewings/{id}/confirm - Missing user header: %v", err)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmViewing.ConfirmRequest{
		ReservationID: viewingID,
		UserID:        userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmViewing.ErrViewingNotFound):
			h.logger.Warn("PATCH /viewings/{id}/confirm - Viewing not found: viewing_id=%d", viewingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmViewing.ErrAccessDenied):
			h.logger.Warn("PATCH /viewings/{id}/confirm - Access denied: viewing_id=%d, user_id=%d",
				viewingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, confirmViewing.ErrInvalidState):
			h.logger.Warn("PATCH /viewings/{id}/confirm - Invalid state: viewing_id=%d", viewingID)
			handlers.RespondConflict(w, msgInvalidState)

		case errors.Is(err, confirmViewing.ErrSlotExpired):
			h.logger.Warn("PATCH /viewings/{id}/confirm - Slot expired: viewing_id=%d", viewingID)
			handlers.RespondBadRequest(w, msgSlotExpired)

		default:
			h.logger.Error("PATCH /viewings/{id}/confirm - Failed to confirm viewing: viewing_id=%d, error=%v",
				viewingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /viewings/{id}/confirm - Viewing confirmed: viewing_id=%d, owner_id=%d",
		viewingID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
