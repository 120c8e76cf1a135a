package revoke_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/keyvisit/KV-ViewingService/internal/api/handlers"
	revokeAvailability "github.com/keyvisit/KV-ViewingService/internal/usecase/revoke_availability"
)

const (
	msgInvalidSlotID     = "некорректный ID слота"
	msgSlotNotFound      = "слот не найден"
	msgForbidden         = "доступ запрещен"
	msgActiveReservation = "на слоте есть активное бронирование, используйте force=true"
)

type Handler struct {
	useCase RevokeAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase RevokeAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/slots/{slotId}?force=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	ownerID, err := handlers.UserID(r)
	if err != nil {
		h.logger.Warn("DELETE /slots/{id} - Missing user header: %v", err)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	force := r.URL.Query().Get("force") == "true"

	result, err := h.useCase.Execute(r.Context(), &revokeAvailability.RevokeRequest{
		SlotID:  slotID,
		OwnerID: ownerID,
		Force:   force,
	})
	if err != nil {
		switch {
		case errors.Is(err, revokeAvailability.ErrSlotNotFound):
			h.logger.Warn("DELETE /slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, revokeAvailability.ErrAccessDenied):
			h.logger.Warn("DELETE /slots/{id} - Access denied: slot_id=%d, user_id=%d", slotID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, revokeAvailability.ErrHasActiveReservation):
			h.logger.Warn("DELETE /slots/{id} - Active reservation exists: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgActiveReservation)

		default:
			h.logger.Error("DELETE /slots/{id} - Failed to revoke slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /slots/{id} - Slot revoked: slot_id=%d, owner_id=%d, force=%t",
		slotID, ownerID, force)
	handlers.RespondJSON(w, http.StatusOK, result)
}
