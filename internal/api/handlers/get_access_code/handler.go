package get_access_code

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/keyvisit/KV-ViewingService/internal/api/handlers"
	"github.com/keyvisit/KV-ViewingService/internal/service/credentials"
	"github.com/keyvisit/KV-ViewingService/internal/service/credentials/models"
)

const (
	msgInvalidViewingID = "некорректный ID просмотра"
	msgNotFound         = "код доступа не найден"
	msgForbidden        = "доступ запрещен"
	msgOutsideWindow    = "код доступа недоступен вне окна просмотра"
)

type Handler struct {
	service CredentialService
	logger  Logger
}

func NewHandler(service CredentialService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/viewings/{viewingId}/access-code
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	viewingID, err := strconv.ParseInt(vars["viewingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /viewings/{id}/access-code - Invalid viewing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidViewingID)
		return
	}

	userID, err := handlers.UserID(r)
	if err != nil {
		h.logger.Warn("GET /viewings/{id}/access-code - Missing user header: %v", err)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.Reveal(r.Context(), &models.RevealRequest{
		ReservationID: viewingID,
		UserID:        userID,
		At:            time.Now(),
	})
	if err != nil {
		switch {
		case errors.Is(err, credentials.ErrReservationNotFound),
			errors.Is(err, credentials.ErrCredentialNotFound):
			h.logger.Warn("GET /viewings/{id}/access-code - Not found: viewing_id=%d", viewingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, credentials.ErrAccessDenied):
			h.logger.Warn("GET /viewings/{id}/access-code - Access denied: viewing_id=%d, user_id=%d",
				viewingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, credentials.ErrOutsideWindow):
			h.logger.Warn("GET /viewings/{id}/access-code - Outside window: viewing_id=%d", viewingID)
			handlers.RespondForbidden(w, msgOutsideWindow)

		default:
			h.logger.Error("GET /viewings/{id}/access-code - Failed to reveal code: viewing_id=%d, error=%v",
				viewingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Код в логи не пишем
	h.logger.Info("GET /viewings/{id}/access-code - Code revealed: viewing_id=%d, user_id=%d",
		viewingID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
