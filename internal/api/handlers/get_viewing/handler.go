package get_viewing

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/keyvisit/KV-ViewingService/internal/api/handlers"
	"github.com/keyvisit/KV-ViewingService/internal/service/viewings"
)

const (
	msgInvalidViewingID = "некорректный ID просмотра"
	msgNotFound         = "просмотр не найден"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/viewings/{viewingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	viewingID, err := strconv.ParseInt(vars["viewingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /viewings/{id} - Invalid viewing ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidViewingID)
		return
	}

	userID, err := handlers.UserID(r)
	if err != nil {
		h.logger.Warn("GET /viewings/{id} - Missing user header: %v", err)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.GetByID(r.Context(), viewingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, viewings.ErrViewingNotFound):
			h.logger.Warn("GET /viewings/{id} - Viewing not found: viewing_id=%d", viewingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, viewings.ErrAccessDenied):
			h.logger.Warn("GET /viewings/{id} - Access denied: viewing_id=%d, user_id=%d", viewingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /viewings/{id} - Failed to get viewing: viewing_id=%d, error=%v", viewingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
