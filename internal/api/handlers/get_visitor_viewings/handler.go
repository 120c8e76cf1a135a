package get_visitor_viewings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/keyvisit/KV-ViewingService/internal/api/handlers"
	"github.com/keyvisit/KV-ViewingService/internal/service/viewings"
	"github.com/keyvisit/KV-ViewingService/internal/service/viewings/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidStatus = "некорректный статус просмотра"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/users/{userId}/viewings?status=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pathUserID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/viewings - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	authUserID, err := handlers.UserID(r)
	if err != nil {
		h.logger.Warn("GET /users/{id}/viewings - Missing user header: %v", err)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	// Свою историю просмотров видит только сам посетитель
	if pathUserID != authUserID {
		h.logger.Warn("GET /users/{id}/viewings - Access denied: path_user_id=%d, auth_user_id=%d",
			pathUserID, authUserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req := &models.GetVisitorViewingsRequest{VisitorID: pathUserID}
	if raw := r.URL.Query().Get("status"); raw != "" {
		req.Status = &raw
	}

	result, err := h.service.GetVisitorViewings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, viewings.ErrInvalidInput):
			h.logger.Warn("GET /users/{id}/viewings - Invalid status filter: user_id=%d", pathUserID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /users/{id}/viewings - Failed to get viewings: user_id=%d, error=%v",
				pathUserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
