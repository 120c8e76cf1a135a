package list_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/keyvisit/KV-ViewingService/internal/api/handlers"
	listAvailability "github.com/keyvisit/KV-ViewingService/internal/usecase/list_availability"
	"github.com/keyvisit/KV-ViewingService/pkg/ptr"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта"
	msgInvalidWindow     = "некорректное окно фильтрации, ожидается RFC3339"
	msgPropertyNotFound  = "объект не найден"
)

type Handler struct {
	useCase ListAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ListAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/slots?from=...&to=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/slots - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	req := &listAvailability.ListRequest{PropertyID: propertyID}

	query := r.URL.Query()
	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /properties/{id}/slots - Invalid from: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWindow)
			return
		}
		req.From = ptr.Ptr(from)
	}
	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("GET /properties/{id}/slots - Invalid to: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWindow)
			return
		}
		req.To = ptr.Ptr(to)
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, listAvailability.ErrPropertyNotFound):
			h.logger.Warn("GET /properties/{id}/slots - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, listAvailability.ErrInvalidWindow):
			h.logger.Warn("GET /properties/{id}/slots - Invalid window: property_id=%d", propertyID)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("GET /properties/{id}/slots - Failed to list availability: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
