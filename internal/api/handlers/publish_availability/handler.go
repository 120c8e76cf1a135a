package publish_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/keyvisit/KV-ViewingService/internal/api/handlers"
	publishAvailability "github.com/keyvisit/KV-ViewingService/internal/usecase/publish_availability"
)

const (
	msgInvalidPropertyID  = "некорректный ID объекта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgPropertyNotFound   = "объект не найден"
	msgPropertyNotListed  = "объект недоступен для публикации слотов"
	msgForbidden          = "доступ запрещен"
	msgInvalidInterval    = "некорректный интервал доступности"
	msgOverlapConflict    = "интервалы пересекаются с существующими слотами"
)

type Handler struct {
	useCase PublishAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase PublishAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/properties/{propertyId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /properties/{id}/slots - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	ownerID, err := handlers.UserID(r)
	if err != nil {
		h.logger.Warn("POST /properties/{id}/slots - Missing user header: %v", err)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req PublishAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /properties/{id}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(ownerID, propertyID))
	if err != nil {
		switch {
		case errors.Is(err, publishAvailability.ErrPropertyNotFound):
			h.logger.Warn("POST /properties/{id}/slots - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, publishAvailability.ErrPropertyNotListed):
			h.logger.Warn("POST /properties/{id}/slots - Property not listed: property_id=%d", propertyID)
			handlers.RespondBadRequest(w, msgPropertyNotListed)

		case errors.Is(err, publishAvailability.ErrAccessDenied):
			h.logger.Warn("POST /properties/{id}/slots - Access denied: property_id=%d, user_id=%d",
				propertyID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, publishAvailability.ErrInvalidInterval):
			h.logger.Warn("POST /properties/{id}/slots - Invalid interval: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, publishAvailability.ErrOverlapConflict):
			h.logger.Warn("POST /properties/{id}/slots - Overlap conflict: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondConflict(w, msgOverlapConflict)

		default:
			h.logger.Error("POST /properties/{id}/slots - Failed to publish availability: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /properties/{id}/slots - Published %d slots: property_id=%d, owner_id=%d",
		len(result.Slots), propertyID, ownerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
