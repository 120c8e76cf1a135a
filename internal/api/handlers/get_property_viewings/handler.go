package get_property_viewings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/keyvisit/KV-ViewingService/internal/api/handlers"
	"github.com/keyvisit/KV-ViewingService/internal/service/viewings"
	"github.com/keyvisit/KV-ViewingService/internal/service/viewings/models"
	"github.com/keyvisit/KV-ViewingService/pkg/ptr"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта"
	msgInvalidFilter     = "некорректные параметры фильтрации"
	msgPropertyNotFound  = "объект не найден"
	msgForbidden         = "доступ запрещен"
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

// Handle GET /api/v1/properties/{propertyId}/viewings?slotId=...&from=...&to=...&status=...&includeTerminal=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	propertyID, err := strconv.ParseInt(vars["propertyId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/viewings - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	userID, err := handlers.UserID(r)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/viewings - Missing user header: %v", err)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	req, err := parseFilter(r, userID, propertyID)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/viewings - Invalid filter: property_id=%d, error=%v",
			propertyID, err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetPropertyViewings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, viewings.ErrPropertyNotFound):
			h.logger.Warn("GET /properties/{id}/viewings - Property not found: property_id=%d", propertyID)
			handlers.RespondNotFound(w, msgPropertyNotFound)

		case errors.Is(err, viewings.ErrAccessDenied):
			h.logger.Warn("GET /properties/{id}/viewings - Access denied: property_id=%d, user_id=%d",
				propertyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, viewings.ErrInvalidInput):
			h.logger.Warn("GET /properties/{id}/viewings - Invalid filter: property_id=%d", propertyID)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /properties/{id}/viewings - Failed to get viewings: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseFilter разбирает query-параметры фильтрации
func parseFilter(r *http.Request, userID, propertyID int64) (*models.GetPropertyViewingsRequest, error) {
	req := &models.GetPropertyViewingsRequest{
		UserID:     userID,
		PropertyID: propertyID,
	}

	query := r.URL.Query()

	if raw := query.Get("slotId"); raw != "" {
		slotID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.SlotID = ptr.Ptr(slotID)
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		req.From = ptr.Ptr(from)
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		req.To = ptr.Ptr(to)
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = ptr.Ptr(raw)
	}

	req.IncludeTerminal = query.Get("includeTerminal") == "true"

	return req, nil
}
