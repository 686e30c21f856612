package get_bookings_by_ids

import (
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

var msgTooManyIDs = fmt.Sprintf("за один запрос можно получить не более %d бронирований", maxIDs)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/ids
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req GetBookingsByIDsRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /bookings/ids - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if len(req.IDs) > maxIDs {
		h.logger.Warn("POST /bookings/ids - Too many ids: %d", len(req.IDs))
		handlers.RespondBadRequest(w, msgTooManyIDs)
		return
	}

	result, err := h.service.GetByIDs(r.Context(), req.IDs)
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "POST /bookings/ids", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBookingList(result))
}
