package get_bookings_by_dates

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

type Handler struct {
	service  BookingService
	resolver DateResolver
	logger   Logger
}

func NewHandler(service BookingService, resolver DateResolver, logger Logger) *Handler {
	return &Handler{
		service:  service,
		resolver: resolver,
		logger:   logger,
	}
}

// Handle GET /api/v1/bookings/dates?startDate=...&endDate=...
// Возвращает бронирования, целиком лежащие внутри диапазона.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	start, err := handlers.ResolveQuery(r, h.resolver, "startDate")
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /bookings/dates", err)
		return
	}
	end, err := handlers.ResolveQuery(r, h.resolver, "endDate")
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /bookings/dates", err)
		return
	}

	result, err := h.service.GetByDates(r.Context(), start, end)
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /bookings/dates", err)
		return
	}

	h.logger.Info("GET /bookings/dates - Bookings retrieved: count=%d", len(result))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBookingList(result))
}
