package remove_booking_day

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUserID    = "не указан пользователь"
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

// Handle DELETE /api/v1/bookings/{bookingId}/days/{date}
// Отвечает оставшимися частями бронирования (0, 1 или 2).
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id}/days/{date} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actingUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /bookings/{id}/days/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	day, err := handlers.ResolvePath(r, h.resolver, "date")
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "DELETE /bookings/{id}/days/{date}", err)
		return
	}

	remaining, err := h.service.RemoveDayFromBooking(r.Context(), bookingID, day, actingUserID)
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "DELETE /bookings/{id}/days/{date}", err)
		return
	}

	h.logger.Info("DELETE /bookings/{id}/days/{date} - Day removed: booking_id=%d, day=%s, remaining=%d",
		bookingID, day.Format(domain.DateFormat), len(remaining))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBookingList(remaining))
}
