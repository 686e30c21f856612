package update_booking

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "не указан пользователь"
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

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actingUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	start, err := h.resolver.Resolve(req.Start)
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "PUT /bookings/{id}", err)
		return
	}
	end, err := h.resolver.Resolve(req.End)
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "PUT /bookings/{id}", err)
		return
	}

	booking, err := h.service.UpdateBooking(r.Context(), &models.UpdateBookingRequest{
		BookingID:    bookingID,
		ActingUserID: actingUserID,
		UserID:       req.UserID,
		Interval:     domain.Interval{Start: start, End: end},
		SpaceID:      req.SpaceID,
	})
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "PUT /bookings/{id}", err)
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking updated: booking_id=%d, space_id=%d", booking.ID, booking.SpaceID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(booking))
}
