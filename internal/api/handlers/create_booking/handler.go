package create_booking

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

const (
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

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actingUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	interval, err := h.parseInterval(req.Start, req.End)
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "POST /bookings", err)
		return
	}

	ownerID := actingUserID
	if req.UserID != nil {
		ownerID = *req.UserID
	}

	booking, err := h.service.AddBookingAs(r.Context(), &models.AddBookingRequest{
		ActingUserID: actingUserID,
		UserID:       ownerID,
		Interval:     interval,
		SpaceID:      req.SpaceID,
	})
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "POST /bookings", err)
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d, space_id=%d",
		booking.ID, booking.UserID, booking.SpaceID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBooking(booking))
}

func (h *Handler) parseInterval(startToken, endToken string) (domain.Interval, error) {
	start, err := h.resolver.Resolve(startToken)
	if err != nil {
		return domain.Interval{}, err
	}
	end, err := h.resolver.Resolve(endToken)
	if err != nil {
		return domain.Interval{}, err
	}
	return domain.NewInterval(start, end)
}
