package get_user_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
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

// Handle GET /api/v1/users/{userId}/bookings?startDate=...&endDate=...
// Без параметров возвращаются все бронирования пользователя.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("GET /users/{userId}/bookings - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	start, err := handlers.ResolveOptionalQuery(r, h.resolver, "startDate")
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /users/{userId}/bookings", err)
		return
	}
	end, err := handlers.ResolveOptionalQuery(r, h.resolver, "endDate")
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /users/{userId}/bookings", err)
		return
	}

	result, err := h.service.GetUserBookings(r.Context(), userID, start, end)
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /users/{userId}/bookings", err)
		return
	}

	h.logger.Info("GET /users/{userId}/bookings - Bookings retrieved: user_id=%d, count=%d", userID, len(result))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBookingList(result))
}
