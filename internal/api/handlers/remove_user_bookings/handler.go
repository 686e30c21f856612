package remove_user_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "не указан пользователь"
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

// Handle DELETE /api/v1/users/{userId}/bookings?startDate=...&endDate=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("DELETE /users/{userId}/bookings - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	actingUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /users/{userId}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	start, err := handlers.ResolveQuery(r, h.resolver, "startDate")
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "DELETE /users/{userId}/bookings", err)
		return
	}
	end, err := handlers.ResolveQuery(r, h.resolver, "endDate")
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "DELETE /users/{userId}/bookings", err)
		return
	}

	removed, err := h.service.RemoveBookingsFromDaysInRange(r.Context(), &models.RemoveDaysRequest{
		ActingUserID: actingUserID,
		UserID:       userID,
		Start:        start,
		End:          end,
	})
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "DELETE /users/{userId}/bookings", err)
		return
	}

	h.logger.Info("DELETE /users/{userId}/bookings - Bookings removed: user_id=%d, count=%d", userID, removed)
	handlers.RespondJSON(w, http.StatusOK, RemoveUserBookingsResponse{UserID: userID, Removed: removed})
}
