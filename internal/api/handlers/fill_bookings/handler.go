package fill_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
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

// Handle POST /api/v1/users/{userId}/bookings/fill
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("POST /users/{userId}/bookings/fill - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	actingUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /users/{userId}/bookings/fill - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req FillBookingsRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /users/{userId}/bookings/fill - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	start, err := h.resolver.Resolve(req.Start)
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "POST /users/{userId}/bookings/fill", err)
		return
	}
	end, err := h.resolver.Resolve(req.End)
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "POST /users/{userId}/bookings/fill", err)
		return
	}

	created, err := h.service.FillDaysWithBookings(r.Context(), &models.FillDaysRequest{
		ActingUserID: actingUserID,
		UserID:       userID,
		Start:        start,
		End:          end,
		SpaceID:      req.SpaceID,
	})
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "POST /users/{userId}/bookings/fill", err)
		return
	}

	h.logger.Info("POST /users/{userId}/bookings/fill - Bookings created: user_id=%d, count=%d", userID, len(created))
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainBookingList(created))
}
