package create_space

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/spaces/models"
)

const (
	msgMissingUserID = "не указан пользователь"
)

type Handler struct {
	service SpaceService
	logger  Logger
}

func NewHandler(service SpaceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/spaces
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actingUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /spaces - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	space, err := h.service.Create(r.Context(), actingUserID)
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "POST /spaces", err)
		return
	}

	h.logger.Info("POST /spaces - Space created: space_id=%d, user_id=%d", space.ID, actingUserID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainSpace(space))
}
