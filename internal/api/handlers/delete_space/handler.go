package delete_space

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
)

const (
	msgInvalidSpaceID = "некорректный ID места"
	msgMissingUserID  = "не указан пользователь"
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

// Handle DELETE /api/v1/spaces/{spaceId}
// Место помечается удаленным; существующие бронирования на нем сохраняются.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathInt64(r, "spaceId")
	if err != nil {
		h.logger.Warn("DELETE /spaces/{id} - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	actingUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /spaces/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), spaceID, actingUserID); err != nil {
		handlers.RespondServiceError(w, h.logger, "DELETE /spaces/{id}", err)
		return
	}

	h.logger.Info("DELETE /spaces/{id} - Space deleted: space_id=%d, user_id=%d", spaceID, actingUserID)
	handlers.RespondNoContent(w)
}
