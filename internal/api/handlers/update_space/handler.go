package update_space

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/service/spaces/models"
)

const (
	msgInvalidSpaceID     = "некорректный ID места"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "не указан пользователь"
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

// Handle PUT /api/v1/spaces/{spaceId}
// Меняет только признак isDeleted; удаленное место можно вернуть в работу.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathInt64(r, "spaceId")
	if err != nil {
		h.logger.Warn("PUT /spaces/{id} - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	actingUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /spaces/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateSpaceRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("PUT /spaces/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	space, err := h.service.SetDeleted(r.Context(), spaceID, *req.IsDeleted, actingUserID)
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "PUT /spaces/{id}", err)
		return
	}

	h.logger.Info("PUT /spaces/{id} - Space updated: space_id=%d, is_deleted=%t", space.ID, space.IsDeleted)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSpace(space))
}
