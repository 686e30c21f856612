package get_spaces_by_ids

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/spaces/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle POST /api/v1/spaces/ids
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req GetSpacesByIDsRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /spaces/ids - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.GetByIDs(r.Context(), req.IDs)
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "POST /spaces/ids", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSpaceList(result))
}
