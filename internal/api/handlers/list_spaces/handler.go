package list_spaces

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/spaces/models"
)

const (
	msgInvalidActive = "некорректный параметр active"
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

// Handle GET /api/v1/spaces?active=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if raw := r.URL.Query().Get("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /spaces - Invalid active flag: %v", err)
			handlers.RespondBadRequest(w, msgInvalidActive)
			return
		}
		activeOnly = parsed
	}

	var (
		result []*domain.ParkingSpace
		err    error
	)
	if activeOnly {
		result, err = h.service.GetAllActive(r.Context())
	} else {
		result, err = h.service.GetAll(r.Context())
	}
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /spaces", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSpaceList(result))
}
