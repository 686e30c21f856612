package get_empty_space_count

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type Handler struct {
	service  AvailabilityService
	resolver DateResolver
	logger   Logger
}

func NewHandler(service AvailabilityService, resolver DateResolver, logger Logger) *Handler {
	return &Handler{
		service:  service,
		resolver: resolver,
		logger:   logger,
	}
}

// Handle GET /api/v1/spaces/empty/amount/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	day, err := handlers.ResolvePath(r, h.resolver, "date")
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /spaces/empty/amount/{date}", err)
		return
	}

	count, err := h.service.EmptySpaceCountForDay(r.Context(), day)
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /spaces/empty/amount/{date}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, EmptySpaceCountResponse{
		Date:        day.Format(domain.DateFormat),
		EmptySpaces: count,
	})
}
