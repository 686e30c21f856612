package get_empty_spaces

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/spaces/models"
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

// HandleDay GET /api/v1/spaces/empty/date/{date}
// Свободные на весь календарный день места.
func (h *Handler) HandleDay(w http.ResponseWriter, r *http.Request) {
	day, err := handlers.ResolvePath(r, h.resolver, "date")
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /spaces/empty/date/{date}", err)
		return
	}

	result, err := h.service.AvailableSpacesForDay(r.Context(), day)
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /spaces/empty/date/{date}", err)
		return
	}

	h.logger.Info("GET /spaces/empty/date/{date} - day=%s, empty=%d", day.Format(domain.DateFormat), len(result))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSpaceList(result))
}

// HandleRange GET /api/v1/spaces/empty/range?startDate=...&endDate=...
func (h *Handler) HandleRange(w http.ResponseWriter, r *http.Request) {
	start, err := handlers.ResolveQuery(r, h.resolver, "startDate")
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /spaces/empty/range", err)
		return
	}
	end, err := handlers.ResolveQuery(r, h.resolver, "endDate")
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /spaces/empty/range", err)
		return
	}

	interval, err := domain.NewInterval(start, end)
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /spaces/empty/range", err)
		return
	}

	result, err := h.service.AvailableSpaces(r.Context(), interval)
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /spaces/empty/range", err)
		return
	}

	h.logger.Info("GET /spaces/empty/range - interval=%s, empty=%d", interval, len(result))
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainSpaceList(result))
}
