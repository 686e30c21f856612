package get_space_free

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/clock"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	msgInvalidSpaceID   = "некорректный ID места"
	msgInvalidBookingID = "некорректный excludeBookingId"
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

// Handle GET /api/v1/spaces/{spaceId}/free?startDate=...&endDate=...&excludeBookingId=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spaceID, err := handlers.PathInt64(r, "spaceId")
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/free - Invalid space ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	excludeBookingID, err := handlers.QueryInt64(r, "excludeBookingId")
	if err != nil {
		h.logger.Warn("GET /spaces/{id}/free - Invalid excludeBookingId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	start, err := handlers.ResolveQuery(r, h.resolver, "startDate")
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /spaces/{id}/free", err)
		return
	}
	end, err := handlers.ResolveQuery(r, h.resolver, "endDate")
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /spaces/{id}/free", err)
		return
	}
	interval, err := domain.NewInterval(start, end)
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /spaces/{id}/free", err)
		return
	}

	free, err := h.service.IsSpaceFree(r.Context(), spaceID, interval, excludeBookingID)
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /spaces/{id}/free", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, SpaceFreeResponse{
		SpaceID: spaceID,
		Start:   clock.Format(interval.Start),
		End:     clock.Format(interval.End),
		Free:    free,
	})
}
