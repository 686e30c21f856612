package get_full_days

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
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

// Handle GET /api/v1/spaces/full-days?month=...
// month любая дата нужного месяца; без параметра берется текущий месяц.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ref, err := handlers.ResolveOptionalQuery(r, h.resolver, "month")
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /spaces/full-days", err)
		return
	}

	days, err := h.service.FullDaysOfMonth(r.Context(), ref)
	if err != nil {
		handlers.RespondServiceError(w, h.logger, "GET /spaces/full-days", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDays(days))
}
