package send_reminders

import (
	"errors"
	"net/http"

	"github.com/avilov/BOH-SchedulingService/internal/api/handlers"
	remindersSvc "github.com/avilov/BOH-SchedulingService/internal/service/reminders"
)

const (
	msgInvalidZone = "некорректная таймзона"
)

// RemindersResponse HTTP response model
type RemindersResponse struct {
	Zone          string `json:"zone"`
	RemindersSent int    `json:"remindersSent"`
}

type Handler struct {
	service     RemindersService
	defaultZone string
	logger      Logger
}

func NewHandler(service RemindersService, defaultZone string, logger Logger) *Handler {
	return &Handler{
		service:     service,
		defaultZone: defaultZone,
		logger:      logger,
	}
}

// Handle POST /internal/jobs/reminders?zone=Pacific/Honolulu
// Дергается планировщиком вечером накануне; без параметра zone
// используется зона сети по умолчанию.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	zone := r.URL.Query().Get("zone")
	if zone == "" {
		zone = h.defaultZone
	}

	sent, err := h.service.SendReminders(r.Context(), zone)
	if err != nil {
		switch {
		case errors.Is(err, remindersSvc.ErrInvalidInput):
			h.logger.Warn("POST /internal/jobs/reminders - Invalid zone %q: %v", zone, err)
			handlers.RespondBadRequest(w, msgInvalidZone)
		default:
			h.logger.Error("POST /internal/jobs/reminders - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /internal/jobs/reminders - %d reminder(s) sent for zone %s", sent, zone)
	handlers.RespondJSON(w, http.StatusOK, RemindersResponse{
		Zone:          zone,
		RemindersSent: sent,
	})
}
