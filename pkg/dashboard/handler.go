package dashboard

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type statsDTO struct {
	ClientCount         int     `json:"clientCount"`
	ActiveProjectCount  int     `json:"activeProjects"`
	PendingInvoiceCount int     `json:"pendingInvoices"`
	Revenue             float64 `json:"revenue"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		log.Errorf("failed to get dashboard stats: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(statsDTO{
		ClientCount:         stats.ClientCount,
		ActiveProjectCount:  stats.ActiveProjectCount,
		PendingInvoiceCount: stats.PendingInvoiceCount,
		Revenue:             stats.Revenue,
	})
}
