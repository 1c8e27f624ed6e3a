package activity

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gestio-app/gestio/internal/rest"
)

type activityDTO struct {
	Id          int       `json:"id"`
	Action      string    `json:"action"`
	EntityType  string    `json:"entityType"`
	EntityId    int       `json:"entityId"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid limit"})
			return
		}
		limit = parsed
	}
	activities, err := h.service.GetRecent(r.Context(), limit)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	dtos := make([]activityDTO, 0, len(activities))
	for _, a := range activities {
		dtos = append(dtos, activityDTO{
			Id:          a.Id,
			Action:      a.Action,
			EntityType:  a.EntityType,
			EntityId:    a.EntityId,
			Description: a.Description,
			CreatedAt:   a.CreatedAt,
		})
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dtos)
}
