package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gestio-app/gestio/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ActivityRecorder interface {
	Record(ctx context.Context, action, entityType string, entityId int, description string)
}

type eventDTO struct {
	Id          int       `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	AllDay      bool      `json:"allDay"`
	ClientId    *int      `json:"clientId,omitempty"`
	ProjectId   *int      `json:"projectId,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

func toDTO(e Event) eventDTO {
	return eventDTO{
		Id:          e.Id,
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		AllDay:      e.AllDay,
		ClientId:    e.ClientId,
		ProjectId:   e.ProjectId,
		CreatedAt:   e.CreatedAt,
	}
}

func fromDTO(dto eventDTO) Event {
	return Event{
		Id:          dto.Id,
		Title:       dto.Title,
		Description: dto.Description,
		StartTime:   dto.StartTime,
		EndTime:     dto.EndTime,
		AllDay:      dto.AllDay,
		ClientId:    dto.ClientId,
		ProjectId:   dto.ProjectId,
	}
}

type Handler struct {
	service  Service
	recorder ActivityRecorder
}

func NewHandler(service Service, recorder ActivityRecorder) *Handler {
	return &Handler{service: service, recorder: recorder}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.GetAll(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeEvents(w, events)
}

func (h *Handler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid limit"})
			return
		}
		limit = parsed
	}
	events, err := h.service.GetUpcoming(r.Context(), limit)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeEvents(w, events)
}

func writeEvents(w http.ResponseWriter, events []Event) {
	dtos := make([]eventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, toDTO(e))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dtos)
}

func (h *Handler) GetById(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid event ID"})
		return
	}
	e, err := h.service.GetById(r.Context(), id)
	if errors.Is(err, ErrEventNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toDTO(e))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto eventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body"})
		return
	}
	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if errors.Is(err, ErrEventDataInvalid) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	} else if err != nil {
		log.Errorf("failed to create event: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.recorder.Record(r.Context(), "create", "event", created.Id, "Created event: "+created.Title)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toDTO(created))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid event ID"})
		return
	}
	var dto eventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body"})
		return
	}
	e := fromDTO(dto)
	e.Id = id
	updated, err := h.service.Update(r.Context(), e)
	if errors.Is(err, ErrEventNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if errors.Is(err, ErrEventDataInvalid) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	} else if err != nil {
		log.Errorf("failed to update event: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.recorder.Record(r.Context(), "update", "event", updated.Id, "Updated event: "+updated.Title)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid event ID"})
		return
	}
	err = h.service.Delete(r.Context(), id)
	if errors.Is(err, ErrEventNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.recorder.Record(r.Context(), "delete", "event", id, fmt.Sprintf("Deleted event #%d", id))
	w.WriteHeader(http.StatusNoContent)
}
