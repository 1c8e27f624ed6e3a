package timeentry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gestio-app/gestio/internal/rest"
	"github.com/gestio-app/gestio/internal/utils"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ActivityRecorder interface {
	Record(ctx context.Context, action, entityType string, entityId int, description string)
}

type entryDTO struct {
	Id          int        `json:"id,omitempty"`
	TaskId      *int       `json:"taskId,omitempty"`
	ProjectId   *int       `json:"projectId,omitempty"`
	Description string     `json:"description,omitempty"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	Duration    *float64   `json:"duration,omitempty"`
	Billable    bool       `json:"billable"`
	InvoiceId   *int       `json:"invoiceId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt,omitempty"`
}

// currentTimerDTO adds the elapsed seconds so a reloaded client can resume
// its ticking display without computing server-client clock drift.
type currentTimerDTO struct {
	entryDTO
	ElapsedSeconds int `json:"elapsedSeconds"`
}

func toDTO(e TimeEntry) entryDTO {
	return entryDTO{
		Id:          e.Id,
		TaskId:      e.TaskId,
		ProjectId:   e.ProjectId,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Duration:    e.Duration,
		Billable:    e.Billable,
		InvoiceId:   e.InvoiceId,
		CreatedAt:   e.CreatedAt,
	}
}

func fromDTO(dto entryDTO) TimeEntry {
	return TimeEntry{
		Id:          dto.Id,
		TaskId:      dto.TaskId,
		ProjectId:   dto.ProjectId,
		Description: dto.Description,
		StartTime:   dto.StartTime,
		EndTime:     dto.EndTime,
		Billable:    dto.Billable,
		InvoiceId:   dto.InvoiceId,
	}
}

type Handler struct {
	service  Service
	recorder ActivityRecorder
	clock    utils.Clock
}

func NewHandler(service Service, recorder ActivityRecorder, clock utils.Clock) *Handler {
	return &Handler{service: service, recorder: recorder, clock: clock}
}

func (h *Handler) StartTimer(w http.ResponseWriter, r *http.Request) {
	var dto entryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body"})
		return
	}
	started, err := h.service.Start(r.Context(), fromDTO(dto))
	if errors.Is(err, ErrTimerAlreadyRunning) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	} else if err != nil {
		log.Errorf("failed to start timer: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.recorder.Record(r.Context(), "create", "time_entry", started.Id, "Started timer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toDTO(started))
}

func (h *Handler) StopTimer(w http.ResponseWriter, r *http.Request) {
	running, err := h.service.Running(r.Context())
	if err != nil {
		log.Errorf("failed to look up running timer: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if running == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	stopped, err := h.service.Stop(r.Context(), running.Id)
	if err != nil {
		log.Errorf("failed to stop timer: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toDTO(stopped))
}

func (h *Handler) CurrentTimer(w http.ResponseWriter, r *http.Request) {
	running, err := h.service.Running(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if running == nil {
		_, _ = w.Write([]byte("null\n"))
		return
	}
	elapsed := int(h.clock.Now().Sub(running.StartTime).Seconds())
	_ = json.NewEncoder(w).Encode(currentTimerDTO{entryDTO: toDTO(*running), ElapsedSeconds: elapsed})
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	var entries []TimeEntry
	var err error
	fromParam := r.URL.Query().Get("from")
	toParam := r.URL.Query().Get("to")
	if fromParam != "" || toParam != "" {
		from, fromErr := time.Parse(time.RFC3339, fromParam)
		to, toErr := time.Parse(time.RFC3339, toParam)
		if fromErr != nil || toErr != nil || to.Before(from) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid time range"})
			return
		}
		entries, err = h.service.ListInRange(r.Context(), from, to)
	} else {
		entries, err = h.service.ListForUser(r.Context())
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	dtos := make([]entryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, toDTO(e))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dtos)
}

func (h *Handler) GetById(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid time entry ID"})
		return
	}
	e, err := h.service.GetById(r.Context(), id)
	if errors.Is(err, ErrEntryNotFound) {
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
	var dto entryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body"})
		return
	}
	created, err := h.service.CreateManual(r.Context(), fromDTO(dto))
	if errors.Is(err, ErrInvalidTimeRange) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	} else if err != nil {
		log.Errorf("failed to create time entry: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	description := "Started timer"
	if created.Duration != nil {
		description = fmt.Sprintf("Logged time: %.2f hours", *created.Duration)
	}
	h.recorder.Record(r.Context(), "create", "time_entry", created.Id, description)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toDTO(created))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid time entry ID"})
		return
	}
	var dto entryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body"})
		return
	}
	e := fromDTO(dto)
	e.Id = id
	updated, err := h.service.Update(r.Context(), e)
	if errors.Is(err, ErrEntryNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if errors.Is(err, ErrInvalidTimeRange) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	} else if err != nil {
		log.Errorf("failed to update time entry: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid time entry ID"})
		return
	}
	err = h.service.Delete(r.Context(), id)
	if errors.Is(err, ErrEntryNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
