package project

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

type projectDTO struct {
	Id          int        `json:"id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ClientId    int        `json:"clientId"`
	Status      string     `json:"status,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Budget      *float64   `json:"budget,omitempty"`
	Progress    int        `json:"progress"`
	CreatedAt   time.Time  `json:"createdAt,omitempty"`
}

func toDTO(p Project) projectDTO {
	return projectDTO{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		ClientId:    p.ClientId,
		Status:      string(p.Status),
		StartDate:   p.StartDate,
		Deadline:    p.Deadline,
		CompletedAt: p.CompletedAt,
		Budget:      p.Budget,
		Progress:    p.Progress,
		CreatedAt:   p.CreatedAt,
	}
}

func fromDTO(dto projectDTO) Project {
	return Project{
		Id:          dto.Id,
		Name:        dto.Name,
		Description: dto.Description,
		ClientId:    dto.ClientId,
		Status:      Status(dto.Status),
		StartDate:   dto.StartDate,
		Deadline:    dto.Deadline,
		Budget:      dto.Budget,
		Progress:    dto.Progress,
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
	var (
		projects []Project
		err      error
	)
	if clientParam := r.URL.Query().Get("clientId"); clientParam != "" {
		clientId, convErr := strconv.Atoi(clientParam)
		if convErr != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid client ID"})
			return
		}
		projects, err = h.service.GetByClient(r.Context(), clientId)
	} else {
		projects, err = h.service.GetAll(r.Context())
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	dtos := make([]projectDTO, 0, len(projects))
	for _, p := range projects {
		dtos = append(dtos, toDTO(p))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dtos)
}

func (h *Handler) GetActive(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.GetActive(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	dtos := make([]projectDTO, 0, len(projects))
	for _, p := range projects {
		dtos = append(dtos, toDTO(p))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dtos)
}

func (h *Handler) GetById(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid project ID"})
		return
	}
	p, err := h.service.GetById(r.Context(), id)
	if errors.Is(err, ErrProjectNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toDTO(p))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto projectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body"})
		return
	}
	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if errors.Is(err, ErrProjectDataInvalid) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	} else if err != nil {
		log.Errorf("failed to create project: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.recorder.Record(r.Context(), "create", "project", created.Id, "Created new project: "+created.Name)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toDTO(created))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid project ID"})
		return
	}
	var dto projectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body"})
		return
	}
	p := fromDTO(dto)
	p.Id = id
	updated, err := h.service.Update(r.Context(), p)
	if errors.Is(err, ErrProjectNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if errors.Is(err, ErrProjectDataInvalid) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	} else if err != nil {
		log.Errorf("failed to update project: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.recorder.Record(r.Context(), "update", "project", updated.Id, "Updated project: "+updated.Name)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid project ID"})
		return
	}
	err = h.service.Delete(r.Context(), id)
	if errors.Is(err, ErrProjectNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.recorder.Record(r.Context(), "delete", "project", id, fmt.Sprintf("Deleted project #%d", id))
	w.WriteHeader(http.StatusNoContent)
}
