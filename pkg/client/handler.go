package client

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

type clientDTO struct {
	Id            int       `json:"id,omitempty"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city,omitempty"`
	Country       string    `json:"country,omitempty"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

func toDTO(c Client) clientDTO {
	return clientDTO{
		Id:            c.Id,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		City:          c.City,
		Country:       c.Country,
		ContactPerson: c.ContactPerson,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
	}
}

func fromDTO(dto clientDTO) Client {
	return Client{
		Id:            dto.Id,
		Name:          dto.Name,
		Email:         dto.Email,
		Phone:         dto.Phone,
		Address:       dto.Address,
		City:          dto.City,
		Country:       dto.Country,
		ContactPerson: dto.ContactPerson,
		Notes:         dto.Notes,
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
	clients, err := h.service.GetAll(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	dtos := make([]clientDTO, 0, len(clients))
	for _, c := range clients {
		dtos = append(dtos, toDTO(c))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dtos)
}

func (h *Handler) GetById(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid client ID"})
		return
	}
	c, err := h.service.GetById(r.Context(), id)
	if errors.Is(err, ErrClientNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toDTO(c))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto clientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body"})
		return
	}
	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if errors.Is(err, ErrClientDataInvalid) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	} else if err != nil {
		log.Errorf("failed to create client: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.recorder.Record(r.Context(), "create", "client", created.Id, "Added new client: "+created.Name)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toDTO(created))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid client ID"})
		return
	}
	var dto clientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body"})
		return
	}
	c := fromDTO(dto)
	c.Id = id
	updated, err := h.service.Update(r.Context(), c)
	if errors.Is(err, ErrClientNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if errors.Is(err, ErrClientDataInvalid) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	} else if err != nil {
		log.Errorf("failed to update client: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.recorder.Record(r.Context(), "update", "client", updated.Id, "Updated client: "+updated.Name)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid client ID"})
		return
	}
	err = h.service.Delete(r.Context(), id)
	if errors.Is(err, ErrClientNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.recorder.Record(r.Context(), "delete", "client", id, fmt.Sprintf("Deleted client #%d", id))
	w.WriteHeader(http.StatusNoContent)
}
