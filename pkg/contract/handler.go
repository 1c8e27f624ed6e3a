package contract

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

type contractDTO struct {
	Id             int        `json:"id,omitempty"`
	Title          string     `json:"title"`
	ClientId       int        `json:"clientId"`
	ProjectId      *int       `json:"projectId,omitempty"`
	Status         string     `json:"status,omitempty"`
	StartDate      *time.Time `json:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	Value          *float64   `json:"value,omitempty"`
	Terms          string     `json:"terms,omitempty"`
	SignedByClient bool       `json:"signedByClient"`
	SignedByMe     bool       `json:"signedByMe"`
	SignedAt       *time.Time `json:"signedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt,omitempty"`
}

func toDTO(c Contract) contractDTO {
	return contractDTO{
		Id:             c.Id,
		Title:          c.Title,
		ClientId:       c.ClientId,
		ProjectId:      c.ProjectId,
		Status:         string(c.Status),
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		Value:          c.Value,
		Terms:          c.Terms,
		SignedByClient: c.SignedByClient,
		SignedByMe:     c.SignedByMe,
		SignedAt:       c.SignedAt,
		CreatedAt:      c.CreatedAt,
	}
}

func fromDTO(dto contractDTO) Contract {
	return Contract{
		Id:             dto.Id,
		Title:          dto.Title,
		ClientId:       dto.ClientId,
		ProjectId:      dto.ProjectId,
		Status:         Status(dto.Status),
		StartDate:      dto.StartDate,
		EndDate:        dto.EndDate,
		Value:          dto.Value,
		Terms:          dto.Terms,
		SignedByClient: dto.SignedByClient,
		SignedByMe:     dto.SignedByMe,
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
		contracts []Contract
		err       error
	)
	if clientParam := r.URL.Query().Get("clientId"); clientParam != "" {
		clientId, convErr := strconv.Atoi(clientParam)
		if convErr != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid client ID"})
			return
		}
		contracts, err = h.service.GetByClient(r.Context(), clientId)
	} else {
		contracts, err = h.service.GetAll(r.Context())
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	dtos := make([]contractDTO, 0, len(contracts))
	for _, c := range contracts {
		dtos = append(dtos, toDTO(c))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dtos)
}

func (h *Handler) GetById(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid contract ID"})
		return
	}
	c, err := h.service.GetById(r.Context(), id)
	if errors.Is(err, ErrContractNotFound) {
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
	var dto contractDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body"})
		return
	}
	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if errors.Is(err, ErrContractDataInvalid) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	} else if err != nil {
		log.Errorf("failed to create contract: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.recorder.Record(r.Context(), "create", "contract", created.Id, "Created contract: "+created.Title)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toDTO(created))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid contract ID"})
		return
	}
	var dto contractDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body"})
		return
	}
	c := fromDTO(dto)
	c.Id = id
	updated, err := h.service.Update(r.Context(), c)
	if errors.Is(err, ErrContractNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if errors.Is(err, ErrContractDataInvalid) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	} else if err != nil {
		log.Errorf("failed to update contract: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.recorder.Record(r.Context(), "update", "contract", updated.Id, "Updated contract: "+updated.Title)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid contract ID"})
		return
	}
	err = h.service.Delete(r.Context(), id)
	if errors.Is(err, ErrContractNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.recorder.Record(r.Context(), "delete", "contract", id, fmt.Sprintf("Deleted contract #%d", id))
	w.WriteHeader(http.StatusNoContent)
}
