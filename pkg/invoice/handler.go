package invoice

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

type itemDTO struct {
	Id          int      `json:"id,omitempty"`
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	UnitPrice   float64  `json:"unitPrice"`
	Amount      float64  `json:"amount"`
	ProjectId   *int     `json:"projectId,omitempty"`
	TaskId      *int     `json:"taskId,omitempty"`
}

type invoiceDTO struct {
	Id            int        `json:"id,omitempty"`
	InvoiceNumber string     `json:"invoiceNumber"`
	ClientId      int        `json:"clientId"`
	IssueDate     time.Time  `json:"issueDate"`
	DueDate       time.Time  `json:"dueDate"`
	Status        string     `json:"status,omitempty"`
	Subtotal      float64    `json:"subtotal"`
	Tax           *float64   `json:"tax,omitempty"`
	Discount      *float64   `json:"discount,omitempty"`
	Total         float64    `json:"total"`
	Notes         string     `json:"notes,omitempty"`
	Terms         string     `json:"terms,omitempty"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	PaidAmount    *float64   `json:"paidAmount,omitempty"`
	CreatedAt     time.Time  `json:"createdAt,omitempty"`
	Items         []itemDTO  `json:"items,omitempty"`
}

func toDTO(i Invoice) invoiceDTO {
	dto := invoiceDTO{
		Id:            i.Id,
		InvoiceNumber: i.InvoiceNumber,
		ClientId:      i.ClientId,
		IssueDate:     i.IssueDate,
		DueDate:       i.DueDate,
		Status:        string(i.Status),
		Subtotal:      i.Subtotal,
		Tax:           i.Tax,
		Discount:      i.Discount,
		Total:         i.Total,
		Notes:         i.Notes,
		Terms:         i.Terms,
		PaidAt:        i.PaidAt,
		PaidAmount:    i.PaidAmount,
		CreatedAt:     i.CreatedAt,
	}
	for _, item := range i.Items {
		dto.Items = append(dto.Items, itemDTO{
			Id:          item.Id,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
			ProjectId:   item.ProjectId,
			TaskId:      item.TaskId,
		})
	}
	return dto
}

func fromDTO(dto invoiceDTO) Invoice {
	i := Invoice{
		Id:            dto.Id,
		InvoiceNumber: dto.InvoiceNumber,
		ClientId:      dto.ClientId,
		IssueDate:     dto.IssueDate,
		DueDate:       dto.DueDate,
		Status:        Status(dto.Status),
		Subtotal:      dto.Subtotal,
		Tax:           dto.Tax,
		Discount:      dto.Discount,
		Total:         dto.Total,
		Notes:         dto.Notes,
		Terms:         dto.Terms,
		PaidAt:        dto.PaidAt,
		PaidAmount:    dto.PaidAmount,
	}
	for _, item := range dto.Items {
		i.Items = append(i.Items, Item{
			Id:          item.Id,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
			ProjectId:   item.ProjectId,
			TaskId:      item.TaskId,
		})
	}
	return i
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
		invoices []Invoice
		err      error
	)
	if clientParam := r.URL.Query().Get("clientId"); clientParam != "" {
		clientId, convErr := strconv.Atoi(clientParam)
		if convErr != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid client ID"})
			return
		}
		invoices, err = h.service.GetByClient(r.Context(), clientId)
	} else if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		invoices, err = h.service.GetByStatus(r.Context(), Status(statusParam))
	} else {
		invoices, err = h.service.GetAll(r.Context())
	}
	if errors.Is(err, ErrInvoiceDataInvalid) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	dtos := make([]invoiceDTO, 0, len(invoices))
	for _, i := range invoices {
		dtos = append(dtos, toDTO(i))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dtos)
}

func (h *Handler) GetById(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid invoice ID"})
		return
	}
	i, err := h.service.GetById(r.Context(), id)
	if errors.Is(err, ErrInvoiceNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toDTO(i))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto invoiceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body"})
		return
	}
	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if errors.Is(err, ErrInvoiceDataInvalid) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	} else if err != nil {
		log.Errorf("failed to create invoice: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.recorder.Record(r.Context(), "create", "invoice", created.Id,
		fmt.Sprintf("Created invoice #%s for %.2f", created.InvoiceNumber, created.Total))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(toDTO(created))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid invoice ID"})
		return
	}
	var dto invoiceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid request body"})
		return
	}
	i := fromDTO(dto)
	i.Id = id
	updated, err := h.service.Update(r.Context(), i)
	if errors.Is(err, ErrInvoiceNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if errors.Is(err, ErrInvoiceDataInvalid) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	} else if err != nil {
		log.Errorf("failed to update invoice: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.recorder.Record(r.Context(), "update", "invoice", updated.Id, "Updated invoice #"+updated.InvoiceNumber)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toDTO(updated))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: "Invalid invoice ID"})
		return
	}
	err = h.service.Delete(r.Context(), id)
	if errors.Is(err, ErrInvoiceNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h.recorder.Record(r.Context(), "delete", "invoice", id, fmt.Sprintf("Deleted invoice #%d", id))
	w.WriteHeader(http.StatusNoContent)
}
