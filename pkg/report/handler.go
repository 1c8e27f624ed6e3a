package report

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gestio-app/gestio/internal/rest"
	"github.com/gestio-app/gestio/internal/utils"
	log "github.com/sirupsen/logrus"
)

type monthlyRevenueDTO struct {
	Month  string  `json:"month"`
	Income float64 `json:"income"`
}

type projectHoursDTO struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
	Value float64 `json:"value"`
}

type clientRevenueDTO struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

type monthlyHoursDTO struct {
	Month       string  `json:"month"`
	Billable    float64 `json:"billable"`
	NonBillable float64 `json:"nonBillable"`
}

type summaryDTO struct {
	TotalRevenue       float64 `json:"totalRevenue"`
	BillableHours      float64 `json:"billableHours"`
	NonBillableHours   float64 `json:"nonBillableHours"`
	ActiveProjectCount int     `json:"activeProjects"`
	ActiveClientCount  int     `json:"activeClients"`
}

type reportDTO struct {
	Start           time.Time           `json:"start"`
	End             time.Time           `json:"end"`
	RevenueByMonth  []monthlyRevenueDTO `json:"revenueByMonth"`
	HoursByProject  []projectHoursDTO   `json:"hoursByProject"`
	RevenueByClient []clientRevenueDTO  `json:"revenueByClient"`
	HoursByMonth    []monthlyHoursDTO   `json:"hoursByMonth"`
	Summary         summaryDTO          `json:"summary"`
}

func toDTO(r Report) reportDTO {
	dto := reportDTO{
		Start:           r.Range.Start,
		End:             r.Range.End,
		RevenueByMonth:  make([]monthlyRevenueDTO, 0, len(r.RevenueByMonth)),
		HoursByProject:  make([]projectHoursDTO, 0, len(r.HoursByProject)),
		RevenueByClient: make([]clientRevenueDTO, 0, len(r.RevenueByClient)),
		HoursByMonth:    make([]monthlyHoursDTO, 0, len(r.HoursByMonth)),
		Summary: summaryDTO{
			TotalRevenue:       r.Summary.TotalRevenue,
			BillableHours:      r.Summary.BillableHours,
			NonBillableHours:   r.Summary.NonBillableHours,
			ActiveProjectCount: r.Summary.ActiveProjectCount,
			ActiveClientCount:  r.Summary.ActiveClientCount,
		},
	}
	for _, row := range r.RevenueByMonth {
		dto.RevenueByMonth = append(dto.RevenueByMonth, monthlyRevenueDTO(row))
	}
	for _, row := range r.HoursByProject {
		dto.HoursByProject = append(dto.HoursByProject, projectHoursDTO(row))
	}
	for _, row := range r.RevenueByClient {
		dto.RevenueByClient = append(dto.RevenueByClient, clientRevenueDTO(row))
	}
	for _, row := range r.HoursByMonth {
		dto.HoursByMonth = append(dto.HoursByMonth, monthlyHoursDTO(row))
	}
	return dto
}

type Handler struct {
	service  Service
	renderer *CsvRenderer
	clock    utils.Clock
}

func NewHandler(service Service, renderer *CsvRenderer, clock utils.Clock) *Handler {
	return &Handler{service: service, renderer: renderer, clock: clock}
}

func (h *Handler) resolveRange(r *http.Request) (DateRange, error) {
	query := r.URL.Query()
	var start, end time.Time
	if startParam := query.Get("start"); startParam != "" {
		parsed, err := time.Parse("2006-01-02", startParam)
		if err != nil {
			return DateRange{}, ErrInvalidRange
		}
		start = parsed
	}
	if endParam := query.Get("end"); endParam != "" {
		parsed, err := time.Parse("2006-01-02", endParam)
		if err != nil {
			return DateRange{}, ErrInvalidRange
		}
		// Inclusive through the whole end day.
		end = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return ResolveRange(query.Get("range"), start, end, h.clock.Now())
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	dateRange, err := h.resolveRange(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	}
	report, err := h.service.Generate(r.Context(), dateRange)
	if err != nil {
		log.Errorf("failed to generate report: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(toDTO(report))
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	dateRange, err := h.resolveRange(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: err.Error()})
		return
	}
	report, err := h.service.Generate(r.Context(), dateRange)
	if err != nil {
		log.Errorf("failed to generate report: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="report.csv"`)
	if err := h.renderer.Render(w, report); err != nil {
		log.Errorf("failed to render report csv: %v", err)
	}
}
