package app

import (
	"encoding/json"
	"net/http"

	"github.com/gestio-app/gestio/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Health
	r.HandleFunc("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.GetCurrent).Methods("GET")
	r.HandleFunc("/api/user", deps.UserHandler.Create).Methods("POST")
	r.HandleFunc("/api/user", deps.UserHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/user", deps.UserHandler.Update).Methods("PUT")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")
	r.HandleFunc("/api/user/{id}", deps.UserHandler.GetById).Methods("GET")
	r.HandleFunc("/api/user/{id}", deps.UserHandler.Delete).Methods("DELETE")

	// Clients
	r.HandleFunc("/api/clients", deps.ClientHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/clients", deps.ClientHandler.Create).Methods("POST")
	r.HandleFunc("/api/clients/{id}", deps.ClientHandler.GetById).Methods("GET")
	r.HandleFunc("/api/clients/{id}", deps.ClientHandler.Update).Methods("PUT")
	r.HandleFunc("/api/clients/{id}", deps.ClientHandler.Delete).Methods("DELETE")

	// Projects
	r.HandleFunc("/api/projects", deps.ProjectHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/projects", deps.ProjectHandler.Create).Methods("POST")
	r.HandleFunc("/api/projects/active", deps.ProjectHandler.GetActive).Methods("GET")
	r.HandleFunc("/api/projects/{id}", deps.ProjectHandler.GetById).Methods("GET")
	r.HandleFunc("/api/projects/{id}", deps.ProjectHandler.Update).Methods("PUT")
	r.HandleFunc("/api/projects/{id}", deps.ProjectHandler.Delete).Methods("DELETE")

	// Tasks
	r.HandleFunc("/api/tasks", deps.TaskHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/tasks", deps.TaskHandler.Create).Methods("POST")
	r.HandleFunc("/api/tasks/upcoming", deps.TaskHandler.GetUpcoming).Methods("GET")
	r.HandleFunc("/api/tasks/{id}", deps.TaskHandler.GetById).Methods("GET")
	r.HandleFunc("/api/tasks/{id}", deps.TaskHandler.Update).Methods("PUT")
	r.HandleFunc("/api/tasks/{id}", deps.TaskHandler.Delete).Methods("DELETE")

	// Time tracking
	r.HandleFunc("/api/time-entries", deps.TimeEntryHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/time-entries", deps.TimeEntryHandler.Create).Methods("POST")
	r.HandleFunc("/api/time-entries/{id}", deps.TimeEntryHandler.GetById).Methods("GET")
	r.HandleFunc("/api/time-entries/{id}", deps.TimeEntryHandler.Update).Methods("PUT")
	r.HandleFunc("/api/time-entries/{id}", deps.TimeEntryHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/timer/start", deps.TimeEntryHandler.StartTimer).Methods("POST")
	r.HandleFunc("/api/timer/stop", deps.TimeEntryHandler.StopTimer).Methods("POST")
	r.HandleFunc("/api/timer/current", deps.TimeEntryHandler.CurrentTimer).Methods("GET")

	// Invoices
	r.HandleFunc("/api/invoices", deps.InvoiceHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/invoices", deps.InvoiceHandler.Create).Methods("POST")
	r.HandleFunc("/api/invoices/{id}", deps.InvoiceHandler.GetById).Methods("GET")
	r.HandleFunc("/api/invoices/{id}", deps.InvoiceHandler.Update).Methods("PUT")
	r.HandleFunc("/api/invoices/{id}", deps.InvoiceHandler.Delete).Methods("DELETE")

	// Contracts
	r.HandleFunc("/api/contracts", deps.ContractHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/contracts", deps.ContractHandler.Create).Methods("POST")
	r.HandleFunc("/api/contracts/{id}", deps.ContractHandler.GetById).Methods("GET")
	r.HandleFunc("/api/contracts/{id}", deps.ContractHandler.Update).Methods("PUT")
	r.HandleFunc("/api/contracts/{id}", deps.ContractHandler.Delete).Methods("DELETE")

	// Calendar events
	r.HandleFunc("/api/events", deps.CalendarHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/events", deps.CalendarHandler.Create).Methods("POST")
	r.HandleFunc("/api/events/upcoming", deps.CalendarHandler.GetUpcoming).Methods("GET")
	r.HandleFunc("/api/events/{id}", deps.CalendarHandler.GetById).Methods("GET")
	r.HandleFunc("/api/events/{id}", deps.CalendarHandler.Update).Methods("PUT")
	r.HandleFunc("/api/events/{id}", deps.CalendarHandler.Delete).Methods("DELETE")

	// Activity feed
	r.HandleFunc("/api/activities", deps.ActivityHandler.GetRecent).Methods("GET")

	// Reports
	r.HandleFunc("/api/reports", deps.ReportHandler.Get).Methods("GET")
	r.HandleFunc("/api/reports/export", deps.ReportHandler.Export).Methods("GET")

	// Dashboard
	r.HandleFunc("/api/dashboard/stats", deps.DashboardHandler.GetStats).Methods("GET")

	// Google integration
	r.HandleFunc("/api/integrations/google/auth/login", deps.GoogleAuth.OAuthLogin).Methods("GET")
	r.HandleFunc("/api/integrations/google/auth/logout", deps.GoogleAuth.OAuthLogout).Methods("DELETE")
	r.HandleFunc("/api/integrations/google/auth/callback", deps.GoogleAuth.OAuthCallback).Methods("GET")
	r.HandleFunc("/api/integrations/google/calendars", deps.GoogleHandler.ListCalendars).Methods("GET")
	r.HandleFunc("/api/integrations/google/export", deps.GoogleHandler.ExportEvents).Methods("POST")
}
