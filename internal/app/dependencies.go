package app

import (
	"github.com/gestio-app/gestio/internal/config"
	"github.com/gestio-app/gestio/internal/utils"
	"github.com/gestio-app/gestio/pkg/activity"
	"github.com/gestio-app/gestio/pkg/calendar"
	"github.com/gestio-app/gestio/pkg/client"
	"github.com/gestio-app/gestio/pkg/contract"
	"github.com/gestio-app/gestio/pkg/dashboard"
	"github.com/gestio-app/gestio/pkg/google"
	"github.com/gestio-app/gestio/pkg/invoice"
	"github.com/gestio-app/gestio/pkg/project"
	"github.com/gestio-app/gestio/pkg/report"
	"github.com/gestio-app/gestio/pkg/task"
	"github.com/gestio-app/gestio/pkg/timeentry"
	"github.com/gestio-app/gestio/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	UserService user.Service
	UserHandler *user.Handler

	ActivityService activity.Service
	ActivityHandler *activity.Handler

	ClientService client.Service
	ClientHandler *client.Handler

	ProjectService project.Service
	ProjectHandler *project.Handler

	TaskService task.Service
	TaskHandler *task.Handler

	TimeEntryService timeentry.Service
	TimeEntryHandler *timeentry.Handler

	InvoiceService invoice.Service
	InvoiceHandler *invoice.Handler

	ContractService contract.Service
	ContractHandler *contract.Handler

	CalendarService calendar.Service
	CalendarHandler *calendar.Handler

	ReportService     report.Service
	CsvReportRenderer *report.CsvRenderer
	ReportHandler     *report.Handler

	DashboardService dashboard.Service
	DashboardHandler *dashboard.Handler

	GoogleAuth    *google.GoogleAuth
	GoogleService google.Service
	GoogleHandler *google.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.ActivityService = activity.NewService(activity.NewPostgresRepository(db))
	deps.ActivityHandler = activity.NewHandler(deps.ActivityService)

	deps.ClientService = client.NewService(client.NewPostgresRepository(db))
	deps.ClientHandler = client.NewHandler(deps.ClientService, deps.ActivityService)

	deps.ProjectService = project.NewService(project.NewPostgresRepository(db), deps.Clock)
	deps.ProjectHandler = project.NewHandler(deps.ProjectService, deps.ActivityService)

	deps.TaskService = task.NewService(task.NewPostgresRepository(db), deps.Clock)
	deps.TaskHandler = task.NewHandler(deps.TaskService, deps.ActivityService)

	deps.TimeEntryService = timeentry.NewService(timeentry.NewPostgresRepository(db), deps.Clock)
	deps.TimeEntryHandler = timeentry.NewHandler(deps.TimeEntryService, deps.ActivityService, deps.Clock)

	deps.InvoiceService = invoice.NewService(invoice.NewPostgresRepository(db), deps.Clock)
	deps.InvoiceHandler = invoice.NewHandler(deps.InvoiceService, deps.ActivityService)

	deps.ContractService = contract.NewService(contract.NewPostgresRepository(db), deps.Clock)
	deps.ContractHandler = contract.NewHandler(deps.ContractService, deps.ActivityService)

	deps.CalendarService = calendar.NewService(calendar.NewPostgresRepository(db), deps.Clock)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarService, deps.ActivityService)

	deps.ReportService = report.NewService(deps.ClientService, deps.ProjectService, deps.InvoiceService,
		deps.TimeEntryService, cfg.Billing.HourlyRate)
	deps.CsvReportRenderer = report.NewCsvRenderer()
	deps.ReportHandler = report.NewHandler(deps.ReportService, deps.CsvReportRenderer, deps.Clock)

	deps.DashboardService = dashboard.NewService(deps.ClientService, deps.ProjectService, deps.InvoiceService, deps.Clock)
	deps.DashboardHandler = dashboard.NewHandler(deps.DashboardService)

	deps.GoogleAuth = google.NewGoogleAuth(db, deps.UserService, cfg)
	deps.GoogleService = google.NewService(deps.GoogleAuth, deps.CalendarService)
	deps.GoogleHandler = google.NewHandler(deps.GoogleService)

	return deps
}
