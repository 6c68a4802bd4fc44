package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/edu-crm/internal/audit"
	"github.com/BruksfildServices01/edu-crm/internal/domain/account"
	"github.com/BruksfildServices01/edu-crm/internal/domain/appointment"
	"github.com/BruksfildServices01/edu-crm/internal/domain/lead"
	"github.com/BruksfildServices01/edu-crm/internal/domain/maintenance"
	"github.com/BruksfildServices01/edu-crm/internal/domain/metrics"
	"github.com/BruksfildServices01/edu-crm/internal/domain/note"
	"github.com/BruksfildServices01/edu-crm/internal/domain/unit"
	"github.com/BruksfildServices01/edu-crm/internal/extraction"
	"github.com/BruksfildServices01/edu-crm/internal/handlers"
	"github.com/BruksfildServices01/edu-crm/internal/logger"
	"github.com/BruksfildServices01/edu-crm/internal/middleware"
	"github.com/BruksfildServices01/edu-crm/internal/observability"
	"github.com/BruksfildServices01/edu-crm/internal/token"
	ucAppointment "github.com/BruksfildServices01/edu-crm/internal/usecase/appointment"
	ucAuth "github.com/BruksfildServices01/edu-crm/internal/usecase/auth"
	ucEvents "github.com/BruksfildServices01/edu-crm/internal/usecase/events"
	ucIngestion "github.com/BruksfildServices01/edu-crm/internal/usecase/ingestion"
	ucLead "github.com/BruksfildServices01/edu-crm/internal/usecase/lead"
	ucMaintenance "github.com/BruksfildServices01/edu-crm/internal/usecase/maintenance"
	ucMetrics "github.com/BruksfildServices01/edu-crm/internal/usecase/metrics"
	ucNote "github.com/BruksfildServices01/edu-crm/internal/usecase/note"
	ucUnit "github.com/BruksfildServices01/edu-crm/internal/usecase/unit"
)

// Dependencies reúne a infraestrutura já montada (postgres ou memória,
// redis ou locks em processo).
type Dependencies struct {
	Leads        lead.Repository
	Appointments appointment.Repository
	Units        unit.Repository
	Accounts     account.Repository
	Notes        note.Repository
	Metrics      metrics.Repository
	Maintenance  maintenance.Repository
	Events       audit.Store

	Locker  ucIngestion.ContactLocker
	Reports ucMetrics.ObjectStore // nil desliga o arquivamento
	Audit   *audit.Dispatcher
	Issuer  *token.Issuer
	Log     *zap.Logger

	Location         *time.Location
	DefaultTenantID  uuid.UUID
	DashboardTimeout time.Duration

	// EmailCheck substitui a validação de domínio (testes).
	EmailCheck func(email string) bool
}

func RegisterRoutes(r *gin.Engine, d Dependencies) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(logger.Middleware(d.Log))
	r.Use(observability.Middleware())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", observability.Handler())

	// ======================================================
	// 🧠 USE CASES — AUTH / UNITS
	// ======================================================
	registerUC := ucAuth.NewRegister(d.Accounts, d.Issuer, d.Audit, d.Log)
	if d.EmailCheck != nil {
		registerUC.WithEmailCheck(d.EmailCheck)
	}
	loginUC := ucAuth.NewLogin(d.Accounts, d.Issuer)
	meUC := ucAuth.NewMe(d.Accounts)

	listUnitsUC := ucUnit.NewListUnits(d.Units)
	createUnitUC := ucUnit.NewCreateUnit(d.Units, d.Audit)

	// ======================================================
	// 🧠 USE CASES — LEADS
	// ======================================================
	formUC := ucIngestion.NewIngestForm(d.Leads, d.Units, d.Locker, d.Audit, d.Log)
	whatsappUC := ucIngestion.NewIngestWhatsApp(
		d.Leads,
		d.Units,
		extraction.NewHeuristic(),
		d.Locker,
		d.Audit,
		d.Log,
		d.DefaultTenantID,
	)

	listLeadsUC := ucLead.NewListLeads(d.Leads)
	pipelineUC := ucLead.NewPipelineBoard(d.Leads)
	getLeadUC := ucLead.NewGetLead(d.Leads)
	interactionsUC := ucLead.NewListInteractions(d.Leads)
	updateLeadUC := ucLead.NewUpdateLead(d.Leads, d.Audit)
	enrollLeadUC := ucLead.NewEnrollLead(d.Leads, d.Audit)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS / NOTES
	// ======================================================
	listAppointmentsUC := ucAppointment.NewListAppointments(d.Appointments, d.Location)
	scheduleUC := ucAppointment.NewScheduleAppointment(d.Appointments, d.Leads, d.Audit, d.Log)
	changeStatusUC := ucAppointment.NewChangeAppointmentStatus(d.Appointments, d.Audit)

	listNotesUC := ucNote.NewListNotes(d.Notes, d.Leads)
	createNoteUC := ucNote.NewCreateNote(d.Notes, d.Leads, d.Audit)
	deleteNoteUC := ucNote.NewDeleteNote(d.Notes, d.Audit)

	// ======================================================
	// 🧠 USE CASES — METRICS / ADMIN
	// ======================================================
	dashboardUC := ucMetrics.NewDashboard(d.Metrics, d.Log, d.Location, d.DashboardTimeout)
	archiveUC := ucMetrics.NewArchiveReport(dashboardUC, d.Reports, d.Audit)

	integrityUC := ucMaintenance.NewCheckIntegrity(d.Maintenance)
	purgeUC := ucMaintenance.NewPurgeOrphans(d.Maintenance, d.Log)

	listEventsUC := ucEvents.NewListEvents(d.Events, d.Location)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, meUC)
	unitHandler := handlers.NewUnitHandler(listUnitsUC, createUnitUC)
	publicHandler := handlers.NewPublicHandler(formUC, whatsappUC)

	leadHandler := handlers.NewLeadHandler(
		listLeadsUC,
		pipelineUC,
		getLeadUC,
		interactionsUC,
		updateLeadUC,
		enrollLeadUC,
		formUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		listAppointmentsUC,
		scheduleUC,
		changeStatusUC,
	)

	noteHandler := handlers.NewNoteHandler(listNotesUC, createNoteUC, deleteNoteUC)
	metricsHandler := handlers.NewMetricsHandler(dashboardUC, archiveUC)
	maintenanceHandler := handlers.NewMaintenanceHandler(integrityUC, purgeUC)
	eventsHandler := handlers.NewEventsHandler(listEventsUC)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		api.POST("/public/units/:unit_id/leads", publicHandler.CreateLead)
		api.POST("/whatsapp/webhook", publicHandler.WhatsAppWebhook)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.Auth(d.Issuer))
		{
			secured.GET("/me", authHandler.Me)

			secured.GET("/units", unitHandler.List)
			secured.POST("/units", middleware.RequireAdmin(), unitHandler.Create)

			// ------------------------------
			// LEADS
			// ------------------------------
			secured.GET("/leads", leadHandler.List)
			secured.GET("/leads/pipeline", leadHandler.Pipeline)
			secured.GET("/leads/:id", leadHandler.Get)
			secured.GET("/leads/:id/interactions", leadHandler.Interactions)
			secured.POST("/leads", leadHandler.Create)
			secured.PATCH("/leads/:id", leadHandler.Update)
			secured.POST("/leads/:id/enroll", leadHandler.Enroll)

			// ------------------------------
			// AGENDAMENTOS
			// ------------------------------
			secured.GET("/agendamentos", appointmentHandler.List)
			secured.POST("/agendamentos", appointmentHandler.Create)
			secured.PATCH("/agendamentos/:id/status", appointmentHandler.ChangeStatus)

			// ------------------------------
			// NOTES
			// ------------------------------
			secured.GET("/notes", noteHandler.List)
			secured.POST("/notes", noteHandler.Create)
			secured.DELETE("/notes/:id", noteHandler.Delete)

			// ------------------------------
			// METRICS
			// ------------------------------
			secured.GET("/metrics/dashboard", metricsHandler.Dashboard)
			secured.POST("/metrics/reports/archive", middleware.RequireAdmin(), metricsHandler.Archive)

			// ------------------------------
			// ADMIN
			// ------------------------------
			secured.GET("/events", middleware.RequireAdmin(), eventsHandler.List)

			master := secured.Group("/maintenance")
			master.Use(middleware.RequireMaster())
			{
				master.GET("/integrity", maintenanceHandler.Integrity)
				master.DELETE("/orphans", maintenanceHandler.PurgeOrphans)
			}
		}
	}
}
