package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/WAKO-NZ/tap4service2-sub000/internal/audit"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/config"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/handlers"
	infraRepo "github.com/WAKO-NZ/tap4service2-sub000/internal/infra/repository"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/middleware"
	"github.com/WAKO-NZ/tap4service2-sub000/internal/notify"
	ucRequest "github.com/WAKO-NZ/tap4service2-sub000/internal/usecase/request"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, hub *notify.Hub) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	requestRepo := infraRepo.NewRequestGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	notice := time.Duration(cfg.CancelNoticeHours) * time.Hour

	// ======================================================
	// USE CASES — REQUEST LIFECYCLE
	// ======================================================
	createUC := ucRequest.NewCreateRequest(requestRepo, auditDispatcher, hub)
	assignUC := ucRequest.NewAssignRequest(requestRepo, auditDispatcher, hub)
	unassignUC := ucRequest.NewUnassignRequest(requestRepo, auditDispatcher, hub)
	rescheduleUC := ucRequest.NewRescheduleRequest(requestRepo, auditDispatcher, hub, notice)
	completeUC := ucRequest.NewCompleteRequest(requestRepo, auditDispatcher, hub)
	confirmUC := ucRequest.NewConfirmCompletion(requestRepo, auditDispatcher, hub)
	cancelUC := ucRequest.NewCancelRequest(requestRepo, auditDispatcher, hub, notice)

	proposeUC := ucRequest.NewProposeTime(requestRepo, auditDispatcher, hub)
	resolveUC := ucRequest.NewResolveProposal(requestRepo, auditDispatcher, hub)

	listMineUC := ucRequest.NewListCustomerRequests(requestRepo)
	listJobsUC := ucRequest.NewListTechnicianJobs(requestRepo)
	listAvailableUC := ucRequest.NewListAvailableJobs(requestRepo)
	listProposalsUC := ucRequest.NewListProposals(requestRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	requestHandler := handlers.NewRequestHandler(
		createUC,
		assignUC,
		unassignUC,
		rescheduleUC,
		completeUC,
		confirmUC,
		cancelUC,
		listMineUC,
		listJobsUC,
		listAvailableUC,
	)

	proposalHandler := handlers.NewProposalHandler(
		proposeUC,
		resolveUC,
		listProposalsUC,
	)

	wsHandler := handlers.NewWSHandler(hub)

	// ======================================================
	// NOTIFICATION CHANNEL
	// ======================================================
	r.GET("/ws", wsHandler.Serve)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/customers/register", authHandler.RegisterCustomer)
		api.POST("/customers/login", authHandler.LoginCustomer)
		api.POST("/technicians/register", authHandler.RegisterTechnician)
		api.POST("/technicians/login", authHandler.LoginTechnician)

		// ------------------------------
		// CUSTOMER
		// ------------------------------
		customer := api.Group("/")
		customer.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(middleware.RoleCustomer))
		{
			customer.GET("/customers/me", meHandler.GetCustomer)
			customer.PATCH("/customers/me", meHandler.UpdateCustomer)

			customer.POST("/requests", requestHandler.Create)
			customer.GET("/requests", requestHandler.ListMine)
			customer.PATCH("/requests/:id/reschedule", requestHandler.Reschedule)
			customer.PATCH("/requests/:id/confirm", requestHandler.Confirm)
			customer.PATCH("/requests/:id/cancel", requestHandler.Cancel)

			customer.GET("/requests/:id/proposals", proposalHandler.List)
			customer.PATCH("/requests/:id/proposals/:proposalId", proposalHandler.Resolve)
		}

		// ------------------------------
		// TECHNICIAN
		// ------------------------------
		technician := api.Group("/")
		technician.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(middleware.RoleTechnician))
		{
			technician.GET("/technicians/me", meHandler.GetTechnician)
			technician.PATCH("/technicians/me", meHandler.UpdateTechnician)

			technician.GET("/requests/available", requestHandler.ListAvailable)
			technician.GET("/requests/assigned", requestHandler.ListAssigned)
			technician.PATCH("/requests/:id/assign", requestHandler.Assign)
			technician.PATCH("/requests/:id/unassign", requestHandler.Unassign)
			technician.PATCH("/requests/:id/complete", requestHandler.Complete)

			technician.POST("/requests/:id/proposals", proposalHandler.Create)
		}
	}
}
