package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/foodflow-api/internal/application/admin"
	"github.com/tu-usuario/foodflow-api/internal/application/analytics"
	"github.com/tu-usuario/foodflow-api/internal/application/attachments"
	"github.com/tu-usuario/foodflow-api/internal/application/auth"
	"github.com/tu-usuario/foodflow-api/internal/application/labtests"
	"github.com/tu-usuario/foodflow-api/internal/application/procurement"
	"github.com/tu-usuario/foodflow-api/internal/application/rnd"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	AttachmentSvc *attachments.Service
	ActivityUC    *analytics.ActivityUseCase
	PurchaseUC    *procurement.UseCase
	PurchasePDF   *procurement.PDFUseCase
	RNDUC         *rnd.UseCase
	LabUC         *labtests.UseCase
	ProvisionUC   *admin.ProvisionUseCase
	KnowledgeUC   *admin.KnowledgeUseCase
	ProfileRepo   repository.ProfileRepository
	JWTSecret     string
}

// roleNames convierte roles de entidad a los strings que espera RequireRole.
func roleNames(roles ...entity.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// Router registra las rutas de la API. El gating por rol replica la tabla de
// módulos de navegación: quien no ve el módulo tampoco puede llamar su API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/reset", authHandler.ResetPassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Navegación (cualquier rol autenticado; la tabla filtra por rol)
	navHandler := NewNavigationHandler()
	protected.Get("/navigation", navHandler.Compose)

	// Adjuntos (cualquier rol autenticado)
	attachmentHandler := NewAttachmentHandler(deps.AttachmentSvc)
	attachmentsGroup := protected.Group("/attachments")
	attachmentsGroup.Post("/", attachmentHandler.Upload)
	attachmentsGroup.Get("/", attachmentHandler.List)
	attachmentsGroup.Get("/:id/url", attachmentHandler.SignedURL)
	attachmentsGroup.Delete("/:id", attachmentHandler.Delete)

	// Compras
	purchaseRoles := RequireRole(roleNames(
		entity.RoleProcurementManager, entity.RoleCOO, entity.RoleCEO,
		entity.RoleTreasurer, entity.RoleAccountant, entity.RoleSalesManager,
		entity.RoleRDManager, entity.RoleAdmin,
	)...)
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC, deps.PurchasePDF)
	purchase := protected.Group("/purchase", purchaseRoles)
	purchase.Post("/requests", purchaseHandler.CreateRequest)
	purchase.Get("/requests", purchaseHandler.ListRequests)
	purchase.Get("/requests/:id", purchaseHandler.GetRequest)
	purchase.Post("/requests/:id/transition", purchaseHandler.TransitionRequest)
	purchase.Get("/requests/:id/invoices", purchaseHandler.ListInvoicesByRequest)
	purchase.Get("/requests/:id/logs", purchaseHandler.ListRequestLogs)
	purchase.Post("/invoices", purchaseHandler.CreateInvoice)
	purchase.Get("/invoices/:id", purchaseHandler.GetInvoice)
	purchase.Post("/invoices/:id/transition", purchaseHandler.TransitionInvoice)
	purchase.Get("/invoices/:id/pdf", purchaseHandler.DownloadInvoicePDF)

	// I+D
	rndRoles := RequireRole(roleNames(
		entity.RoleRDDev, entity.RoleRDManager, entity.RoleSalesManager, entity.RoleAdmin,
	)...)
	rndHandler := NewRNDHandler(deps.RNDUC)
	rndGroup := protected.Group("/rnd", rndRoles)
	rndGroup.Post("/requests", rndHandler.CreateRequest)
	rndGroup.Get("/requests", rndHandler.ListRequests)
	rndGroup.Get("/requests/:id", rndHandler.GetRequest)
	rndGroup.Post("/requests/:id/transition", rndHandler.Transition)
	rndGroup.Get("/requests/:id/recipes", rndHandler.ListRecipes)
	rndGroup.Post("/recipes", rndHandler.CreateRecipe)
	rndGroup.Post("/recipes/:id/copy", rndHandler.CopyRecipe)
	rndGroup.Get("/recipes/:id/samples", rndHandler.ListSamples)
	rndGroup.Post("/samples", rndHandler.CreateSample)

	// Laboratorio / planta piloto
	labRoles := RequireRole(roleNames(
		entity.RoleRDDev, entity.RoleRDManager, entity.RoleLabTech, entity.RoleAdmin,
	)...)
	labHandler := NewLabResultHandler(deps.LabUC)
	lab := protected.Group("/lab", labRoles)
	lab.Put("/results", labHandler.Upsert)
	lab.Get("/results/:sampleId/:testType", labHandler.Get)
	lab.Get("/samples/:sampleId/results", labHandler.ListBySample)
	lab.Post("/testing-result", labHandler.SetTestingResult)
	lab.Post("/decline", labHandler.DeclineFromTesting)

	// Base de conocimiento (lectura para cualquier rol autenticado)
	knowledgeHandler := NewKnowledgeHandler(deps.KnowledgeUC)
	knowledge := protected.Group("/knowledge")
	knowledge.Get("/documents", knowledgeHandler.List)
	knowledge.Get("/documents/:id", knowledgeHandler.Get)

	// Analítica de uso
	analyticsRoles := RequireRole(roleNames(
		entity.RoleAdmin, entity.RoleCEO, entity.RoleCOO,
	)...)
	activityHandler := NewActivityHandler(deps.ActivityUC)
	analyticsGroup := protected.Group("/analytics", analyticsRoles)
	analyticsGroup.Get("/activity/users", activityHandler.UserStats)
	analyticsGroup.Get("/activity/timeline", activityHandler.Timeline)
	analyticsGroup.Get("/activity/summary", activityHandler.Summary)

	// Administración (solo admin)
	adminHandler := NewAdminHandler(deps.ProvisionUC, deps.KnowledgeUC, deps.ProfileRepo)
	adminGroup := protected.Group("/admin", RequireRole(string(entity.RoleAdmin)))
	adminGroup.Post("/users", adminHandler.CreateUser)
	adminGroup.Get("/users", adminHandler.ListUsers)
	adminGroup.Post("/users/import", adminHandler.ImportUsers)
	adminGroup.Post("/users/password-reset", adminHandler.PasswordReset)
	adminGroup.Post("/knowledge/documents", adminHandler.CreateDocument)
	adminGroup.Delete("/knowledge/documents/:id", adminHandler.DeleteDocument)
	adminGroup.Post("/knowledge/ingest", adminHandler.TriggerIngest)
}
