package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/foodflow-api/internal/application/admin"
	"github.com/tu-usuario/foodflow-api/internal/application/analytics"
	"github.com/tu-usuario/foodflow-api/internal/application/attachments"
	"github.com/tu-usuario/foodflow-api/internal/application/auth"
	"github.com/tu-usuario/foodflow-api/internal/application/labtests"
	"github.com/tu-usuario/foodflow-api/internal/application/procurement"
	"github.com/tu-usuario/foodflow-api/internal/application/rnd"
	inframail "github.com/tu-usuario/foodflow-api/internal/infrastructure/mail"
	infrapdf "github.com/tu-usuario/foodflow-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/foodflow-api/internal/infrastructure/postgres"
	infrastorage "github.com/tu-usuario/foodflow-api/internal/infrastructure/storage"
	infrawebhook "github.com/tu-usuario/foodflow-api/internal/infrastructure/webhook"
	httpRouter "github.com/tu-usuario/foodflow-api/internal/interfaces/http"
	"github.com/tu-usuario/foodflow-api/pkg/config"
	"github.com/tu-usuario/foodflow-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if err := postgres.UpMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Adaptadores de persistencia
	profileRepo := postgres.NewProfileRepository(pool)
	resetRepo := postgres.NewPasswordResetRepository(pool)
	attachmentRepo := postgres.NewAttachmentRepository(pool)
	requestRepo := postgres.NewPurchaseRequestRepository(pool)
	invoiceRepo := postgres.NewPurchaseInvoiceRepository(pool)
	purchaseLogRepo := postgres.NewPurchaseLogRepository(pool)
	rdRequestRepo := postgres.NewRDRequestRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	sampleRepo := postgres.NewSampleRepository(pool)
	rdEventRepo := postgres.NewRDEventRepository(pool)
	labResultRepo := postgres.NewLabResultRepository(pool)
	knowledgeRepo := postgres.NewKnowledgeRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	workflowStore := postgres.NewWorkflowStore(pool)

	// Clientes de infraestructura
	storageClient := infrastorage.NewClient(cfg.Storage)
	mailClient := inframail.NewClient(cfg.Mail)
	webhookClient := infrawebhook.NewClient(cfg.KB)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)

	// Casos de uso
	authUC := auth.NewAuthUseCase(profileRepo, resetRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	attachmentSvc := attachments.NewService(storageClient, attachmentRepo, log)
	activityUC := analytics.NewActivityUseCase(profileRepo, activityRepo)
	purchaseUC := procurement.NewUseCase(requestRepo, invoiceRepo, purchaseLogRepo, workflowStore, log)
	purchasePDF := procurement.NewPDFUseCase(invoiceRepo, requestRepo, profileRepo, pdfGenerator)
	rndUC := rnd.NewUseCase(rdRequestRepo, recipeRepo, sampleRepo, rdEventRepo, profileRepo, workflowStore, log)
	labUC := labtests.NewUseCase(labResultRepo, sampleRepo, workflowStore)
	provisionUC := admin.NewProvisionUseCase(profileRepo, resetRepo, mailClient, cfg.App.BaseURL, log)
	knowledgeUC := admin.NewKnowledgeUseCase(knowledgeRepo, webhookClient, storageClient, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FoodFlow API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		AttachmentSvc: attachmentSvc,
		ActivityUC:    activityUC,
		PurchaseUC:    purchaseUC,
		PurchasePDF:   purchasePDF,
		RNDUC:         rndUC,
		LabUC:         labUC,
		ProvisionUC:   provisionUC,
		KnowledgeUC:   knowledgeUC,
		ProfileRepo:   profileRepo,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
