package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appai "github.com/orangecat-xyz/orangecat-api/internal/application/ai"
	"github.com/orangecat-xyz/orangecat-api/internal/application/auth"
	appbitcoin "github.com/orangecat-xyz/orangecat-api/internal/application/bitcoin"
	"github.com/orangecat-xyz/orangecat-api/internal/application/bookings"
	"github.com/orangecat-xyz/orangecat-api/internal/application/payments"
	"github.com/orangecat-xyz/orangecat-api/internal/application/ports"
	"github.com/orangecat-xyz/orangecat-api/internal/application/usecase"
	infraai "github.com/orangecat-xyz/orangecat-api/internal/infrastructure/ai"
	"github.com/orangecat-xyz/orangecat-api/internal/infrastructure/coingecko"
	"github.com/orangecat-xyz/orangecat-api/internal/infrastructure/feeds"
	"github.com/orangecat-xyz/orangecat-api/internal/infrastructure/lightning"
	"github.com/orangecat-xyz/orangecat-api/internal/infrastructure/mempool"
	infrapdf "github.com/orangecat-xyz/orangecat-api/internal/infrastructure/pdf"
	"github.com/orangecat-xyz/orangecat-api/internal/infrastructure/postgres"
	httpRouter "github.com/orangecat-xyz/orangecat-api/internal/interfaces/http"
	"github.com/orangecat-xyz/orangecat-api/pkg/config"
	"github.com/orangecat-xyz/orangecat-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.App.AutoMigrate {
		if err := postgres.Migrate(cfg.App.MigrationsDir, cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios
	profileRepo := postgres.NewProfileRepository(pool)
	actorRepo := postgres.NewActorRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	loanRepo := postgres.NewLoanRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	causeRepo := postgres.NewCauseRepository(pool)
	wishlistRepo := postgres.NewWishlistRepository(pool)
	orgRepo := postgres.NewOrganizationRepository(pool)
	groupRepo := postgres.NewGroupRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	refRepo := postgres.NewEntityRefRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	assistantRepo := postgres.NewAssistantRepository(pool)
	convRepo := postgres.NewConversationRepository(pool)
	creditRepo := postgres.NewCreditRepository(pool)
	followRepo := postgres.NewFollowRepository(pool)
	timelineRepo := postgres.NewTimelineRepository(pool)
	trackedRepo := postgres.NewTrackedTxRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Servicios externos
	explorer := mempool.NewClient(cfg.Bitcoin.MempoolAPI)
	prices := coingecko.NewClient(cfg.Bitcoin.CoingeckoAPI)
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	aiProviders := infraai.NewRegistry(cfg.AI)
	rssBuilder := feeds.NewRSSBuilder(cfg.App.PublicURL)

	var invoiceProvider ports.InvoiceProvider
	if cfg.Lightning.Provider == "lnbits" {
		invoiceProvider = lightning.NewLNBitsClient(cfg.Lightning.LNBitsURL, cfg.Lightning.LNBitsKey)
	} else {
		log.Warn().Msg("proveedor lightning mock activo: las facturas no son reales")
		invoiceProvider = lightning.NewMockProvider()
	}

	// Casos de uso
	authUC := auth.NewAuthUseCase(profileRepo, actorRepo, postgres.NewSignupTxRunner(pool), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	projectUC := usecase.NewProjectUseCase(projectRepo, timelineRepo)
	productUC := usecase.NewProductUseCase(productRepo, timelineRepo)
	serviceUC := usecase.NewServiceUseCase(serviceRepo, timelineRepo)
	loanUC := usecase.NewLoanUseCase(loanRepo, assetRepo, timelineRepo)
	assetUC := usecase.NewAssetUseCase(assetRepo, timelineRepo)
	causeUC := usecase.NewCauseUseCase(causeRepo, timelineRepo)
	wishlistUC := usecase.NewWishlistUseCase(wishlistRepo, refRepo)
	orgUC := usecase.NewOrganizationUseCase(orgRepo, groupRepo, actorRepo, timelineRepo)
	socialUC := usecase.NewSocialUseCase(followRepo, timelineRepo, actorRepo)
	bookingUC := bookings.NewUseCase(bookingRepo, assetRepo, serviceRepo)
	paymentUC := payments.NewUseCase(
		refRepo, productRepo, serviceRepo, paymentRepo, txRepo, timelineRepo,
		txRunner, invoiceProvider,
		log.With().Str("component", "payments").Logger(),
	)
	aiUC := appai.NewUseCase(
		assistantRepo, convRepo, creditRepo, aiProviders, cfg.AI.InitialCredits,
		log.With().Str("component", "ai").Logger(),
	)
	bitcoinUC := appbitcoin.NewUseCase(
		projectRepo, trackedRepo, explorer, prices, pdfGenerator,
		log.With().Str("component", "bitcoin").Logger(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "OrangeCat API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", httpRouter.MetricsHandler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProjectUC:      projectUC,
		ProductUC:      productUC,
		ServiceUC:      serviceUC,
		LoanUC:         loanUC,
		AssetUC:        assetUC,
		CauseUC:        causeUC,
		WishlistUC:     wishlistUC,
		OrganizationUC: orgUC,
		SocialUC:       socialUC,
		BookingUC:      bookingUC,
		PaymentUC:      paymentUC,
		AIUC:           aiUC,
		BitcoinUC:      bitcoinUC,
		RSS:            rssBuilder,
		JWTSecret:      cfg.JWT.Secret,
		RateLimit:      cfg.RateLimit,
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
