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

	"github.com/kossodo/merch-api/internal/application/inventory"
	"github.com/kossodo/merch-api/internal/application/request"
	"github.com/kossodo/merch-api/internal/infrastructure/mail"
	"github.com/kossodo/merch-api/internal/infrastructure/notify"
	infrapdf "github.com/kossodo/merch-api/internal/infrastructure/pdf"
	"github.com/kossodo/merch-api/internal/infrastructure/postgres"
	"github.com/kossodo/merch-api/internal/infrastructure/rabbitmq"
	httpRouter "github.com/kossodo/merch-api/internal/interfaces/http"
	"github.com/kossodo/merch-api/pkg/config"
	"github.com/kossodo/merch-api/pkg/logger"
)

const notifySendTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("addr", cfg.HTTP.Addr()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de PostgreSQL")
	}
	defer pool.Close()

	// Sin base de datos el servidor igual arranca; cada endpoint responde 500 hasta que vuelva.
	if err := postgres.Ping(ctx, pool); err != nil {
		log.Warn().Err(err).Msg("PostgreSQL no disponible al iniciar")
	} else if err := postgres.Bootstrap(ctx, pool, log.Named("schema")); err != nil {
		log.Warn().Err(err).Msg("no se pudo preparar el esquema")
	}

	inventoryRepo := postgres.NewInventoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	requestRepo := postgres.NewRequestRepository(pool)
	confirmationRepo := postgres.NewConfirmationRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	sheetRenderer := infrapdf.NewRequestSheetRenderer()

	var senders []notify.Sender
	if cfg.SMTP.Enabled() {
		senders = append(senders, mail.NewSMTPSender(cfg.SMTP, cfg.Notify.To, sheetRenderer))
	}
	if cfg.AMQP.Enabled() {
		conn, ch, err := rabbitmq.SetupConn(ctx, cfg.AMQP, log.Named("rabbitmq"))
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ no disponible, no se publicarán eventos")
		} else {
			defer conn.Close()
			defer ch.Close()
			senders = append(senders, rabbitmq.NewPublisher(ch, cfg.AMQP.Exchange))
		}
	}
	queue := notify.NewQueue(cfg.Notify.QueueSize, notifySendTimeout, log.Named("notify"), senders...)

	inventoryUC := inventory.NewInventoryUseCase(inventoryRepo, productRepo)
	stockUC := inventory.NewStockUseCase(inventoryRepo, confirmationRepo, productRepo, stockRepo)
	requestUC := request.NewRequestUseCase(txRunner, requestRepo, confirmationRepo, productRepo, queue)
	sheetUC := request.NewSheetUseCase(requestRepo, confirmationRepo, sheetRenderer)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.HTTP.CORSOrigins}))
	app.Use(httpRouter.AccessLog(log.Named("http")))

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Merch API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC: inventoryUC,
		StockUC:     stockUC,
		RequestUC:   requestUC,
		SheetUC:     sheetUC,
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
	if err := queue.Close(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("quedaron notificaciones sin enviar")
	}

	log.Info().Msg("aplicación detenida")
}
