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

	"github.com/jhoicas/inventario-movimientos/internal/application/catalog"
	"github.com/jhoicas/inventario-movimientos/internal/application/report"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/export"
	"github.com/jhoicas/inventario-movimientos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventario-movimientos/internal/interfaces/http"
	"github.com/jhoicas/inventario-movimientos/pkg/config"
	"github.com/jhoicas/inventario-movimientos/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Int("chunk_size", cfg.Report.ChunkSize).
		Int("parallelism", cfg.Report.Parallelism).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Catálogo: inventario, categorías y bodegas (tabla principal y heredada)
	loader := catalog.NewLoader(
		postgres.NewInventoryRepository(pool),
		postgres.NewCategoryRepository(pool),
		cfg.Report.WarehouseIDs,
		log.Named("catalog"),
		postgres.NewWarehouseRepository(pool, postgres.WarehousesTable),
		postgres.NewWarehouseRepository(pool, postgres.WarehouseLegacyTable),
	)
	sessions := report.NewSessionStore(loader)

	// Reportes: procedimientos remotos por bloques de productos
	service := report.NewService(postgres.NewMovementSource(pool), report.Options{
		ChunkSize:    cfg.Report.ChunkSize,
		Parallelism:  cfg.Report.Parallelism,
		AsOfFrom:     cfg.Report.AsOfFrom,
		QueryTimeout: cfg.Report.QueryTimeout(),
	}, log.Named("report"))

	reportUC := report.NewUseCase(service, sessions, report.UseCaseConfig{
		PageSize:     cfg.Report.PageSize,
		ExportPrefix: cfg.Report.ExportPrefix,
	}, log.Named("workspace"),
		export.NewHTMLExporter(),
		export.NewXLSXExporter(),
		export.NewPDFExporter(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Minute * 5, // las consultas remotas pueden tardar
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario Movimientos API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReportUC:  reportUC,
		Sessions:  sessions,
		JWTSecret: cfg.JWT.Secret,
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
