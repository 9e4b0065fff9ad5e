package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Planificador-api/docs"
	"github.com/jhoicas/Planificador-api/internal/application/scheduling"
	"github.com/jhoicas/Planificador-api/internal/application/solver"
	"github.com/jhoicas/Planificador-api/internal/domain/repository"
	"github.com/jhoicas/Planificador-api/internal/domain/scoring"
	"github.com/jhoicas/Planificador-api/internal/infrastructure/memory"
	"github.com/jhoicas/Planificador-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Planificador-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Planificador-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Planificador-api/internal/interfaces/http"
	"github.com/jhoicas/Planificador-api/pkg/config"
	"github.com/jhoicas/Planificador-api/pkg/logger"
)

// @title        Planificador API
// @version      1.0
// @description  Planificación de órdenes de bobinas madre en líneas de producción.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in           header
// @name         Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("mode", cfg.Solver.Mode).
		Msg("iniciando aplicación")

	scoringCfg := scoring.DefaultConfig()
	if cfg.Solver.RulesFile != "" {
		rules, err := config.LoadScoringRules(cfg.Solver.RulesFile)
		if err != nil {
			log.Fatal().Err(err).Msg("reglas de puntuación")
		}
		scoringCfg, err = rules.EngineConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("reglas de puntuación")
		}
		log.Info().Str("file", cfg.Solver.RulesFile).Int("pairs", len(scoringCfg.PreferredPairs)).Msg("reglas de puntuación cargadas")
	}
	if err := scoringCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("reglas de puntuación")
	}

	ctx := context.Background()

	// Persistencia: PostgreSQL si está configurado, si no en memoria
	var repo repository.SolutionRepository
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB, log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		repo = postgres.NewSolutionRepository(pool, postgres.NewTxRunner(pool))
	} else {
		log.Warn().Msg("sin base de datos configurada: las soluciones se guardan en memoria")
		repo = memory.NewSolutionRepository()
	}

	solverMetrics := metrics.New("planner")
	engine := scoring.NewEngine(scoringCfg)
	slv := solver.New(engine, solver.Config{
		TimeLimit:       cfg.Solver.TimeLimit,
		UnimprovedLimit: cfg.Solver.UnimprovedLimit,
		Seed:            cfg.Solver.Seed,
		FullAssert:      cfg.Solver.FullAssert(),
	}, solverMetrics)
	manager := scheduling.NewManager(slv, repo, log, solverMetrics, scheduling.Config{
		ParallelJobs: int64(cfg.Solver.ParallelJobs),
	})
	reportUC := scheduling.NewReportUseCase(manager, infrapdf.NewMarotoPDFGenerator())

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		// la resolución bloqueante puede durar todo el límite de tiempo del optimizador
		WriteTimeout: cfg.Solver.TimeLimit + 10*time.Second,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Planificador API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(solverMetrics.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Manager:   manager,
		Report:    reportUC,
		Log:       log,
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
	// los trabajos en curso terminan con su mejor solución y la persisten
	if err := manager.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de trabajos")
	}

	log.Info().Msg("aplicación detenida")
}
