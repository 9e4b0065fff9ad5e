package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Planificador-api/internal/application/scheduling"
	"github.com/jhoicas/Planificador-api/pkg/jwt"
	"github.com/jhoicas/Planificador-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Manager   *scheduling.Manager
	Report    *scheduling.ReportUseCase
	Log       *logger.Logger
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (Bearer Token si JWT_SECRET está definido)
	sched := api.Group("/scheduling", AuthMiddleware(deps.JWTSecret))
	h := NewSchedulingHandler(deps.Manager, deps.Report, deps.Log)

	planner := RequireRole(deps.JWTSecret, jwt.RolePlanner)
	reader := RequireRole(deps.JWTSecret, jwt.RolePlanner, jwt.RoleViewer)

	sched.Post("/solve", planner, h.Solve)
	sched.Post("/solve-async", planner, h.SolveAsync)
	sched.Delete("/stop/:jobId", planner, h.Stop)
	sched.Delete("/solutions/:jobId", planner, h.DeleteSolution)

	sched.Get("/status/:jobId", reader, h.Status)
	sched.Post("/score", reader, h.Score)
	sched.Get("/report/:jobId", reader, h.Report)
	sched.Get("/solutions", reader, h.ListSolutions)
}
