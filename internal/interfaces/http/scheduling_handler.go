package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Planificador-api/internal/application/dto"
	"github.com/jhoicas/Planificador-api/internal/application/scheduling"
	"github.com/jhoicas/Planificador-api/internal/domain"
	"github.com/jhoicas/Planificador-api/pkg/logger"
)

// HeaderJobID cabecera con el id del trabajo en la resolución bloqueante.
const HeaderJobID = "X-Job-Id"

// SchedulingHandler maneja las peticiones HTTP de planificación.
type SchedulingHandler struct {
	manager *scheduling.Manager
	report  *scheduling.ReportUseCase
	log     *logger.Logger
}

// NewSchedulingHandler construye el handler.
func NewSchedulingHandler(manager *scheduling.Manager, report *scheduling.ReportUseCase, log *logger.Logger) *SchedulingHandler {
	return &SchedulingHandler{manager: manager, report: report, log: log}
}

// Solve godoc
// @Summary      Resolver un plan (bloqueante)
// @Description  Optimiza el plan recibido y responde con la mejor solución encontrada.
//
//	El id del trabajo viaja en la cabecera X-Job-Id.
//
// @Tags         scheduling
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScheduleDTO  true  "Líneas y órdenes; las secuencias de las líneas son opcionales (solución inicial)"
// @Success      200   {object}  dto.ScheduleDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/scheduling/solve [post]
func (h *SchedulingHandler) Solve(c *fiber.Ctx) error {
	var in dto.ScheduleDTO
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	problem, err := in.ToSchedule()
	if err != nil {
		return h.fail(c, err)
	}
	jobID, best, err := h.manager.Solve(c.UserContext(), problem)
	c.Set(HeaderJobID, jobID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.FromSchedule(best))
}

// SolveAsync godoc
// @Summary      Resolver un plan (asíncrono)
// @Tags         scheduling
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScheduleDTO  true  "Líneas y órdenes"
// @Success      202   {object}  dto.SolveAsyncResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/scheduling/solve-async [post]
func (h *SchedulingHandler) SolveAsync(c *fiber.Ctx) error {
	var in dto.ScheduleDTO
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	problem, err := in.ToSchedule()
	if err != nil {
		return h.fail(c, err)
	}
	jobID := h.manager.SolveAsync(problem)
	return c.Status(fiber.StatusAccepted).JSON(dto.SolveAsyncResponse{JobID: jobID})
}

// Status godoc
// @Summary      Estado de un trabajo
// @Description  SOLVING_SCHEDULED (en espera), SOLVING_ACTIVE (optimizando) o NOT_SOLVING (terminado).
// @Tags         scheduling
// @Security     Bearer
// @Produce      json
// @Param        jobId  path  string  true  "Id del trabajo"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/scheduling/status/{jobId} [get]
func (h *SchedulingHandler) Status(c *fiber.Ctx) error {
	res, err := h.manager.Status(c.UserContext(), c.Params("jobId"))
	if err != nil {
		return h.fail(c, err)
	}
	out := dto.StatusResponse{JobID: res.JobID, Status: string(res.Status)}
	if res.Solution != nil {
		sol := dto.FromSchedule(res.Solution)
		out.Solution = &sol
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	return c.JSON(out)
}

// Stop godoc
// @Summary      Terminación anticipada
// @Description  Pide detener la optimización; la mejor solución hasta el momento queda disponible en /status.
// @Tags         scheduling
// @Security     Bearer
// @Produce      json
// @Param        jobId  path  string  true  "Id del trabajo"
// @Success      200  {object}  dto.StopResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/scheduling/stop/{jobId} [delete]
func (h *SchedulingHandler) Stop(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	status, err := h.manager.Terminate(c.UserContext(), jobID)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.StopResponse{JobID: jobID, Status: string(status)})
}

// DeleteSolution godoc
// @Summary      Eliminar solución guardada
// @Tags         scheduling
// @Security     Bearer
// @Param        jobId  path  string  true  "Id del trabajo"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/scheduling/solutions/{jobId} [delete]
func (h *SchedulingHandler) DeleteSolution(c *fiber.Ctx) error {
	if err := h.manager.Delete(c.UserContext(), c.Params("jobId")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Score godoc
// @Summary      Puntuar un plan sin optimizar
// @Tags         scheduling
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScheduleDTO  true  "Plan con secuencias por línea"
// @Success      200   {object}  dto.ScoreAnalysisResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/scheduling/score [post]
func (h *SchedulingHandler) Score(c *fiber.Ctx) error {
	var in dto.ScheduleDTO
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	plan, err := in.ToSchedule()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.ToScoreAnalysis(h.manager.Score(plan)))
}

// Report godoc
// @Summary      Plan de producción en PDF
// @Tags         scheduling
// @Security     Bearer
// @Produce      application/pdf
// @Param        jobId  path  string  true  "Id del trabajo"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/scheduling/report/{jobId} [get]
func (h *SchedulingHandler) Report(c *fiber.Ctx) error {
	b, filename, err := h.report.Download(c.UserContext(), c.Params("jobId"))
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(b)
}

// ListSolutions godoc
// @Summary      Soluciones persistidas
// @Tags         scheduling
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de resultados (1-100, por defecto 20)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.SolutionListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/scheduling/solutions [get]
func (h *SchedulingHandler) ListSolutions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	if err := page.Validate(); err != nil {
		return h.fail(c, err)
	}
	recs, err := h.manager.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(dto.ToSolutionList(recs, page))
}

// fail traduce errores de dominio a respuestas HTTP.
func (h *SchedulingHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrUnknownLine):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
