// Package scheduling gestiona trabajos de planificación: resolución bloqueante, asíncrona,
// consulta de estado, terminación anticipada y persistencia del resultado.
package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/Planificador-api/internal/application/dto"
	"github.com/jhoicas/Planificador-api/internal/application/solver"
	"github.com/jhoicas/Planificador-api/internal/domain"
	"github.com/jhoicas/Planificador-api/internal/domain/entity"
	"github.com/jhoicas/Planificador-api/internal/domain/repository"
	"github.com/jhoicas/Planificador-api/internal/domain/scoring"
	"github.com/jhoicas/Planificador-api/pkg/logger"
)

// JobMetrics observador del ciclo de vida de los trabajos.
type JobMetrics interface {
	JobStarted()
	JobFinished(status string, elapsed time.Duration)
}

type nopJobMetrics struct{}

func (nopJobMetrics) JobStarted()                       {}
func (nopJobMetrics) JobFinished(string, time.Duration) {}

// Config límites del gestor.
type Config struct {
	// ParallelJobs máximo de trabajos optimizando a la vez.
	ParallelJobs int64
	// PersistTimeout tiempo máximo para guardar un resultado.
	PersistTimeout time.Duration
}

// Result estado de un trabajo y la mejor solución conocida.
type Result struct {
	JobID    string
	Status   entity.SolverStatus
	Solution *entity.Schedule
	Err      error
}

type job struct {
	id        string
	ctx       context.Context
	cancel    context.CancelFunc
	problem   *entity.Schedule
	done      chan struct{}
	createdAt time.Time
	log       *logger.Logger

	// protegidos por Manager.mu
	status entity.SolverStatus
	best   *entity.Schedule
	err    error
}

// Manager coordina los trabajos. Cada trabajo optimiza su propia copia del plan en una goroutine;
// el semáforo limita cuántos optimizan a la vez. Al terminar, el resultado se persiste y el
// trabajo sale de memoria; las consultas posteriores se resuelven contra el repositorio.
type Manager struct {
	solver  *solver.Solver
	repo    repository.SolutionRepository
	log     *logger.Logger
	metrics JobMetrics
	cfg     Config

	sem    *semaphore.Weighted
	flight singleflight.Group

	mu   sync.Mutex
	jobs map[string]*job
	wg   sync.WaitGroup

	newID func() string
	now   func() time.Time
}

// NewManager construye el gestor. metrics puede ser nil.
func NewManager(s *solver.Solver, repo repository.SolutionRepository, log *logger.Logger, metrics JobMetrics, cfg Config) *Manager {
	if cfg.ParallelJobs <= 0 {
		cfg.ParallelJobs = 2
	}
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = 10 * time.Second
	}
	if metrics == nil {
		metrics = nopJobMetrics{}
	}
	return &Manager{
		solver:  s,
		repo:    repo,
		log:     log,
		metrics: metrics,
		cfg:     cfg,
		sem:     semaphore.NewWeighted(cfg.ParallelJobs),
		jobs:    make(map[string]*job),
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

// Solve resuelve de forma bloqueante y devuelve el id del trabajo y la mejor solución.
// Si ctx se cancela el trabajo termina anticipadamente con la mejor solución hasta el momento.
func (m *Manager) Solve(ctx context.Context, problem *entity.Schedule) (string, *entity.Schedule, error) {
	j := m.register(problem)
	stop := context.AfterFunc(ctx, j.cancel)
	defer stop()

	m.run(j)

	m.mu.Lock()
	defer m.mu.Unlock()
	return j.id, j.best, j.err
}

// SolveAsync acepta el problema y devuelve el id del trabajo inmediatamente.
func (m *Manager) SolveAsync(problem *entity.Schedule) string {
	j := m.register(problem)
	go m.run(j)
	return j.id
}

// Status estado del trabajo. Si ya no está en memoria se consulta la solución persistida.
func (m *Manager) Status(ctx context.Context, jobID string) (Result, error) {
	m.mu.Lock()
	if j, ok := m.jobs[jobID]; ok {
		r := Result{JobID: j.id, Status: j.status, Solution: j.best, Err: j.err}
		m.mu.Unlock()
		return r, nil
	}
	m.mu.Unlock()
	return m.stored(ctx, jobID)
}

// Terminate pide la terminación anticipada sin esperar a que el trabajo termine.
// Un trabajo ya persistido se considera terminado.
func (m *Manager) Terminate(ctx context.Context, jobID string) (entity.SolverStatus, error) {
	m.mu.Lock()
	j, ok := m.jobs[jobID]
	m.mu.Unlock()
	if ok {
		j.cancel()
		j.log.Info().Msg("terminación anticipada solicitada")
		return entity.StatusNotSolving, nil
	}
	if _, err := m.stored(ctx, jobID); err != nil {
		return "", err
	}
	return entity.StatusNotSolving, nil
}

// Wait bloquea hasta que el trabajo termine o ctx se cancele. Un id desconocido retorna de inmediato.
func (m *Manager) Wait(ctx context.Context, jobID string) error {
	m.mu.Lock()
	j, ok := m.jobs[jobID]
	m.mu.Unlock()
	if !ok {
		return nil
	}
	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Score puntúa un plan sin optimizarlo y devuelve el desglose por regla.
func (m *Manager) Score(problem *entity.Schedule) scoring.Analysis {
	a := m.solver.Engine().Explain(problem)
	problem.SetScore(a.Score)
	return a
}

// List soluciones persistidas, más recientes primero.
func (m *Manager) List(ctx context.Context, limit, offset int) ([]*entity.SolutionRecord, error) {
	return m.repo.List(ctx, limit, offset)
}

// Delete borra una solución persistida. Un trabajo que sigue en memoria no se puede borrar.
func (m *Manager) Delete(ctx context.Context, jobID string) error {
	m.mu.Lock()
	_, running := m.jobs[jobID]
	m.mu.Unlock()
	if running {
		return fmt.Errorf("%w: el trabajo %s no ha terminado", domain.ErrInvalidInput, jobID)
	}
	rec, err := m.repo.GetByJobID(ctx, jobID)
	if err != nil {
		return fmt.Errorf("leer solución: %w", err)
	}
	if rec == nil {
		return fmt.Errorf("%w: trabajo %s", domain.ErrNotFound, jobID)
	}
	if err := m.repo.Delete(ctx, jobID); err != nil {
		return fmt.Errorf("borrar solución: %w", err)
	}
	m.log.WithJob(jobID).Info().Msg("solución eliminada")
	return nil
}

// Shutdown termina todos los trabajos y espera a que persistan su resultado.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	for _, j := range m.jobs {
		j.cancel()
	}
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) register(problem *entity.Schedule) *job {
	ctx, cancel := context.WithCancel(context.Background())
	id := m.newID()
	j := &job{
		id:        id,
		log:       m.log.WithJob(id),
		ctx:       ctx,
		cancel:    cancel,
		problem:   problem,
		done:      make(chan struct{}),
		createdAt: m.now(),
		status:    entity.StatusScheduled,
		best:      problem.Clone(),
	}
	m.mu.Lock()
	m.jobs[j.id] = j
	m.mu.Unlock()
	m.wg.Add(1)
	j.log.Info().Int("orders", problem.OrderCount()).Msg("trabajo registrado")
	return j
}

func (m *Manager) run(j *job) {
	defer m.wg.Done()
	defer close(j.done)
	defer j.cancel()

	if err := m.sem.Acquire(j.ctx, 1); err != nil {
		// terminado antes de obtener cupo: queda el problema sin resolver
		m.finish(j, nil)
		return
	}
	defer m.sem.Release(1)

	m.setStatus(j, entity.StatusActive)
	m.metrics.JobStarted()
	started := m.now()

	best, err := m.solver.Solve(j.ctx, j.problem, func(b *entity.Schedule) {
		m.mu.Lock()
		j.best = b
		m.mu.Unlock()
		j.log.Debug().Str("score", b.Score().String()).Msg("nueva mejor solución")
	})
	if err == nil {
		m.mu.Lock()
		j.best = best
		m.mu.Unlock()
	}
	m.finish(j, err)
	m.metrics.JobFinished(statusLabel(err), m.now().Sub(started))
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (m *Manager) setStatus(j *job, s entity.SolverStatus) {
	m.mu.Lock()
	j.status = s
	m.mu.Unlock()
}

// finish marca el trabajo como terminado, persiste el resultado y lo saca de memoria.
// Si la persistencia falla el resultado se conserva en memoria.
func (m *Manager) finish(j *job, solveErr error) {
	m.mu.Lock()
	j.status = entity.StatusNotSolving
	j.err = solveErr
	best := j.best
	m.mu.Unlock()

	ev := j.log.Info()
	if solveErr != nil {
		ev = j.log.Error().Err(solveErr)
	}
	ev.Str("score", best.Score().String()).Msg("trabajo terminado")

	rec, err := m.record(j, best, solveErr)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.PersistTimeout)
		err = m.repo.Save(ctx, rec)
		cancel()
	}
	if err != nil {
		j.log.Error().Err(err).Msg("no se pudo persistir la solución")
		return
	}
	m.mu.Lock()
	delete(m.jobs, j.id)
	m.mu.Unlock()
}

func (m *Manager) record(j *job, best *entity.Schedule, solveErr error) (*entity.SolutionRecord, error) {
	payload, err := json.Marshal(dto.FromSchedule(best))
	if err != nil {
		return nil, fmt.Errorf("serializar solución: %w", err)
	}
	rec := &entity.SolutionRecord{
		JobID:       j.id,
		Status:      entity.StatusNotSolving,
		Score:       best.Score(),
		Payload:     payload,
		Assignments: entity.AssignmentsOf(best),
		CreatedAt:   j.createdAt,
		UpdatedAt:   m.now(),
	}
	if solveErr != nil {
		rec.Error = solveErr.Error()
	}
	return rec, nil
}

// stored reconstruye el resultado desde el repositorio. Consultas concurrentes del mismo id
// comparten una sola lectura; la lectura no depende de la cancelación de quien la inició
// y cada llamador deja de esperar cuando su propio ctx termina.
func (m *Manager) stored(ctx context.Context, jobID string) (Result, error) {
	readCtx := context.WithoutCancel(ctx)
	ch := m.flight.DoChan(jobID, func() (any, error) {
		rec, err := m.repo.GetByJobID(readCtx, jobID)
		if err != nil {
			return nil, fmt.Errorf("leer solución: %w", err)
		}
		if rec == nil {
			return nil, fmt.Errorf("%w: trabajo %s", domain.ErrNotFound, jobID)
		}
		var payload dto.ScheduleDTO
		if err := json.Unmarshal(rec.Payload, &payload); err != nil {
			return nil, fmt.Errorf("decodificar solución %s: %w", jobID, err)
		}
		s, err := payload.ToSchedule()
		if err != nil {
			return nil, fmt.Errorf("reconstruir solución %s: %w", jobID, err)
		}
		s.SetScore(rec.Score)
		r := Result{JobID: rec.JobID, Status: rec.Status, Solution: s}
		if rec.Error != "" {
			r.Err = errors.New(rec.Error)
		}
		return r, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return Result{}, res.Err
		}
		return res.Val.(Result), nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
