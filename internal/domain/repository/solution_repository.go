package repository

import (
	"context"

	"github.com/jhoicas/Planificador-api/internal/domain/entity"
)

// SolutionRepository define el puerto de persistencia para soluciones de planificación (DIP).
type SolutionRepository interface {
	// Save inserta o reemplaza la solución del trabajo (cabecera y filas por orden en una sola transacción).
	Save(ctx context.Context, rec *entity.SolutionRecord) error
	// GetByJobID devuelve nil, nil si no existe.
	GetByJobID(ctx context.Context, jobID string) (*entity.SolutionRecord, error)
	// List soluciones más recientes primero, solo cabeceras (sin Payload ni Assignments).
	List(ctx context.Context, limit, offset int) ([]*entity.SolutionRecord, error)
	Delete(ctx context.Context, jobID string) error
}
