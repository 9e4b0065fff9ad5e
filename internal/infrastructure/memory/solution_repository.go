// Package memory implementa los puertos de persistencia en memoria, para ejecutar el servicio
// sin base de datos y para tests.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/jhoicas/Planificador-api/internal/domain/entity"
	"github.com/jhoicas/Planificador-api/internal/domain/repository"
)

var _ repository.SolutionRepository = (*SolutionRepo)(nil)

// SolutionRepo almacén de soluciones protegido por mutex.
type SolutionRepo struct {
	mu   sync.RWMutex
	byID map[string]*entity.SolutionRecord
}

// NewSolutionRepository construye un almacén vacío.
func NewSolutionRepository() *SolutionRepo {
	return &SolutionRepo{byID: make(map[string]*entity.SolutionRecord)}
}

// Save inserta o reemplaza la solución. Guarda una copia.
func (r *SolutionRepo) Save(_ context.Context, rec *entity.SolutionRecord) error {
	c := copyRecord(rec)
	r.mu.Lock()
	if prev, ok := r.byID[rec.JobID]; ok {
		c.CreatedAt = prev.CreatedAt
	}
	r.byID[rec.JobID] = c
	r.mu.Unlock()
	return nil
}

// GetByJobID devuelve nil, nil si no existe.
func (r *SolutionRepo) GetByJobID(_ context.Context, jobID string) (*entity.SolutionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[jobID]
	if !ok {
		return nil, nil
	}
	return copyRecord(rec), nil
}

// List más recientes primero, solo cabeceras (sin plan ni filas por orden).
func (r *SolutionRepo) List(_ context.Context, limit, offset int) ([]*entity.SolutionRecord, error) {
	r.mu.RLock()
	all := make([]*entity.SolutionRecord, 0, len(r.byID))
	for _, rec := range r.byID {
		c := copyRecord(rec)
		c.Assignments = nil
		c.Payload = nil
		all = append(all, c)
	}
	r.mu.RUnlock()

	slices.SortFunc(all, func(a, b *entity.SolutionRecord) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.JobID, b.JobID)
	})
	if offset >= len(all) {
		return []*entity.SolutionRecord{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

// Delete elimina la solución; no falla si no existe.
func (r *SolutionRepo) Delete(_ context.Context, jobID string) error {
	r.mu.Lock()
	delete(r.byID, jobID)
	r.mu.Unlock()
	return nil
}

func copyRecord(rec *entity.SolutionRecord) *entity.SolutionRecord {
	c := *rec
	c.Payload = slices.Clone(rec.Payload)
	c.Assignments = slices.Clone(rec.Assignments)
	return &c
}

