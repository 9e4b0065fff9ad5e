package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Planificador-api/internal/domain/entity"
	"github.com/jhoicas/Planificador-api/internal/domain/repository"
	"github.com/jhoicas/Planificador-api/internal/domain/score"
)

var _ repository.SolutionRepository = (*SolutionRepo)(nil)

var solutionOrderColumns = []string{
	"job_id", "order_id", "product_code", "line_id", "position",
	"start_time", "end_time", "current_inventory", "supply_days",
}

// SolutionRepo implementación del puerto SolutionRepository sobre PostgreSQL.
// Las lecturas usan el Querier; Save abre su propia transacción.
type SolutionRepo struct {
	q  Querier
	tx *TxRunner
}

// NewSolutionRepository construye el adaptador de persistencia para soluciones.
func NewSolutionRepository(q Querier, tx *TxRunner) *SolutionRepo {
	return &SolutionRepo{q: q, tx: tx}
}

// Save reemplaza cabecera y filas por orden en una transacción. Las filas se cargan con COPY.
func (r *SolutionRepo) Save(ctx context.Context, rec *entity.SolutionRecord) error {
	return r.tx.Run(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO solutions (job_id, status, hard_score, medium_score, soft_score, payload, error, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (job_id) DO UPDATE SET
				status = EXCLUDED.status,
				hard_score = EXCLUDED.hard_score,
				medium_score = EXCLUDED.medium_score,
				soft_score = EXCLUDED.soft_score,
				payload = EXCLUDED.payload,
				error = EXCLUDED.error,
				updated_at = EXCLUDED.updated_at`
		_, err := tx.Exec(ctx, query,
			rec.JobID, string(rec.Status), rec.Score.Hard, rec.Score.Medium, rec.Score.Soft,
			[]byte(rec.Payload), rec.Error, rec.CreatedAt, rec.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert solution: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM solution_orders WHERE job_id = $1`, rec.JobID); err != nil {
			return fmt.Errorf("delete solution orders: %w", err)
		}
		if len(rec.Assignments) == 0 {
			return nil
		}
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"solution_orders"},
			solutionOrderColumns,
			pgx.CopyFromRows(assignmentRows(rec.JobID, rec.Assignments)),
		)
		if err != nil {
			return fmt.Errorf("copy solution orders: %w", err)
		}
		return nil
	})
}

// GetByJobID obtiene la solución con sus filas por orden. nil, nil si no existe.
func (r *SolutionRepo) GetByJobID(ctx context.Context, jobID string) (*entity.SolutionRecord, error) {
	query := `
		SELECT job_id, status, hard_score, medium_score, soft_score, payload, error, created_at, updated_at
		FROM solutions WHERE job_id = $1`
	rec, err := scanSolution(r.q.QueryRow(ctx, query, jobID), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get solution: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT order_id, product_code, line_id, position, start_time, end_time, current_inventory, supply_days
		FROM solution_orders WHERE job_id = $1
		ORDER BY line_id NULLS LAST, position, order_id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("get solution orders: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			a          entity.OrderAssignment
			lineID     *string
			position   *int32
			start, end *time.Time
			inventory  decimal.Decimal
		)
		if err := rows.Scan(&a.OrderID, &a.ProductCode, &lineID, &position, &start, &end, &inventory, &a.SupplyDays); err != nil {
			return nil, fmt.Errorf("scan solution order: %w", err)
		}
		a.Position = -1
		if lineID != nil {
			a.LineID = *lineID
		}
		if position != nil {
			a.Position = int(*position)
		}
		if start != nil {
			a.StartTime = *start
		}
		if end != nil {
			a.EndTime = *end
		}
		a.CurrentInventory = inventory
		rec.Assignments = append(rec.Assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate solution orders: %w", err)
	}
	return rec, nil
}

// List cabeceras más recientes primero.
func (r *SolutionRepo) List(ctx context.Context, limit, offset int) ([]*entity.SolutionRecord, error) {
	query := `
		SELECT job_id, status, hard_score, medium_score, soft_score, error, created_at, updated_at
		FROM solutions ORDER BY updated_at DESC, job_id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list solutions: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.SolutionRecord, 0, limit)
	for rows.Next() {
		rec, err := scanSolution(rows, false)
		if err != nil {
			return nil, fmt.Errorf("scan solution: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete elimina la solución y, por cascada, sus filas por orden.
func (r *SolutionRepo) Delete(ctx context.Context, jobID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM solutions WHERE job_id = $1`, jobID); err != nil {
		return fmt.Errorf("delete solution: %w", err)
	}
	return nil
}

func scanSolution(row pgx.Row, withPayload bool) (*entity.SolutionRecord, error) {
	var (
		rec                entity.SolutionRecord
		status             string
		hard, medium, soft int64
		payload            []byte
	)
	dest := []any{&rec.JobID, &status, &hard, &medium, &soft}
	if withPayload {
		dest = append(dest, &payload)
	}
	dest = append(dest, &rec.Error, &rec.CreatedAt, &rec.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	rec.Status = entity.SolverStatus(status)
	rec.Score = score.Of(hard, medium, soft)
	rec.Payload = payload
	return &rec, nil
}

// assignmentRows filas para COPY en el orden de solutionOrderColumns.
func assignmentRows(jobID string, assignments []entity.OrderAssignment) [][]any {
	rows := make([][]any, 0, len(assignments))
	for _, a := range assignments {
		var (
			position   *int32
			start, end *time.Time
		)
		if a.LineID != "" {
			p := int32(a.Position)
			position = &p
			s, e := a.StartTime, a.EndTime
			start, end = &s, &e
		}
		rows = append(rows, []any{
			jobID, a.OrderID, a.ProductCode, nullString(a.LineID), position,
			start, end, a.CurrentInventory, a.SupplyDays,
		})
	}
	return rows
}
