package scheduling

import (
	"context"
	"fmt"

	"github.com/jhoicas/Planificador-api/internal/domain"
	"github.com/jhoicas/Planificador-api/internal/domain/entity"
)

// ReportGenerator puerto del generador de documentos del plan (PDF).
type ReportGenerator interface {
	GenerateScheduleReport(ctx context.Context, jobID string, s *entity.Schedule) ([]byte, error)
}

// ReportUseCase genera el plan de producción de un trabajo.
// Solo se permite para trabajos terminados.
type ReportUseCase struct {
	manager   *Manager
	generator ReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(manager *Manager, generator ReportGenerator) *ReportUseCase {
	return &ReportUseCase{manager: manager, generator: generator}
}

// Download devuelve el PDF y su nombre de archivo.
//
// Retorna:
//   - domain.ErrNotFound     si el trabajo no existe.
//   - domain.ErrInvalidInput si el trabajo aún está en optimización.
func (uc *ReportUseCase) Download(ctx context.Context, jobID string) ([]byte, string, error) {
	res, err := uc.manager.Status(ctx, jobID)
	if err != nil {
		return nil, "", err
	}
	if res.Status != entity.StatusNotSolving {
		return nil, "", fmt.Errorf("%w: el trabajo %s sigue en estado %s", domain.ErrInvalidInput, jobID, res.Status)
	}
	b, err := uc.generator.GenerateScheduleReport(ctx, jobID, res.Solution)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: %w", err)
	}
	return b, "plan-" + jobID + ".pdf", nil
}
