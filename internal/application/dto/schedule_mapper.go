package dto

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/Planificador-api/internal/domain"
	"github.com/jhoicas/Planificador-api/internal/domain/entity"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate valida las etiquetas del DTO. Los errores envuelven domain.ErrInvalidInput.
func (s *ScheduleDTO) Validate() error {
	if err := validateStruct(s); err != nil {
		return err
	}
	for _, o := range s.Orders {
		if o.CurrentInventory.IsNegative() || o.MonthlyShipment.IsNegative() {
			return fmt.Errorf("%w: orden %s con inventario o despacho negativo", domain.ErrInvalidInput, o.ID)
		}
	}
	return nil
}

// validateStruct aplica las etiquetas validate y reporta el primer campo inválido.
func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("%w: campo %s no cumple %s", domain.ErrInvalidInput, f.Namespace(), f.Tag())
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// ToSchedule valida y construye el plan de dominio. Las secuencias de las líneas, si vienen,
// se aplican como asignación inicial; los campos derivados de las órdenes se ignoran y se
// recalculan.
func (s *ScheduleDTO) ToSchedule() (*entity.Schedule, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	lines := make([]*entity.Line, 0, len(s.ProductionLines))
	for _, l := range s.ProductionLines {
		lines = append(lines, entity.NewLine(l.ID, l.Name, l.LineCode, l.AvailableFrom.Time))
	}
	orders := make([]*entity.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		order := &entity.Order{
			ID:                      o.ID,
			ProductCode:             o.ProductCode,
			FormulaCode:             o.FormulaCode,
			Thickness:               o.Thickness,
			Quantity:                o.Quantity,
			CurrentInventory:        o.CurrentInventory,
			MonthlyShipment:         o.MonthlyShipment,
			CompatibleLines:         slices.Clone(o.CompatibleLines),
			ProductionDurationHours: o.ProductionDurationHours,
		}
		if o.ExpectedStartTime != nil {
			order.ExpectedStartTime = o.ExpectedStartTime.Time
		}
		orders = append(orders, order)
	}

	schedule, err := entity.NewSchedule(lines, orders)
	if err != nil {
		return nil, err
	}
	for _, l := range s.ProductionLines {
		if len(l.Orders) == 0 {
			continue
		}
		if err := schedule.Assign(l.ID, l.Orders...); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
			}
			return nil, err
		}
	}
	return schedule, nil
}

// FromSchedule serializa el plan con su estado derivado y su puntaje.
func FromSchedule(s *entity.Schedule) ScheduleDTO {
	out := ScheduleDTO{
		ProductionLines: make([]ProductionLineDTO, 0, len(s.Lines())),
		Orders:          make([]OrderDTO, 0, s.OrderCount()),
	}
	for _, l := range s.Lines() {
		ids := make([]string, 0, l.Len())
		for _, o := range l.Orders() {
			ids = append(ids, o.ID)
		}
		out.ProductionLines = append(out.ProductionLines, ProductionLineDTO{
			ID:            l.ID,
			Name:          l.Name,
			LineCode:      l.LineCode,
			AvailableFrom: &LocalDateTime{Time: l.AvailableFrom},
			Orders:        ids,
		})
	}
	for _, o := range s.Orders() {
		out.Orders = append(out.Orders, fromOrder(o))
	}
	sc := s.Score()
	out.Score = &sc
	return out
}

func fromOrder(o *entity.Order) OrderDTO {
	d := OrderDTO{
		ID:                      o.ID,
		ProductCode:             o.ProductCode,
		FormulaCode:             o.FormulaCode,
		Thickness:               o.Thickness,
		Quantity:                o.Quantity,
		CurrentInventory:        o.CurrentInventory,
		MonthlyShipment:         o.MonthlyShipment,
		ExpectedStartTime:       NewLocalDateTime(o.ExpectedStartTime),
		CompatibleLines:         slices.Clone(o.CompatibleLines),
		ProductionDurationHours: o.ProductionDurationHours,
	}
	if line := o.Line(); line != nil {
		id := line.ID
		d.AssignedLine = &id
	}
	if idx, ok := o.SequenceIndex(); ok {
		d.SequenceIndex = &idx
	}
	if prev := o.Previous(); prev != nil {
		id := prev.ID
		d.PreviousOrder = &id
	}
	if start, ok := o.StartTime(); ok {
		d.StartTime = &LocalDateTime{Time: start}
	}
	if end, ok := o.EndTime(); ok {
		d.EndTime = &LocalDateTime{Time: end}
	}
	return d
}

// ToSolutionList mapea cabeceras persistidas a la respuesta paginada.
func ToSolutionList(recs []*entity.SolutionRecord, page PageRequest) SolutionListResponse {
	out := SolutionListResponse{
		Items: make([]SolutionSummaryDTO, 0, len(recs)),
		Page:  PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, r := range recs {
		out.Items = append(out.Items, SolutionSummaryDTO{
			JobID:     r.JobID,
			Status:    string(r.Status),
			Score:     r.Score,
			Error:     r.Error,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return out
}
