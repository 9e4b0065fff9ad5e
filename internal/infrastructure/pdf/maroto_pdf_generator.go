// Package pdf genera el plan de producción en PDF a partir de un plan resuelto.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Plan de producción  │  Trabajo + Fecha              │
//	│  PUNTAJE: hard / medium / soft + factibilidad                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR LÍNEA: # | Orden | Modelo | Fórmula | Esp. | Inicio | Fin │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SIN ASIGNAR: órdenes que quedaron fuera del plan            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Planificador-api/internal/domain/entity"
)

const timeLayout = "02/01/2006 15:04"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa scheduling.ReportGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	now func() time.Time
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{now: time.Now} }

// GenerateScheduleReport genera el PDF del plan y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateScheduleReport(_ context.Context, jobID string, s *entity.Schedule) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Plan de producción "+jobID, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(jobID, g.now()))
	m.AddRows(scoreRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, l := range s.Lines() {
		m.AddRows(lineTitleRow(l))
		m.AddRows(tableHeaderRow())
		m.AddRows(lineOrderRows(l)...)
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	if rows := unassignedRows(s.UnassignedOrders()); len(rows) > 0 {
		m.AddRows(rows...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(jobID string, at time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("PLAN DE PRODUCCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Bobinas madre", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Trabajo: "+jobID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("Generado: "+at.Format(timeLayout), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// scoreRow: puntaje por nivel. Un hard negativo se marca como no factible.
func scoreRow(s *entity.Schedule) core.Row {
	sc := s.Score()
	status, c := "Factible", colorPrimary
	if !sc.IsFeasible() {
		status, c = "NO FACTIBLE", colorDanger
	}
	return row.New(8).Add(
		col.New(8).Add(text.New(fmt.Sprintf("Puntaje: %s", sc), props.Text{
			Size: 9, Top: 2,
		})),
		col.New(4).Add(text.New(status, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: c, Top: 2,
		})),
	)
}

func lineTitleRow(l *entity.Line) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%s (%s)  |  disponible desde %s  |  %d órdenes",
			nonEmpty(l.Name, l.ID), l.LineCode, l.AvailableFrom.Format(timeLayout), l.Len(),
		), props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 3}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorGray, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("#", 1, align.Center),
		h("Orden", 2, align.Left),
		h("Modelo", 2, align.Left),
		h("Fórmula", 1, align.Left),
		h("Esp.", 1, align.Center),
		h("Días inv.", 1, align.Right),
		h("Inicio", 2, align.Left),
		h("Fin", 2, align.Left),
	)
}

// lineOrderRows: una fila por orden en el orden de la secuencia.
func lineOrderRows(l *entity.Line) []core.Row {
	if l.Len() == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Sin órdenes asignadas", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		))}
	}
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	rows := make([]core.Row, 0, l.Len())
	for i, o := range l.Orders() {
		start, _ := o.StartTime()
		end, _ := o.EndTime()
		rows = append(rows, row.New(6).Add(
			cell(strconv.Itoa(i+1), 1, align.Center),
			cell(o.ID, 2, align.Left),
			cell(o.ProductCode, 2, align.Left),
			cell(o.FormulaCode, 1, align.Left),
			cell(strconv.FormatFloat(o.Thickness, 'f', -1, 64), 1, align.Center),
			cell(formatSupplyDays(o.InventorySupplyDays()), 1, align.Right),
			cell(start.Format(timeLayout), 2, align.Left),
			cell(end.Format(timeLayout), 2, align.Left),
		))
	}
	return rows
}

func unassignedRows(orders []*entity.Order) []core.Row {
	if len(orders) == 0 {
		return nil
	}
	rows := []core.Row{row.New(9).Add(col.New(12).Add(
		text.New(fmt.Sprintf("SIN ASIGNAR (%d)", len(orders)), props.Text{
			Style: fontstyle.Bold, Size: 10, Color: colorDanger, Top: 3,
		}),
	))}
	for _, o := range orders {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s  %s  %s", o.ID, o.ProductCode, o.FormulaCode), props.Text{
				Size: 8, Color: colorGray, Top: 1, Left: 2,
			}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatSupplyDays: "∞" cuando no hay despachos.
func formatSupplyDays(d float64) string {
	if d == entity.InfiniteSupplyDays {
		return "∞"
	}
	return strconv.FormatFloat(d, 'f', 1, 64)
}
