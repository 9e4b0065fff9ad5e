package main

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Planificador-api/internal/application/dto"
)

// Columnas esperadas en la exportación del ERP (encabezado obligatorio, sin importar mayúsculas).
var (
	orderColumns = []string{"id", "modelo", "formula", "espesor", "cantidad", "inventario", "despacho_mensual", "inicio_esperado", "lineas", "horas"}
	lineColumns  = []string{"id", "nombre", "codigo", "disponible_desde"}
)

// decode envuelve r según la codificación del archivo. UTF-8 descarta el BOM si viene.
func decode(encoding string, r io.Reader) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "iso-8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "utf-8", "utf8", "":
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("codificación %q no soportada", encoding)
	}
}

// table filas del CSV indexadas por nombre de columna.
type table struct {
	index map[string]int
	rows  [][]string
}

func readTable(r io.Reader, required []string) (*table, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("archivo vacío")
		}
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	t := &table{index: make(map[string]int, len(header))}
	for i, h := range header {
		t.index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range required {
		if _, ok := t.index[c]; !ok {
			return nil, fmt.Errorf("falta la columna %q", c)
		}
	}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer fila: %w", err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		t.rows = append(t.rows, rec)
	}
	return t, nil
}

func (t *table) get(row []string, col string) string {
	i := t.index[col]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// number acepta coma o punto decimal ("22,5" o "22.5") y separador de miles con punto ("1.200,5").
func number(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}

func readOrders(r io.Reader) ([]dto.OrderDTO, error) {
	t, err := readTable(r, orderColumns)
	if err != nil {
		return nil, fmt.Errorf("órdenes: %w", err)
	}
	out := make([]dto.OrderDTO, 0, len(t.rows))
	for n, row := range t.rows {
		line := n + 2
		o := dto.OrderDTO{
			ID:          t.get(row, "id"),
			ProductCode: t.get(row, "modelo"),
			FormulaCode: t.get(row, "formula"),
		}
		nums := map[string]decimal.Decimal{}
		for _, col := range []string{"espesor", "cantidad", "inventario", "despacho_mensual", "horas"} {
			v, err := number(t.get(row, col))
			if err != nil {
				return nil, fmt.Errorf("órdenes, línea %d: columna %s: %w", line, col, err)
			}
			nums[col] = v
		}
		o.Thickness = nums["espesor"].InexactFloat64()
		o.Quantity = int(nums["cantidad"].IntPart())
		o.CurrentInventory = nums["inventario"]
		o.MonthlyShipment = nums["despacho_mensual"]
		o.ProductionDurationHours = nums["horas"].InexactFloat64()

		if s := t.get(row, "inicio_esperado"); s != "" {
			at, err := dto.ParseLocalDateTime(s)
			if err != nil {
				return nil, fmt.Errorf("órdenes, línea %d: inicio_esperado: %w", line, err)
			}
			o.ExpectedStartTime = &at
		}
		for _, code := range strings.FieldsFunc(t.get(row, "lineas"), func(r rune) bool { return r == '|' || r == ',' }) {
			o.CompatibleLines = append(o.CompatibleLines, strings.TrimSpace(code))
		}
		out = append(out, o)
	}
	return out, nil
}

func readLines(r io.Reader) ([]dto.ProductionLineDTO, error) {
	t, err := readTable(r, lineColumns)
	if err != nil {
		return nil, fmt.Errorf("líneas: %w", err)
	}
	out := make([]dto.ProductionLineDTO, 0, len(t.rows))
	for n, row := range t.rows {
		l := dto.ProductionLineDTO{
			ID:       t.get(row, "id"),
			Name:     t.get(row, "nombre"),
			LineCode: t.get(row, "codigo"),
			Orders:   []string{},
		}
		if s := t.get(row, "disponible_desde"); s != "" {
			at, err := dto.ParseLocalDateTime(s)
			if err != nil {
				return nil, fmt.Errorf("líneas, línea %s: disponible_desde: %w", strconv.Itoa(n+2), err)
			}
			l.AvailableFrom = &at
		}
		out = append(out, l)
	}
	return out, nil
}

// buildProblem arma y valida el problema; el resultado lo acepta POST /api/scheduling/solve.
func buildProblem(lines []dto.ProductionLineDTO, orders []dto.OrderDTO) (*dto.ScheduleDTO, error) {
	p := &dto.ScheduleDTO{ProductionLines: lines, Orders: orders}
	if _, err := p.ToSchedule(); err != nil {
		return nil, err
	}
	return p, nil
}
