// import_orders convierte la exportación CSV del ERP (separada por ';', Windows-1252 o UTF-8)
// en el JSON de problema que acepta la API de planificación.
//
// Uso: go run ./cmd/import_orders --orders pedidos.csv --lines lineas.csv [--encoding windows-1252] [--out problema.json]
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

type options struct {
	ordersPath string
	linesPath  string
	encoding   string
	outPath    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:          "import_orders",
		Short:        "Convierte pedidos y líneas del ERP en un problema de planificación",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.ordersPath, "orders", "", "CSV de órdenes de producción")
	cmd.Flags().StringVar(&opts.linesPath, "lines", "", "CSV de líneas de producción")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "windows-1252", "codificación de los CSV (windows-1252, iso-8859-1, utf-8)")
	cmd.Flags().StringVar(&opts.outPath, "out", "", "archivo de salida (vacío = stdout)")
	_ = cmd.MarkFlagRequired("orders")
	_ = cmd.MarkFlagRequired("lines")
	return cmd
}

func run(opts options, stdout io.Writer) error {
	orders, err := readFile(opts.ordersPath, opts.encoding, readOrders)
	if err != nil {
		return err
	}
	lines, err := readFile(opts.linesPath, opts.encoding, readLines)
	if err != nil {
		return err
	}
	problem, err := buildProblem(lines, orders)
	if err != nil {
		return fmt.Errorf("problema inválido: %w", err)
	}

	out := stdout
	if opts.outPath != "" {
		f, err := os.Create(opts.outPath)
		if err != nil {
			return fmt.Errorf("crear %s: %w", opts.outPath, err)
		}
		defer f.Close()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(problem); err != nil {
		return fmt.Errorf("escribir problema: %w", err)
	}
	if opts.outPath != "" {
		fmt.Fprintf(stdout, "Generado %s: %d líneas, %d órdenes\n", opts.outPath, len(lines), len(orders))
	}
	return nil
}

func readFile[T any](path, encoding string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()
	r, err := decode(encoding, f)
	if err != nil {
		return nil, err
	}
	return parse(r)
}
