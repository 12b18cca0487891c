// seed_flota genera un script SQL para poblar la flota de una empresa a partir
// de un padrón CSV exportado por sistemas legados (codificado en ISO-8859-1,
// separado por punto y coma): placa;modelo;capacidad;fecha_ultimo_mantenimiento.
// La fecha va en formato 2006-01-02 y puede venir vacía (bus nunca mantenido).
//
// Uso: go run ./cmd/seed_flota <NIT empresa> [ruta/padron.csv]
// Por defecto busca padron.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_flota.sql
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type busRow struct {
	plate    string
	model    string
	capacity int
	lastDate string // "" = nunca mantenido
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: seed_flota <NIT empresa> [padron.csv]")
		os.Exit(1)
	}
	nit := strings.TrimSpace(os.Args[1])
	csvPath := "padron.csv"
	if len(os.Args) > 2 {
		csvPath = os.Args[2]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// Los padrones legados vienen en ISO-8859-1; transcodificamos a UTF-8.
	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var buses []busRow
	for i, rec := range records {
		if len(rec) < 2 {
			continue
		}
		plate := strings.ToUpper(strings.TrimSpace(rec[0]))
		if plate == "" || strings.EqualFold(plate, "placa") {
			continue // encabezado o fila vacía
		}
		row := busRow{plate: plate, model: strings.TrimSpace(rec[1])}
		if len(rec) > 2 {
			row.capacity, _ = strconv.Atoi(strings.TrimSpace(rec[2]))
		}
		if len(rec) > 3 {
			raw := strings.TrimSpace(rec[3])
			if raw != "" {
				if _, err := time.Parse("2006-01-02", raw); err != nil {
					fmt.Fprintf(os.Stderr, "Fila %d: fecha inválida %q (se esperaba 2006-01-02)\n", i+1, raw)
					os.Exit(1)
				}
				row.lastDate = raw
			}
		}
		buses = append(buses, row)
	}
	if len(buses) == 0 {
		fmt.Fprintln(os.Stderr, "El padrón no contiene buses")
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_flota.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	fmt.Fprintf(out, "-- Flota inicial de la empresa NIT %s\n", escapeSQL(nit))
	fmt.Fprintf(out, "-- Generado desde %s\n\n", filepath.Base(csvPath))

	for _, b := range buses {
		date := "NULL"
		if b.lastDate != "" {
			date = "'" + b.lastDate + "'"
		}
		fmt.Fprintf(out, "INSERT INTO buses (id, company_id, plate, model, capacity, last_maintenance_date, active, created_at)\n")
		fmt.Fprintf(out, "SELECT gen_random_uuid()::text, id, '%s', '%s', %d, %s, TRUE, NOW() FROM companies WHERE nit = '%s'\n",
			escapeSQL(b.plate), escapeSQL(b.model), b.capacity, date, escapeSQL(nit))
		out.WriteString("ON CONFLICT (company_id, UPPER(plate)) DO NOTHING;\n")
	}

	fmt.Printf("Generado %s: %d buses\n", outPath, len(buses))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
