// import_catalog carga productos al catálogo desde una planilla CSV
// (nombre,categoria,precio,stock[,stock_minimo[,descripcion]]).
//
// Uso: go run ./cmd/import_catalog [-charset latin1] [-dry-run] productos.csv
// Las planillas exportadas desde Excel en Windows suelen venir en ISO-8859-1: usar -charset latin1.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/techstore-pos/internal/application/usecase"
	"github.com/jhoicas/techstore-pos/internal/infrastructure/export"
	"github.com/jhoicas/techstore-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/techstore-pos/pkg/config"
	"github.com/jhoicas/techstore-pos/pkg/logger"
)

func main() {
	charset := flag.String("charset", export.CharsetUTF8, "codificación del archivo: utf-8 | latin1")
	dryRun := flag.Bool("dry-run", false, "solo valida la planilla, no escribe en la base")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_catalog [-charset latin1] [-dry-run] productos.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir planilla")
	}
	defer f.Close()

	products, rowErrs, err := export.ReadCatalogCSV(f, *charset)
	if err != nil {
		log.Fatal().Err(err).Msg("leer planilla")
	}
	for _, e := range rowErrs {
		log.Warn().Err(e).Msg("fila omitida")
	}
	log.Info().Int("validos", len(products)).Int("omitidos", len(rowErrs)).Msg("planilla leída")
	if *dryRun {
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productUC := usecase.NewProductUseCase(postgres.NewProductRepository(pool))
	created := 0
	for _, in := range products {
		out, err := productUC.Create(ctx, in)
		if err != nil {
			log.Error().Err(err).Str("nombre", in.Name).Msg("no se pudo crear el producto")
			continue
		}
		log.Debug().Str("id", out.ID).Str("nombre", out.Name).Msg("producto creado")
		created++
	}
	fmt.Printf("Importados %d de %d productos\n", created, len(products))
}
