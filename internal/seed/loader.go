package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Lelo88/catalog-editor/internal/products"
)

// Catalog recibe el seed. *products.Store lo implementa.
type Catalog interface {
	SeedCatalog(catalog []products.Product) error
}

// Loader lleva el resultado de una Source al catálogo, una sola vez.
type Loader struct {
	source  Source
	catalog Catalog
	logger  *slog.Logger
}

// NewLoader crea un Loader. Si logger es nil usa slog.Default().
func NewLoader(source Source, catalog Catalog, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{source: source, catalog: catalog, logger: logger}
}

// Run carga el catálogo y lo entrega al Store.
// Cancelar ctx es la forma de desistir: si el contexto terminó, el resultado
// se descarta sin tocar el Store y se devuelve ctx.Err().
func (loader *Loader) Run(ctx context.Context) error {
	catalog, err := loader.source.Load(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		loader.logger.Info("catalog load abandoned", slog.Any("error", ctxErr))
		return ctxErr
	}
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	if err := loader.catalog.SeedCatalog(catalog); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	loader.logger.Info("catalog seeded", slog.Int("products", len(catalog)))
	return nil
}
