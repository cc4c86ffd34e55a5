// Package seed entrega el catálogo inicial al Store una única vez.
package seed

import (
	"context"
	"time"

	"github.com/Lelo88/catalog-editor/internal/products"
)

// Source provee el catálogo inicial.
type Source interface {
	Load(ctx context.Context) ([]products.Product, error)
}

// DefaultProducts es el catálogo de demostración.
func DefaultProducts() []products.Product {
	return []products.Product{
		{ID: "1", Name: "Laptop Gaming", Price: 15000000, Stock: 5},
		{ID: "2", Name: "Mouse Wireless", Price: 250000, Stock: 20},
		{ID: "3", Name: "Keyboard Mechanical", Price: 500000, Stock: 10},
	}
}

// Static entrega una lista fija después de Delay, simulando una carga remota.
type Static struct {
	Products []products.Product
	Delay    time.Duration
}

// Load espera Delay y devuelve una copia de Products.
// Si el contexto se cancela antes, devuelve ctx.Err().
func (source Static) Load(ctx context.Context) ([]products.Product, error) {
	if source.Delay > 0 {
		timer := time.NewTimer(source.Delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]products.Product, len(source.Products))
	copy(out, source.Products)
	return out, nil
}
