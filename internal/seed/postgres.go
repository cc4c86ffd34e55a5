package seed

import (
	"context"
	"fmt"

	"github.com/Lelo88/catalog-editor/internal/products"
	"github.com/jackc/pgx/v5"
)

// Querier es la parte de pgxpool.Pool que usa Postgres.
// Permite testear con fakes sin DB real.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Postgres lee el catálogo inicial de la tabla products. Solo lectura.
type Postgres struct {
	database Querier
}

// NewPostgres crea una fuente de seed sobre PostgreSQL.
func NewPostgres(database Querier) *Postgres {
	return &Postgres{database: database}
}

// Load implementa Source.
func (source *Postgres) Load(ctx context.Context) ([]products.Product, error) {
	const query = `
		SELECT id::text, name, price::float8, stock
		FROM products
		ORDER BY id;
	`

	rows, err := source.database.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	catalog := []products.Product{}
	for rows.Next() {
		var product products.Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Price, &product.Stock); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		catalog = append(catalog, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}

	return catalog, nil
}
