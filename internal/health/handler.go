package health

import (
	"context"
	"net/http"
	"time"

	"github.com/Lelo88/catalog-editor/internal/httpx"
)

// Pinger es lo mínimo que se necesita de la base para el readiness check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Catalog expone si el catálogo inicial ya se cargó.
type Catalog interface {
	IsLoading() bool
}

const pingTimeout = 2 * time.Second

// Handler encapsula endpoints de health.
type Handler struct {
	catalog Catalog
	db      Pinger
}

// New crea un handler de health. db puede ser nil cuando no hay base configurada.
func New(catalog Catalog, db Pinger) *Handler {
	return &Handler{catalog: catalog, db: db}
}

// Health indica si el proceso está vivo.
// NO chequea el catálogo ni la base. Eso va en /ready.
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	httpx.OK(w, r, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready indica si el servicio puede atender: catálogo cargado y base alcanzable.
func (handler *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if handler.catalog != nil && handler.catalog.IsLoading() {
		httpx.Fail(w, r, http.StatusServiceUnavailable, "not_ready", "catalog is still loading")
		return
	}

	if handler.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := handler.db.Ping(ctx); err != nil {
			httpx.Fail(w, r, http.StatusServiceUnavailable, "not_ready", "database is not reachable")
			return
		}
	}

	httpx.OK(w, r, http.StatusOK, map[string]any{
		"status": "ready",
	})
}
