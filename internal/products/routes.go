package products

import "github.com/go-chi/chi/v5"

// RegisterRoutes registra las rutas del editor en el router.
func RegisterRoutes(route chi.Router, handler *Handler) {
	route.Route("/catalog", func(route chi.Router) {
		route.Get("/", handler.Get)

		route.Put("/draft", handler.UpdateDraft)
		route.Delete("/draft", handler.CancelEdit)
		route.Post("/draft/submit", handler.Submit)

		route.Post("/products/{id}/edit", handler.StartEdit)
		route.Post("/products/{id}/delete", handler.RequestDelete)

		route.Post("/deletion/confirm", handler.ConfirmDelete)
		route.Delete("/deletion", handler.CancelDelete)
	})
}
