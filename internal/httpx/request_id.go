package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// RequestIDFrom devuelve el request id para incluirlo en las respuestas.
// Prioriza el que dejó el middleware de chi en el contexto; si no hay, usa el header.
func RequestIDFrom(request *http.Request) string {
	if request == nil {
		return ""
	}
	if id := middleware.GetReqID(request.Context()); id != "" {
		return id
	}
	return request.Header.Get(middleware.RequestIDHeader)
}
