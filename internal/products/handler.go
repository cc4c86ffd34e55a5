package products

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/Lelo88/catalog-editor/internal/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// StoreAPI define lo que el handler necesita del Store.
// Permite testear handlers con stubs.
type StoreAPI interface {
	Snapshot() Snapshot
	UpdateDraftField(field Field, value string) Snapshot
	Submit() (Snapshot, bool)
	StartEdit(id string) Snapshot
	CancelEdit() Snapshot
	RequestDelete(id string) Snapshot
	ConfirmDelete() Snapshot
	CancelDelete() Snapshot
}

// Handler HTTP del editor de catálogo.
// Traduce eventos de la vista a comandos del Store y devuelve siempre el snapshot.
type Handler struct {
	store     StoreAPI
	validator *validator.Validate
	logger    *slog.Logger
}

// NewHandler crea un handler. Si logger es nil usa slog.Default().
func NewHandler(store StoreAPI, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	validate := validator.New()
	// Los errores se reportan con el nombre JSON del campo, no el de Go.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	})
	return &Handler{
		store:     store,
		validator: validate,
		logger:    logger,
	}
}

type updateDraftRequest struct {
	Field string  `json:"field" validate:"required,oneof=name price stock"`
	Value *string `json:"value" validate:"required"`
}

// Get maneja GET /catalog.
func (handler *Handler) Get(writer http.ResponseWriter, request *http.Request) {
	httpx.OK(writer, request, http.StatusOK, handler.store.Snapshot())
}

// UpdateDraft maneja PUT /catalog/draft.
func (handler *Handler) UpdateDraft(writer http.ResponseWriter, request *http.Request) {
	var body updateDraftRequest
	if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_json", "invalid JSON body")
		return
	}

	if err := handler.validator.Struct(body); err != nil {
		fields := map[string]string{}
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldErr := range validationErrors {
				fields[fieldErr.Field()] = fieldErr.Error()
			}
		}
		httpx.FailFields(writer, request, http.StatusBadRequest, "invalid_input", "field must be one of name, price, stock and value must be present", fields)
		return
	}

	httpx.OK(writer, request, http.StatusOK, handler.store.UpdateDraftField(Field(body.Field), *body.Value))
}

// Submit maneja POST /catalog/draft/submit.
// Los errores de validación no son fallas del servidor: se responden con 422,
// el snapshot completo y el detalle por campo.
func (handler *Handler) Submit(writer http.ResponseWriter, request *http.Request) {
	snapshot, committed := handler.store.Submit()
	if !committed {
		httpx.Invalid(writer, request, snapshot, snapshot.FieldErrors.Strings())
		return
	}

	handler.logger.Info("product committed", slog.Int("products", len(snapshot.Products)))
	httpx.OK(writer, request, http.StatusOK, snapshot)
}

// CancelEdit maneja DELETE /catalog/draft.
func (handler *Handler) CancelEdit(writer http.ResponseWriter, request *http.Request) {
	httpx.OK(writer, request, http.StatusOK, handler.store.CancelEdit())
}

// StartEdit maneja POST /catalog/products/{id}/edit.
// Un id que ya no existe no es un error: se devuelve el estado sin cambios.
func (handler *Handler) StartEdit(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	httpx.OK(writer, request, http.StatusOK, handler.store.StartEdit(id))
}

// RequestDelete maneja POST /catalog/products/{id}/delete.
func (handler *Handler) RequestDelete(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	httpx.OK(writer, request, http.StatusOK, handler.store.RequestDelete(id))
}

// ConfirmDelete maneja POST /catalog/deletion/confirm.
func (handler *Handler) ConfirmDelete(writer http.ResponseWriter, request *http.Request) {
	snapshot := handler.store.ConfirmDelete()
	handler.logger.Info("deletion confirmed", slog.Int("products", len(snapshot.Products)))
	httpx.OK(writer, request, http.StatusOK, snapshot)
}

// CancelDelete maneja DELETE /catalog/deletion.
func (handler *Handler) CancelDelete(writer http.ResponseWriter, request *http.Request) {
	httpx.OK(writer, request, http.StatusOK, handler.store.CancelDelete())
}
