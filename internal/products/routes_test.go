package products

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// editorRouter monta las rutas sobre un Store real con el catálogo de ejemplo.
func editorRouter(t *testing.T) http.Handler {
	t.Helper()

	store := NewStore(WithIDGenerator(NewSequence(100)))
	require.NoError(t, store.SeedCatalog(sampleCatalog()))

	router := chi.NewRouter()
	RegisterRoutes(router, NewHandler(store, nil))
	return router
}

func call(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterRoutes(t *testing.T) {
	router := editorRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"get catalog", http.MethodGet, "/catalog/", "", http.StatusOK},
		{"update draft", http.MethodPut, "/catalog/draft", `{"field":"name","value":"Desk"}`, http.StatusOK},
		{"cancel edit", http.MethodDelete, "/catalog/draft", "", http.StatusOK},
		{"submit empty draft", http.MethodPost, "/catalog/draft/submit", "", http.StatusUnprocessableEntity},
		{"start edit", http.MethodPost, "/catalog/products/1/edit", "", http.StatusOK},
		{"request delete", http.MethodPost, "/catalog/products/1/delete", "", http.StatusOK},
		{"cancel delete", http.MethodDelete, "/catalog/deletion", "", http.StatusOK},
		{"confirm delete", http.MethodPost, "/catalog/deletion/confirm", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, router, tt.method, tt.path, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRoutes_CreateFlow(t *testing.T) {
	router := editorRouter(t)

	call(t, router, http.MethodPut, "/catalog/draft", `{"field":"name","value":"Webcam"}`)
	call(t, router, http.MethodPut, "/catalog/draft", `{"field":"price","value":"350000"}`)
	call(t, router, http.MethodPut, "/catalog/draft", `{"field":"stock","value":"8"}`)
	rec := call(t, router, http.MethodPost, "/catalog/draft/submit", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.Bytes()
	require.Equal(t, int64(4), gjson.GetBytes(body, "data.products.#").Int())
	require.Equal(t, "Webcam", gjson.GetBytes(body, "data.products.3.name").String())
	require.Equal(t, "100", gjson.GetBytes(body, "data.products.3.id").String())
	require.Equal(t, 350000.0, gjson.GetBytes(body, "data.products.3.price").Float())
	require.Equal(t, "", gjson.GetBytes(body, "data.draft.name").String())
	require.Equal(t, "create", gjson.GetBytes(body, "data.mode").String())
}

func TestRoutes_DuplicateName(t *testing.T) {
	router := editorRouter(t)

	call(t, router, http.MethodPut, "/catalog/draft", `{"field":"name","value":"mouse"}`)
	call(t, router, http.MethodPut, "/catalog/draft", `{"field":"price","value":"10"}`)
	call(t, router, http.MethodPut, "/catalog/draft", `{"field":"stock","value":"1"}`)
	rec := call(t, router, http.MethodPost, "/catalog/draft/submit", "")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.Bytes()
	require.Equal(t, MessageNameDuplicate, gjson.GetBytes(body, "error.fields.name").String())
	require.Equal(t, MessageNameDuplicate, gjson.GetBytes(body, "data.field_errors.name").String())
	require.Equal(t, int64(3), gjson.GetBytes(body, "data.products.#").Int())

	rec = call(t, router, http.MethodPut, "/catalog/draft", `{"field":"name","value":"mouse pad"}`)
	require.False(t, gjson.GetBytes(rec.Body.Bytes(), "data.field_errors.name").Exists())
}

func TestRoutes_EditFlow(t *testing.T) {
	router := editorRouter(t)

	rec := call(t, router, http.MethodPost, "/catalog/products/2/edit", "")
	body := rec.Body.Bytes()
	require.Equal(t, "edit", gjson.GetBytes(body, "data.mode").String())
	require.Equal(t, "Mouse", gjson.GetBytes(body, "data.editing_target.name").String())
	require.Equal(t, "250000", gjson.GetBytes(body, "data.draft.price").String())

	call(t, router, http.MethodPut, "/catalog/draft", `{"field":"stock","value":"21"}`)
	rec = call(t, router, http.MethodPost, "/catalog/draft/submit", "")

	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.Bytes()
	require.Equal(t, int64(21), gjson.GetBytes(body, "data.products.1.stock").Int())
	require.Equal(t, "2", gjson.GetBytes(body, "data.products.1.id").String())
	require.Equal(t, gjson.Null, gjson.GetBytes(body, "data.editing_target").Type)
}

func TestRoutes_DeleteFlow(t *testing.T) {
	router := editorRouter(t)

	rec := call(t, router, http.MethodPost, "/catalog/products/7/delete", "")
	require.Equal(t, "Keyboard Mechanical", gjson.GetBytes(rec.Body.Bytes(), "data.pending_deletion.name").String())
	require.Equal(t, int64(3), gjson.GetBytes(rec.Body.Bytes(), "data.products.#").Int())

	rec = call(t, router, http.MethodPost, "/catalog/deletion/confirm", "")

	body := rec.Body.Bytes()
	require.Equal(t, int64(2), gjson.GetBytes(body, "data.products.#").Int())
	require.Equal(t, "1", gjson.GetBytes(body, "data.products.0.id").String())
	require.Equal(t, "2", gjson.GetBytes(body, "data.products.1.id").String())
	require.Equal(t, gjson.Null, gjson.GetBytes(body, "data.pending_deletion").Type)
}
