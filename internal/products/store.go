package products

import (
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// ErrorAlreadySeeded indica que el catálogo inicial ya fue cargado.
var ErrorAlreadySeeded = errors.New("catalog already seeded")

// Store es el dueño del estado del editor de catálogo: productos, borrador del
// formulario, errores por campo, producto en edición y producto a borrar.
//
// Cada comando corre completo bajo el mutex antes de aceptar el siguiente, y
// devuelve un Snapshot con el estado resultante para que la vista lo renderice.
type Store struct {
	mu sync.Mutex

	ids IDGenerator
	// seen contiene todo id que pasó por el catálogo, para no reutilizarlo nunca.
	seen map[string]struct{}

	products    []Product
	draft       Draft
	fieldErrors FieldErrors
	editingID   string
	pendingID   string
	loading     bool
	seeded      bool
}

// Option configura un Store.
type Option func(*Store)

// WithIDGenerator reemplaza el generador de ids (por defecto UUID).
func WithIDGenerator(ids IDGenerator) Option {
	return func(store *Store) {
		if ids != nil {
			store.ids = ids
		}
	}
}

// NewStore crea un Store vacío en estado "cargando".
func NewStore(opts ...Option) *Store {
	store := &Store{
		ids:         UUIDGenerator{},
		seen:        map[string]struct{}{},
		products:    []Product{},
		fieldErrors: FieldErrors{},
		loading:     true,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// SeedCatalog reemplaza el catálogo completo con los datos iniciales y apaga
// el estado de carga. Los datos se consideran confiables (no se validan).
// Solo se acepta una vez; las siguientes devuelven ErrorAlreadySeeded.
func (store *Store) SeedCatalog(catalog []Product) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.seeded {
		return ErrorAlreadySeeded
	}

	store.products = slices.Clone(catalog)
	if store.products == nil {
		store.products = []Product{}
	}
	for _, product := range store.products {
		store.seen[product.ID] = struct{}{}
	}
	store.loading = false
	store.seeded = true
	return nil
}

// IsLoading indica si todavía no llegó el catálogo inicial.
func (store *Store) IsLoading() bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.loading
}

// Snapshot devuelve el estado actual sin modificarlo.
func (store *Store) Snapshot() Snapshot {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.snapshotLocked()
}

// UpdateDraftField cambia un campo del borrador y limpia su error, si lo tenía.
// El campo no se revalida hasta el próximo Submit.
func (store *Store) UpdateDraftField(field Field, value string) Snapshot {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.draft.set(field, value) {
		delete(store.fieldErrors, field)
	}
	return store.snapshotLocked()
}

// Validate corre las reglas sobre el estado actual sin aplicar cambios.
func (store *Store) Validate() FieldErrors {
	store.mu.Lock()
	defer store.mu.Unlock()
	return Validate(store.draft, store.products, store.editingID)
}

// Submit valida el borrador y, si es válido, crea o actualiza el producto.
// El bool indica si hubo commit; si es false, el snapshot trae los errores
// y el borrador queda intacto.
func (store *Store) Submit() (Snapshot, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	fieldErrors := Validate(store.draft, store.products, store.editingID)
	store.fieldErrors = fieldErrors
	if len(fieldErrors) > 0 {
		return store.snapshotLocked(), false
	}

	// Validate ya garantizó que ambos parsean.
	price, _ := parsePrice(store.draft.Price)
	stock, _ := parseStock(store.draft.Stock)
	name := strings.TrimSpace(store.draft.Name)

	if store.editingID != "" {
		// Se resuelve por id al momento del commit; si ya no existe, no hay nada que actualizar.
		if index := store.indexOf(store.editingID); index >= 0 {
			store.products[index] = Product{ID: store.editingID, Name: name, Price: price, Stock: stock}
		}
		store.editingID = ""
	} else {
		store.products = append(store.products, Product{
			ID:    store.nextID(),
			Name:  name,
			Price: price,
			Stock: stock,
		})
	}

	store.draft = Draft{}
	store.fieldErrors = FieldErrors{}
	return store.snapshotLocked(), true
}

// StartEdit carga el producto en el borrador y lo marca como objetivo de edición.
// No limpia errores previos: quedan visibles hasta que el usuario edite el campo.
func (store *Store) StartEdit(id string) Snapshot {
	store.mu.Lock()
	defer store.mu.Unlock()

	index := store.indexOf(id)
	if index < 0 {
		return store.snapshotLocked()
	}

	product := store.products[index]
	store.editingID = product.ID
	store.draft = Draft{
		Name:  product.Name,
		Price: formatPrice(product.Price),
		Stock: strconv.Itoa(product.Stock),
	}
	return store.snapshotLocked()
}

// CancelEdit sale del modo edición y deja el formulario vacío.
func (store *Store) CancelEdit() Snapshot {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.editingID = ""
	store.draft = Draft{}
	store.fieldErrors = FieldErrors{}
	return store.snapshotLocked()
}

// RequestDelete deja un producto pendiente de confirmación. No borra nada.
func (store *Store) RequestDelete(id string) Snapshot {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.indexOf(id) >= 0 {
		store.pendingID = id
	}
	return store.snapshotLocked()
}

// ConfirmDelete borra el producto pendiente, manteniendo el orden del resto.
func (store *Store) ConfirmDelete() Snapshot {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.pendingID != "" {
		if index := store.indexOf(store.pendingID); index >= 0 {
			store.products = slices.Delete(store.products, index, index+1)
		}
		store.pendingID = ""
	}
	return store.snapshotLocked()
}

// CancelDelete descarta la confirmación pendiente.
func (store *Store) CancelDelete() Snapshot {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.pendingID = ""
	return store.snapshotLocked()
}

func (store *Store) indexOf(id string) int {
	return slices.IndexFunc(store.products, func(product Product) bool {
		return product.ID == id
	})
}

func (store *Store) nextID() string {
	for {
		id := store.ids.NextID()
		if id == "" {
			continue
		}
		if _, used := store.seen[id]; used {
			continue
		}
		store.seen[id] = struct{}{}
		return id
	}
}

func (store *Store) lookup(id string) *Product {
	if id == "" {
		return nil
	}
	index := store.indexOf(id)
	if index < 0 {
		return nil
	}
	product := store.products[index]
	return &product
}

func (store *Store) snapshotLocked() Snapshot {
	mode := ModeCreate
	if store.editingID != "" {
		mode = ModeEdit
	}
	return Snapshot{
		Products:        slices.Clone(store.products),
		Draft:           store.draft,
		FieldErrors:     store.fieldErrors.clone(),
		EditingTarget:   store.lookup(store.editingID),
		PendingDeletion: store.lookup(store.pendingID),
		Mode:            mode,
		IsLoading:       store.loading,
	}
}
