package products

// Product es un producto confirmado en el catálogo.
// Invariantes: Name no vacío y único (case-insensitive), Price > 0, Stock > 0.
type Product struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock int     `json:"stock"`
}

// Field identifica un campo editable del formulario.
type Field string

const (
	FieldName  Field = "name"
	FieldPrice Field = "price"
	FieldStock Field = "stock"
)

// Valid indica si el campo es uno de los que acepta el formulario.
func (field Field) Valid() bool {
	switch field {
	case FieldName, FieldPrice, FieldStock:
		return true
	default:
		return false
	}
}

// Draft guarda los valores crudos del formulario, todavía sin validar.
type Draft struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	Stock string `json:"stock"`
}

func (draft *Draft) set(field Field, value string) bool {
	switch field {
	case FieldName:
		draft.Name = value
	case FieldPrice:
		draft.Price = value
	case FieldStock:
		draft.Stock = value
	default:
		return false
	}
	return true
}

// FieldErrors mapea campo -> mensaje. Un campo ausente se considera válido.
type FieldErrors map[Field]string

// Strings devuelve los errores con claves string, listo para serializar en la respuesta HTTP.
func (fieldErrors FieldErrors) Strings() map[string]string {
	out := make(map[string]string, len(fieldErrors))
	for field, message := range fieldErrors {
		out[string(field)] = message
	}
	return out
}

func (fieldErrors FieldErrors) clone() FieldErrors {
	out := make(FieldErrors, len(fieldErrors))
	for field, message := range fieldErrors {
		out[field] = message
	}
	return out
}

// Mode indica si el formulario está creando o editando.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Snapshot es la foto completa del estado que consume la vista para renderizar.
// Es una copia: modificarla no afecta al Store.
type Snapshot struct {
	Products        []Product   `json:"products"`
	Draft           Draft       `json:"draft"`
	FieldErrors     FieldErrors `json:"field_errors"`
	EditingTarget   *Product    `json:"editing_target"`
	PendingDeletion *Product    `json:"pending_deletion"`
	Mode            Mode        `json:"mode"`
	IsLoading       bool        `json:"is_loading"`
}
