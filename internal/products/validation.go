package products

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Mensajes de validación que ve el usuario.
const (
	MessageNameRequired  = "name is required"
	MessageNameDuplicate = "name already exists (case-insensitive)"
	MessagePriceRequired = "price is required"
	MessagePriceInvalid  = "price must be a positive number"
	MessageStockRequired = "stock is required"
	MessageStockInvalid  = "stock must be a positive number"
)

// Validate evalúa el borrador contra el catálogo actual.
// Es una función pura: no modifica nada y siempre devuelve un mapa (vacío si es válido).
// editingID es el id del producto en edición, o "" si se está creando uno nuevo;
// ese producto queda excluido del chequeo de nombre duplicado.
func Validate(draft Draft, catalog []Product, editingID string) FieldErrors {
	fieldErrors := FieldErrors{}

	name := strings.TrimSpace(draft.Name)
	switch {
	case name == "":
		fieldErrors[FieldName] = MessageNameRequired
	case nameTaken(catalog, name, editingID):
		fieldErrors[FieldName] = MessageNameDuplicate
	}

	switch {
	case strings.TrimSpace(draft.Price) == "":
		fieldErrors[FieldPrice] = MessagePriceRequired
	default:
		if _, ok := parsePrice(draft.Price); !ok {
			fieldErrors[FieldPrice] = MessagePriceInvalid
		}
	}

	switch {
	case strings.TrimSpace(draft.Stock) == "":
		fieldErrors[FieldStock] = MessageStockRequired
	default:
		if _, ok := parseStock(draft.Stock); !ok {
			fieldErrors[FieldStock] = MessageStockInvalid
		}
	}

	return fieldErrors
}

func nameTaken(catalog []Product, name, editingID string) bool {
	folded := foldName(name)
	for _, product := range catalog {
		if editingID != "" && product.ID == editingID {
			continue
		}
		if foldName(product.Name) == folded {
			return true
		}
	}
	return false
}

// foldName normaliza un nombre para comparar sin distinguir mayúsculas.
// Un Caser no es seguro entre goroutines, por eso se crea uno por llamada.
func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// parsePrice acepta cualquier decimal finito mayor a cero.
func parsePrice(raw string) (float64, bool) {
	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return 0, false
	}
	return price, true
}

// parseStock exige un entero mayor a cero ("2.5" no es válido).
func parseStock(raw string) (int, bool) {
	stock, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || stock <= 0 {
		return 0, false
	}
	return stock, true
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
