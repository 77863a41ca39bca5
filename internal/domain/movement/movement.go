// Package movement define el conjunto cerrado de tipos de movimiento de inventario,
// su orden canónico de columnas y su clasificación fija de signo (entrada/salida).
package movement

import (
	"fmt"

	"github.com/jhoicas/inventario-movimientos/internal/domain"
)

// Key es el código canónico de un tipo de movimiento.
type Key string

// Tipos de movimiento (orden canónico de columnas).
const (
	Purchase       Key = "purchase"
	PurchaseReturn Key = "purchase_return"
	Sales          Key = "sales"
	SalesReturns   Key = "sales_returns"
	TransferIn     Key = "transfer_in"
	TransferOut    Key = "transfer_out"
	Wastages       Key = "wastages"
	Manufacturing  Key = "manufacturing"
	Consumption    Key = "consumption"
)

// Sign clasificación de un movimiento respecto al stock disponible.
type Sign int

const (
	Inflow  Sign = 1  // suma al stock
	Outflow Sign = -1 // resta del stock
)

var order = [...]Key{
	Purchase,
	PurchaseReturn,
	Sales,
	SalesReturns,
	TransferIn,
	TransferOut,
	Wastages,
	Manufacturing,
	Consumption,
}

var labels = map[Key]string{
	Purchase:       "Purchases",
	PurchaseReturn: "Purchase Returns",
	Sales:          "Sales",
	SalesReturns:   "Sales Returns",
	TransferIn:     "Transfer In",
	TransferOut:    "Transfer Out",
	Wastages:       "Wastages",
	Manufacturing:  "Manufacturing",
	Consumption:    "Consumption",
}

// Invariante del sistema: nunca varía por reporte.
var signs = map[Key]Sign{
	Purchase:       Inflow,
	SalesReturns:   Inflow,
	TransferIn:     Inflow,
	Manufacturing:  Inflow,
	Sales:          Outflow,
	PurchaseReturn: Outflow,
	Wastages:       Outflow,
	Consumption:    Outflow,
	TransferOut:    Outflow,
}

var position = func() map[Key]int {
	m := make(map[Key]int, len(order))
	for i, k := range order {
		m[k] = i
	}
	return m
}()

// All devuelve los 9 tipos en orden canónico (copia).
func All() []Key {
	out := make([]Key, len(order))
	copy(out, order[:])
	return out
}

// Valid indica si k pertenece al conjunto cerrado.
func (k Key) Valid() bool {
	_, ok := position[k]
	return ok
}

// Label etiqueta de columna. Para códigos desconocidos capitaliza el código ("foo_bar" -> "Foo Bar").
func (k Key) Label() string {
	if l, ok := labels[k]; ok {
		return l
	}
	return prettify(string(k))
}

// Sign clasificación de signo. ok es false para códigos fuera del conjunto.
func (k Key) Sign() (s Sign, ok bool) {
	s, ok = signs[k]
	return s, ok
}

// IsInflow indica si k aumenta el stock.
func (k Key) IsInflow() bool { return signs[k] == Inflow }

// IsOutflow indica si k disminuye el stock.
func (k Key) IsOutflow() bool { return signs[k] == Outflow }

// Inflows tipos de entrada en orden canónico.
func Inflows() []Key { return bySign(Inflow) }

// Outflows tipos de salida en orden canónico.
func Outflows() []Key { return bySign(Outflow) }

func bySign(s Sign) []Key {
	var out []Key
	for _, k := range order {
		if signs[k] == s {
			out = append(out, k)
		}
	}
	return out
}

// Parse valida un código recibido del exterior.
func Parse(s string) (Key, error) {
	k := Key(s)
	if !k.Valid() {
		return "", fmt.Errorf("tipo de movimiento desconocido %q: %w", s, domain.ErrInvalidInput)
	}
	return k, nil
}

// Ordered filtra selected al orden canónico. El orden de selección se ignora y
// se descartan duplicados y códigos desconocidos.
func Ordered(selected []Key) []Key {
	want := make(map[Key]bool, len(selected))
	for _, k := range selected {
		want[k] = true
	}
	out := make([]Key, 0, len(want))
	for _, k := range order {
		if want[k] {
			out = append(out, k)
		}
	}
	return out
}

func prettify(s string) string {
	b := []byte(s)
	up := true
	for i, c := range b {
		switch {
		case c == '_':
			b[i] = ' '
			up = true
		case up && c >= 'a' && c <= 'z':
			b[i] = c - 'a' + 'A'
			up = false
		default:
			up = c == ' '
		}
	}
	return string(b)
}
