package entity

import "strconv"

// Warehouse representa una bodega tal como la entrega el catálogo externo (inmutable).
type Warehouse struct {
	ID          int64
	DisplayName string
}

// Key forma canónica del ID, usada en las llaves de agregación y en la selección.
func (w Warehouse) Key() string {
	return strconv.FormatInt(w.ID, 10)
}
