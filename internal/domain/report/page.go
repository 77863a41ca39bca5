package report

// DefaultPageSize productos por página en la vista paginada.
const DefaultPageSize = 20

// Page una página de elementos con los datos de navegación.
type Page[T any] struct {
	Items      []T
	Number     int // base 1
	Size       int
	TotalItems int
	TotalPages int
	HasPrev    bool
	HasNext    bool
}

// PageCount ⌈n/size⌉.
func PageCount(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginate devuelve la página number (base 1) de items. Un número fuera de rango
// se ajusta a la primera o la última página.
func Paginate[T any](items []T, number, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := PageCount(len(items), size)
	switch {
	case number < 1 || total == 0:
		number = 1
	case number > total:
		number = total
	}
	p := Page[T]{
		Number:     number,
		Size:       size,
		TotalItems: len(items),
		TotalPages: total,
		HasPrev:    number > 1,
		HasNext:    number < total,
	}
	start := (number - 1) * size
	if start >= len(items) {
		p.Items = []T{}
		return p
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	p.Items = items[start:end]
	return p
}
