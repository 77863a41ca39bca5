package selection

// MultiSelect conjunto ordenado de valores elegidos; conserva el orden en que el
// usuario los fue eligiendo.
type MultiSelect[T comparable] struct {
	values []T
	set    map[T]struct{}
}

// Has indica si v está elegido.
func (m *MultiSelect[T]) Has(v T) bool {
	_, ok := m.set[v]
	return ok
}

// Len cantidad de valores elegidos.
func (m *MultiSelect[T]) Len() int { return len(m.values) }

// Values copia de los valores en orden de elección.
func (m *MultiSelect[T]) Values() []T {
	out := make([]T, len(m.values))
	copy(out, m.values)
	return out
}

// Add agrega v si no estaba. Devuelve true si cambió.
func (m *MultiSelect[T]) Add(v T) bool {
	if m.Has(v) {
		return false
	}
	if m.set == nil {
		m.set = make(map[T]struct{})
	}
	m.set[v] = struct{}{}
	m.values = append(m.values, v)
	return true
}

// Remove quita v. Devuelve true si cambió.
func (m *MultiSelect[T]) Remove(v T) bool {
	if !m.Has(v) {
		return false
	}
	delete(m.set, v)
	for i, x := range m.values {
		if x == v {
			m.values = append(m.values[:i:i], m.values[i+1:]...)
			break
		}
	}
	return true
}

// Toggle agrega o quita v.
func (m *MultiSelect[T]) Toggle(v T) {
	if !m.Remove(v) {
		m.Add(v)
	}
}

// ToggleAll si todas las opciones están elegidas limpia la selección; si no, elige todas.
func (m *MultiSelect[T]) ToggleAll(options []T) {
	if len(options) > 0 && m.containsAll(options) {
		m.Clear()
		return
	}
	m.Set(options)
}

// Set reemplaza la selección (sin duplicados, respetando el orden dado).
func (m *MultiSelect[T]) Set(values []T) {
	m.Clear()
	for _, v := range values {
		m.Add(v)
	}
}

// Clear vacía la selección.
func (m *MultiSelect[T]) Clear() {
	m.values = nil
	m.set = nil
}

func (m *MultiSelect[T]) containsAll(options []T) bool {
	for _, o := range options {
		if !m.Has(o) {
			return false
		}
	}
	return true
}
