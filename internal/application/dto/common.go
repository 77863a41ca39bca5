package dto

// Límites del listado de productos del pool.
const (
	DefaultListLimit = 20
	MaxListLimit     = 500
)

// PageRequest ventana limit/offset sobre el pool de productos.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=500"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica el límite por defecto y descarta offsets negativos.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = DefaultListLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Window índices [start, end) de la ventana sobre total elementos; vacía si el offset
// queda fuera.
func (p PageRequest) Window(total int) (start, end int) {
	if p.Offset >= total {
		return total, total
	}
	return p.Offset, min(p.Offset+p.Limit, total)
}

// PageResponse ventana devuelta y tamaño del pool.
type PageResponse struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// NewPageResponse metadatos de la ventana p sobre total elementos.
func NewPageResponse(p PageRequest, total int) PageResponse {
	_, end := p.Window(total)
	return PageResponse{Limit: p.Limit, Offset: p.Offset, Total: total, HasMore: end < total}
}

// ErrorResponse cuerpo de error HTTP: código estable y mensaje para el usuario.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
