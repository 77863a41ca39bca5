package domain

import (
	"context"
	"errors"
	"regexp"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrValidation      = errors.New("selección incompleta")
	ErrRemoteQuery     = errors.New("falló la consulta remota")
	ErrQueryTimeout    = errors.New("tiempo de consulta excedido")
	ErrFetchInProgress = errors.New("ya hay un reporte en proceso")
	ErrNoReport        = errors.New("no hay reporte para exportar")
)

// ValidationError indica que falta una selección obligatoria. Se detecta localmente,
// antes de cualquier llamada remota, y nunca se reintenta.
type ValidationError struct {
	Field   string // products, warehouses, movements, dates
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Is permite errors.Is(err, ErrValidation).
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError construye un ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// RemoteQueryError envuelve la falla de un bloque del origen de datos remoto.
// Timeout marca el sub-tipo "statement timeout".
type RemoteQueryError struct {
	Err     error
	Timeout bool
}

func (e *RemoteQueryError) Error() string {
	if e.Err == nil {
		return ErrRemoteQuery.Error()
	}
	return e.Err.Error()
}

func (e *RemoteQueryError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrRemoteQuery) y, para timeouts, errors.Is(err, ErrQueryTimeout).
func (e *RemoteQueryError) Is(target error) bool {
	if target == ErrRemoteQuery {
		return true
	}
	return e.Timeout && target == ErrQueryTimeout
}

var statementTimeoutRe = regexp.MustCompile(`(?i)statement timeout`)

// IsStatementTimeout detecta por el texto del mensaje el timeout de sentencia del origen remoto.
// El vencimiento del plazo propio de la consulta cuenta igual.
func IsStatementTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return statementTimeoutRe.MatchString(err.Error())
}

// NewRemoteQueryError clasifica err y lo envuelve. Devuelve nil si err es nil.
func NewRemoteQueryError(err error) error {
	if err == nil {
		return nil
	}
	var rq *RemoteQueryError
	if errors.As(err, &rq) {
		return rq
	}
	return &RemoteQueryError{Err: err, Timeout: IsStatementTimeout(err)}
}
