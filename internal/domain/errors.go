package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidUnit               = errors.New("unidad inválida")
	ErrIncompatibleUnits         = errors.New("unidades incompatibles")
	ErrMissingDensity            = errors.New("se requiere densidad para convertir entre volumen y masa")
	ErrMissingRequiredField      = errors.New("campo requerido ausente")
	ErrDivisionByZero            = errors.New("división por cero")
	ErrInvalidInput              = errors.New("entrada inválida")
	ErrDeadVolumeExceedsCapacity = errors.New("el volumen muerto supera la capacidad del contenedor")
)

// Error acompaña un error de dominio con el contexto necesario para corregir la entrada.
// Unwrap devuelve Kind, de modo que errors.Is(err, ErrInvalidUnit) funciona.
type Error struct {
	Kind   error
	Field  string // campo de entrada que provocó el error (vacío si no aplica)
	From   string // unidad origen, para errores de conversión
	To     string // unidad destino, para errores de conversión
	Detail string
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Field != "" {
		fmt.Fprintf(&b, "%s: ", e.Field)
	}
	b.WriteString(e.Kind.Error())
	if e.From != "" || e.To != "" {
		fmt.Fprintf(&b, " (%q -> %q)", e.From, e.To)
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %s", e.Detail)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Kind }

// ConversionError construye un error de conversión entre dos unidades.
func ConversionError(kind error, from, to string) *Error {
	return &Error{Kind: kind, From: from, To: to}
}

// FieldError construye un error asociado a un campo de entrada.
func FieldError(kind error, field, detail string) *Error {
	return &Error{Kind: kind, Field: field, Detail: detail}
}

// WithField devuelve una copia de err anotada con field. Si err no es *Error,
// se envuelve conservando la cadena de errores.
func WithField(err error, field string) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		cp := *de
		cp.Field = field
		return &cp
	}
	return &Error{Kind: err, Field: field}
}

// FieldOf extrae el campo asociado a err, si lo hay.
func FieldOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Field
	}
	return ""
}
