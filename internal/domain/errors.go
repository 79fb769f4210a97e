package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrStorage      = errors.New("error de almacenamiento")
)

// ValidationError entrada rechazada antes de cualquier escritura (campo faltante, tipo no permitido, cantidad cero).
// errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError construye un ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entrada inválida: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// ConflictError operación no permitida en el estado actual del recurso
// (editar una orden que no está en DRAFT, borrar una orden recibida, etc.).
type ConflictError struct {
	Resource string
	ID       string
	State    string
	Op       string
}

// NewConflictError construye un ConflictError.
func NewConflictError(resource, id, state, op string) *ConflictError {
	return &ConflictError{Resource: resource, ID: id, State: state, Op: op}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("no se puede %s %s %s en estado %s", e.Op, e.Resource, e.ID, e.State)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// StorageError fallo de transacción o commit; el lote completo se revierte y el caller debe reintentar la operación completa.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError envuelve un error del almacenamiento.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func (e *StorageError) Unwrap() error { return e.Err }
