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
	ErrPersistence  = errors.New("error de persistencia")
	ErrRenderEngine = errors.New("error del motor de renderizado")
)

// ValidationError describe un campo rechazado antes de tocar la persistencia.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NotFoundError indica qué entidad faltó (factura, cliente, producto o perfil).
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s no encontrado", e.Entity)
	}
	return fmt.Sprintf("%s %s no encontrado", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// PersistenceError envuelve fallos del almacén (conexión, SQL, transacción).
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersistence, e.Op, e.Err)
}

// Unwrap expone tanto ErrPersistence como la causa original.
func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistence, e.Err} }

// RenderEngineError indica en qué etapa falló el motor de PDF.
type RenderEngineError struct {
	Stage string
	Err   error
}

func (e *RenderEngineError) Error() string {
	return fmt.Sprintf("%s (etapa %s): %v", ErrRenderEngine, e.Stage, e.Err)
}

func (e *RenderEngineError) Unwrap() []error { return []error{ErrRenderEngine, e.Err} }
