package service

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id string, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %s not found", resourceType, id)}
}

func NewErrWorkspaceNotFound(id uuid.UUID) *ErrResourceNotFound {
	return NewErrResourceNotFound(id.String(), "workspace")
}

func NewErrSourceNotFound(id string) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "source")
}

func NewErrDeviceNotFound(id string) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "device")
}

type ErrCatalogEntryNotFound struct {
	error
}

func NewErrCatalogSourceNotFound(id string) *ErrCatalogEntryNotFound {
	return &ErrCatalogEntryNotFound{fmt.Errorf("catalog source %s not found", id)}
}

func NewErrCatalogDeviceNotFound(id string) *ErrCatalogEntryNotFound {
	return &ErrCatalogEntryNotFound{fmt.Errorf("catalog device %s not found", id)}
}

type ErrInvalidInput struct {
	error
}

func (e *ErrInvalidInput) Unwrap() error { return e.error }

func NewErrInvalidInput(err error) *ErrInvalidInput {
	return &ErrInvalidInput{fmt.Errorf("invalid input: %w", err)}
}

func NewErrInvalidInputf(format string, args ...any) *ErrInvalidInput {
	return &ErrInvalidInput{fmt.Errorf("invalid input: "+format, args...)}
}
