package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the builder's precondition violations.
var (
	// ErrEntityNotMapped indicates a declaration referencing a type
	// that was never registered as an entity.
	ErrEntityNotMapped = errors.New("relmodel: entity not mapped")
	// ErrMissingID indicates a member attached to an entity that has
	// no identifier yet.
	ErrMissingID = errors.New("relmodel: missing id")
	// ErrGeneratedValue indicates a generated-value marker on an
	// entity that has no identifier yet.
	ErrGeneratedValue = errors.New("relmodel: generated value without id")
)

// EntityNotMappedError reports a declaration whose owning or target
// type is absent from the model.
type EntityNotMappedError struct {
	Entity string // qualified name of the unmapped type
	Member string // declaration that referenced it, if any
}

// Error implements the error interface.
func (e *EntityNotMappedError) Error() string {
	var b strings.Builder
	b.WriteString("relmodel: entity ")
	b.WriteString(e.Entity)
	b.WriteString(" not mapped")
	if e.Member != "" {
		fmt.Fprintf(&b, " (member %s)", e.Member)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for EntityNotMappedError.
func (e *EntityNotMappedError) Is(target error) bool {
	return target == ErrEntityNotMapped
}

// NewEntityNotMappedError creates a new EntityNotMappedError.
func NewEntityNotMappedError(entity, member string) *EntityNotMappedError {
	return &EntityNotMappedError{Entity: entity, Member: member}
}

// IsEntityNotMappedError reports whether the error is an EntityNotMappedError.
func IsEntityNotMappedError(err error) bool {
	var enm *EntityNotMappedError
	return errors.As(err, &enm)
}

// MissingIDError reports a property, embeddable or relationship member
// attached before the owning entity gained an identifier.
type MissingIDError struct {
	Entity string
	Member string
}

// Error implements the error interface.
func (e *MissingIDError) Error() string {
	var b strings.Builder
	b.WriteString("relmodel: entity ")
	b.WriteString(e.Entity)
	b.WriteString(" has no id")
	if e.Member != "" {
		fmt.Fprintf(&b, " (member %s)", e.Member)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for MissingIDError.
func (e *MissingIDError) Is(target error) bool {
	return target == ErrMissingID
}

// NewMissingIDError creates a new MissingIDError.
func NewMissingIDError(entity, member string) *MissingIDError {
	return &MissingIDError{Entity: entity, Member: member}
}

// IsMissingIDError reports whether the error is a MissingIDError.
func IsMissingIDError(err error) bool {
	var mid *MissingIDError
	return errors.As(err, &mid)
}

// GeneratedValueError reports a generated-value marker processed before
// the owning entity gained an identifier.
type GeneratedValueError struct {
	Entity string
	Member string
}

// Error implements the error interface.
func (e *GeneratedValueError) Error() string {
	var b strings.Builder
	b.WriteString("relmodel: generated value on entity ")
	b.WriteString(e.Entity)
	b.WriteString(" without id")
	if e.Member != "" {
		fmt.Fprintf(&b, " (member %s)", e.Member)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for GeneratedValueError.
func (e *GeneratedValueError) Is(target error) bool {
	return target == ErrGeneratedValue
}

// NewGeneratedValueError creates a new GeneratedValueError.
func NewGeneratedValueError(entity, member string) *GeneratedValueError {
	return &GeneratedValueError{Entity: entity, Member: member}
}

// IsGeneratedValueError reports whether the error is a GeneratedValueError.
func IsGeneratedValueError(err error) bool {
	var gve *GeneratedValueError
	return errors.As(err, &gve)
}
