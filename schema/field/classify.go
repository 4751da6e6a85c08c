package field

import (
	"errors"
	"fmt"
)

// ErrUnsupportedType is returned when a declared type matches none of
// the known categories. There is no fallback category: an unmatched
// type is a hard failure.
var ErrUnsupportedType = errors.New("relmodel: unsupported type")

// UnsupportedTypeError reports a declared type that could not be
// classified into any identifier or property category.
type UnsupportedTypeError struct {
	// Ident is the printed form of the offending type.
	Ident string
}

// Error implements the error interface.
func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("relmodel: unsupported type %q", e.Ident)
}

// Is reports whether the target matches the sentinel error for UnsupportedTypeError.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// NewUnsupportedTypeError creates a new UnsupportedTypeError.
func NewUnsupportedTypeError(ident string) *UnsupportedTypeError {
	return &UnsupportedTypeError{Ident: ident}
}

// IsUnsupportedTypeError reports whether the error is an UnsupportedTypeError.
func IsUnsupportedTypeError(err error) bool {
	var ute *UnsupportedTypeError
	return errors.As(err, &ute)
}

// Oracle answers the fixed set of type questions the classifier asks
// about a declared member type. Implementations decide equality and
// subtyping against the well-known types; the classifier only ranks
// their answers.
type Oracle interface {
	// IsUUID reports if the type is the UUID type.
	IsUUID() bool
	// IsString reports if the type is the string type.
	IsString() bool
	// IsBool reports if the type is the boolean type.
	IsBool() bool
	// IsInt reports if the type is a 32-bit-or-smaller integer type
	// other than int16.
	IsInt() bool
	// IsInt16 reports if the type is the 16-bit integer type.
	IsInt16() bool
	// IsNumeric reports if the type has a numeric kind, or is a
	// subtype of one.
	IsNumeric() bool
	// String returns the printed form of the type for diagnostics.
	String() string
}

// idRules is the ranked classification table for identifier members.
// Rules are evaluated in order and the first match wins; a type that
// matches none of them is unsupported.
var idRules = []struct {
	match func(Oracle) bool
	typ   IDType
}{
	{Oracle.IsUUID, IDUUID},
	{Oracle.IsString, IDString},
	{Oracle.IsInt, IDInt},
	{Oracle.IsInt16, IDInt16},
	// Every remaining numeric kind maps to the 64-bit bucket. The
	// table has no finer int64/float disambiguation yet; widening it
	// requires new ID categories, not a rule reorder.
	{Oracle.IsNumeric, IDInt64},
}

// typeRules is the ranked classification table for property members.
var typeRules = []struct {
	match func(Oracle) bool
	typ   Type
}{
	{Oracle.IsString, TypeString},
	{Oracle.IsBool, TypeBool},
	{Oracle.IsNumeric, TypeInt64},
}

// IDTypeOf classifies an identifier member type. It returns an
// UnsupportedTypeError if the type matches no known category.
func IDTypeOf(o Oracle) (IDType, error) {
	for _, r := range idRules {
		if r.match(o) {
			return r.typ, nil
		}
	}
	return IDInvalid, NewUnsupportedTypeError(o.String())
}

// TypeOf classifies a scalar property member type. It returns an
// UnsupportedTypeError if the type matches no known category.
func TypeOf(o Oracle) (Type, error) {
	for _, r := range typeRules {
		if r.match(o) {
			return r.typ, nil
		}
	}
	return TypeInvalid, NewUnsupportedTypeError(o.String())
}

// ParseEnumEncoding parses an enum encoding annotation value. An empty
// value means the property is not enumerated.
func ParseEnumEncoding(s string) (EnumEncoding, error) {
	switch s {
	case "":
		return EnumNone, nil
	case "string":
		return EnumString, nil
	case "ordinal":
		return EnumOrdinal, nil
	default:
		return EnumNone, fmt.Errorf("relmodel: unknown enum encoding %q", s)
	}
}
