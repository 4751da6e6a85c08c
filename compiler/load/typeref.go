package load

import (
	"github.com/syssam/relmodel/schema/field"
)

// uuidPkg is the import path of the well-known UUID type.
const uuidPkg = "github.com/google/uuid"

// TypeRef describes the declared type of a member as reported by the
// discovery stage. It carries just enough identity for the field
// classifier to categorize the type; the answers to the classifier's
// questions are decided here, not in the classifier.
type TypeRef struct {
	// Ident is the printed form of the type, e.g. "string", "int16"
	// or "uuid.UUID".
	Ident string `json:"ident,omitempty"`
	// PkgPath is the import path of a named type. Empty for builtins.
	PkgPath string `json:"pkg_path,omitempty"`
	// Numeric marks a named type whose underlying kind is numeric.
	// Builtin numeric idents are recognized without it.
	Numeric bool `json:"numeric,omitempty"`
}

// numericIdents are the builtin idents with a numeric kind.
var numericIdents = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float32": true, "float64": true,
}

// IsUUID reports if the type is the well-known UUID type.
func (t *TypeRef) IsUUID() bool { return t.PkgPath == uuidPkg }

// IsString reports if the type is the builtin string type.
func (t *TypeRef) IsString() bool { return t.PkgPath == "" && t.Ident == "string" }

// IsBool reports if the type is the builtin bool type.
func (t *TypeRef) IsBool() bool { return t.PkgPath == "" && t.Ident == "bool" }

// IsInt reports if the type is a 32-bit-or-smaller integer other than int16.
func (t *TypeRef) IsInt() bool {
	return t.PkgPath == "" && (t.Ident == "int" || t.Ident == "int32")
}

// IsInt16 reports if the type is the builtin int16 type.
func (t *TypeRef) IsInt16() bool { return t.PkgPath == "" && t.Ident == "int16" }

// IsNumeric reports if the type has a numeric kind, directly or through
// its underlying type.
func (t *TypeRef) IsNumeric() bool {
	return t.Numeric || (t.PkgPath == "" && numericIdents[t.Ident])
}

// String returns the printed form of the type.
func (t *TypeRef) String() string {
	if t == nil {
		return "<untyped>"
	}
	return t.Ident
}

var _ field.Oracle = (*TypeRef)(nil)
