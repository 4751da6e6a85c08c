package field

// IDType is the type category of an entity identifier column.
type IDType uint8

// Identifier type categories.
const (
	IDInvalid IDType = iota
	IDUUID
	IDString
	IDInt
	IDInt16
	IDInt64
	endIDTypes
)

var idTypeNames = [...]string{
	IDInvalid: "invalid",
	IDUUID:    "uuid",
	IDString:  "string",
	IDInt:     "int",
	IDInt16:   "int16",
	IDInt64:   "int64",
}

// String returns the category name.
func (t IDType) String() string {
	if t < endIDTypes {
		return idTypeNames[t]
	}
	return idTypeNames[IDInvalid]
}

// Valid reports if the category is a usable identifier type.
func (t IDType) Valid() bool { return t > IDInvalid && t < endIDTypes }

// GoType returns the Go type the generation stage emits for an
// identifier column of this category.
func (t IDType) GoType() string {
	if t == IDUUID {
		return "uuid.UUID"
	}
	return t.String()
}

// PkgPath returns the import path of the Go type returned by GoType,
// or an empty string for builtin types.
func (t IDType) PkgPath() string {
	if t == IDUUID {
		return "github.com/google/uuid"
	}
	return ""
}

// Type is the type category of a scalar property column.
type Type uint8

// Property type categories.
const (
	TypeInvalid Type = iota
	TypeString
	TypeBool
	TypeInt64
	endTypes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeString:  "string",
	TypeBool:    "bool",
	TypeInt64:   "int64",
}

// String returns the category name.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the category is a usable property type.
func (t Type) Valid() bool { return t > TypeInvalid && t < endTypes }

// GoType returns the Go type the generation stage emits for a property
// column of this category.
func (t Type) GoType() string { return t.String() }

// EnumEncoding is the storage encoding of an enumerated property.
type EnumEncoding uint8

// Enum encodings.
const (
	// EnumNone marks a non-enumerated property.
	EnumNone EnumEncoding = iota
	// EnumString stores the enum constant name.
	EnumString
	// EnumOrdinal stores the enum constant position.
	EnumOrdinal
)

// String returns the encoding name.
func (e EnumEncoding) String() string {
	switch e {
	case EnumString:
		return "string"
	case EnumOrdinal:
		return "ordinal"
	default:
		return "none"
	}
}
