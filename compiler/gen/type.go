package gen

import (
	"github.com/syssam/relmodel/schema/field"
)

// The following types and their exported methods are consumed by the
// code-generation stage to emit table definitions.
type (
	// Type represents one persistence entity in the model.
	Type struct {
		// Name holds the simple type name.
		Name string
		// Namespace holds the package the type is declared in.
		Namespace string
		// Table holds the resolved table name.
		Table string
		// ID holds the identifier of this type. It is non-nil on
		// every type of a successfully built model.
		ID *ID
		// Fields holds the scalar properties of this type, in
		// declaration order.
		Fields []*Field
		// Edges holds the relationships of this type, in declaration
		// order, synthesized edges last.
		Edges []Edge
		// Embeds holds the embedded property groups of this type, in
		// declaration order.
		Embeds []*Embed
		// Pos is the filename:line position of the declaration.
		Pos string
	}

	// ID holds the identifier information of a type.
	ID struct {
		// Name is the declared member name.
		Name string
		// Type is the resolved identifier type category.
		Type field.IDType
		// Generated indicates the value is produced by the store.
		Generated bool
		// Nullable is the effective nullability of the column.
		Nullable bool
		// Column is the resolved column name.
		Column string
		// Converter is the declared converter type name, if any.
		Converter string
	}

	// Field holds the information of a scalar property.
	Field struct {
		// Name is the declared member name.
		Name string
		// Type is the resolved property type category.
		Type field.Type
		// Nullable is the effective nullability of the column.
		Nullable bool
		// Column is the resolved column name.
		Column string
		// Converter is the declared converter type name, if any.
		Converter string
		// Enum is the storage encoding for enumerated properties.
		Enum field.EnumEncoding
	}

	// Embed is a nested group of scalar properties with no identity of
	// its own, owned by exactly one entity property.
	Embed struct {
		// Name is the declared property name on the owning entity.
		Name string
		// QualifiedName identifies the embeddable type.
		QualifiedName string
		// Nullable is the effective nullability of the group.
		Nullable bool
		// Fields holds the nested properties, in declaration order.
		Fields []*Field
	}
)

// QualifiedName returns the namespace-qualified type identity.
func (t *Type) QualifiedName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// Label returns the label name of the type (snake_case).
func (t *Type) Label() string {
	return snake(t.Name)
}

// HasID reports if the type has an identifier attached.
func (t *Type) HasID() bool { return t.ID != nil }

// HasAssignableValues reports if the type needs an explicit
// value-insertion clause during generation: it holds a non-generated
// identifier, a scalar property, an embedded group, a many-to-many
// edge, or a mapped one-to-one edge.
func (t *Type) HasAssignableValues() bool {
	if t.ID != nil && !t.ID.Generated {
		return true
	}
	if len(t.Fields) > 0 || len(t.Embeds) > 0 {
		return true
	}
	for _, e := range t.Edges {
		switch e := e.(type) {
		case *ManyToMany:
			return true
		case *OneToOne:
			if e.Mapped {
				return true
			}
		}
	}
	return false
}

// EdgeBy returns the first edge the given function returns true on.
func (t *Type) EdgeBy(fn func(Edge) bool) (Edge, bool) {
	for _, e := range t.Edges {
		if fn(e) {
			return e, true
		}
	}
	return nil, false
}

// MappedManyToOne returns the mapped many-to-one edge pointing at the
// given entity, if any.
func (t *Type) MappedManyToOne(target string) (*ManyToOne, bool) {
	for _, e := range t.Edges {
		if m2o, ok := e.(*ManyToOne); ok && m2o.Mapped && m2o.Target == target {
			return m2o, true
		}
	}
	return nil, false
}

// MappedOneToOne returns the mapped one-to-one edge pointing at the
// given entity, if any.
func (t *Type) MappedOneToOne(target string) (*OneToOne, bool) {
	for _, e := range t.Edges {
		if o2o, ok := e.(*OneToOne); ok && o2o.Mapped && o2o.Target == target {
			return o2o, true
		}
	}
	return nil, false
}

// SyntheticEdges returns all edges synthesized by back-reference
// linking, i.e. edges with no backing member on this type.
func (t *Type) SyntheticEdges() []Edge {
	var edges []Edge
	for _, e := range t.Edges {
		if !e.IsMapped() {
			edges = append(edges, e)
		}
	}
	return edges
}

// EnumFields returns the enumerated properties of the type, if any.
func (t *Type) EnumFields() []*Field {
	var fields []*Field
	for _, f := range t.Fields {
		if f.Enum != field.EnumNone {
			fields = append(fields, f)
		}
	}
	return fields
}

// StructField returns the Go struct member name the generation stage
// emits for the property.
func (f *Field) StructField() string {
	return pascal(f.Name)
}

// StructField returns the Go struct member name the generation stage
// emits for the identifier.
func (id *ID) StructField() string {
	return pascal(id.Name)
}
