// Package load defines the raw declaration handles consumed by the
// model builder, and a discovery front end that produces them from
// annotated Go source.
package load

import (
	"encoding/json"
	"strings"
)

// Entity is one type declaration annotated as a persistence entity.
type Entity struct {
	// Namespace is the package the type is declared in.
	Namespace string `json:"namespace,omitempty"`
	// Name is the simple type name.
	Name string `json:"name,omitempty"`
	// Table is the explicit table annotation value, if any.
	Table string `json:"table,omitempty"`
	// Pos is the filename:line position of the declaration.
	Pos string `json:"-"`
}

// QualifiedName returns the namespace-qualified type identity.
func (e *Entity) QualifiedName() string {
	return Qualify(e.Namespace, e.Name)
}

// Member is one annotated member declaration owned by an entity type.
// Only the payload fields relevant to the declaring annotation are set.
type Member struct {
	// Entity is the qualified name of the owning entity type.
	Entity string `json:"entity,omitempty"`
	// Name is the declared member name.
	Name string `json:"name,omitempty"`
	// Type is the classifiable type reference for type-bearing members.
	Type *TypeRef `json:"type,omitempty"`
	// Column is the explicit column annotation value, if any.
	Column string `json:"column,omitempty"`
	// JoinColumn is the explicit join-column annotation value, if any.
	JoinColumn string `json:"join_column,omitempty"`
	// JoinTable is the explicit join-table annotation value, if any.
	JoinTable string `json:"join_table,omitempty"`
	// MappedBy is the inverse field name declared on the member, if any.
	MappedBy string `json:"mapped_by,omitempty"`
	// Target is the qualified name of the referenced entity for
	// relationship members, or of the embeddable type for embedded
	// members. For collection-valued members it names the element type.
	Target string `json:"target,omitempty"`
	// Nullable marks an explicit nullable annotation.
	Nullable bool `json:"nullable,omitempty"`
	// NotNull marks an explicit not-null annotation.
	NotNull bool `json:"not_null,omitempty"`
	// Converter is the declared converter type name, if any.
	Converter string `json:"converter,omitempty"`
	// Enum is the declared enum encoding ("string" or "ordinal"), if any.
	Enum string `json:"enum,omitempty"`
	// Columns holds the nested column members of an embedded member.
	Columns []*Member `json:"columns,omitempty"`
	// Pos is the filename:line position of the declaration.
	Pos string `json:"-"`
}

// Declarations holds the ordered collections of annotated declarations
// produced by the discovery stage. The builder consumes each collection
// fully, in struct order, before the next one.
type Declarations struct {
	Entities    []*Entity `json:"entities,omitempty"`
	IDs         []*Member `json:"ids,omitempty"`
	Generated   []*Member `json:"generated,omitempty"`
	Columns     []*Member `json:"columns,omitempty"`
	Embedded    []*Member `json:"embedded,omitempty"`
	OneToOnes   []*Member `json:"one_to_ones,omitempty"`
	OneToManys  []*Member `json:"one_to_manys,omitempty"`
	ManyToOnes  []*Member `json:"many_to_ones,omitempty"`
	ManyToManys []*Member `json:"many_to_manys,omitempty"`
}

// MarshalDeclarations encodes the declaration collections into JSON
// that can be decoded with UnmarshalDeclarations. It allows the
// discovery stage to run out of process.
func MarshalDeclarations(d *Declarations) ([]byte, error) {
	return json.Marshal(d)
}

// UnmarshalDeclarations decodes the given buffer into declaration
// collections.
func UnmarshalDeclarations(buf []byte) (*Declarations, error) {
	d := &Declarations{}
	if err := json.Unmarshal(buf, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Qualify joins a namespace and a simple type name into the qualified
// identity used to key entities in the model.
func Qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

// SplitQualified splits a qualified type identity into its namespace
// and simple name. Type names never contain dots, so the last dot is
// the separator.
func SplitQualified(qualified string) (namespace, name string) {
	i := strings.LastIndex(qualified, ".")
	if i < 0 {
		return "", qualified
	}
	return qualified[:i], qualified[i+1:]
}
