package gen

import (
	"github.com/syssam/relmodel/schema/field"
)

// Rel is the relationship kind of an edge.
type Rel int

// Relationship kinds.
const (
	Unk Rel = iota // Unknown.
	O2O            // One to one.
	O2M            // One to many.
	M2O            // Many to one.
	M2M            // Many to many.
)

// String returns the relation name.
func (r Rel) String() string {
	s := "Unknown"
	switch r {
	case O2O:
		s = "O2O"
	case O2M:
		s = "O2M"
	case M2O:
		s = "M2O"
	case M2M:
		s = "M2M"
	}
	return s
}

// Edge is one relationship of an entity. Each kind is a separate
// concrete type carrying only the annotation payload that kind uses,
// so a many-to-one can never hold a join-table name.
type Edge interface {
	// EdgeName returns the declared member name, or the derived name
	// of a synthesized edge.
	EdgeName() string
	// TargetName returns the qualified name of the referenced entity.
	TargetName() string
	// Rel returns the relationship kind.
	Rel() Rel
	// IsMapped reports if the edge is backed by a member on the
	// declaring type. Synthesized edges exist only to carry
	// join-column information for the generation stage.
	IsMapped() bool
}

// OneToOne is a single-valued edge whose foreign key lives on the side
// named by the join column.
type OneToOne struct {
	Name string
	// Target is the qualified name of the referenced entity.
	Target string
	// Mapped is false for edges synthesized from the inverse side.
	Mapped bool
	// MappedBy names the inverse member, if declared.
	MappedBy string
	// JoinColumn is the explicit join-column annotation value, if any.
	JoinColumn string
	// IDType is the identifier type the foreign-key column references.
	IDType field.IDType
}

// EdgeName returns the edge name.
func (e *OneToOne) EdgeName() string { return e.Name }

// TargetName returns the qualified name of the referenced entity.
func (e *OneToOne) TargetName() string { return e.Target }

// Rel returns O2O.
func (e *OneToOne) Rel() Rel { return O2O }

// IsMapped reports if the edge is backed by a declared member.
func (e *OneToOne) IsMapped() bool { return e.Mapped }

// OneToMany is a collection-valued edge. The foreign key always lives
// on the target ("many") side; a declared join column signals it has
// no backing member there.
type OneToMany struct {
	Name   string
	Target string
	// MappedBy names the inverse member on the target, if declared.
	MappedBy string
	// JoinColumn is the explicit join-column annotation value, if any.
	JoinColumn string
	// IDType is the owning entity's identifier type, referenced by
	// the foreign-key column on the target side.
	IDType field.IDType
}

// EdgeName returns the edge name.
func (e *OneToMany) EdgeName() string { return e.Name }

// TargetName returns the qualified name of the referenced entity.
func (e *OneToMany) TargetName() string { return e.Target }

// Rel returns O2M.
func (e *OneToMany) Rel() Rel { return O2M }

// IsMapped reports true: one-to-many edges are never synthesized.
func (e *OneToMany) IsMapped() bool { return true }

// ManyToOne is a single-valued edge whose foreign key lives on the
// declaring side.
type ManyToOne struct {
	Name   string
	Target string
	// Mapped is false for edges synthesized from a one-directional
	// one-to-many on the target.
	Mapped bool
	// JoinColumn is the explicit join-column annotation value, if any.
	JoinColumn string
	// IDType is the target entity's identifier type, so the
	// generation stage can type the foreign-key column without
	// resolving the target again.
	IDType field.IDType
}

// EdgeName returns the edge name.
func (e *ManyToOne) EdgeName() string { return e.Name }

// TargetName returns the qualified name of the referenced entity.
func (e *ManyToOne) TargetName() string { return e.Target }

// Rel returns M2O.
func (e *ManyToOne) Rel() Rel { return M2O }

// IsMapped reports if the edge is backed by a declared member.
func (e *ManyToOne) IsMapped() bool { return e.Mapped }

// ManyToMany is a collection-valued edge materialized as a join table.
type ManyToMany struct {
	Name   string
	Target string
	// MappedBy names the inverse member on the target, if declared.
	MappedBy string
	// JoinTable is the explicit join-table annotation value, if any.
	JoinTable string
	// IDType is the owning entity's identifier type, referenced by
	// the owner column of the join table.
	IDType field.IDType
}

// EdgeName returns the edge name.
func (e *ManyToMany) EdgeName() string { return e.Name }

// TargetName returns the qualified name of the referenced entity.
func (e *ManyToMany) TargetName() string { return e.Target }

// Rel returns M2M.
func (e *ManyToMany) Rel() Rel { return M2M }

// IsMapped reports true: many-to-many edges are never synthesized.
func (e *ManyToMany) IsMapped() bool { return true }

var (
	_ Edge = (*OneToOne)(nil)
	_ Edge = (*OneToMany)(nil)
	_ Edge = (*ManyToOne)(nil)
	_ Edge = (*ManyToMany)(nil)
)
