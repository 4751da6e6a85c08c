package gen

import (
	"fmt"

	"github.com/syssam/relmodel/compiler/load"
	"github.com/syssam/relmodel/schema/field"
)

// Builder assembles the validated entity model from the raw
// declaration collections. It owns one mutable index for the duration
// of a Build call and hands back an immutable snapshot on success; it
// is not safe for concurrent use.
type Builder struct {
	namespaces map[string]*Graph
	order      []string
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build runs the builder over the given declarations.
func Build(decls *load.Declarations) (*Graphs, error) {
	return NewBuilder().Build(decls)
}

// Build processes the declaration collections in fixed phase order and
// returns the validated model. Each phase fully consumes its
// collection before the next begins. Build fails fast on the first
// structural violation; no partial model is ever returned.
func (b *Builder) Build(decls *load.Declarations) (*Graphs, error) {
	b.namespaces = make(map[string]*Graph)
	b.order = nil
	for _, phase := range []func(*load.Declarations) error{
		b.registerEntities,
		b.attachIDs,
		b.markGenerated,
		b.attachColumns,
		b.attachEmbeds,
		b.attachOneToOnes,
		b.attachOneToManys,
		b.attachManyToOnes,
		b.attachManyToManys,
		b.linkBackrefs,
		b.validate,
	} {
		if err := phase(decls); err != nil {
			return nil, err
		}
	}
	return b.snapshot(), nil
}

// registerEntities creates one skeleton entity per declaration. An
// entity is created exactly once; later phases only transform it.
func (b *Builder) registerEntities(decls *load.Declarations) error {
	for _, e := range decls.Entities {
		g := b.graph(e.Namespace)
		q := e.QualifiedName()
		if _, ok := g.types[q]; ok {
			continue
		}
		g.types[q] = &Type{
			Name:      e.Name,
			Namespace: e.Namespace,
			Table:     tableName(e.Table, e.Name),
			Pos:       e.Pos,
		}
		g.order = append(g.order, q)
	}
	return nil
}

// attachIDs resolves and attaches the identifier of every entity.
// An identifier whose owning type was never registered as an entity
// fails like every other phase does.
func (b *Builder) attachIDs(decls *load.Declarations) error {
	for _, m := range decls.IDs {
		err := b.update(m.Entity, m.Name, func(t Type) (Type, error) {
			idt, err := classifyID(m)
			if err != nil {
				return t, err
			}
			t.ID = &ID{
				Name:      m.Name,
				Type:      idt,
				Nullable:  nullable(m),
				Column:    columnName(m.Column, m.Name),
				Converter: m.Converter,
			}
			return t, nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// markGenerated flips the generated flag on already-attached
// identifiers. A marker on an entity with no identifier is a hard
// failure: the phase order guarantees all identifiers were attached.
func (b *Builder) markGenerated(decls *load.Declarations) error {
	for _, m := range decls.Generated {
		err := b.update(m.Entity, m.Name, func(t Type) (Type, error) {
			if t.ID == nil {
				return t, NewGeneratedValueError(m.Entity, m.Name)
			}
			id := *t.ID
			id.Generated = true
			t.ID = &id
			return t, nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// attachColumns appends the scalar properties of every entity, in
// declaration order.
func (b *Builder) attachColumns(decls *load.Declarations) error {
	for _, m := range decls.Columns {
		err := b.update(m.Entity, m.Name, func(t Type) (Type, error) {
			if t.ID == nil {
				return t, NewMissingIDError(m.Entity, m.Name)
			}
			f, err := newField(m)
			if err != nil {
				return t, err
			}
			t.Fields = append(t.Fields, f)
			return t, nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// attachEmbeds appends the embedded property groups of every entity.
func (b *Builder) attachEmbeds(decls *load.Declarations) error {
	for _, m := range decls.Embedded {
		err := b.update(m.Entity, m.Name, func(t Type) (Type, error) {
			if t.ID == nil {
				return t, NewMissingIDError(m.Entity, m.Name)
			}
			em := &Embed{
				Name:          m.Name,
				QualifiedName: m.Target,
				Nullable:      nullable(m),
			}
			for _, c := range m.Columns {
				f, err := newField(c)
				if err != nil {
					return t, err
				}
				em.Fields = append(em.Fields, f)
			}
			t.Embeds = append(t.Embeds, em)
			return t, nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// attachOneToOnes appends the mapped one-to-one edges. As with
// one-to-many, the foreign-key column references the owning entity's
// identifier.
func (b *Builder) attachOneToOnes(decls *load.Declarations) error {
	for _, m := range decls.OneToOnes {
		err := b.update(m.Entity, m.Name, func(t Type) (Type, error) {
			if t.ID == nil {
				return t, NewMissingIDError(m.Entity, m.Name)
			}
			if _, ok := b.find(m.Target); !ok {
				return t, NewEntityNotMappedError(m.Target, m.Name)
			}
			t.Edges = append(t.Edges, &OneToOne{
				Name:       m.Name,
				Target:     m.Target,
				Mapped:     true,
				MappedBy:   m.MappedBy,
				JoinColumn: m.JoinColumn,
				IDType:     t.ID.Type,
			})
			return t, nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// attachOneToManys appends the one-to-many edges. The edge carries the
// owning entity's identifier type: the foreign-key column lives on the
// target side and references the owner.
func (b *Builder) attachOneToManys(decls *load.Declarations) error {
	for _, m := range decls.OneToManys {
		err := b.update(m.Entity, m.Name, func(t Type) (Type, error) {
			if t.ID == nil {
				return t, NewMissingIDError(m.Entity, m.Name)
			}
			if _, ok := b.find(m.Target); !ok {
				return t, NewEntityNotMappedError(m.Target, m.Name)
			}
			t.Edges = append(t.Edges, &OneToMany{
				Name:       m.Name,
				Target:     m.Target,
				MappedBy:   m.MappedBy,
				JoinColumn: m.JoinColumn,
				IDType:     t.ID.Type,
			})
			return t, nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// attachManyToOnes appends the many-to-one edges. The edge carries the
// target entity's identifier type so the generation stage can type the
// foreign-key column without resolving the target again.
func (b *Builder) attachManyToOnes(decls *load.Declarations) error {
	for _, m := range decls.ManyToOnes {
		err := b.update(m.Entity, m.Name, func(t Type) (Type, error) {
			if t.ID == nil {
				return t, NewMissingIDError(m.Entity, m.Name)
			}
			target, ok := b.find(m.Target)
			if !ok {
				return t, NewEntityNotMappedError(m.Target, m.Name)
			}
			if target.ID == nil {
				return t, NewMissingIDError(m.Target, m.Name)
			}
			t.Edges = append(t.Edges, &ManyToOne{
				Name:       m.Name,
				Target:     m.Target,
				Mapped:     true,
				JoinColumn: m.JoinColumn,
				IDType:     target.ID.Type,
			})
			return t, nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// attachManyToManys appends the many-to-many edges.
func (b *Builder) attachManyToManys(decls *load.Declarations) error {
	for _, m := range decls.ManyToManys {
		err := b.update(m.Entity, m.Name, func(t Type) (Type, error) {
			if t.ID == nil {
				return t, NewMissingIDError(m.Entity, m.Name)
			}
			if _, ok := b.find(m.Target); !ok {
				return t, NewEntityNotMappedError(m.Target, m.Name)
			}
			t.Edges = append(t.Edges, &ManyToMany{
				Name:      m.Name,
				Target:    m.Target,
				MappedBy:  m.MappedBy,
				JoinTable: m.JoinTable,
				IDType:    t.ID.Type,
			})
			return t, nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// linkBackrefs synthesizes the inverse edge of every one-directional
// relationship that declares an explicit join column: the relational
// foreign key lives on the target side without a backing member there,
// and the target needs enough information to generate its column.
func (b *Builder) linkBackrefs(decls *load.Declarations) error {
	for _, m := range decls.OneToManys {
		if m.JoinColumn == "" {
			continue
		}
		if err := b.linkManyToOne(m); err != nil {
			return err
		}
	}
	for _, m := range decls.OneToOnes {
		if m.JoinColumn == "" {
			continue
		}
		if err := b.linkOneToOne(m); err != nil {
			return err
		}
	}
	return nil
}

// linkManyToOne appends an unmapped many-to-one edge on the target of
// a one-directional one-to-many, unless the target already declares a
// mapped many-to-one back to the owner.
func (b *Builder) linkManyToOne(m *load.Member) error {
	target, ok := b.find(m.Target)
	if !ok {
		return NewEntityNotMappedError(m.Target, m.Name)
	}
	if _, ok := target.MappedManyToOne(m.Entity); ok {
		// Already bidirectional.
		return nil
	}
	owner, ok := b.lookup(m.Entity)
	if !ok {
		return NewEntityNotMappedError(m.Entity, m.Name)
	}
	return b.update(m.Target, m.Name, func(t Type) (Type, error) {
		t.Edges = append(t.Edges, &ManyToOne{
			Name:       backrefName(m.Entity),
			Target:     m.Entity,
			JoinColumn: m.JoinColumn,
			IDType:     owner.ID.Type,
		})
		return t, nil
	})
}

// linkOneToOne is the one-to-one counterpart of linkManyToOne.
func (b *Builder) linkOneToOne(m *load.Member) error {
	target, ok := b.find(m.Target)
	if !ok {
		return NewEntityNotMappedError(m.Target, m.Name)
	}
	if _, ok := target.MappedOneToOne(m.Entity); ok {
		return nil
	}
	owner, ok := b.lookup(m.Entity)
	if !ok {
		return NewEntityNotMappedError(m.Entity, m.Name)
	}
	return b.update(m.Target, m.Name, func(t Type) (Type, error) {
		t.Edges = append(t.Edges, &OneToOne{
			Name:       backrefName(m.Entity),
			Target:     m.Entity,
			JoinColumn: m.JoinColumn,
			IDType:     owner.ID.Type,
		})
		return t, nil
	})
}

// validate enforces the model invariants before the snapshot is handed
// out: every entity holds an identifier.
func (b *Builder) validate(*load.Declarations) error {
	for _, ns := range b.order {
		g := b.namespaces[ns]
		for _, q := range g.order {
			if g.types[q].ID == nil {
				return NewMissingIDError(q, "")
			}
		}
	}
	return nil
}

// snapshot hands the builder's index out as the immutable model.
func (b *Builder) snapshot() *Graphs {
	return &Graphs{
		namespaces: b.namespaces,
		order:      append([]string(nil), b.order...),
	}
}

// graph returns the namespace graph, creating it if absent.
func (b *Builder) graph(ns string) *Graph {
	g, ok := b.namespaces[ns]
	if !ok {
		g = &Graph{Namespace: ns, types: make(map[string]*Type)}
		b.namespaces[ns] = g
		b.order = append(b.order, ns)
	}
	return g
}

// find resolves an entity by locating its namespace graph first, then
// its entry within that graph.
func (b *Builder) find(qualified string) (*Type, bool) {
	ns, _ := load.SplitQualified(qualified)
	g, ok := b.namespaces[ns]
	if !ok {
		return nil, false
	}
	t, ok := g.types[qualified]
	return t, ok
}

// lookup finds an entity by qualified name across all namespaces.
func (b *Builder) lookup(qualified string) (*Type, bool) {
	for _, g := range b.namespaces {
		if t, ok := g.types[qualified]; ok {
			return t, true
		}
	}
	return nil, false
}

// update applies a copy-update transformation to the entity owning the
// given member. A missing namespace graph or graph entry fails with
// EntityNotMappedError.
func (b *Builder) update(owner, member string, fn func(Type) (Type, error)) error {
	ns, _ := load.SplitQualified(owner)
	g, ok := b.namespaces[ns]
	if !ok {
		return NewEntityNotMappedError(owner, member)
	}
	cur, ok := g.types[owner]
	if !ok {
		return NewEntityNotMappedError(owner, member)
	}
	next, err := fn(*cur)
	if err != nil {
		return err
	}
	g.types[owner] = &next
	return nil
}

// nullable reports the effective nullability of a member: explicitly
// annotated nullable and not annotated not-null. Unannotated members
// are required.
func nullable(m *load.Member) bool {
	return m.Nullable && !m.NotNull
}

// classifyID resolves the identifier type category of a member.
func classifyID(m *load.Member) (field.IDType, error) {
	if m.Type == nil {
		return field.IDInvalid, memberErr(m, field.NewUnsupportedTypeError("<untyped>"))
	}
	idt, err := field.IDTypeOf(m.Type)
	if err != nil {
		return field.IDInvalid, memberErr(m, err)
	}
	return idt, nil
}

// newField resolves a column member into a scalar property.
func newField(m *load.Member) (*Field, error) {
	if m.Type == nil {
		return nil, memberErr(m, field.NewUnsupportedTypeError("<untyped>"))
	}
	typ, err := field.TypeOf(m.Type)
	if err != nil {
		return nil, memberErr(m, err)
	}
	enum, err := field.ParseEnumEncoding(m.Enum)
	if err != nil {
		return nil, memberErr(m, err)
	}
	return &Field{
		Name:      m.Name,
		Type:      typ,
		Nullable:  nullable(m),
		Column:    columnName(m.Column, m.Name),
		Converter: m.Converter,
		Enum:      enum,
	}, nil
}

func memberErr(m *load.Member, err error) error {
	return fmt.Errorf("entity %s: member %s: %w", m.Entity, m.Name, err)
}
