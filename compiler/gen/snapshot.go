package gen

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/relmodel/schema/field"
)

// Snapshot DTOs. The in-memory model keeps Edge as an interface; the
// wire form flattens it into one record tagged with the relationship
// kind so both codecs can round-trip it.
type (
	graphsSnapshot struct {
		Namespaces []*graphSnapshot `msgpack:"namespaces" json:"namespaces"`
	}

	graphSnapshot struct {
		Namespace string          `msgpack:"namespace" json:"namespace"`
		Types     []*typeSnapshot `msgpack:"types" json:"types"`
	}

	typeSnapshot struct {
		Name      string           `msgpack:"name" json:"name"`
		Namespace string           `msgpack:"namespace" json:"namespace,omitempty"`
		Table     string           `msgpack:"table" json:"table"`
		ID        *idSnapshot      `msgpack:"id" json:"id"`
		Fields    []*fieldSnapshot `msgpack:"fields" json:"fields,omitempty"`
		Edges     []*edgeSnapshot  `msgpack:"edges" json:"edges,omitempty"`
		Embeds    []*embedSnapshot `msgpack:"embeds" json:"embeds,omitempty"`
		Pos       string           `msgpack:"pos" json:"pos,omitempty"`
	}

	idSnapshot struct {
		Name      string       `msgpack:"name" json:"name"`
		Type      field.IDType `msgpack:"type" json:"type"`
		Generated bool         `msgpack:"generated" json:"generated,omitempty"`
		Nullable  bool         `msgpack:"nullable" json:"nullable,omitempty"`
		Column    string       `msgpack:"column" json:"column"`
		Converter string       `msgpack:"converter" json:"converter,omitempty"`
	}

	fieldSnapshot struct {
		Name      string             `msgpack:"name" json:"name"`
		Type      field.Type         `msgpack:"type" json:"type"`
		Nullable  bool               `msgpack:"nullable" json:"nullable,omitempty"`
		Column    string             `msgpack:"column" json:"column"`
		Converter string             `msgpack:"converter" json:"converter,omitempty"`
		Enum      field.EnumEncoding `msgpack:"enum" json:"enum,omitempty"`
	}

	embedSnapshot struct {
		Name          string           `msgpack:"name" json:"name"`
		QualifiedName string           `msgpack:"qualified_name" json:"qualified_name"`
		Nullable      bool             `msgpack:"nullable" json:"nullable,omitempty"`
		Fields        []*fieldSnapshot `msgpack:"fields" json:"fields,omitempty"`
	}

	edgeSnapshot struct {
		Rel        Rel          `msgpack:"rel" json:"rel"`
		Name       string       `msgpack:"name" json:"name"`
		Target     string       `msgpack:"target" json:"target"`
		Mapped     bool         `msgpack:"mapped" json:"mapped"`
		MappedBy   string       `msgpack:"mapped_by" json:"mapped_by,omitempty"`
		JoinColumn string       `msgpack:"join_column" json:"join_column,omitempty"`
		JoinTable  string       `msgpack:"join_table" json:"join_table,omitempty"`
		IDType     field.IDType `msgpack:"id_type" json:"id_type"`
	}
)

// MarshalBinary encodes the model in msgpack.
func (g *Graphs) MarshalBinary() ([]byte, error) {
	return msgpack.Marshal(g.snapshot())
}

// MarshalJSON encodes the model in JSON.
func (g *Graphs) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.snapshot())
}

// UnmarshalGraphs decodes a msgpack-encoded model produced by
// MarshalBinary.
func UnmarshalGraphs(data []byte) (*Graphs, error) {
	var s graphsSnapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("relmodel: unmarshal model: %w", err)
	}
	return s.restore()
}

func (g *Graphs) snapshot() *graphsSnapshot {
	s := &graphsSnapshot{}
	for _, gr := range g.Namespaces() {
		gs := &graphSnapshot{Namespace: gr.Namespace}
		for _, t := range gr.Types() {
			gs.Types = append(gs.Types, snapshotType(t))
		}
		s.Namespaces = append(s.Namespaces, gs)
	}
	return s
}

func snapshotType(t *Type) *typeSnapshot {
	ts := &typeSnapshot{
		Name:      t.Name,
		Namespace: t.Namespace,
		Table:     t.Table,
		Pos:       t.Pos,
	}
	if t.ID != nil {
		ts.ID = &idSnapshot{
			Name:      t.ID.Name,
			Type:      t.ID.Type,
			Generated: t.ID.Generated,
			Nullable:  t.ID.Nullable,
			Column:    t.ID.Column,
			Converter: t.ID.Converter,
		}
	}
	for _, f := range t.Fields {
		ts.Fields = append(ts.Fields, snapshotField(f))
	}
	for _, e := range t.Edges {
		ts.Edges = append(ts.Edges, snapshotEdge(e))
	}
	for _, em := range t.Embeds {
		es := &embedSnapshot{
			Name:          em.Name,
			QualifiedName: em.QualifiedName,
			Nullable:      em.Nullable,
		}
		for _, f := range em.Fields {
			es.Fields = append(es.Fields, snapshotField(f))
		}
		ts.Embeds = append(ts.Embeds, es)
	}
	return ts
}

func snapshotField(f *Field) *fieldSnapshot {
	return &fieldSnapshot{
		Name:      f.Name,
		Type:      f.Type,
		Nullable:  f.Nullable,
		Column:    f.Column,
		Converter: f.Converter,
		Enum:      f.Enum,
	}
}

func snapshotEdge(e Edge) *edgeSnapshot {
	s := &edgeSnapshot{
		Rel:    e.Rel(),
		Name:   e.EdgeName(),
		Target: e.TargetName(),
		Mapped: e.IsMapped(),
	}
	switch e := e.(type) {
	case *OneToOne:
		s.MappedBy = e.MappedBy
		s.JoinColumn = e.JoinColumn
		s.IDType = e.IDType
	case *OneToMany:
		s.MappedBy = e.MappedBy
		s.JoinColumn = e.JoinColumn
		s.IDType = e.IDType
	case *ManyToOne:
		s.JoinColumn = e.JoinColumn
		s.IDType = e.IDType
	case *ManyToMany:
		s.MappedBy = e.MappedBy
		s.JoinTable = e.JoinTable
		s.IDType = e.IDType
	}
	return s
}

func (s *graphsSnapshot) restore() (*Graphs, error) {
	g := &Graphs{namespaces: make(map[string]*Graph)}
	for _, gs := range s.Namespaces {
		gr := &Graph{Namespace: gs.Namespace, types: make(map[string]*Type)}
		for _, ts := range gs.Types {
			t, err := ts.restore()
			if err != nil {
				return nil, err
			}
			q := t.QualifiedName()
			gr.types[q] = t
			gr.order = append(gr.order, q)
		}
		g.namespaces[gs.Namespace] = gr
		g.order = append(g.order, gs.Namespace)
	}
	return g, nil
}

func (s *typeSnapshot) restore() (*Type, error) {
	t := &Type{
		Name:      s.Name,
		Namespace: s.Namespace,
		Table:     s.Table,
		Pos:       s.Pos,
	}
	if s.ID != nil {
		t.ID = &ID{
			Name:      s.ID.Name,
			Type:      s.ID.Type,
			Generated: s.ID.Generated,
			Nullable:  s.ID.Nullable,
			Column:    s.ID.Column,
			Converter: s.ID.Converter,
		}
	}
	for _, fs := range s.Fields {
		t.Fields = append(t.Fields, fs.restore())
	}
	for _, es := range s.Edges {
		e, err := es.restore()
		if err != nil {
			return nil, fmt.Errorf("relmodel: entity %s: %w", t.QualifiedName(), err)
		}
		t.Edges = append(t.Edges, e)
	}
	for _, es := range s.Embeds {
		em := &Embed{
			Name:          es.Name,
			QualifiedName: es.QualifiedName,
			Nullable:      es.Nullable,
		}
		for _, fs := range es.Fields {
			em.Fields = append(em.Fields, fs.restore())
		}
		t.Embeds = append(t.Embeds, em)
	}
	return t, nil
}

func (s *fieldSnapshot) restore() *Field {
	return &Field{
		Name:      s.Name,
		Type:      s.Type,
		Nullable:  s.Nullable,
		Column:    s.Column,
		Converter: s.Converter,
		Enum:      s.Enum,
	}
}

func (s *edgeSnapshot) restore() (Edge, error) {
	switch s.Rel {
	case O2O:
		return &OneToOne{
			Name:       s.Name,
			Target:     s.Target,
			Mapped:     s.Mapped,
			MappedBy:   s.MappedBy,
			JoinColumn: s.JoinColumn,
			IDType:     s.IDType,
		}, nil
	case O2M:
		return &OneToMany{
			Name:       s.Name,
			Target:     s.Target,
			MappedBy:   s.MappedBy,
			JoinColumn: s.JoinColumn,
			IDType:     s.IDType,
		}, nil
	case M2O:
		return &ManyToOne{
			Name:       s.Name,
			Target:     s.Target,
			Mapped:     s.Mapped,
			JoinColumn: s.JoinColumn,
			IDType:     s.IDType,
		}, nil
	case M2M:
		return &ManyToMany{
			Name:      s.Name,
			Target:    s.Target,
			MappedBy:  s.MappedBy,
			JoinTable: s.JoinTable,
			IDType:    s.IDType,
		}, nil
	default:
		return nil, fmt.Errorf("edge %s: unknown relationship kind %d", s.Name, int(s.Rel))
	}
}
