package gen

// Graph indexes the entity definitions of one namespace, keyed by
// qualified type name.
type Graph struct {
	// Namespace is the package all entities of this graph share.
	Namespace string

	types map[string]*Type
	order []string
}

// Type returns the entity with the given qualified name.
func (g *Graph) Type(qualified string) (*Type, bool) {
	t, ok := g.types[qualified]
	return t, ok
}

// Types returns all entities of the graph in registration order.
func (g *Graph) Types() []*Type {
	out := make([]*Type, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.types[name])
	}
	return out
}

// Len returns the number of entities in the graph.
func (g *Graph) Len() int { return len(g.types) }

// Graphs is the validated entity model: one graph per namespace. It is
// immutable once returned by the builder.
type Graphs struct {
	namespaces map[string]*Graph
	order      []string
}

// Namespace returns the graph of the given namespace.
func (g *Graphs) Namespace(ns string) (*Graph, bool) {
	gr, ok := g.namespaces[ns]
	return gr, ok
}

// Namespaces returns all graphs in registration order.
func (g *Graphs) Namespaces() []*Graph {
	out := make([]*Graph, 0, len(g.order))
	for _, ns := range g.order {
		out = append(out, g.namespaces[ns])
	}
	return out
}

// Lookup finds an entity by qualified name across all namespaces.
func (g *Graphs) Lookup(qualified string) (*Type, bool) {
	for _, gr := range g.namespaces {
		if t, ok := gr.types[qualified]; ok {
			return t, true
		}
	}
	return nil, false
}

// Len returns the total number of entities across all namespaces.
func (g *Graphs) Len() int {
	var n int
	for _, gr := range g.namespaces {
		n += len(gr.types)
	}
	return n
}
