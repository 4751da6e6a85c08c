package load

import (
	"fmt"
	"go/ast"
	"go/types"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/packages"
)

// entityMarker is the directive that marks a struct type as a
// persistence entity, e.g.:
//
//	//relmodel:entity table=users
//	type User struct { ... }
const entityMarker = "relmodel:entity"

// Parse loads the packages matched by the config patterns and collects
// the annotated declarations of every marked struct type. Packages are
// scanned concurrently; the returned collections preserve package and
// declaration order.
func Parse(cfg *Config) (*Declarations, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.defaults()
	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedSyntax | packages.NeedTypes |
			packages.NeedTypesInfo | packages.NeedFiles,
		Dir:        cfg.Dir,
		BuildFlags: cfg.BuildFlags,
	}, cfg.Patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			return nil, fmt.Errorf("load package %s: %v", pkg.PkgPath, e)
		}
	}
	parts := make([]*Declarations, len(pkgs))
	var eg errgroup.Group
	for i, pkg := range pkgs {
		i, pkg := i, pkg
		eg.Go(func() error {
			d, err := parsePackage(cfg, pkg)
			if err != nil {
				return err
			}
			parts[i] = d
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return merge(parts), nil
}

// merge concatenates per-package collections in package order.
func merge(parts []*Declarations) *Declarations {
	out := &Declarations{}
	for _, p := range parts {
		out.Entities = append(out.Entities, p.Entities...)
		out.IDs = append(out.IDs, p.IDs...)
		out.Generated = append(out.Generated, p.Generated...)
		out.Columns = append(out.Columns, p.Columns...)
		out.Embedded = append(out.Embedded, p.Embedded...)
		out.OneToOnes = append(out.OneToOnes, p.OneToOnes...)
		out.OneToManys = append(out.OneToManys, p.OneToManys...)
		out.ManyToOnes = append(out.ManyToOnes, p.ManyToOnes...)
		out.ManyToManys = append(out.ManyToManys, p.ManyToManys...)
	}
	return out
}

// parsePackage collects the declarations of one loaded package.
func parsePackage(cfg *Config, pkg *packages.Package) (*Declarations, error) {
	d := &Declarations{}
	for _, f := range pkg.Syntax {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				table, ok := entityDirective(doc)
				if !ok {
					continue
				}
				st, ok := ts.Type.(*ast.StructType)
				if !ok {
					return nil, fmt.Errorf("%s: %s marker on non-struct type %s",
						pkg.Fset.Position(ts.Pos()), entityMarker, ts.Name.Name)
				}
				if err := collectEntity(cfg, pkg, d, ts.Name.Name, table, st); err != nil {
					return nil, err
				}
			}
		}
	}
	return d, nil
}

// entityDirective scans a doc comment for the entity marker and
// returns the declared table name, if any.
func entityDirective(doc *ast.CommentGroup) (table string, ok bool) {
	if doc == nil {
		return "", false
	}
	for _, c := range doc.List {
		line := strings.TrimPrefix(c.Text, "//")
		if !strings.HasPrefix(line, entityMarker) {
			continue
		}
		for _, kv := range strings.Fields(line[len(entityMarker):]) {
			if v, found := strings.CutPrefix(kv, "table="); found {
				table = v
			}
		}
		return table, true
	}
	return "", false
}

// collectEntity appends the entity and its annotated members to d.
func collectEntity(cfg *Config, pkg *packages.Package, d *Declarations, name, table string, st *ast.StructType) error {
	pos := pkg.Fset.Position(st.Pos()).String()
	ent := &Entity{Namespace: pkg.PkgPath, Name: name, Table: table, Pos: pos}
	d.Entities = append(d.Entities, ent)
	owner := ent.QualifiedName()
	for _, fd := range st.Fields.List {
		tag := fieldTag(fd)
		typ := pkg.TypesInfo.TypeOf(fd.Type)
		for _, ident := range fieldNames(fd) {
			m := &Member{
				Entity: owner,
				Name:   ident,
				Pos:    pkg.Fset.Position(fd.Pos()).String(),
			}
			if err := collectMember(cfg, pkg, d, m, typ, tag); err != nil {
				return fmt.Errorf("%s: field %s.%s: %w", m.Pos, name, ident, err)
			}
		}
	}
	return nil
}

// fieldNames returns the declared names of a struct field. Embedded
// (anonymous) Go fields are named after their type.
func fieldNames(fd *ast.Field) []string {
	if len(fd.Names) == 0 {
		if id := embeddedIdent(fd.Type); id != "" {
			return []string{id}
		}
		return nil
	}
	names := make([]string, 0, len(fd.Names))
	for _, n := range fd.Names {
		names = append(names, n.Name)
	}
	return names
}

func embeddedIdent(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.StarExpr:
		return embeddedIdent(e.X)
	}
	return ""
}

// fieldTag returns the parsed struct tag of a field.
func fieldTag(fd *ast.Field) reflect.StructTag {
	if fd.Tag == nil {
		return ""
	}
	raw, err := strconv.Unquote(fd.Tag.Value)
	if err != nil {
		return ""
	}
	return reflect.StructTag(raw)
}

// collectMember routes one struct field into the matching declaration
// collection based on its tags.
func collectMember(cfg *Config, pkg *packages.Package, d *Declarations, m *Member, typ types.Type, tag reflect.StructTag) error {
	if rel, ok := tag.Lookup(cfg.RelTag); ok {
		return collectRelationship(d, m, typ, rel)
	}
	col, ok := tag.Lookup(cfg.Tag)
	if !ok {
		return nil
	}
	value, opts := splitTag(col)
	m.Column = value
	var id, generated, embedded bool
	for _, opt := range opts {
		switch {
		case opt == "id":
			id = true
		case opt == "generated":
			generated = true
		case opt == "embedded":
			embedded = true
		case opt == "nullable":
			m.Nullable = true
		case opt == "notnull":
			m.NotNull = true
		case strings.HasPrefix(opt, "enum="):
			m.Enum = opt[len("enum="):]
		case strings.HasPrefix(opt, "converter="):
			m.Converter = opt[len("converter="):]
		default:
			return fmt.Errorf("unknown tag option %q", opt)
		}
	}
	switch {
	case embedded:
		return collectEmbedded(cfg, pkg, d, m, typ)
	case id:
		m.Type = typeRef(typ)
		d.IDs = append(d.IDs, m)
		if generated {
			d.Generated = append(d.Generated, &Member{Entity: m.Entity, Name: m.Name, Pos: m.Pos})
		}
		return nil
	case generated:
		return fmt.Errorf("generated option requires the id option")
	default:
		m.Type = typeRef(typ)
		d.Columns = append(d.Columns, m)
		return nil
	}
}

// collectRelationship parses a rel tag of the form
// "o2m,column=owner_id,table=user_groups,mappedBy=owner".
func collectRelationship(d *Declarations, m *Member, typ types.Type, tag string) error {
	kind, opts := splitTag(tag)
	for _, opt := range opts {
		switch {
		case strings.HasPrefix(opt, "column="):
			m.JoinColumn = opt[len("column="):]
		case strings.HasPrefix(opt, "table="):
			m.JoinTable = opt[len("table="):]
		case strings.HasPrefix(opt, "mappedBy="):
			m.MappedBy = opt[len("mappedBy="):]
		default:
			return fmt.Errorf("unknown rel option %q", opt)
		}
	}
	target, err := targetName(typ, kind)
	if err != nil {
		return err
	}
	m.Target = target
	switch kind {
	case "o2o":
		d.OneToOnes = append(d.OneToOnes, m)
	case "o2m":
		d.OneToManys = append(d.OneToManys, m)
	case "m2o":
		d.ManyToOnes = append(d.ManyToOnes, m)
	case "m2m":
		d.ManyToManys = append(d.ManyToManys, m)
	default:
		return fmt.Errorf("unknown relationship kind %q", kind)
	}
	return nil
}

// collectEmbedded resolves an embedded member and its nested columns
// from the embeddable struct type.
func collectEmbedded(cfg *Config, pkg *packages.Package, d *Declarations, m *Member, typ types.Type) error {
	named, ok := namedOf(typ)
	if !ok {
		return fmt.Errorf("embedded member is not a named struct type")
	}
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return fmt.Errorf("embedded type %s is not a struct", named.Obj().Name())
	}
	m.Target = Qualify(named.Obj().Pkg().Path(), named.Obj().Name())
	for i := 0; i < st.NumFields(); i++ {
		tag := reflect.StructTag(st.Tag(i))
		col, ok := tag.Lookup(cfg.Tag)
		if !ok {
			continue
		}
		value, opts := splitTag(col)
		nested := &Member{
			Entity: m.Entity,
			Name:   st.Field(i).Name(),
			Column: value,
			Type:   typeRef(st.Field(i).Type()),
		}
		for _, opt := range opts {
			switch {
			case opt == "nullable":
				nested.Nullable = true
			case opt == "notnull":
				nested.NotNull = true
			case strings.HasPrefix(opt, "converter="):
				nested.Converter = opt[len("converter="):]
			default:
				return fmt.Errorf("unknown tag option %q on embedded column %s", opt, nested.Name)
			}
		}
		m.Columns = append(m.Columns, nested)
	}
	d.Embedded = append(d.Embedded, m)
	return nil
}

// targetName resolves the referenced entity of a relationship member.
// Collection-valued kinds take the element type of the slice.
func targetName(typ types.Type, kind string) (string, error) {
	if kind == "o2m" || kind == "m2m" {
		sl, ok := typ.Underlying().(*types.Slice)
		if !ok {
			return "", fmt.Errorf("%s member must be slice-valued", kind)
		}
		typ = sl.Elem()
	}
	named, ok := namedOf(typ)
	if !ok {
		return "", fmt.Errorf("relationship target is not a named type")
	}
	obj := named.Obj()
	if obj.Pkg() == nil {
		return "", fmt.Errorf("relationship target %s has no package", obj.Name())
	}
	return Qualify(obj.Pkg().Path(), obj.Name()), nil
}

// namedOf unwraps pointers and returns the named type, if any.
func namedOf(typ types.Type) (*types.Named, bool) {
	if p, ok := typ.(*types.Pointer); ok {
		typ = p.Elem()
	}
	named, ok := typ.(*types.Named)
	return named, ok
}

// typeRef builds the classifiable type reference for a member type.
// Pointer types classify as their element type.
func typeRef(typ types.Type) *TypeRef {
	if typ == nil {
		return nil
	}
	if p, ok := typ.(*types.Pointer); ok {
		typ = p.Elem()
	}
	switch t := typ.(type) {
	case *types.Basic:
		return &TypeRef{Ident: t.Name()}
	case *types.Named:
		obj := t.Obj()
		ref := &TypeRef{Ident: obj.Name()}
		if obj.Pkg() != nil {
			ref.Ident = obj.Pkg().Name() + "." + obj.Name()
			ref.PkgPath = obj.Pkg().Path()
		}
		if b, ok := t.Underlying().(*types.Basic); ok {
			ref.Numeric = b.Info()&types.IsNumeric != 0
		}
		return ref
	default:
		return &TypeRef{Ident: typ.String()}
	}
}

// splitTag splits a tag into its leading value and trailing options.
func splitTag(tag string) (value string, opts []string) {
	parts := strings.Split(tag, ",")
	for i := 1; i < len(parts); i++ {
		if p := strings.TrimSpace(parts[i]); p != "" {
			opts = append(opts, p)
		}
	}
	return strings.TrimSpace(parts[0]), opts
}
