package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relmodel/schema/field"
)

func TestTypeQualifiedName(t *testing.T) {
	typ := &Type{Name: "Order", Namespace: "store"}
	assert.Equal(t, "store.Order", typ.QualifiedName())
	assert.Equal(t, "Order", (&Type{Name: "Order"}).QualifiedName())
	assert.Equal(t, "order", typ.Label())
	assert.Equal(t, "order_item", (&Type{Name: "OrderItem"}).Label())
}

func TestHasAssignableValues(t *testing.T) {
	t.Run("generated id alone has none", func(t *testing.T) {
		typ := &Type{Name: "Order", ID: &ID{Name: "ID", Generated: true}}
		assert.False(t, typ.HasAssignableValues())
	})

	t.Run("assigned id counts", func(t *testing.T) {
		typ := &Type{Name: "Order", ID: &ID{Name: "ID"}}
		assert.True(t, typ.HasAssignableValues())
	})

	t.Run("scalar property counts", func(t *testing.T) {
		typ := &Type{
			Name:   "Order",
			ID:     &ID{Name: "ID", Generated: true},
			Fields: []*Field{{Name: "Total"}},
		}
		assert.True(t, typ.HasAssignableValues())
	})

	t.Run("embedded group counts", func(t *testing.T) {
		typ := &Type{
			Name:   "Order",
			ID:     &ID{Name: "ID", Generated: true},
			Embeds: []*Embed{{Name: "Address"}},
		}
		assert.True(t, typ.HasAssignableValues())
	})

	t.Run("many-to-many counts", func(t *testing.T) {
		typ := &Type{
			Name:  "Order",
			ID:    &ID{Name: "ID", Generated: true},
			Edges: []Edge{&ManyToMany{Name: "Products"}},
		}
		assert.True(t, typ.HasAssignableValues())
	})

	t.Run("mapped one-to-one counts, synthesized does not", func(t *testing.T) {
		typ := &Type{
			Name:  "Order",
			ID:    &ID{Name: "ID", Generated: true},
			Edges: []Edge{&OneToOne{Name: "Cart", Mapped: true}},
		}
		assert.True(t, typ.HasAssignableValues())

		typ.Edges = []Edge{&OneToOne{Name: "Cart"}}
		assert.False(t, typ.HasAssignableValues())
	})

	t.Run("other edges do not count", func(t *testing.T) {
		typ := &Type{
			Name: "Order",
			ID:   &ID{Name: "ID", Generated: true},
			Edges: []Edge{
				&OneToMany{Name: "Items"},
				&ManyToOne{Name: "Customer", Mapped: true},
			},
		}
		assert.False(t, typ.HasAssignableValues())
	})
}

func TestMappedEdgeLookups(t *testing.T) {
	typ := &Type{
		Name: "Order",
		Edges: []Edge{
			&ManyToOne{Name: "Customer", Target: "store.Customer", Mapped: true},
			&ManyToOne{Name: "ghost", Target: "store.Ghost"},
			&OneToOne{Name: "Cart", Target: "store.Cart", Mapped: true},
		},
	}

	m2o, ok := typ.MappedManyToOne("store.Customer")
	require.True(t, ok)
	assert.Equal(t, "Customer", m2o.Name)

	// Unmapped edges never satisfy the lookup.
	_, ok = typ.MappedManyToOne("store.Ghost")
	assert.False(t, ok)

	o2o, ok := typ.MappedOneToOne("store.Cart")
	require.True(t, ok)
	assert.Equal(t, "Cart", o2o.Name)

	_, ok = typ.MappedOneToOne("store.Customer")
	assert.False(t, ok)
}

func TestRelString(t *testing.T) {
	assert.Equal(t, "O2O", O2O.String())
	assert.Equal(t, "O2M", O2M.String())
	assert.Equal(t, "M2O", M2O.String())
	assert.Equal(t, "M2M", M2M.String())
	assert.Equal(t, "Unknown", Unk.String())
}

func TestStructField(t *testing.T) {
	f := &Field{Name: "full_name"}
	assert.Equal(t, "FullName", f.StructField())
	id := &ID{Name: "code"}
	assert.Equal(t, "Code", id.StructField())
}

func TestEnumFieldsAndIDType(t *testing.T) {
	typ := &Type{
		Name: "Order",
		Fields: []*Field{
			{Name: "Total"},
			{Name: "Status", Enum: field.EnumString},
		},
	}
	enums := typ.EnumFields()
	require.Len(t, enums, 1)
	assert.Equal(t, "Status", enums[0].Name)
}
