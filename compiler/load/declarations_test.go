package load

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualify(t *testing.T) {
	assert.Equal(t, "store.Order", Qualify("store", "Order"))
	assert.Equal(t, "Order", Qualify("", "Order"))

	ns, name := SplitQualified("example.com/app/store.Order")
	assert.Equal(t, "example.com/app/store", ns)
	assert.Equal(t, "Order", name)

	ns, name = SplitQualified("Order")
	assert.Empty(t, ns)
	assert.Equal(t, "Order", name)
}

func TestTypeRef(t *testing.T) {
	t.Run("builtins", func(t *testing.T) {
		assert.True(t, (&TypeRef{Ident: "string"}).IsString())
		assert.True(t, (&TypeRef{Ident: "bool"}).IsBool())
		assert.True(t, (&TypeRef{Ident: "int"}).IsInt())
		assert.True(t, (&TypeRef{Ident: "int32"}).IsInt())
		assert.False(t, (&TypeRef{Ident: "int64"}).IsInt())
		assert.True(t, (&TypeRef{Ident: "int16"}).IsInt16())
		assert.True(t, (&TypeRef{Ident: "float64"}).IsNumeric())
		assert.True(t, (&TypeRef{Ident: "uint8"}).IsNumeric())
		assert.False(t, (&TypeRef{Ident: "string"}).IsNumeric())
	})

	t.Run("named types shadow builtins", func(t *testing.T) {
		// A named type called "string" in some package is not the
		// builtin string.
		ref := &TypeRef{Ident: "custom.string", PkgPath: "example.com/custom"}
		assert.False(t, ref.IsString())
		assert.False(t, ref.IsNumeric())
	})

	t.Run("uuid", func(t *testing.T) {
		ref := &TypeRef{Ident: "uuid.UUID", PkgPath: "github.com/google/uuid"}
		assert.True(t, ref.IsUUID())
		assert.False(t, (&TypeRef{Ident: "uuid.UUID", PkgPath: "example.com/uuid"}).IsUUID())
	})

	t.Run("named numeric subtype", func(t *testing.T) {
		ref := &TypeRef{Ident: "store.Cents", PkgPath: "example.com/store", Numeric: true}
		assert.True(t, ref.IsNumeric())
		assert.False(t, ref.IsInt())
	})

	t.Run("string form", func(t *testing.T) {
		var ref *TypeRef
		assert.Equal(t, "<untyped>", ref.String())
		assert.Equal(t, "int16", (&TypeRef{Ident: "int16"}).String())
	})
}

func TestDeclarationsRoundTrip(t *testing.T) {
	in := &Declarations{
		Entities: []*Entity{
			{Namespace: "store", Name: "Order", Table: "orders", Pos: "orders.go:10"},
		},
		IDs: []*Member{
			{Entity: "store.Order", Name: "ID", Type: &TypeRef{Ident: "int"}},
		},
		Generated: []*Member{
			{Entity: "store.Order", Name: "ID"},
		},
		Columns: []*Member{
			{Entity: "store.Order", Name: "Total", Type: &TypeRef{Ident: "int64"}, Nullable: true},
		},
		OneToManys: []*Member{
			{Entity: "store.Order", Name: "Items", Target: "store.Item", JoinColumn: "order_id"},
		},
	}

	buf, err := MarshalDeclarations(in)
	require.NoError(t, err)
	out, err := UnmarshalDeclarations(buf)
	require.NoError(t, err)

	require.Len(t, out.Entities, 1)
	assert.Equal(t, "orders", out.Entities[0].Table)
	// Positions are process-local and stay out of the wire form.
	assert.Empty(t, out.Entities[0].Pos)
	require.Len(t, out.IDs, 1)
	assert.True(t, out.IDs[0].Type.IsInt())
	require.Len(t, out.OneToManys, 1)
	assert.Equal(t, "order_id", out.OneToManys[0].JoinColumn)
	assert.True(t, out.Columns[0].Nullable)

	_, err = UnmarshalDeclarations([]byte("{broken"))
	require.Error(t, err)
}
