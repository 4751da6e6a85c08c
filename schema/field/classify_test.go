package field

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// oracle is a canned-answer Oracle for exercising the classification
// tables without the discovery stage.
type oracle struct {
	name    string
	uuid    bool
	str     bool
	boolean bool
	i       bool
	i16     bool
	numeric bool
}

func (o oracle) IsUUID() bool    { return o.uuid }
func (o oracle) IsString() bool  { return o.str }
func (o oracle) IsBool() bool    { return o.boolean }
func (o oracle) IsInt() bool     { return o.i }
func (o oracle) IsInt16() bool   { return o.i16 }
func (o oracle) IsNumeric() bool { return o.numeric }
func (o oracle) String() string  { return o.name }

func TestIDTypeOf(t *testing.T) {
	tests := []struct {
		name string
		o    oracle
		want IDType
	}{
		{"uuid", oracle{uuid: true, numeric: false}, IDUUID},
		{"string", oracle{str: true}, IDString},
		{"int", oracle{i: true, numeric: true}, IDInt},
		{"int16", oracle{i16: true, numeric: true}, IDInt16},
		{"int64", oracle{numeric: true}, IDInt64},
		{"float64", oracle{numeric: true}, IDInt64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IDTypeOf(tt.o)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}

	t.Run("rank order beats table order", func(t *testing.T) {
		// A UUID-backed numeric type must classify as uuid, not as the
		// numeric bucket.
		got, err := IDTypeOf(oracle{uuid: true, numeric: true})
		require.NoError(t, err)
		assert.Equal(t, IDUUID, got)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := IDTypeOf(oracle{name: "bool", boolean: true})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedType))
		assert.True(t, IsUnsupportedTypeError(err))
		assert.Contains(t, err.Error(), `"bool"`)
	})
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		o    oracle
		want Type
	}{
		{"string", oracle{str: true}, TypeString},
		{"bool", oracle{boolean: true}, TypeBool},
		{"int", oracle{i: true, numeric: true}, TypeInt64},
		{"int64", oracle{numeric: true}, TypeInt64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TypeOf(tt.o)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		_, err := TypeOf(oracle{name: "time.Time"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedType))
		assert.Contains(t, err.Error(), "time.Time")
	})
}

func TestUnsupportedTypeError(t *testing.T) {
	t.Run("Is matches ErrUnsupportedType", func(t *testing.T) {
		err := NewUnsupportedTypeError("chan int")
		assert.True(t, err.Is(ErrUnsupportedType))
		assert.True(t, errors.Is(err, ErrUnsupportedType))
	})

	t.Run("IsUnsupportedTypeError helper", func(t *testing.T) {
		assert.True(t, IsUnsupportedTypeError(NewUnsupportedTypeError("x")))
		assert.False(t, IsUnsupportedTypeError(errors.New("other")))
		assert.False(t, IsUnsupportedTypeError(nil))
	})
}

func TestParseEnumEncoding(t *testing.T) {
	for in, want := range map[string]EnumEncoding{
		"":        EnumNone,
		"string":  EnumString,
		"ordinal": EnumOrdinal,
	} {
		got, err := ParseEnumEncoding(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseEnumEncoding("bitmask")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bitmask")
}
