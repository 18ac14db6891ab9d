package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/ir"
	"github.com/roach88/irkit/internal/location"
)

func TestIntegerTypeInterning(t *testing.T) {
	ctx := newContext()

	a := GetIntegerType(ctx, 64, Signed)
	b := GetIntegerType(ctx, 64, Signed)
	assert.True(t, a.Ptr() == b.Ptr())

	c := GetIntegerType(ctx, 64, Unsigned)
	assert.False(t, a.Ptr() == c.Ptr())

	assert.Equal(t, 64, a.Deref().Width())
	assert.Equal(t, Signed, a.Deref().Signedness())
	assert.Equal(t, "signed", a.Deref().Signedness().String())
	assert.True(t, ir.TypeIs[IntegerType](a.Ptr()))
	assert.False(t, ir.TypeIs[UnitType](a.Ptr()))
}

func TestParsedTypesAreInterned(t *testing.T) {
	ctx := newContext()
	want := GetIntegerType(ctx, 32, Signless)

	got, err := ir.ParseTypeString(ctx, "builtin.integer i32")
	require.NoError(t, err)
	assert.True(t, want.Ptr() == got)

	n := ctx.NumTypes()
	_, err = ir.ParseTypeString(ctx, "builtin.integer i32")
	require.NoError(t, err)
	assert.Equal(t, n, ctx.NumTypes())
}

func TestFunctionTypeInterning(t *testing.T) {
	ctx := newContext()
	i1 := GetIntegerType(ctx, 1, Signless).Ptr()
	si32 := GetIntegerType(ctx, 32, Signed).Ptr()
	unit := GetUnitType(ctx).Ptr()

	f := GetFunctionType(ctx, []ir.TypePtr{si32, unit}, []ir.TypePtr{i1})
	g := GetFunctionType(ctx, []ir.TypePtr{si32, unit}, []ir.TypePtr{i1})
	h := GetFunctionType(ctx, []ir.TypePtr{unit, si32}, []ir.TypePtr{i1})
	assert.True(t, f.Ptr() == g.Ptr())
	assert.False(t, f.Ptr() == h.Ptr())

	assert.Equal(t, []ir.TypePtr{si32, unit}, f.Deref().Inputs())
	assert.Equal(t, []ir.TypePtr{i1}, f.Deref().Results())
	assert.Equal(t,
		"builtin.function <(builtin.integer si32, builtin.unit) -> (builtin.integer i1)>",
		ir.PrintType(ctx, f.Ptr()))
}

func TestTypeRoundTrips(t *testing.T) {
	ctx := newContext()
	tests := []string{
		"builtin.integer i1",
		"builtin.integer si64",
		"builtin.integer ui8",
		"builtin.unit",
		"builtin.function <() -> ()>",
		"builtin.function <(builtin.integer si32, builtin.unit) -> (builtin.integer i1)>",
		"builtin.function <(builtin.function <() -> (builtin.unit)>) -> ()>",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			ty, err := ir.ParseTypeString(ctx, text)
			require.NoError(t, err)
			assert.Equal(t, text, ir.PrintType(ctx, ty))
			assert.NoError(t, ty.Verify())

			again, err := ir.ParseTypeString(ctx, ir.PrintType(ctx, ty))
			require.NoError(t, err)
			assert.True(t, ty == again)
		})
	}
}

func TestTypeParseErrors(t *testing.T) {
	ctx := newContext()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing width", "builtin.integer si", "Unexpected end of input, expected bit width"},
		{"zero width", "builtin.integer i0", "Invalid integer width 0"},
		{"width too large", "builtin.integer i4294967296", "Integer width 4294967296 exceeds the maximum of 16777216"},
		{"bad prefix", "builtin.integer u8", "Unexpected `u`, expected si, ui or i"},
		{"missing arrow", "builtin.function <() ()>", "expected `->`"},
		{"bad separator", "builtin.function <(builtin.unit; builtin.unit) -> ()>", "Unexpected `;`, expected `,` or `)`"},
		{"unknown kind", "builtin.float f32", "Unregistered type builtin.float"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ir.ParseTypeString(ctx, tt.input)
			require.Error(t, err)
			assert.True(t, diag.IsInput(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestIntegerTypeVerify(t *testing.T) {
	ctx := newContext()
	bad := GetIntegerType(ctx, 0, Signless)

	err := bad.Ptr().Verify()
	require.Error(t, err)
	assert.True(t, diag.IsVerify(err))
	assert.Contains(t, err.Error(), "Integer type width must be positive, got 0")

	huge := GetIntegerType(ctx, MaxIntegerWidth+1, Signed)
	err = huge.Ptr().Verify()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds the maximum of 16777216")

	require.NoError(t, GetIntegerType(ctx, MaxIntegerWidth, Signed).Ptr().Verify())
}

func TestIntegerWidthLimitLocation(t *testing.T) {
	ctx := newContext()
	_, err := ir.ParseAttrString(ctx, "builtin.integer <1: i4294967296>")
	require.Error(t, err)
	assert.True(t, diag.IsInput(err))
	assert.Equal(t, location.At(location.InMemory, 1, 22), diag.LocOf(err))
}
