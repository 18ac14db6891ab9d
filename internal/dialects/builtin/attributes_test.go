package builtin

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/irkit/internal/apint"
	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/ir"
	"github.com/roach88/irkit/internal/location"
)

func newGolden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func newContext() *ir.Context {
	ctx := ir.NewContext()
	Register(ctx)
	return ctx
}

func TestIntegerAttributes(t *testing.T) {
	ctx := newContext()
	i64 := GetIntegerType(ctx, 64, Signed)

	zero := NewIntegerAttr(i64, apint.FromInt64(0, 64))
	fifteen := NewIntegerAttr(i64, apint.FromInt64(15, 64))

	assert.True(t, ir.Is[*IntegerAttr](zero))
	assert.False(t, ir.AttrEqual(zero, fifteen))
	assert.True(t, ir.AttrEqual(zero, NewIntegerAttr(i64, apint.FromInt64(0, 64))))

	assert.Equal(t, "builtin.integer <0: si64>", ir.PrintAttr(ctx, zero))
	assert.Equal(t, "builtin.integer <15: si64>", ir.PrintAttr(ctx, fifteen))

	assert.True(t, zero.Value().IsZero())
	assert.Equal(t, int64(15), fifteen.Value().Int64())
}

func TestIntegerAttributeRejectsNonIntegerType(t *testing.T) {
	ctx := newContext()
	_, err := ir.ParseAttrString(ctx, "builtin.integer <0: builtin.unit>")
	require.Error(t, err)
	assert.True(t, diag.IsInput(err))
	assert.Equal(t, location.At(location.InMemory, 1, 21), diag.LocOf(err))
	assert.Contains(t, err.Error(), "Unexpected `b`, expected si, ui or i")
}

func TestIntegerAttributeRange(t *testing.T) {
	ctx := newContext()

	_, err := ir.ParseAttrString(ctx, "builtin.integer <256: ui8>")
	require.Error(t, err)
	assert.True(t, diag.IsInput(err))
	assert.Equal(t, location.At(location.InMemory, 1, 18), diag.LocOf(err))
	assert.Contains(t, err.Error(), "does not fit in 8 bits")

	_, err = ir.ParseAttrString(ctx, "builtin.integer <: si8>")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unexpected `:`, expected integer literal")
}

func TestIntegerAttributeSignedness(t *testing.T) {
	ctx := newContext()

	a, err := ir.ParseAttrString(ctx, "builtin.integer <-1: si8>")
	require.NoError(t, err)
	assert.Equal(t, "builtin.integer <-1: si8>", ir.PrintAttr(ctx, a))

	// Signless and unsigned values print unsigned.
	b, err := ir.ParseAttrString(ctx, "builtin.integer <-1: i8>")
	require.NoError(t, err)
	assert.Equal(t, "builtin.integer <255: i8>", ir.PrintAttr(ctx, b))

	c, err := ir.ParseAttrString(ctx, ir.PrintAttr(ctx, b))
	require.NoError(t, err)
	assert.True(t, ir.AttrEqual(b, c))
}

func TestIntegerAttributeBitwidthVerification(t *testing.T) {
	ctx := newContext()
	i64 := GetIntegerType(ctx, 64, Signed)

	ok := NewIntegerAttr(i64, apint.FromInt64(7, 64))
	require.NoError(t, ok.Verify(ctx))

	// Construction does not validate; only Verify does.
	bad := NewIntegerAttr(i64, apint.FromInt64(7, 32))
	err := bad.Verify(ctx)
	require.Error(t, err)
	assert.True(t, diag.IsVerify(err))
	assert.True(t, errors.Is(err, ErrIntegerBitwidth))
	assert.Contains(t, err.Error(), "The bitwidth type does not match the bitwidth of the value.")
}

func TestStringAttributes(t *testing.T) {
	ctx := newContext()

	hello := NewStringAttr("hello")
	world := NewStringAttr("world")
	assert.True(t, ir.Is[*StringAttr](hello))
	assert.False(t, ir.AttrEqual(hello, world))
	assert.True(t, ir.AttrEqual(hello, NewStringAttr("hello")))
	assert.Equal(t, `builtin.string "hello"`, ir.PrintAttr(ctx, hello))
	assert.Equal(t, "world", world.Value())

	for _, text := range []string{
		`builtin.string "hello"`,
		`builtin.string "hello \"world\""`,
		`builtin.string "back\\slash"`,
	} {
		a, err := ir.ParseAttrString(ctx, text)
		require.NoError(t, err, text)
		assert.Equal(t, text, ir.PrintAttr(ctx, a))
	}

	a, err := ir.ParseAttrString(ctx, `builtin.string "hello \"world\""`)
	require.NoError(t, err)
	assert.Equal(t, `hello "world"`, a.(*StringAttr).Value())
}

func TestStringAttributeBadEscape(t *testing.T) {
	ctx := newContext()
	_, err := ir.ParseAttrString(ctx, `builtin.string "hello \k "`)
	require.Error(t, err)
	assert.True(t, diag.IsInput(err))
	assert.Equal(t, location.At(location.InMemory, 1, 24), diag.LocOf(err))

	g := newGolden(t)
	g.Assert(t, "string_bad_escape", []byte(err.Error()))
}

func TestDictionaryAttributes(t *testing.T) {
	ctx := newContext()
	hello, world := ir.MustIdentifier("hello"), ir.MustIdentifier("world")
	helloAttr, worldAttr := NewStringAttr("hello"), NewStringAttr("world")

	dict1 := NewDictAttr(map[ir.Identifier]ir.Attribute{hello: helloAttr, world: worldAttr})
	dict2 := NewDictAttr(map[ir.Identifier]ir.Attribute{hello: NewStringAttr("hello")})
	dict1Rev := &DictAttr{}
	dict1Rev.Insert(world, worldAttr)
	dict1Rev.Insert(hello, helloAttr)

	assert.False(t, ir.AttrEqual(dict1, dict2))
	assert.True(t, ir.AttrEqual(dict1, dict1Rev))

	got, ok := dict1.Lookup(hello)
	require.True(t, ok)
	assert.True(t, ir.AttrEqual(helloAttr, got))
	_, ok = dict1.Lookup("hello_world")
	assert.False(t, ok)

	dict2.Insert(world, worldAttr)
	assert.True(t, ir.AttrEqual(dict1, dict2))

	dict1.Remove(hello)
	dict2.Remove(hello)
	assert.True(t, ir.AttrEqual(dict1, dict2))

	assert.Equal(t, `builtin.dict {world: builtin.string "world"}`, ir.PrintAttr(ctx, dict1))
}

func TestVecAttributes(t *testing.T) {
	hello, world := NewStringAttr("hello"), NewStringAttr("world")
	v := NewVecAttr(hello, world)

	elems := v.Elems()
	require.Len(t, elems, 2)
	assert.True(t, ir.AttrEqual(hello, elems[0]))
	assert.True(t, ir.AttrEqual(world, elems[1]))
	assert.False(t, ir.AttrEqual(v, NewVecAttr(world, hello)), "order matters")

	clone := v.Clone()
	assert.True(t, ir.AttrEqual(v, clone))
	assert.NotSame(t, v.Elems()[0], clone.(*VecAttr).Elems()[0])
}

func TestVecAttributeVerifiesElements(t *testing.T) {
	ctx := newContext()
	i64 := GetIntegerType(ctx, 64, Signed)
	v := NewVecAttr(NewUnitAttr(), NewIntegerAttr(i64, apint.FromInt64(1, 32)))

	err := v.Verify(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIntegerBitwidth))
}

func TestTypeAttributes(t *testing.T) {
	ctx := newContext()
	ty := GetIntegerType(ctx, 64, Signed).Ptr()
	tyAttr := NewTypeAttr(ty)

	var generic ir.Attribute = tyAttr
	typed, ok := ir.AttrCast[TypedAttrInterface](generic)
	require.True(t, ok)
	assert.True(t, typed.Type() == ty)

	text := ir.PrintAttr(ctx, tyAttr)
	assert.Equal(t, "builtin.type builtin.integer si64", text)

	parsed, err := ir.ParseAttrString(ctx, text)
	require.NoError(t, err)
	assert.Equal(t, text, ir.PrintAttr(ctx, parsed))
	assert.True(t, ir.AttrEqual(tyAttr, parsed), "parsing interns the same type")
}

func TestTypedAttrInterfaceQuery(t *testing.T) {
	ctx := newContext()
	i32 := GetIntegerType(ctx, 32, Signless)

	var intAttr ir.Attribute = NewIntegerAttr(i32, apint.FromInt64(3, 32))
	typed, ok := ir.AttrCast[TypedAttrInterface](intAttr)
	require.True(t, ok)
	assert.True(t, typed.Type() == i32.Ptr())

	_, ok = ir.AttrCast[TypedAttrInterface](NewStringAttr("x"))
	assert.False(t, ok, "kinds that never registered the interface yield nothing")
}

func TestAttributeRoundTrips(t *testing.T) {
	ctx := newContext()
	tests := []string{
		"builtin.identifier hello_world",
		"builtin.unit",
		"builtin.vec []",
		`builtin.vec [builtin.string "hello", builtin.unit, builtin.integer <-1: si8>]`,
		"builtin.dict {}",
		`builtin.dict {a: builtin.unit, b: builtin.vec [builtin.identifier x]}`,
		"builtin.type builtin.function <(builtin.integer si32, builtin.unit) -> (builtin.integer i1)>",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			a, err := ir.ParseAttrString(ctx, text)
			require.NoError(t, err)
			assert.Equal(t, text, ir.PrintAttr(ctx, a))
			assert.NoError(t, a.Verify(ctx))

			again, err := ir.ParseAttrString(ctx, ir.PrintAttr(ctx, a))
			require.NoError(t, err)
			assert.True(t, ir.AttrEqual(a, again))
			assert.True(t, ir.AttrEqual(a, a.Clone()))
		})
	}
}

func TestDictAttributeSortsKeysWhenPrinting(t *testing.T) {
	ctx := newContext()
	a, err := ir.ParseAttrString(ctx, "builtin.dict {zeta: builtin.unit,\n  alpha: builtin.unit}")
	require.NoError(t, err)
	assert.Equal(t, "builtin.dict {alpha: builtin.unit, zeta: builtin.unit}", ir.PrintAttr(ctx, a))
}

func TestUnregisteredDialect(t *testing.T) {
	ctx := ir.NewContext()

	_, err := ir.ParseAttrString(ctx, `builtin.string "hello"`)
	require.Error(t, err)
	assert.Equal(t, location.At(location.InMemory, 1, 1), diag.LocOf(err))
	assert.Contains(t, err.Error(), "Unregistered dialect builtin")

	Register(ctx)
	_, err = ir.ParseAttrString(ctx, `builtin.string "hello"`)
	require.NoError(t, err)
}
