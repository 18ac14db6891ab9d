package ir

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// otherAttr is a second kind, for cross-kind comparisons.
type otherAttr struct{ on bool }

func (*otherAttr) AttrID() AttrID        { return MustAttrID("testd.other") }
func (*otherAttr) Print(*Printer)        {}
func (*otherAttr) Verify(*Context) error { return nil }

func (a *otherAttr) Clone() Attribute {
	c := *a
	return &c
}

func (a *otherAttr) Equal(o Attribute) bool {
	b, ok := o.(*otherAttr)
	return ok && a.on == b.on
}

func TestAttrEqual(t *testing.T) {
	assert.True(t, AttrEqual(&flagAttr{on: true}, &flagAttr{on: true}))
	assert.False(t, AttrEqual(&flagAttr{on: true}, &flagAttr{on: false}))
	assert.False(t, AttrEqual(&flagAttr{on: true}, &otherAttr{on: true}), "different kinds never compare equal")
	assert.False(t, AttrEqual(&flagAttr{}, nil))
	assert.True(t, AttrEqual(nil, nil))
}

func TestDowncasts(t *testing.T) {
	var a Attribute = &flagAttr{on: true}

	assert.True(t, Is[*flagAttr](a))
	assert.False(t, Is[*otherAttr](a))

	f, ok := As[*flagAttr](a)
	require.True(t, ok)
	assert.True(t, f.on)

	o, ok := As[*otherAttr](a)
	assert.False(t, ok)
	assert.Nil(t, o)
}

func TestAttributeDictOrderIndependent(t *testing.T) {
	hello, world := MustIdentifier("hello"), MustIdentifier("world")

	var d1, d2 AttributeDict
	d1.Insert(hello, &flagAttr{on: true})
	d1.Insert(world, &flagAttr{on: false})
	d2.Insert(world, &flagAttr{on: false})
	d2.Insert(hello, &flagAttr{on: true})
	assert.True(t, d1.Equal(d2))

	d1.Remove(hello)
	assert.False(t, d1.Equal(d2))
	d2.Remove(hello)
	assert.True(t, d1.Equal(d2))
}

func TestAttributeDictOperations(t *testing.T) {
	key := MustIdentifier("k")
	d := NewAttributeDict(map[Identifier]Attribute{key: &flagAttr{on: false}})
	assert.Equal(t, 1, d.Len())

	d.Insert(key, &flagAttr{on: true})
	assert.Equal(t, 1, d.Len(), "insert overwrites")
	got, ok := d.Get(key)
	require.True(t, ok)
	assert.True(t, AttrEqual(&flagAttr{on: true}, got))

	_, ok = d.Get("missing")
	assert.False(t, ok)

	clone := d.Clone()
	assert.True(t, clone.Equal(d))
	orig, _ := d.Get(key)
	copied, _ := clone.Get(key)
	assert.NotSame(t, orig, copied)

	d.Remove("missing")
	assert.Equal(t, 1, d.Len())

	var empty AttributeDict
	assert.Equal(t, 0, empty.Len())
	_, ok = empty.Get(key)
	assert.False(t, ok)
	empty.Remove(key)
}

func TestAttributeDictVerify(t *testing.T) {
	ctx := newTestContext()
	var d AttributeDict
	d.Insert("a", &flagAttr{on: true})
	require.NoError(t, d.Verify(ctx))

	d.Insert("b", &flagAttr{on: false})
	err := d.Verify(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errFlagOff))
}

func TestAttributeDictPrintParse(t *testing.T) {
	ctx := newTestContext()
	var d AttributeDict
	d.Insert("world", &flagAttr{on: false})
	d.Insert("hello", &flagAttr{on: true})

	p := NewPrinter(ctx)
	d.Print(p)
	text := p.String()
	assert.Equal(t, "{hello: testd.flag on, world: testd.flag off}", text)

	st := NewParseState(ctx, inMemory, text)
	parsed, err := ParseAttributeDict(st)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(d))

	st = NewParseState(ctx, inMemory, "{ }")
	parsed, err = ParseAttributeDict(st)
	require.NoError(t, err)
	assert.Equal(t, 0, parsed.Len())

	st = NewParseState(ctx, inMemory, "{a: testd.flag on b: testd.flag off}")
	_, err = ParseAttributeDict(st)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unexpected `b`, expected `,` or `}`")
}
