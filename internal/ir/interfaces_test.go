package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sized interface {
	Size() int
}

func TestAttrCastRegistered(t *testing.T) {
	var a Attribute = &flagAttr{on: true}

	l, ok := AttrCast[labeled](a)
	require.True(t, ok)
	assert.Equal(t, "flag", l.Label())
}

func TestAttrCastRequiresRegistration(t *testing.T) {
	var a Attribute = &flagAttr{on: true}

	// flagAttr has a Nothing method but never opted into the interface.
	_, ok := AttrCast[unregistered](a)
	assert.False(t, ok)

	_, ok = AttrCast[sized](a)
	assert.False(t, ok)

	_, ok = AttrCast[labeled](nil)
	assert.False(t, ok)
}

func TestRegisterInterfaceContract(t *testing.T) {
	id := MustAttrID("testd.contract")

	assert.PanicsWithValue(t,
		"ir: testd.contract (*ir.flagAttr) does not implement ir.sized",
		func() { RegisterAttrInterface[sized, *flagAttr](id) })

	assert.Panics(t, func() { RegisterAttrInterface[flagAttr, *flagAttr](id) }, "not an interface")

	assert.Panics(t, func() { RegisterAttrInterface[labeled, *flagAttr](flagAttrID) }, "already registered")
}

func TestTypeAndOpCast(t *testing.T) {
	ctx := newTestContext()

	pair := Intern(ctx, pairType{a: 1, b: 2}).Ptr()
	tp, ok := TypeCast[TypeWithParams](pair)
	require.True(t, ok)
	assert.Len(t, tp.Params(), 2)

	box := Intern(ctx, boxType{inner: pair}).Ptr()
	_, ok = TypeCast[TypeWithParams](box)
	assert.False(t, ok)
	_, ok = TypeCast[TypeWithParams](TypePtr{})
	assert.False(t, ok)

	use := useOp{op: NewOperation(useOpID, nil, nil)}
	_, ok = OpCast[Printable](use)
	assert.True(t, ok)
	_, ok = OpCast[Printable](makeOp{op: NewOperation(makeOpID, nil, nil)})
	assert.False(t, ok)

	assert.Equal(t, []string{"ir.TypeWithParams"}, TypeInterfaces(pairTypeID))
	assert.Equal(t, []string{"ir.Printable"}, OpInterfaces(useOpID))
	assert.Equal(t, []string{"ir.labeled"}, AttrInterfaces(flagAttrID))
	assert.Empty(t, TypeInterfaces(boxTypeID))
}

// TypeWithParams and Printable are test-only capability interfaces.
type TypeWithParams interface {
	Type
}

type Printable interface {
	Print(p *Printer)
}
