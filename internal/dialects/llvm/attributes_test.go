package llvm

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/dialects/builtin"
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

func TestAttributeRoundTrips(t *testing.T) {
	ctx := newContext()
	tests := []string{
		"llvm.integer_overflow_flags none",
		"llvm.integer_overflow_flags nsw",
		"llvm.integer_overflow_flags nuw",
		"llvm.icmp_predicate eq",
		"llvm.icmp_predicate sle",
		"llvm.icmp_predicate uge",
		"llvm.gep_indices []",
		"llvm.gep_indices [const 3, operand 0]",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			a, err := ir.ParseAttrString(ctx, text)
			require.NoError(t, err)
			assert.Equal(t, text, ir.PrintAttr(ctx, a))
			assert.NoError(t, a.Verify(ctx))
			assert.True(t, ir.AttrEqual(a, a.Clone()))
		})
	}
}

func TestAttributeParseErrors(t *testing.T) {
	ctx := newContext()
	tests := []struct {
		input string
		want  string
	}{
		{"llvm.integer_overflow_flags nswx", "Unexpected `n`, expected none, nsw or nuw"},
		{"llvm.icmp_predicate lt", "Unexpected `l`, expected eq, ne, slt, sle, sgt, sge, ult, ule, ugt or uge"},
		{"llvm.gep_indices [const x]", "Unexpected `x`, expected index"},
		{"llvm.gep_indices [field 1]", "Unexpected `f`, expected const or operand"},
		{"llvm.gep_indices [const 1; const 2]", "Unexpected `;`, expected `,` or `]`"},
		{"llvm.gep_indices [const 4294967296]", "GEP index 4294967296 is out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ir.ParseAttrString(ctx, tt.input)
			require.Error(t, err)
			assert.True(t, diag.IsInput(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGepIndices(t *testing.T) {
	a := NewGepIndicesAttr(GepConst(3), GepOperand(0))
	idx := a.Indices()
	require.Len(t, idx, 2)
	assert.False(t, idx[0].IsOperand())
	assert.Equal(t, uint32(3), idx[0].Value())
	assert.True(t, idx[1].IsOperand())

	assert.False(t, ir.AttrEqual(a, NewGepIndicesAttr(GepOperand(3), GepOperand(0))))
	assert.True(t, ir.AttrEqual(a, NewGepIndicesAttr(GepConst(3), GepOperand(0))))
}

func TestEnumAttributesCompareByValue(t *testing.T) {
	assert.True(t, ir.AttrEqual(NewICmpPredicateAttr(ICmpSLT), NewICmpPredicateAttr(ICmpSLT)))
	assert.False(t, ir.AttrEqual(NewICmpPredicateAttr(ICmpSLT), NewICmpPredicateAttr(ICmpULT)))
	assert.False(t, ir.AttrEqual(NewIntegerOverflowFlagsAttr(OverflowNone), NewICmpPredicateAttr(ICmpEQ)))

	assert.Equal(t, "nuw", OverflowNUW.String())
	assert.Equal(t, "ugt", ICmpUGT.String())
	assert.Equal(t, "ICmpPredicate(42)", ICmpPredicate(42).String())
}

func TestPointerType(t *testing.T) {
	ctx := newContext()
	i8 := builtin.GetIntegerType(ctx, 8, builtin.Signless).Ptr()

	p := GetPointerType(ctx, i8)
	assert.True(t, p.Ptr() == GetPointerType(ctx, i8).Ptr())
	assert.True(t, p.Deref().Pointee() == i8)

	pp := GetPointerType(ctx, p.Ptr())
	text := ir.PrintType(ctx, pp.Ptr())
	assert.Equal(t, "llvm.ptr <llvm.ptr <builtin.integer i8>>", text)

	parsed, err := ir.ParseTypeString(ctx, text)
	require.NoError(t, err)
	assert.True(t, parsed == pp.Ptr())
	assert.NoError(t, parsed.Verify())
}

func TestLLVMRequiresRegistration(t *testing.T) {
	ctx := ir.NewContext()
	builtin.Register(ctx)

	_, err := ir.ParseTypeString(ctx, "llvm.ptr <builtin.unit>")
	require.Error(t, err)
	assert.Equal(t, location.At(location.InMemory, 1, 1), diag.LocOf(err))
	assert.Contains(t, err.Error(), "Unregistered dialect llvm")

	Register(ctx)
	_, err = ir.ParseTypeString(ctx, "llvm.ptr <builtin.unit>")
	require.NoError(t, err)
	assert.Equal(t, []ir.DialectName{builtin.Name, Name}, ctx.DialectNames())
}
