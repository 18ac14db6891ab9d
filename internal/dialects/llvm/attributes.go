package llvm

import (
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/roach88/irkit/internal/diag"
	"github.com/roach88/irkit/internal/ir"
)

// Attribute kinds of the llvm dialect.
var (
	IntegerOverflowFlagsAttrID = ir.MustAttrID("llvm.integer_overflow_flags")
	ICmpPredicateAttrID        = ir.MustAttrID("llvm.icmp_predicate")
	GepIndicesAttrID           = ir.MustAttrID("llvm.gep_indices")
)

// OverflowFlag says which kind of overflow an arithmetic op is guaranteed
// not to have: nsw for signed, nuw for unsigned.
type OverflowFlag int

const (
	OverflowNone OverflowFlag = iota // no guarantee
	OverflowNSW                      // no signed wrap
	OverflowNUW                      // no unsigned wrap
)

var overflowFlagNames = []string{"none", "nsw", "nuw"}

func (f OverflowFlag) String() string {
	if f < 0 || int(f) >= len(overflowFlagNames) {
		return "OverflowFlag(" + strconv.Itoa(int(f)) + ")"
	}
	return overflowFlagNames[f]
}

// IntegerOverflowFlagsAttr carries an OverflowFlag.
type IntegerOverflowFlagsAttr struct {
	flag OverflowFlag
}

// NewIntegerOverflowFlagsAttr returns an attribute carrying flag.
func NewIntegerOverflowFlagsAttr(flag OverflowFlag) *IntegerOverflowFlagsAttr {
	return &IntegerOverflowFlagsAttr{flag: flag}
}

func (a *IntegerOverflowFlagsAttr) Flag() OverflowFlag     { return a.flag }
func (*IntegerOverflowFlagsAttr) AttrID() ir.AttrID        { return IntegerOverflowFlagsAttrID }
func (a *IntegerOverflowFlagsAttr) Print(p *ir.Printer)    { p.WriteString(a.flag.String()) }
func (*IntegerOverflowFlagsAttr) Verify(*ir.Context) error { return nil }

func (a *IntegerOverflowFlagsAttr) Clone() ir.Attribute {
	return &IntegerOverflowFlagsAttr{flag: a.flag}
}

func (a *IntegerOverflowFlagsAttr) Equal(other ir.Attribute) bool {
	b, ok := other.(*IntegerOverflowFlagsAttr)
	return ok && a.flag == b.flag
}

func parseOverflowFlag(st *ir.ParseState) (OverflowFlag, error) {
	word, err := st.In.Keyword(overflowFlagNames...)
	if err != nil {
		return 0, err
	}
	return OverflowFlag(slices.Index(overflowFlagNames, word)), nil
}

func parseIntegerOverflowFlagsAttr(st *ir.ParseState) (ir.Attribute, error) {
	f, err := parseOverflowFlag(st)
	if err != nil {
		return nil, err
	}
	return NewIntegerOverflowFlagsAttr(f), nil
}

// ICmpPredicate is the comparison an icmp performs.
type ICmpPredicate int

// Predicates in textual order: eq ne slt sle sgt sge ult ule ugt uge.
const (
	ICmpEQ ICmpPredicate = iota
	ICmpNE
	ICmpSLT
	ICmpSLE
	ICmpSGT
	ICmpSGE
	ICmpULT
	ICmpULE
	ICmpUGT
	ICmpUGE
)

var icmpPredicateNames = []string{"eq", "ne", "slt", "sle", "sgt", "sge", "ult", "ule", "ugt", "uge"}

func (p ICmpPredicate) String() string {
	if p < 0 || int(p) >= len(icmpPredicateNames) {
		return "ICmpPredicate(" + strconv.Itoa(int(p)) + ")"
	}
	return icmpPredicateNames[p]
}

// ICmpPredicateAttr carries an ICmpPredicate.
type ICmpPredicateAttr struct {
	pred ICmpPredicate
}

// NewICmpPredicateAttr returns an attribute carrying pred.
func NewICmpPredicateAttr(pred ICmpPredicate) *ICmpPredicateAttr {
	return &ICmpPredicateAttr{pred: pred}
}

func (a *ICmpPredicateAttr) Predicate() ICmpPredicate { return a.pred }
func (*ICmpPredicateAttr) AttrID() ir.AttrID          { return ICmpPredicateAttrID }
func (a *ICmpPredicateAttr) Print(p *ir.Printer)      { p.WriteString(a.pred.String()) }
func (*ICmpPredicateAttr) Verify(*ir.Context) error   { return nil }
func (a *ICmpPredicateAttr) Clone() ir.Attribute      { return &ICmpPredicateAttr{pred: a.pred} }

func (a *ICmpPredicateAttr) Equal(other ir.Attribute) bool {
	b, ok := other.(*ICmpPredicateAttr)
	return ok && a.pred == b.pred
}

func parseICmpPredicate(st *ir.ParseState) (ICmpPredicate, error) {
	word, err := st.In.Keyword(icmpPredicateNames...)
	if err != nil {
		return 0, err
	}
	return ICmpPredicate(slices.Index(icmpPredicateNames, word)), nil
}

func parseICmpPredicateAttr(st *ir.ParseState) (ir.Attribute, error) {
	p, err := parseICmpPredicate(st)
	if err != nil {
		return nil, err
	}
	return NewICmpPredicateAttr(p), nil
}

// GepIndex is one index of a getelementptr: either a compile time constant
// or the position of an operand of the owning op.
type GepIndex struct {
	operand bool
	value   uint32
}

// GepConst is a constant index.
func GepConst(v uint32) GepIndex { return GepIndex{value: v} }

// GepOperand refers to operand idx of the owning op.
func GepOperand(idx uint32) GepIndex { return GepIndex{operand: true, value: idx} }

// IsOperand reports whether the index names an operand.
func (g GepIndex) IsOperand() bool { return g.operand }

// Value returns the constant or the operand position.
func (g GepIndex) Value() uint32 { return g.value }

func (g GepIndex) String() string {
	if g.operand {
		return "operand " + strconv.FormatUint(uint64(g.value), 10)
	}
	return "const " + strconv.FormatUint(uint64(g.value), 10)
}

// GepIndicesAttr is the index list of a getelementptr, printed
// [const 3, operand 0].
type GepIndicesAttr struct {
	indices []GepIndex
}

// NewGepIndicesAttr returns an attribute holding a copy of indices.
func NewGepIndicesAttr(indices ...GepIndex) *GepIndicesAttr {
	return &GepIndicesAttr{indices: append([]GepIndex(nil), indices...)}
}

// Indices returns the indices in order.
func (a *GepIndicesAttr) Indices() []GepIndex { return append([]GepIndex(nil), a.indices...) }

func (*GepIndicesAttr) AttrID() ir.AttrID        { return GepIndicesAttrID }
func (*GepIndicesAttr) Verify(*ir.Context) error { return nil }
func (a *GepIndicesAttr) Clone() ir.Attribute    { return NewGepIndicesAttr(a.indices...) }

func (a *GepIndicesAttr) Print(p *ir.Printer) {
	p.WriteString("[")
	for i, g := range a.indices {
		if i > 0 {
			p.WriteString(", ")
		}
		p.WriteString(g.String())
	}
	p.WriteString("]")
}

func (a *GepIndicesAttr) Equal(other ir.Attribute) bool {
	b, ok := other.(*GepIndicesAttr)
	if !ok || len(a.indices) != len(b.indices) {
		return false
	}
	for i := range a.indices {
		if a.indices[i] != b.indices[i] {
			return false
		}
	}
	return true
}

func parseGepIndex(st *ir.ParseState) (GepIndex, error) {
	kind, err := st.In.Keyword("const", "operand")
	if err != nil {
		return GepIndex{}, err
	}
	st.In.SkipSpaces()
	loc := st.In.Loc()
	digits := st.In.Digits()
	if digits == "" {
		return GepIndex{}, st.In.Unexpected("index")
	}
	v, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return GepIndex{}, diag.Input(loc, errors.Newf("GEP index %s is out of range", digits))
	}
	return GepIndex{operand: kind == "operand", value: uint32(v)}, nil
}

func parseGepIndicesAttr(st *ir.ParseState) (ir.Attribute, error) {
	if err := st.In.Expect('['); err != nil {
		return nil, err
	}
	st.In.SkipSpaces()
	a := &GepIndicesAttr{}
	if st.In.Consume(']') {
		return a, nil
	}
	for {
		g, err := parseGepIndex(st)
		if err != nil {
			return nil, err
		}
		a.indices = append(a.indices, g)
		st.In.SkipSpaces()
		if st.In.Consume(']') {
			return a, nil
		}
		if !st.In.Consume(',') {
			return nil, st.In.Unexpected("`,`", "`]`")
		}
		st.In.SkipSpaces()
	}
}
