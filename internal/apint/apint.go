// Package apint implements fixed-width arbitrary-precision integers.
//
// An APInt is a bit pattern of a given width with no inherent sign; callers
// choose a signed or unsigned interpretation when reading it back.
package apint

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/cockroachdb/errors"
)

// APInt is an integer of an explicit bit width, stored as its unsigned
// two's complement bit pattern. The zero value is not usable; use a
// constructor.
type APInt struct {
	bw  int
	val *big.Int // 0 <= val < 2^bw
}

func modulus(bw int) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(bw))
}

// FromString parses digits in the given radix into an APInt of width bw.
// A leading '+' or '-' is accepted. Values in [-2^(bw-1), 2^bw) fit;
// negative values are stored in two's complement.
func FromString(digits string, bw int, radix int) (APInt, error) {
	if bw <= 0 {
		return APInt{}, errors.Newf("bit width must be positive, got %d", bw)
	}

	neg := false
	body := digits
	switch {
	case strings.HasPrefix(body, "-"):
		neg = true
		body = body[1:]
	case strings.HasPrefix(body, "+"):
		body = body[1:]
	}
	if body == "" || strings.ContainsAny(body, "+-") {
		return APInt{}, errors.Newf("invalid integer literal %q", digits)
	}

	mag, ok := new(big.Int).SetString(body, radix)
	if !ok {
		return APInt{}, errors.Newf("invalid integer literal %q", digits)
	}

	mod := modulus(bw)
	if neg {
		half := new(big.Int).Rsh(mod, 1)
		if mag.Cmp(half) > 0 {
			return APInt{}, errors.Newf("integer %s does not fit in %d bits", digits, bw)
		}
		if mag.Sign() != 0 {
			mag.Sub(mod, mag)
		}
	} else if mag.Cmp(mod) >= 0 {
		return APInt{}, errors.Newf("integer %s does not fit in %d bits", digits, bw)
	}

	return APInt{bw: bw, val: mag}, nil
}

// FromInt64 truncates or sign-extends v to width bw.
func FromInt64(v int64, bw int) APInt {
	if bw <= 0 {
		panic(fmt.Sprintf("apint: bit width must be positive, got %d", bw))
	}
	val := big.NewInt(v)
	val.Mod(val, modulus(bw))
	return APInt{bw: bw, val: val}
}

// FromUint64 truncates or zero-extends v to width bw.
func FromUint64(v uint64, bw int) APInt {
	if bw <= 0 {
		panic(fmt.Sprintf("apint: bit width must be positive, got %d", bw))
	}
	val := new(big.Int).SetUint64(v)
	val.Mod(val, modulus(bw))
	return APInt{bw: bw, val: val}
}

// BitWidth returns the width in bits.
func (a APInt) BitWidth() int {
	return a.bw
}

// IsZero reports whether every bit is clear.
func (a APInt) IsZero() bool {
	return a.val == nil || a.val.Sign() == 0
}

// signed returns the value interpreted as two's complement.
func (a APInt) signed() *big.Int {
	v := new(big.Int).Set(a.val)
	if a.bw > 0 && v.Bit(a.bw-1) == 1 {
		v.Sub(v, modulus(a.bw))
	}
	return v
}

// String renders the value in decimal, as signed or unsigned.
func (a APInt) String(signed bool) string {
	if a.val == nil {
		return "0"
	}
	if signed {
		return a.signed().String()
	}
	return a.val.String()
}

// Int64 returns the signed interpretation truncated to 64 bits.
func (a APInt) Int64() int64 {
	if a.val == nil {
		return 0
	}
	return a.signed().Int64()
}

// Uint64 returns the unsigned interpretation truncated to 64 bits.
func (a APInt) Uint64() uint64 {
	if a.val == nil {
		return 0
	}
	return a.val.Uint64()
}

// Equal reports whether a and b have the same width and bits.
func (a APInt) Equal(b APInt) bool {
	if a.bw != b.bw {
		return false
	}
	if a.val == nil || b.val == nil {
		return a.IsZero() && b.IsZero()
	}
	return a.val.Cmp(b.val) == 0
}
