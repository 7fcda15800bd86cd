package ilp

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Rat is an exact rational number. It is always kept in lowest terms with a
// strictly positive denominator, and the sign lives in the numerator.
// The zero value is 0, not 1; use One where a unit default is wanted.
//
// Rat is backed by int64. Intermediate products are not checked for
// overflow, so very large numerators or denominators silently wrap.
// Tableaus of the size this package targets stay far below that limit.
type Rat struct {
	num int64

	// denominator minus one, so that the zero value reads as 0/1 and two
	// equal rationals are always equal structs.
	dm1 int64
}

var (
	Zero = Rat{}
	One  = Int(1)
)

// NewRat returns n/d reduced to lowest terms. It panics if d is zero.
func NewRat(n, d int64) Rat {
	if d == 0 {
		panic("ilp: zero denominator")
	}
	return reduce(n, d)
}

// Int returns the whole number n as a Rat.
func Int(n int64) Rat {
	return Rat{num: n}
}

// ParseRat parses "n" or "n/d".
func ParseRat(s string) (Rat, error) {
	s = strings.TrimSpace(s)
	numStr, denStr, hasDen := strings.Cut(s, "/")

	n, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
	if err != nil {
		return Zero, errors.Wrapf(err, "parse numerator of %q", s)
	}
	if !hasDen {
		return Int(n), nil
	}

	d, err := strconv.ParseInt(strings.TrimSpace(denStr), 10, 64)
	if err != nil {
		return Zero, errors.Wrapf(err, "parse denominator of %q", s)
	}
	if d == 0 {
		return Zero, errors.Errorf("zero denominator in %q", s)
	}
	return reduce(n, d), nil
}

// MustParseRat is like ParseRat but panics on malformed input.
func MustParseRat(s string) Rat {
	r, err := ParseRat(s)
	if err != nil {
		panic(err)
	}
	return r
}

func reduce(n, d int64) Rat {
	if d < 0 {
		n, d = -n, -d
	}
	if g := gcd(n, d); g > 1 {
		n /= g
		d /= g
	}
	return Rat{num: n, dm1: d - 1}
}

// Euclid on absolute values.
func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Num returns the numerator.
func (r Rat) Num() int64 { return r.num }

// Denom returns the denominator, which is always positive.
func (r Rat) Denom() int64 { return r.dm1 + 1 }

func (r Rat) Add(o Rat) Rat {
	return reduce(r.num*o.Denom()+o.num*r.Denom(), r.Denom()*o.Denom())
}

func (r Rat) Sub(o Rat) Rat {
	return reduce(r.num*o.Denom()-o.num*r.Denom(), r.Denom()*o.Denom())
}

func (r Rat) Mul(o Rat) Rat {
	return reduce(r.num*o.num, r.Denom()*o.Denom())
}

// Quo returns r/o. It panics if o is zero.
func (r Rat) Quo(o Rat) Rat {
	if o.num == 0 {
		panic("ilp: division by zero")
	}
	return reduce(r.num*o.Denom(), r.Denom()*o.num)
}

func (r Rat) Neg() Rat {
	return Rat{num: -r.num, dm1: r.dm1}
}

func (r Rat) Abs() Rat {
	if r.num < 0 {
		return r.Neg()
	}
	return r
}

// AddAssign sets r to r+o.
func (r *Rat) AddAssign(o Rat) { *r = r.Add(o) }

// SubAssign sets r to r-o.
func (r *Rat) SubAssign(o Rat) { *r = r.Sub(o) }

// MulAssign sets r to r*o.
func (r *Rat) MulAssign(o Rat) { *r = r.Mul(o) }

// QuoAssign sets r to r/o.
func (r *Rat) QuoAssign(o Rat) { *r = r.Quo(o) }

// Cmp compares by cross-multiplication and returns -1, 0 or +1.
func (r Rat) Cmp(o Rat) int {
	lhs := r.num * o.Denom()
	rhs := o.num * r.Denom()
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	}
	return 0
}

// Equal reports whether r and o denote the same number.
func (r Rat) Equal(o Rat) bool { return r.Cmp(o) == 0 }

func (r Rat) Less(o Rat) bool      { return r.Cmp(o) < 0 }
func (r Rat) LessEq(o Rat) bool    { return r.Cmp(o) <= 0 }
func (r Rat) Greater(o Rat) bool   { return r.Cmp(o) > 0 }
func (r Rat) GreaterEq(o Rat) bool { return r.Cmp(o) >= 0 }

// Sign returns -1, 0 or +1.
func (r Rat) Sign() int {
	switch {
	case r.num < 0:
		return -1
	case r.num > 0:
		return 1
	}
	return 0
}

func (r Rat) IsZero() bool { return r.num == 0 }
func (r Rat) IsNeg() bool  { return r.num < 0 }

// IsInteger reports whether the denominator is 1.
func (r Rat) IsInteger() bool { return r.dm1 == 0 }

// IntegerPart returns the quotient truncated toward zero.
func (r Rat) IntegerPart() Rat {
	return Int(r.num / r.Denom())
}

// Floor returns the largest whole number not greater than r.
func (r Rat) Floor() Rat {
	d := r.Denom()
	q := r.num / d
	if r.num%d != 0 && r.num < 0 {
		q--
	}
	return Int(q)
}

// FractionalPart returns r - Floor(r), which always lies in [0, 1).
// For -5/3 that is 1/3.
func (r Rat) FractionalPart() Rat {
	d := r.Denom()
	rem := r.num % d
	if rem < 0 {
		rem += d
	}
	return reduce(rem, d)
}

// Float64 returns the nearest float64. It is meant for reporting only.
func (r Rat) Float64() float64 {
	return float64(r.num) / float64(r.Denom())
}

// String formats r as "n" when the denominator is 1 and "n/d" otherwise.
func (r Rat) String() string {
	if r.IsInteger() {
		return strconv.FormatInt(r.num, 10)
	}
	return strconv.FormatInt(r.num, 10) + "/" + strconv.FormatInt(r.Denom(), 10)
}

// MarshalText implements encoding.TextMarshaler.
func (r Rat) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// rats converts whole numbers into a Rat slice.
func rats(values ...int64) []Rat {
	out := make([]Rat, len(values))
	for i, v := range values {
		out[i] = Int(v)
	}
	return out
}

// Lcm of the denominators of values.
func commonDenominator(values []Rat) int64 {
	l := int64(1)
	for _, v := range values {
		d := v.Denom()
		l = l / gcd(l, d) * d
	}
	return l
}
