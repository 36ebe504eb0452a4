package catalog

import (
	"cmp"
	"math"
	"math/big"
	"math/cmplx"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"

	"github.com/steverpalmer/GenericTesting/internal/domain/contracts"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// IntBound keeps int64 witnesses small enough that products of three never
// overflow, so the ordering laws hold alongside the ring laws.
const IntBound = 62

// ordered fills the relation operators of a cmp.Ordered type.
func ordered[T cmp.Ordered](ops *m.Ops) {
	ops.Equal = func(a, b any) bool { return a.(T) == b.(T) }
	ops.NotEqual = func(a, b any) bool { return a.(T) != b.(T) }
	ops.LessEqual = func(a, b any) bool { return a.(T) <= b.(T) }
	ops.Less = func(a, b any) bool { return a.(T) < b.(T) }
	ops.Greater = func(a, b any) bool { return a.(T) > b.(T) }
	ops.GreaterEqual = func(a, b any) bool { return a.(T) >= b.(T) }
	ops.Compare = func(a, b any) int { return cmp.Compare(a.(T), b.(T)) }
}

func floorDivInt(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}

	return q
}

func floorModInt(a, b int64) int64 {
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}

	return r
}

func int64Ops() *m.Ops {
	ops := &m.Ops{
		Hash:     func(a any) uint64 { return uint64(a.(int64)) },
		Add:      func(a, b any) any { return a.(int64) + b.(int64) },
		Sub:      func(a, b any) any { return a.(int64) - b.(int64) },
		Neg:      func(a any) any { return -a.(int64) },
		Pos:      func(a any) any { return a },
		Mul:      func(a, b any) any { return a.(int64) * b.(int64) },
		FloorDiv: func(a, b any) any { return floorDivInt(a.(int64), b.(int64)) },
		Mod:      func(a, b any) any { return floorModInt(a.(int64), b.(int64)) },
		DivMod: func(a, b any) (any, any) {
			x, y := a.(int64), b.(int64)
			return floorDivInt(x, y), floorModInt(x, y)
		},
		Pow: func(a, n any) any {
			p := int64(1)
			for range n.(int) {
				p *= a.(int64)
			}

			return p
		},
		Abs: func(a any) any {
			if x := a.(int64); x < 0 {
				return -x
			}

			return a
		},
		Shl: func(a, n any) any { return a.(int64) << n.(int) },
		Shr: func(a, n any) any { return a.(int64) >> n.(int) },
	}
	ordered[int64](ops)

	return ops
}

func int64Subject() m.Subject {
	ops := int64Ops()
	ops.Roles = map[m.Role]*m.Ops{m.RoleMagnitude: ops}

	return m.Subject{
		Name:     "int64",
		Ancestry: []string{contracts.ContractIntegral, contracts.ContractRational, contracts.ContractReal, contracts.ContractComplex},
		Ops:      ops,
		Values:   m.Values{contracts.ValueZero: int64(0), contracts.ValueOne: int64(1)},
		Bindings: m.Single(gen.Int64Range(-IntBound, IntBound)),
	}
}

// floatDivMod floors toward negative infinity, so the remainder takes the sign of b.
func floatDivMod(a, b float64) (float64, float64) {
	mod := math.Mod(a, b)
	div := (a - mod) / b

	if mod != 0 {
		if (b < 0) != (mod < 0) {
			mod += b
			div--
		}
	} else {
		mod = math.Copysign(0, b)
	}

	if div == 0 {
		return math.Copysign(0, a/b), mod
	}

	floor := math.Floor(div)
	if div-floor > 0.5 {
		floor++
	}

	return floor, mod
}

// floatMagnitudeOps compares absolute values with the fixture tolerance.
func floatMagnitudeOps() *m.Ops {
	return &m.Ops{
		Equal:     func(a, b any) bool { return approxEqual(a.(float64), b.(float64)) },
		LessEqual: func(a, b any) bool { return atMost(a.(float64), b.(float64)) },
		Add:       func(a, b any) any { return a.(float64) + b.(float64) },
		Mul:       func(a, b any) any { return a.(float64) * b.(float64) },
		Sub:       func(a, b any) any { return a.(float64) - b.(float64) },
	}
}

func float64Subject() m.Subject {
	ops := &m.Ops{
		Add: func(a, b any) any { return a.(float64) + b.(float64) },
		Sub: func(a, b any) any { return a.(float64) - b.(float64) },
		Neg: func(a any) any { return -a.(float64) },
		Pos: func(a any) any { return a },
		Mul: func(a, b any) any { return a.(float64) * b.(float64) },
		Div: func(a, b any) any { return a.(float64) / b.(float64) },
		FloorDiv: func(a, b any) any {
			q, _ := floatDivMod(a.(float64), b.(float64))
			return q
		},
		Mod: func(a, b any) any {
			_, r := floatDivMod(a.(float64), b.(float64))
			return r
		},
		DivMod: func(a, b any) (any, any) { return floatDivMod(a.(float64), b.(float64)) },
		Abs:    func(a any) any { return math.Abs(a.(float64)) },
		Conj:   func(a any) any { return a },
		Floor:  func(a any) any { return math.Floor(a.(float64)) },
		Ceil:   func(a any) any { return math.Ceil(a.(float64)) },
		Trunc:  func(a any) any { return math.Trunc(a.(float64)) },
	}
	ordered[float64](ops)

	ops.Equal = func(a, b any) bool { return approxEqual(a.(float64), b.(float64)) }
	ops.NotEqual = func(a, b any) bool { return !approxEqual(a.(float64), b.(float64)) }
	ops.Roles = map[m.Role]*m.Ops{m.RoleMagnitude: floatMagnitudeOps()}

	return m.Subject{
		Name:     "float64",
		Ancestry: []string{contracts.ContractReal, contracts.ContractComplex},
		Ops:      ops,
		Values:   m.Values{contracts.ValueZero: 0.0, contracts.ValueOne: 1.0},
		Bindings: m.Single(gen.Float64Range(-100, 100)),
	}
}

func rat(a any) *big.Rat {
	return a.(*big.Rat)
}

func floorRat(x *big.Rat) *big.Rat {
	// Denominators are positive, so Euclidean division floors.
	q := new(big.Int).Div(x.Num(), x.Denom())
	return new(big.Rat).SetInt(q)
}

func ratDivMod(a, b *big.Rat) (*big.Rat, *big.Rat) {
	q := floorRat(new(big.Rat).Quo(a, b))
	r := new(big.Rat).Sub(a, new(big.Rat).Mul(q, b))

	return q, r
}

func ratSubject() m.Subject {
	ops := &m.Ops{
		Equal:        func(a, b any) bool { return rat(a).Cmp(rat(b)) == 0 },
		NotEqual:     func(a, b any) bool { return rat(a).Cmp(rat(b)) != 0 },
		LessEqual:    func(a, b any) bool { return rat(a).Cmp(rat(b)) <= 0 },
		Less:         func(a, b any) bool { return rat(a).Cmp(rat(b)) < 0 },
		Greater:      func(a, b any) bool { return rat(a).Cmp(rat(b)) > 0 },
		GreaterEqual: func(a, b any) bool { return rat(a).Cmp(rat(b)) >= 0 },
		Compare:      func(a, b any) int { return rat(a).Cmp(rat(b)) },

		Add: func(a, b any) any { return new(big.Rat).Add(rat(a), rat(b)) },
		Sub: func(a, b any) any { return new(big.Rat).Sub(rat(a), rat(b)) },
		Neg: func(a any) any { return new(big.Rat).Neg(rat(a)) },
		Pos: func(a any) any { return new(big.Rat).Set(rat(a)) },
		Mul: func(a, b any) any { return new(big.Rat).Mul(rat(a), rat(b)) },
		Div: func(a, b any) any { return new(big.Rat).Quo(rat(a), rat(b)) },
		FloorDiv: func(a, b any) any {
			q, _ := ratDivMod(rat(a), rat(b))
			return q
		},
		Mod: func(a, b any) any {
			_, r := ratDivMod(rat(a), rat(b))
			return r
		},
		DivMod: func(a, b any) (any, any) { return ratDivMod(rat(a), rat(b)) },
		Abs:    func(a any) any { return new(big.Rat).Abs(rat(a)) },
		Conj:   func(a any) any { return new(big.Rat).Set(rat(a)) },
		Floor:  func(a any) any { return floorRat(rat(a)) },
		Ceil: func(a any) any {
			neg := new(big.Rat).Neg(rat(a))
			return new(big.Rat).Neg(floorRat(neg))
		},
		Trunc: func(a any) any {
			x := rat(a)
			return new(big.Rat).SetInt(new(big.Int).Quo(x.Num(), x.Denom()))
		},
	}
	ops.Roles = map[m.Role]*m.Ops{m.RoleMagnitude: ops}

	fractions := gopter.CombineGens(gen.Int64Range(-50, 50), gen.Int64Range(1, 12)).Map(func(v []interface{}) *big.Rat {
		return big.NewRat(v[0].(int64), v[1].(int64))
	})

	return m.Subject{
		Name:     "*big.Rat",
		Ancestry: []string{contracts.ContractRational, contracts.ContractReal, contracts.ContractComplex},
		Ops:      ops,
		Values:   m.Values{contracts.ValueZero: new(big.Rat), contracts.ValueOne: big.NewRat(1, 1)},
		Bindings: m.Single(fractions),
	}
}

func complexEqual(a, b complex128) bool {
	return approxEqual(real(a), real(b)) && approxEqual(imag(a), imag(b))
}

func complexSubject() m.Subject {
	c := func(a any) complex128 { return a.(complex128) }

	ops := &m.Ops{
		Equal:    func(a, b any) bool { return complexEqual(c(a), c(b)) },
		NotEqual: func(a, b any) bool { return !complexEqual(c(a), c(b)) },
		Add:      func(a, b any) any { return c(a) + c(b) },
		Sub:      func(a, b any) any { return c(a) - c(b) },
		Neg:      func(a any) any { return -c(a) },
		Pos:      func(a any) any { return a },
		Mul:      func(a, b any) any { return c(a) * c(b) },
		Div:      func(a, b any) any { return c(a) / c(b) },
		Abs:      func(a any) any { return cmplx.Abs(c(a)) },
		Conj:     func(a any) any { return cmplx.Conj(c(a)) },
		Roles:    map[m.Role]*m.Ops{m.RoleMagnitude: floatMagnitudeOps()},
	}

	points := gopter.CombineGens(gen.Float64Range(-10, 10), gen.Float64Range(-10, 10)).Map(func(v []interface{}) complex128 {
		return complex(v[0].(float64), v[1].(float64))
	})

	return m.Subject{
		Name:     "complex128",
		Ancestry: []string{contracts.ContractComplex},
		Ops:      ops,
		Values:   m.Values{contracts.ValueZero: complex128(0), contracts.ValueOne: complex128(1)},
		Bindings: m.Single(points),
	}
}
