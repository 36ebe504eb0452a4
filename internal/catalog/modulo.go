package catalog

import (
	_ "embed"

	"github.com/leanovate/gopter/gen"

	"github.com/steverpalmer/GenericTesting/internal/domain/contracts"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

const moduloFile = "modulo.go"

//go:embed modulo.go
var moduloSource []byte

// ModuloN is arithmetic modulo the prime 7.
//
// gentest:
//
//	has: [FieldTests, TotalOrdering]
type ModuloN uint8

// Modulus of ModuloN.
const Modulus = 7

// ModuloPow2 is arithmetic modulo 256 with the bitwise operators of uint8.
// Negation wraps, so |-a| differs from |a|. Shift composition is covered by
// the plain uint8 rules.
//
// gentest:
//
//	has: [CommutativeRing, LatticeWithComplement, BitShift, TotalOrdering, AbsoluteValue]
//	excluding: [abs_negation_invariant]
//	skipping: [shl_composes]
type ModuloPow2 uint8

func modN(a any) ModuloN {
	return a.(ModuloN)
}

// inverse uses Fermat's little theorem: a**(p-2) is the inverse of a.
func (a ModuloN) inverse() ModuloN {
	r := ModuloN(1)
	for range Modulus - 2 {
		r = (r * a) % Modulus
	}

	return r
}

func moduloNSubject(doc string) m.Subject {
	ops := &m.Ops{
		Add: func(a, b any) any { return (modN(a) + modN(b)) % Modulus },
		Sub: func(a, b any) any { return (modN(a) + Modulus - modN(b)) % Modulus },
		Neg: func(a any) any { return (Modulus - modN(a)) % Modulus },
		Mul: func(a, b any) any { return (modN(a) * modN(b)) % Modulus },
		Div: func(a, b any) any { return (modN(a) * modN(b).inverse()) % Modulus },
	}
	ordered[ModuloN](ops)

	return m.Subject{
		Name:     "ModuloN",
		Doc:      doc,
		Ops:      ops,
		Values:   m.Values{contracts.ValueZero: ModuloN(0), contracts.ValueOne: ModuloN(1)},
		Bindings: m.Single(gen.UInt8Range(0, Modulus-1).Map(func(v uint8) ModuloN { return ModuloN(v) })),
	}
}

func mod2(a any) ModuloPow2 {
	return a.(ModuloPow2)
}

func moduloPow2Subject(doc string) m.Subject {
	ops := &m.Ops{
		Add:    func(a, b any) any { return mod2(a) + mod2(b) },
		Sub:    func(a, b any) any { return mod2(a) - mod2(b) },
		Neg:    func(a any) any { return -mod2(a) },
		Mul:    func(a, b any) any { return mod2(a) * mod2(b) },
		Or:     func(a, b any) any { return mod2(a) | mod2(b) },
		And:    func(a, b any) any { return mod2(a) & mod2(b) },
		Xor:    func(a, b any) any { return mod2(a) ^ mod2(b) },
		Invert: func(a any) any { return ^mod2(a) },
		Shl:    func(a, n any) any { return mod2(a) << n.(int) },
		Shr:    func(a, n any) any { return mod2(a) >> n.(int) },
		Abs:    func(a any) any { return a },
	}
	ordered[ModuloPow2](ops)
	ops.Roles = map[m.Role]*m.Ops{m.RoleMagnitude: ops}

	return m.Subject{
		Name: "ModuloPow2",
		Doc:  doc,
		Ops:  ops,
		Values: m.Values{
			contracts.ValueZero:   ModuloPow2(0),
			contracts.ValueOne:    ModuloPow2(1),
			contracts.ValueBottom: ModuloPow2(0),
			contracts.ValueTop:    ModuloPow2(0xFF),
		},
		Bindings: m.Single(gen.UInt8().Map(func(v uint8) ModuloPow2 { return ModuloPow2(v) })),
	}
}
