package model

import (
	"iter"
	"reflect"
)

// Op names one field of Ops.
type Op string

// Operation signatures used by Ops.
type (
	Unary    func(a any) any
	Binary   func(a, b any) any
	Relation func(a, b any) bool
)

// Ops declares the capabilities of a type. Nil fields are unsupported.
type Ops struct {
	Equal        Relation
	NotEqual     Relation
	LessEqual    Relation
	Less         Relation
	Greater      Relation
	GreaterEqual Relation
	Compare      func(a, b any) int
	Hash         func(a any) uint64

	Or     Binary
	And    Binary
	Xor    Binary
	Invert Unary
	Shl    Binary
	Shr    Binary

	Add      Binary
	Sub      Binary
	Neg      Unary
	Pos      Unary
	Mul      Binary
	Div      Binary
	FloorDiv Binary
	Mod      Binary
	DivMod   func(a, b any) (any, any)
	Pow      Binary
	Abs      Unary
	Conj     Unary
	Floor    Unary
	Ceil     Unary
	Trunc    Unary
	Truth    func(a any) bool

	// ScalarMul is r * a, MulScalar is a * r and DivScalar is a / r.
	ScalarMul Binary
	MulScalar Binary
	DivScalar Binary

	// Translate is p + v, Difference is p - q.
	Translate  Binary
	Difference Binary

	Len      func(a any) int
	Iter     func(a any) iter.Seq[any]
	Contains func(c, x any) bool
	Get      func(c, k any) (any, bool)
	Set      func(c, k, v any)
	Delete   func(c, k any)
	Insert   func(c, x any)
	Discard  func(c, x any)
	Clear    func(c any)
	Update   func(dst, src any)
	Copy     Unary
	Index    func(s, x any) (int, bool)
	Count    func(s, x any) int
	Disjoint Relation

	Apply   Unary
	Inverse Unary

	// Open returns a fresh stream holding a content value. The stream is
	// checked against io.Reader, io.Writer and io.Seeker by the laws.
	Open Unary

	// Members lists every value of an enumeration; Name and Parse map a
	// member to its name and back. Name may be empty for combined flags.
	Members func() []any
	Name    func(a any) string
	Parse   func(name string) (any, bool)

	// Roles holds the capabilities of the other domains a check touches.
	Roles map[Role]*Ops
}

// Has reports whether the named operation is supplied.
func (o *Ops) Has(op Op) bool {
	if o == nil {
		return false
	}

	field := reflect.ValueOf(o).Elem().FieldByName(string(op))
	if !field.IsValid() || field.Kind() != reflect.Func {
		return false
	}

	return !field.IsNil()
}

// For returns the capabilities of role. RoleSelf returns o itself; roles not
// declared fall back to deep equality only.
func (o *Ops) For(role Role) *Ops {
	role = role.Canonical()
	if role == RoleSelf {
		return o
	}

	if o != nil {
		if ops, ok := o.Roles[role]; ok && ops != nil {
			return ops
		}
	}

	return fallbackOps
}

// Equals uses Equal when supplied and deep equality otherwise.
func (o *Ops) Equals(a, b any) bool {
	if o != nil && o.Equal != nil {
		return o.Equal(a, b)
	}

	return reflect.DeepEqual(a, b)
}

var fallbackOps = &Ops{Equal: func(a, b any) bool { return reflect.DeepEqual(a, b) }}
