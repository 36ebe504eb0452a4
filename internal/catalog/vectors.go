package catalog

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"

	"github.com/steverpalmer/GenericTesting/internal/domain/contracts"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// Vector2 is a point of the real plane.
type Vector2 struct {
	X, Y float64
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

func vec(a any) Vector2 {
	return a.(Vector2)
}

func scale(r float64, v Vector2) Vector2 {
	return Vector2{r * v.X, r * v.Y}
}

func vectorSubject() m.Subject {
	scalars := floatMagnitudeOps()

	ops := &m.Ops{
		Equal: func(a, b any) bool {
			x, y := vec(a), vec(b)
			return approxEqual(x.X, y.X) && approxEqual(x.Y, y.Y)
		},
		Add:       func(a, b any) any { return Vector2{vec(a).X + vec(b).X, vec(a).Y + vec(b).Y} },
		Sub:       func(a, b any) any { return Vector2{vec(a).X - vec(b).X, vec(a).Y - vec(b).Y} },
		Neg:       func(a any) any { return scale(-1, vec(a)) },
		ScalarMul: func(r, a any) any { return scale(r.(float64), vec(a)) },
		MulScalar: func(a, r any) any { return scale(r.(float64), vec(a)) },
		DivScalar: func(a, r any) any { return scale(1/r.(float64), vec(a)) },
		Roles:     map[m.Role]*m.Ops{m.RoleScalar: scalars},
	}

	points := gopter.CombineGens(gen.Float64Range(-100, 100), gen.Float64Range(-100, 100)).Map(func(v []interface{}) Vector2 {
		return Vector2{v[0].(float64), v[1].(float64)}
	})

	return m.Subject{
		Name:     "Vector2",
		Override: &m.Override{Has: []string{contracts.ContractVectorSpace}},
		Ops:      ops,
		Values:   m.Values{contracts.ValueZero: Vector2{}, contracts.ValueScalarOne: 1.0},
		Bindings: m.Bindings{
			m.RoleSelf:   points,
			m.RoleScalar: gen.Float64Range(-10, 10),
		},
	}
}

func version(a any) *semver.Version {
	return a.(*semver.Version)
}

// versionSubject declares only comparison operators, so the loader falls
// back to structural discovery.
func versionSubject() m.Subject {
	ops := &m.Ops{
		Equal:        func(a, b any) bool { return version(a).Equal(version(b)) },
		NotEqual:     func(a, b any) bool { return !version(a).Equal(version(b)) },
		LessEqual:    func(a, b any) bool { return version(a).Compare(version(b)) <= 0 },
		Less:         func(a, b any) bool { return version(a).LessThan(version(b)) },
		Greater:      func(a, b any) bool { return version(a).GreaterThan(version(b)) },
		GreaterEqual: func(a, b any) bool { return version(a).Compare(version(b)) >= 0 },
		Compare:      func(a, b any) int { return version(a).Compare(version(b)) },
	}

	versions := gopter.CombineGens(
		gen.UInt64Range(0, 3),
		gen.UInt64Range(0, 3),
		gen.UInt64Range(0, 3),
		gen.OneConstOf("", "alpha", "alpha.1", "beta", "rc.2"),
	).Map(func(v []interface{}) *semver.Version {
		return semver.New(v[0].(uint64), v[1].(uint64), v[2].(uint64), v[3].(string), "")
	})

	return m.Subject{
		Name:     "semver.Version",
		Ops:      ops,
		Bindings: m.Single(versions),
	}
}
