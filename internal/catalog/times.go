package catalog

import (
	"time"

	"github.com/leanovate/gopter/gen"

	"github.com/steverpalmer/GenericTesting/internal/domain/contracts"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

func duration(a any) time.Duration {
	return a.(time.Duration)
}

func durationOps() *m.Ops {
	ops := &m.Ops{
		Hash: func(a any) uint64 { return uint64(duration(a)) },
		Add:  func(a, b any) any { return duration(a) + duration(b) },
		Sub:  func(a, b any) any { return duration(a) - duration(b) },
		Neg:  func(a any) any { return -duration(a) },
	}
	ordered[time.Duration](ops)

	return ops
}

// durations stay within about 16 minutes so that scaled sums keep clear of
// the int64 range.
var durations = gen.Int64Range(-1e12, 1e12).Map(func(v int64) time.Duration { return time.Duration(v) })

func durationSubject() m.Subject {
	scalars := int64Ops()

	ops := durationOps()
	ops.ScalarMul = func(r, a any) any { return time.Duration(r.(int64)) * duration(a) }
	ops.Roles = map[m.Role]*m.Ops{m.RoleScalar: scalars}

	return m.Subject{
		Name:   contracts.KindDuration,
		Ops:    ops,
		Values: m.Values{contracts.ValueZero: time.Duration(0), contracts.ValueScalarOne: int64(1)},
		Bindings: m.Bindings{
			m.RoleSelf:   durations,
			m.RoleScalar: gen.Int64Range(-IntBound, IntBound),
		},
	}
}

func instant(a any) time.Time {
	return a.(time.Time)
}

// epoch anchors generated instants so that differences never saturate.
var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

func timeSubject() m.Subject {
	ops := &m.Ops{
		Equal:        func(a, b any) bool { return instant(a).Equal(instant(b)) },
		NotEqual:     func(a, b any) bool { return !instant(a).Equal(instant(b)) },
		LessEqual:    func(a, b any) bool { return !instant(a).After(instant(b)) },
		Less:         func(a, b any) bool { return instant(a).Before(instant(b)) },
		Greater:      func(a, b any) bool { return instant(a).After(instant(b)) },
		GreaterEqual: func(a, b any) bool { return !instant(a).Before(instant(b)) },
		Compare:      func(a, b any) int { return instant(a).Compare(instant(b)) },
		Translate:    func(p, v any) any { return instant(p).Add(duration(v)) },
		Difference:   func(p, q any) any { return instant(p).Sub(instant(q)) },
		Roles:        map[m.Role]*m.Ops{m.RoleVector: durationOps()},
	}

	instants := gen.Int64Range(-1e18, 1e18).Map(func(v int64) time.Time {
		return epoch.Add(time.Duration(v / 4))
	})

	return m.Subject{
		Name:   contracts.KindTime,
		Ops:    ops,
		Values: m.Values{contracts.ValueVectorSpaceZero: time.Duration(0)},
		Bindings: m.Bindings{
			m.RoleSelf:   instants,
			m.RoleVector: durations,
		},
	}
}
