package catalog

import (
	"time"

	"github.com/leanovate/gopter/gen"

	"github.com/steverpalmer/GenericTesting/internal/domain/contracts"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

func weekday(a any) time.Weekday {
	return a.(time.Weekday)
}

func weekdaySubject() m.Subject {
	members := make([]any, 0, 7)
	names := make([]string, 0, 7)

	for d := time.Sunday; d <= time.Saturday; d++ {
		members = append(members, d)
		names = append(names, d.String())
	}

	ops := &m.Ops{
		Hash:    func(a any) uint64 { return uint64(weekday(a)) },
		Members: func() []any { return members },
		Name:    func(a any) string { return weekday(a).String() },
		Parse: func(name string) (any, bool) {
			for _, d := range members {
				if weekday(d).String() == name {
					return d, true
				}
			}

			return nil, false
		},
	}
	ordered[time.Weekday](ops)

	// Keys mix member names with arbitrary strings so failed parses are drawn too.
	keys := gen.OneGenOf(gen.OneConstOf(anys(names)...), gen.AlphaString())

	return m.Subject{
		Name:     "time.Weekday",
		Ancestry: []string{contracts.ContractUniqueEnum},
		Ops:      ops,
		Bindings: m.Bindings{
			m.RoleSelf: gen.IntRange(0, 6).Map(func(v int) time.Weekday { return time.Weekday(v) }),
			m.RoleKey:  keys,
		},
	}
}

func anys[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}

	return out
}

// Permission is a set of access flags.
type Permission uint8

// The single flags; PermAll combines all three.
const (
	PermRead Permission = 1 << iota
	PermWrite
	PermExec

	PermNone Permission = 0
	PermAll             = PermRead | PermWrite | PermExec
)

// permissionNames names the flags and the two ends of the lattice. Other
// combinations are unnamed.
var permissionNames = map[Permission]string{
	PermNone:  "none",
	PermRead:  "read",
	PermWrite: "write",
	PermExec:  "exec",
	PermAll:   "all",
}

func (p Permission) String() string {
	return permissionNames[p]
}

func permission(a any) Permission {
	return a.(Permission)
}

func permissionSubject() m.Subject {
	ops := &m.Ops{
		Equal:    func(a, b any) bool { return permission(a) == permission(b) },
		NotEqual: func(a, b any) bool { return permission(a) != permission(b) },
		Hash:     func(a any) uint64 { return uint64(permission(a)) },
		Or:       func(a, b any) any { return permission(a) | permission(b) },
		And:      func(a, b any) any { return permission(a) & permission(b) },
		Xor:      func(a, b any) any { return permission(a) ^ permission(b) },
		Invert:   func(a any) any { return ^permission(a) & PermAll },
		Truth:    func(a any) bool { return permission(a) != PermNone },
		Name:     func(a any) string { return permission(a).String() },
		Parse: func(name string) (any, bool) {
			for p, n := range permissionNames {
				if n == name {
					return p, true
				}
			}

			return nil, false
		},
	}

	return m.Subject{
		Name:     "Permission",
		Ancestry: []string{contracts.ContractFlagEnum},
		Ops:      ops,
		Values:   m.Values{contracts.ValueBottom: PermNone},
		Bindings: m.Bindings{
			m.RoleSelf: gen.UInt8Range(0, uint8(PermAll)).Map(func(v uint8) Permission { return Permission(v) }),
		},
	}
}
