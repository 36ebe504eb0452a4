package catalog

import (
	"strconv"

	"github.com/leanovate/gopter/gen"

	"github.com/steverpalmer/GenericTesting/internal/domain/contracts"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// decimalSubject is strconv.FormatInt in base 10 with ParseInt as its
// inverse. Canonical decimal strings are its codomain.
func decimalSubject() m.Subject {
	ops := &m.Ops{
		Apply: func(x any) any { return strconv.FormatInt(x.(int64), 10) },
		Inverse: func(y any) any {
			x, err := strconv.ParseInt(y.(string), 10, 64)
			if err != nil {
				return nil
			}

			return x
		},
		Roles: map[m.Role]*m.Ops{
			m.RoleDomain:   int64Ops(),
			m.RoleCodomain: stringOps(),
		},
	}

	return m.Subject{
		Name:     "strconv.FormatInt",
		Override: &m.Override{Has: []string{contracts.ContractBijective}},
		Ops:      ops,
		Bindings: m.Bindings{
			m.RoleDomain:   gen.Int64(),
			m.RoleCodomain: gen.Int64().Map(func(v int64) string { return strconv.FormatInt(v, 10) }),
		},
	}
}
