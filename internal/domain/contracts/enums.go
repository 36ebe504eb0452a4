package contracts

import (
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// Enumeration contract names.
const (
	ContractEnum       = "Enum"
	ContractUniqueEnum = "UniqueEnum"
	ContractFlagEnum   = "FlagEnum"
)

func isMember(t *m.Trial, a any) bool {
	for _, member := range t.Ops().Members() {
		if same(t, 0, a, member) {
			return true
		}
	}

	return false
}

func enums() []m.Contract {
	return []m.Contract{
		{
			Name:    ContractEnum,
			Doc:     "A closed set of named members. Names are drawn as KeyT.",
			Parents: []string{ContractHashable},
			Needs:   []m.Op{"Members", "Name", "Parse"},
			Checks: []m.Check{
				{Number: 9010, Name: "member_of_members", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					return t.Expect(isMember(t, a), "%v is not listed in the members", a)
				}},
				{Number: 9020, Name: "equality_by_name", Params: self("a", "b"), Law: func(t *m.Trial) error {
					a, b := t.Arg(0), t.Arg(1)
					name := t.Ops().Name
					if same(t, 0, a, b) {
						return t.Expect(name(a) == name(b), "%v == %v named %q and %q", a, b, name(a), name(b))
					}

					return t.Expect(name(a) != name(b) || name(a) == "", "%v != %v share the name %q", a, b, name(a))
				}},
				{Number: 9030, Name: "name_parse_roundtrip", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					ops := t.Ops()
					if err := t.Assume(ops.Name(a) != ""); err != nil {
						return err
					}

					got, ok := ops.Parse(ops.Name(a))

					return t.Expect(ok && same(t, 0, got, a), "parse %q gave %v, %t", ops.Name(a), got, ok)
				}},
				{Number: 9040, Name: "parse_yields_member", Params: []m.Param{param("key", m.RoleKey)}, Law: func(t *m.Trial) error {
					key, _ := t.Arg(0).(string)
					ops := t.Ops()

					member, ok := ops.Parse(key)
					if !ok {
						return nil
					}

					for _, candidate := range ops.Members() {
						if ops.Equals(member, candidate) {
							return nil
						}
					}

					return t.Expect(false, "parse %q gave %v outside the members", key, member)
				}},
			},
		},
		{
			Name:    ContractUniqueEnum,
			Doc:     "Every member has its own name.",
			Parents: []string{ContractEnum},
			Checks: []m.Check{
				{Number: 9050, Name: "parse_name_roundtrip", Params: []m.Param{param("key", m.RoleKey)}, Law: func(t *m.Trial) error {
					key, _ := t.Arg(0).(string)
					ops := t.Ops()

					member, ok := ops.Parse(key)
					if !ok {
						return nil
					}

					return t.Expect(ops.Name(member) == key, "parse %q named %q", key, ops.Name(member))
				}},
				{Number: 9051, Name: "member_names_distinct", Law: func(t *m.Trial) error {
					ops := t.Ops()

					seen := make(map[string]any)
					for _, member := range ops.Members() {
						name := ops.Name(member)
						if other, ok := seen[name]; ok {
							return t.Expect(false, "%v and %v are both named %q", other, member, name)
						}

						seen[name] = member
					}

					return nil
				}},
			},
		},
		{
			Name:     ContractFlagEnum,
			Doc:      "Bit flags: members combine under | & ^ ~ and only the empty set is false.",
			Parents:  []string{ContractLatticeWithComplement, ContractHashable},
			Needs:    []m.Op{"Truth", "Name", "Parse"},
			Requires: []string{ValueBottom},
			Derived: []m.Derivation{
				{Value: ValueTop, Derive: deriveFrom(ValueBottom, func(ops *m.Ops, bottom any) any { return ops.Invert(bottom) })},
			},
			Checks: []m.Check{
				{Number: 9110, Name: "truth_iff_not_bottom", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					empty := same(t, 0, a, t.Value(ValueBottom))
					return t.Expect(t.Ops().Truth(a) != empty, "truth of %v is %t", a, t.Ops().Truth(a))
				}},
				{Number: 9120, Name: "named_flags_parse", Params: self("a"), Law: func(t *m.Trial) error {
					a := t.Arg(0)
					ops := t.Ops()

					name := ops.Name(a)
					if name == "" {
						return nil
					}

					got, ok := ops.Parse(name)

					return t.Expect(ok && same(t, 0, got, a), "parse %q gave %v, %t", name, got, ok)
				}},
			},
		},
	}
}
