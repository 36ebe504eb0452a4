package model

// ContainerFlags is the sized/iterable/container combination of a type.
type ContainerFlags int

// Flag bits.
const (
	FlagContainer ContainerFlags = 1 << iota
	FlagIterable
	FlagSized
)

// Profile is a read-only snapshot of what a type supports.
type Profile struct {
	Sized     bool
	Iterable  bool
	Container bool

	DefinesEqual        bool
	DefinesNotEqual     bool
	DefinesLessEqual    bool
	DefinesFullOrdering bool
	DefinesCompare      bool

	Ancestry []string
}

// ProfileOf returns the explicit profile of the subject if set and the one
// derived from its Ops otherwise.
func ProfileOf(s Subject) Profile {
	if s.Profile != nil {
		p := *s.Profile
		if p.Ancestry == nil {
			p.Ancestry = append([]string(nil), s.Ancestry...)
		}

		return p
	}

	ops := s.Ops

	return Profile{
		Sized:               ops.Has("Len"),
		Iterable:            ops.Has("Iter"),
		Container:           ops.Has("Contains"),
		DefinesEqual:        ops.Has("Equal"),
		DefinesNotEqual:     ops.Has("NotEqual"),
		DefinesLessEqual:    ops.Has("LessEqual"),
		DefinesFullOrdering: ops.Has("Less") && ops.Has("Greater") && ops.Has("GreaterEqual"),
		DefinesCompare:      ops.Has("Compare"),
		Ancestry:            append([]string(nil), s.Ancestry...),
	}
}

// Flags packs the container-shaped capabilities.
func (p Profile) Flags() ContainerFlags {
	var f ContainerFlags
	if p.Container {
		f |= FlagContainer
	}

	if p.Iterable {
		f |= FlagIterable
	}

	if p.Sized {
		f |= FlagSized
	}

	return f
}
