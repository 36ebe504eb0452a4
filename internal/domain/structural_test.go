package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "github.com/steverpalmer/GenericTesting/internal/model"
)

func TestStructuralContracts(t *testing.T) {
	tests := []struct {
		name    string
		profile m.Profile
		want    []string
	}{
		{"nothing", m.Profile{}, []string{}},
		{"container", m.Profile{Container: true}, []string{ContractContainer}},
		{"iterable", m.Profile{Iterable: true}, []string{ContractIterable}},
		{"sized", m.Profile{Sized: true}, []string{ContractSized}},
		{"sized container", m.Profile{Sized: true, Container: true}, []string{ContractSized, ContractContainer}},
		{"iterable container", m.Profile{Iterable: true, Container: true}, []string{ContractContainerOverIterable}},
		{"sized iterable", m.Profile{Sized: true, Iterable: true}, []string{ContractSizedOverIterable}},
		{
			"sized iterable container",
			m.Profile{Sized: true, Iterable: true, Container: true},
			[]string{ContractContainerOverIterable, ContractSizedOverIterable},
		},
		{"equals only", m.Profile{DefinesEqual: true}, []string{ContractEqualsOnly}},
		{"equality", m.Profile{DefinesEqual: true, DefinesNotEqual: true}, []string{ContractEquality}},
		{"less or equal", m.Profile{DefinesLessEqual: true}, []string{ContractLessOrEqual}},
		{
			"partial ordering",
			m.Profile{DefinesLessEqual: true, DefinesFullOrdering: true},
			[]string{ContractPartialOrdering},
		},
		{
			"total ordering",
			m.Profile{DefinesEqual: true, DefinesNotEqual: true, DefinesLessEqual: true, DefinesFullOrdering: true, DefinesCompare: true},
			[]string{ContractEquality, ContractTotalOrdering},
		},
		{
			"container with equality",
			m.Profile{Container: true, DefinesEqual: true},
			[]string{ContractContainer, ContractEqualsOnly},
		},
		{"compare without full ordering", m.Profile{DefinesCompare: true}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StructuralContracts(tt.profile)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProfileOf_FromOps(t *testing.T) {
	ops := &m.Ops{
		Equal:        func(a, b any) bool { return a == b },
		LessEqual:    func(a, b any) bool { return true },
		Less:         func(a, b any) bool { return false },
		Greater:      func(a, b any) bool { return false },
		GreaterEqual: func(a, b any) bool { return true },
		Len:          func(a any) int { return 0 },
	}

	p := m.ProfileOf(m.Subject{Name: "thing", Ancestry: []string{"Kind"}, Ops: ops})

	assert.True(t, p.Sized)
	assert.False(t, p.Iterable)
	assert.True(t, p.DefinesEqual)
	assert.False(t, p.DefinesNotEqual)
	assert.True(t, p.DefinesFullOrdering)
	assert.False(t, p.DefinesCompare)
	assert.Equal(t, []string{"Kind"}, p.Ancestry)
	assert.Equal(t, []string{ContractSized, ContractEqualsOnly, ContractPartialOrdering}, StructuralContracts(p))
}
