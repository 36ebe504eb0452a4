package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/steverpalmer/GenericTesting/internal/model"
)

func TestParseDocOverride(t *testing.T) {
	doc := "ModuloN is arithmetic modulo 7.\n\ngentest:\n\n\thas: [FieldTests, TotalOrdering]\n\texcluding: [abs]\n\nTrailing prose.\n"

	o, found, err := ParseDocOverride(doc)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, &m.Override{
		Has:       []string{"FieldTests", "TotalOrdering"},
		Excluding: []string{"abs"},
	}, o)
}

func TestParseDocOverride_BlockLists(t *testing.T) {
	doc := "gentest:\n    skipping:\n      - 0220\n      - shl\n"

	o, found, err := ParseDocOverride(doc)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, []string{"0220", "shl"}, o.Skipping)
}

func TestParseDocOverride_OnlyFirstBlockCounts(t *testing.T) {
	doc := "gentest:\n\thas: [Ring]\nprose\ngentest:\n\thas: [Field]\n"

	o, found, err := ParseDocOverride(doc)
	require.NoError(t, err)
	require.True(t, found)

	assert.Equal(t, []string{"Ring"}, o.Has)
}

func TestParseDocOverride_NoMarker(t *testing.T) {
	o, found, err := ParseDocOverride("Plain documentation mentioning gentest: inline.")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, o)
}

func TestParseDocOverride_EmptyBlock(t *testing.T) {
	o, found, err := ParseDocOverride("gentest:\nno indented lines\n")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, o.IsZero())
}

func TestParseOverride_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "has: [Ring]\nrunning: [x]\n"},
		{"mapping value", "has:\n  Ring: true\n"},
		{"nested list", "has: [[Ring]]\n"},
		{"anchor", "has: &names [Ring]\nexcluding: *names\n"},
		{"custom tag", "has: !contract Ring\n"},
		{"binary tag", "has: !!binary UmluZw==\n"},
		{"top level list", "- Ring\n"},
		{"malformed", "has: [Ring\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOverride([]byte(tt.yaml))
			require.ErrorIs(t, err, ErrInvalidOverride)
		})
	}
}

func TestParseOverride_Empty(t *testing.T) {
	for _, data := range []string{"", "\n", "~\n"} {
		o, err := ParseOverride([]byte(data))
		require.NoError(t, err, "%q", data)
		assert.True(t, o.IsZero(), "%q", data)
	}
}

func TestApplyOverride(t *testing.T) {
	checks := []m.Check{
		check(2210, "addition_identity", m.RoleSelf),
		check(2220, "addition_associativity", m.RoleSelf, m.RoleSelf, m.RoleSelf),
		check(2620, "divmod_matches", m.RoleSelf, m.RoleSelf),
	}

	planned := ApplyOverride(checks, &m.Override{
		Excluding: []string{"addition", "divmod"},
		Skipping:  []string{"2220"},
	})
	require.Len(t, planned, 3)

	assert.Equal(t, m.ModeExcluded, planned[0].Mode)
	assert.Equal(t, "addition", planned[0].Matched)

	// Skip wins over exclude.
	assert.Equal(t, m.ModeSkipped, planned[1].Mode)
	assert.Equal(t, "2220", planned[1].Matched)

	assert.Equal(t, m.ModeExcluded, planned[2].Mode)
}

func TestApplyOverride_PreservesCount(t *testing.T) {
	checks := []m.Check{check(1, "a", m.RoleSelf), check(2, "b", m.RoleSelf)}

	for _, o := range []*m.Override{nil, {}, {Skipping: []string{""}}, {Excluding: []string{"_"}}} {
		planned := ApplyOverride(checks, o)
		require.Len(t, planned, len(checks))

		for i := range checks {
			assert.Equal(t, checks[i].ID(), planned[i].ID())
		}
	}
}
