package cmd

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steverpalmer/GenericTesting/internal/domain/contracts"
)

func TestVersionCmd_Output(t *testing.T) {
	cmd := newVersionCmd()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	output := out.String()
	assert.Contains(t, output, "gentest\t")
	assert.Contains(t, output, "go\t")
	assert.Contains(t, output, fmt.Sprintf("contracts\t%d\n", len(contracts.Definitions())))
}
