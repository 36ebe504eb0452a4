package contracts_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/leanovate/gopter/gen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steverpalmer/GenericTesting/internal/domain"
	"github.com/steverpalmer/GenericTesting/internal/domain/contracts"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

// statuses runs every check of s and keys the outcome by check ID.
func statuses(t *testing.T, s m.Subject) map[string]m.Status {
	t.Helper()

	loader, err := contracts.Default()
	require.NoError(t, err)

	comp, err := loader.Discover(s)
	require.NoError(t, err)

	suite, err := domain.Bind(comp, s, nil)
	require.NoError(t, err)

	report := domain.NewRunner(domain.RunConfig{Trials: 100, Seed: 3}).RunSuite(context.Background(), suite)

	out := make(map[string]m.Status, len(report.Results))
	for _, r := range report.Results {
		out[r.Check] = r.Status
	}

	return out
}

func streamSubject(kind string, open func(c any) any) m.Subject {
	return m.Subject{
		Name:     "stream",
		Ancestry: []string{kind},
		Ops:      &m.Ops{Open: open},
		Bindings: m.Bindings{m.RoleSelf: gen.SliceOf(gen.UInt8())},
	}
}

// lossyBuffer reports full writes but keeps all but the last byte.
type lossyBuffer struct {
	bytes.Buffer
}

func (b *lossyBuffer) Write(p []byte) (int, error) {
	if len(p) > 0 {
		_, _ = b.Buffer.Write(p[:len(p)-1])
	}

	return len(p), nil
}

// stuckSeeker never reports an offset other than the start.
type stuckSeeker struct {
	*bytes.Reader
}

func (s stuckSeeker) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekCurrent && offset == 0 {
		return 0, nil
	}

	return s.Reader.Seek(offset, whence)
}

func TestStreams_BufferPasses(t *testing.T) {
	got := statuses(t, streamSubject(contracts.KindReadWriter, func(c any) any {
		return bytes.NewBuffer(bytes.Clone(c.([]byte)))
	}))

	require.Contains(t, got, "4210_write_then_read_round_trip")
	for id, status := range got {
		assert.Equal(t, m.Passed, status, id)
	}
}

func TestStreams_LossyWriteFailsRoundTrip(t *testing.T) {
	got := statuses(t, streamSubject(contracts.KindReadWriter, func(c any) any {
		b := &lossyBuffer{}
		_, _ = b.Buffer.Write(c.([]byte))

		return b
	}))

	assert.Equal(t, m.Passed, got["4110_write_reports_length"])
	assert.Equal(t, m.Failed, got["4210_write_then_read_round_trip"])
	assert.Equal(t, m.Failed, got["4220_read_consumes_before_write"])
}

func TestStreams_StuckTellFails(t *testing.T) {
	got := statuses(t, streamSubject(contracts.KindReadSeeker, func(c any) any {
		return stuckSeeker{bytes.NewReader(c.([]byte))}
	}))

	assert.Equal(t, m.Passed, got["4330_seek_start_then_read"])
	assert.Equal(t, m.Failed, got["4310_tell_follows_reads"])
}

func TestStreams_MissingInterfaceIsAnError(t *testing.T) {
	got := statuses(t, streamSubject(contracts.KindReadWriter, func(c any) any {
		return strings.NewReader(string(c.([]byte)))
	}))

	assert.Equal(t, m.Passed, got["4010_read_all_then_eof"])
	assert.Equal(t, m.Errored, got["4110_write_reports_length"])
}

func TestStreams_ReadWriteSeekAddsToReader(t *testing.T) {
	tax := taxonomy(t)

	ids, err := tax.Diff(contracts.ContractReaderStream, contracts.ContractReadWriteSeekStream)
	require.NoError(t, err)

	assert.Contains(t, ids, "4110_write_reports_length")
	assert.Contains(t, ids, "4310_tell_follows_reads")
	assert.Contains(t, ids, "4430_truncate_keeps_offset")
	assert.NotContains(t, ids, "4010_read_all_then_eof")
	assert.NotContains(t, ids, "4210_write_then_read_round_trip")
}
