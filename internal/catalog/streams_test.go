package catalog_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steverpalmer/GenericTesting/internal/catalog"
	"github.com/steverpalmer/GenericTesting/internal/domain/contracts"
	m "github.com/steverpalmer/GenericTesting/internal/model"
)

func TestCatalog_StreamsAndEnumsAreRegistered(t *testing.T) {
	loader, c := setup(t)

	tests := []struct {
		name     string
		contract string
	}{
		{"*bytes.Buffer", contracts.ContractBufferStream},
		{"*strings.Reader", contracts.ContractSeekerStream},
		{"ByteFile", contracts.ContractReadWriteSeekStream},
		{"time.Weekday", contracts.ContractUniqueEnum},
		{"Permission", contracts.ContractFlagEnum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp, err := loader.Discover(subject(t, c, tt.name))
			require.NoError(t, err)

			assert.Equal(t, m.SourceRegistered, comp.Source)
			assert.Equal(t, []string{tt.contract}, comp.Contracts)
		})
	}
}

func TestByteFile(t *testing.T) {
	t.Run("write past the end zero fills", func(t *testing.T) {
		f := catalog.NewByteFile([]byte("ab"))

		_, err := f.Seek(4, io.SeekStart)
		require.NoError(t, err)

		n, err := f.Write([]byte("z"))
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		_, err = f.Seek(0, io.SeekStart)
		require.NoError(t, err)

		got, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, []byte("ab\x00\x00z"), got)
	})

	t.Run("truncate keeps the offset", func(t *testing.T) {
		f := catalog.NewByteFile([]byte("abcdef"))

		_, err := f.Seek(5, io.SeekStart)
		require.NoError(t, err)
		require.NoError(t, f.Truncate(2))

		pos, err := f.Seek(0, io.SeekCurrent)
		require.NoError(t, err)
		assert.EqualValues(t, 5, pos)

		n, err := f.Read(make([]byte, 4))
		assert.Zero(t, n)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("negative offsets are rejected", func(t *testing.T) {
		f := catalog.NewByteFile(nil)

		_, err := f.Seek(-1, io.SeekEnd)
		require.Error(t, err)
		require.Error(t, f.Truncate(-1))
	})

	t.Run("empty read at the end", func(t *testing.T) {
		f := catalog.NewByteFile(nil)

		n, err := f.Read(nil)
		assert.Zero(t, n)
		assert.NoError(t, err)
	})

	t.Run("copies its input", func(t *testing.T) {
		data := []byte("abc")
		f := catalog.NewByteFile(data)

		_, err := f.Write([]byte("x"))
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), data)
	})
}
