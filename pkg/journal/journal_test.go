package journal

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name  string
	Count int
	Tags  []string
}

func TestJournal(t *testing.T) {
	t.Run("Create and Get", func(t *testing.T) {
		j, err := Create[string](filepath.Join(t.TempDir(), "results.gob"))
		require.NoError(t, err)
		defer j.Close()

		require.NoError(t, j.Append("first"))
		require.NoError(t, j.Append("second"))

		first, err := j.Get(0)
		require.NoError(t, err)
		assert.Equal(t, "first", first)

		second, err := j.Get(1)
		require.NoError(t, err)
		assert.Equal(t, "second", second)

		missing, err := j.Get(3)
		require.Error(t, err)
		assert.Equal(t, "", missing)
	})

	t.Run("Create makes parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a", "b", "results.gob")

		j, err := Create[int](path)
		require.NoError(t, err)
		defer j.Close()

		assert.Equal(t, path, j.Path())
	})

	t.Run("AppendBatch and Range keep order", func(t *testing.T) {
		j, err := Create[int](filepath.Join(t.TempDir(), "ints.gob"))
		require.NoError(t, err)
		defer j.Close()

		require.NoError(t, j.AppendBatch([]int{10, 20, 30}))
		assert.Equal(t, uint64(3), j.Len())

		var got []int

		err = j.Range(func(index uint64, item int) error {
			assert.Equal(t, uint64(len(got)), index)
			got = append(got, item)

			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []int{10, 20, 30}, got)
	})

	t.Run("Range stops on callback error", func(t *testing.T) {
		j, err := Create[int](filepath.Join(t.TempDir(), "ints.gob"))
		require.NoError(t, err)
		defer j.Close()

		require.NoError(t, j.AppendBatch([]int{1, 2, 3}))

		boom := errors.New("boom")
		calls := 0

		err = j.Range(func(_ uint64, _ int) error {
			calls++
			return boom
		})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("Range resets fields between entries", func(t *testing.T) {
		j, err := Create[entry](filepath.Join(t.TempDir(), "entries.gob"))
		require.NoError(t, err)
		defer j.Close()

		require.NoError(t, j.Append(entry{Name: "a", Count: 1, Tags: []string{"x"}}))
		require.NoError(t, j.Append(entry{Name: "b"}))

		second, err := j.Get(1)
		require.NoError(t, err)
		assert.Equal(t, entry{Name: "b"}, second)
	})
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.gob")

	w, err := Create[entry](path)
	require.NoError(t, err)
	require.NoError(t, w.AppendBatch([]entry{{Name: "a", Count: 1}, {Name: "b", Count: 2}}))
	require.NoError(t, w.Close())

	r, err := Open[entry](path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, uint64(2), r.Len())

	got, err := r.Get(1)
	require.NoError(t, err)
	assert.Equal(t, entry{Name: "b", Count: 2}, got)

	require.ErrorIs(t, r.Append(entry{Name: "c"}), ErrReadOnly)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open[int](filepath.Join(t.TempDir(), "missing.gob"))
	require.Error(t, err)
}

func TestClose_Twice(t *testing.T) {
	j, err := Create[int](filepath.Join(t.TempDir(), "ints.gob"))
	require.NoError(t, err)

	require.NoError(t, j.Close())
	require.NoError(t, j.Close())
}
