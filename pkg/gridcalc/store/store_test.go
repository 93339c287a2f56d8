package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sheets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testGrid(t *testing.T, width, height int, entries ...gridcalc.Entry) *gridcalc.Grid {
	t.Helper()
	g, err := gridcalc.NewGrid(width, height)
	require.NoError(t, err)
	g.Replace(entries)
	return g
}

func TestPutGet(t *testing.T) {
	s := openTestStore(t)
	g := testGrid(t, 5, 6,
		gridcalc.Entry{X: 0, Y: 0, Raw: "4"},
		gridcalc.Entry{X: 1, Y: 2, Raw: "=A0*A0"},
		gridcalc.Entry{X: 4, Y: 5, Raw: "note"},
	)
	require.NoError(t, s.Put("Budget", g))

	loaded, err := s.Get(" budget ", gridcalc.Options{})
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Width())
	assert.Equal(t, 6, loaded.Height())
	assert.Equal(t, g.Entries(), loaded.Entries())
	assert.Equal(t, "16.0", loaded.Value(1, 2))
}

func TestPutReplaces(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Put("a", testGrid(t, 2, 2, gridcalc.Entry{X: 0, Y: 0, Raw: "1"})))
	require.NoError(t, s.Put("A", testGrid(t, 3, 3, gridcalc.Entry{X: 2, Y: 2, Raw: "2"})))

	infos, err := s.List()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "a", infos[0].Name)
	assert.Equal(t, 3, infos[0].Width)
	assert.Equal(t, 1, infos[0].Cells)
	assert.False(t, infos[0].Saved.IsZero())
}

func TestList(t *testing.T) {
	s := openTestStore(t)

	infos, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, infos)

	for _, name := range []string{"zeta", "alpha", "Mid"} {
		require.NoError(t, s.Put(name, testGrid(t, 1, 1)))
	}
	infos, err = s.List()
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, "alpha", infos[0].Name)
	assert.Equal(t, "mid", infos[1].Name)
	assert.Equal(t, "zeta", infos[2].Name)
	assert.Equal(t, 0, infos[0].Cells)
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Put("tmp", testGrid(t, 1, 1)))

	require.NoError(t, s.Delete("TMP"))
	_, err := s.Get("tmp", gridcalc.Options{})
	assert.ErrorIs(t, err, ErrSheetNotFound)

	assert.ErrorIs(t, s.Delete("tmp"), ErrSheetNotFound)
}

func TestEmptyName(t *testing.T) {
	s := openTestStore(t)
	g := testGrid(t, 1, 1)

	assert.ErrorIs(t, s.Put("  ", g), ErrEmptyName)
	_, err := s.Get("", gridcalc.Options{})
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.ErrorIs(t, s.Delete(""), ErrEmptyName)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheets.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put("kept", testGrid(t, 2, 2, gridcalc.Entry{X: 1, Y: 1, Raw: "=if(1<2,yes,no)"})))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	g, err := s.Get("kept", gridcalc.Options{})
	require.NoError(t, err)
	assert.Equal(t, "yes", g.Value(1, 1))
}
