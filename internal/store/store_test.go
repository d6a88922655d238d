package store

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/trace3d/internal/geom"
	"github.com/san-kum/trace3d/internal/viz"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "figures"))
	require.NoError(t, s.Init())
	return s
}

func testFigure(t *testing.T) *viz.Figure {
	t.Helper()
	fig, err := viz.NewFigure(geom.NewRay(geom.V(1, 2, 3), geom.UnitZ))
	require.NoError(t, err)
	return fig
}

func TestSaveLoad(t *testing.T) {
	s := testStore(t)
	fig := testFigure(t)

	id, err := s.Save("demo", fig)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "demo_"))

	back, meta, err := s.Load(id)
	require.NoError(t, err)
	assert.Equal(t, id, meta.ID)
	assert.Equal(t, "demo", meta.Name)
	assert.Equal(t, len(fig.Data), meta.TraceCount)

	wantFP, err := fig.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, wantFP, meta.Fingerprint)

	require.Len(t, back.Data, len(fig.Data))
	assert.Equal(t, fig.Data[0].Name, back.Data[0].Name)
	// Segment breaks survive the disk round trip.
	assert.True(t, math.IsNaN(float64(back.Data[0].X[2])))
}

func TestList(t *testing.T) {
	s := testStore(t)
	fig := testFigure(t)

	first, err := s.Save("first", fig)
	require.NoError(t, err)
	second, err := s.Save("second", fig)
	require.NoError(t, err)

	metas, err := s.List()
	require.NoError(t, err)
	require.Len(t, metas, 2)

	ids := []string{metas[0].ID, metas[1].ID}
	assert.Contains(t, ids, first)
	assert.Contains(t, ids, second)
	// Newest first.
	assert.False(t, metas[0].Created.Before(metas[1].Created))
}

func TestListSkipsForeignDirs(t *testing.T) {
	s := testStore(t)
	require.NoError(t, os.MkdirAll(filepath.Join(s.baseDir, "not-a-figure"), 0755))

	_, err := s.Save("demo", testFigure(t))
	require.NoError(t, err)

	metas, err := s.List()
	require.NoError(t, err)
	assert.Len(t, metas, 1)
}

func TestListMissingBase(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nowhere"))
	metas, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, metas)
}

func TestLoadUnknownID(t *testing.T) {
	s := testStore(t)
	_, _, err := s.Load("missing")
	assert.Error(t, err)
}

func TestUniqueIDs(t *testing.T) {
	s := testStore(t)
	fig := testFigure(t)

	a, err := s.Save("demo", fig)
	require.NoError(t, err)
	b, err := s.Save("demo", fig)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
