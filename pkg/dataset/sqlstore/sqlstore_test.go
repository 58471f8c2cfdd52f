package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zpam/naive-classifier/pkg/jeopardy"
)

func strptr(s string) *string { return &s }

func newStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(context.Background(), &Config{
		Path:  filepath.Join(t.TempDir(), "questions.db"),
		Table: "questions",
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	questions := []*jeopardy.Question{
		{
			Category: strptr("HISTORY"), AirDate: "2004-12-31", Question: strptr("'q1'"),
			Value: strptr("$200"), Answer: strptr("Copernicus"), Round: "Jeopardy!", ShowNumber: "4680",
		},
		{
			Category: strptr("BRITISH NOVELS"), AirDate: "1996-12-06", Question: strptr("'q2'"),
			Answer: strptr("The Time Machine"), Round: "Final Jeopardy!", ShowNumber: "2825",
		},
	}

	require.NoError(t, store.Save(ctx, questions))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, questions, loaded)
	assert.Nil(t, loaded[1].Value)

	require.NoError(t, store.Reset(ctx))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestInvalidTableName(t *testing.T) {
	_, err := New(context.Background(), &Config{
		Path:  filepath.Join(t.TempDir(), "questions.db"),
		Table: "questions; DROP TABLE x",
	})
	assert.Error(t, err)
}
