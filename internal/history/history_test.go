package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func TestRecord_FillsIDAndTime(t *testing.T) {
	s := openStore(t)

	e, err := s.Record(context.Background(), Entry{URL: "https://example.com/s/a", Author: "writer", Title: "A", Chapters: 1, Format: "html", Output: "stdout"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.False(t, e.CreatedAt.IsZero())
}

func TestList_NewestFirst(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, title := range []string{"first", "second", "third"} {
		_, err := s.Record(ctx, Entry{
			URL:       "https://example.com/s/" + title,
			Author:    "writer",
			Title:     title,
			Chapters:  i + 1,
			Format:    "epub",
			Output:    title + ".epub",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Title)
	assert.Equal(t, "first", all[2].Title)
	assert.Equal(t, 3, all[0].Chapters)
	assert.True(t, all[0].CreatedAt.Equal(base.Add(2*time.Hour)))

	top, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "second", top[1].Title)
}

func TestRecord_KeepsGivenID(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	id := uuid.New()

	_, err := s.Record(ctx, Entry{ID: id, URL: "u", Author: "a", Title: "t", Format: "html", Output: "o"})
	require.NoError(t, err)

	_, err = s.Record(ctx, Entry{ID: id, URL: "u", Author: "a", Title: "t", Format: "html", Output: "o"})
	assert.Error(t, err, "ids are unique")

	got, err := s.List(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, id, got[0].ID)
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Record(context.Background(), Entry{URL: "u", Author: "a", Title: "t", Format: "html", Output: "o"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
