package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/repository/memory"
)

func newTestRedirectManager() *RedirectManager {
	return NewRedirectManager(memory.NewSlugRedirectRepository(), slog.Default())
}

func TestAddRedirectUnderBound(t *testing.T) {
	ctx := context.Background()
	m := newTestRedirectManager()

	deleted, err := m.AddRedirect(ctx, "doc-1", "first-slug")
	require.NoError(t, err)
	assert.Nil(t, deleted)

	deleted, err = m.AddRedirect(ctx, "doc-1", "second-slug")
	require.NoError(t, err)
	assert.Nil(t, deleted)

	id, err := m.Resolve(ctx, "first-slug")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", id)

	id, err = m.Resolve(ctx, "second-slug")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", id)
}

func TestAddRedirectEvictsOldest(t *testing.T) {
	ctx := context.Background()
	m := newTestRedirectManager()

	_, err := m.AddRedirect(ctx, "doc-1", "first-slug")
	require.NoError(t, err)
	_, err = m.AddRedirect(ctx, "doc-1", "second-slug")
	require.NoError(t, err)

	deleted, err := m.AddRedirect(ctx, "doc-1", "third-slug")
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "first-slug", *deleted)

	// The evicted slug stops resolving; the survivors still work.
	_, err = m.Resolve(ctx, "first-slug")
	assert.Error(t, err)

	for _, slug := range []string{"second-slug", "third-slug"} {
		id, err := m.Resolve(ctx, slug)
		require.NoError(t, err)
		assert.Equal(t, "doc-1", id)
	}
}

func TestAddRedirectBoundIsPerDocument(t *testing.T) {
	ctx := context.Background()
	m := newTestRedirectManager()

	_, err := m.AddRedirect(ctx, "doc-1", "a-one")
	require.NoError(t, err)
	_, err = m.AddRedirect(ctx, "doc-1", "a-two")
	require.NoError(t, err)

	// A different document's redirects never count against doc-1.
	deleted, err := m.AddRedirect(ctx, "doc-2", "b-one")
	require.NoError(t, err)
	assert.Nil(t, deleted)
}

func TestPreviewEvictionAgreesWithCommit(t *testing.T) {
	ctx := context.Background()
	m := newTestRedirectManager()

	preview, err := m.PreviewEviction(ctx, "doc-1")
	require.NoError(t, err)
	assert.Nil(t, preview.WouldDelete)
	assert.Equal(t, 0, preview.Count)

	_, err = m.AddRedirect(ctx, "doc-1", "first-slug")
	require.NoError(t, err)
	_, err = m.AddRedirect(ctx, "doc-1", "second-slug")
	require.NoError(t, err)

	preview, err = m.PreviewEviction(ctx, "doc-1")
	require.NoError(t, err)
	require.NotNil(t, preview.WouldDelete)
	assert.Equal(t, "first-slug", *preview.WouldDelete)
	assert.Equal(t, 2, preview.Count)

	deleted, err := m.AddRedirect(ctx, "doc-1", "third-slug")
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, *preview.WouldDelete, *deleted)
}

func TestDeleteAllForDocument(t *testing.T) {
	ctx := context.Background()
	m := newTestRedirectManager()

	_, err := m.AddRedirect(ctx, "doc-1", "one")
	require.NoError(t, err)
	_, err = m.AddRedirect(ctx, "doc-1", "two")
	require.NoError(t, err)
	_, err = m.AddRedirect(ctx, "doc-2", "other")
	require.NoError(t, err)

	count, err := m.DeleteAllForDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	_, err = m.Resolve(ctx, "one")
	assert.Error(t, err)

	id, err := m.Resolve(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, "doc-2", id)
}

func TestDeleteBySlug(t *testing.T) {
	ctx := context.Background()
	m := newTestRedirectManager()

	_, err := m.AddRedirect(ctx, "doc-1", "retired")
	require.NoError(t, err)

	require.NoError(t, m.DeleteBySlug(ctx, "retired"))
	_, err = m.Resolve(ctx, "retired")
	assert.Error(t, err)

	// Deleting a slug that never redirected is a no-op.
	assert.NoError(t, m.DeleteBySlug(ctx, "never-existed"))
}
