package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/mdd/internal/common"
	"github.com/dmitrijs2005/mdd/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticles_CreateAndRead(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	me := f.register(t, "alice", "alice@example.com")
	subj, err := f.subjects.Create(ctx, "Go", "")
	require.NoError(t, err)

	a, err := f.articles.Create(ctx, me.ID, " Generics ", "body", subj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Generics", a.Title)
	assert.Equal(t, "alice", a.AuthorUsername)
	assert.Equal(t, "Go", a.SubjectName)

	got, err := f.articles.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = f.articles.Get(ctx, 999)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = f.articles.Create(ctx, me.ID, "t", "c", 999)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = f.articles.Create(ctx, me.ID, "", " ", 0)
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Fields, 3)
}

func TestArticles_FeedAndBySubject(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	me := f.register(t, "alice", "alice@example.com")
	golang, err := f.subjects.Create(ctx, "Go", "")
	require.NoError(t, err)
	rust, err := f.subjects.Create(ctx, "Rust", "")
	require.NoError(t, err)

	_, err = f.articles.Create(ctx, me.ID, "first go", "c", golang.ID)
	require.NoError(t, err)
	_, err = f.articles.Create(ctx, me.ID, "rust", "c", rust.ID)
	require.NoError(t, err)
	_, err = f.articles.Create(ctx, me.ID, "second go", "c", golang.ID)
	require.NoError(t, err)

	feed, err := f.articles.Feed(ctx, me.ID, firstPage)
	require.NoError(t, err)
	assert.Empty(t, feed.Content)
	assert.NotNil(t, feed.Content)

	_, err = f.subjects.Subscribe(ctx, me.ID, golang.ID)
	require.NoError(t, err)

	feed, err = f.articles.Feed(ctx, me.ID, firstPage)
	require.NoError(t, err)
	assert.Equal(t, int64(2), feed.TotalElements)
	for _, a := range feed.Content {
		assert.Equal(t, golang.ID, a.SubjectID)
	}

	bySubject, err := f.articles.BySubject(ctx, rust.ID, firstPage)
	require.NoError(t, err)
	require.Len(t, bySubject.Content, 1)
	assert.Equal(t, "rust", bySubject.Content[0].Title)

	_, err = f.articles.BySubject(ctx, 999, firstPage)
	assert.ErrorIs(t, err, common.ErrNotFound)

	all, err := f.articles.List(ctx, models.PageRequest{Page: 0, Size: 10, Asc: true})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.TotalElements)
	assert.True(t, all.First)
	assert.True(t, all.Last)
}
