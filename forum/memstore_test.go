// forum/memstore_test.go
package forum

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addThread seeds a thread with its first post, sleeping briefly so
// activity timestamps order deterministically.
func addThread(t *testing.T, store *MemStore, title string) *Thread {
	t.Helper()
	thread := &Thread{ID: uuid.NewString(), Title: title, AuthorID: "anon_seed"}
	first := &Post{ID: uuid.NewString(), Content: "initial content for " + title, AuthorID: "anon_seed"}
	require.NoError(t, store.CreateThread(context.Background(), thread, first))
	time.Sleep(time.Millisecond)
	return thread
}

func TestMemStore_CreateThreadStoresFirstPost(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()
	thread := addThread(t, store, "First thread")

	got, err := store.GetThread(ctx, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, "First thread", got.Title)
	assert.Equal(t, got.CreatedAt, got.LastActivity)

	posts, err := store.GetPostsByThread(ctx, thread.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, thread.ID, posts[0].ThreadID)
}

func TestMemStore_GetThreadNotFound(t *testing.T) {
	store := NewMemStore()
	_, err := store.GetThread(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrThreadNotFound)
}

func TestMemStore_ListThreadsOrdersByActivity(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()
	t1 := addThread(t, store, "oldest")
	t2 := addThread(t, store, "middle")
	t3 := addThread(t, store, "newest")

	threads, err := store.ListThreads(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, threads, 3)
	assert.Equal(t, t3.ID, threads[0].ID)
	assert.Equal(t, t2.ID, threads[1].ID)
	assert.Equal(t, t1.ID, threads[2].ID)
}

func TestMemStore_AddReplyBumpsActivity(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()
	t1 := addThread(t, store, "first")
	t2 := addThread(t, store, "second")

	reply := &Post{ID: uuid.NewString(), ThreadID: t1.ID, Content: "a reply to the first thread", AuthorID: "anon_r"}
	require.NoError(t, store.AddReply(ctx, reply))

	threads, err := store.ListThreads(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, threads, 2)
	assert.Equal(t, t1.ID, threads[0].ID, "replied-to thread resurfaces first")
	assert.Equal(t, t2.ID, threads[1].ID)
	assert.Equal(t, reply.CreatedAt, threads[0].LastActivity)
}

func TestMemStore_AddReplyUnknownThread(t *testing.T) {
	store := NewMemStore()
	reply := &Post{ID: uuid.NewString(), ThreadID: uuid.NewString(), Content: "orphan", AuthorID: "anon_r"}
	assert.ErrorIs(t, store.AddReply(context.Background(), reply), ErrThreadNotFound)
}

func TestMemStore_PostsOrderedOldestFirst(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()
	thread := addThread(t, store, "ordering")

	var ids []string
	for i := 0; i < 3; i++ {
		reply := &Post{ID: uuid.NewString(), ThreadID: thread.ID, Content: "sequential reply content", AuthorID: "anon_r"}
		require.NoError(t, store.AddReply(ctx, reply))
		ids = append(ids, reply.ID)
		time.Sleep(time.Millisecond)
	}

	posts, err := store.GetPostsByThread(ctx, thread.ID)
	require.NoError(t, err)
	require.Len(t, posts, 4) // initial post + 3 replies
	assert.Equal(t, ids[0], posts[1].ID)
	assert.Equal(t, ids[1], posts[2].ID)
	assert.Equal(t, ids[2], posts[3].ID)
}

func TestMemStore_ListThreadsPagination(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		addThread(t, store, "thread")
	}

	count, err := store.CountThreads(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	first, err := store.ListThreads(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	last, err := store.ListThreads(ctx, 2, 4)
	require.NoError(t, err)
	assert.Len(t, last, 1)

	none, err := store.ListThreads(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}
