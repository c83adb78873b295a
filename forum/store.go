// forum/store.go
package forum

import (
	"context"
)

// Store is the forum's persistence contract. Implementations must keep two
// semantics intact: ListThreads orders by last activity descending, and
// CreateThread persists the thread and its first post together or not at
// all.
type Store interface {
	ListThreads(ctx context.Context, limit, offset int) ([]Thread, error)
	CountThreads(ctx context.Context) (int, error)
	GetThread(ctx context.Context, id string) (*Thread, error)
	GetPostsByThread(ctx context.Context, threadID string) ([]Post, error)
	CreateThread(ctx context.Context, thread *Thread, firstPost *Post) error
	AddReply(ctx context.Context, post *Post) error
}
