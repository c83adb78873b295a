// forum/models.go
package forum

import (
	"time"
)

// Thread is a top-level discussion. LastActivity is the forum's only notion
// of "recent": replies bump it, nothing else ever mutates a thread.
type Thread struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	AuthorID     string    `json:"authorId"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}

// Post is a message attached to a thread, immutable once created.
type Post struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"threadId"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
}

// ThreadView decorates a thread with the display name derived from its
// author id, so server- and client-rendered views show the same name.
type ThreadView struct {
	Thread
	AuthorPseudonym string `json:"authorPseudonym"`
}

// PostView is a post plus its author's display name.
type PostView struct {
	Post
	AuthorPseudonym string `json:"authorPseudonym"`
}

// ThreadDetail is one thread with all its replies, oldest first.
type ThreadDetail struct {
	ThreadView
	Replies    []PostView `json:"replies"`
	ReplyCount int        `json:"replyCount"`
}

// ThreadPage is one page of the listing, most recently active first.
type ThreadPage struct {
	Threads    []ThreadView `json:"threads"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
}
