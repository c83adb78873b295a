// forum/db.go
package forum

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS forum_threads (
    id UUID PRIMARY KEY,
    title TEXT NOT NULL,
    author_id TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    last_activity TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS forum_posts (
    id UUID PRIMARY KEY,
    thread_id UUID NOT NULL,
    content TEXT NOT NULL,
    author_id TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CONSTRAINT fk_thread
        FOREIGN KEY(thread_id)
        REFERENCES forum_threads(id)
        ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_forum_threads_on_last_activity ON forum_threads(last_activity DESC);
CREATE INDEX IF NOT EXISTS idx_forum_posts_on_thread_id ON forum_posts(thread_id);
`

// Database implements Store on PostgreSQL.
type Database struct {
	pool *pgxpool.Pool
}

func NewDatabase(connectionString string) (*Database, error) {
	pool, err := pgxpool.New(context.Background(), connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Database{pool: pool}, nil
}

func (d *Database) CreateTables() error {
	_, err := d.pool.Exec(context.Background(), schema)
	return err
}

func (d *Database) Close() {
	d.pool.Close()
}

// --- Thread Functions ---

func (d *Database) ListThreads(ctx context.Context, limit, offset int) ([]Thread, error) {
	query := `SELECT id, title, author_id, created_at, last_activity FROM forum_threads
              ORDER BY last_activity DESC
              LIMIT $1 OFFSET $2`
	rows, err := d.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var threads []Thread
	for rows.Next() {
		var t Thread
		if err := rows.Scan(&t.ID, &t.Title, &t.AuthorID, &t.CreatedAt, &t.LastActivity); err != nil {
			return nil, err
		}
		threads = append(threads, t)
	}
	return threads, rows.Err()
}

func (d *Database) CountThreads(ctx context.Context) (int, error) {
	var count int
	err := d.pool.QueryRow(ctx, "SELECT COUNT(*) FROM forum_threads").Scan(&count)
	return count, err
}

func (d *Database) GetThread(ctx context.Context, id string) (*Thread, error) {
	var t Thread
	query := `SELECT id, title, author_id, created_at, last_activity FROM forum_threads WHERE id = $1`
	err := d.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.Title, &t.AuthorID, &t.CreatedAt, &t.LastActivity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrThreadNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateThread inserts the thread and its first post in one transaction so
// a thread can never exist with zero posts.
func (d *Database) CreateThread(ctx context.Context, thread *Thread, firstPost *Post) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO forum_threads (id, title, author_id) VALUES ($1, $2, $3)
              RETURNING created_at, last_activity`
	if err := tx.QueryRow(ctx, query, thread.ID, thread.Title, thread.AuthorID).Scan(&thread.CreatedAt, &thread.LastActivity); err != nil {
		return err
	}

	firstPost.ThreadID = thread.ID
	query = `INSERT INTO forum_posts (id, thread_id, content, author_id) VALUES ($1, $2, $3, $4)
             RETURNING created_at`
	if err := tx.QueryRow(ctx, query, firstPost.ID, firstPost.ThreadID, firstPost.Content, firstPost.AuthorID).Scan(&firstPost.CreatedAt); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// --- Post Functions ---

func (d *Database) GetPostsByThread(ctx context.Context, threadID string) ([]Post, error) {
	query := `SELECT id, thread_id, content, author_id, created_at FROM forum_posts
              WHERE thread_id = $1
              ORDER BY created_at ASC`
	rows, err := d.pool.Query(ctx, query, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var posts []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.ThreadID, &p.Content, &p.AuthorID, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// AddReply inserts the post and bumps the parent thread's last_activity to
// the post's own timestamp, both in one transaction.
func (d *Database) AddReply(ctx context.Context, post *Post) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM forum_threads WHERE id = $1)", post.ThreadID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrThreadNotFound
	}

	query := `INSERT INTO forum_posts (id, thread_id, content, author_id) VALUES ($1, $2, $3, $4)
              RETURNING created_at`
	if err := tx.QueryRow(ctx, query, post.ID, post.ThreadID, post.Content, post.AuthorID).Scan(&post.CreatedAt); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "UPDATE forum_threads SET last_activity = $1 WHERE id = $2", post.CreatedAt, post.ThreadID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
