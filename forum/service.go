// forum/service.go
package forum

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultPageSize is the thread-listing page size when the caller gives
	// none.
	DefaultPageSize = 10
	maxPageSize     = 100

	titleMinLen      = 3
	titleMaxLen      = 200
	threadBodyMinLen = 10
	threadBodyMaxLen = 5000
	replyMinLen      = 10
	replyMaxLen      = 2000
)

// errStoreFailure is the only message a store problem ever surfaces as.
var errStoreFailure = errors.New("community service is temporarily unavailable")

// Service mediates every thread and post operation: it validates and
// screens input, relays to the Store, and decorates results with display
// names. It keeps no state of its own; the store owns all records.
type Service struct {
	store    Store
	filter   *ContentFilter
	log      *zap.Logger
	pageSize int
}

func NewService(store Store, filter *ContentFilter, log *zap.Logger, pageSize int) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Service{store: store, filter: filter, log: log, pageSize: pageSize}
}

// storeFailure logs the underlying error and returns the generic one;
// store internals stay out of user-visible messages.
func (s *Service) storeFailure(op string, err error) error {
	s.log.Error("forum store failure", zap.String("op", op), zap.Error(err))
	return errStoreFailure
}

// ListThreads returns one page of threads, most recently active first.
// Non-positive paging values are clamped, never rejected. An empty forum
// reports totalPages 1 so a pager always has a page to stand on.
func (s *Service) ListThreads(ctx context.Context, page, limit int) (*ThreadPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = s.pageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	threads, err := s.store.ListThreads(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, s.storeFailure("list threads", err)
	}
	total, err := s.store.CountThreads(ctx)
	if err != nil {
		return nil, s.storeFailure("count threads", err)
	}
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	views := make([]ThreadView, 0, len(threads))
	for _, t := range threads {
		views = append(views, ThreadView{Thread: t, AuthorPseudonym: GeneratePseudonym(t.AuthorID)})
	}
	return &ThreadPage{Threads: views, Page: page, TotalPages: totalPages}, nil
}

// GetThread returns one thread with its replies ordered oldest first.
func (s *Service) GetThread(ctx context.Context, threadID string) (*ThreadDetail, error) {
	if strings.TrimSpace(threadID) == "" {
		return nil, validationf("threadId is required")
	}
	thread, err := s.store.GetThread(ctx, threadID)
	if errors.Is(err, ErrThreadNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, s.storeFailure("get thread", err)
	}
	posts, err := s.store.GetPostsByThread(ctx, threadID)
	if err != nil {
		return nil, s.storeFailure("get posts", err)
	}

	replies := make([]PostView, 0, len(posts))
	for _, p := range posts {
		replies = append(replies, PostView{Post: p, AuthorPseudonym: GeneratePseudonym(p.AuthorID)})
	}
	return &ThreadDetail{
		ThreadView: ThreadView{Thread: *thread, AuthorPseudonym: GeneratePseudonym(thread.AuthorID)},
		Replies:    replies,
		ReplyCount: len(replies),
	}, nil
}

// CreateThread validates and stores a new thread together with its initial
// post; the pair is atomic at the store.
func (s *Service) CreateThread(ctx context.Context, title, content, authorID string) (*Thread, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)

	if err := s.validateField("title", title, titleMinLen, titleMaxLen); err != nil {
		return nil, err
	}
	if err := s.validateField("content", content, threadBodyMinLen, threadBodyMaxLen); err != nil {
		return nil, err
	}
	if err := requireAuthor(authorID); err != nil {
		return nil, err
	}

	thread := &Thread{ID: uuid.NewString(), Title: title, AuthorID: authorID}
	firstPost := &Post{ID: uuid.NewString(), Content: content, AuthorID: authorID}
	if err := s.store.CreateThread(ctx, thread, firstPost); err != nil {
		return nil, s.storeFailure("create thread", err)
	}
	return thread, nil
}

// CreateReply validates and stores a reply, bumping the parent thread's
// last activity.
func (s *Service) CreateReply(ctx context.Context, threadID, content, authorID string) (*Post, error) {
	content = strings.TrimSpace(content)

	if strings.TrimSpace(threadID) == "" {
		return nil, validationf("threadId is required")
	}
	if err := s.validateField("content", content, replyMinLen, replyMaxLen); err != nil {
		return nil, err
	}
	if err := requireAuthor(authorID); err != nil {
		return nil, err
	}

	post := &Post{ID: uuid.NewString(), ThreadID: threadID, Content: content, AuthorID: authorID}
	if err := s.store.AddReply(ctx, post); err != nil {
		if errors.Is(err, ErrThreadNotFound) {
			return nil, err
		}
		return nil, s.storeFailure("create reply", err)
	}
	return post, nil
}

// validateField enforces rune-counted length bounds, then the PII screen.
// The rejection names the field and category only, never the match.
func (s *Service) validateField(name, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n < min {
		return validationf("%s must be at least %d characters", name, min)
	}
	if n > max {
		return validationf("%s must be at most %d characters", name, max)
	}
	if s.filter != nil && s.filter.Flags(value) {
		return validationf("%s appears to contain personal contact details", name)
	}
	return nil
}

func requireAuthor(authorID string) error {
	if strings.TrimSpace(authorID) == "" {
		return validationf("authorId is required")
	}
	return nil
}
