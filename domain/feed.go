package domain

import (
	"context"
	"time"
)

const (
	// DefaultFeedLimit is the page size used when the caller doesn't ask
	// for one.
	DefaultFeedLimit = 10
	// MaxFeedLimit caps the page size a caller may request.
	MaxFeedLimit = 100
)

// Cursor marks where the next feed page starts. It is anchored to a
// concrete row's sort key (created_at, then id), not a numeric offset,
// so an in-progress pagination walk never skips or duplicates rows when
// newer tweets are inserted concurrently. The row a cursor points at is
// the first row of the page it opens.
type Cursor struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedFilter narrows and paginates a feed query.
//
// AuthorID restricts the feed to one author's tweets (a profile feed).
// OnlyFollowing restricts it to authors the viewer follows; without a
// viewer it is ignored and the unfiltered feed is returned instead of an
// error. ViewerID additionally drives the LikedByMe projection.
type FeedFilter struct {
	AuthorID      string
	OnlyFollowing bool
	ViewerID      string
	Limit         int
	Cursor        *Cursor
}

// FeedPage is one page of a feed walk. NextCursor is set iff more rows
// exist beyond this page; a nil NextCursor is the end of the feed.
type FeedPage struct {
	Tweets     []Tweet `json:"tweets"`
	NextCursor *Cursor `json:"next_cursor,omitempty"`
}

// FeedService reads ordered, filtered views over tweets.
type FeedService interface {
	ListFeed(ctx context.Context, filter FeedFilter) (*FeedPage, error)
}
