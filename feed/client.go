// Package feed is the client half of the app: it keeps one cache slot of
// chained pages per active feed query, loads further pages on demand, and
// keeps every cached view of a tweet consistent when the viewer toggles a
// like, without refetching anything.
package feed

import (
	"context"
	"errors"
	"sync"

	"chirper/domain"
)

// ErrToggleInFlight is returned when a like toggle for a tweet is invoked
// while an earlier toggle for the same tweet hasn't come back yet. The
// guard is per tweet, toggles on other tweets proceed normally.
var ErrToggleInFlight = errors.New("feed: like toggle already in flight for this tweet")

// Service is what the client needs from the server: paged feed reads and
// the like toggle. The viewer is implied by the session on the other side,
// so it doesn't appear here.
type Service interface {
	ListFeed(ctx context.Context, filter domain.FeedFilter) (*domain.FeedPage, error)
	ToggleLike(ctx context.Context, tweetID string) (addedLike bool, err error)
}

// View is the render contract for one feed: everything a list component
// needs to draw itself.
type View struct {
	Tweets  []domain.Tweet
	HasMore bool
	Loading bool
	Err     error
	// Empty reports a successfully loaded feed with zero tweets
	// ("No Tweets"), as opposed to a feed that was never loaded.
	Empty bool
}

// slot is the cached state of one feed query.
type slot struct {
	pages   []*domain.FeedPage
	hasMore bool
	loading bool
	loaded  bool
	err     error
	// reqSeq numbers the requests issued for this slot. A response only
	// applies while its number is still the latest, so a slow page one
	// can't overwrite a reload that was issued after it.
	reqSeq uint64
}

// Client caches feed pages per query key and applies like toggles across
// every populated slot.
type Client struct {
	mu       sync.Mutex
	svc      Service
	pageSize int
	slots    map[Key]*slot
	inflight map[string]bool
}

// NewClient returns a Client fetching pages of the given size through svc.
// A pageSize of zero leaves the page size to the server.
func NewClient(svc Service, pageSize int) *Client {
	return &Client{
		svc:      svc,
		pageSize: pageSize,
		slots:    make(map[Key]*slot),
		inflight: make(map[string]bool),
	}
}

// LoadInitial fetches page one for the given feed, replacing whatever the
// slot held before. Errors are also recorded on the slot so Snapshot can
// render them.
func (c *Client) LoadInitial(ctx context.Context, key Key) error {
	c.mu.Lock()
	sl := c.slot(key)
	sl.reqSeq++
	seq := sl.reqSeq
	sl.loading = true
	sl.err = nil
	c.mu.Unlock()

	page, err := c.svc.ListFeed(ctx, c.filter(key, nil))

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != sl.reqSeq {
		// A newer request for this slot supersedes this response.
		return nil
	}
	sl.loading = false
	if err != nil {
		sl.err = err
		return err
	}
	sl.pages = []*domain.FeedPage{page}
	sl.loaded = true
	sl.hasMore = page.NextCursor != nil
	return nil
}

// LoadMore fetches the next page for the given feed and appends it. It is
// a no-op when the feed was never loaded, is exhausted, or a fetch for it
// is already running, so the caller can fire it on every near-bottom
// scroll event without bookkeeping.
func (c *Client) LoadMore(ctx context.Context, key Key) error {
	c.mu.Lock()
	sl, ok := c.slots[key]
	if !ok || !sl.loaded || !sl.hasMore || sl.loading {
		c.mu.Unlock()
		return nil
	}
	cursor := sl.pages[len(sl.pages)-1].NextCursor
	sl.reqSeq++
	seq := sl.reqSeq
	sl.loading = true
	sl.err = nil
	c.mu.Unlock()

	page, err := c.svc.ListFeed(ctx, c.filter(key, cursor))

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != sl.reqSeq {
		return nil
	}
	sl.loading = false
	if err != nil {
		sl.err = err
		return err
	}
	sl.pages = append(sl.pages, page)
	sl.hasMore = page.NextCursor != nil
	return nil
}

// Snapshot returns the current render state of a feed. Unloaded feeds
// come back as a zero View, not as Empty.
func (c *Client) Snapshot(key Key) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	sl, ok := c.slots[key]
	if !ok {
		return View{}
	}
	var view View
	for _, page := range sl.pages {
		view.Tweets = append(view.Tweets, page.Tweets...)
	}
	view.HasMore = sl.hasMore
	view.Loading = sl.loading
	view.Err = sl.err
	view.Empty = sl.loaded && len(view.Tweets) == 0
	return view
}

// ToggleLike flips the viewer's like on a tweet and, once the server
// confirms, applies the result to every cached view that could contain
// the tweet: the global feed, the following feed, and the author's
// profile feed. Slots that were never populated stay untouched. The cache
// only mutates after the confirmed response, there's no optimistic write.
func (c *Client) ToggleLike(ctx context.Context, tweetID, authorID string) (bool, error) {
	c.mu.Lock()
	if c.inflight[tweetID] {
		c.mu.Unlock()
		return false, ErrToggleInFlight
	}
	c.inflight[tweetID] = true
	c.mu.Unlock()

	added, err := c.svc.ToggleLike(ctx, tweetID)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, tweetID)
	if err != nil {
		return false, err
	}
	for _, key := range []Key{GlobalKey(), FollowingKey(), ProfileKey(authorID)} {
		c.applyToggle(key, tweetID, added)
	}
	return added, nil
}

// ToggleInFlight reports whether a toggle for the given tweet is pending.
// Renderers use it to disable the like button for that tweet.
func (c *Client) ToggleInFlight(tweetID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight[tweetID]
}

// applyToggle adjusts the one cached copy of the tweet in the given slot,
// if both the slot and the tweet are present.
func (c *Client) applyToggle(key Key, tweetID string, added bool) {
	sl, ok := c.slots[key]
	if !ok {
		return
	}
	for _, page := range sl.pages {
		for i := range page.Tweets {
			if page.Tweets[i].ID != tweetID {
				continue
			}
			if added {
				page.Tweets[i].LikeCount++
			} else {
				page.Tweets[i].LikeCount--
			}
			page.Tweets[i].LikedByMe = added
			return
		}
	}
}

// slot returns the cache slot for a key, creating it if needed.
// The caller must hold the mutex.
func (c *Client) slot(key Key) *slot {
	sl, ok := c.slots[key]
	if !ok {
		sl = &slot{}
		c.slots[key] = sl
	}
	return sl
}

// filter translates a cache key and cursor into the wire-level feed filter.
func (c *Client) filter(key Key, cursor *domain.Cursor) domain.FeedFilter {
	return domain.FeedFilter{
		AuthorID:      key.AuthorID,
		OnlyFollowing: key.OnlyFollowing,
		Limit:         c.pageSize,
		Cursor:        cursor,
	}
}
