package crud

import (
	"context"

	"gorm.io/gorm"

	"chirper/domain"
)

// FeedService reads pages of tweets, enriched with like counts and the
// viewer's own like status. It implements the domain.FeedService interface.
type FeedService struct {
	feedValidator
}

// feedValidator normalizes incoming feed filters before handing them
// to feedGorm. Feed reads have no failure-worthy input: a bad filter is
// degraded to a sane one, never rejected.
type feedValidator struct {
	feedGorm
}

// feedGorm runs feed queries against the database. It assumes the filter
// has been normalized.
type feedGorm struct {
	db *gorm.DB
}

// NewFeedService returns an instance of FeedService.
func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{
		feedValidator{
			feedGorm{
				db: db,
			},
		},
	}
}

// Ensure the FeedService struct properly implements the domain.FeedService interface.
// If it does not, then this expression becomes invalid and won't compile.
var _ domain.FeedService = &FeedService{}

// ListFeed normalizes the filter and runs the feed query.
func (fv *feedValidator) ListFeed(ctx context.Context, filter domain.FeedFilter) (*domain.FeedPage, error) {
	// An anonymous viewer asking for the following-only feed gets the
	// unfiltered feed instead of an error.
	if filter.OnlyFollowing && filter.ViewerID == "" {
		filter.OnlyFollowing = false
	}
	if filter.Limit <= 0 {
		filter.Limit = domain.DefaultFeedLimit
	}
	if filter.Limit > domain.MaxFeedLimit {
		filter.Limit = domain.MaxFeedLimit
	}
	return fv.feedGorm.ListFeed(ctx, filter)
}

// ListFeed returns one page of the feed described by the filter.
//
// Tweets are ordered by created_at descending, ties broken by id
// descending. The query fetches limit+1 rows starting at the cursor row
// (inclusive); if the extra row comes back it is popped off the page and
// its sort key becomes the next cursor, so it will head the next page.
// No extra row means the feed is exhausted and NextCursor stays nil.
func (fg *feedGorm) ListFeed(ctx context.Context, filter domain.FeedFilter) (*domain.FeedPage, error) {
	q := fg.db.WithContext(ctx).
		Model(&domain.Tweet{}).
		Preload("User").
		Order("created_at DESC, id DESC").
		Limit(filter.Limit + 1)

	if filter.AuthorID != "" {
		q = q.Where("user_id = ?", filter.AuthorID)
	} else if filter.OnlyFollowing {
		followed := fg.db.Model(&domain.Follow{}).
			Select("followed_id").
			Where("follower_id = ?", filter.ViewerID)
		q = q.Where("user_id IN (?)", followed)
	}

	if c := filter.Cursor; c != nil {
		// Rows at or past the cursor in descending sort order.
		q = q.Where("created_at < ? OR (created_at = ? AND id <= ?)",
			c.CreatedAt, c.CreatedAt, c.ID)
	}

	var tweets []domain.Tweet
	if err := q.Find(&tweets).Error; err != nil {
		return nil, err
	}

	var nextCursor *domain.Cursor
	if len(tweets) > filter.Limit {
		extra := tweets[filter.Limit]
		tweets = tweets[:filter.Limit]
		nextCursor = &domain.Cursor{
			ID:        extra.ID,
			CreatedAt: extra.CreatedAt,
		}
	}

	if err := fg.attachLikes(ctx, tweets, filter.ViewerID); err != nil {
		return nil, err
	}

	return &domain.FeedPage{
		Tweets:     tweets,
		NextCursor: nextCursor,
	}, nil
}

// attachLikes fills in the derived LikeCount and LikedByMe fields for a
// page of tweets: one grouped count query for the whole page, plus one
// lookup of the viewer's likes if there is a viewer.
func (fg *feedGorm) attachLikes(ctx context.Context, tweets []domain.Tweet, viewerID string) error {
	if len(tweets) == 0 {
		return nil
	}
	ids := make([]string, len(tweets))
	for i := range tweets {
		ids[i] = tweets[i].ID
	}

	var counts []struct {
		TweetID string
		Total   int
	}
	err := fg.db.WithContext(ctx).
		Model(&domain.Like{}).
		Select("tweet_id, count(*) as total").
		Where("tweet_id IN ?", ids).
		Group("tweet_id").
		Scan(&counts).Error
	if err != nil {
		return err
	}
	countByID := make(map[string]int, len(counts))
	for _, c := range counts {
		countByID[c.TweetID] = c.Total
	}

	likedByID := make(map[string]bool)
	if viewerID != "" {
		var likedIDs []string
		err := fg.db.WithContext(ctx).
			Model(&domain.Like{}).
			Where("user_id = ? AND tweet_id IN ?", viewerID, ids).
			Pluck("tweet_id", &likedIDs).Error
		if err != nil {
			return err
		}
		for _, id := range likedIDs {
			likedByID[id] = true
		}
	}

	for i := range tweets {
		tweets[i].LikeCount = countByID[tweets[i].ID]
		tweets[i].LikedByMe = likedByID[tweets[i].ID]
	}
	return nil
}
