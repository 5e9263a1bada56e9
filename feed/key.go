package feed

// Key identifies one cached feed view by its filter parameters. Keys are
// structural: two views asking the same query share one cache slot.
type Key struct {
	OnlyFollowing bool
	AuthorID      string
}

// GlobalKey is the unfiltered feed.
func GlobalKey() Key {
	return Key{}
}

// FollowingKey is the feed restricted to authors the viewer follows.
func FollowingKey() Key {
	return Key{OnlyFollowing: true}
}

// ProfileKey is the feed restricted to one author's tweets.
func ProfileKey(authorID string) Key {
	return Key{AuthorID: authorID}
}
