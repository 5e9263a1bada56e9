package crud

import (
	"context"
	"testing"

	"chirper/domain"
	"chirper/errs"
)

func TestCreateFollow(t *testing.T) {
	db := testDB(t)
	follower := seedUser(t, db, "follower")
	followed := seedUser(t, db, "followed")

	fs := NewFollowService(db)
	follow := domain.Follow{FollowerID: follower.ID, FollowedID: followed.ID}
	if err := fs.Create(context.Background(), &follow); err != nil {
		t.Fatalf("create: %v", err)
	}
	if follow.ID == "" {
		t.Fatal("created follow has no id")
	}
}

func TestCreateFollowValidations(t *testing.T) {
	db := testDB(t)
	follower := seedUser(t, db, "follower")
	followed := seedUser(t, db, "followed")
	seedFollow(t, db, follower, followed)

	fs := NewFollowService(db)
	ctx := context.Background()

	self := domain.Follow{FollowerID: follower.ID, FollowedID: follower.ID}
	if err := fs.Create(ctx, &self); errs.ErrorCode(err) != errs.EINVALID {
		t.Fatalf("self-follow: got %v, want EINVALID", err)
	}

	ghost := domain.Follow{FollowerID: follower.ID, FollowedID: "nope"}
	if err := fs.Create(ctx, &ghost); errs.ErrorCode(err) != errs.ENOTFOUND {
		t.Fatalf("unknown followed: got %v, want ENOTFOUND", err)
	}

	dup := domain.Follow{FollowerID: follower.ID, FollowedID: followed.ID}
	if err := fs.Create(ctx, &dup); errs.ErrorCode(err) != errs.EINVALID {
		t.Fatalf("duplicate follow: got %v, want EINVALID", err)
	}
}

func TestDeleteFollow(t *testing.T) {
	db := testDB(t)
	follower := seedUser(t, db, "follower")
	followed := seedUser(t, db, "followed")
	seedFollow(t, db, follower, followed)

	fs := NewFollowService(db)
	ctx := context.Background()

	follow := domain.Follow{FollowerID: follower.ID, FollowedID: followed.ID}
	if err := fs.Delete(ctx, &follow); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Unfollowing someone you don't follow is an error, not a crash.
	again := domain.Follow{FollowerID: follower.ID, FollowedID: followed.ID}
	if err := fs.Delete(ctx, &again); errs.ErrorCode(err) != errs.ENOTFOUND {
		t.Fatalf("got %v, want ENOTFOUND", err)
	}
}
