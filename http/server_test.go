package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"chirper/auth"
	"chirper/domain"
	"chirper/errs"
)

// ----- Stub services -----

type stubUserService struct {
	user *domain.User
}

func (s *stubUserService) ByID(ctx context.Context, id string) (*domain.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, errs.Errorf(errs.ENOTFOUND, "The user does not exist.")
}

func (s *stubUserService) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, errs.Errorf(errs.ENOTFOUND, "The email address does not exist in our database.")
}

func (s *stubUserService) ByRemember(ctx context.Context, token string) (*domain.User, error) {
	if s.user != nil && s.user.Remember == token {
		return s.user, nil
	}
	return nil, errs.Errorf(errs.ENOTFOUND, "The remember token does not exist in our database.")
}

func (s *stubUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return s.ByEmail(ctx, email)
}

func (s *stubUserService) MakeRememberToken() (string, error) { return "fresh-token", nil }

func (s *stubUserService) Create(ctx context.Context, user *domain.User) error { return nil }

func (s *stubUserService) Update(ctx context.Context, user *domain.User) error { return nil }

type stubTweetService struct {
	created *domain.Tweet
	byID    *domain.Tweet
}

func (s *stubTweetService) ByID(ctx context.Context, id string) (*domain.Tweet, error) {
	if s.byID != nil && s.byID.ID == id {
		return s.byID, nil
	}
	return nil, errs.Errorf(errs.ENOTFOUND, "The tweet does not exist.")
}

func (s *stubTweetService) CreateTweet(ctx context.Context, tweet *domain.Tweet) error {
	tweet.ID = "tweet-1"
	s.created = tweet
	return nil
}

func (s *stubTweetService) DeleteTweet(ctx context.Context, tweet *domain.Tweet) error { return nil }

type stubFollowService struct{}

func (s *stubFollowService) Create(ctx context.Context, follow *domain.Follow) error { return nil }
func (s *stubFollowService) Delete(ctx context.Context, follow *domain.Follow) error { return nil }

type stubLikeService struct {
	added    bool
	err      error
	viewerID string
	tweetID  string
	toggled  int
}

func (s *stubLikeService) Toggle(ctx context.Context, viewerID, tweetID string) (bool, error) {
	s.viewerID, s.tweetID = viewerID, tweetID
	s.toggled++
	return s.added, s.err
}

type stubFeedService struct {
	filter domain.FeedFilter
	page   *domain.FeedPage
	err    error
}

func (s *stubFeedService) ListFeed(ctx context.Context, filter domain.FeedFilter) (*domain.FeedPage, error) {
	s.filter = filter
	if s.page == nil {
		return &domain.FeedPage{Tweets: []domain.Tweet{}}, s.err
	}
	return s.page, s.err
}

// testServer builds a Server over the given stubs, filling in defaults
// for the ones a test doesn't care about.
func testServer(us domain.UserService, ts domain.TweetService, ls domain.LikeService, feed domain.FeedService) *Server {
	if us == nil {
		us = &stubUserService{}
	}
	if ts == nil {
		ts = &stubTweetService{}
	}
	if ls == nil {
		ls = &stubLikeService{}
	}
	if feed == nil {
		feed = &stubFeedService{}
	}
	return NewServer(false, "32-byte-long-auth-key-for-tests!", us, ts, &stubFollowService{}, ls, feed)
}

// asUser attaches an authed user to the request context, the way the
// authUser middleware would have.
func asUser(r *http.Request, user *domain.User) *http.Request {
	return r.WithContext(auth.SetUser(r.Context(), user))
}

// muxRequest builds a request with mux path variables already injected,
// so handlers can be exercised without the full router stack.
func muxRequest(method, target string, vars map[string]string) *http.Request {
	return mux.SetURLVars(httptest.NewRequest(method, target, nil), vars)
}

// ----- Middleware tests -----

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	s := testServer(nil, nil, nil, nil)
	ran := false
	handler := s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("POST", "/tweet", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if ran {
		t.Fatal("handler ran for anonymous request")
	}
}

func TestRequireAuthPassesAuthedUser(t *testing.T) {
	s := testServer(nil, nil, nil, nil)
	ran := false
	handler := s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	})

	w := httptest.NewRecorder()
	r := asUser(httptest.NewRequest("POST", "/tweet", nil), &domain.User{ID: "u1"})
	handler(w, r)

	if !ran {
		t.Fatal("handler did not run for authed request")
	}
}

func TestAuthUserResolvesCookie(t *testing.T) {
	user := &domain.User{ID: "u1", Remember: "valid-token"}
	s := testServer(&stubUserService{user: user}, nil, nil, nil)

	var got *domain.User
	probe := s.authUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = auth.GetUser(r.Context())
	}))

	r := httptest.NewRequest("GET", "/feed", nil)
	r.AddCookie(&http.Cookie{Name: "remember_token", Value: "valid-token"})
	probe.ServeHTTP(httptest.NewRecorder(), r)

	if got == nil || got.ID != "u1" {
		t.Fatalf("context user = %+v, want u1", got)
	}

	// A bad cookie just means anonymous, not an error.
	got = nil
	r = httptest.NewRequest("GET", "/feed", nil)
	r.AddCookie(&http.Cookie{Name: "remember_token", Value: "bogus"})
	probe.ServeHTTP(httptest.NewRecorder(), r)
	if got != nil {
		t.Fatalf("bogus cookie resolved to user %+v", got)
	}
}
