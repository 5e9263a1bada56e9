package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"chirper/domain"
	"chirper/errs"
)

// registerFeedRoutes is a helper for registering all feed routes.
func (s *Server) registerFeedRoutes(r *mux.Router) {
	// The feed is public. A known viewer only changes what liked_by_me
	// says and makes only_following meaningful.
	r.HandleFunc("/feed", s.handleFeed).Methods("GET")
}

// handleFeed handles the route "GET /feed".
//
// Query parameters: user_id (profile feed), only_following, limit, and the
// pagination cursor split into cursor_id and cursor_created_at (RFC 3339).
// The cursor parameters must come in a pair; the first page sends neither.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.FeedFilter{
		AuthorID:      q.Get("user_id"),
		OnlyFollowing: q.Get("only_following") == "true",
	}

	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid limit."))
			return
		}
		filter.Limit = limit
	}

	cursorID, cursorCreatedAt := q.Get("cursor_id"), q.Get("cursor_created_at")
	if (cursorID == "") != (cursorCreatedAt == "") {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Cursor requires both cursor_id and cursor_created_at."))
		return
	}
	if cursorID != "" {
		createdAt, err := time.Parse(time.RFC3339Nano, cursorCreatedAt)
		if err != nil {
			errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid cursor_created_at, want RFC 3339."))
			return
		}
		filter.Cursor = &domain.Cursor{
			ID:        cursorID,
			CreatedAt: createdAt,
		}
	}

	if user := s.getUserFromContext(r.Context()); user != nil {
		filter.ViewerID = user.ID
	}

	page, err := s.feed.ListFeed(r.Context(), filter)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(page); err != nil {
		errs.LogError(r, err)
		return
	}
}
