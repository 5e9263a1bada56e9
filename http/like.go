package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"chirper/errs"
)

// registerLikeRoutes is a helper for registering all Like routes.
func (s *Server) registerLikeRoutes(r *mux.Router) {
	// Flip the authed user's like state on a tweet.
	r.HandleFunc("/like/toggle", s.requireAuth(s.handleToggleLike)).Methods("POST")
}

// handleToggleLike handles the route "POST /like/toggle".
// The body carries the tweet id; the viewer is implied by the session.
// There is no separate "already liked" error, the current state decides
// whether the call likes or unlikes.
func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid json body."))
		return
	}
	if body.ID == "" {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Tweet id is required."))
		return
	}

	user := s.getUserFromContext(r.Context())

	added, err := s.ls.Toggle(r.Context(), user.ID, body.ID)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	response := struct {
		AddedLike bool `json:"added_like"`
	}{AddedLike: added}
	if err := json.NewEncoder(w).Encode(&response); err != nil {
		errs.LogError(r, err)
		return
	}
}
