package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"chirper/domain"
	"chirper/errs"
)

// registerFollowRoutes is a helper for registering all Follow routes.
func (s *Server) registerFollowRoutes(r *mux.Router) {
	r.HandleFunc("/follow/{followed_id}", s.requireAuth(s.handleCreateFollow)).Methods("POST")
	r.HandleFunc("/unfollow/{followed_id}", s.requireAuth(s.handleDeleteFollow)).Methods("DELETE")
}

// handleCreateFollow handles the route "POST /follow/{followed_id}".
func (s *Server) handleCreateFollow(w http.ResponseWriter, r *http.Request) {
	follow := domain.Follow{
		FollowedID: mux.Vars(r)["followed_id"],
	}

	follower := s.getUserFromContext(r.Context())
	follow.FollowerID = follower.ID

	if err := s.fs.Create(r.Context(), &follow); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(&follow); err != nil {
		errs.LogError(r, err)
		return
	}
}

// handleDeleteFollow handles the route "DELETE /unfollow/{followed_id}".
func (s *Server) handleDeleteFollow(w http.ResponseWriter, r *http.Request) {
	follow := domain.Follow{
		FollowedID: mux.Vars(r)["followed_id"],
	}

	follower := s.getUserFromContext(r.Context())
	follow.FollowerID = follower.ID

	if err := s.fs.Delete(r.Context(), &follow); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
