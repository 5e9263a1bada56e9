package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"chirper/domain"
	"chirper/errs"
)

// registerTweetRoutes is a helper for registering all Tweet routes.
func (s *Server) registerTweetRoutes(r *mux.Router) {
	r.HandleFunc("/tweet", s.requireAuth(s.handleCreateTweet)).Methods("POST")
	r.HandleFunc("/tweet/{id}", s.requireAuth(s.handleDeleteTweet)).Methods("DELETE")
}

// handleCreateTweet handles the route "POST /tweet".
// It reads the tweet content from the json body and creates a new Tweet
// record authored by the authed user.
func (s *Server) handleCreateTweet(w http.ResponseWriter, r *http.Request) {
	var tweet domain.Tweet
	if err := json.NewDecoder(r.Body).Decode(&tweet); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid json body."))
		return
	}

	user := s.getUserFromContext(r.Context())
	tweet.UserID = user.ID

	if err := s.ts.CreateTweet(r.Context(), &tweet); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(&tweet); err != nil {
		errs.LogError(r, err)
		return
	}
}

// handleDeleteTweet handles the route "DELETE /tweet/{id}".
// It checks ownership before deleting, so users can only delete their own tweets.
func (s *Server) handleDeleteTweet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	tweet, err := s.ts.ByID(r.Context(), id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	user := s.getUserFromContext(r.Context())
	if tweet.UserID != user.ID {
		errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "You are not allowed to delete this tweet."))
		return
	}

	if err := s.ts.DeleteTweet(r.Context(), tweet); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
