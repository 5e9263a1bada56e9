package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"chirper/errs"
)

// registerUserRoutes is a helper for registering all User routes.
func (s *Server) registerUserRoutes(r *mux.Router) {
	// Get the public profile data of a specific user. Their tweets come
	// from "GET /feed?user_id=...".
	r.HandleFunc("/profile/{user_id}", s.handleGetProfile).Methods("GET")
}

// handleGetProfile handles the route "GET /profile/{user_id}".
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userId := mux.Vars(r)["user_id"]

	user, err := s.us.ByID(r.Context(), userId)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(user); err != nil {
		errs.LogError(r, err)
		return
	}
}
