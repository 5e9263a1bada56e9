package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"chirper/domain"
)

// Server provides most of the http functionality of this app, namely routing,
// request handling, and middleware. It also performs authentication and
// authorization before handing things over to one of the crud services.
type Server struct {
	router *mux.Router
	us     domain.UserService
	ts     domain.TweetService
	fs     domain.FollowService
	ls     domain.LikeService
	feed   domain.FeedService
}

// NewServer returns a new instance of the server, registers all necessary
// routes and gives their handlers access to the app services passed in.
func NewServer(
	isProd bool,
	csrfAuthKey string,
	us domain.UserService,
	ts domain.TweetService,
	fs domain.FollowService,
	ls domain.LikeService,
	feed domain.FeedService,
) *Server {

	// Construct a new Server with a gorilla router and the services passed in.
	s := &Server{
		router: mux.NewRouter(),
		us:     us,
		ts:     ts,
		fs:     fs,
		ls:     ls,
		feed:   feed,
	}

	// Register routes of the auth system.
	s.registerAuthRoutes(s.router)

	// Register routes of the crud system.
	s.registerFeedRoutes(s.router)
	s.registerTweetRoutes(s.router)
	s.registerFollowRoutes(s.router)
	s.registerLikeRoutes(s.router)
	s.registerUserRoutes(s.router)

	// Set up middleware that needs to run on every request. Secure cookies
	// only work over https, so the CSRF middleware relaxes them in dev.
	csrfMw := csrf.Protect([]byte(csrfAuthKey), csrf.Secure(isProd), csrf.Path("/"))
	s.router.Use(logRequest, csrfMw, setContentTypeJSON, s.authUser)
	return s
}

// ServeHTTP makes the Server itself an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// The setContentTypeJSON middleware sets the content type to "application/json".
func setContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code a handler writes,
// so the logging middleware can report it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// The logRequest middleware logs method, path, status and duration
// of every request.
func logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// Run starts to listen and serve on the specified port.
func (s *Server) Run(port int) {
	addr := "localhost:" + strconv.Itoa(port)
	log.Info().Str("addr", addr).Msg("listening")
	if err := http.ListenAndServe(addr, s.router); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
