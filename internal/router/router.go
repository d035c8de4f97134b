package router

import (
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/talkboard/talkboard/internal/middleware"
	"github.com/talkboard/talkboard/internal/middleware/metrics"
	"github.com/talkboard/talkboard/internal/setup"
)

// New creates and configures the API router with all the routes.
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	r.Use(handlers.CompressHandler)
	r.Use(handlers.CORS(
		handlers.AllowedMethods([]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	))
	r.Use(mw.RequestID)
	r.Use(metrics.Middleware)

	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/health", deps.Handler.Health).Methods("GET")

	h := deps.Handler
	authMw := deps.AuthMiddleware

	v1 := r.PathPrefix("/v1").Subrouter()

	// Read paths: identity optional, it only widens visibility.
	read := v1.NewRoute().Subrouter()
	read.Use(authMw.OptionalAuth())
	read.HandleFunc("/threads", h.ListThreads).Methods("GET")
	read.HandleFunc("/threads/search", h.SearchThreads).Methods("GET")
	read.HandleFunc("/threads/{thread:[0-9]+}", h.GetThread).Methods("GET")

	// Mutations require an acting identity.
	write := v1.NewRoute().Subrouter()
	write.Use(authMw.NeedAuth())
	write.HandleFunc("/threads", h.CreateThread).Methods("POST")
	write.HandleFunc("/threads/{thread:[0-9]+}", h.UpdateThread).Methods("PATCH")
	write.HandleFunc("/threads/{thread:[0-9]+}/replies", h.CreateReply).Methods("POST")

	// Admin-only maintenance and destruction.
	admin := v1.PathPrefix("/admin").Subrouter()
	admin.Use(authMw.AdminOnly())
	admin.HandleFunc("/threads/{thread:[0-9]+}", h.DeleteThread).Methods("DELETE")
	admin.HandleFunc("/threads/{thread:[0-9]+}/repair", h.RepairThread).Methods("POST")

	return r
}
