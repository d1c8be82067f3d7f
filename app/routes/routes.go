package routes

import (
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"folio/app/controllers"
	"folio/app/feed"
	"folio/app/metrics"
	"folio/app/middleware"
	"folio/app/services"
	"folio/logging"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps is everything the router needs.
type Deps struct {
	Site        feed.Site
	Templates   map[string]*template.Template
	Static      fs.FS
	Logger      logging.Logger
	PostService *services.PostService
	Contact     controllers.ContactSubmitter
	Metrics     *metrics.Collector
	Gatherer    prometheus.Gatherer
	FeedMaxAge  time.Duration
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(deps Deps) *mux.Router {
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	router := mux.NewRouter()

	// Apply global middleware. Recoverer runs innermost so a recovered panic
	// is still logged and counted as a 500.
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics(deps.Metrics))
	router.Use(middleware.Recoverer(logger))

	base := controllers.NewBase(deps.Site, deps.Templates, logger)
	pageController := controllers.NewPageController(base, deps.PostService)
	postController := controllers.NewPostController(base, deps.PostService)
	contactController := controllers.NewContactController(base, deps.Contact)
	feedController := controllers.NewFeedController(base, deps.PostService, deps.FeedMaxAge)

	router.NotFoundHandler = http.HandlerFunc(notFound)

	if deps.Static != nil {
		router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(deps.Static))))
	}
	if deps.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}
	router.HandleFunc("/healthz", healthz).Methods("GET")

	// Web routes
	router.HandleFunc("/", pageController.Home).Methods("GET")
	router.HandleFunc("/about", pageController.About).Methods("GET")
	router.HandleFunc("/blog", postController.Index).Methods("GET")
	router.HandleFunc("/blog/{path}", postController.Show).Methods("GET")
	router.HandleFunc("/search", postController.Search).Methods("GET")
	router.HandleFunc("/authors/{id}", postController.ByAuthor).Methods("GET")
	router.HandleFunc("/contact", contactController.New).Methods("GET")
	router.HandleFunc("/contact", contactController.Create).Methods("POST")
	router.HandleFunc("/rss.xml", feedController.RSS).Methods("GET")
	router.HandleFunc("/sitemap.xml", feedController.Sitemap).Methods("GET")

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	api.NotFoundHandler = http.HandlerFunc(notFound)

	api.HandleFunc("/home", pageController.Home).Methods("GET")
	api.HandleFunc("/authors", pageController.About).Methods("GET")
	api.HandleFunc("/authors/{id}", postController.ByAuthor).Methods("GET")
	api.HandleFunc("/posts", postController.Index).Methods("GET")
	api.HandleFunc("/posts/{path}", postController.Show).Methods("GET")
	api.HandleFunc("/search", postController.Search).Methods("GET")
	api.HandleFunc("/contact", contactController.Create).Methods("POST")

	return router
}

func notFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Not found"})
		return
	}
	http.NotFound(w, r)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
