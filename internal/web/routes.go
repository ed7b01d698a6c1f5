package web

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eventlens/eventlens/internal/web/handlers"
	"github.com/eventlens/eventlens/internal/web/middleware"
	"github.com/eventlens/eventlens/internal/web/static"
)

func (s *Server) setupRoutes() {
	// Create handlers
	eventsHandler := handlers.NewEventsHandler(s.deps.Events)
	photosHandler := handlers.NewPhotosHandler(s.deps.Photos, s.deps.Events, s.deps.Media)
	searchHandler := handlers.NewSearchHandler(s.deps.Faces, s.deps.Searches, s.deps.Media, s.deps.Extractor)
	statsHandler := handlers.NewStatsHandler(s.deps.Events, s.deps.Photos, s.deps.Faces, s.deps.Searches)
	uploadHandler := handlers.NewUploadHandler(s.deps.Photos, s.deps.Events, s.deps.Media, statsHandler.InvalidateCache)

	// Health check
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Attendee-facing endpoints
		r.Get("/events", eventsHandler.List)
		r.Get("/events/{uid}", eventsHandler.Get)
		r.Get("/events/{uid}/photos", photosHandler.ListByEvent)
		r.Get("/photos/{uid}", photosHandler.Get)
		r.Post("/search", searchHandler.Search)
		r.Get("/stats", statsHandler.Get)

		// Photographer endpoints, gated by the admin token
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(s.deps.AdminToken))
			r.Post("/events", eventsHandler.Create)
			r.Post("/upload", uploadHandler.Upload)
		})
	})

	// Serve static files for frontend (SPA)
	s.router.Get("/*", s.serveSPA)
}

// serveSPA serves the single-page application
func (s *Server) serveSPA(w http.ResponseWriter, r *http.Request) {
	// Check if we have embedded frontend assets
	if static.Available() {
		// Try to serve the requested file
		fs := static.FileSystem()
		path := r.URL.Path
		if path == "/" {
			path = "/index.html"
		}

		// Try to open the file
		f, err := fs.Open(path)
		if err == nil {
			defer f.Close()

			// Get file info for content type detection
			stat, err := f.Stat()
			if err == nil && !stat.IsDir() {
				// Set content type based on extension
				contentType := "application/octet-stream"
				switch {
				case strings.HasSuffix(path, ".html"):
					contentType = "text/html; charset=utf-8"
				case strings.HasSuffix(path, ".css"):
					contentType = "text/css; charset=utf-8"
				case strings.HasSuffix(path, ".js"):
					contentType = "application/javascript; charset=utf-8"
				case strings.HasSuffix(path, ".json"):
					contentType = "application/json"
				case strings.HasSuffix(path, ".svg"):
					contentType = "image/svg+xml"
				case strings.HasSuffix(path, ".png"):
					contentType = "image/png"
				case strings.HasSuffix(path, ".jpg"), strings.HasSuffix(path, ".jpeg"):
					contentType = "image/jpeg"
				case strings.HasSuffix(path, ".ico"):
					contentType = "image/x-icon"
				case strings.HasSuffix(path, ".woff2"):
					contentType = "font/woff2"
				case strings.HasSuffix(path, ".woff"):
					contentType = "font/woff"
				}

				w.Header().Set("Content-Type", contentType)

				// Add cache headers for static assets
				if strings.HasPrefix(path, "/assets/") {
					w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
				}

				w.WriteHeader(http.StatusOK)
				io.Copy(w, f)
				return
			}
		}

		// For SPA routing, serve index.html for non-asset paths
		if !strings.HasPrefix(path, "/assets/") {
			indexFile, err := fs.Open("/index.html")
			if err == nil {
				defer indexFile.Close()
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.WriteHeader(http.StatusOK)
				io.Copy(w, indexFile)
				return
			}
		}
	}

	// Fallback: return placeholder page if no frontend is built
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`<!DOCTYPE html>
<html>
<head>
    <title>EventLens</title>
    <style>
        body { font-family: system-ui, sans-serif; display: flex; justify-content: center; align-items: center; height: 100vh; margin: 0; background: #1a1a2e; color: #eee; }
        .container { text-align: center; }
        h1 { color: #00d9ff; }
        p { color: #aaa; }
        a { color: #00d9ff; }
        code { background: #2a2a3e; padding: 2px 8px; border-radius: 4px; }
    </style>
</head>
<body>
    <div class="container">
        <h1>EventLens</h1>
        <p>Frontend is not built yet. Run <code>make build-web</code> to build the frontend.</p>
        <p>API is available at <a href="/api/v1/health">/api/v1/health</a></p>
    </div>
</body>
</html>`))
}
