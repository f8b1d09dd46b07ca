package server

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bandsite/internal/pages"
	"github.com/desertthunder/bandsite/internal/shared"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// SiteHandler serves the HTML pages of the fan site.
//
// Every page renders from the page engine; enrichment sections that come
// back empty render their placeholder copy instead of erroring.
type SiteHandler struct {
	engine    *pages.Engine
	templates *template.Template
	logger    *log.Logger
}

// NewSiteHandler parses the embedded templates and wires the page engine.
func NewSiteHandler(engine *pages.Engine, logger *log.Logger) (*SiteHandler, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	templates, err := template.ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &SiteHandler{engine: engine, templates: templates, logger: logger}, nil
}

// Routes returns the path patterns this handler serves.
func (h *SiteHandler) Routes() []string {
	return []string{
		"/",
		"/music",
		"/albums/{slug}",
		"/songs/{slug}",
		"/videos",
		"/band",
		"/tours",
		"/timeline",
		"/search",
	}
}

// ServeHTTP dispatches to the page loaders by path pattern.
func (h *SiteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()

	switch {
	case r.URL.Path == "/":
		data, err := h.engine.Home(ctx)
		h.render(w, "home.gohtml", data, err)
	case r.URL.Path == "/music":
		data, err := h.engine.Music(ctx)
		h.render(w, "music.gohtml", data, err)
	case r.Pattern == "/albums/{slug}":
		data, err := h.engine.AlbumDetail(ctx, r.PathValue("slug"))
		h.render(w, "album.gohtml", data, err)
	case r.Pattern == "/songs/{slug}":
		data, err := h.engine.SongDetail(ctx, r.PathValue("slug"))
		h.render(w, "song.gohtml", data, err)
	case r.URL.Path == "/videos":
		h.render(w, "videos.gohtml", h.engine.Videos(ctx), nil)
	case r.URL.Path == "/band":
		data, err := h.engine.BandMembers(ctx)
		h.render(w, "band.gohtml", data, err)
	case r.URL.Path == "/tours":
		data, err := h.engine.Tours(ctx)
		h.render(w, "tours.gohtml", data, err)
	case r.URL.Path == "/timeline":
		data, err := h.engine.Timeline(ctx)
		h.render(w, "timeline.gohtml", data, err)
	case r.URL.Path == "/search":
		h.render(w, "search.gohtml", h.engine.Search(ctx, r.URL.Query().Get("q")), nil)
	default:
		http.NotFound(w, r)
	}
}

// render writes a page or maps the loader error to a status code.
func (h *SiteHandler) render(w http.ResponseWriter, name string, data any, err error) {
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			http.Error(w, "404 page not found", http.StatusNotFound)
			return
		}
		h.logger.Error("page load failed", "template", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("template render failed", "template", name, "error", err)
	}
}

// HealthHandler reports process liveness.
type HealthHandler struct{}

func (h *HealthHandler) Routes() []string {
	return []string{"/health"}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	body, _ := shared.MarshalJSON(map[string]string{"status": "ok"}, false)
	w.Write(body)
}
