package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/bandsite/internal/pages"
	"github.com/desertthunder/bandsite/internal/services"
	"github.com/desertthunder/bandsite/internal/shared"
	mocks "github.com/desertthunder/bandsite/internal/testing"
)

func newTestSite(t *testing.T, content *mocks.MockContentStore) *BasicRouter {
	t.Helper()

	if content == nil {
		content = &mocks.MockContentStore{}
	}
	logger := shared.NewLogger(io.Discard)
	engine := pages.NewEngine(&mocks.MockMusicCatalog{}, &mocks.MockVideoCatalog{}, content, pages.EngineOpts{Logger: logger})

	handler, err := NewSiteHandler(engine, logger)
	if err != nil {
		t.Fatalf("failed to build site handler: %v", err)
	}

	router := NewBasicRouter()
	router.Use(RequestID(), AccessLog(logger), Recover(logger))
	router.Handler(handler)
	router.Handler(&HealthHandler{})
	return router
}

func get(t *testing.T, router *BasicRouter, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSiteHandler(t *testing.T) {
	t.Run("health endpoint", func(t *testing.T) {
		rec := get(t, newTestSite(t, nil), "/health")
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
			t.Errorf("unexpected body %q", rec.Body.String())
		}
	})

	t.Run("home renders album listing", func(t *testing.T) {
		a := services.Album{Metadata: services.AlbumMetadata{Title: "Dude Ranch", ReleaseDate: "1997-06-17"}}
		a.Slug = "dude-ranch"
		router := newTestSite(t, &mocks.MockContentStore{AlbumList: []services.Album{a}})

		rec := get(t, router, "/")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Dude Ranch") {
			t.Error("expected album title in page")
		}
		if !strings.Contains(rec.Body.String(), "No tracks available") {
			t.Error("expected streaming placeholder copy")
		}
	})

	t.Run("home sets request id header", func(t *testing.T) {
		rec := get(t, newTestSite(t, nil), "/")
		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("expected a request id header")
		}
	})

	t.Run("missing album is a 404", func(t *testing.T) {
		rec := get(t, newTestSite(t, nil), "/albums/ghost")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("song page renders lyrics", func(t *testing.T) {
		s := services.Song{Metadata: services.SongMetadata{Title: "Dammit", Lyrics: "It's alright to tell me"}}
		s.Slug = "dammit"
		router := newTestSite(t, &mocks.MockContentStore{SongList: []services.Song{s}})

		rec := get(t, router, "/songs/dammit")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "It&#39;s alright to tell me") {
			t.Errorf("expected escaped lyrics in page, got %q", rec.Body.String())
		}
	})

	t.Run("videos page never errors", func(t *testing.T) {
		rec := get(t, newTestSite(t, nil), "/videos")
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "No videos available") {
			t.Error("expected empty-state copy")
		}
	})

	t.Run("unknown path is a 404", func(t *testing.T) {
		rec := get(t, newTestSite(t, nil), "/nope")
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("post to a page is rejected", func(t *testing.T) {
		router := newTestSite(t, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/music", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}
