package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/desertthunder/bandsite/internal/shared"
)

func newTestSpotify(t *testing.T, apiHandler http.HandlerFunc) (*SpotifyService, *int64) {
	t.Helper()

	var exchanges int64
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&exchanges, 1)
		if _, _, ok := r.BasicAuth(); !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	t.Cleanup(tokenSrv.Close)

	apiSrv := httptest.NewServer(apiHandler)
	t.Cleanup(apiSrv.Close)

	s := NewSpotifyService(
		shared.SpotifyConfig{ClientID: "id", ClientSecret: "secret"},
		SpotifyOpts{RequestsPerSecond: 1000, Logger: shared.NewLogger(io.Discard)},
	)
	s.tokenURL = tokenSrv.URL
	s.baseURL = apiSrv.URL
	return s, &exchanges
}

func TestSpotifyService(t *testing.T) {
	ctx := context.Background()

	t.Run("search tracks decodes items", func(t *testing.T) {
		s, _ := newTestSpotify(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/search" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
				t.Errorf("expected bearer header, got %q", got)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"tracks": map[string]any{
					"items": []map[string]any{
						{"id": "t1", "name": "Dammit", "duration_ms": 165000},
						{"id": "t2", "name": "Josie", "duration_ms": 202000},
					},
				},
			})
		})

		tracks := s.SearchTracks(ctx, "blink-182", 10)
		if len(tracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(tracks))
		}
		if tracks[0].Name != "Dammit" {
			t.Errorf("expected Dammit, got %s", tracks[0].Name)
		}
	})

	t.Run("search degrades to empty on server error", func(t *testing.T) {
		s, _ := newTestSpotify(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		tracks := s.SearchTracks(ctx, "blink-182", 10)
		if tracks == nil {
			t.Fatal("expected empty slice, got nil")
		}
		if len(tracks) != 0 {
			t.Errorf("expected no tracks, got %d", len(tracks))
		}
	})

	t.Run("track lookup collapses 404 to nil", func(t *testing.T) {
		s, _ := newTestSpotify(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		if track := s.Track(ctx, "missing"); track != nil {
			t.Errorf("expected nil, got %+v", track)
		}
	})

	t.Run("missing credentials degrade without panicking", func(t *testing.T) {
		s := NewSpotifyService(shared.SpotifyConfig{}, SpotifyOpts{Logger: shared.NewLogger(io.Discard)})

		tracks := s.SearchTracks(ctx, "blink-182", 10)
		if len(tracks) != 0 {
			t.Errorf("expected no tracks, got %d", len(tracks))
		}
		if artist := s.Album(ctx, "x"); artist != nil {
			t.Errorf("expected nil album, got %+v", artist)
		}
	})

	t.Run("token cache", func(t *testing.T) {
		t.Run("reuses token within ttl", func(t *testing.T) {
			s, exchanges := newTestSpotify(t, func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"tracks": map[string]any{"items": []any{}}})
			})

			for range 3 {
				s.SearchTracks(ctx, "q", 5)
			}
			if n := atomic.LoadInt64(exchanges); n != 1 {
				t.Errorf("expected 1 credential exchange, got %d", n)
			}
		})

		t.Run("re-exchanges after expiry", func(t *testing.T) {
			s, exchanges := newTestSpotify(t, func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"tracks": map[string]any{"items": []any{}}})
			})

			s.SearchTracks(ctx, "q", 5)

			// jump past the margin-adjusted expiry
			s.cache.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
			s.SearchTracks(ctx, "q", 5)

			if n := atomic.LoadInt64(exchanges); n != 2 {
				t.Errorf("expected 2 credential exchanges, got %d", n)
			}
		})

		t.Run("serializes concurrent refreshes", func(t *testing.T) {
			s, exchanges := newTestSpotify(t, func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]any{"tracks": map[string]any{"items": []any{}}})
			})

			var wg sync.WaitGroup
			for range 8 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					s.cache.Ensure(ctx)
				}()
			}
			wg.Wait()

			if n := atomic.LoadInt64(exchanges); n != 1 {
				t.Errorf("expected 1 credential exchange, got %d", n)
			}
		})

		t.Run("401 invalidates cached token", func(t *testing.T) {
			s, exchanges := newTestSpotify(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			})

			s.SearchTracks(ctx, "q", 5)
			s.SearchTracks(ctx, "q", 5)

			// each call re-exchanges because the 401 dropped the cache
			if n := atomic.LoadInt64(exchanges); n != 2 {
				t.Errorf("expected 2 credential exchanges, got %d", n)
			}
		})
	})
}

func TestClampLimit(t *testing.T) {
	cases := []struct {
		name     string
		limit    int
		expected int
	}{
		{"zero falls back", 0, 20},
		{"negative falls back", -5, 20},
		{"in range passes through", 35, 35},
		{"above max clamps", 120, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := clampLimit(tc.limit, 20, 50); got != tc.expected {
				t.Errorf("clampLimit(%d) = %d, expected %d", tc.limit, got, tc.expected)
			}
		})
	}
}
