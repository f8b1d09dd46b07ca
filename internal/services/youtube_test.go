package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/bandsite/internal/shared"
)

func newTestYouTube(t *testing.T, handler http.HandlerFunc) *YouTubeService {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	y := NewYouTubeService(
		shared.YouTubeConfig{APIKey: "test-key"},
		YouTubeOpts{RequestsPerSecond: 1000, Logger: shared.NewLogger(io.Discard)},
	)
	y.baseURL = srv.URL
	return y
}

func TestYouTubeService(t *testing.T) {
	ctx := context.Background()

	t.Run("search decodes wrapped video ids", func(t *testing.T) {
		y := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("key"); got != "test-key" {
				t.Errorf("expected api key param, got %q", got)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{
						"id":      map[string]string{"videoId": "abc123xyz00"},
						"snippet": map[string]any{"title": "All The Small Things (Official Video)"},
					},
				},
			})
		})

		videos := y.SearchVideos(ctx, "blink-182", 5)
		if len(videos) != 1 {
			t.Fatalf("expected 1 video, got %d", len(videos))
		}
		if got := videos[0].VideoID(); got != "abc123xyz00" {
			t.Errorf("expected abc123xyz00, got %q", got)
		}
	})

	t.Run("details decodes bare string ids", func(t *testing.T) {
		y := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("id"); got != "a,b" {
				t.Errorf("expected joined ids, got %q", got)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{
						"id":             "a",
						"snippet":        map[string]any{"title": "First"},
						"contentDetails": map[string]string{"duration": "PT3M45S"},
					},
				},
			})
		})

		videos := y.VideoDetails(ctx, []string{"a", "b"})
		if len(videos) != 1 {
			t.Fatalf("expected 1 video, got %d", len(videos))
		}
		if videos[0].VideoID() != "a" {
			t.Errorf("expected id a, got %q", videos[0].VideoID())
		}
		if videos[0].ContentDetails == nil || videos[0].ContentDetails.Duration != "PT3M45S" {
			t.Errorf("expected duration PT3M45S, got %+v", videos[0].ContentDetails)
		}
	})

	t.Run("search degrades to empty on server error", func(t *testing.T) {
		y := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})

		videos := y.SearchVideos(ctx, "blink-182", 5)
		if videos == nil || len(videos) != 0 {
			t.Errorf("expected empty slice, got %v", videos)
		}
	})

	t.Run("missing api key degrades without requests", func(t *testing.T) {
		y := NewYouTubeService(shared.YouTubeConfig{}, YouTubeOpts{Logger: shared.NewLogger(io.Discard)})

		if videos := y.SearchVideos(ctx, "q", 5); len(videos) != 0 {
			t.Errorf("expected no videos, got %d", len(videos))
		}
		if ch := y.SearchChannel(ctx, "blink-182"); ch != nil {
			t.Errorf("expected nil channel, got %+v", ch)
		}
	})

	t.Run("band videos fills every slot despite a failing branch", func(t *testing.T) {
		y := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
			// the interview branch fails, the others succeed
			if q := r.URL.Query().Get("q"); q == "blink-182 interview" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{"id": map[string]string{"videoId": "v1"}, "snippet": map[string]any{"title": "A"}},
				},
			})
		})

		set := y.BandVideos(ctx)
		if set == nil {
			t.Fatal("expected a video set")
		}
		if len(set.MusicVideos) != 1 || len(set.LivePerformances) != 1 || len(set.Recent) != 1 {
			t.Errorf("expected populated sibling slots, got %+v", set)
		}
		if len(set.Interviews) != 0 {
			t.Errorf("expected empty interviews slot, got %d", len(set.Interviews))
		}
	})

	t.Run("playlist items prefer resource id", func(t *testing.T) {
		y := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{
						"id": "playlist-item-id",
						"snippet": map[string]any{
							"title":      "Adam's Song",
							"resourceId": map[string]string{"videoId": "real-video-1"},
						},
					},
				},
			})
		})

		items := y.PlaylistItems(ctx, "PL123", 10)
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(items))
		}
		if got := items[0].VideoID(); got != "real-video-1" {
			t.Errorf("expected resource video id, got %q", got)
		}
	})

	t.Run("channel listing works from a configured name", func(t *testing.T) {
		// mirrors the upstream API: a channel name in channelId is a 400,
		// only the resolved UC id lists uploads
		const channelID = "UC9EWAjvkd0DcfLzGrNgz6lw"

		y := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
			query := r.URL.Query()
			switch {
			case query.Get("type") == "channel":
				if got := query.Get("q"); got != "blink-182" {
					t.Errorf("expected channel name query, got %q", got)
				}
				json.NewEncoder(w).Encode(map[string]any{
					"items": []map[string]any{
						{
							"id":      map[string]string{"channelId": channelID},
							"snippet": map[string]any{"title": "blink-182"},
						},
					},
				})
			case query.Get("channelId") != channelID:
				w.WriteHeader(http.StatusBadRequest)
			default:
				json.NewEncoder(w).Encode(map[string]any{
					"items": []map[string]any{
						{"id": map[string]string{"videoId": "up1"}, "snippet": map[string]any{"title": "Upload"}},
					},
				})
			}
		})

		resolved := ResolveChannelID(ctx, y, "blink-182")
		if resolved != channelID {
			t.Fatalf("expected %q, got %q", channelID, resolved)
		}

		videos := y.ChannelVideos(ctx, resolved, 10)
		if len(videos) != 1 {
			t.Fatalf("expected 1 upload, got %d", len(videos))
		}
		if got := videos[0].VideoID(); got != "up1" {
			t.Errorf("expected up1, got %q", got)
		}
	})
}

func TestResolveChannelID(t *testing.T) {
	ctx := context.Background()

	t.Run("literal id passes through without a request", func(t *testing.T) {
		requests := 0
		y := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
			requests++
			w.WriteHeader(http.StatusInternalServerError)
		})

		const id = "UC9EWAjvkd0DcfLzGrNgz6lw"
		if got := ResolveChannelID(ctx, y, id); got != id {
			t.Errorf("expected %q, got %q", id, got)
		}
		if requests != 0 {
			t.Errorf("expected no requests, got %d", requests)
		}
	})

	t.Run("unresolvable name collapses to empty", func(t *testing.T) {
		y := newTestYouTube(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"items": []map[string]any{}})
		})

		if got := ResolveChannelID(ctx, y, "no-such-band"); got != "" {
			t.Errorf("expected empty id, got %q", got)
		}
	})
}

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"watch url", "https://www.youtube.com/watch?v=9Ht5RZpzPqw", "9Ht5RZpzPqw"},
		{"watch url with params", "https://www.youtube.com/watch?v=9Ht5RZpzPqw&t=30s", "9Ht5RZpzPqw"},
		{"short link", "https://youtu.be/9Ht5RZpzPqw", "9Ht5RZpzPqw"},
		{"embed url", "https://www.youtube.com/embed/9Ht5RZpzPqw", "9Ht5RZpzPqw"},
		{"bare id", "9Ht5RZpzPqw", "9Ht5RZpzPqw"},
		{"unrelated url", "https://example.com/video", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractVideoID(tc.input); got != tc.expected {
				t.Errorf("ExtractVideoID(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

func TestThumbnailURL(t *testing.T) {
	cases := []struct {
		quality  string
		expected string
	}{
		{"maxres", "https://img.youtube.com/vi/abc/maxresdefault.jpg"},
		{"high", "https://img.youtube.com/vi/abc/hqdefault.jpg"},
		{"medium", "https://img.youtube.com/vi/abc/mqdefault.jpg"},
		{"default", "https://img.youtube.com/vi/abc/default.jpg"},
		{"", "https://img.youtube.com/vi/abc/default.jpg"},
	}

	for _, tc := range cases {
		t.Run("quality "+tc.quality, func(t *testing.T) {
			if got := ThumbnailURL("abc", tc.quality); got != tc.expected {
				t.Errorf("ThumbnailURL = %q, expected %q", got, tc.expected)
			}
		})
	}
}
