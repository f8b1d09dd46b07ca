// package display normalizes raw service records into the flat shapes the
// site renders and exports.
//
// Normalization is total: every output field is set, with documented
// fallbacks standing in for anything the upstream record omits.
package display

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/desertthunder/bandsite/internal/services"
)

// Fallback values for fields an upstream record may omit.
const (
	UnknownTrack  = "Unknown Track"
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
	ZeroDuration  = "0:00"
)

// Track is the flat track shape pages and exports consume.
type Track struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Artist     string  `json:"artist"`
	Album      string  `json:"album"`
	Duration   string  `json:"duration"`
	Image      string  `json:"image"`
	SpotifyURL string  `json:"spotify_url"`
	PreviewURL *string `json:"preview_url"`
}

// Video is the flat video shape pages and exports consume.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Channel     string `json:"channel"`
	Thumbnail   string `json:"thumbnail"`
	PublishedAt string `json:"published_at"`
	Duration    string `json:"duration"`
	Views       string `json:"views"`
	WatchURL    string `json:"watch_url"`
	EmbedURL    string `json:"embed_url"`
}

// FormatDuration renders a millisecond count as M:SS.
//
// Minutes are not wrapped at the hour: 3600000 renders as "60:00".
func FormatDuration(ms int) string {
	if ms <= 0 {
		return ZeroDuration
	}
	totalSeconds := ms / 1000
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}

var isoDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// FormatISODuration renders an ISO-8601 duration token (PT1H2M3S) as a
// clock string: H:MM:SS with hours, M:SS without.
//
// Unparseable input falls back to "0:00".
func FormatISODuration(iso string) string {
	match := isoDurationPattern.FindStringSubmatch(iso)
	if match == nil {
		return ZeroDuration
	}

	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, _ := strconv.Atoi(match[3])

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// TrackFromSpotify flattens a raw track record.
//
// Artists join with ", "; the image is the album's first (largest) variant.
func TrackFromSpotify(t services.SpotifyTrack) Track {
	title := t.Name
	if title == "" {
		title = UnknownTrack
	}

	artist := joinArtists(t.Artists)

	album := t.Album.Name
	if album == "" {
		album = UnknownAlbum
	}

	image := ""
	if len(t.Album.Images) > 0 {
		image = t.Album.Images[0].URL
	}

	return Track{
		ID:         t.ID,
		Title:      title,
		Artist:     artist,
		Album:      album,
		Duration:   FormatDuration(t.DurationMS),
		Image:      image,
		SpotifyURL: t.ExternalURLs.Spotify,
		PreviewURL: t.PreviewURL,
	}
}

// TracksFromSpotify flattens a batch, preserving order.
func TracksFromSpotify(raw []services.SpotifyTrack) []Track {
	tracks := make([]Track, len(raw))
	for i, t := range raw {
		tracks[i] = TrackFromSpotify(t)
	}
	return tracks
}

func joinArtists(artists []services.SpotifyArtist) string {
	if len(artists) == 0 {
		return UnknownArtist
	}
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		if a.Name != "" {
			names = append(names, a.Name)
		}
	}
	if len(names) == 0 {
		return UnknownArtist
	}
	return strings.Join(names, ", ")
}

// VideoFromYouTube flattens a raw video record.
//
// Thumbnail selection prefers the highest quality variant present and
// falls back to the static image host when the record carries none.
func VideoFromYouTube(v services.YouTubeVideo) Video {
	id := v.VideoID()

	duration := ""
	if v.ContentDetails != nil {
		duration = FormatISODuration(v.ContentDetails.Duration)
	}

	views := ""
	if v.Statistics != nil {
		views = v.Statistics.ViewCount
	}

	return Video{
		ID:          id,
		Title:       v.Snippet.Title,
		Description: v.Snippet.Description,
		Channel:     v.Snippet.ChannelTitle,
		Thumbnail:   thumbnailFor(id, v.Snippet.Thumbnails),
		PublishedAt: v.Snippet.PublishedAt,
		Duration:    duration,
		Views:       views,
		WatchURL:    "https://www.youtube.com/watch?v=" + id,
		EmbedURL:    "https://www.youtube.com/embed/" + id,
	}
}

// VideosFromYouTube flattens a batch, preserving order.
func VideosFromYouTube(raw []services.YouTubeVideo) []Video {
	videos := make([]Video, len(raw))
	for i, v := range raw {
		videos[i] = VideoFromYouTube(v)
	}
	return videos
}

func thumbnailFor(videoID string, t services.YouTubeThumbnails) string {
	for _, variant := range []*services.YouTubeThumbnail{t.Maxres, t.High, t.Medium, t.Default} {
		if variant != nil && variant.URL != "" {
			return variant.URL
		}
	}
	return services.ThumbnailURL(videoID, "high")
}
