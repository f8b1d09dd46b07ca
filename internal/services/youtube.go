// YouTube Data API v3 implementation of [VideoCatalog]
//
// Authenticates with a static API key passed as a query parameter.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bandsite/internal/shared"
	"golang.org/x/time/rate"
)

const youtubeBaseURL = "https://www.googleapis.com/youtube/v3"

// YouTubeThumbnail represents a single thumbnail variant.
type YouTubeThumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// YouTubeThumbnails holds the thumbnail variants a video may carry.
// Maxres is frequently absent; High is present for nearly everything.
type YouTubeThumbnails struct {
	Default *YouTubeThumbnail `json:"default"`
	Medium  *YouTubeThumbnail `json:"medium"`
	High    *YouTubeThumbnail `json:"high"`
	Maxres  *YouTubeThumbnail `json:"maxres"`
}

// videoResource identifies the video a playlist item points at.
type videoResource struct {
	VideoID string `json:"videoId"`
}

// YouTubeSnippet holds the descriptive fields shared by search results,
// video records, and playlist items.
type YouTubeSnippet struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Thumbnails   YouTubeThumbnails `json:"thumbnails"`
	PublishedAt  string            `json:"publishedAt"`
	ChannelTitle string            `json:"channelTitle"`
	ChannelID    string            `json:"channelId"`
	ResourceID   *videoResource    `json:"resourceId"`
}

// YouTubeContentDetails carries the ISO-8601 duration token.
type YouTubeContentDetails struct {
	Duration string `json:"duration"`
}

// YouTubeStatistics carries view/like counters (stringly typed upstream).
type YouTubeStatistics struct {
	ViewCount    string `json:"viewCount"`
	LikeCount    string `json:"likeCount"`
	CommentCount string `json:"commentCount"`
}

// YouTubeVideoID accepts both ID shapes the API emits: search results wrap
// the ID in an object ({"videoId": ...}) while videos.list returns a bare string.
type YouTubeVideoID struct {
	VideoID string
}

func (v *YouTubeVideoID) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		v.VideoID = plain
		return nil
	}

	var wrapped struct {
		VideoID   string `json:"videoId"`
		ChannelID string `json:"channelId"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return fmt.Errorf("unrecognized video id shape: %w", err)
	}
	if wrapped.VideoID != "" {
		v.VideoID = wrapped.VideoID
	} else {
		v.VideoID = wrapped.ChannelID
	}
	return nil
}

func (v YouTubeVideoID) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.VideoID)
}

// YouTubeVideo represents a video record from search, listing, or batch-details responses.
type YouTubeVideo struct {
	ID             YouTubeVideoID         `json:"id"`
	Snippet        YouTubeSnippet         `json:"snippet"`
	ContentDetails *YouTubeContentDetails `json:"contentDetails"`
	Statistics     *YouTubeStatistics     `json:"statistics"`
}

// VideoID returns the video identifier regardless of which endpoint produced the record.
func (v YouTubeVideo) VideoID() string {
	if v.Snippet.ResourceID != nil && v.Snippet.ResourceID.VideoID != "" {
		return v.Snippet.ResourceID.VideoID
	}
	return v.ID.VideoID
}

// YouTubeChannel represents a channel search result.
type YouTubeChannel struct {
	ID      YouTubeVideoID `json:"id"`
	Snippet YouTubeSnippet `json:"snippet"`
}

// BandVideoSet groups the band's videos by category for the videos page.
type BandVideoSet struct {
	MusicVideos      []YouTubeVideo
	LivePerformances []YouTubeVideo
	Interviews       []YouTubeVideo
	Recent           []YouTubeVideo
}

// YouTubeService implements [VideoCatalog] against the YouTube Data API.
type YouTubeService struct {
	apiKey     string
	band       string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// YouTubeOpts contains construction options for [NewYouTubeService].
type YouTubeOpts struct {
	Band              string
	RequestsPerSecond float64
	Timeout           time.Duration
	HTTPClient        *http.Client
	Logger            *log.Logger
}

// NewYouTubeService creates a YouTube service with the given API key.
//
// An empty key does not fail construction: operations degrade to empty
// results with a logged diagnostic.
func NewYouTubeService(cfg shared.YouTubeConfig, opts YouTubeOpts) *YouTubeService {
	if opts.Band == "" {
		opts.Band = "blink-182"
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 5.0
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = newHTTPClient(opts.Timeout)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &YouTubeService{
		apiKey:     cfg.APIKey,
		band:       opts.Band,
		baseURL:    youtubeBaseURL,
		httpClient: opts.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		logger:     opts.Logger,
	}
}

func (y *YouTubeService) Name() string {
	return "YouTube"
}

// doRequest performs a keyed GET against the YouTube Data API.
func (y *YouTubeService) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	if y.apiKey == "" {
		return fmt.Errorf("%w: YouTube API key not configured", shared.ErrMissingCredentials)
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	params.Set("key", y.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.baseURL+"/"+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return shared.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: youtube API status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// SearchVideos performs a relevance-ordered video search, returning an empty slice on any failure.
func (y *YouTubeService) SearchVideos(ctx context.Context, query string, maxResults int) []YouTubeVideo {
	maxResults = clampLimit(maxResults, 25, 50)

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("order", "relevance")

	var resp struct {
		Items []YouTubeVideo `json:"items"`
	}

	if err := y.doRequest(ctx, "search", params, &resp); err != nil {
		y.logger.Warn("youtube search unavailable", "query", query, "error", err)
		return []YouTubeVideo{}
	}

	if resp.Items == nil {
		return []YouTubeVideo{}
	}
	return resp.Items
}

// VideoDetails fetches full records (snippet, duration, statistics) for a batch of IDs.
func (y *YouTubeService) VideoDetails(ctx context.Context, videoIDs []string) []YouTubeVideo {
	if len(videoIDs) == 0 {
		return []YouTubeVideo{}
	}

	params := url.Values{}
	params.Set("part", "snippet,contentDetails,statistics")
	params.Set("id", strings.Join(videoIDs, ","))

	var resp struct {
		Items []YouTubeVideo `json:"items"`
	}

	if err := y.doRequest(ctx, "videos", params, &resp); err != nil {
		y.logger.Warn("youtube video details unavailable", "count", len(videoIDs), "error", err)
		return []YouTubeVideo{}
	}

	if resp.Items == nil {
		return []YouTubeVideo{}
	}
	return resp.Items
}

// ChannelVideos lists a channel's uploads, newest first.
func (y *YouTubeService) ChannelVideos(ctx context.Context, channelID string, maxResults int) []YouTubeVideo {
	maxResults = clampLimit(maxResults, 25, 50)

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("channelId", channelID)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("order", "date")

	var resp struct {
		Items []YouTubeVideo `json:"items"`
	}

	if err := y.doRequest(ctx, "search", params, &resp); err != nil {
		y.logger.Warn("youtube channel listing unavailable", "channel", channelID, "error", err)
		return []YouTubeVideo{}
	}

	if resp.Items == nil {
		return []YouTubeVideo{}
	}
	return resp.Items
}

// PlaylistItems lists the videos of a playlist.
func (y *YouTubeService) PlaylistItems(ctx context.Context, playlistID string, maxResults int) []YouTubeVideo {
	maxResults = clampLimit(maxResults, 25, 50)

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("playlistId", playlistID)
	params.Set("maxResults", strconv.Itoa(maxResults))

	var resp struct {
		Items []YouTubeVideo `json:"items"`
	}

	if err := y.doRequest(ctx, "playlistItems", params, &resp); err != nil {
		y.logger.Warn("youtube playlist listing unavailable", "playlist", playlistID, "error", err)
		return []YouTubeVideo{}
	}

	if resp.Items == nil {
		return []YouTubeVideo{}
	}
	return resp.Items
}

// SearchChannel finds a channel by name. Returns nil when nothing matches.
func (y *YouTubeService) SearchChannel(ctx context.Context, name string) *YouTubeChannel {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", name)
	params.Set("type", "channel")
	params.Set("maxResults", "1")

	var resp struct {
		Items []YouTubeChannel `json:"items"`
	}

	if err := y.doRequest(ctx, "search", params, &resp); err != nil {
		y.logger.Warn("youtube channel search unavailable", "name", name, "error", err)
		return nil
	}

	if len(resp.Items) == 0 {
		return nil
	}
	return &resp.Items[0]
}

// BandVideos fetches the band's video categories concurrently.
//
// Each category is an independent branch; one failing search leaves its
// slot empty without cancelling the others.
func (y *YouTubeService) BandVideos(ctx context.Context) *BandVideoSet {
	set := &BandVideoSet{}

	branches := []struct {
		query string
		max   int
		slot  *[]YouTubeVideo
	}{
		{fmt.Sprintf("%s official music video", y.band), 20, &set.MusicVideos},
		{fmt.Sprintf("%s live performance concert", y.band), 15, &set.LivePerformances},
		{fmt.Sprintf("%s interview", y.band), 10, &set.Interviews},
		{y.band, 25, &set.Recent},
	}

	var wg sync.WaitGroup
	for _, branch := range branches {
		wg.Add(1)
		go func(query string, max int, slot *[]YouTubeVideo) {
			defer wg.Done()
			*slot = y.SearchVideos(ctx, query, max)
		}(branch.query, branch.max, branch.slot)
	}
	wg.Wait()

	if len(set.Recent) > 12 {
		set.Recent = set.Recent[:12]
	}
	return set
}

var channelIDPattern = regexp.MustCompile(`^UC[0-9A-Za-z_-]{22}$`)

// ResolveChannelID returns the channel ID for a configured channel value.
//
// Configs usually carry a channel name ("blink-182"), which the channelId
// search parameter upstream rejects; names are resolved through
// [VideoCatalog.SearchChannel]. A value that already is a literal channel
// ID passes through without a request. Returns an empty string when the
// name resolves to nothing.
func ResolveChannelID(ctx context.Context, catalog VideoCatalog, channel string) string {
	if channelIDPattern.MatchString(channel) {
		return channel
	}

	found := catalog.SearchChannel(ctx, channel)
	if found == nil {
		return ""
	}
	return found.ID.VideoID
}

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`),
	regexp.MustCompile(`^([a-zA-Z0-9_-]{11})$`),
}

// ExtractVideoID parses a video ID out of the URL shapes users paste
// (watch URLs, short links, embed URLs, or a bare 11-character ID).
//
// Returns an empty string when no pattern matches.
func ExtractVideoID(rawURL string) string {
	for _, pattern := range videoIDPatterns {
		if match := pattern.FindStringSubmatch(rawURL); match != nil {
			return match[1]
		}
	}
	return ""
}

// ThumbnailURL builds the static thumbnail URL for a video at the given
// quality (default, medium, high, maxres).
func ThumbnailURL(videoID, quality string) string {
	var name string
	switch quality {
	case "maxres":
		name = "maxresdefault"
	case "high":
		name = "hqdefault"
	case "medium":
		name = "mqdefault"
	default:
		name = "default"
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/%s.jpg", videoID, name)
}
