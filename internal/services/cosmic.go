// Cosmic headless CMS implementation of [ContentStore]
//
// Read-only object API client for the five content types the site renders.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bandsite/internal/shared"
)

const cosmicBaseURL = "https://api.cosmicjs.com/v3"

// MediaAsset is an uploaded image with its CDN variant.
type MediaAsset struct {
	URL      string `json:"url"`
	ImgixURL string `json:"imgix_url"`
}

// KeyValue is a CMS select-field value.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// CosmicObject holds the identity fields every CMS object carries.
//
// Queries request exactly these plus the metadata bag (find's props
// parameter); everything the site renders lives in the typed metadata.
type CosmicObject struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// TrackInfo is one entry of an album's track listing.
type TrackInfo struct {
	Track  int    `json:"track"`
	Title  string `json:"title"`
	Length string `json:"length"`
}

// AlbumMetadata is the typed metadata bag of an album object.
type AlbumMetadata struct {
	Title            string      `json:"title"`
	ReleaseDate      string      `json:"release_date"`
	AlbumArt         *MediaAsset `json:"album_art"`
	RecordLabel      string      `json:"record_label"`
	Producer         string      `json:"producer"`
	AlbumStory       string      `json:"album_story"`
	TrackListing     []TrackInfo `json:"track_listing"`
	ChartPerformance string      `json:"chart_performance"`
	Era              *KeyValue   `json:"era"`
}

// Album is a CMS album object.
type Album struct {
	CosmicObject
	Metadata AlbumMetadata `json:"metadata"`
}

// SongMetadata is the typed metadata bag of a song object.
type SongMetadata struct {
	Title      string    `json:"title"`
	Album      *Album    `json:"album"`
	Writers    string    `json:"writers"`
	Length     string    `json:"length"`
	Lyrics     string    `json:"lyrics"`
	FunFacts   string    `json:"fun_facts"`
	MusicVideo string    `json:"music_video"`
	Theme      *KeyValue `json:"theme"`
}

// Song is a CMS song object.
type Song struct {
	CosmicObject
	Metadata SongMetadata `json:"metadata"`
}

// MemberMetadata is the typed metadata bag of a band-member object.
type MemberMetadata struct {
	Name         string      `json:"name"`
	Role         string      `json:"role"`
	YearsActive  string      `json:"years_active"`
	Bio          string      `json:"bio"`
	ProfileImage *MediaAsset `json:"profile_image"`
	FunFacts     string      `json:"fun_facts"`
}

// BandMember is a CMS band-member object.
type BandMember struct {
	CosmicObject
	Metadata MemberMetadata `json:"metadata"`
}

// TourMetadata is the typed metadata bag of a tour object.
type TourMetadata struct {
	TourName        string      `json:"tour_name"`
	Year            string      `json:"year"`
	TourDescription string      `json:"tour_description"`
	NotableVenues   string      `json:"notable_venues"`
	SpecialGuests   string      `json:"special_guests"`
	TourPoster      *MediaAsset `json:"tour_poster"`
	Highlights      string      `json:"highlights"`
}

// Tour is a CMS tour object.
type Tour struct {
	CosmicObject
	Metadata TourMetadata `json:"metadata"`
}

// TimelineMetadata is the typed metadata bag of a timeline-event object.
type TimelineMetadata struct {
	Date         string      `json:"date"`
	EventType    KeyValue    `json:"event_type"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	RelatedImage *MediaAsset `json:"related_image"`
	Significance string      `json:"significance"`
}

// TimelineEvent is a CMS timeline-event object.
type TimelineEvent struct {
	CosmicObject
	Metadata TimelineMetadata `json:"metadata"`
}

// SearchResults groups cross-type search hits.
type SearchResults struct {
	Albums []Album
	Songs  []Song
	Tours  []Tour
}

// CosmicService implements [ContentStore] against the Cosmic object API.
type CosmicService struct {
	bucket     string
	readKey    string
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// CosmicOpts contains construction options for [NewCosmicService].
type CosmicOpts struct {
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *log.Logger
}

// NewCosmicService creates a CMS client for the given bucket.
func NewCosmicService(cfg shared.CosmicConfig, opts CosmicOpts) *CosmicService {
	if opts.HTTPClient == nil {
		opts.HTTPClient = newHTTPClient(opts.Timeout)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &CosmicService{
		bucket:     cfg.BucketSlug,
		readKey:    cfg.ReadKey,
		baseURL:    cosmicBaseURL,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}
}

// find performs an object query against the bucket and decodes the objects array into result.
//
// A 404 means the collection is empty, not broken: find reports it via
// [shared.ErrNotFound] so callers can collapse it.
func (c *CosmicService) find(ctx context.Context, query map[string]any, limit int, result any) error {
	if c.bucket == "" || c.readKey == "" {
		return fmt.Errorf("%w: Cosmic bucket_slug and read_key not configured", shared.ErrMissingConfig)
	}

	queryJSON, err := json.Marshal(query)
	if err != nil {
		return fmt.Errorf("failed to encode query: %w", err)
	}

	params := url.Values{}
	params.Set("query", string(queryJSON))
	params.Set("read_key", c.readKey)
	params.Set("props", "id,slug,title,metadata")
	params.Set("depth", "1")
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	endpoint := fmt.Sprintf("%s/buckets/%s/objects?%s", c.baseURL, url.PathEscape(c.bucket), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return shared.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: cosmic API status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// findAll decodes a full collection of one content type, collapsing 404 to empty.
func findAll[T any](ctx context.Context, c *CosmicService, contentType string) ([]T, error) {
	var resp struct {
		Objects []T `json:"objects"`
	}

	err := c.find(ctx, map[string]any{"type": contentType}, 0, &resp)
	if errors.Is(err, shared.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", contentType, err)
	}

	if resp.Objects == nil {
		return []T{}, nil
	}
	return resp.Objects, nil
}

// findOne decodes a single object by slug, collapsing 404 and empty results to nil.
func findOne[T any](ctx context.Context, c *CosmicService, contentType, slug string) (*T, error) {
	var resp struct {
		Objects []T `json:"objects"`
	}

	err := c.find(ctx, map[string]any{"type": contentType, "slug": slug}, 1, &resp)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s %q: %w", contentType, slug, err)
	}

	if len(resp.Objects) == 0 {
		return nil, nil
	}
	return &resp.Objects[0], nil
}

// Albums returns all albums sorted by release date ascending.
func (c *CosmicService) Albums(ctx context.Context) ([]Album, error) {
	albums, err := findAll[Album](ctx, c, "albums")
	if err != nil {
		return nil, err
	}

	sort.SliceStable(albums, func(i, j int) bool {
		return parseDate(albums[i].Metadata.ReleaseDate).Before(parseDate(albums[j].Metadata.ReleaseDate))
	})
	return albums, nil
}

// Album returns a single album by slug, nil when absent.
func (c *CosmicService) Album(ctx context.Context, slug string) (*Album, error) {
	return findOne[Album](ctx, c, "albums", slug)
}

// Songs returns all songs in upstream order.
func (c *CosmicService) Songs(ctx context.Context) ([]Song, error) {
	return findAll[Song](ctx, c, "songs")
}

// Song returns a single song by slug, nil when absent.
func (c *CosmicService) Song(ctx context.Context, slug string) (*Song, error) {
	return findOne[Song](ctx, c, "songs", slug)
}

// BandMembers returns all band members in upstream order.
func (c *CosmicService) BandMembers(ctx context.Context) ([]BandMember, error) {
	return findAll[BandMember](ctx, c, "band-members")
}

// BandMember returns a single member by slug, nil when absent.
func (c *CosmicService) BandMember(ctx context.Context, slug string) (*BandMember, error) {
	return findOne[BandMember](ctx, c, "band-members", slug)
}

// Tours returns all tours sorted by year ascending.
func (c *CosmicService) Tours(ctx context.Context) ([]Tour, error) {
	tours, err := findAll[Tour](ctx, c, "tours")
	if err != nil {
		return nil, err
	}

	sort.SliceStable(tours, func(i, j int) bool {
		yearI, _ := strconv.Atoi(tours[i].Metadata.Year)
		yearJ, _ := strconv.Atoi(tours[j].Metadata.Year)
		return yearI < yearJ
	})
	return tours, nil
}

// Tour returns a single tour by slug, nil when absent.
func (c *CosmicService) Tour(ctx context.Context, slug string) (*Tour, error) {
	return findOne[Tour](ctx, c, "tours", slug)
}

// TimelineEvents returns all timeline events sorted by date ascending.
func (c *CosmicService) TimelineEvents(ctx context.Context) ([]TimelineEvent, error) {
	events, err := findAll[TimelineEvent](ctx, c, "timeline-events")
	if err != nil {
		return nil, err
	}

	sort.SliceStable(events, func(i, j int) bool {
		return parseDate(events[i].Metadata.Date).Before(parseDate(events[j].Metadata.Date))
	})
	return events, nil
}

// TimelineEvent returns a single event by slug, nil when absent.
func (c *CosmicService) TimelineEvent(ctx context.Context, slug string) (*TimelineEvent, error) {
	return findOne[TimelineEvent](ctx, c, "timeline-events", slug)
}

// Search queries albums, songs, and tours in parallel with a
// case-insensitive title regex. Failures collapse to empty result sets:
// search is an enrichment surface, not a page-blocking dependency.
func (c *CosmicService) Search(ctx context.Context, query string) *SearchResults {
	results := &SearchResults{}

	titleMatch := func(contentType string, fields ...string) map[string]any {
		clauses := []map[string]any{
			{"title": map[string]any{"$regex": query, "$options": "i"}},
		}
		for _, f := range fields {
			clauses = append(clauses, map[string]any{f: map[string]any{"$regex": query, "$options": "i"}})
		}
		return map[string]any{"type": contentType, "$or": clauses}
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		var resp struct {
			Objects []Album `json:"objects"`
		}
		if err := c.find(ctx, titleMatch("albums", "metadata.title"), 0, &resp); err == nil {
			results.Albums = resp.Objects
		}
	}()

	go func() {
		defer wg.Done()
		var resp struct {
			Objects []Song `json:"objects"`
		}
		if err := c.find(ctx, titleMatch("songs", "metadata.title", "metadata.lyrics"), 0, &resp); err == nil {
			results.Songs = resp.Objects
		}
	}()

	go func() {
		defer wg.Done()
		var resp struct {
			Objects []Tour `json:"objects"`
		}
		if err := c.find(ctx, titleMatch("tours", "metadata.tour_name"), 0, &resp); err == nil {
			results.Tours = resp.Objects
		}
	}()

	wg.Wait()

	if results.Albums == nil {
		results.Albums = []Album{}
	}
	if results.Songs == nil {
		results.Songs = []Song{}
	}
	if results.Tours == nil {
		results.Tours = []Tour{}
	}
	return results
}

// parseDate parses the date formats the CMS emits (date-only or RFC 3339).
// Unparseable dates sort first.
func parseDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
