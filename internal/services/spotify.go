// Spotify API implementation of [MusicCatalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bandsite/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// ExternalURLs holds deep links into the Spotify app/web player.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}

type followers struct {
	Total int `json:"total"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Genres       []string       `json:"genres"`
	Images       []SpotifyImage `json:"images"`
	ExternalURLs ExternalURLs   `json:"external_urls"`
	Followers    followers      `json:"followers"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []SpotifyArtist `json:"artists"`
	ReleaseDate  string          `json:"release_date"`
	TotalTracks  int             `json:"total_tracks"`
	Images       []SpotifyImage  `json:"images"`
	ExternalURLs ExternalURLs    `json:"external_urls"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []SpotifyArtist `json:"artists"`
	Album        SpotifyAlbum    `json:"album"`
	DurationMS   int             `json:"duration_ms"`
	Explicit     bool            `json:"explicit"`
	Popularity   int             `json:"popularity"`
	ExternalURLs ExternalURLs    `json:"external_urls"`
	PreviewURL   *string         `json:"preview_url"`
}

// SpotifyService implements [MusicCatalog] against the Spotify Web API.
//
// Authorization uses the OAuth client-credentials flow with a process-lifetime
// token cache. Every read operation degrades to an empty result on failure so
// a Spotify outage (or absent credentials) never breaks a page render.
type SpotifyService struct {
	clientID     string
	clientSecret string
	band         string
	baseURL      string
	tokenURL     string
	httpClient   *http.Client
	limiter      *rate.Limiter
	cache        *tokenCache
	logger       *log.Logger
}

// SpotifyOpts contains construction options for [NewSpotifyService].
type SpotifyOpts struct {
	Band              string
	RequestsPerSecond float64
	Timeout           time.Duration
	HTTPClient        *http.Client
	Logger            *log.Logger
}

// NewSpotifyService creates a Spotify service with the given client credentials.
//
// Missing credentials do not fail construction: operations degrade to empty
// results with a logged diagnostic, per the graceful-fallback policy.
func NewSpotifyService(cfg shared.SpotifyConfig, opts SpotifyOpts) *SpotifyService {
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

	s := &SpotifyService{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		band:         opts.Band,
		baseURL:      spotifyBaseURL,
		tokenURL:     spotifyTokenURL,
		httpClient:   opts.HTTPClient,
		limiter:      rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		logger:       opts.Logger,
	}
	s.cache = newTokenCache(s.exchangeCredentials)
	return s
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// exchangeCredentials performs the client-credentials token request.
//
// Returns a token whose Expiry is now + ttl - margin.
func (s *SpotifyService) exchangeCredentials(ctx context.Context) (*oauth2.Token, error) {
	if s.clientID == "" || s.clientSecret == "" {
		return nil, fmt.Errorf("%w: Spotify client_id and client_secret not configured", shared.ErrMissingCredentials)
	}

	body := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}

	req.SetBasicAuth(s.clientID, s.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: token endpoint returned status %d", shared.ErrAuthFailed, resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	ttl := time.Duration(tokenResp.ExpiresIn) * time.Second
	return &oauth2.Token{
		AccessToken: tokenResp.AccessToken,
		TokenType:   tokenResp.TokenType,
		Expiry:      time.Now().Add(ttl - tokenExpiryMargin),
	}, nil
}

// doRequest performs an authenticated GET against the Spotify API.
//
// A 401 invalidates the cached token so the next call re-exchanges; the
// current request is not retried.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result any) error {
	token, err := s.cache.Ensure(ctx)
	if err != nil {
		return err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return shared.ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		s.cache.Invalidate()
		return fmt.Errorf("%w: spotify rejected token (status 401)", shared.ErrTokenExpired)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: spotify API status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// clampLimit bounds a caller-supplied search limit.
func clampLimit(limit, fallback, max int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}

// SearchTracks performs a bounded track search, returning an empty slice on any failure.
func (s *SpotifyService) SearchTracks(ctx context.Context, query string, limit int) []SpotifyTrack {
	limit = clampLimit(limit, 20, 50)

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(limit))

	var resp struct {
		Tracks struct {
			Items []SpotifyTrack `json:"items"`
		} `json:"tracks"`
	}

	if err := s.doRequest(ctx, "/search?"+params.Encode(), &resp); err != nil {
		s.logger.Warn("spotify track search unavailable", "query", query, "error", err)
		return []SpotifyTrack{}
	}

	if resp.Tracks.Items == nil {
		return []SpotifyTrack{}
	}
	return resp.Tracks.Items
}

// SearchArtists performs a bounded artist search, returning an empty slice on any failure.
func (s *SpotifyService) SearchArtists(ctx context.Context, query string, limit int) []SpotifyArtist {
	limit = clampLimit(limit, 10, 50)

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "artist")
	params.Set("limit", strconv.Itoa(limit))

	var resp struct {
		Artists struct {
			Items []SpotifyArtist `json:"items"`
		} `json:"artists"`
	}

	if err := s.doRequest(ctx, "/search?"+params.Encode(), &resp); err != nil {
		s.logger.Warn("spotify artist search unavailable", "query", query, "error", err)
		return []SpotifyArtist{}
	}

	if resp.Artists.Items == nil {
		return []SpotifyArtist{}
	}
	return resp.Artists.Items
}

// BandTracks returns tracks for the configured band via an artist-scoped search.
func (s *SpotifyService) BandTracks(ctx context.Context) []SpotifyTrack {
	return s.SearchTracks(ctx, fmt.Sprintf("artist:%s", s.band), 50)
}

// Track fetches a single track by ID. Not-found and errors both collapse to nil.
func (s *SpotifyService) Track(ctx context.Context, id string) *SpotifyTrack {
	var track SpotifyTrack
	if err := s.doRequest(ctx, "/tracks/"+url.PathEscape(id), &track); err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("spotify track lookup unavailable", "id", id, "error", err)
		}
		return nil
	}
	return &track
}

// ArtistTopTracks returns an artist's most popular tracks.
func (s *SpotifyService) ArtistTopTracks(ctx context.Context, artistID string) []SpotifyTrack {
	endpoint := fmt.Sprintf("/artists/%s/top-tracks?market=US", url.PathEscape(artistID))

	var resp struct {
		Tracks []SpotifyTrack `json:"tracks"`
	}

	if err := s.doRequest(ctx, endpoint, &resp); err != nil {
		s.logger.Warn("spotify top tracks unavailable", "artist", artistID, "error", err)
		return []SpotifyTrack{}
	}

	if resp.Tracks == nil {
		return []SpotifyTrack{}
	}
	return resp.Tracks
}

// ArtistAlbums returns an artist's albums.
func (s *SpotifyService) ArtistAlbums(ctx context.Context, artistID string) []SpotifyAlbum {
	endpoint := fmt.Sprintf("/artists/%s/albums?include_groups=album&limit=50", url.PathEscape(artistID))

	var resp struct {
		Items []SpotifyAlbum `json:"items"`
	}

	if err := s.doRequest(ctx, endpoint, &resp); err != nil {
		s.logger.Warn("spotify artist albums unavailable", "artist", artistID, "error", err)
		return []SpotifyAlbum{}
	}

	if resp.Items == nil {
		return []SpotifyAlbum{}
	}
	return resp.Items
}

// Album fetches a single album by ID. Not-found and errors both collapse to nil.
func (s *SpotifyService) Album(ctx context.Context, id string) *SpotifyAlbum {
	var album SpotifyAlbum
	if err := s.doRequest(ctx, "/albums/"+url.PathEscape(id), &album); err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("spotify album lookup unavailable", "id", id, "error", err)
		}
		return nil
	}
	return &album
}
