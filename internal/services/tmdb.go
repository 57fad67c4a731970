package services

import (
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/zetflix/zetflix-api/internal/cache"
	"github.com/zetflix/zetflix-api/internal/constants"
	"github.com/zetflix/zetflix-api/internal/models"
	"github.com/zetflix/zetflix-api/pkg/httputil"
	"github.com/zetflix/zetflix-api/pkg/logger"
	"github.com/zetflix/zetflix-api/pkg/ratelimiter"
)

const tmdbBaseURL = "https://api.themoviedb.org/3"

// TMDB is the catalog API client. Lookups go through the in-memory LRU cache
// before hitting the network, and outbound requests are rate limited.
type TMDB struct {
	apiKey      string
	baseURL     string
	cache       *cache.LRUCache
	rateLimiter *ratelimiter.TokenBucket
	httpClient  *http.Client
	logger      logger.Logger
}

// NewTMDB creates a TMDB client. An empty API key is allowed; lookups then
// fail and callers fall back to estimates.
func NewTMDB(apiKey string, memCache *cache.LRUCache) *TMDB {
	return &TMDB{
		apiKey:      apiKey,
		baseURL:     tmdbBaseURL,
		cache:       memCache,
		rateLimiter: ratelimiter.NewTokenBucket(constants.TMDBRateBurst, constants.TMDBRateLimit),
		httpClient:  httputil.NewHTTPClient(10 * time.Second),
		logger:      logger.New(),
	}
}

// SetBaseURL overrides the API endpoint, used by tests.
func (t *TMDB) SetBaseURL(url string) {
	t.baseURL = url
}

// GetTVDetails fetches show metadata including per-season episode counts.
func (t *TMDB) GetTVDetails(mediaID string) (*models.TMDBTVDetails, error) {
	cacheKey := fmt.Sprintf("tmdb:tv:%s", mediaID)

	if data, found := t.cache.Get(cacheKey); found {
		return data.(*models.TMDBTVDetails), nil
	}

	t.logger.Debugf("[TMDB] fetching TV details for %s", mediaID)

	var details models.TMDBTVDetails
	url := fmt.Sprintf("%s/tv/%s?api_key=%s", t.baseURL, mediaID, t.apiKey)
	if err := t.fetch(url, &details); err != nil {
		return nil, fmt.Errorf("failed to fetch TV details for %s: %w", mediaID, err)
	}

	t.cache.Set(cacheKey, &details)
	return &details, nil
}

// GetSeasonDetails fetches one season's episode list with air dates.
func (t *TMDB) GetSeasonDetails(mediaID string, season int) (*models.TMDBSeasonDetails, error) {
	cacheKey := fmt.Sprintf("tmdb:tv:%s:season:%d", mediaID, season)

	if data, found := t.cache.Get(cacheKey); found {
		return data.(*models.TMDBSeasonDetails), nil
	}

	t.logger.Debugf("[TMDB] fetching season %d for %s", season, mediaID)

	var details models.TMDBSeasonDetails
	url := fmt.Sprintf("%s/tv/%s/season/%d?api_key=%s", t.baseURL, mediaID, season, t.apiKey)
	if err := t.fetch(url, &details); err != nil {
		return nil, fmt.Errorf("failed to fetch season %d for %s: %w", season, mediaID, err)
	}

	t.cache.Set(cacheKey, &details)
	return &details, nil
}

func (t *TMDB) fetch(url string, out interface{}) error {
	if t.apiKey == "" {
		return fmt.Errorf("TMDB API key not configured")
	}

	t.rateLimiter.Wait()

	resp, err := t.httpClient.Get(url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB API error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
