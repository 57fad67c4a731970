// Package constants defines application-wide constants and default values.
package constants

import "time"

const (
	// Application metadata
	AppName    = "ZetFlix API"
	AppVersion = "1.0.0"

	// Default configuration values
	DefaultPort     = "5000"
	DefaultLogLevel = "info"

	// Cache settings
	DefaultCacheSize = 5000
	DefaultCacheTTL  = 24 // hours

	// Rate limiting for the TMDB catalog API
	TMDBRateLimit = 20 // requests per second
	TMDBRateBurst = 5  // burst capacity

	// Token lifetime for issued bearer tokens
	TokenExpiry = 24 * time.Hour

	// Watch tracking thresholds, in minutes
	MinimumWatchMinutes     = 10 // required before an event counts toward stats
	MovieCompletedMinutes   = 90
	EpisodeCompletedMinutes = 30

	// Ongoing series tracking
	MaxOngoingSeries        = 10
	DefaultEpisodeEstimate  = 20 // placeholder until the catalog supplies a real count
	FirstLoginGreetingHours = 24

	// Dashboard listing limits
	RecentHistoryLimit   = 10
	RecentFavoritesLimit = 5
	RecentReviewsLimit   = 5

	// Analytics windows
	WeeklyActivityWeeks = 7
	DailyActivityDays   = 30

	// MonthKeyFormat is the YYYY-MM key stored in monthly stats.
	MonthKeyFormat = "2006-01"
)

// MediaType values accepted by the watch history API.
const (
	MediaTypeMovie = "movie"
	MediaTypeTV    = "tv"
)
