package models

import "time"

// Request payloads

type SignupRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName" binding:"required"`
}

type SigninRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdatePasswordRequest struct {
	Password    string `json:"password" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// UpdateProfileRequest uses pointers so absent fields are left untouched.
type UpdateProfileRequest struct {
	DisplayName      *string `json:"displayName"`
	ProfileImage     *string `json:"profileImage"`
	ProfileImagePath *string `json:"profileImagePath"`
}

type WatchEventRequest struct {
	MediaID       string `json:"mediaId" binding:"required"`
	MediaType     string `json:"mediaType" binding:"required,oneof=movie tv"`
	MediaTitle    string `json:"mediaTitle"`
	MediaPoster   string `json:"mediaPoster"`
	SeasonNumber  int    `json:"seasonNumber"`
	EpisodeNumber int    `json:"episodeNumber"`
	WatchDuration int    `json:"watchDuration"`
}

type MarkSeenRequest struct {
	MediaID string `json:"mediaId" binding:"required"`
}

type AddFavoriteRequest struct {
	MediaID     string  `json:"mediaId" binding:"required"`
	MediaType   string  `json:"mediaType" binding:"required,oneof=movie tv"`
	MediaTitle  string  `json:"mediaTitle"`
	MediaPoster string  `json:"mediaPoster"`
	MediaRate   float64 `json:"mediaRate"`
}

type AddReviewRequest struct {
	MediaID     string `json:"mediaId" binding:"required"`
	MediaType   string `json:"mediaType" binding:"required,oneof=movie tv"`
	MediaTitle  string `json:"mediaTitle"`
	MediaPoster string `json:"mediaPoster"`
	Content     string `json:"content" binding:"required"`
}

// Response payloads

// AuthResponse is returned by signup and signin.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`

	// Signin only: first-login greeting hint for accounts younger than 24h.
	ShouldShowFirstTimeGreeting bool    `json:"shouldShowFirstTimeGreeting,omitempty"`
	HoursSinceCreation          float64 `json:"hoursSinceCreation,omitempty"`
}

// WatchEventResponse acknowledges a recorded watch event.
type WatchEventResponse struct {
	Message               string `json:"message"`
	IsFirstTimeWatch      bool   `json:"isFirstTimeWatch"`
	MediaType             string `json:"mediaType"`
	MediaTitle            string `json:"mediaTitle"`
	MeetsMinimumWatchTime bool   `json:"meetsMinimumWatchTime"`
}

// EpisodeCheckResponse reports the outcome of an ongoing-series reconciliation.
type EpisodeCheckResponse struct {
	Message         string `json:"message"`
	NewEpisodeCount int    `json:"newEpisodeCount"`
	HasUpdates      bool   `json:"hasUpdates"`
}

// Stats is the aggregate counter block of the dashboard.
type Stats struct {
	MoviesWatched       int            `json:"moviesWatched"`
	TVShowsWatched      int            `json:"tvShowsWatched"`
	TVEpisodesWatched   int            `json:"tvEpisodesWatched"`
	FavoritesCount      int            `json:"favoritesCount"`
	ReviewsWritten      int            `json:"reviewsWritten"`
	TotalWatchTime      int            `json:"totalWatchTime"`
	CompletedMovies     int            `json:"completedMovies"`
	CompletedTVEpisodes int            `json:"completedTvEpisodes"`
	MonthlyStats        MonthlyStats   `json:"monthlyStats"`
	CompletionRate      CompletionRate `json:"completionRate"`
}

// CompletionRate splits the monthly counters into a movie/series percentage.
type CompletionRate struct {
	Movies   int `json:"movies"`
	TVSeries int `json:"tvSeries"`
}

// OngoingSeriesSummary is one dashboard row aggregated from history rows and
// enriched with catalog episode counts.
type OngoingSeriesSummary struct {
	MediaID              string    `json:"mediaId"`
	MediaTitle           string    `json:"mediaTitle"`
	MediaPoster          string    `json:"mediaPoster"`
	WatchedEpisodes      int       `json:"watchedEpisodes"`
	TotalWatchTime       int       `json:"totalWatchTime"`
	LastWatched          time.Time `json:"lastWatched"`
	SeasonsCount         int       `json:"seasonsCount"`
	TotalEpisodes        int       `json:"totalEpisodes"`
	TotalSeasons         int       `json:"totalSeasons"`
	CompletionPercentage int       `json:"completionPercentage"`
	Status               string    `json:"status"`
}

// Analytics blocks derived from grouping queries over the watch history.

type WeekActivity struct {
	Week  string `json:"week"`
	Time  int    `json:"time"` // hours
	Count int    `json:"count"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type DeviceUsage struct {
	Device     string `json:"device"`
	Percentage int    `json:"percentage"`
	Count      int    `json:"count"`
}

type DayActivity struct {
	Date  string `json:"date"` // M/D
	Time  int    `json:"time"` // hours
	Count int    `json:"count"`
}

type Analytics struct {
	WeeklyWatchTime   []WeekActivity `json:"weeklyWatchTime"`
	GenreDistribution []TypeCount    `json:"genreDistribution"`
	DeviceUsage       []DeviceUsage  `json:"deviceUsage"`
	DailyActivity     []DayActivity  `json:"dailyActivity"`
}

// DashboardResponse is the full dashboard payload for one user.
type DashboardResponse struct {
	User               *User                  `json:"user"`
	RecentWatchHistory []WatchHistoryEntry    `json:"recentWatchHistory"`
	RecentFavorites    []Favorite             `json:"recentFavorites"`
	RecentReviews      []Review               `json:"recentReviews"`
	AllFavorites       []Favorite             `json:"allFavorites"`
	AllReviews         []Review               `json:"allReviews"`
	OngoingSeries      []OngoingSeriesSummary `json:"ongoingSeries"`
	OngoingTvSeries    []OngoingSeriesEntry   `json:"ongoingTvSeries"`
	Stats              *Stats                 `json:"stats"`
	Analytics          *Analytics             `json:"analytics"`
}
