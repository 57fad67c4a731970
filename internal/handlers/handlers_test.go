package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zetflix/zetflix-api/internal/cache"
	"github.com/zetflix/zetflix-api/internal/config"
	"github.com/zetflix/zetflix-api/internal/database"
	"github.com/zetflix/zetflix-api/internal/models"
	"github.com/zetflix/zetflix-api/internal/services"
	"github.com/zetflix/zetflix-api/pkg/logger"
)

// fakeTMDB scripts catalog responses for handler tests.
type fakeTMDB struct {
	tvDetails map[string]*models.TMDBTVDetails
	seasons   map[string]*models.TMDBSeasonDetails
}

func (f *fakeTMDB) GetTVDetails(mediaID string) (*models.TMDBTVDetails, error) {
	details, ok := f.tvDetails[mediaID]
	if !ok {
		return nil, fmt.Errorf("unknown series %s", mediaID)
	}
	return details, nil
}

func (f *fakeTMDB) GetSeasonDetails(mediaID string, season int) (*models.TMDBSeasonDetails, error) {
	details, ok := f.seasons[fmt.Sprintf("%s:%d", mediaID, season)]
	if !ok {
		return nil, fmt.Errorf("unknown season %d of series %s", season, mediaID)
	}
	return details, nil
}

func newTestServer(t *testing.T) (*gin.Engine, *services.Container) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewBolt(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.New()
	auth := services.NewAuth("test-secret-test-secret-test-secret")
	tmdb := &fakeTMDB{}
	ongoing := services.NewOngoingTracker(db, tmdb, log)
	stats := services.NewStats(db)

	container := &services.Container{
		Auth:         auth,
		TMDB:         tmdb,
		WatchHistory: services.NewWatchHistory(db, ongoing, log),
		Stats:        stats,
		Ongoing:      ongoing,
		Dashboard:    services.NewDashboard(db, tmdb, stats, log),
		Cache:        cache.New(100, time.Hour),
		DB:           db,
		Logger:       log,
	}

	cfg := &config.Config{Port: "5000", TokenSecret: "test-secret-test-secret-test-secret"}
	router := gin.New()
	New(container, cfg).RegisterRoutes(router)
	return router, container
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target))
}

func signupUser(t *testing.T, router *gin.Engine, username string) (token, id string) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/user/signup", "", models.SignupRequest{
		Username:    username,
		Password:    "supersecret",
		DisplayName: "Test User",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp models.AuthResponse
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	return resp.Token, resp.User.ID
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignupAndDuplicateUsername(t *testing.T) {
	router, _ := newTestServer(t)

	signupUser(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/user/signup", "", models.SignupRequest{
		Username:    "alice",
		Password:    "supersecret",
		DisplayName: "Another Alice",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "username already used")
}

func TestSignupRejectsShortPassword(t *testing.T) {
	router, _ := newTestServer(t)

	w := doJSON(t, router, http.MethodPost, "/user/signup", "", models.SignupRequest{
		Username:    "bob",
		Password:    "short",
		DisplayName: "Bob",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSigninFlow(t *testing.T) {
	router, _ := newTestServer(t)
	signupUser(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/user/signin", "", models.SigninRequest{
		Username: "alice",
		Password: "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp models.AuthResponse
	decodeBody(t, w, &resp)
	assert.NotEmpty(t, resp.Token)
	// Fresh account, first login: greeting within the 24h window.
	assert.True(t, resp.ShouldShowFirstTimeGreeting)
	assert.False(t, resp.User.LastLoginDate.IsZero())
}

func TestSigninErrors(t *testing.T) {
	router, _ := newTestServer(t)
	signupUser(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/user/signin", "", models.SigninRequest{
		Username: "nobody",
		Password: "supersecret",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "user not exist")

	w = doJSON(t, router, http.MethodPost, "/user/signin", "", models.SigninRequest{
		Username: "alice",
		Password: "wrongwrong",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "wrong password")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, _ := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/user/info"},
		{http.MethodGet, "/user/dashboard"},
		{http.MethodPost, "/user/watch-history"},
		{http.MethodGet, "/reviews"},
	} {
		w := doJSON(t, router, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
	}

	w := doJSON(t, router, http.MethodGet, "/user/info", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdatePassword(t *testing.T) {
	router, _ := newTestServer(t)
	token, _ := signupUser(t, router, "alice")

	w := doJSON(t, router, http.MethodPut, "/user/update-password", token, models.UpdatePasswordRequest{
		Password:    "wrongwrong",
		NewPassword: "newsecret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "wrong password")

	w = doJSON(t, router, http.MethodPut, "/user/update-password", token, models.UpdatePasswordRequest{
		Password:    "supersecret",
		NewPassword: "newsecret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/user/signin", "", models.SigninRequest{
		Username: "alice",
		Password: "newsecret123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestUpdateProfilePartial(t *testing.T) {
	router, _ := newTestServer(t)
	token, _ := signupUser(t, router, "alice")

	newName := "Alice Prime"
	w := doJSON(t, router, http.MethodPut, "/user/profile", token, models.UpdateProfileRequest{
		DisplayName: &newName,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User models.User `json:"user"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "Alice Prime", resp.User.DisplayName)
}

func TestMarkFirstLoginComplete(t *testing.T) {
	router, container := newTestServer(t)
	token, id := signupUser(t, router, "alice")

	w := doJSON(t, router, http.MethodPut, "/user/mark-first-login-complete", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	user, err := container.DB.GetUser(id)
	require.NoError(t, err)
	assert.False(t, user.IsFirstLogin)
}

func TestWatchHistoryLifecycle(t *testing.T) {
	router, _ := newTestServer(t)
	token, _ := signupUser(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/user/watch-history", token, models.WatchEventRequest{
		MediaID:       "550",
		MediaType:     "movie",
		MediaTitle:    "Fight Club",
		WatchDuration: 45,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var eventResp models.WatchEventResponse
	decodeBody(t, w, &eventResp)
	assert.True(t, eventResp.IsFirstTimeWatch)
	assert.True(t, eventResp.MeetsMinimumWatchTime)

	w = doJSON(t, router, http.MethodGet, "/user/watch-history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		WatchHistory []models.WatchHistoryEntry `json:"watchHistory"`
	}
	decodeBody(t, w, &listResp)
	require.Len(t, listResp.WatchHistory, 1)
	assert.Equal(t, "Fight Club", listResp.WatchHistory[0].MediaTitle)
	assert.Equal(t, "Desktop", listResp.WatchHistory[0].DeviceInfo.DeviceType)

	w = doJSON(t, router, http.MethodDelete, "/user/watch-history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/user/watch-history", token, nil)
	decodeBody(t, w, &listResp)
	assert.Empty(t, listResp.WatchHistory)
}

func TestWatchEventRejectsInvalidPayload(t *testing.T) {
	router, _ := newTestServer(t)
	token, _ := signupUser(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/user/watch-history", token, map[string]interface{}{
		"mediaId":   "550",
		"mediaType": "documentary",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/user/watch-history", token, map[string]interface{}{
		"mediaId":       "550",
		"mediaType":     "movie",
		"watchDuration": -5,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardEmptyAccount(t *testing.T) {
	router, _ := newTestServer(t)
	token, _ := signupUser(t, router, "alice")

	w := doJSON(t, router, http.MethodGet, "/user/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.DashboardResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Empty(t, resp.RecentWatchHistory)
	require.NotNil(t, resp.Stats)
	assert.Zero(t, resp.Stats.TotalWatchTime)
	require.NotNil(t, resp.Analytics)
}

func TestDashboardReflectsWatchEvents(t *testing.T) {
	router, _ := newTestServer(t)
	token, _ := signupUser(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/user/watch-history", token, models.WatchEventRequest{
		MediaID:       "550",
		MediaType:     "movie",
		MediaTitle:    "Fight Club",
		WatchDuration: 120,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/user/dashboard", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.DashboardResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, 1, resp.Stats.MoviesWatched)
	assert.Equal(t, 1, resp.Stats.CompletedMovies)
	assert.Equal(t, 120, resp.Stats.TotalWatchTime)
	assert.Equal(t, 120, resp.User.TotalWatchTime)
	require.Len(t, resp.RecentWatchHistory, 1)
}

func TestCheckNewEpisodesEmpty(t *testing.T) {
	router, _ := newTestServer(t)
	token, _ := signupUser(t, router, "alice")

	w := doJSON(t, router, http.MethodGet, "/user/check-new-episodes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.EpisodeCheckResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, "No ongoing TV series found", resp.Message)
}

func TestMarkEpisodeNotificationSeenUntracked(t *testing.T) {
	router, _ := newTestServer(t)
	token, _ := signupUser(t, router, "alice")

	w := doJSON(t, router, http.MethodPut, "/user/mark-episode-notification-seen", token, models.MarkSeenRequest{
		MediaID: "1399",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavoritesLifecycle(t *testing.T) {
	router, _ := newTestServer(t)
	token, _ := signupUser(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/user/favorites", token, models.AddFavoriteRequest{
		MediaID:    "550",
		MediaType:  "movie",
		MediaTitle: "Fight Club",
		MediaRate:  8.4,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var addResp struct {
		Favorite models.Favorite `json:"favorite"`
	}
	decodeBody(t, w, &addResp)
	require.NotEmpty(t, addResp.Favorite.ID)

	w = doJSON(t, router, http.MethodGet, "/user/favorites", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		Favorites []models.Favorite `json:"favorites"`
	}
	decodeBody(t, w, &listResp)
	require.Len(t, listResp.Favorites, 1)

	w = doJSON(t, router, http.MethodDelete, "/user/favorites/"+addResp.Favorite.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/user/favorites", token, nil)
	decodeBody(t, w, &listResp)
	assert.Empty(t, listResp.Favorites)
}

func TestFavoriteDeleteIsScopedToOwner(t *testing.T) {
	router, _ := newTestServer(t)
	aliceToken, _ := signupUser(t, router, "alice")
	bobToken, _ := signupUser(t, router, "bob")

	w := doJSON(t, router, http.MethodPost, "/user/favorites", aliceToken, models.AddFavoriteRequest{
		MediaID:   "550",
		MediaType: "movie",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var addResp struct {
		Favorite models.Favorite `json:"favorite"`
	}
	decodeBody(t, w, &addResp)

	w = doJSON(t, router, http.MethodDelete, "/user/favorites/"+addResp.Favorite.ID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewsLifecycle(t *testing.T) {
	router, _ := newTestServer(t)
	token, _ := signupUser(t, router, "alice")

	w := doJSON(t, router, http.MethodPost, "/reviews", token, models.AddReviewRequest{
		MediaID:    "550",
		MediaType:  "movie",
		MediaTitle: "Fight Club",
		Content:    "First rule applies.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var addResp struct {
		Review models.Review `json:"review"`
	}
	decodeBody(t, w, &addResp)
	require.NotEmpty(t, addResp.Review.ID)

	w = doJSON(t, router, http.MethodGet, "/reviews", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		Reviews []models.Review `json:"reviews"`
	}
	decodeBody(t, w, &listResp)
	require.Len(t, listResp.Reviews, 1)
	assert.Equal(t, "First rule applies.", listResp.Reviews[0].Content)

	w = doJSON(t, router, http.MethodDelete, "/reviews/"+addResp.Review.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/reviews", token, nil)
	decodeBody(t, w, &listResp)
	assert.Empty(t, listResp.Reviews)
}

func TestUserInfoSanitized(t *testing.T) {
	router, _ := newTestServer(t)
	token, _ := signupUser(t, router, "alice")

	w := doJSON(t, router, http.MethodGet, "/user/info", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.NotContains(t, w.Body.String(), "passwordHash")
	assert.NotContains(t, w.Body.String(), "salt")
	assert.Contains(t, w.Body.String(), "alice")
}
