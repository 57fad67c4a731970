package services

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zetflix/zetflix-api/internal/database"
	"github.com/zetflix/zetflix-api/internal/models"
	"github.com/zetflix/zetflix-api/pkg/logger"
)

func newTestDB(t *testing.T) database.Database {
	t.Helper()

	db, err := database.NewBolt(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestUser(t *testing.T, db database.Database, id string) *models.User {
	t.Helper()

	user := &models.User{
		ID:           id,
		Username:     id,
		DisplayName:  "Test User",
		AuthProvider: "local",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, db.CreateUser(user))
	return user
}

// stubTMDB lets each test script the catalog responses.
type stubTMDB struct {
	tvDetails  map[string]*models.TMDBTVDetails
	seasons    map[string]*models.TMDBSeasonDetails
	detailsErr error
	seasonErr  error
}

func (s *stubTMDB) GetTVDetails(mediaID string) (*models.TMDBTVDetails, error) {
	if s.detailsErr != nil {
		return nil, s.detailsErr
	}
	details, ok := s.tvDetails[mediaID]
	if !ok {
		return nil, fmt.Errorf("unknown series %s", mediaID)
	}
	return details, nil
}

func (s *stubTMDB) GetSeasonDetails(mediaID string, season int) (*models.TMDBSeasonDetails, error) {
	if s.seasonErr != nil {
		return nil, s.seasonErr
	}
	details, ok := s.seasons[fmt.Sprintf("%s:%d", mediaID, season)]
	if !ok {
		return nil, fmt.Errorf("unknown season %d of series %s", season, mediaID)
	}
	return details, nil
}

func testLogger() logger.Logger {
	return logger.New()
}
