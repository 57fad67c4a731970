package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/timshannon/bolthold"
	bolt "go.etcd.io/bbolt"

	"github.com/zetflix/zetflix-api/internal/models"
)

const (
	dbFileMode = 0600
	dbDirMode  = 0755

	defaultDBFile = "zetflix.db"
)

// BoltDB implements the Database interface using BoltDB via bolthold.
type BoltDB struct {
	store *bolthold.Store
}

// BoltUser is the BoltDB-specific structure for user storage.
type BoltUser struct {
	ID               string `boltholdKey:"ID"`
	Username         string `boltholdUnique:"Username"`
	DisplayName      string
	Email            string
	PasswordHash     string
	Salt             string
	AuthProvider     string
	GoogleID         string
	ProfileImage     string
	ProfileImagePath string
	LastLoginDate    time.Time
	IsFirstLogin     bool
	TotalWatchTime   int
	MonthlyStats     models.MonthlyStats
	OngoingTvSeries  []models.OngoingSeriesEntry
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// BoltWatchEntry is the BoltDB-specific structure for watch history storage.
// The key is the composite built by WatchKey.
type BoltWatchEntry struct {
	ID               string `boltholdKey:"ID"`
	UserID           string `boltholdIndex:"UserID"`
	MediaID          string
	MediaType        string
	MediaTitle       string
	MediaPoster      string
	SeasonNumber     int
	EpisodeNumber    int
	WatchDuration    int
	LastWatchSession int
	IsCompleted      bool
	DeviceInfo       models.DeviceInfo
	WatchedAt        time.Time
}

// BoltFavorite is the BoltDB-specific structure for favorite storage.
type BoltFavorite struct {
	ID          string `boltholdKey:"ID"`
	UserID      string `boltholdIndex:"UserID"`
	MediaID     string
	MediaType   string
	MediaTitle  string
	MediaPoster string
	MediaRate   float64
	CreatedAt   time.Time
}

// BoltReview is the BoltDB-specific structure for review storage.
type BoltReview struct {
	ID          string `boltholdKey:"ID"`
	UserID      string `boltholdIndex:"UserID"`
	MediaID     string
	MediaType   string
	MediaTitle  string
	MediaPoster string
	Content     string
	CreatedAt   time.Time
}

// NewBolt creates a new BoltDB database instance.
// If dbPath is empty, uses the default database file in the current directory.
func NewBolt(dbPath string) (*BoltDB, error) {
	if dbPath == "" {
		dbPath = filepath.Join(".", defaultDBFile)
	}

	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, dbDirMode); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// A bounded open timeout fails fast when another process holds the file
	// lock instead of blocking forever.
	options := &bolthold.Options{
		Options: &bolt.Options{Timeout: 5 * time.Second},
	}

	store, err := bolthold.Open(dbPath, dbFileMode, options)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	return &BoltDB{store: store}, nil
}

// Close closes the database connection.
func (db *BoltDB) Close() error {
	return db.store.Close()
}

// --- Users ---

// CreateUser inserts a new user. Duplicate usernames fail the unique index.
func (db *BoltDB) CreateUser(user *models.User) error {
	if err := db.store.Insert(user.ID, toBoltUser(user)); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (db *BoltDB) GetUser(id string) (*models.User, error) {
	var bolt BoltUser
	err := db.store.Get(id, &bolt)
	if err == bolthold.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return fromBoltUser(&bolt), nil
}

func (db *BoltDB) GetUserByUsername(username string) (*models.User, error) {
	var results []BoltUser
	err := db.store.Find(&results, bolthold.Where("Username").Eq(username).Index("Username"))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}
	return fromBoltUser(&results[0]), nil
}

// AddWatchTime increments TotalWatchTime inside a single bolt write
// transaction, so concurrent watch events cannot lose increments.
func (db *BoltDB) AddWatchTime(userID string, minutes int) error {
	err := db.store.UpdateMatching(&BoltUser{}, bolthold.Where(bolthold.Key).Eq(userID), func(record interface{}) error {
		user, ok := record.(*BoltUser)
		if !ok {
			return fmt.Errorf("unexpected record type %T", record)
		}
		user.TotalWatchTime += minutes
		user.UpdatedAt = time.Now()
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add watch time: %w", err)
	}
	return nil
}

// MutateUser applies fn to the stored user inside a single bolt write
// transaction. The original read-modify-write counters raced under concurrent
// requests; bolt's single writer serializes them.
func (db *BoltDB) MutateUser(userID string, fn func(user *models.User) error) error {
	found := false
	err := db.store.UpdateMatching(&BoltUser{}, bolthold.Where(bolthold.Key).Eq(userID), func(record interface{}) error {
		bolt, ok := record.(*BoltUser)
		if !ok {
			return fmt.Errorf("unexpected record type %T", record)
		}
		found = true

		user := fromBoltUser(bolt)
		if err := fn(user); err != nil {
			return err
		}
		user.UpdatedAt = time.Now()
		*bolt = *toBoltUser(user)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to mutate user: %w", err)
	}
	if !found {
		return fmt.Errorf("failed to mutate user: %w", bolthold.ErrNotFound)
	}
	return nil
}

// --- Watch history ---

func (db *BoltDB) GetWatchEntry(key string) (*models.WatchHistoryEntry, error) {
	var bolt BoltWatchEntry
	err := db.store.Get(key, &bolt)
	if err == bolthold.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get watch entry: %w", err)
	}
	entry := fromBoltWatchEntry(&bolt)
	return &entry, nil
}

func (db *BoltDB) UpsertWatchEntry(entry *models.WatchHistoryEntry) error {
	if err := db.store.Upsert(entry.ID, toBoltWatchEntry(entry)); err != nil {
		return fmt.Errorf("failed to upsert watch entry: %w", err)
	}
	return nil
}

func (db *BoltDB) ListWatchHistory(userID string, limit int) ([]models.WatchHistoryEntry, error) {
	query := bolthold.Where("UserID").Eq(userID).Index("UserID").SortBy("WatchedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var bolts []BoltWatchEntry
	if err := db.store.Find(&bolts, query); err != nil {
		return nil, fmt.Errorf("failed to list watch history: %w", err)
	}

	entries := make([]models.WatchHistoryEntry, len(bolts))
	for i, b := range bolts {
		entries[i] = fromBoltWatchEntry(&b)
	}
	return entries, nil
}

func (db *BoltDB) HasSeriesWatch(userID, mediaID string) (bool, error) {
	count, err := db.store.Count(&BoltWatchEntry{},
		bolthold.Where("UserID").Eq(userID).Index("UserID").
			And("MediaID").Eq(mediaID).
			And("MediaType").Eq("tv"))
	if err != nil {
		return false, fmt.Errorf("failed to check series watch: %w", err)
	}
	return count > 0, nil
}

func (db *BoltDB) ClearWatchHistory(userID string) error {
	err := db.store.DeleteMatching(&BoltWatchEntry{}, bolthold.Where("UserID").Eq(userID).Index("UserID"))
	if err != nil {
		return fmt.Errorf("failed to clear watch history: %w", err)
	}
	return nil
}

// --- Favorites ---

func (db *BoltDB) UpsertFavorite(favorite *models.Favorite) error {
	if err := db.store.Upsert(favorite.ID, toBoltFavorite(favorite)); err != nil {
		return fmt.Errorf("failed to upsert favorite: %w", err)
	}
	return nil
}

func (db *BoltDB) GetFavorite(id string) (*models.Favorite, error) {
	var bolt BoltFavorite
	err := db.store.Get(id, &bolt)
	if err == bolthold.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}
	favorite := fromBoltFavorite(&bolt)
	return &favorite, nil
}

func (db *BoltDB) DeleteFavorite(id string) error {
	err := db.store.Delete(id, BoltFavorite{})
	if err == bolthold.ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return nil
}

func (db *BoltDB) ListFavorites(userID string) ([]models.Favorite, error) {
	var bolts []BoltFavorite
	query := bolthold.Where("UserID").Eq(userID).Index("UserID").SortBy("CreatedAt").Reverse()
	if err := db.store.Find(&bolts, query); err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	favorites := make([]models.Favorite, len(bolts))
	for i, b := range bolts {
		favorites[i] = fromBoltFavorite(&b)
	}
	return favorites, nil
}

// --- Reviews ---

func (db *BoltDB) AddReview(review *models.Review) error {
	if err := db.store.Insert(review.ID, toBoltReview(review)); err != nil {
		return fmt.Errorf("failed to add review: %w", err)
	}
	return nil
}

func (db *BoltDB) GetReview(id string) (*models.Review, error) {
	var bolt BoltReview
	err := db.store.Get(id, &bolt)
	if err == bolthold.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	review := fromBoltReview(&bolt)
	return &review, nil
}

func (db *BoltDB) DeleteReview(id string) error {
	err := db.store.Delete(id, BoltReview{})
	if err == bolthold.ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

func (db *BoltDB) ListReviews(userID string) ([]models.Review, error) {
	var bolts []BoltReview
	query := bolthold.Where("UserID").Eq(userID).Index("UserID").SortBy("CreatedAt").Reverse()
	if err := db.store.Find(&bolts, query); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews := make([]models.Review, len(bolts))
	for i, b := range bolts {
		reviews[i] = fromBoltReview(&b)
	}
	return reviews, nil
}

// --- Conversions between storage and domain structures ---

func toBoltUser(u *models.User) *BoltUser {
	return &BoltUser{
		ID:               u.ID,
		Username:         u.Username,
		DisplayName:      u.DisplayName,
		Email:            u.Email,
		PasswordHash:     u.PasswordHash,
		Salt:             u.Salt,
		AuthProvider:     u.AuthProvider,
		GoogleID:         u.GoogleID,
		ProfileImage:     u.ProfileImage,
		ProfileImagePath: u.ProfileImagePath,
		LastLoginDate:    u.LastLoginDate,
		IsFirstLogin:     u.IsFirstLogin,
		TotalWatchTime:   u.TotalWatchTime,
		MonthlyStats:     u.MonthlyStats,
		OngoingTvSeries:  u.OngoingTvSeries,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func fromBoltUser(b *BoltUser) *models.User {
	return &models.User{
		ID:               b.ID,
		Username:         b.Username,
		DisplayName:      b.DisplayName,
		Email:            b.Email,
		PasswordHash:     b.PasswordHash,
		Salt:             b.Salt,
		AuthProvider:     b.AuthProvider,
		GoogleID:         b.GoogleID,
		ProfileImage:     b.ProfileImage,
		ProfileImagePath: b.ProfileImagePath,
		LastLoginDate:    b.LastLoginDate,
		IsFirstLogin:     b.IsFirstLogin,
		TotalWatchTime:   b.TotalWatchTime,
		MonthlyStats:     b.MonthlyStats,
		OngoingTvSeries:  b.OngoingTvSeries,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

func toBoltWatchEntry(e *models.WatchHistoryEntry) *BoltWatchEntry {
	return &BoltWatchEntry{
		ID:               e.ID,
		UserID:           e.UserID,
		MediaID:          e.MediaID,
		MediaType:        e.MediaType,
		MediaTitle:       e.MediaTitle,
		MediaPoster:      e.MediaPoster,
		SeasonNumber:     e.SeasonNumber,
		EpisodeNumber:    e.EpisodeNumber,
		WatchDuration:    e.WatchDuration,
		LastWatchSession: e.LastWatchSession,
		IsCompleted:      e.IsCompleted,
		DeviceInfo:       e.DeviceInfo,
		WatchedAt:        e.WatchedAt,
	}
}

func fromBoltWatchEntry(b *BoltWatchEntry) models.WatchHistoryEntry {
	return models.WatchHistoryEntry{
		ID:               b.ID,
		UserID:           b.UserID,
		MediaID:          b.MediaID,
		MediaType:        b.MediaType,
		MediaTitle:       b.MediaTitle,
		MediaPoster:      b.MediaPoster,
		SeasonNumber:     b.SeasonNumber,
		EpisodeNumber:    b.EpisodeNumber,
		WatchDuration:    b.WatchDuration,
		LastWatchSession: b.LastWatchSession,
		IsCompleted:      b.IsCompleted,
		DeviceInfo:       b.DeviceInfo,
		WatchedAt:        b.WatchedAt,
	}
}

func toBoltFavorite(f *models.Favorite) *BoltFavorite {
	return &BoltFavorite{
		ID:          f.ID,
		UserID:      f.UserID,
		MediaID:     f.MediaID,
		MediaType:   f.MediaType,
		MediaTitle:  f.MediaTitle,
		MediaPoster: f.MediaPoster,
		MediaRate:   f.MediaRate,
		CreatedAt:   f.CreatedAt,
	}
}

func fromBoltFavorite(b *BoltFavorite) models.Favorite {
	return models.Favorite{
		ID:          b.ID,
		UserID:      b.UserID,
		MediaID:     b.MediaID,
		MediaType:   b.MediaType,
		MediaTitle:  b.MediaTitle,
		MediaPoster: b.MediaPoster,
		MediaRate:   b.MediaRate,
		CreatedAt:   b.CreatedAt,
	}
}

func toBoltReview(r *models.Review) *BoltReview {
	return &BoltReview{
		ID:          r.ID,
		UserID:      r.UserID,
		MediaID:     r.MediaID,
		MediaType:   r.MediaType,
		MediaTitle:  r.MediaTitle,
		MediaPoster: r.MediaPoster,
		Content:     r.Content,
		CreatedAt:   r.CreatedAt,
	}
}

func fromBoltReview(b *BoltReview) models.Review {
	return models.Review{
		ID:          b.ID,
		UserID:      b.UserID,
		MediaID:     b.MediaID,
		MediaType:   b.MediaType,
		MediaTitle:  b.MediaTitle,
		MediaPoster: b.MediaPoster,
		Content:     b.Content,
		CreatedAt:   b.CreatedAt,
	}
}
