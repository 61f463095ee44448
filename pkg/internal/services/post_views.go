package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	localCache "github.com/rowanlabs/inkwell/pkg/internal/cache"
	"github.com/rowanlabs/inkwell/pkg/internal/database"
	"github.com/rowanlabs/inkwell/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostViewWindow is how long a (session, post) pair stays marked as seen.
// Repeated reads inside the window do not re-increment the view count.
const PostViewWindow = 30 * time.Minute

// ViewMarkerStore is the narrow capability the throttle needs from the
// session layer: remember when a session last had a view counted for a post.
type ViewMarkerStore interface {
	LastSeen(session string, postID uint) (time.Time, bool)
	Touch(session string, postID uint, at time.Time)
}

func viewMarkerKey(session string, postID uint) string {
	return fmt.Sprintf("post-view-marker#%s#%d", session, postID)
}

type memoryViewMarkers struct {
	mu   sync.Mutex
	seen map[string]time.Time
}

func NewMemoryViewMarkers() ViewMarkerStore {
	return &memoryViewMarkers{seen: make(map[string]time.Time)}
}

func (s *memoryViewMarkers) LastSeen(session string, postID uint) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.seen[viewMarkerKey(session, postID)]
	return at, ok
}

func (s *memoryViewMarkers) Touch(session string, postID uint, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[viewMarkerKey(session, postID)] = at
}

type cacheViewMarkers struct {
	marshal *marshaler.Marshaler
	window  time.Duration
}

func (s *cacheViewMarkers) LastSeen(session string, postID uint) (time.Time, bool) {
	val, err := s.marshal.Get(context.Background(), viewMarkerKey(session, postID), new(time.Time))
	if err != nil {
		return time.Time{}, false
	}
	at, ok := val.(*time.Time)
	if !ok {
		return time.Time{}, false
	}
	return *at, true
}

func (s *cacheViewMarkers) Touch(session string, postID uint, at time.Time) {
	_ = s.marshal.Set(
		context.Background(),
		viewMarkerKey(session, postID),
		at,
		store.WithExpiration(s.window),
	)
}

// ViewThrottle decides whether a read should be counted as a view.
type ViewThrottle struct {
	Markers ViewMarkerStore
	Window  time.Duration
	Now     func() time.Time
}

// ShouldCount reports whether this (session, post) read falls outside the
// throttle window, refreshing the marker when it does. Two racing readers in
// different sessions can both pass; that is accepted, there is no CAS here.
func (t *ViewThrottle) ShouldCount(session string, postID uint) bool {
	now := t.Now()
	if last, ok := t.Markers.LastSeen(session, postID); ok && now.Sub(last) < t.Window {
		return false
	}
	t.Markers.Touch(session, postID, now)
	return true
}

var PostViewThrottle = &ViewThrottle{
	Markers: NewMemoryViewMarkers(),
	Window:  PostViewWindow,
	Now:     time.Now,
}

// InitPostViewThrottle moves the throttle markers onto the shared cache
// store. Must run after cache.NewStore.
func InitPostViewThrottle() {
	cacheManager := cache.New[any](localCache.S)
	PostViewThrottle.Markers = &cacheViewMarkers{
		marshal: marshaler.New(cacheManager),
		window:  PostViewWindow,
	}
}

var (
	postViewQueue []models.PostView
	postViewLock  sync.Mutex
)

// CountPostView applies the per-session throttle to a read of the given post.
// When the view counts, the post's counter is bumped in place and a view log
// row is queued for the next flush. Returns whether the view was counted.
func CountPostView(post models.Post, session string) bool {
	if len(session) == 0 {
		return false
	}
	if !PostViewThrottle.ShouldCount(session, post.ID) {
		return false
	}

	if err := database.C.Model(&models.Post{}).
		Where("id = ?", post.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		log.Warn().Err(err).Uint("post", post.ID).Msg("An error occurred when counting post view...")
		return false
	}

	postViewLock.Lock()
	postViewQueue = append(postViewQueue, models.PostView{
		SessionID: session,
		PostID:    post.ID,
	})
	postViewLock.Unlock()

	return true
}

// FlushPostViews persists the queued view log rows in batches.
func FlushPostViews() {
	postViewLock.Lock()
	if len(postViewQueue) == 0 {
		postViewLock.Unlock()
		return
	}
	workingQueue := postViewQueue
	postViewQueue = nil
	postViewLock.Unlock()

	if err := database.C.
		Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(workingQueue, 1000).Error; err != nil {
		log.Warn().Err(err).Int("count", len(workingQueue)).Msg("An error occurred when flushing post views...")
	}
}
