package users

import (
	"context"
	"encoding/json"

	"github.com/fittrackapp/fittrack/internal/client"
	"github.com/fittrackapp/fittrack/internal/telemetry/metrics"
	"github.com/fittrackapp/fittrack/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	statsCacheKey = "snapshot::stats"
	feedCacheKey  = "snapshot::feed"
)

// Service talks to the /users endpoints. The stats and feed snapshots are
// aggregates the backend recomputes on every call, so they get a short-TTL
// cache here; profile reads and writes always go to the backend.
type Service struct {
	client         *client.Client
	snapshotCache  *freecache.Cache
	snapshotExpire int // seconds
	metrics        *metrics.Manager
}

func NewService(c *client.Client, snapshotTTLSeconds int, metricsManager *metrics.Manager) *Service {
	megabyte := 1024 * 1024
	return &Service{
		client:         c,
		snapshotCache:  freecache.NewCache(1 * megabyte),
		snapshotExpire: snapshotTTLSeconds,
		metrics:        metricsManager,
	}
}

func (s *Service) Profile(ctx context.Context) (*User, error) {
	user := &User{}
	if err := s.client.Get(ctx, "/users/profile", user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	user := &User{}
	if err := s.client.Put(ctx, "/users/profile", update, user); err != nil {
		return nil, err
	}
	// the aggregates may reference stale physiometrics now
	s.InvalidateSnapshots()
	return user, nil
}

// Stats returns the aggregate snapshot, served from the TTL cache when fresh.
func (s *Service) Stats(ctx context.Context) (_ *StatsSnapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "users.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	snapshot := &StatsSnapshot{}
	if s.fromCache(statsCacheKey, snapshot) {
		return snapshot, nil
	}

	if err := s.client.Get(ctx, "/users/stats", snapshot); err != nil {
		return nil, err
	}

	s.toCache(statsCacheKey, snapshot)
	return snapshot, nil
}

// Feed returns the social feed, served from the TTL cache when fresh.
func (s *Service) Feed(ctx context.Context) (_ *Feed, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "users.feed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	feed := &Feed{}
	if s.fromCache(feedCacheKey, feed) {
		return feed, nil
	}

	if err := s.client.Get(ctx, "/users/feed", feed); err != nil {
		return nil, err
	}

	s.toCache(feedCacheKey, feed)
	return feed, nil
}

func (s *Service) Follow(ctx context.Context, userID string) error {
	if err := s.client.Post(ctx, "/users/follow/"+userID, nil, nil); err != nil {
		return err
	}
	// the feed composition changed
	s.InvalidateSnapshots()
	return nil
}

func (s *Service) Unfollow(ctx context.Context, userID string) error {
	if err := s.client.Delete(ctx, "/users/follow/"+userID, nil); err != nil {
		return err
	}
	s.InvalidateSnapshots()
	return nil
}

// InvalidateSnapshots drops the cached aggregates so the next Stats/Feed
// call hits the backend again.
func (s *Service) InvalidateSnapshots() {
	s.snapshotCache.Del([]byte(statsCacheKey))
	s.snapshotCache.Del([]byte(feedCacheKey))
}

func (s *Service) fromCache(key string, out any) bool {
	cachedBytes, err := s.snapshotCache.Get([]byte(key))
	if err != nil {
		if s.metrics != nil {
			s.metrics.CounterCacheMisses.Inc()
		}
		return false
	}

	if err := json.Unmarshal(cachedBytes, out); err != nil {
		log.Errorf("failed to unmarshal cached snapshot [%s]: %s", key, err)
		s.snapshotCache.Del([]byte(key))
		return false
	}

	if s.metrics != nil {
		s.metrics.CounterCacheHits.Inc()
	}
	log.Tracef("snapshot [%s] served from cache", key)
	return true
}

func (s *Service) toCache(key string, snapshot any) {
	snapshotBytes, err := json.Marshal(snapshot)
	if err != nil {
		log.Errorf("failed to marshal snapshot [%s] for cache: %s", key, err)
		return
	}
	if err := s.snapshotCache.Set([]byte(key), snapshotBytes, s.snapshotExpire); err != nil {
		log.Errorf("failed to cache snapshot [%s]: %s", key, err)
	}
}
