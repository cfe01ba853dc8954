package ban

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/catalog-api/internal/redissvc"
)

const (
	strikeKeyPrefix = "ratelimit:strikes:"
	banKeyPrefix    = "ratelimit:ban:"
	DailyBanLogKey  = "ratelimit:banlog:daily"
)

// Store keeps strike counters, active bans and the ban log.
type Store interface {
	// AddStrike increments the strike counter for target and returns the new
	// count. The counter expires ttl after the first strike.
	AddStrike(ctx context.Context, target string, ttl time.Duration) (int, error)
	Ban(ctx context.Context, target string, d time.Duration) error
	Banned(ctx context.Context, target string) (bool, error)
	AppendLog(ctx context.Context, entry BanLogEntry) error
	// DrainLog returns and clears the ban log.
	DrainLog(ctx context.Context) ([]BanLogEntry, error)
}

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rs *redissvc.RedisService) *RedisStore {
	return &RedisStore{rdb: rs.Rdb()}
}

func (s *RedisStore) AddStrike(ctx context.Context, target string, ttl time.Duration) (int, error) {
	key := strikeKeyPrefix + target
	n, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to add strike: %w", err)
	}
	if n == 1 {
		_ = s.rdb.Expire(ctx, key, ttl).Err()
	}
	return int(n), nil
}

func (s *RedisStore) Ban(ctx context.Context, target string, d time.Duration) error {
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, banKeyPrefix+target, "1", d)
	pipe.Del(ctx, strikeKeyPrefix+target)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Banned(ctx context.Context, target string) (bool, error) {
	n, err := s.rdb.Exists(ctx, banKeyPrefix+target).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) AppendLog(ctx context.Context, entry BanLogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return s.rdb.RPush(ctx, DailyBanLogKey, data).Err()
}

func (s *RedisStore) DrainLog(ctx context.Context) ([]BanLogEntry, error) {
	pipe := s.rdb.TxPipeline()
	items := pipe.LRange(ctx, DailyBanLogKey, 0, -1)
	pipe.Del(ctx, DailyBanLogKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	var entries []BanLogEntry
	for _, item := range items.Val() {
		var entry BanLogEntry
		if err := json.Unmarshal([]byte(item), &entry); err == nil {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// MemoryStore keeps ban state in process. It is used when no redis is
// configured and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	now     func() time.Time
	strikes map[string]counter
	bans    map[string]time.Time
	log     []BanLogEntry
}

type counter struct {
	n       int
	expires time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now:     time.Now,
		strikes: make(map[string]counter),
		bans:    make(map[string]time.Time),
	}
}

func (s *MemoryStore) AddStrike(_ context.Context, target string, ttl time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c, ok := s.strikes[target]
	if !ok || now.After(c.expires) {
		c = counter{expires: now.Add(ttl)}
	}
	c.n++
	s.strikes[target] = c
	return c.n, nil
}

func (s *MemoryStore) Ban(_ context.Context, target string, d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bans[target] = s.now().Add(d)
	delete(s.strikes, target)
	return nil
}

func (s *MemoryStore) Banned(_ context.Context, target string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	until, ok := s.bans[target]
	if !ok {
		return false, nil
	}
	if s.now().After(until) {
		delete(s.bans, target)
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) AppendLog(_ context.Context, entry BanLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = append(s.log, entry)
	return nil
}

func (s *MemoryStore) DrainLog(_ context.Context) ([]BanLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.log
	s.log = nil
	return entries, nil
}
