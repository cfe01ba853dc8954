// Package ban escalates repeated rate-limit violations into temporary bans.
package ban

import (
	"context"
	"sort"
	"time"

	"github.com/rogerio-castellano/catalog-api/internal/config"
	"github.com/rogerio-castellano/catalog-api/internal/logger"
)

type BanLogEntry struct {
	Target  string    `json:"target"`
	Route   string    `json:"route"`
	Strikes int       `json:"strikes"`
	Time    time.Time `json:"time"`
}

type Tracker struct {
	store       Store
	maxStrikes  int
	strikeTTL   time.Duration
	banDuration time.Duration
}

func NewTracker(store Store, cfg config.RateLimitConfig) *Tracker {
	t := &Tracker{
		store:       store,
		maxStrikes:  cfg.MaxStrikes,
		strikeTTL:   cfg.StrikeTTL,
		banDuration: cfg.BanDuration,
	}
	if t.maxStrikes <= 0 {
		t.maxStrikes = 20
	}
	if t.strikeTTL <= 0 {
		t.strikeTTL = time.Minute
	}
	if t.banDuration <= 0 {
		t.banDuration = 15 * time.Minute
	}
	return t
}

// IsBanned fails open: a store error is logged and the request goes through.
func (t *Tracker) IsBanned(ctx context.Context, target string) bool {
	banned, err := t.store.Banned(ctx, target)
	if err != nil {
		logger.FromContext(ctx).Error("ban lookup failed", "target", target, "error", err)
		return false
	}
	return banned
}

// Strike records a rate-limit violation and bans the target once it reaches
// the strike limit. It reports whether the target is now banned.
func (t *Tracker) Strike(ctx context.Context, target, route string) bool {
	log := logger.FromContext(ctx)

	strikes, err := t.store.AddStrike(ctx, target, t.strikeTTL)
	if err != nil {
		log.Error("strike update failed", "target", target, "error", err)
		return false
	}
	if strikes < t.maxStrikes {
		return false
	}

	if err := t.store.Ban(ctx, target, t.banDuration); err != nil {
		log.Error("ban failed", "target", target, "error", err)
		return false
	}
	log.Warn("client banned", "target", target, "route", route, "strikes", strikes, "duration", t.banDuration)

	entry := BanLogEntry{Target: target, Route: route, Strikes: strikes, Time: time.Now().UTC()}
	if err := t.store.AppendLog(ctx, entry); err != nil {
		log.Error("ban log append failed", "error", err)
	}
	return true
}

// Summary aggregates a drained ban log.
type Summary struct {
	Total    int
	ByRoute  map[string]int
	ByTarget map[string]int
	Entries  []BanLogEntry
}

// Summarize drains the ban log and aggregates it by route and target.
func (t *Tracker) Summarize(ctx context.Context) (Summary, error) {
	entries, err := t.store.DrainLog(ctx)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		Total:    len(entries),
		ByRoute:  make(map[string]int),
		ByTarget: make(map[string]int),
		Entries:  entries,
	}
	for _, e := range entries {
		s.ByRoute[e.Route]++
		s.ByTarget[e.Target]++
	}
	sort.Slice(s.Entries, func(i, j int) bool { return s.Entries[i].Time.Before(s.Entries[j].Time) })
	return s, nil
}

// StartDailySummary logs a ban summary every day at 23:59 until ctx is done.
func (t *Tracker) StartDailySummary(ctx context.Context) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		s, err := t.Summarize(ctx)
		if err != nil {
			logger.Get().Error("daily ban summary failed", "error", err)
			continue
		}
		if s.Total == 0 {
			continue
		}
		logger.Get().Info("daily ban summary", "total", s.Total, "by_route", s.ByRoute, "by_target", s.ByTarget)
	}
}
