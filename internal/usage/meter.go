// Package usage implements daily per-user, per-feature metering for the
// freemium plans. Counters live in an expiring in-memory cache keyed by
// user, feature, and day, so they reset naturally at midnight UTC.
package usage

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Plan names.
const (
	PlanFree    = "free"
	PlanPremium = "premium"
)

// Check is the result of a limit inquiry.
type Check struct {
	Allowed   bool   `json:"allowed"`
	Current   int    `json:"current"`
	Limit     int    `json:"limit"` // 0 means unlimited
	Plan      string `json:"plan"`
	Remaining int    `json:"remaining"` // meaningless when unlimited
}

// Meter tracks daily usage counts.
type Meter struct {
	counters   *gocache.Cache
	freeLimits map[string]int // feature -> per-day cap
	premium    map[string]bool
	now        func() time.Time
}

// NewMeter creates a meter with the given free-plan limits and premium user
// set. Counters are retained for just over a day; the day key makes stale
// entries unreachable before the janitor collects them.
func NewMeter(freeLimits map[string]int, premiumUsers []string) *Meter {
	premium := make(map[string]bool, len(premiumUsers))
	for _, u := range premiumUsers {
		premium[u] = true
	}
	return &Meter{
		counters:   gocache.New(25*time.Hour, time.Hour),
		freeLimits: freeLimits,
		premium:    premium,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Plan returns the plan for a user.
func (m *Meter) Plan(userID string) string {
	if m.premium[userID] {
		return PlanPremium
	}
	return PlanFree
}

// Check reports whether the user may use the feature today, without
// consuming an allowance.
func (m *Meter) Check(userID, feature string) Check {
	plan := m.Plan(userID)
	current := m.count(userID, feature)

	if plan == PlanPremium {
		return Check{Allowed: true, Current: current, Plan: plan}
	}

	limit := m.freeLimits[feature]
	if limit <= 0 {
		// Unmetered feature.
		return Check{Allowed: true, Current: current, Plan: plan}
	}

	remaining := limit - current
	if remaining < 0 {
		remaining = 0
	}
	return Check{
		Allowed:   current < limit,
		Current:   current,
		Limit:     limit,
		Plan:      plan,
		Remaining: remaining,
	}
}

// Allow checks the limit and, when allowed, consumes one allowance.
func (m *Meter) Allow(userID, feature string) Check {
	c := m.Check(userID, feature)
	if c.Allowed {
		m.increment(userID, feature)
		c.Current++
		if c.Limit > 0 && c.Remaining > 0 {
			c.Remaining--
		}
	}
	return c
}

// Summary returns today's usage for every metered feature.
func (m *Meter) Summary(userID string) map[string]Check {
	summary := make(map[string]Check, len(m.freeLimits))
	for feature := range m.freeLimits {
		summary[feature] = m.Check(userID, feature)
	}
	return summary
}

func (m *Meter) key(userID, feature string) string {
	return fmt.Sprintf("%s:%s:%s", userID, feature, m.now().Format("2006-01-02"))
}

func (m *Meter) count(userID, feature string) int {
	if v, ok := m.counters.Get(m.key(userID, feature)); ok {
		return v.(int)
	}
	return 0
}

func (m *Meter) increment(userID, feature string) {
	key := m.key(userID, feature)
	if _, err := m.counters.IncrementInt(key, 1); err != nil {
		m.counters.Set(key, 1, gocache.DefaultExpiration)
	}
}
