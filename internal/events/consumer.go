// Package events consumes the backend's podium event stream and keeps the
// local query cache honest: when any user's vote lands or points move,
// the affected cache prefixes are dropped so open views converge without
// polling.
package events

import (
	"context"
	"log"
	"time"

	"golang.org/x/time/rate"
)

// PodiumEvent is one event from the backend stream.
type PodiumEvent struct {
	Type      string `json:"type"`
	FID       int64  `json:"fid,omitempty"`
	BrandID   int    `json:"brandId,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Event types emitted by the backend.
const (
	EventVoteCreated   = "vote.created"
	EventPointsUpdated = "points.updated"
	EventBrandUpdated  = "brand.updated"
)

// Invalidator is the slice of the query cache the consumer writes to.
type Invalidator interface {
	InvalidatePrefix(prefixes ...string)
}

// PodiumEventConsumer routes backend events to cache invalidations.
type PodiumEventConsumer struct {
	cache Invalidator
	// Events can arrive in bursts right after a popular voting window
	// opens; cap how often a full prefix sweep runs.
	sweepLimiter *rate.Limiter
}

// NewPodiumEventConsumer creates a consumer writing to the given cache.
func NewPodiumEventConsumer(cache Invalidator) *PodiumEventConsumer {
	return &PodiumEventConsumer{
		cache:        cache,
		sweepLimiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

// HandleEvent processes one stream event. Unknown event types are ignored
// so new backend events never break an older consumer.
func (c *PodiumEventConsumer) HandleEvent(ctx context.Context, event *PodiumEvent) error {
	switch event.Type {
	case EventVoteCreated:
		// Another user's vote moved brand scores and the feed; their own
		// auth/user-votes entries are local to their process, not ours.
		if c.sweepLimiter.Allow() {
			c.cache.InvalidatePrefix("brands", "leaderboard")
		}
	case EventPointsUpdated:
		if c.sweepLimiter.Allow() {
			c.cache.InvalidatePrefix("leaderboard")
		}
	case EventBrandUpdated:
		c.cache.InvalidatePrefix("brands")
	default:
		log.Printf("Ignoring unknown podium event type: %s", event.Type)
	}
	return nil
}
