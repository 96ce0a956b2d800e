package booking

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ScheduleCache keeps short-lived copies of a room's day schedule for the
// availability preview. Previews may be stale; the authoritative conflict
// check runs again inside the serialized submit path. Nil-safe: with no
// Redis client every lookup is a miss.
type ScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewScheduleCache creates the preview cache. client may be nil.
func NewScheduleCache(client *redis.Client, ttl time.Duration) *ScheduleCache {
	return &ScheduleCache{client: client, ttl: ttl}
}

func scheduleKey(room string, date Date) string {
	return "schedule:" + room + ":" + date.String()
}

// GetDay returns the cached day schedule, or ok=false on a miss
func (c *ScheduleCache) GetDay(ctx context.Context, room string, date Date) ([]*Booking, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, scheduleKey(room, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("room", room).Msg("schedule cache read failed")
		}
		return nil, false
	}

	var bookings []*Booking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		return nil, false
	}
	return bookings, true
}

// SetDay stores a day schedule with the configured TTL
func (c *ScheduleCache) SetDay(ctx context.Context, room string, date Date, bookings []*Booking) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(bookings)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, scheduleKey(room, date), raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("room", room).Msg("schedule cache write failed")
	}
}

// Invalidate drops the cached schedule after a write to that room/day
func (c *ScheduleCache) Invalidate(ctx context.Context, room string, date Date) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, scheduleKey(room, date)).Err(); err != nil {
		log.Warn().Err(err).Str("room", room).Msg("schedule cache invalidation failed")
	}
}
