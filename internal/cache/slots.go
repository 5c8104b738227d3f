package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/AshifurNahid/driving-school-api/internal/config"
	"github.com/AshifurNahid/driving-school-api/internal/models"
)

const slotTTL = 2 * time.Minute

// SlotCache keeps the per-date slot listing hot. Any failure is treated as
// a miss: the API must keep working with redis down.
type SlotCache struct {
	rdb *redis.Client
}

func NewSlotCache(cfg *config.Config) *SlotCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	return &SlotCache{rdb: rdb}
}

func slotKey(date string) string {
	return "slots:" + date
}

func (c *SlotCache) Get(ctx context.Context, date string) ([]models.AppointmentSlot, bool) {
	raw, err := c.rdb.Get(ctx, slotKey(date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Println("slot cache get:", err)
		}
		return nil, false
	}

	var slots []models.AppointmentSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, date string, slots []models.AppointmentSlot) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, slotKey(date), raw, slotTTL).Err(); err != nil {
		log.Println("slot cache set:", err)
	}
}

// Invalidate drops the cached listing for a date after any slot write or
// booking on that date.
func (c *SlotCache) Invalidate(ctx context.Context, date string) {
	if err := c.rdb.Del(ctx, slotKey(date)).Err(); err != nil {
		log.Println("slot cache invalidate:", err)
	}
}
