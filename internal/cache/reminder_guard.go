package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ReminderGuard hace idempotente-por-día el job de recordatorios: la
// primera corrida en vivo toma la llave con SETNX; las siguientes del
// mismo día objetivo se reportan como omitidas.
type ReminderGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReminderGuard(client *redis.Client) *ReminderGuard {
	return &ReminderGuard{
		client: client,
		ttl:    48 * time.Hour,
	}
}

func (g *ReminderGuard) TryAcquire(ctx context.Context, targetDate string) (bool, error) {
	if g == nil || g.client == nil {
		// sin redis no hay guardia; el job corre igual
		return true, nil
	}

	key := fmt.Sprintf("reminders:run:%s", targetDate)
	return g.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), g.ttl).Result()
}
