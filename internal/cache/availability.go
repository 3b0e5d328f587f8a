package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/OrinocoLabs01/lab-scheduler/internal/domain/scheduling"
)

// TTL corto: la disponibilidad es una vista instantánea, no una reserva.
const availabilityTTL = 30 * time.Second

type Availability struct {
	client *redis.Client
}

func NewAvailability(client *redis.Client) *Availability {
	return &Availability{client: client}
}

func availabilityKey(date, location string) string {
	return fmt.Sprintf("availability:%s:%s", date, location)
}

func (c *Availability) Get(
	ctx context.Context,
	date string,
	location string,
) (*scheduling.Availability, bool) {

	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, availabilityKey(date, location)).Bytes()
	if err != nil {
		return nil, false
	}

	var av scheduling.Availability
	if err := json.Unmarshal(raw, &av); err != nil {
		return nil, false
	}

	return &av, true
}

func (c *Availability) Set(
	ctx context.Context,
	av *scheduling.Availability,
) {
	if c == nil || c.client == nil || av == nil {
		return
	}

	raw, err := json.Marshal(av)
	if err != nil {
		return
	}

	c.client.Set(ctx, availabilityKey(av.Date, av.Location), raw, availabilityTTL)
}

// Invalidate borra la vista cacheada de (fecha, sede) tras una mutación.
func (c *Availability) Invalidate(ctx context.Context, date, location string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, availabilityKey(date, location))
}

// InvalidateDate borra la fecha completa en todas las sedes (bloqueo de día).
func (c *Availability) InvalidateDate(ctx context.Context, date string) {
	if c == nil || c.client == nil {
		return
	}
	for _, loc := range scheduling.Locations() {
		c.client.Del(ctx, availabilityKey(date, loc))
	}
}
