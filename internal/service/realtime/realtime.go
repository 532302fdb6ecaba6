// Package realtime propagates row-change signals over a redis pub/sub
// channel. Signals carry no row payload; subscribers refetch instead of
// applying deltas, so freshness is eventually consistent.
package realtime

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

const Channel = "welile:changes"

const (
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
)

// Change names a table and the kind of write that touched it.
type Change struct {
	Table string `json:"table"`
	Op    string `json:"op"`
}

type Publisher struct {
	rdb *redis.Client
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{rdb: rdb}
}

// Publish emits a change signal. Best effort: a dropped signal only delays a
// refetch, so failures are logged and swallowed.
func (p *Publisher) Publish(ctx context.Context, table, op string) {
	if p == nil || p.rdb == nil {
		return
	}

	payload, err := json.Marshal(Change{Table: table, Op: op})
	if err != nil {
		return
	}

	if err := p.rdb.Publish(ctx, Channel, payload).Err(); err != nil {
		log.Printf("realtime publish failed for %s/%s: %v", table, op, err)
	}
}

type Subscriber struct {
	rdb *redis.Client
}

func NewSubscriber(rdb *redis.Client) *Subscriber {
	return &Subscriber{rdb: rdb}
}

// Listen blocks delivering change signals to fn until the context ends.
// Delivery order is not guaranteed; malformed messages are skipped.
func (s *Subscriber) Listen(ctx context.Context, fn func(Change)) error {
	sub := s.rdb.Subscribe(ctx, Channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var change Change
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				continue
			}
			fn(change)
		}
	}
}
