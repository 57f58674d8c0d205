package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options configures the shared redis client used by the idempotency store
// and the event stream publisher.
type Options struct {
	Addr        string
	DB          int
	Password    string
	DialTimeout time.Duration
	PingTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.DialTimeout <= 0 {
		o.DialTimeout = 3 * time.Second
	}
	if o.PingTimeout <= 0 {
		o.PingTimeout = 5 * time.Second
	}
	return o
}

// OpenRedis connects and pings. The client is closed again if the ping fails.
func OpenRedis(ctx context.Context, opts Options) (*redis.Client, error) {
	opts = opts.withDefaults()
	r := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		DB:          opts.DB,
		Password:    opts.Password,
		DialTimeout: opts.DialTimeout,
	})
	pctx, cancel := context.WithTimeout(ctx, opts.PingTimeout)
	defer cancel()
	if err := r.Ping(pctx).Err(); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return r, nil
}

// Pinger adapts a redis client to the health check.
type Pinger struct{ Client *redis.Client }

func (p Pinger) Name() string { return "redis" }

func (p Pinger) Ping(ctx context.Context) error { return p.Client.Ping(ctx).Err() }
