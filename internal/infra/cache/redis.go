// Package cache implementa lock por contato e dedup de lembretes sobre
// Redis, para várias réplicas da API.
package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const retryEvery = 50 * time.Millisecond

// releaseScript só apaga a chave se ela ainda pertence ao token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// ======================================================
// Lock
// ======================================================

type Locker struct {
	client redis.UniversalClient
	prefix string
}

func NewLocker(client redis.UniversalClient) *Locker {
	return &Locker{client: client, prefix: "educrm:lock:"}
}

// Lock tenta SET NX PX até conseguir ou o contexto terminar.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	key = l.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(retryEvery)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, err
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	release := func() {
		rctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = releaseScript.Run(rctx, l.client, []string{key}, token).Err()
	}
	return release, nil
}

// ======================================================
// Dedup
// ======================================================

type Dedup struct {
	client redis.UniversalClient
	prefix string
}

func NewDedup(client redis.UniversalClient) *Dedup {
	return &Dedup{client: client, prefix: "educrm:seen:"}
}

// FirstSeen devolve true quando a chave ainda não existia.
func (d *Dedup) FirstSeen(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return d.client.SetNX(ctx, d.prefix+key, time.Now().Unix(), ttl).Result()
}
