package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultRedisKey - общий ключ блокировки для всех инстансов сервера.
	DefaultRedisKey = "vnumbers:lifecycle"
	// DefaultRedisTTL - срок жизни ключа. Ключ не продлевается: удаление или восстановление,
	// идущее дольше TTL, теряет блокировку, и её может взять другой инстанс.
	// Для медленной БД TTL поднимается через LOCK_TTL_SEC / --lock-ttl.
	DefaultRedisTTL = 15 * time.Second
	retryInterval   = 50 * time.Millisecond
)

// снимаем блокировку, только если она всё ещё наша
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker - блокировка SET NX PX, общая для нескольких инстансов.
type RedisLocker struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// NewRedisLocker создаёт Locker поверх redis. Пустой key и нулевой ttl заменяются дефолтами.
func NewRedisLocker(client redis.UniversalClient, key string, ttl time.Duration) *RedisLocker {
	if key == "" {
		key = DefaultRedisKey
	}
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}
	return &RedisLocker{client: client, key: key, ttl: ttl}
}

// NewRedisClient - клиент для одного узла redis.
func NewRedisClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}

func (l *RedisLocker) Lock(ctx context.Context) (func(), error) {
	token := uuid.NewString()
	for {
		ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", l.key, err)
		}
		if ok {
			var once sync.Once
			return func() {
				once.Do(func() {
					// контекст запроса мог уже истечь - снимаем блокировку независимо
					releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
					defer cancel()
					_ = releaseScript.Run(releaseCtx, l.client, []string{l.key}, token).Err()
				})
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}
