package walletledger

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisStore guarda o snapshot da carteira numa chave fixa do Redis
type RedisStore struct {
	R   *redis.Client
	Key string
}

func NewRedisStore(r *redis.Client, key string) *RedisStore {
	return &RedisStore{R: r, Key: key}
}

func (s *RedisStore) Load(ctx context.Context) ([]byte, bool, error) {
	b, err := s.R.Get(ctx, s.Key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisStore) Save(ctx context.Context, payload []byte) error {
	return s.R.Set(ctx, s.Key, payload, 0).Err()
}
