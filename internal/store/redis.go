package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Redis keys, one per collection.
const (
	keyEvents     = "imgo:events"
	keyLeads      = "imgo:leads"
	keyAgreements = "imgo:agreements"
)

// RedisStore keeps each collection as a JSON value under an imgo: key. It is
// the optional key-value backend selected by REDIS_URL.
type RedisStore struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewRedisStore parses the URL, connects and validates the connection.
func NewRedisStore(ctx context.Context, redisURL string, log zerolog.Logger) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info().
		Str("addr", opt.Addr).
		Int("db", opt.DB).
		Msg("Redis connected")

	return &RedisStore{
		rdb: rdb,
		log: log.With().Str("component", "redis_store").Logger(),
	}, nil
}

func (s *RedisStore) Read(ctx context.Context) (Database, error) {
	var db Database
	if err := s.readKey(ctx, keyEvents, &db.Events); err != nil {
		return Database{}, err
	}
	if err := s.readKey(ctx, keyLeads, &db.Leads); err != nil {
		return Database{}, err
	}
	if err := s.readKey(ctx, keyAgreements, &db.Agreements); err != nil {
		return Database{}, err
	}
	return normalize(db), nil
}

func (s *RedisStore) Write(ctx context.Context, db Database) error {
	db = normalize(db)
	if err := s.writeKey(ctx, keyEvents, db.Events); err != nil {
		return err
	}
	if err := s.writeKey(ctx, keyLeads, db.Leads); err != nil {
		return err
	}
	return s.writeKey(ctx, keyAgreements, db.Agreements)
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func (s *RedisStore) readKey(ctx context.Context, key string, dst any) error {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("corrupt value, treating as empty")
	}
	return nil
}

func (s *RedisStore) writeKey(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.rdb.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
