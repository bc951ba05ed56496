package banlist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store persists bans. Names are case-insensitive; a zero ttl means
// permanent.
type Store interface {
	BanName(ctx context.Context, name, reason string, ttl time.Duration) error
	BanIP(ctx context.Context, ip, reason string, ttl time.Duration) error
	UnbanName(ctx context.Context, name string) error
	UnbanIP(ctx context.Context, ip string) error

	// NameReason returns the ban reason when the name is banned.
	NameReason(ctx context.Context, name string) (string, bool, error)

	// IPReason returns the ban reason when the address is banned.
	IPReason(ctx context.Context, ip string) (string, bool, error)

	// Names returns all banned names with their reasons.
	Names(ctx context.Context) (map[string]string, error)

	// IPs returns all banned addresses with their reasons.
	IPs(ctx context.Context) (map[string]string, error)
}

// RedisStore keeps one key per ban so expiring bans ride on Redis TTLs.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore creates a store over an existing client.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "modring:banlist"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) nameKey(name string) string {
	return s.prefix + ":name:" + strings.ToLower(name)
}

func (s *RedisStore) ipKey(ip string) string {
	return s.prefix + ":ip:" + ip
}

// BanName stores a name ban.
func (s *RedisStore) BanName(ctx context.Context, name, reason string, ttl time.Duration) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	return s.client.Set(ctx, s.nameKey(name), reason, ttl).Err()
}

// BanIP stores an address ban.
func (s *RedisStore) BanIP(ctx context.Context, ip, reason string, ttl time.Duration) error {
	if ip == "" {
		return fmt.Errorf("ip cannot be empty")
	}
	return s.client.Set(ctx, s.ipKey(ip), reason, ttl).Err()
}

// UnbanName removes a name ban. Unknown names are a no-op.
func (s *RedisStore) UnbanName(ctx context.Context, name string) error {
	return s.client.Del(ctx, s.nameKey(name)).Err()
}

// UnbanIP removes an address ban. Unknown addresses are a no-op.
func (s *RedisStore) UnbanIP(ctx context.Context, ip string) error {
	return s.client.Del(ctx, s.ipKey(ip)).Err()
}

// NameReason returns the ban reason when the name is banned.
func (s *RedisStore) NameReason(ctx context.Context, name string) (string, bool, error) {
	return s.lookup(ctx, s.nameKey(name))
}

// IPReason returns the ban reason when the address is banned.
func (s *RedisStore) IPReason(ctx context.Context, ip string) (string, bool, error) {
	return s.lookup(ctx, s.ipKey(ip))
}

func (s *RedisStore) lookup(ctx context.Context, key string) (string, bool, error) {
	reason, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return reason, true, nil
}

// Names returns all banned names with their reasons.
func (s *RedisStore) Names(ctx context.Context) (map[string]string, error) {
	return s.scan(ctx, s.prefix+":name:")
}

// IPs returns all banned addresses with their reasons.
func (s *RedisStore) IPs(ctx context.Context) (map[string]string, error) {
	return s.scan(ctx, s.prefix+":ip:")
}

func (s *RedisStore) scan(ctx context.Context, keyPrefix string) (map[string]string, error) {
	out := make(map[string]string)

	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		reason, err := s.client.Get(ctx, key).Result()
		if err == redis.Nil {
			// Expired between SCAN and GET.
			continue
		}
		if err != nil {
			return nil, err
		}
		out[strings.TrimPrefix(key, keyPrefix)] = reason
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
