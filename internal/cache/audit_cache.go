package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/farmaponte/trier-integration/internal/config"
	"github.com/farmaponte/trier-integration/internal/domain"
	"github.com/redis/go-redis/v9"
)

const auditBootstrapKeyPrefix = "audit:bootstrap"

// AuditCache holds recently built bootstrap payloads so repeated loads of
// the audit screen do not re-drain the whole Trier catalog.
type AuditCache interface {
	GetBootstrap(ctx context.Context, empresa, filial string, pageSize int) (*domain.AuditPayload, bool, error)
	SetBootstrap(ctx context.Context, empresa, filial string, pageSize int, payload *domain.AuditPayload) error
}

type redisAuditCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAuditCache struct{}

func NewAuditCache(cfg config.CacheConfig) (AuditCache, error) {
	if !cfg.Enabled {
		return &noopAuditCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisAuditCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopAuditCache() AuditCache {
	return &noopAuditCache{}
}

func (c *redisAuditCache) GetBootstrap(ctx context.Context, empresa, filial string, pageSize int) (*domain.AuditPayload, bool, error) {
	key := buildAuditBootstrapKey(empresa, filial, pageSize)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var bootstrap domain.AuditPayload
	if err := json.Unmarshal(payload, &bootstrap); err != nil {
		return nil, false, fmt.Errorf("decode audit bootstrap cache: %w", err)
	}

	return &bootstrap, true, nil
}

func (c *redisAuditCache) SetBootstrap(ctx context.Context, empresa, filial string, pageSize int, bootstrap *domain.AuditPayload) error {
	key := buildAuditBootstrapKey(empresa, filial, pageSize)
	payload, err := json.Marshal(bootstrap)
	if err != nil {
		return fmt.Errorf("encode audit bootstrap cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (n *noopAuditCache) GetBootstrap(ctx context.Context, empresa, filial string, pageSize int) (*domain.AuditPayload, bool, error) {
	return nil, false, nil
}

func (n *noopAuditCache) SetBootstrap(ctx context.Context, empresa, filial string, pageSize int, payload *domain.AuditPayload) error {
	return nil
}

func buildAuditBootstrapKey(empresa, filial string, pageSize int) string {
	return fmt.Sprintf("%s:%s:%s:%d", auditBootstrapKeyPrefix, empresa, filial, pageSize)
}
