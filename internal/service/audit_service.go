package service

import (
	"context"

	"github.com/farmaponte/trier-integration/internal/audit"
	"github.com/farmaponte/trier-integration/internal/cache"
	"github.com/farmaponte/trier-integration/internal/domain"
	"github.com/farmaponte/trier-integration/internal/trier"
	"github.com/rs/zerolog/log"
)

// AuditService builds the audit bootstrap payload from live Trier data,
// with an optional cache in front. Cache failures degrade to a rebuild.
type AuditService struct {
	client   *trier.Client
	cache    cache.AuditCache
	pageSize int
}

func NewAuditService(client *trier.Client, cacheImpl cache.AuditCache, pageSize int) *AuditService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopAuditCache()
	}
	if pageSize <= 0 {
		pageSize = trier.DefaultPageSize
	}
	return &AuditService{client: client, cache: cacheImpl, pageSize: pageSize}
}

func (s *AuditService) Bootstrap(ctx context.Context, filial, empresa string, pageSize int) (*domain.AuditPayload, error) {
	size := pageSize
	if size <= 0 {
		size = s.pageSize
	}

	if payload, ok, err := s.cache.GetBootstrap(ctx, empresa, filial, size); err == nil && ok {
		return payload, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("audit: cache get bootstrap failed")
	}

	fetchProdutos := func(ctx context.Context) ([]trier.Record, error) {
		return s.client.FetchAll(ctx, trier.ProdutoEndpoint, nil, size)
	}
	fetchEstoques := func(ctx context.Context) ([]trier.Record, error) {
		return s.client.FetchAll(ctx, trier.EstoqueEndpoint, nil, size)
	}

	payload, err := audit.BuildPayload(ctx, fetchProdutos, fetchEstoques, filial, empresa)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetBootstrap(ctx, empresa, filial, size, payload); err != nil {
		log.Warn().Err(err).Msg("audit: cache set bootstrap failed")
	}

	return payload, nil
}
