package service

import (
	"context"

	"github.com/farmaponte/trier-integration/internal/domain"
	"github.com/farmaponte/trier-integration/internal/repository"
	"github.com/farmaponte/trier-integration/internal/trier"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SyncService drains the Trier list endpoints and upserts the records into
// the local database, one transaction per fetched page.
type SyncService struct {
	client   *trier.Client
	produtos repository.ProdutoRepository
	estoques repository.EstoqueRepository
	vendas   repository.VendaRepository
	pageSize int
}

func NewSyncService(
	client *trier.Client,
	produtos repository.ProdutoRepository,
	estoques repository.EstoqueRepository,
	vendas repository.VendaRepository,
	pageSize int,
) *SyncService {
	if pageSize <= 0 {
		pageSize = trier.DefaultPageSize
	}
	return &SyncService{
		client:   client,
		produtos: produtos,
		estoques: estoques,
		vendas:   vendas,
		pageSize: pageSize,
	}
}

// SyncProdutos upserts the full product catalog. Records without a product
// code are skipped but still counted as processed.
func (s *SyncService) SyncProdutos(ctx context.Context, pageSize int) (*domain.SyncResult, error) {
	runID := uuid.NewString()
	size := s.resolvePageSize(pageSize)
	log.Info().Str("run_id", runID).Int("page_size", size).Msg("sync produtos started")

	total := 0
	err := s.client.PaginatedGet(ctx, trier.ProdutoEndpoint, nil, size, func(page []trier.Record) error {
		batch := make([]*domain.Produto, 0, len(page))
		for _, record := range page {
			produto := mapProduto(record)
			if produto.Codigo == "" {
				continue
			}
			batch = append(batch, produto)
		}
		if err := s.produtos.UpsertBatch(ctx, batch); err != nil {
			return err
		}
		total += len(page)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("run_id", runID).Int("records", total).Msg("sync produtos finished")
	return &domain.SyncResult{RegistrosProcessados: total}, nil
}

// SyncEstoque upserts stock levels, optionally restricted to one product.
func (s *SyncService) SyncEstoque(ctx context.Context, codigoProduto string, pageSize int) (*domain.SyncResult, error) {
	runID := uuid.NewString()
	size := s.resolvePageSize(pageSize)

	params := map[string]string{}
	if codigoProduto != "" {
		params["codigoProduto"] = codigoProduto
	}
	log.Info().Str("run_id", runID).Str("codigo_produto", codigoProduto).Int("page_size", size).Msg("sync estoque started")

	total := 0
	err := s.client.PaginatedGet(ctx, trier.EstoqueEndpoint, params, size, func(page []trier.Record) error {
		batch := make([]*domain.Estoque, 0, len(page))
		for _, record := range page {
			estoque := mapEstoque(record)
			if estoque.CodigoProduto == "" {
				continue
			}
			batch = append(batch, estoque)
		}
		if err := s.estoques.UpsertBatch(ctx, batch); err != nil {
			return err
		}
		total += len(page)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("run_id", runID).Int("records", total).Msg("sync estoque finished")
	return &domain.SyncResult{RegistrosProcessados: total}, nil
}

// SyncVendas upserts sales, optionally bounded by emission date (YYYY-MM-DD).
func (s *SyncService) SyncVendas(ctx context.Context, dataInicial, dataFinal string, pageSize int) (*domain.SyncResult, error) {
	runID := uuid.NewString()
	size := s.resolvePageSize(pageSize)

	params := map[string]string{}
	if dataInicial != "" {
		params["dataEmissaoInicial"] = dataInicial
	}
	if dataFinal != "" {
		params["dataEmissaoFinal"] = dataFinal
	}
	log.Info().Str("run_id", runID).Str("data_inicial", dataInicial).Str("data_final", dataFinal).Int("page_size", size).Msg("sync vendas started")

	total := 0
	err := s.client.PaginatedGet(ctx, trier.VendaEndpoint, params, size, func(page []trier.Record) error {
		batch := make([]*domain.Venda, 0, len(page))
		for _, record := range page {
			batch = append(batch, mapVenda(record))
		}
		if err := s.vendas.UpsertBatch(ctx, batch); err != nil {
			return err
		}
		total += len(page)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("run_id", runID).Int("records", total).Msg("sync vendas finished")
	return &domain.SyncResult{RegistrosProcessados: total}, nil
}

func (s *SyncService) resolvePageSize(pageSize int) int {
	if pageSize > 0 {
		return pageSize
	}
	return s.pageSize
}
