package repository

import (
	"context"

	"github.com/farmaponte/trier-integration/internal/domain"
)

// ProdutoRepository persists the local copy of the Trier product catalog.
type ProdutoRepository interface {
	UpsertBatch(ctx context.Context, produtos []*domain.Produto) error
}

// EstoqueRepository persists stock levels keyed by product code.
type EstoqueRepository interface {
	UpsertBatch(ctx context.Context, estoques []*domain.Estoque) error
}

// VendaRepository persists sales keyed by their natural key.
type VendaRepository interface {
	UpsertBatch(ctx context.Context, vendas []*domain.Venda) error
}
