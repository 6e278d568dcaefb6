// internal/repository/postgres/estoque_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/farmaponte/trier-integration/internal/domain"
)

type estoqueRepository struct {
	db *DB
}

func NewEstoqueRepository(db *DB) *estoqueRepository {
	return &estoqueRepository{db: db}
}

// UpsertBatch writes one fetched page of stock levels in a single
// transaction, inserting or updating by product code.
func (r *estoqueRepository) UpsertBatch(ctx context.Context, estoques []*domain.Estoque) error {
	if len(estoques) == 0 {
		return nil
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO trier_estoques (
				codigo_produto, quantidade_estoque, valor_custo_medio,
				data_ultima_entrada, valor_ultima_entrada
			) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (codigo_produto)
			DO UPDATE SET
				quantidade_estoque = EXCLUDED.quantidade_estoque,
				valor_custo_medio = EXCLUDED.valor_custo_medio,
				data_ultima_entrada = EXCLUDED.data_ultima_entrada,
				valor_ultima_entrada = EXCLUDED.valor_ultima_entrada
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, estoque := range estoques {
			_, err := stmt.ExecContext(
				ctx,
				estoque.CodigoProduto,
				estoque.QuantidadeEstoque,
				estoque.ValorCustoMedio,
				estoque.DataUltimaEntrada,
				estoque.ValorUltimaEntrada,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert estoque %s: %w", estoque.CodigoProduto, err)
			}
		}

		return nil
	})
}
