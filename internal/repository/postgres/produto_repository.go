// internal/repository/postgres/produto_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/farmaponte/trier-integration/internal/domain"
)

type produtoRepository struct {
	db *DB
}

func NewProdutoRepository(db *DB) *produtoRepository {
	return &produtoRepository{db: db}
}

// UpsertBatch writes one fetched page of products in a single transaction,
// inserting or updating by product code.
func (r *produtoRepository) UpsertBatch(ctx context.Context, produtos []*domain.Produto) error {
	if len(produtos) == 0 {
		return nil
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO trier_produtos (
				codigo, nome, valor_venda, valor_custo, valor_custo_medio,
				quantidade_estoque, unidade, codigo_barras, codigo_laboratorio,
				nome_laboratorio, codigo_grupo, nome_grupo, codigo_categoria,
				nome_categoria, codigo_principio_ativo, nome_principio_ativo,
				ativo, percentual_desconto
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
			ON CONFLICT (codigo)
			DO UPDATE SET
				nome = EXCLUDED.nome,
				valor_venda = EXCLUDED.valor_venda,
				valor_custo = EXCLUDED.valor_custo,
				valor_custo_medio = EXCLUDED.valor_custo_medio,
				quantidade_estoque = EXCLUDED.quantidade_estoque,
				unidade = EXCLUDED.unidade,
				codigo_barras = EXCLUDED.codigo_barras,
				codigo_laboratorio = EXCLUDED.codigo_laboratorio,
				nome_laboratorio = EXCLUDED.nome_laboratorio,
				codigo_grupo = EXCLUDED.codigo_grupo,
				nome_grupo = EXCLUDED.nome_grupo,
				codigo_categoria = EXCLUDED.codigo_categoria,
				nome_categoria = EXCLUDED.nome_categoria,
				codigo_principio_ativo = EXCLUDED.codigo_principio_ativo,
				nome_principio_ativo = EXCLUDED.nome_principio_ativo,
				ativo = EXCLUDED.ativo,
				percentual_desconto = EXCLUDED.percentual_desconto
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, produto := range produtos {
			_, err := stmt.ExecContext(
				ctx,
				produto.Codigo,
				produto.Nome,
				produto.ValorVenda,
				produto.ValorCusto,
				produto.ValorCustoMedio,
				produto.QuantidadeEstoque,
				produto.Unidade,
				produto.CodigoBarras,
				produto.CodigoLaboratorio,
				produto.NomeLaboratorio,
				produto.CodigoGrupo,
				produto.NomeGrupo,
				produto.CodigoCategoria,
				produto.NomeCategoria,
				produto.CodigoPrincipioAtivo,
				produto.NomePrincipioAtivo,
				produto.Ativo,
				produto.PercentualDesconto,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert produto %s: %w", produto.Codigo, err)
			}
		}

		return nil
	})
}
