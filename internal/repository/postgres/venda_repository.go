// internal/repository/postgres/venda_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/farmaponte/trier-integration/internal/domain"
)

type vendaRepository struct {
	db *DB
}

func NewVendaRepository(db *DB) *vendaRepository {
	return &vendaRepository{db: db}
}

// UpsertBatch writes one fetched page of sales in a single transaction,
// deduplicating on the natural key. Postgres treats NULLs in the unique
// constraint as distinct, so rows with missing key fields accumulate instead
// of updating; same behavior as the upstream integration.
func (r *vendaRepository) UpsertBatch(ctx context.Context, vendas []*domain.Venda) error {
	if len(vendas) == 0 {
		return nil
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO trier_vendas (
				numero_nota, data_emissao, hora_emissao, codigo_vendedor,
				codigo_cliente, codigo_produto, quantidade_produtos,
				valor_total_bruto, valor_total_liquido, valor_total_custo,
				parceiro, entrega
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (numero_nota, codigo_produto, data_emissao, hora_emissao)
			DO UPDATE SET
				codigo_vendedor = EXCLUDED.codigo_vendedor,
				codigo_cliente = EXCLUDED.codigo_cliente,
				quantidade_produtos = EXCLUDED.quantidade_produtos,
				valor_total_bruto = EXCLUDED.valor_total_bruto,
				valor_total_liquido = EXCLUDED.valor_total_liquido,
				valor_total_custo = EXCLUDED.valor_total_custo,
				parceiro = EXCLUDED.parceiro,
				entrega = EXCLUDED.entrega
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, venda := range vendas {
			_, err := stmt.ExecContext(
				ctx,
				venda.NumeroNota,
				venda.DataEmissao,
				venda.HoraEmissao,
				venda.CodigoVendedor,
				venda.CodigoCliente,
				venda.CodigoProduto,
				venda.QuantidadeProdutos,
				venda.ValorTotalBruto,
				venda.ValorTotalLiquido,
				venda.ValorTotalCusto,
				venda.Parceiro,
				venda.Entrega,
			)
			if err != nil {
				return fmt.Errorf("failed to upsert venda: %w", err)
			}
		}

		return nil
	})
}
