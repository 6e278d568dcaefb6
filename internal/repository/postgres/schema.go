package postgres

import (
	"context"
	"fmt"
)

// Table layout mirrors the Trier integration schema: one row per product,
// one stock level per product, sales deduplicated on their natural key.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS trier_produtos (
		codigo                 VARCHAR(50) PRIMARY KEY,
		nome                   VARCHAR(255),
		valor_venda            NUMERIC(14,2),
		valor_custo            NUMERIC(14,2),
		valor_custo_medio      NUMERIC(14,2),
		quantidade_estoque     NUMERIC(14,3),
		unidade                VARCHAR(50),
		codigo_barras          VARCHAR(120),
		codigo_laboratorio     VARCHAR(50),
		nome_laboratorio       VARCHAR(255),
		codigo_grupo           VARCHAR(50),
		nome_grupo             VARCHAR(255),
		codigo_categoria       VARCHAR(50),
		nome_categoria         VARCHAR(255),
		codigo_principio_ativo VARCHAR(50),
		nome_principio_ativo   VARCHAR(255),
		ativo                  BOOLEAN,
		percentual_desconto    NUMERIC(7,2)
	)`,
	`CREATE TABLE IF NOT EXISTS trier_estoques (
		codigo_produto       VARCHAR(50) PRIMARY KEY,
		quantidade_estoque   NUMERIC(14,3),
		valor_custo_medio    NUMERIC(14,2),
		data_ultima_entrada  DATE,
		valor_ultima_entrada NUMERIC(14,2)
	)`,
	`CREATE TABLE IF NOT EXISTS trier_vendas (
		id                  BIGSERIAL PRIMARY KEY,
		numero_nota         VARCHAR(50),
		data_emissao        DATE,
		hora_emissao        TIME,
		codigo_vendedor     VARCHAR(50),
		codigo_cliente      VARCHAR(50),
		codigo_produto      VARCHAR(50),
		quantidade_produtos NUMERIC(14,3),
		valor_total_bruto   NUMERIC(14,2),
		valor_total_liquido NUMERIC(14,2),
		valor_total_custo   NUMERIC(14,2),
		parceiro            VARCHAR(120),
		entrega             VARCHAR(120),
		CONSTRAINT uq_trier_venda UNIQUE (numero_nota, codigo_produto, data_emissao, hora_emissao)
	)`,
}

// EnsureSchema creates the integration tables when they do not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
