// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produto mirrors a row of trier_produtos, the local copy of the Trier
// product catalog keyed by the ERP product code.
type Produto struct {
	Codigo               string              `json:"codigo" db:"codigo"`
	Nome                 *string             `json:"nome" db:"nome"`
	ValorVenda           decimal.NullDecimal `json:"valor_venda" db:"valor_venda"`
	ValorCusto           decimal.NullDecimal `json:"valor_custo" db:"valor_custo"`
	ValorCustoMedio      decimal.NullDecimal `json:"valor_custo_medio" db:"valor_custo_medio"`
	QuantidadeEstoque    decimal.NullDecimal `json:"quantidade_estoque" db:"quantidade_estoque"`
	Unidade              *string             `json:"unidade" db:"unidade"`
	CodigoBarras         *string             `json:"codigo_barras" db:"codigo_barras"`
	CodigoLaboratorio    *string             `json:"codigo_laboratorio" db:"codigo_laboratorio"`
	NomeLaboratorio      *string             `json:"nome_laboratorio" db:"nome_laboratorio"`
	CodigoGrupo          *string             `json:"codigo_grupo" db:"codigo_grupo"`
	NomeGrupo            *string             `json:"nome_grupo" db:"nome_grupo"`
	CodigoCategoria      *string             `json:"codigo_categoria" db:"codigo_categoria"`
	NomeCategoria        *string             `json:"nome_categoria" db:"nome_categoria"`
	CodigoPrincipioAtivo *string             `json:"codigo_principio_ativo" db:"codigo_principio_ativo"`
	NomePrincipioAtivo   *string             `json:"nome_principio_ativo" db:"nome_principio_ativo"`
	Ativo                *bool               `json:"ativo" db:"ativo"`
	PercentualDesconto   decimal.NullDecimal `json:"percentual_desconto" db:"percentual_desconto"`
}

// Estoque mirrors a row of trier_estoques, one stock level per product code.
type Estoque struct {
	CodigoProduto      string              `json:"codigo_produto" db:"codigo_produto"`
	QuantidadeEstoque  decimal.NullDecimal `json:"quantidade_estoque" db:"quantidade_estoque"`
	ValorCustoMedio    decimal.NullDecimal `json:"valor_custo_medio" db:"valor_custo_medio"`
	DataUltimaEntrada  *time.Time          `json:"data_ultima_entrada" db:"data_ultima_entrada"`
	ValorUltimaEntrada decimal.NullDecimal `json:"valor_ultima_entrada" db:"valor_ultima_entrada"`
}

// Venda mirrors a row of trier_vendas. The natural key is
// (numero_nota, codigo_produto, data_emissao, hora_emissao).
type Venda struct {
	NumeroNota         *string             `json:"numero_nota" db:"numero_nota"`
	DataEmissao        *time.Time          `json:"data_emissao" db:"data_emissao"`
	HoraEmissao        *string             `json:"hora_emissao" db:"hora_emissao"`
	CodigoVendedor     *string             `json:"codigo_vendedor" db:"codigo_vendedor"`
	CodigoCliente      *string             `json:"codigo_cliente" db:"codigo_cliente"`
	CodigoProduto      *string             `json:"codigo_produto" db:"codigo_produto"`
	QuantidadeProdutos decimal.NullDecimal `json:"quantidade_produtos" db:"quantidade_produtos"`
	ValorTotalBruto    decimal.NullDecimal `json:"valor_total_bruto" db:"valor_total_bruto"`
	ValorTotalLiquido  decimal.NullDecimal `json:"valor_total_liquido" db:"valor_total_liquido"`
	ValorTotalCusto    decimal.NullDecimal `json:"valor_total_custo" db:"valor_total_custo"`
	Parceiro           *string             `json:"parceiro" db:"parceiro"`
	Entrega            *string             `json:"entrega" db:"entrega"`
}

// SyncResult reports how many upstream records a sync run walked through,
// including the ones skipped for missing natural keys.
type SyncResult struct {
	RegistrosProcessados int `json:"registros_processados"`
}
