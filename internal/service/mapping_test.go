package service

import (
	"testing"
	"time"

	"github.com/farmaponte/trier-integration/internal/trier"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapProduto(t *testing.T) {
	record := trier.Record{
		"codigo":             123.0,
		"nome":               "Dipirona 500mg",
		"valorVenda":         12.5,
		"valorCusto":         "7.80",
		"quantidadeEstoque":  "n/a",
		"codigoBarras":       "7891234567890",
		"ativo":              "S",
		"percentualDesconto": nil,
	}

	produto := mapProduto(record)

	assert.Equal(t, "123", produto.Codigo)
	require.NotNil(t, produto.Nome)
	assert.Equal(t, "Dipirona 500mg", *produto.Nome)

	require.True(t, produto.ValorVenda.Valid)
	assert.True(t, produto.ValorVenda.Decimal.Equal(decimal.NewFromFloat(12.5)))
	require.True(t, produto.ValorCusto.Valid)
	assert.True(t, produto.ValorCusto.Decimal.Equal(decimal.RequireFromString("7.80")))

	// unparsable and absent numerics map to NULL, not zero
	assert.False(t, produto.QuantidadeEstoque.Valid)
	assert.False(t, produto.PercentualDesconto.Valid)

	require.NotNil(t, produto.Ativo)
	assert.True(t, *produto.Ativo)
	assert.Nil(t, produto.CodigoGrupo)
}

func TestMapProdutoAtivoVariants(t *testing.T) {
	tests := []struct {
		raw  any
		want *bool
	}{
		{"S", boolPtr(true)},
		{"sim", boolPtr(true)},
		{"TRUE", boolPtr(true)},
		{"1", boolPtr(true)},
		{"N", boolPtr(false)},
		{"nao", boolPtr(false)},
		{"0", boolPtr(false)},
		{false, boolPtr(false)},
		{"talvez", nil},
		{nil, nil},
	}

	for _, tt := range tests {
		got := mapProduto(trier.Record{"codigo": "X", "ativo": tt.raw}).Ativo
		if tt.want == nil {
			assert.Nil(t, got, "ativo %v", tt.raw)
		} else {
			require.NotNil(t, got, "ativo %v", tt.raw)
			assert.Equal(t, *tt.want, *got, "ativo %v", tt.raw)
		}
	}
}

func TestMapEstoque(t *testing.T) {
	record := trier.Record{
		"codigoProduto":      "P1",
		"quantidadeEstoque":  "150.250",
		"valorCustoMedio":    3.33,
		"dataUltimaEntrada":  "2024-05-01T00:00:00",
		"valorUltimaEntrada": "",
	}

	estoque := mapEstoque(record)

	assert.Equal(t, "P1", estoque.CodigoProduto)
	require.True(t, estoque.QuantidadeEstoque.Valid)
	assert.True(t, estoque.QuantidadeEstoque.Decimal.Equal(decimal.RequireFromString("150.250")))

	require.NotNil(t, estoque.DataUltimaEntrada)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), *estoque.DataUltimaEntrada)

	assert.False(t, estoque.ValorUltimaEntrada.Valid)
}

func TestMapEstoqueBadDate(t *testing.T) {
	estoque := mapEstoque(trier.Record{"codigoProduto": "P1", "dataUltimaEntrada": "01/05/2024"})
	assert.Nil(t, estoque.DataUltimaEntrada)
}

func TestMapVenda(t *testing.T) {
	record := trier.Record{
		"numeroNota":         "NF-1001",
		"dataEmissao":        "2024-06-15",
		"horaEmissao":        "14:30",
		"codigoVendedor":     7.0,
		"codigoProduto":      "P1",
		"quantidadeProdutos": 2.0,
		"valorTotalBruto":    "45.90",
	}

	venda := mapVenda(record)

	require.NotNil(t, venda.NumeroNota)
	assert.Equal(t, "NF-1001", *venda.NumeroNota)

	require.NotNil(t, venda.DataEmissao)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), *venda.DataEmissao)

	require.NotNil(t, venda.HoraEmissao)
	assert.Equal(t, "14:30:00", *venda.HoraEmissao)

	require.NotNil(t, venda.CodigoVendedor)
	assert.Equal(t, "7", *venda.CodigoVendedor)

	require.True(t, venda.ValorTotalBruto.Valid)
	assert.True(t, venda.ValorTotalBruto.Decimal.Equal(decimal.RequireFromString("45.90")))
	assert.False(t, venda.ValorTotalCusto.Valid)
}

func TestParseTimeOfDayFromISODatetime(t *testing.T) {
	got := parseTimeOfDay("2024-06-15T08:05:30")
	require.NotNil(t, got)
	assert.Equal(t, "08:05:30", *got)

	assert.Nil(t, parseTimeOfDay("25:99"))
	assert.Nil(t, parseTimeOfDay(""))
}

func boolPtr(b bool) *bool { return &b }
