package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/farmaponte/trier-integration/internal/domain"
	"github.com/farmaponte/trier-integration/internal/trier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(records []trier.Record) FetchFunc {
	return func(ctx context.Context) ([]trier.Record, error) {
		return records, nil
	}
}

func failing(err error) FetchFunc {
	return func(ctx context.Context) ([]trier.Record, error) {
		return nil, err
	}
}

func TestBuildPayloadEndToEnd(t *testing.T) {
	produtos := []trier.Record{
		{
			"codigo":             "P1",
			"codigoBarras":       "B1",
			"nome":               "Aspirin",
			"codigoGrupo":        "1",
			"nomeGrupo":          "Meds",
			"codigoDepartamento": "10",
			"nomeDepartamento":   "Pharma",
			"codigoCategoria":    "100",
			"nomeCategoria":      "Analgesics",
		},
	}
	estoques := []trier.Record{
		{"codigoProduto": "P1", "quantidadeEstoque": "5"},
	}

	payload, err := BuildPayload(context.Background(), fixed(produtos), fixed(estoques), "F01", "E01")
	require.NoError(t, err)

	assert.Equal(t, "E01", payload.Empresa)
	assert.Equal(t, "F01", payload.Filial)
	require.Len(t, payload.Groups, 1)

	group := payload.Groups[0]
	assert.Equal(t, "1", group.ID)
	assert.Equal(t, "Meds", group.Name)
	require.Len(t, group.Departments, 1)

	dept := group.Departments[0]
	assert.Equal(t, "10", dept.ID)
	assert.Equal(t, "Pharma", dept.Name)
	require.NotNil(t, dept.NumericID)
	assert.Equal(t, "10", *dept.NumericID)
	require.Len(t, dept.Categories, 1)

	cat := dept.Categories[0]
	assert.Equal(t, "1-10-100", cat.ID)
	assert.Equal(t, "Analgesics", cat.Name)
	assert.Equal(t, 1, cat.ItemsCount)
	assert.Equal(t, 5.0, cat.TotalQuantity)
	assert.Equal(t, "pendente", cat.Status)
	require.Len(t, cat.Products, 1)

	product := cat.Products[0]
	assert.Equal(t, "B1", product.Code)
	assert.Equal(t, "Aspirin", product.Name)
	assert.Equal(t, 5.0, product.Quantity)
}

func TestBuildPayloadExcludesNonPositiveStock(t *testing.T) {
	produtos := []trier.Record{
		{"codigo": "ZERO", "nome": "Zero"},
		{"codigo": "NEG", "nome": "Negative"},
		{"codigo": "NOSTOCK", "nome": "No stock record"},
		{"codigo": "GARBAGE", "nome": "Unparsable quantity"},
		{"codigo": "OK", "nome": "In stock"},
	}
	estoques := []trier.Record{
		{"codigoProduto": "ZERO", "quantidadeEstoque": 0.0},
		{"codigoProduto": "NEG", "quantidadeEstoque": -3.0},
		{"codigoProduto": "GARBAGE", "quantidadeEstoque": "n/a"},
		{"codigoProduto": "OK", "quantidadeEstoque": 2.0},
	}

	payload, err := BuildPayload(context.Background(), fixed(produtos), fixed(estoques), "", "")
	require.NoError(t, err)

	require.Len(t, payload.Groups, 1)
	products := payload.Groups[0].Departments[0].Categories[0].Products
	require.Len(t, products, 1)
	assert.Equal(t, "OK", products[0].Code)
}

func TestBuildPayloadSkipsRecordsWithoutCode(t *testing.T) {
	produtos := []trier.Record{
		{"nome": "No code at all"},
		{"codigo": "   ", "nome": "Blank code"},
		{"codigo": nil, "nome": "Nil code"},
	}
	estoques := []trier.Record{
		{"codigoProduto": "", "quantidadeEstoque": 9.0},
	}

	payload, err := BuildPayload(context.Background(), fixed(produtos), fixed(estoques), "", "")
	require.NoError(t, err)
	assert.Empty(t, payload.Groups)
	assert.NotNil(t, payload.Groups)
}

func TestBuildPayloadSeparateCategoriesSameDepartment(t *testing.T) {
	produtos := []trier.Record{
		{"codigo": "A", "codigoGrupo": "1", "codigoDepartamento": "10", "codigoCategoria": "100"},
		{"codigo": "B", "codigoGrupo": "1", "codigoDepartamento": "10", "codigoCategoria": "200"},
	}
	estoques := []trier.Record{
		{"codigoProduto": "A", "quantidadeEstoque": 1.0},
		{"codigoProduto": "B", "quantidadeEstoque": 1.0},
	}

	payload, err := BuildPayload(context.Background(), fixed(produtos), fixed(estoques), "", "")
	require.NoError(t, err)

	require.Len(t, payload.Groups, 1)
	require.Len(t, payload.Groups[0].Departments, 1)

	categories := payload.Groups[0].Departments[0].Categories
	require.Len(t, categories, 2)
	assert.Equal(t, "1-10-100", categories[0].ID)
	assert.Equal(t, "1-10-200", categories[1].ID)
}

func TestBuildPayloadCategoryTotals(t *testing.T) {
	produtos := []trier.Record{
		{"codigo": "A", "codigoGrupo": "1", "codigoCategoria": "100"},
		{"codigo": "B", "codigoGrupo": "1", "codigoCategoria": "100"},
		{"codigo": "C", "codigoGrupo": "1", "codigoCategoria": "100"},
	}
	estoques := []trier.Record{
		{"codigoProduto": "A", "quantidadeEstoque": "2,5"},
		{"codigoProduto": "B", "quantidadeEstoque": 4.0},
		{"codigoProduto": "C", "quantidadeEstoque": "1"},
	}

	payload, err := BuildPayload(context.Background(), fixed(produtos), fixed(estoques), "", "")
	require.NoError(t, err)

	cat := payload.Groups[0].Departments[0].Categories[0]
	assert.Equal(t, 3, cat.ItemsCount)
	assert.Len(t, cat.Products, cat.ItemsCount)

	var sum float64
	for _, p := range cat.Products {
		sum += p.Quantity
	}
	assert.Equal(t, sum, cat.TotalQuantity)
	assert.Equal(t, 7.5, cat.TotalQuantity)
}

func TestBuildPayloadGroupsSortedNumerically(t *testing.T) {
	produtos := []trier.Record{
		{"codigo": "A", "codigoGrupo": "10"},
		{"codigo": "B", "codigoGrupo": "2"},
		{"codigo": "C", "codigoGrupo": "abc"},
		{"codigo": "D", "codigoGrupo": "1"},
	}
	estoques := []trier.Record{
		{"codigoProduto": "A", "quantidadeEstoque": 1.0},
		{"codigoProduto": "B", "quantidadeEstoque": 1.0},
		{"codigoProduto": "C", "quantidadeEstoque": 1.0},
		{"codigoProduto": "D", "quantidadeEstoque": 1.0},
	}

	payload, err := BuildPayload(context.Background(), fixed(produtos), fixed(estoques), "", "")
	require.NoError(t, err)

	ids := make([]string, 0, len(payload.Groups))
	for _, g := range payload.Groups {
		ids = append(ids, g.ID)
	}
	// "abc" sorts as 0, ahead of every numeric id
	assert.Equal(t, []string{"abc", "1", "2", "10"}, ids)
}

func TestBuildPayloadDefaults(t *testing.T) {
	produtos := []trier.Record{
		{"codigo": "P9"},
	}
	estoques := []trier.Record{
		{"codigoProduto": "P9", "quantidadeEstoque": 1.0},
	}

	payload, err := BuildPayload(context.Background(), fixed(produtos), fixed(estoques), "", "")
	require.NoError(t, err)

	group := payload.Groups[0]
	assert.Equal(t, "0", group.ID)
	assert.Equal(t, "Grupo 0", group.Name)

	dept := group.Departments[0]
	assert.Equal(t, "GERAL", dept.ID)
	assert.Equal(t, "GERAL", dept.Name)
	assert.Nil(t, dept.NumericID)

	cat := dept.Categories[0]
	assert.Equal(t, "0-GERAL-GERAL", cat.ID)
	assert.Equal(t, "GERAL", cat.Name)
	assert.Nil(t, cat.NumericID)

	product := cat.Products[0]
	assert.Equal(t, "P9", product.Code)
	assert.Equal(t, "Produto P9", product.Name)
}

func TestBuildPayloadNumericCodesFromJSON(t *testing.T) {
	// JSON decoding hands numeric codes over as float64
	produtos := []trier.Record{
		{"codigo": 123.0, "codigoGrupo": 4.0},
	}
	estoques := []trier.Record{
		{"codigoProduto": 123.0, "quantidadeEstoque": 8.0},
	}

	payload, err := BuildPayload(context.Background(), fixed(produtos), fixed(estoques), "", "")
	require.NoError(t, err)

	require.Len(t, payload.Groups, 1)
	assert.Equal(t, "4", payload.Groups[0].ID)
	product := payload.Groups[0].Departments[0].Categories[0].Products[0]
	assert.Equal(t, "123", product.Code)
	assert.Equal(t, "Produto 123", product.Name)
}

func TestBuildPayloadDuplicateStockLastWriteWins(t *testing.T) {
	produtos := []trier.Record{
		{"codigo": "P1"},
	}
	estoques := []trier.Record{
		{"codigoProduto": "P1", "quantidadeEstoque": 3.0},
		{"codigoProduto": "P1", "quantidadeEstoque": 7.0},
	}

	payload, err := BuildPayload(context.Background(), fixed(produtos), fixed(estoques), "", "")
	require.NoError(t, err)
	assert.Equal(t, 7.0, payload.Groups[0].Departments[0].Categories[0].TotalQuantity)
}

func TestBuildPayloadDeterministic(t *testing.T) {
	produtos := []trier.Record{
		{"codigo": "A", "codigoGrupo": "2", "codigoCategoria": "20"},
		{"codigo": "B", "codigoGrupo": "1", "codigoCategoria": "10"},
	}
	estoques := []trier.Record{
		{"codigoProduto": "A", "quantidadeEstoque": 1.5},
		{"codigoProduto": "B", "quantidadeEstoque": "2,5"},
	}

	first, err := BuildPayload(context.Background(), fixed(produtos), fixed(estoques), "F", "E")
	require.NoError(t, err)
	second, err := BuildPayload(context.Background(), fixed(produtos), fixed(estoques), "F", "E")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildPayloadFetchFailure(t *testing.T) {
	upstream := errors.New("connection refused")
	ok := fixed([]trier.Record{{"codigo": "A"}})

	var payload *domain.AuditPayload

	payload, err := BuildPayload(context.Background(), failing(upstream), ok, "", "")
	assert.Nil(t, payload)
	assert.ErrorIs(t, err, upstream)

	payload, err = BuildPayload(context.Background(), ok, failing(upstream), "", "")
	assert.Nil(t, payload)
	assert.ErrorIs(t, err, upstream)
}
