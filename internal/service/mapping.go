package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/farmaponte/trier-integration/internal/domain"
	"github.com/farmaponte/trier-integration/internal/trier"
	"github.com/shopspring/decimal"
)

// Mapping from raw Trier records to database rows. Unlike the audit
// aggregator, unparsable values map to NULL here, not zero: the local copy
// must not invent data the ERP never sent.

func mapProduto(record trier.Record) *domain.Produto {
	return &domain.Produto{
		Codigo:               keyString(record["codigo"]),
		Nome:                 optString(record["nome"]),
		ValorVenda:           toDecimal(record["valorVenda"]),
		ValorCusto:           toDecimal(record["valorCusto"]),
		ValorCustoMedio:      toDecimal(record["valorCustoMedio"]),
		QuantidadeEstoque:    toDecimal(record["quantidadeEstoque"]),
		Unidade:              optString(record["unidade"]),
		CodigoBarras:         optString(record["codigoBarras"]),
		CodigoLaboratorio:    optString(record["codigoLaboratorio"]),
		NomeLaboratorio:      optString(record["nomeLaboratorio"]),
		CodigoGrupo:          optString(record["codigoGrupo"]),
		NomeGrupo:            optString(record["nomeGrupo"]),
		CodigoCategoria:      optString(record["codigoCategoria"]),
		NomeCategoria:        optString(record["nomeCategoria"]),
		CodigoPrincipioAtivo: optString(record["codigoPrincipioAtivo"]),
		NomePrincipioAtivo:   optString(record["nomePrincipioAtivo"]),
		Ativo:                toBool(record["ativo"]),
		PercentualDesconto:   toDecimal(record["percentualDesconto"]),
	}
}

func mapEstoque(record trier.Record) *domain.Estoque {
	return &domain.Estoque{
		CodigoProduto:      keyString(record["codigoProduto"]),
		QuantidadeEstoque:  toDecimal(record["quantidadeEstoque"]),
		ValorCustoMedio:    toDecimal(record["valorCustoMedio"]),
		DataUltimaEntrada:  parseDate(record["dataUltimaEntrada"]),
		ValorUltimaEntrada: toDecimal(record["valorUltimaEntrada"]),
	}
}

func mapVenda(record trier.Record) *domain.Venda {
	return &domain.Venda{
		NumeroNota:         optString(record["numeroNota"]),
		DataEmissao:        parseDate(record["dataEmissao"]),
		HoraEmissao:        parseTimeOfDay(record["horaEmissao"]),
		CodigoVendedor:     optString(record["codigoVendedor"]),
		CodigoCliente:      optString(record["codigoCliente"]),
		CodigoProduto:      optString(record["codigoProduto"]),
		QuantidadeProdutos: toDecimal(record["quantidadeProdutos"]),
		ValorTotalBruto:    toDecimal(record["valorTotalBruto"]),
		ValorTotalLiquido:  toDecimal(record["valorTotalLiquido"]),
		ValorTotalCusto:    toDecimal(record["valorTotalCusto"]),
		Parceiro:           optString(record["parceiro"]),
		Entrega:            optString(record["entrega"]),
	}
}

// keyString renders a natural-key field as a string, empty when absent.
// Numeric codes come through JSON as float64, so whole numbers are formatted
// without a fractional part.
func keyString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func optString(value any) *string {
	if value == nil {
		return nil
	}
	s := keyString(value)
	if s == "" {
		return nil
	}
	return &s
}

func toDecimal(value any) decimal.NullDecimal {
	switch v := value.(type) {
	case nil:
		return decimal.NullDecimal{}
	case float64:
		return decimal.NewNullDecimal(decimal.NewFromFloat(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.NullDecimal{}
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.NullDecimal{}
		}
		return decimal.NewNullDecimal(d)
	default:
		d, err := decimal.NewFromString(fmt.Sprint(v))
		if err != nil {
			return decimal.NullDecimal{}
		}
		return decimal.NewNullDecimal(d)
	}
}

func toBool(value any) *bool {
	if value == nil {
		return nil
	}
	if b, ok := value.(bool); ok {
		return &b
	}

	switch strings.ToLower(strings.TrimSpace(fmt.Sprint(value))) {
	case "s", "sim", "true", "1", "t":
		b := true
		return &b
	case "n", "nao", "false", "0", "f":
		b := false
		return &b
	default:
		return nil
	}
}

// parseDate accepts YYYY-MM-DD, truncating ISO datetimes at the 'T'.
func parseDate(value any) *time.Time {
	s := keyString(value)
	if s == "" {
		return nil
	}
	if idx := strings.Index(s, "T"); idx >= 0 {
		s = s[:idx]
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// parseTimeOfDay normalizes HH:MM[:SS] values (or the time part of an ISO
// datetime) to HH:MM:SS.
func parseTimeOfDay(value any) *string {
	s := keyString(value)
	if s == "" {
		return nil
	}
	if idx := strings.Index(s, "T"); idx >= 0 {
		s = s[idx+1:]
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			normalized := t.Format("15:04:05")
			return &normalized
		}
	}
	return nil
}
