package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/farmaponte/trier-integration/internal/domain"
	"github.com/farmaponte/trier-integration/internal/trier"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SyncRunner is the slice of the sync service these handlers need.
type SyncRunner interface {
	SyncProdutos(ctx context.Context, pageSize int) (*domain.SyncResult, error)
	SyncEstoque(ctx context.Context, codigoProduto string, pageSize int) (*domain.SyncResult, error)
	SyncVendas(ctx context.Context, dataInicial, dataFinal string, pageSize int) (*domain.SyncResult, error)
}

type SyncHandler struct {
	service SyncRunner
}

func NewSyncHandler(service SyncRunner) *SyncHandler {
	return &SyncHandler{service: service}
}

// SyncProdutos serves POST /sync/produtos.
func (h *SyncHandler) SyncProdutos(c *gin.Context) {
	pageSize, ok := parsePageSize(c)
	if !ok {
		return
	}

	result, err := h.service.SyncProdutos(c.Request.Context(), pageSize)
	if err != nil {
		syncError(c, "sync produtos", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SyncEstoque serves POST /sync/estoque.
func (h *SyncHandler) SyncEstoque(c *gin.Context) {
	pageSize, ok := parsePageSize(c)
	if !ok {
		return
	}

	result, err := h.service.SyncEstoque(c.Request.Context(), c.Query("codigo_produto"), pageSize)
	if err != nil {
		syncError(c, "sync estoque", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SyncVendas serves POST /sync/vendas with optional YYYY-MM-DD bounds.
func (h *SyncHandler) SyncVendas(c *gin.Context) {
	pageSize, ok := parsePageSize(c)
	if !ok {
		return
	}

	result, err := h.service.SyncVendas(
		c.Request.Context(),
		c.Query("data_inicial"),
		c.Query("data_final"),
		pageSize,
	)
	if err != nil {
		syncError(c, "sync vendas", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func syncError(c *gin.Context, op string, err error) {
	var upstream *trier.UpstreamError
	if errors.As(err, &upstream) {
		log.Error().Err(err).Str("endpoint", upstream.Endpoint).Msgf("%s: trier unavailable", op)
		c.JSON(http.StatusBadGateway, gin.H{"error": "falha ao consultar o Trier"})
		return
	}
	log.Error().Err(err).Msgf("%s failed", op)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno na sincronizacao"})
}
