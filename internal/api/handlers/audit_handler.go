package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/farmaponte/trier-integration/internal/domain"
	"github.com/farmaponte/trier-integration/internal/trier"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AuditBuilder is the slice of the audit service this handler needs.
type AuditBuilder interface {
	Bootstrap(ctx context.Context, filial, empresa string, pageSize int) (*domain.AuditPayload, error)
}

type AuditHandler struct {
	service AuditBuilder
}

func NewAuditHandler(service AuditBuilder) *AuditHandler {
	return &AuditHandler{service: service}
}

// Bootstrap serves GET /audit/bootstrap. Upstream fetch failures map to 502,
// anything else to 500; no partial payload is ever returned.
func (h *AuditHandler) Bootstrap(c *gin.Context) {
	filial := c.Query("filial")
	empresa := c.Query("empresa")

	pageSize, ok := parsePageSize(c)
	if !ok {
		return
	}

	payload, err := h.service.Bootstrap(c.Request.Context(), filial, empresa, pageSize)
	if err != nil {
		var upstream *trier.UpstreamError
		if errors.As(err, &upstream) {
			log.Error().Err(err).Str("endpoint", upstream.Endpoint).Msg("audit bootstrap: trier unavailable")
			c.JSON(http.StatusBadGateway, gin.H{"error": "falha ao consultar o Trier"})
			return
		}
		log.Error().Err(err).Msg("audit bootstrap failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno ao montar auditoria"})
		return
	}

	c.JSON(http.StatusOK, payload)
}

// parsePageSize reads the optional page_size query param (must be >= 1).
// It writes the 400 response itself when the value is invalid.
func parsePageSize(c *gin.Context) (int, bool) {
	raw := c.Query("page_size")
	if raw == "" {
		return 0, true
	}
	pageSize, err := strconv.Atoi(raw)
	if err != nil || pageSize < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page_size deve ser um inteiro >= 1"})
		return 0, false
	}
	return pageSize, true
}
