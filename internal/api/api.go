// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/farmaponte/trier-integration/internal/api/handlers"
	"github.com/farmaponte/trier-integration/internal/api/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	SyncService  handlers.SyncRunner
	AuditService handlers.AuditBuilder
}

// NewRouter wires the HTTP surface. Route paths match the ones the audit
// front end already calls, so there is no /api prefix.
func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Logger(),
		middleware.Recovery(),
	)

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
	if allowAll || len(normalizedOrigins) == 0 {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		corsConfig.AllowOrigins = normalizedOrigins
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if services != nil {
		if services.SyncService != nil {
			syncHandler := handlers.NewSyncHandler(services.SyncService)
			syncGroup := router.Group("/sync")
			{
				syncGroup.POST("/produtos", syncHandler.SyncProdutos)
				syncGroup.POST("/estoque", syncHandler.SyncEstoque)
				syncGroup.POST("/vendas", syncHandler.SyncVendas)
			}
		}

		if services.AuditService != nil {
			auditHandler := handlers.NewAuditHandler(services.AuditService)
			router.GET("/audit/bootstrap", auditHandler.Bootstrap)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
