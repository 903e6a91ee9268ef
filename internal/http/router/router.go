package router

import (
	"github.com/gin-gonic/gin"

	"basegraph.app/commitrelay/internal/http/handler"
	"basegraph.app/commitrelay/internal/http/handler/webhook"
	"basegraph.app/commitrelay/internal/service"
)

type RouterConfig struct {
	MaxBodyBytes    int64
	TraceHeaderName string
}

func SetupRoutes(router *gin.Engine, ingest service.CommitIngestService, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	commitHandler := webhook.NewCommitWebhookHandler(ingest, cfg.MaxBodyBytes, cfg.TraceHeaderName)
	WebhookRouter(router.Group("/webhooks"), commitHandler)

	v1 := router.Group("/api/v1")
	{
		schemaHandler := handler.NewSchemaHandler()
		SchemaRouter(v1.Group("/schema"), schemaHandler)
	}
}
