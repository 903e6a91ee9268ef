package router

import (
	"github.com/gin-gonic/gin"

	"basegraph.app/commitrelay/internal/http/handler/webhook"
)

func WebhookRouter(rg *gin.RouterGroup, h *webhook.CommitWebhookHandler) {
	rg.POST("/commits", h.HandleEvent)
}
