package router

import (
	"github.com/gin-gonic/gin"

	"basegraph.app/commitrelay/internal/http/handler"
)

func SchemaRouter(rg *gin.RouterGroup, h *handler.SchemaHandler) {
	rg.GET("/commit", h.CommitRecord)
}
