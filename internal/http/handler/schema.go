package handler

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"

	"basegraph.app/commitrelay/internal/model"
)

// SchemaHandler publishes the JSON Schema of the records written to the commit stream.
type SchemaHandler struct {
	once   sync.Once
	schema *jsonschema.Schema
}

func NewSchemaHandler() *SchemaHandler {
	return &SchemaHandler{}
}

func (h *SchemaHandler) CommitRecord(c *gin.Context) {
	h.once.Do(func() {
		reflector := jsonschema.Reflector{
			AllowAdditionalProperties: false,
			DoNotReference:            true,
		}
		h.schema = reflector.Reflect(&model.CommitRecord{})
	})
	c.JSON(http.StatusOK, h.schema)
}
