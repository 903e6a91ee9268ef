package translator

import (
	"context"

	"basegraph.app/commitrelay/internal/model"
)

// Translator recognizes one inbound webhook shape and decodes it into commit records.
// Implementations must be safe for concurrent use.
type Translator interface {
	Name() string
	CanProcess(msg model.InboundMessage) bool
	Execute(ctx context.Context, msg model.InboundMessage) model.TranslationResult
}
