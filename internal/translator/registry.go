package translator

import (
	"errors"
	"reflect"
	"sync"

	"basegraph.app/commitrelay/internal/model"
)

var ErrNoTranslator = errors.New("no translator can process message")

// Registry holds the translators offered an inbound message, in registration order.
type Registry struct {
	mu          sync.RWMutex
	translators []Translator
}

func NewRegistry(translators ...Translator) *Registry {
	r := &Registry{}
	for _, t := range translators {
		r.Register(t)
	}
	return r
}

// Register appends t. Nil translators, including typed nil pointers, are skipped.
func (r *Registry) Register(t Translator) {
	if isNil(t) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.translators = append(r.translators, t)
}

// Select returns the first registered translator whose CanProcess accepts msg.
func (r *Registry) Select(msg model.InboundMessage) (Translator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.translators {
		if t.CanProcess(msg) {
			return t, nil
		}
	}
	return nil, ErrNoTranslator
}

func (r *Registry) Translators() []Translator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Translator(nil), r.translators...)
}

func isNil(t Translator) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
