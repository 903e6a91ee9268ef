package model

// InboundMessage is the envelope the host hands to translators: the raw webhook body and
// its headers. Header names are matched exactly as stored.
type InboundMessage struct {
	Body    string
	Headers map[string][]string
}

// NewInboundMessage copies headers so the message cannot be changed through the caller's map.
func NewInboundMessage(body string, headers map[string][]string) InboundMessage {
	copied := make(map[string][]string, len(headers))
	for name, values := range headers {
		copied[name] = append([]string(nil), values...)
	}
	return InboundMessage{
		Body:    body,
		Headers: copied,
	}
}

// HeaderValues returns the values stored under name, or nil.
func (m InboundMessage) HeaderValues(name string) []string {
	if m.Headers == nil {
		return nil
	}
	return m.Headers[name]
}
