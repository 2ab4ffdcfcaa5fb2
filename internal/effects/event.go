package effects

// Event is one contract-emitted or diagnostic event, with topics and
// payload already decoded by the binary-value collaborator.
type Event struct {
	Contract string    `json:"contract"`
	Type     EventType `json:"eventType"`

	// InSuccessfulCall reports whether the event was recorded during a
	// successful contract call. Diagnostic events outside a successful
	// call violate the input contract.
	InSuccessfulCall bool `json:"inSuccessfulCall"`

	Topics []Value `json:"topics"`
	Data   Value   `json:"data"`
}

// topicSym returns the symbol of topic i, or "" when absent or not a symbol.
func (ev *Event) topicSym(i int) string {
	if i >= len(ev.Topics) || ev.Topics[i].Kind != KindSymbol {
		return ""
	}
	return ev.Topics[i].Sym
}
