package pool

import "math/big"

// Event is the observability payload emitted after every state-mutating
// operation commits. internal/poolws marshals these to JSON for the
// WebSocket surface; internal/poolapi's store sink appends them to
// pool_events through internal/store.
type Event struct {
	Type     string
	PoolID   string
	Provider string
	Fields   map[string]*big.Int
	Index    map[string]int
}

func newEvent(typ, poolID, provider string) *Event {
	return &Event{
		Type:     typ,
		PoolID:   poolID,
		Provider: provider,
		Fields:   make(map[string]*big.Int),
		Index:    make(map[string]int),
	}
}

func (e *Event) withAmounts(key string, amounts [NCoins]*big.Int) *Event {
	for i, a := range amounts {
		e.Fields[keyN(key, i)] = a
	}
	return e
}

func keyN(key string, i int) string {
	const digits = "0123456789"
	return key + "[" + string(digits[i]) + "]"
}

// Sink receives events as they are emitted. poolws.Hub and the store
// sink in internal/poolapi both implement it.
type Sink interface {
	Emit(e *Event)
}

// noopSink discards events; used when an Engine is constructed without
// an explicit sink (e.g. in unit tests).
type noopSink struct{}

func (noopSink) Emit(*Event) {}
