package poolapi

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/atmx/stableswap-engine/internal/model"
	"github.com/atmx/stableswap-engine/internal/pool"
	"github.com/atmx/stableswap-engine/internal/store"
)

// storeSink persists every engine event to the append-only pool_events
// log. It implements pool.Sink.
type storeSink struct {
	logger *slog.Logger
	st     store.Store
}

// NewStoreSink wraps st as a pool.Sink that records every emitted event.
func NewStoreSink(logger *slog.Logger, st store.Store) pool.Sink {
	return &storeSink{logger: logger, st: st}
}

func (s *storeSink) Emit(e *pool.Event) {
	fields := make(map[string]string, len(e.Fields))
	for k, v := range e.Fields {
		fields[k] = v.String()
	}
	payload, err := json.Marshal(map[string]any{
		"fields": fields,
		"index":  e.Index,
	})
	if err != nil {
		s.logger.Error("failed to marshal pool event payload", "err", err)
		return
	}

	rec := &model.PoolEvent{
		ID:       uuid.New().String(),
		PoolID:   e.PoolID,
		Type:     model.PoolEventType(toSnakeEventType(e.Type)),
		Provider: e.Provider,
		Payload:  string(payload),
	}
	if err := s.st.InsertPoolEvent(context.Background(), rec); err != nil {
		s.logger.Error("failed to persist pool event", "pool_id", e.PoolID, "type", e.Type, "err", err)
	}
}

// toSnakeEventType maps the engine's CamelCase event type constants to
// the lower_snake_case values used by model.PoolEventType.
func toSnakeEventType(t string) string {
	switch t {
	case "AddLiquidity":
		return string(model.EventAddLiquidity)
	case "RemoveLiquidity":
		return string(model.EventRemoveLiquidity)
	case "RemoveLiquidityImbalance":
		return string(model.EventRemoveLiquidityImbalance)
	case "RemoveLiquidityOne":
		return string(model.EventRemoveLiquidityOne)
	case "TokenExchange":
		return string(model.EventTokenExchange)
	case "RampA":
		return string(model.EventRampA)
	case "StopRampA":
		return string(model.EventStopRampA)
	case "CommitNewFee":
		return string(model.EventNewFeeCommitted)
	case "NewFee":
		return string(model.EventNewFeeApplied)
	case "Killed":
		return string(model.EventKilled)
	case "Unkilled":
		return string(model.EventUnkilled)
	case "AdminFeesWithdrawn":
		return string(model.EventAdminFeesWithdrawn)
	default:
		return t
	}
}

// multiSink fans an event out to every sink in order. Used to wire both
// the WebSocket hub and the store from a single Engine.
type multiSink struct {
	sinks []pool.Sink
}

// NewMultiSink combines multiple sinks into one.
func NewMultiSink(sinks ...pool.Sink) pool.Sink {
	return &multiSink{sinks: sinks}
}

func (m *multiSink) Emit(e *pool.Event) {
	for _, s := range m.sinks {
		s.Emit(e)
	}
}
