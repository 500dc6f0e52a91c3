package poolws

import (
	"math/big"
	"testing"

	"github.com/atmx/stableswap-engine/internal/pool"
)

func TestEmitDoesNotBlockWhenNoClients(t *testing.T) {
	h := NewHub()
	e := &pool.Event{
		Type:     "token_exchange",
		PoolID:   "pool-1",
		Provider: "provider-1",
		Fields:   map[string]*big.Int{"amount_in": big.NewInt(1000)},
	}

	done := make(chan struct{})
	go func() {
		h.Emit(e)
		close(done)
	}()
	<-done

	if h.ClientCount() != 0 {
		t.Fatalf("expected 0 clients, got %d", h.ClientCount())
	}
}

func TestEmitDropsWhenBufferFull(t *testing.T) {
	h := NewHub()
	e := &pool.Event{Type: "ramp_a", PoolID: "pool-1", Fields: map[string]*big.Int{}}

	for i := 0; i < 1000; i++ {
		h.Emit(e)
	}
}
