package poolapi

import (
	"fmt"
	"math/big"
)

// Every amount crossing the store/ledger boundary is a native-unit
// integer encoded as a base-10 string — never a fractional decimal, since
// fixedpoint.ToCanonical/ToNative already carry the per-asset decimal
// scaling. parseAmount and its callers keep that integer-string
// convention consistent between internal/poolapi and internal/store.
func parseAmount(s string) (*big.Int, error) {
	if s == "" {
		return big.NewInt(0), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer amount %q", s)
	}
	return v, nil
}

func parseAmounts(ss []string) ([]*big.Int, error) {
	out := make([]*big.Int, len(ss))
	for i, s := range ss {
		v, err := parseAmount(s)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
