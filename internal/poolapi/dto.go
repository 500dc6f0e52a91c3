package poolapi

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetInput describes one of the three reserves at pool-creation time.
type AssetInput struct {
	Symbol        string `json:"symbol"`
	Decimals      int    `json:"decimals"`
	LedgerAddress string `json:"ledger_address"`
}

// CreatePoolRequest is the JSON body for POST /api/v1/pools.
type CreatePoolRequest struct {
	Owner    string          `json:"owner"`
	Assets   [3]AssetInput   `json:"assets"`
	InitialA decimal.Decimal `json:"initial_a"`
	Fee      decimal.Decimal `json:"fee"`       // 1e10-scaled integer, e.g. "4000000" = 0.04%
	AdminFee decimal.Decimal `json:"admin_fee"` // 1e10-scaled integer
}

// PoolResponse is the JSON representation of a pool snapshot.
type PoolResponse struct {
	ID          string          `json:"id"`
	Owner       string          `json:"owner"`
	Assets      [3]AssetInput   `json:"assets"`
	Balances    [3]string       `json:"balances"`
	A           string          `json:"a"`
	Fee         string          `json:"fee"`
	AdminFee    string          `json:"admin_fee"`
	ShareSupply string          `json:"share_supply"`
	Killed      bool            `json:"killed"`
	VirtualPrice string         `json:"virtual_price"`
	Timestamp   time.Time       `json:"timestamp"`
}

// DepositRequest is the JSON body for POST /pools/{id}/deposit.
type DepositRequest struct {
	Provider string          `json:"provider"`
	Amounts  [3]decimal.Decimal `json:"amounts"`
	MinMint  decimal.Decimal `json:"min_mint"`
}

// DepositResponse reports shares minted.
type DepositResponse struct {
	Minted string `json:"minted"`
}

// WithdrawRequest is the JSON body for POST /pools/{id}/withdraw.
type WithdrawRequest struct {
	Provider   string             `json:"provider"`
	Shares     decimal.Decimal    `json:"shares"`
	MinAmounts [3]decimal.Decimal `json:"min_amounts"`
}

// WithdrawResponse reports the amounts returned.
type WithdrawResponse struct {
	Amounts [3]string `json:"amounts"`
}

// WithdrawImbalanceRequest is the JSON body for
// POST /pools/{id}/withdraw-imbalance.
type WithdrawImbalanceRequest struct {
	Provider string             `json:"provider"`
	Amounts  [3]decimal.Decimal `json:"amounts"`
	MaxBurn  decimal.Decimal    `json:"max_burn"`
}

// WithdrawImbalanceResponse reports shares burned.
type WithdrawImbalanceResponse struct {
	Burned string `json:"burned"`
}

// WithdrawOneRequest is the JSON body for POST /pools/{id}/withdraw-one.
type WithdrawOneRequest struct {
	Provider  string          `json:"provider"`
	Shares    decimal.Decimal `json:"shares"`
	Index     int             `json:"index"`
	MinAmount decimal.Decimal `json:"min_amount"`
}

// WithdrawOneResponse reports the single-asset amount returned.
type WithdrawOneResponse struct {
	Amount string `json:"amount"`
}

// SwapRequest is the JSON body for POST /pools/{id}/swap.
type SwapRequest struct {
	Caller string          `json:"caller"`
	I      int             `json:"i"`
	J      int             `json:"j"`
	Dx     decimal.Decimal `json:"dx"`
	MinDy  decimal.Decimal `json:"min_dy"`
}

// SwapResponse reports the swap output.
type SwapResponse struct {
	Dy string `json:"dy"`
}

// QuoteResponse reports a quoted swap output for GET /pools/{id}/quote.
type QuoteResponse struct {
	Dy string `json:"dy"`
}

// VirtualPriceResponse reports a pool's virtual price.
type VirtualPriceResponse struct {
	VirtualPrice string `json:"virtual_price"`
}

// RampARequest is the JSON body for POST /pools/{id}/amp/ramp.
type RampARequest struct {
	Caller     string          `json:"caller"`
	NewA       decimal.Decimal `json:"new_a"`
	FutureTime time.Time       `json:"future_time"`
}

// StopRampARequest is the JSON body for POST /pools/{id}/amp/stop.
type StopRampARequest struct {
	Caller string `json:"caller"`
}

// CommitFeeRequest is the JSON body for POST /pools/{id}/fee/commit.
type CommitFeeRequest struct {
	Caller   string          `json:"caller"`
	Fee      decimal.Decimal `json:"fee"`
	AdminFee decimal.Decimal `json:"admin_fee"`
}

// KillRequest is the JSON body for POST /pools/{id}/kill and /unkill.
type KillRequest struct {
	Caller string `json:"caller"`
}

// WithdrawAdminFeesRequest is the JSON body for
// POST /pools/{id}/admin-fees/withdraw.
type WithdrawAdminFeesRequest struct {
	Caller string `json:"caller"`
}
