package poolapi

import (
	"encoding/json"
	"log/slog"
	"math/big"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atmx/stableswap-engine/internal/ledger"
	"github.com/atmx/stableswap-engine/internal/model"
	"github.com/atmx/stableswap-engine/internal/pool"
)

// Handler exposes Service's operations as chi-compatible HTTP handlers.
type Handler struct {
	logger *slog.Logger
	svc    *Service
}

// NewHandler wraps svc with its HTTP surface.
func NewHandler(logger *slog.Logger, svc *Service) *Handler {
	return &Handler{logger: logger, svc: svc}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error, status int) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, ErrInvalidRequestBody, http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) engineOrNotFound(w http.ResponseWriter, poolID string) (*pool.Engine, bool) {
	e, ok := h.svc.engine(poolID)
	if !ok {
		writeError(w, ErrPoolNotFound, http.StatusNotFound)
		return nil, false
	}
	return e, true
}

// CreatePool handles POST /api/v1/pools.
func (h *Handler) CreatePool(w http.ResponseWriter, r *http.Request) {
	var req CreatePoolRequest
	if !h.decode(w, r, &req) {
		return
	}

	id := newPoolID()
	now := time.Now().UTC()

	var assets [pool.NCoins]pool.Asset
	var modelAssets [3]model.Asset
	var zeroBalances []*big.Int
	for i, a := range req.Assets {
		assets[i] = pool.Asset{Symbol: a.Symbol, Decimals: a.Decimals, LedgerAddress: a.LedgerAddress}
		modelAssets[i] = model.Asset{Symbol: a.Symbol, Decimals: a.Decimals, LedgerAddress: a.LedgerAddress}
		zeroBalances = append(zeroBalances, big.NewInt(0))
	}

	led := ledger.NewMemoryLedger(zeroBalances)

	eng, err := pool.NewEngine(pool.Config{
		ID:       id,
		Owner:    req.Owner,
		Assets:   assets,
		Ledger:   led,
		InitialA: req.InitialA.BigInt(),
		Fee:      req.Fee.BigInt(),
		AdminFee: req.AdminFee.BigInt(),
		Now:      now,
		Sink:     h.svc.sink,
	})
	if err != nil {
		writeError(w, err, statusForError(err))
		return
	}

	rec := &model.Pool{
		ID:          id,
		Owner:       req.Owner,
		Assets:      modelAssets,
		Balances:    [3]string{"0", "0", "0"},
		InitialA:    req.InitialA.String(),
		FutureA:     req.InitialA.String(),
		InitialTime: now,
		FutureTime:  now,
		Fee:         req.Fee.String(),
		AdminFee:    req.AdminFee.String(),
		ShareSupply: "0",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.svc.store.CreatePool(r.Context(), rec); err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	h.svc.mu.Lock()
	h.svc.engines[id] = eng
	h.svc.mu.Unlock()

	h.logger.Info("pool created", "pool_id", id, "owner", req.Owner)
	writeJSON(w, http.StatusCreated, h.toResponse(eng))
}

func (h *Handler) toResponse(e *pool.Engine) PoolResponse {
	now := time.Now().UTC()
	bal := e.Balances()
	var balStrs [3]string
	for i, b := range bal {
		balStrs[i] = b.String()
	}
	vp, err := e.VirtualPrice(now)
	vpStr := "0"
	if err == nil {
		vpStr = vp.String()
	}
	return PoolResponse{
		ID:           e.ID(),
		Balances:     balStrs,
		A:            e.A(now).String(),
		Fee:          e.Fee().String(),
		AdminFee:     e.AdminFee().String(),
		ShareSupply:  e.ShareSupply().String(),
		Killed:       e.Killed(),
		VirtualPrice: vpStr,
		Timestamp:    now,
	}
}

// GetPool handles GET /api/v1/pools/{poolID}.
func (h *Handler) GetPool(w http.ResponseWriter, r *http.Request) {
	poolID := chi.URLParam(r, "poolID")
	e, ok := h.engineOrNotFound(w, poolID)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(e))
}

// ListPools handles GET /api/v1/pools.
func (h *Handler) ListPools(w http.ResponseWriter, r *http.Request) {
	pools, err := h.svc.store.ListPools(r.Context())
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, pools)
}

// Quote handles GET /api/v1/pools/{poolID}/quote?i=&j=&dx=
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	poolID := chi.URLParam(r, "poolID")
	e, ok := h.engineOrNotFound(w, poolID)
	if !ok {
		return
	}

	i, j, dx, err := parseQuoteParams(r)
	if err != nil {
		writeError(w, err, http.StatusBadRequest)
		return
	}

	dy, err := e.Quote(i, j, dx, time.Now().UTC())
	if err != nil {
		writeError(w, err, statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, QuoteResponse{Dy: dy.String()})
}

func parseQuoteParams(r *http.Request) (i, j int, dx *big.Int, err error) {
	q := r.URL.Query()
	i, err = parseQueryInt(q.Get("i"))
	if err != nil {
		return 0, 0, nil, err
	}
	j, err = parseQueryInt(q.Get("j"))
	if err != nil {
		return 0, 0, nil, err
	}
	dx, err = parseAmount(q.Get("dx"))
	if err != nil {
		return 0, 0, nil, err
	}
	return i, j, dx, nil
}

func parseQueryInt(s string) (int, error) {
	v, err := parseAmount(s)
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// Deposit handles POST /api/v1/pools/{poolID}/deposit.
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	poolID := chi.URLParam(r, "poolID")
	e, ok := h.engineOrNotFound(w, poolID)
	if !ok {
		return
	}

	var req DepositRequest
	if !h.decode(w, r, &req) {
		return
	}

	var amounts [3]*big.Int
	for i, a := range req.Amounts {
		amounts[i] = a.BigInt()
	}

	minted, err := e.AddLiquidity(req.Provider, amounts, req.MinMint.BigInt(), time.Now().UTC())
	if err != nil {
		writeError(w, err, statusForError(err))
		return
	}
	h.svc.persistState(r.Context(), e)
	writeJSON(w, http.StatusOK, DepositResponse{Minted: minted.String()})
}

// Withdraw handles POST /api/v1/pools/{poolID}/withdraw.
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	poolID := chi.URLParam(r, "poolID")
	e, ok := h.engineOrNotFound(w, poolID)
	if !ok {
		return
	}

	var req WithdrawRequest
	if !h.decode(w, r, &req) {
		return
	}

	var minAmounts [3]*big.Int
	for i, a := range req.MinAmounts {
		minAmounts[i] = a.BigInt()
	}

	amounts, err := e.RemoveLiquidity(req.Provider, req.Shares.BigInt(), minAmounts)
	if err != nil {
		writeError(w, err, statusForError(err))
		return
	}
	h.svc.persistState(r.Context(), e)

	var out [3]string
	for i, a := range amounts {
		out[i] = a.String()
	}
	writeJSON(w, http.StatusOK, WithdrawResponse{Amounts: out})
}

// WithdrawImbalance handles POST /api/v1/pools/{poolID}/withdraw-imbalance.
func (h *Handler) WithdrawImbalance(w http.ResponseWriter, r *http.Request) {
	poolID := chi.URLParam(r, "poolID")
	e, ok := h.engineOrNotFound(w, poolID)
	if !ok {
		return
	}

	var req WithdrawImbalanceRequest
	if !h.decode(w, r, &req) {
		return
	}

	var amounts [3]*big.Int
	for i, a := range req.Amounts {
		amounts[i] = a.BigInt()
	}

	burned, err := e.RemoveLiquidityImbalance(req.Provider, amounts, req.MaxBurn.BigInt(), time.Now().UTC())
	if err != nil {
		writeError(w, err, statusForError(err))
		return
	}
	h.svc.persistState(r.Context(), e)
	writeJSON(w, http.StatusOK, WithdrawImbalanceResponse{Burned: burned.String()})
}

// WithdrawOne handles POST /api/v1/pools/{poolID}/withdraw-one.
func (h *Handler) WithdrawOne(w http.ResponseWriter, r *http.Request) {
	poolID := chi.URLParam(r, "poolID")
	e, ok := h.engineOrNotFound(w, poolID)
	if !ok {
		return
	}

	var req WithdrawOneRequest
	if !h.decode(w, r, &req) {
		return
	}

	amount, err := e.RemoveLiquidityOneCoin(req.Provider, req.Shares.BigInt(), req.Index, req.MinAmount.BigInt(), time.Now().UTC())
	if err != nil {
		writeError(w, err, statusForError(err))
		return
	}
	h.svc.persistState(r.Context(), e)
	writeJSON(w, http.StatusOK, WithdrawOneResponse{Amount: amount.String()})
}

// Swap handles POST /api/v1/pools/{poolID}/swap.
func (h *Handler) Swap(w http.ResponseWriter, r *http.Request) {
	poolID := chi.URLParam(r, "poolID")
	e, ok := h.engineOrNotFound(w, poolID)
	if !ok {
		return
	}

	var req SwapRequest
	if !h.decode(w, r, &req) {
		return
	}

	dy, err := e.Exchange(req.Caller, req.I, req.J, req.Dx.BigInt(), req.MinDy.BigInt(), time.Now().UTC())
	if err != nil {
		writeError(w, err, statusForError(err))
		return
	}
	h.svc.persistState(r.Context(), e)
	writeJSON(w, http.StatusOK, SwapResponse{Dy: dy.String()})
}

// VirtualPrice handles GET /api/v1/pools/{poolID}/virtual-price.
func (h *Handler) VirtualPrice(w http.ResponseWriter, r *http.Request) {
	poolID := chi.URLParam(r, "poolID")
	e, ok := h.engineOrNotFound(w, poolID)
	if !ok {
		return
	}
	vp, err := e.VirtualPrice(time.Now().UTC())
	if err != nil {
		writeError(w, err, statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, VirtualPriceResponse{VirtualPrice: vp.String()})
}

// RampA handles POST /api/v1/pools/{poolID}/amp/ramp.
func (h *Handler) RampA(w http.ResponseWriter, r *http.Request) {
	poolID := chi.URLParam(r, "poolID")
	e, ok := h.engineOrNotFound(w, poolID)
	if !ok {
		return
	}

	var req RampARequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := e.RampA(req.Caller, req.NewA.BigInt(), req.FutureTime, time.Now().UTC()); err != nil {
		writeError(w, err, statusForError(err))
		return
	}
	h.persistAmp(r, e)
	writeJSON(w, http.StatusOK, h.toResponse(e))
}

// StopRampA handles POST /api/v1/pools/{poolID}/amp/stop.
func (h *Handler) StopRampA(w http.ResponseWriter, r *http.Request) {
	poolID := chi.URLParam(r, "poolID")
	e, ok := h.engineOrNotFound(w, poolID)
	if !ok {
		return
	}

	var req StopRampARequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := e.StopRampA(req.Caller, time.Now().UTC()); err != nil {
		writeError(w, err, statusForError(err))
		return
	}
	h.persistAmp(r, e)
	writeJSON(w, http.StatusOK, h.toResponse(e))
}

func (h *Handler) persistAmp(r *http.Request, e *pool.Engine) {
	now := time.Now().UTC()
	a := e.A(now).String()
	if err := h.svc.store.UpdatePoolAmp(r.Context(), e.ID(), a, a, now, now); err != nil {
		h.logger.Error("failed to persist amp state", "pool_id", e.ID(), "err", err)
	}
}

// CommitFee handles POST /api/v1/pools/{poolID}/fee/commit.
func (h *Handler) CommitFee(w http.ResponseWriter, r *http.Request) {
	poolID := chi.URLParam(r, "poolID")
	e, ok := h.engineOrNotFound(w, poolID)
	if !ok {
		return
	}

	var req CommitFeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := e.CommitFee(req.Caller, req.Fee.BigInt(), req.AdminFee.BigInt(), time.Now().UTC()); err != nil {
		writeError(w, err, statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, h.toResponse(e))
}

// ApplyFee handles POST /api/v1/pools/{poolID}/fee/apply.
func (h *Handler) ApplyFee(w http.ResponseWriter, r *http.Request) {
	poolID := chi.URLParam(r, "poolID")
	e, ok := h.engineOrNotFound(w, poolID)
	if !ok {
		return
	}

	if err := e.ApplyFee(time.Now().UTC()); err != nil {
		writeError(w, err, statusForError(err))
		return
	}
	if err := h.svc.store.UpdatePoolGovernance(r.Context(), e.ID(), e.Fee().String(), e.AdminFee().String(), "", "", nil, e.Killed()); err != nil {
		h.logger.Error("failed to persist governance state", "pool_id", e.ID(), "err", err)
	}
	writeJSON(w, http.StatusOK, h.toResponse(e))
}

// Kill handles POST /api/v1/pools/{poolID}/kill.
func (h *Handler) Kill(w http.ResponseWriter, r *http.Request) {
	h.setKilled(w, r, true)
}

// Unkill handles POST /api/v1/pools/{poolID}/unkill.
func (h *Handler) Unkill(w http.ResponseWriter, r *http.Request) {
	h.setKilled(w, r, false)
}

func (h *Handler) setKilled(w http.ResponseWriter, r *http.Request, kill bool) {
	poolID := chi.URLParam(r, "poolID")
	e, ok := h.engineOrNotFound(w, poolID)
	if !ok {
		return
	}

	var req KillRequest
	if !h.decode(w, r, &req) {
		return
	}

	var err error
	if kill {
		err = e.Kill(req.Caller)
	} else {
		err = e.Unkill(req.Caller)
	}
	if err != nil {
		writeError(w, err, statusForError(err))
		return
	}

	if uerr := h.svc.store.UpdatePoolGovernance(r.Context(), e.ID(), e.Fee().String(), e.AdminFee().String(), "", "", nil, e.Killed()); uerr != nil {
		h.logger.Error("failed to persist governance state", "pool_id", e.ID(), "err", uerr)
	}
	writeJSON(w, http.StatusOK, h.toResponse(e))
}

// WithdrawAdminFees handles POST /api/v1/pools/{poolID}/admin-fees/withdraw.
func (h *Handler) WithdrawAdminFees(w http.ResponseWriter, r *http.Request) {
	poolID := chi.URLParam(r, "poolID")
	e, ok := h.engineOrNotFound(w, poolID)
	if !ok {
		return
	}

	var req WithdrawAdminFeesRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := e.WithdrawAdminFees(req.Caller); err != nil {
		writeError(w, err, statusForError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
