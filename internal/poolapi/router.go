package poolapi

import "github.com/go-chi/chi/v5"

// Mount registers every pool route under r.
func (h *Handler) Mount(r chi.Router) {
	r.Get("/pools", h.ListPools)
	r.Post("/pools", h.CreatePool)
	r.Get("/pools/{poolID}", h.GetPool)
	r.Get("/pools/{poolID}/quote", h.Quote)
	r.Post("/pools/{poolID}/deposit", h.Deposit)
	r.Post("/pools/{poolID}/withdraw", h.Withdraw)
	r.Post("/pools/{poolID}/withdraw-imbalance", h.WithdrawImbalance)
	r.Post("/pools/{poolID}/withdraw-one", h.WithdrawOne)
	r.Post("/pools/{poolID}/swap", h.Swap)
	r.Get("/pools/{poolID}/virtual-price", h.VirtualPrice)
	r.Post("/pools/{poolID}/amp/ramp", h.RampA)
	r.Post("/pools/{poolID}/amp/stop", h.StopRampA)
	r.Post("/pools/{poolID}/fee/commit", h.CommitFee)
	r.Post("/pools/{poolID}/fee/apply", h.ApplyFee)
	r.Post("/pools/{poolID}/kill", h.Kill)
	r.Post("/pools/{poolID}/unkill", h.Unkill)
	r.Post("/pools/{poolID}/admin-fees/withdraw", h.WithdrawAdminFees)
}
