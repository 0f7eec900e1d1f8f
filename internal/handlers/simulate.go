package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/example/txsim/internal/engine"
	"github.com/example/txsim/internal/types"
	"github.com/example/txsim/pkg/jsonutil"
)

// TxSimulator is the engine surface the handler needs; satisfied by
// *engine.Engine and by fakes in tests.
type TxSimulator interface {
	Simulate(ctx context.Context, serializedTx string) (*engine.Result, error)
}

// SimulateHandler exposes the balance-diff engine over HTTP.
type SimulateHandler struct {
	Engine  TxSimulator
	Timeout time.Duration
}

func NewSimulateHandler(eng TxSimulator, timeout time.Duration) *SimulateHandler {
	return &SimulateHandler{Engine: eng, Timeout: timeout}
}

// ServeHTTP handles POST /api/simulate.
func (h *SimulateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req types.SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonutil.JSON(w, http.StatusBadRequest, types.ErrorResponse{Error: "bad request"})
		return
	}
	if req.SerializedTransaction == "" {
		jsonutil.JSON(w, http.StatusBadRequest, types.ErrorResponse{Error: "serialized transaction is required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	start := time.Now()
	res, err := h.Engine.Simulate(ctx, req.SerializedTransaction)
	if err != nil {
		log.Printf("event=simulate_error structural=%t err=%v dur_ms=%d", errors.Is(err, engine.ErrNoPostState), err, time.Since(start).Milliseconds())
		jsonutil.JSON(w, http.StatusInternalServerError, types.ErrorResponse{Error: "failed to simulate transaction", Details: err.Error()})
		return
	}
	jsonutil.JSON(w, http.StatusOK, types.SimulateResponse{WalletLedger: res.Ledger, Success: res.Success})
}
