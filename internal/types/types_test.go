package types

import (
	"encoding/json"
	"testing"
)

func TestSimulateResponse_JSON(t *testing.T) {
	resp := SimulateResponse{
		WalletLedger: WalletLedger{
			Wallet:   "w1",
			Acquired: []TokenAsset{{Mint: "m1", BalanceChange: 5_000_000, Amount: 5, Decimals: 6, Symbol: "USDX"}},
			Disposed: []TokenAsset{},
		},
		Success: true,
	}
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back SimulateResponse
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.WalletLedger.Wallet != "w1" || len(back.WalletLedger.Acquired) != 1 || !back.Success {
		t.Fatalf("unexpected decode: %+v", back)
	}
}

func TestScaledAmount(t *testing.T) {
	if got := ScaledAmount(2_000_000_000, 9); got != 2.0 {
		t.Fatalf("want 2.0 got %v", got)
	}
	if got := ScaledAmount(-2_500_000, 6); got != -2.5 {
		t.Fatalf("want -2.5 got %v", got)
	}
	if got := ScaledAmount(7, 0); got != 7.0 {
		t.Fatalf("want 7.0 got %v", got)
	}
}

func TestNetRawChange(t *testing.T) {
	ledger := WalletLedger{
		Acquired: []TokenAsset{{BalanceChange: 10}, {BalanceChange: 5}},
		Disposed: []TokenAsset{{BalanceChange: -4}},
	}
	if got := NetRawChange(ledger); got != 11 {
		t.Fatalf("net=%d", got)
	}
}
