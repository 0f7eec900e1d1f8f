package engine

import (
	"context"
	"testing"

	sol "github.com/gagliardetto/solana-go"

	"github.com/example/txsim/internal/types"
)

func TestReconcileNative_DisposedWrappedPlusFee(t *testing.T) {
	disposed := []types.TokenAsset{{Mint: sol.SolMint.String(), BalanceChange: -2_000_000_000}}
	acq, dis := reconcileNative(context.Background(), nil, disposed, 1_999_995_000, fakeMeta{})
	if len(acq) != 0 || len(dis) != 1 {
		t.Fatalf("acq=%+v dis=%+v", acq, dis)
	}
	if dis[0].BalanceChange != -5_000 || dis[0].Mint != sol.SolMint.String() {
		t.Fatalf("native=%+v", dis[0])
	}
}

func TestReconcileNative_AcquiredWrapped(t *testing.T) {
	acquired := []types.TokenAsset{{Mint: sol.SolMint.String(), BalanceChange: 3_000_000_000}}
	acq, dis := reconcileNative(context.Background(), acquired, nil, -5_000, fakeMeta{})
	if len(acq) != 1 || len(dis) != 0 {
		t.Fatalf("acq=%+v dis=%+v", acq, dis)
	}
	if acq[0].BalanceChange != 2_999_995_000 {
		t.Fatalf("native=%+v", acq[0])
	}
}

func TestReconcileNative_ZeroSumEmitsNothing(t *testing.T) {
	acquired := []types.TokenAsset{{Mint: sol.SolMint.String(), BalanceChange: 5_000}}
	acq, dis := reconcileNative(context.Background(), acquired, nil, -5_000, fakeMeta{})
	if len(acq) != 0 || len(dis) != 0 {
		t.Fatalf("zero sum emitted: acq=%+v dis=%+v", acq, dis)
	}
}

func TestReconcileNative_NoWrappedMovementIsNoop(t *testing.T) {
	acquired := []types.TokenAsset{{Mint: mintX.String(), BalanceChange: 10, Amount: 10}}
	acq, dis := reconcileNative(context.Background(), acquired, nil, 0, fakeMeta{})
	if len(acq) != 1 || len(dis) != 0 {
		t.Fatalf("acq=%+v dis=%+v", acq, dis)
	}
	if acq[0] != acquired[0] {
		t.Fatalf("input mutated: %+v", acq[0])
	}
}

func TestReconcileNative_DirectDeltaOnly(t *testing.T) {
	acq, dis := reconcileNative(context.Background(), nil, nil, -1_005_000, fakeMeta{})
	if len(acq) != 0 || len(dis) != 1 {
		t.Fatalf("acq=%+v dis=%+v", acq, dis)
	}
	got := dis[0]
	if got.BalanceChange != -1_005_000 || got.Symbol != "SOL" || got.Decimals != 9 {
		t.Fatalf("native=%+v", got)
	}
}
