package engine

import (
	"context"

	sol "github.com/gagliardetto/solana-go"

	"github.com/example/txsim/internal/types"
)

// reconcileNative merges any wrapped-SOL movement with the wallet's direct
// lamport delta into a single native-currency entry. Wrapping and unwrapping
// SOL is a routine intermediate step in swaps; reporting it as a separate
// token movement next to the real lamport change would double-count in the
// eyes of the user.
//
// The wrapped-SOL entry is removed from whichever list holds it (mint
// disjointness guarantees at most one occurrence) and its raw delta added to
// walletLamports. A zero combined delta emits nothing; otherwise one SOL
// asset lands in acquired or disposed by sign. With no wrapped movement and
// a zero lamport delta the lists pass through unchanged.
func reconcileNative(ctx context.Context, acquired, disposed []types.TokenAsset, walletLamports int64, meta MetadataResolver) ([]types.TokenAsset, []types.TokenAsset) {
	wrappedMint := sol.SolMint.String()
	total := walletLamports

	for i, a := range acquired {
		if a.Mint == wrappedMint {
			total += a.BalanceChange
			acquired = append(acquired[:i], acquired[i+1:]...)
			break
		}
	}
	for i, a := range disposed {
		if a.Mint == wrappedMint {
			total += a.BalanceChange
			disposed = append(disposed[:i], disposed[i+1:]...)
			break
		}
	}

	if total == 0 {
		return acquired, disposed
	}

	md := meta.Resolve(ctx, sol.SolMint)
	native := types.TokenAsset{
		Mint:          wrappedMint,
		BalanceChange: total,
		Amount:        types.ScaledAmount(total, md.Decimals),
		Decimals:      md.Decimals,
		Symbol:        md.Symbol,
		Name:          md.Name,
		LogoURI:       md.LogoURI,
	}
	if total > 0 {
		acquired = append(acquired, native)
	} else {
		disposed = append(disposed, native)
	}
	return acquired, disposed
}
