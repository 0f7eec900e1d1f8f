package engine

import (
	"context"

	sol "github.com/gagliardetto/solana-go"

	"github.com/example/txsim/internal/nftmeta"
	"github.com/example/txsim/internal/tokenmeta"
	"github.com/example/txsim/internal/types"
)

// MetadataResolver supplies display metadata for a mint. Implementations
// must be total: a failed lookup returns a usable placeholder, never an
// error.
type MetadataResolver interface {
	Resolve(ctx context.Context, mint sol.PublicKey) tokenmeta.Info
}

// NFTResolver reports whether a mint is a non-fungible asset, with
// NFT-specific display fields when it is. Total function, same as above.
type NFTResolver interface {
	Resolve(ctx context.Context, mint sol.PublicKey) nftmeta.Info
}

// classify turns a non-zero per-mint raw delta into a displayable asset.
// Returns nil for a zero delta.
//
// The NFT probe fires only for the shape an NFT movement can take: zero
// decimals and a delta of exactly one unit. On a positive probe the
// NFT-specific name, symbol and image replace the registry fields, each
// falling back to the registry value when the probe left it empty.
func classify(ctx context.Context, mint sol.PublicKey, rawDelta int64, meta MetadataResolver, nft NFTResolver) *types.TokenAsset {
	if rawDelta == 0 {
		return nil
	}
	md := meta.Resolve(ctx, mint)
	asset := types.TokenAsset{
		Mint:          mint.String(),
		BalanceChange: rawDelta,
		Decimals:      md.Decimals,
		Symbol:        md.Symbol,
		Name:          md.Name,
		LogoURI:       md.LogoURI,
	}
	if md.Decimals == 0 && (rawDelta == 1 || rawDelta == -1) {
		if info := nft.Resolve(ctx, mint); info.IsNFT {
			asset.IsNFT = true
			if info.Name != "" {
				asset.Name = info.Name
			}
			if info.Symbol != "" {
				asset.Symbol = info.Symbol
			}
			if info.Image != "" {
				asset.LogoURI = info.Image
			}
		}
	}
	if asset.IsNFT {
		// NFTs are unit-indivisible; no decimal scaling.
		asset.Amount = float64(rawDelta)
	} else {
		asset.Amount = types.ScaledAmount(rawDelta, md.Decimals)
	}
	return &asset
}
