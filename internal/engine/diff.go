package engine

import (
	sol "github.com/gagliardetto/solana-go"
)

// TokenDelta is a raw token-amount change on a single token account.
type TokenDelta struct {
	Mint   sol.PublicKey
	Owner  sol.PublicKey
	Amount int64
}

// RawDelta is the per-address balance change between the pre and post
// snapshots. Token is nil when the address carries no token movement
// attributable to the primary wallet.
type RawDelta struct {
	Address  sol.PublicKey
	Lamports int64
	Token    *TokenDelta
}

// Diff computes per-address raw deltas for the declared address list.
// Addresses missing from either map contribute their zero-value snapshot, so
// an account absent post-simulation reads as drained to zero.
//
// Token deltas are restricted to holdings owned by the primary wallet; other
// parties' accounts move lamports only. A holding that appears only in the
// post snapshot (account opened during execution) counts in full. A holding
// present only pre-simulation (account closed) contributes no token delta:
// only accounts still decodable post-simulation are inspected.
func Diff(pre, post map[sol.PublicKey]AccountSnapshot, addresses []sol.PublicKey, wallet sol.PublicKey) []RawDelta {
	deltas := make([]RawDelta, 0, len(addresses))
	for _, addr := range addresses {
		pr := pre[addr]
		po := post[addr]
		d := RawDelta{Address: addr, Lamports: int64(po.Lamports) - int64(pr.Lamports)}
		switch {
		case pr.Token != nil && po.Token != nil && pr.Token.Owner.Equals(wallet):
			d.Token = &TokenDelta{
				Mint:   pr.Token.Mint,
				Owner:  pr.Token.Owner,
				Amount: int64(po.Token.Amount) - int64(pr.Token.Amount),
			}
		case pr.Token == nil && po.Token != nil && po.Token.Owner.Equals(wallet):
			// Newly opened account: the full post amount was acquired.
			d.Token = &TokenDelta{
				Mint:   po.Token.Mint,
				Owner:  po.Token.Owner,
				Amount: int64(po.Token.Amount),
			}
		}
		deltas = append(deltas, d)
	}
	return deltas
}
