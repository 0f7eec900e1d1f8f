package engine

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log"

	bin "github.com/gagliardetto/binary"
	sol "github.com/gagliardetto/solana-go"
	"golang.org/x/sync/errgroup"

	solclient "github.com/example/txsim/internal/solana"
	"github.com/example/txsim/internal/types"
)

// ErrNoPostState signals that the dry run returned no account data at all,
// meaning the simulation itself failed structurally. It is the only
// engine-level failure: everything per-account degrades to a safe default.
var ErrNoPostState = errors.New("simulation returned no account data")

const defaultFetchConcurrency = 8

// Engine computes the balance diff a transaction would cause for its primary
// wallet. It owns no network logic itself; all chain and metadata access
// goes through the injected collaborators.
type Engine struct {
	Accounts         solclient.AccountFetcher
	Sim              solclient.Simulator
	Meta             MetadataResolver
	NFT              NFTResolver
	FetchConcurrency int
}

// Result pairs the computed ledger with whether the dry run executed
// cleanly. A failed execution still carries a ledger computed from whatever
// post-state the node returned.
type Result struct {
	Ledger  types.WalletLedger
	Success bool
}

// Simulate dry-runs a base64-serialized transaction and reports what the
// primary wallet (the transaction's first account key, by fee-payer
// convention) acquired and disposed of.
func (e *Engine) Simulate(ctx context.Context, serializedTx string) (*Result, error) {
	raw, err := base64.StdEncoding.DecodeString(serializedTx)
	if err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	tx, err := sol.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return nil, fmt.Errorf("parse transaction: %w", err)
	}
	if len(tx.Message.AccountKeys) == 0 {
		return nil, errors.New("transaction has no account keys")
	}
	wallet := tx.Message.AccountKeys[0]
	addresses := dedupeKeys(tx.Message.AccountKeys)

	pre := e.fetchPreState(ctx, addresses)

	sim, err := e.Sim.Simulate(ctx, tx, addresses)
	if err != nil {
		return nil, err
	}
	if sim.Accounts == nil {
		return nil, ErrNoPostState
	}

	post := make(map[sol.PublicKey]AccountSnapshot, len(addresses))
	for i, addr := range addresses {
		var info *solclient.AccountInfo
		if i < len(sim.Accounts) {
			info = sim.Accounts[i]
		}
		if info == nil {
			post[addr] = AccountSnapshot{Address: addr}
			continue
		}
		post[addr] = DecodeSnapshot(addr, info.Lamports, info.Owner, info.Data)
	}

	deltas := Diff(pre, post, addresses, wallet)

	// Fold per-account token deltas into one logical delta per mint, keeping
	// first-seen order so output is deterministic for a fixed input.
	var walletLamports int64
	ordered := make([]sol.PublicKey, 0, len(deltas))
	totals := make(map[sol.PublicKey]int64, len(deltas))
	for _, d := range deltas {
		if d.Address.Equals(wallet) {
			walletLamports = d.Lamports
		}
		if d.Token == nil || d.Token.Amount == 0 {
			continue
		}
		if _, ok := totals[d.Token.Mint]; !ok {
			ordered = append(ordered, d.Token.Mint)
		}
		totals[d.Token.Mint] += d.Token.Amount
	}

	acquired := make([]types.TokenAsset, 0, len(ordered))
	disposed := make([]types.TokenAsset, 0, len(ordered))
	for _, mint := range ordered {
		asset := classify(ctx, mint, totals[mint], e.Meta, e.NFT)
		if asset == nil {
			continue
		}
		if asset.BalanceChange > 0 {
			acquired = append(acquired, *asset)
		} else {
			disposed = append(disposed, *asset)
		}
	}

	acquired, disposed = reconcileNative(ctx, acquired, disposed, walletLamports, e.Meta)

	success := sim.Err == nil
	log.Printf("event=simulate wallet=%s acquired=%d disposed=%d success=%t", wallet, len(acquired), len(disposed), success)
	return &Result{
		Ledger: types.WalletLedger{
			Wallet:   wallet.String(),
			Acquired: acquired,
			Disposed: disposed,
		},
		Success: success,
	}, nil
}

// fetchPreState reads current state for every address, fanning out up to
// FetchConcurrency concurrent reads. Per-account fetch errors are absorbed:
// the account reads as nonexistent, which the differ then treats as a zero
// pre-balance.
func (e *Engine) fetchPreState(ctx context.Context, addresses []sol.PublicKey) map[sol.PublicKey]AccountSnapshot {
	limit := e.FetchConcurrency
	if limit <= 0 {
		limit = defaultFetchConcurrency
	}
	snaps := make([]AccountSnapshot, len(addresses))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, addr := range addresses {
		i, addr := i, addr
		g.Go(func() error {
			snaps[i] = AccountSnapshot{Address: addr}
			info, err := e.Accounts.GetAccount(ctx, addr)
			if err != nil {
				log.Printf("event=pre_fetch_error account=%s err=%v", addr, err)
				return nil
			}
			if info == nil {
				return nil
			}
			snaps[i] = DecodeSnapshot(addr, info.Lamports, info.Owner, info.Data)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[sol.PublicKey]AccountSnapshot, len(snaps))
	for _, s := range snaps {
		out[s.Address] = s
	}
	return out
}

func dedupeKeys(keys []sol.PublicKey) []sol.PublicKey {
	seen := make(map[sol.PublicKey]struct{}, len(keys))
	out := make([]sol.PublicKey, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
