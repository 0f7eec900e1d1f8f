package solana

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// AccountInfo is the raw on-chain state of one account as returned by the
// node, decoupled from the rpc wire types so the engine can be tested with
// fakes.
type AccountInfo struct {
	Lamports uint64
	Owner    sol.PublicKey
	Data     []byte
}

// SimulationResult is the outcome of a dry-run execution. Accounts is
// aligned with the requested address list; a nil entry means the account was
// not observed post-execution. Accounts itself is nil when the node returned
// no account data at all. Err carries the node-reported execution error
// verbatim (nil on success).
type SimulationResult struct {
	Err      interface{}
	Logs     []string
	Accounts []*AccountInfo
}

// AccountFetcher abstracts reading current account state from a ledger node.
// A nil result with nil error means the account does not exist.
type AccountFetcher interface {
	GetAccount(ctx context.Context, pubkey sol.PublicKey) (*AccountInfo, error)
}

// Simulator abstracts dry-running a transaction with post-state capture for
// the given addresses.
type Simulator interface {
	Simulate(ctx context.Context, tx *sol.Transaction, addresses []sol.PublicKey) (*SimulationResult, error)
}

type Client struct {
	c          *rpc.Client
	commitment rpc.CommitmentType
}

func NewClient(rpcURL string, commitment string) *Client {
	cm := rpc.CommitmentType(commitment)
	if cm == "" {
		cm = rpc.CommitmentConfirmed
	}
	return &Client{c: rpc.New(rpcURL), commitment: cm}
}

func (cl *Client) GetAccount(ctx context.Context, pubkey sol.PublicKey) (*AccountInfo, error) {
	start := time.Now()
	res, err := cl.c.GetAccountInfoWithOpts(ctx, pubkey, &rpc.GetAccountInfoOpts{
		Encoding:   sol.EncodingBase64,
		Commitment: cl.commitment,
	})
	lat := time.Since(start)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account info: %w", err)
	}
	log.Printf("event=rpc_fetch account=%s latency_ms=%d", pubkey, lat.Milliseconds())
	acc := res.Value
	if acc == nil {
		return nil, nil
	}
	return &AccountInfo{
		Lamports: uint64(acc.Lamports),
		Owner:    acc.Owner,
		Data:     acc.Data.GetBinary(),
	}, nil
}

// Simulate dry-runs the transaction against current ledger state, capturing
// the post-execution state of the given addresses. Signature verification is
// off and the recent blockhash is replaced so that stale or unsigned
// transactions still execute.
func (cl *Client) Simulate(ctx context.Context, tx *sol.Transaction, addresses []sol.PublicKey) (*SimulationResult, error) {
	start := time.Now()
	out, err := cl.c.SimulateTransactionWithOpts(ctx, tx, &rpc.SimulateTransactionOpts{
		SigVerify:              false,
		ReplaceRecentBlockhash: true,
		Commitment:             cl.commitment,
		Accounts: &rpc.SimulateTransactionAccountsOpts{
			Encoding:  sol.EncodingBase64,
			Addresses: addresses,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("simulate transaction: %w", err)
	}
	log.Printf("event=rpc_simulate accounts=%d latency_ms=%d", len(addresses), time.Since(start).Milliseconds())
	v := out.Value
	if v == nil {
		return &SimulationResult{}, nil
	}
	res := &SimulationResult{Err: v.Err, Logs: v.Logs}
	if v.Accounts != nil {
		res.Accounts = make([]*AccountInfo, len(v.Accounts))
		for i, a := range v.Accounts {
			if a == nil {
				continue
			}
			res.Accounts[i] = &AccountInfo{
				Lamports: uint64(a.Lamports),
				Owner:    a.Owner,
				Data:     a.Data.GetBinary(),
			}
		}
	}
	return res, nil
}
