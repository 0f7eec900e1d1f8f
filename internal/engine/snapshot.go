package engine

import (
	bin "github.com/gagliardetto/binary"
	sol "github.com/gagliardetto/solana-go"
)

// tokenAccountSize is the byte length of an SPL token account record.
const tokenAccountSize = 165

// tokenAccountLayout is the fixed on-chain layout of an SPL token account.
// COption fields occupy their full width regardless of the tag value.
type tokenAccountLayout struct {
	Mint                 sol.PublicKey
	Owner                sol.PublicKey
	Amount               uint64
	DelegateOption       [4]byte
	Delegate             sol.PublicKey
	State                uint8
	IsNativeOption       [4]byte
	IsNative             uint64
	DelegatedAmount      uint64
	CloseAuthorityOption [4]byte
	CloseAuthority       sol.PublicKey
}

// TokenHolding is the decoded token-account state: which mint the account
// holds, who owns it, and the raw (unscaled) amount.
type TokenHolding struct {
	Mint   sol.PublicKey
	Owner  sol.PublicKey
	Amount uint64
}

// AccountSnapshot captures one account's observed state at a single point in
// time, before or after simulation. Token is nil for non-token accounts.
type AccountSnapshot struct {
	Address  sol.PublicKey
	Lamports uint64
	Token    *TokenHolding
}

// DecodeSnapshot builds a snapshot from raw account info. Token-layout
// decoding is attempted only when the account is owned by the SPL token
// program and has the exact token-account record size; anything else,
// including bytes that fail structural decoding, yields a plain
// lamport-holding snapshot. Decode failures are deliberately swallowed here:
// a single undecodable account must never abort a simulation.
func DecodeSnapshot(address sol.PublicKey, lamports uint64, owner sol.PublicKey, data []byte) AccountSnapshot {
	snap := AccountSnapshot{Address: address, Lamports: lamports}
	if !owner.Equals(sol.TokenProgramID) || len(data) != tokenAccountSize {
		return snap
	}
	var acc tokenAccountLayout
	if err := bin.NewBinDecoder(data).Decode(&acc); err != nil {
		return snap
	}
	snap.Token = &TokenHolding{Mint: acc.Mint, Owner: acc.Owner, Amount: acc.Amount}
	return snap
}
