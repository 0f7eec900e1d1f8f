package types

import "math"

// SimulateRequest is the incoming payload: a base64-serialized, signed but
// unsubmitted transaction.
type SimulateRequest struct {
	SerializedTransaction string `json:"serializedTransaction"`
}

// TokenAsset is one classified asset movement for the primary wallet.
// BalanceChange is the signed raw delta; Amount is the human-scaled value
// (raw / 10^decimals for fungibles, the raw delta verbatim for NFTs).
type TokenAsset struct {
	Mint          string  `json:"mint"`
	BalanceChange int64   `json:"balanceChange"`
	Amount        float64 `json:"amount"`
	Decimals      uint8   `json:"decimals"`
	Symbol        string  `json:"symbol,omitempty"`
	Name          string  `json:"name,omitempty"`
	LogoURI       string  `json:"logouri"`
	IsNFT         bool    `json:"isNft"`
}

// WalletLedger is the final per-wallet result: what the wallet gained and
// lost. A mint appears in at most one of the two lists.
type WalletLedger struct {
	Wallet   string       `json:"wallet"`
	Acquired []TokenAsset `json:"acquired"`
	Disposed []TokenAsset `json:"disposed"`
}

// SimulateResponse is the JSON response for the simulate endpoint. Success
// mirrors whether the dry run reported an execution error; the ledger is
// computed either way.
type SimulateResponse struct {
	WalletLedger WalletLedger `json:"walletLedger"`
	Success      bool         `json:"success"`
}

// ErrorResponse is the JSON error body used by the HTTP edge.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ScaledAmount converts a signed raw delta to its human representation.
func ScaledAmount(raw int64, decimals uint8) float64 {
	return float64(raw) / math.Pow(10, float64(decimals))
}

// NetRawChange sums the raw deltas across acquired and disposed entries.
func NetRawChange(ledger WalletLedger) int64 {
	var total int64
	for i := range ledger.Acquired {
		total += ledger.Acquired[i].BalanceChange
	}
	for i := range ledger.Disposed {
		total += ledger.Disposed[i].BalanceChange
	}
	return total
}
