package nftmeta

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	sol "github.com/gagliardetto/solana-go"

	"github.com/example/txsim/internal/cache"
	solclient "github.com/example/txsim/internal/solana"
)

// Info is the outcome of an NFT probe. When IsNFT is false the display
// fields are empty.
type Info struct {
	IsNFT  bool
	Name   string
	Symbol string
	Image  string
}

// Resolver probes whether a mint is a non-fungible asset by reading its
// Metaplex metadata account. A decodable metadata account marks the mint as
// an NFT; any failure along the way marks it as not one. Both outcomes are
// memoized for the process lifetime, so repeated probes of the same mint hit
// the chain at most once.
type Resolver struct {
	accounts solclient.AccountFetcher
	hc       *http.Client
	memo     *cache.Memo[Info]
}

func NewResolver(accounts solclient.AccountFetcher, timeout time.Duration) *Resolver {
	return &Resolver{
		accounts: accounts,
		hc:       &http.Client{Timeout: timeout},
		memo:     cache.NewMemo[Info](),
	}
}

func (r *Resolver) Resolve(ctx context.Context, mint sol.PublicKey) Info {
	info, source, err := r.memo.GetOrFetch(ctx, mint.String(), func(ctx context.Context) (Info, error) {
		return r.probe(ctx, mint), nil
	})
	if err != nil {
		return Info{}
	}
	log.Printf("event=nft_probe mint=%s is_nft=%t source=%s", mint, info.IsNFT, source)
	return info
}

func (r *Resolver) probe(ctx context.Context, mint sol.PublicKey) Info {
	pda, _, err := sol.FindTokenMetadataAddress(mint)
	if err != nil {
		return Info{}
	}
	acc, err := r.accounts.GetAccount(ctx, pda)
	if err != nil || acc == nil {
		return Info{}
	}
	md, err := decodeMetadata(acc.Data)
	if err != nil {
		log.Printf("event=nft_metadata_undecodable mint=%s err=%v", mint, err)
		return Info{}
	}
	info := Info{IsNFT: true, Name: md.Name, Symbol: md.Symbol}
	if md.URI != "" {
		info.Image = r.fetchImage(ctx, md.URI)
	}
	return info
}

// fetchImage pulls the image URL out of the off-chain metadata document.
// Best effort: any failure yields an empty URL, never an error.
func (r *Resolver) fetchImage(ctx context.Context, uri string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return ""
	}
	resp, err := r.hc.Do(req)
	if err != nil {
		log.Printf("event=nft_image_miss uri=%s err=%v", uri, err)
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}
	var doc struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return ""
	}
	return doc.Image
}
