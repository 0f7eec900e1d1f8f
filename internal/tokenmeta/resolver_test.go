package tokenmeta

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sol "github.com/gagliardetto/solana-go"
)

var testMint = sol.PublicKey{0x10}

func TestResolve_RegistryHitAndMemoization(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path != "/token/"+testMint.String() {
			t.Errorf("path=%s", r.URL.Path)
		}
		w.Write([]byte(`{"symbol":"USDX","name":"USD X","logoURI":"https://img/usdx.png","decimals":6}`))
	}))
	defer ts.Close()

	r := NewResolver(ts.URL, time.Second)
	info := r.Resolve(context.Background(), testMint)
	if info.Symbol != "USDX" || info.Name != "USD X" || info.Decimals != 6 || info.LogoURI != "https://img/usdx.png" {
		t.Fatalf("info=%+v", info)
	}
	// Second resolve is served from the memo.
	_ = r.Resolve(context.Background(), testMint)
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("registry hits=%d", n)
	}
}

func TestResolve_FailureDegradesToPlaceholder(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	r := NewResolver(ts.URL, time.Second)
	info := r.Resolve(context.Background(), testMint)
	if info.Decimals != 0 || info.LogoURI != "" {
		t.Fatalf("info=%+v", info)
	}
	want := testMint.String()
	want = want[:4] + "..." + want[len(want)-4:]
	if info.Symbol != want {
		t.Fatalf("symbol=%s want=%s", info.Symbol, want)
	}
	// Failures are not memoized; a retry goes back to the registry.
	_ = r.Resolve(context.Background(), testMint)
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Fatalf("registry hits=%d", n)
	}
}

func TestResolve_WrappedSolShortCircuits(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("registry should not be called for wrapped SOL")
	}))
	defer ts.Close()

	r := NewResolver(ts.URL, time.Second)
	info := r.Resolve(context.Background(), sol.SolMint)
	if info.Symbol != "SOL" || info.Decimals != 9 || info.Name != "Wrapped SOL" {
		t.Fatalf("info=%+v", info)
	}
}

func TestShortMint(t *testing.T) {
	if got := shortMint("abcdefghij"); got != "abcd...ghij" {
		t.Fatalf("got=%s", got)
	}
	if got := shortMint("short"); got != "short" {
		t.Fatalf("got=%s", got)
	}
}
