package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/txsim/internal/auth"
	"github.com/example/txsim/internal/config"
	"github.com/example/txsim/internal/engine"
	"github.com/example/txsim/internal/handlers"
	apihttp "github.com/example/txsim/internal/http"
	"github.com/example/txsim/internal/nftmeta"
	"github.com/example/txsim/internal/rate"
	"github.com/example/txsim/internal/solana"
	"github.com/example/txsim/internal/tokenmeta"
)

func main() {
	cfg := config.Load()
	if cfg.RPCURL == "" {
		log.Println("warning: RPC_URL is empty; simulations will fail on first RPC call")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("mongo connect error: %v", err)
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	store, err := auth.NewMongoAPIKeyStore(ctx, mongoClient, cfg.MongoDB, cfg.KeyCacheTTL)
	if err != nil {
		log.Fatalf("api key store init error: %v", err)
	}

	cl := solana.NewClient(cfg.RPCURL, cfg.SolCommitment)
	eng := &engine.Engine{
		Accounts:         cl,
		Sim:              cl,
		Meta:             tokenmeta.NewResolver(cfg.TokenAPIURL, cfg.MetaTimeout),
		NFT:              nftmeta.NewResolver(cl, cfg.MetaTimeout),
		FetchConcurrency: cfg.FetchConcurrency,
	}

	sh := handlers.NewSimulateHandler(eng, cfg.SimulateTimeout)
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(store, cfg.AdminToken)
	}
	lm := rate.NewLimiterMap(cfg.RateLimitRPM, cfg.RateLimitRPM, 5*time.Minute)
	defer lm.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      apihttp.NewRouter(sh, admin, lm, store),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("shutting down...")
	shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shCancel()
	_ = srv.Shutdown(shCtx)
}
