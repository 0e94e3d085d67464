package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/jup-ag/jupiter-swap-api-client/internal/config"
	"github.com/jup-ag/jupiter-swap-api-client/jupiter"
)

const (
	usdcMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	solMint  = "So11111111111111111111111111111111111111112"
)

func main() {
	_ = godotenv.Load()
	log := logrus.New()

	inMint := flag.String("in", usdcMint, "input mint (base58)")
	outMint := flag.String("out", solMint, "output mint (base58)")
	amount := flag.Uint64("amount", 1_000_000, "amount in base units")
	slippageBps := flag.Int("slippage-bps", 50, "slippage in bps (50 = 0.5%)")
	owner := flag.String("owner", "", "user public key (base58)")
	instructions := flag.Bool("instructions", false, "fetch decomposed instructions instead of a built transaction")
	flag.Parse()

	if *owner == "" {
		log.Fatal("missing -owner (the swap endpoint needs a user public key)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cfg := config.Load()
	client := jupiter.NewClient(cfg.BaseURL,
		jupiter.WithAPIKey(cfg.APIKey),
		jupiter.WithRetry(cfg.MaxRetries, cfg.RetryBackoff),
		jupiter.WithMiddleware(jupiter.RequestLoggingMiddleware(log)),
	)
	log.WithField("base_url", client.BaseURL()).Info("using swap API")

	quoteReq := &jupiter.QuoteRequest{
		InputMint:   solana.MustPublicKeyFromBase58(*inMint),
		OutputMint:  solana.MustPublicKeyFromBase58(*outMint),
		Amount:      *amount,
		SlippageBps: uint16(*slippageBps),
	}

	quote, err := client.QuoteWithRetry(ctx, quoteReq)
	if err != nil {
		log.WithError(err).Fatal("quote failed")
	}
	log.WithFields(logrus.Fields{
		"in_amount":        uint64(quote.InAmount),
		"out_amount":       uint64(quote.OutAmount),
		"price_impact_pct": quote.PriceImpactPct.String(),
		"route_hops":       len(quote.RoutePlan),
		"context_slot":     quote.ContextSlot,
	}).Info("quote received")

	swapReq := &jupiter.SwapRequest{
		UserPublicKey:     solana.MustPublicKeyFromBase58(*owner),
		QuoteResponse:     *quote,
		TransactionConfig: jupiter.DefaultTransactionConfig(),
	}

	if *instructions {
		res, err := client.SwapInstructions(ctx, swapReq)
		if err != nil {
			log.WithError(err).Fatal("swap-instructions failed")
		}
		log.WithFields(logrus.Fields{
			"setup_instructions": len(res.SetupInstructions),
			"lookup_tables":      len(res.AddressLookupTableAddresses),
			"compute_unit_limit": res.ComputeUnitLimit,
		}).Info("swap instructions received")
		return
	}

	res, err := client.Swap(ctx, swapReq, nil)
	if err != nil {
		log.WithError(err).Fatal("swap failed")
	}
	// The transaction comes back unsigned; signing and broadcast are up to
	// the wallet holding the key.
	log.WithFields(logrus.Fields{
		"tx_bytes":                len(res.SwapTransaction),
		"last_valid_block_height": res.LastValidBlockHeight,
		"prioritization_fee":      res.PrioritizationFeeLamports,
	}).Info("unsigned transaction received")
}
