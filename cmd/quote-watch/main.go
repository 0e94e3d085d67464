// quote-watch polls the quote endpoint on a fixed interval and logs the
// offered rate, useful for eyeballing route and price stability.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/jup-ag/jupiter-swap-api-client/internal/config"
	"github.com/jup-ag/jupiter-swap-api-client/jupiter"
)

func main() {
	_ = godotenv.Load()
	log := logrus.New()

	inMint := flag.String("in", "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", "input mint (base58)")
	outMint := flag.String("out", "So11111111111111111111111111111111111111112", "output mint (base58)")
	amount := flag.Uint64("amount", 1_000_000, "amount in base units")
	slippageBps := flag.Int("slippage-bps", 50, "slippage in bps")
	flag.Parse()

	cfg := config.Load()
	client := jupiter.NewClient(cfg.BaseURL,
		jupiter.WithAPIKey(cfg.APIKey),
		jupiter.WithRetry(cfg.MaxRetries, cfg.RetryBackoff),
		jupiter.WithMiddleware(
			jupiter.RateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), 1)),
			jupiter.RequestLoggingMiddleware(log),
		),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	req := &jupiter.QuoteRequest{
		InputMint:   solana.MustPublicKeyFromBase58(*inMint),
		OutputMint:  solana.MustPublicKeyFromBase58(*outMint),
		Amount:      *amount,
		SlippageBps: uint16(*slippageBps),
	}

	log.WithFields(logrus.Fields{
		"interval": cfg.PollInterval,
		"pair":     *inMint + "/" + *outMint,
	}).Info("starting quote polling")

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for {
		poll(ctx, log, client, req)
		select {
		case <-ctx.Done():
			log.Info("stopping")
			return
		case <-ticker.C:
		}
	}
}

func poll(ctx context.Context, log *logrus.Logger, client *jupiter.Client, req *jupiter.QuoteRequest) {
	quote, err := client.QuoteWithRetry(ctx, req)
	if err != nil {
		log.WithError(err).Warn("quote failed")
		return
	}

	price := decimal.Zero
	if quote.InAmount > 0 {
		price = decimal.NewFromUint64(uint64(quote.OutAmount)).
			Div(decimal.NewFromUint64(uint64(quote.InAmount)))
	}
	log.WithFields(logrus.Fields{
		"out_amount":       uint64(quote.OutAmount),
		"rate":             price.StringFixed(12),
		"price_impact_pct": quote.PriceImpactPct.String(),
		"route_hops":       len(quote.RoutePlan),
		"context_slot":     quote.ContextSlot,
	}).Info("quote")
}
