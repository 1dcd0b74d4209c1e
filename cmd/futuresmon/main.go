// futuresmon streams futures market data to the terminal: mark prices for
// all symbols plus the book ticker of one chosen symbol, with a latency
// ping on startup. With credentials configured it also follows the
// user-data stream.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"binance-futures-client/config"
	"binance-futures-client/internal/futures"
	"binance-futures-client/internal/logging"
)

func main() {
	var (
		configPath = flag.String("config", "config.json", "path to config file")
		symbol     = flag.String("symbol", "BTCUSDT", "symbol for the book ticker stream")
	)
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	market := futures.MarketLive
	if cfg.Binance.TestNet {
		market = futures.MarketTest
	}

	client := futures.New(market, futures.ApiAccess{
		APIKey:    cfg.Binance.APIKey,
		SecretKey: cfg.Binance.SecretKey,
	}, logger)
	defer client.Close()

	ctx := context.Background()

	if latency, err := client.Ping(ctx); err != nil {
		logger.Warn().Err(err).Msg("ping failed")
	} else {
		logger.Info().Dur("latency", latency).Msg("exchange reachable")
	}

	markToken, err := client.MonitorMarkPrice(func(rec futures.Record) {
		sym, _ := rec.Get("s")
		price, _ := rec.Get("p")
		funding, _ := rec.Get("r")
		logger.Debug().Str("symbol", sym).Str("mark", price).Str("funding", funding).Msg("mark price")
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("mark price monitor failed")
	}

	bookToken, err := client.MonitorSymbolBook(*symbol, func(rec futures.Record) {
		bid, _ := rec.Get("b")
		ask, _ := rec.Get("a")
		logger.Info().Str("symbol", *symbol).Str("bid", bid).Str("ask", ask).Msg("book")
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("book ticker monitor failed")
	}

	if cfg.Binance.SecretKey != "" {
		if _, err := client.MonitorUserData(func(ev futures.UserDataEvent) {
			logger.Info().Str("event", ev.Type).Int("orders", len(ev.Order)).
				Int("positions", len(ev.Positions)).Msg("user data")
		}); err != nil {
			logger.Warn().Err(err).Msg("user data monitor failed")
		}
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	client.CancelMonitor(markToken)
	client.CancelMonitor(bookToken)
	logger.Info().Msg("shutting down")
}
