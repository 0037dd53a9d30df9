// Command fetch runs one bot command from the terminal: it fetches,
// projects and prints the reply without any chat platform attached.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/molinju/send-price-bot/internal/bot"
	"github.com/molinju/send-price-bot/internal/fetch"
	"github.com/molinju/send-price-bot/internal/httpx"
	"github.com/molinju/send-price-bot/internal/market/coinstats"
	"github.com/molinju/send-price-bot/internal/market/dexscreener"
)

func main() {
	_ = godotenv.Load()

	var (
		command  string
		chain    string
		contract string
		chat     string
		timeout  int
		attempts int
		asJSON   bool
	)
	flag.StringVar(&command, "cmd", "precio", "command to run: precio or cotiza")
	flag.StringVar(&chain, "chain", getenv("DEFAULT_DEX_CHAIN", ""), "chain filter for the pair lookup")
	flag.StringVar(&contract, "contract", getenv("DEFAULT_DEX_CONTRACT", ""), "token contract address")
	flag.StringVar(&chat, "chat", "cli", "requester id for the cooldown guard")
	flag.IntVar(&timeout, "timeout", getenvInt("REQUEST_TIMEOUT_SEC", 15), "request timeout seconds")
	flag.IntVar(&attempts, "attempts", getenvInt("MAX_ATTEMPTS", 3), "max fetch attempts while rate limited")
	flag.BoolVar(&asJSON, "json", false, "print the normalized record instead of the reply text")
	flag.Parse()

	httpClient := httpx.New(time.Duration(timeout) * time.Second)
	fetcher := fetch.New(httpClient, fetch.WithMaxAttempts(attempts))
	pairs := dexscreener.NewClient(fetcher,
		dexscreener.WithBaseURL(getenv("DEXSCREENER_BASE_URL", dexscreener.DefaultBaseURL)))
	coins := coinstats.NewClient(fetcher,
		coinstats.WithBaseURL(getenv("COINSTATS_BASE_URL", coinstats.DefaultBaseURL)))

	svc, err := bot.New(bot.Config{Chain: chain, Contract: contract}, pairs, coins)
	if err != nil {
		log.Fatalf("bot service: %v", err)
	}

	// Leave room for backoff sleeps between attempts.
	deadline := time.Duration(timeout*attempts+15) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), deadline)
	defer cancel()

	switch command {
	case "precio":
		if asJSON {
			info, err := pairs.BestPair(ctx, chain, contract)
			if err != nil {
				log.Fatalf("precio: %v", err)
			}
			if info == nil {
				log.Fatal("no pairs for the configured contract")
			}
			printJSON(info)
			return
		}
		reply, err := svc.Precio(ctx, chat)
		if err != nil {
			log.Fatalf("precio: %v (%s)", err, bot.UserMessage(err))
		}
		fmt.Println(reply)
	case "cotiza":
		if asJSON {
			price, err := coins.Latest(ctx)
			if err != nil {
				log.Fatalf("cotiza: %v", err)
			}
			printJSON(price)
			return
		}
		reply, err := svc.Cotiza(ctx, chat)
		if err != nil {
			log.Fatalf("cotiza: %v (%s)", err, bot.UserMessage(err))
		}
		fmt.Println(reply)
	default:
		log.Fatalf("unknown command %q (use precio or cotiza)", command)
	}
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	fmt.Println(string(b))
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var x int
		_, _ = fmt.Sscanf(v, "%d", &x)
		if x != 0 {
			return x
		}
	}
	return def
}
