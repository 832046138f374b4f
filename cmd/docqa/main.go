package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/m-v-r/docqa/internal/service/qa"
	"github.com/m-v-r/docqa/server"
	httpserver "github.com/m-v-r/docqa/server/http"
)

var (
	cfg struct {
		// Secrets
		PlatformApiKey string `help:"API key for the tool-calling platform" env:"PLATFORM_API_KEY" default:""`
		GoogleApiKey   string `help:"API key for the Gemini model" env:"GOOGLE_API_KEY" default:""`
		SitesConfig    string `help:"Compressed base64 sites configuration" env:"SITES_CONFIG" default:""`

		// Platform config
		PlatformAddrs []string `help:"Addresses of the tool-calling platform" env:"PLATFORM_ADDRS" default:"https://api.example.dev/tools"`

		// Tuning
		Temperature      float32 `help:"Temperature for the LLM (0.0 to 1.0)" default:"0.0"`
		MaxTokens        int     `help:"Maximum tokens for LLM response" default:"2048"`
		TimeoutSeconds   int     `help:"Timeout for LLM requests in seconds" default:"60"`
		MaxSearchResults int     `help:"Maximum number of search results to return" default:"5"`

		// Modes
		Question string `help:"Ask one question and exit instead of serving" default:""`
		Address  string `help:"HTTP listen address" default:":8080"`
	}
)

func main() {
	_ = kong.Parse(&cfg)
	ctx := context.Background()

	qaService, err := qa.New(
		qa.Secrets{
			PlatformApiKey: cfg.PlatformApiKey,
			GoogleApiKey:   cfg.GoogleApiKey,
			SitesConfig:    cfg.SitesConfig,
		},
		cfg.PlatformAddrs,
	)
	if err != nil {
		log.Fatalf("failed to initialize qa service: %v", err)
	}

	if len(cfg.Question) > 0 {
		answer, err := qaService.Chat(ctx, qa.ChatRequest{
			Input:            cfg.Question,
			Temperature:      &cfg.Temperature,
			MaxTokens:        &cfg.MaxTokens,
			TimeoutSeconds:   &cfg.TimeoutSeconds,
			MaxSearchResults: &cfg.MaxSearchResults,
		})
		if err != nil {
			log.Fatalf("failed to answer question: %v", err)
		}
		fmt.Println(answer)
		return
	}

	srv := httpserver.NewServer(
		qaService,
		server.WithAddress(cfg.Address),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	case <-sigCh:
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
