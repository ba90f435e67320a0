package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ycbot/api"
	"ycbot/bot"
	"ycbot/chat"
	"ycbot/config"
	"ycbot/database"
	"ycbot/embeddings"
	"ycbot/ingestion"
	"ycbot/llm"
	"ycbot/loader"
	"ycbot/session"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.Load()

	switch os.Args[1] {
	case "ingest":
		ingestCmd(cfg, logger)
	case "serve":
		serveCmd(cfg, logger, os.Args[2:])
	case "chat":
		chatCmd(cfg, logger, os.Args[2:])
	case "clear":
		clearCmd(cfg, logger, os.Args[2:])
	default:
		logger.Printf("unknown command: %s", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func ingestCmd(cfg config.Config, logger *log.Logger) {
	if err := cfg.Validate(false); err != nil {
		logger.Fatalf("configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatalf("postgres connection: %v", err)
	}
	defer pool.Close()

	embedder, err := embeddings.NewEmbedder(cfg)
	if err != nil {
		logger.Fatalf("embedder setup: %v", err)
	}

	svc := ingestion.NewService(pool, loader.New(), embedder, logger, cfg.IndexName, cfg.Embeddings.Dimension)
	logger.Printf("ingesting %d pages into %q using %s/%s embeddings",
		len(ingestion.SourceURLs), cfg.IndexName, strings.ToUpper(cfg.Embeddings.Provider), cfg.Embeddings.Model)

	if err := svc.IngestURLs(ctx, ingestion.SourceURLs); err != nil {
		logger.Fatalf("ingestion failed: %v", err)
	}
}

func serveCmd(cfg config.Config, logger *log.Logger, args []string) {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	httpAddr := flags.String("http", "", "optional listen address for the HTTP front end (e.g. :8080)")
	if err := flags.Parse(args); err != nil {
		logger.Fatalf("parse serve flags: %v", err)
	}

	if err := cfg.Validate(true); err != nil {
		logger.Fatalf("configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatalf("postgres connection: %v", err)
	}
	defer pool.Close()

	embedder, err := embeddings.NewEmbedder(cfg)
	if err != nil {
		logger.Fatalf("embedder setup: %v", err)
	}

	llmClient, err := llm.NewClient(cfg)
	if err != nil {
		logger.Fatalf("llm setup: %v", err)
	}

	vectors := chat.NewPostgresVectorStore(pool, cfg.IndexName)
	svc := chat.NewService(vectors, embedder, llmClient, logger, chat.Config{})
	handler := bot.NewHandler(svc, session.NewMemoryStore(), logger, cfg.IncludeHistory)

	if *httpAddr != "" {
		srv := &http.Server{Addr: *httpAddr, Handler: api.New(handler, logger)}
		defer srv.Close()
		go func() {
			logger.Printf("http front end listening on %s", *httpAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("http server: %v", err)
			}
		}()
	}

	tg, err := bot.NewTelegram(cfg.TelegramToken, handler, logger)
	if err != nil {
		logger.Fatalf("telegram setup: %v", err)
	}

	if err := tg.Run(ctx); err != nil {
		logger.Fatalf("telegram polling: %v", err)
	}
}

func chatCmd(cfg config.Config, logger *log.Logger, args []string) {
	flags := flag.NewFlagSet("chat", flag.ExitOnError)
	question := flags.String("question", "", "question to ask the bot")
	k := flags.Int("k", 0, "number of context chunks to retrieve")
	if err := flags.Parse(args); err != nil {
		logger.Fatalf("parse chat flags: %v", err)
	}

	if err := cfg.Validate(false); err != nil {
		logger.Fatalf("configuration: %v", err)
	}

	if strings.TrimSpace(*question) == "" {
		fmt.Print("Enter your question: ")
		scanner := bufio.NewScanner(os.Stdin)
		if scanner.Scan() {
			*question = scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			logger.Fatalf("read question: %v", err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatalf("postgres connection: %v", err)
	}
	defer pool.Close()

	embedder, err := embeddings.NewEmbedder(cfg)
	if err != nil {
		logger.Fatalf("embedder setup: %v", err)
	}

	llmClient, err := llm.NewClient(cfg)
	if err != nil {
		logger.Fatalf("llm setup: %v", err)
	}

	svc := chat.NewService(chat.NewPostgresVectorStore(pool, cfg.IndexName), embedder, llmClient, logger, chat.Config{TopK: *k})

	resp, err := svc.Answer(ctx, *question, nil)
	if err != nil {
		logger.Fatalf("chat failed: %v", err)
	}

	fmt.Println(resp.Answer)
	if len(resp.Chunks) > 0 {
		fmt.Println()
		fmt.Println("Sources:")
		for idx, chunk := range resp.Chunks {
			fmt.Printf("%d. %s (score %.3f)\n", idx+1, chunk.URL, chunk.Score)
		}
	}
}

func clearCmd(cfg config.Config, logger *log.Logger, args []string) {
	flags := flag.NewFlagSet("clear", flag.ExitOnError)
	confirmed := flags.Bool("confirm", false, "skip confirmation prompt")
	if err := flags.Parse(args); err != nil {
		logger.Fatalf("parse clear flags: %v", err)
	}

	if err := cfg.Validate(false); err != nil {
		logger.Fatalf("configuration: %v", err)
	}

	if !*confirmed {
		fmt.Printf("This will permanently delete the %q vector collection. Continue? [y/N]: ", cfg.IndexName)
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				logger.Fatalf("read confirmation: %v", err)
			}
			logger.Println("clear aborted")
			return
		}
		answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if answer != "y" && answer != "yes" {
			logger.Println("clear aborted")
			return
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatalf("postgres connection: %v", err)
	}
	defer pool.Close()

	if err := database.DropCollection(ctx, pool, cfg.IndexName); err != nil {
		logger.Fatalf("drop collection: %v", err)
	}

	logger.Printf("dropped vector collection %q", cfg.IndexName)
}

func printUsage() {
	fmt.Println("Usage: ycbot <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  ingest   Fetch the source pages and build the vector collection")
	fmt.Println("  serve    Run the Telegram bot (use -http to expose the HTTP front end too)")
	fmt.Println("  chat     Ask a one-shot question against the ingested collection")
	fmt.Println("  clear    Drop the vector collection")
}
