package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/marcinkowskimikolaj/assetly/internal/assistant"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/cache"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/router"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/synonyms"
	"github.com/marcinkowskimikolaj/assetly/internal/config"
	"github.com/marcinkowskimikolaj/assetly/internal/llm"
	"github.com/marcinkowskimikolaj/assetly/internal/logger"
	"github.com/marcinkowskimikolaj/assetly/internal/networth"
	"github.com/marcinkowskimikolaj/assetly/internal/sheets"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "ask":
		runAsk(log)
	case "plan":
		runPlan(log)
	case "snapshot":
		runSnapshot(log)
	case "growth":
		runGrowth(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Assetly CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  ask       Ask the budget assistant a question")
	fmt.Println("  plan      Show the routed plan for a question without executing it")
	fmt.Println("  snapshot  Record a net-worth snapshot for a category")
	fmt.Println("  growth    Print the net-worth growth report")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func runAsk(log zerolog.Logger) {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	query := fs.String("q", "", "Question for the assistant")
	fs.Parse(os.Args[2:])

	if *query == "" {
		log.Fatal().Msg("Error: -q is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	cfg, asst, sess := setupAssistant(ctx, log)
	_ = cfg

	reply, err := asst.Ask(ctx, sess, *query)
	if err != nil {
		log.Fatal().Err(err).Msg("Ask failed")
	}

	fmt.Println(reply.Answer)
}

func runPlan(log zerolog.Logger) {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	query := fs.String("q", "", "Question to route")
	fs.Parse(os.Args[2:])

	if *query == "" {
		log.Fatal().Msg("Error: -q is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	cfg, _, sess := setupAssistant(ctx, log)

	table := synonyms.DefaultTable()
	if cfg.SynonymOverridesPath != "" {
		_ = table.LoadOverrides(cfg.SynonymOverridesPath)
	}
	rt := router.New(newCompleter(cfg), synonyms.NewResolver(table), log)

	plan, _ := rt.Route(ctx, sess, *query)

	out, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode plan")
	}
	fmt.Println(string(out))
}

func runSnapshot(log zerolog.Logger) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	category := fs.String("category", "", "Asset category to snapshot")
	value := fs.Float64("value", 0, "Current value")
	fs.Parse(os.Args[2:])

	if *category == "" {
		log.Fatal().Msg("Error: --category is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	cfg, backend := setupBackend(ctx, log)
	_ = cfg

	svc := networth.NewService(backend, log)
	snap, err := svc.CaptureSnapshot(ctx, *category, *value)
	if err != nil {
		log.Fatal().Err(err).Msg("Snapshot failed")
	}

	fmt.Printf("Recorded %s = %.2f (%s)\n", snap.Category, snap.Value, snap.TakenAt.Format("2006-01-02"))
}

func runGrowth(log zerolog.Logger) {
	fs := flag.NewFlagSet("growth", flag.ExitOnError)
	months := fs.Int("months", 6, "Window size in months")
	fs.Parse(os.Args[2:])

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	_, backend := setupBackend(ctx, log)

	svc := networth.NewService(backend, log)
	report, err := svc.GrowthReport(ctx, *months)
	if err != nil {
		log.Fatal().Err(err).Msg("Growth report failed")
	}

	fmt.Printf("Net worth: %.2f (change over %d months: %+.2f)\n", report.Total, report.MonthsBack, report.Change)
	for _, c := range report.Categories {
		fmt.Printf("  %-20s %12.2f  %+10.2f (%+.1f%%)\n", c.Category, c.Latest, c.Change, c.ChangePct)
	}
}

func setupBackend(ctx context.Context, log zerolog.Logger) (*config.Config, *sheets.Client) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	backend, err := sheets.NewClient(ctx, cfg.SpreadsheetID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create spreadsheet client")
	}
	return cfg, backend
}

func setupAssistant(ctx context.Context, log zerolog.Logger) (*config.Config, *assistant.Assistant, *router.Session) {
	cfg, backend := setupBackend(ctx, log)

	txs, err := backend.ListTransactions(ctx, "", "")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load transactions")
	}

	table := synonyms.DefaultTable()
	if cfg.SynonymOverridesPath != "" {
		if err := table.LoadOverrides(cfg.SynonymOverridesPath); err != nil {
			log.Warn().Err(err).Msg("Failed to load synonym overrides")
		}
	}

	asst := assistant.New(newCompleter(cfg), table, log)
	sess := router.NewSession(cache.Build(txs))
	return cfg, asst, sess
}

func newCompleter(cfg *config.Config) llm.Completer {
	if cfg.Provider == "openai" {
		return llm.NewOpenAICompleter(cfg.OpenAIURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	return llm.NewGeminiCompleter(cfg.GeminiModel)
}
