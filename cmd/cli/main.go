package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/dvloznov/fraud-detection-api/internal/analysis"
	"github.com/dvloznov/fraud-detection-api/internal/config"
	"github.com/dvloznov/fraud-detection-api/internal/domain"
	"github.com/dvloznov/fraud-detection-api/internal/llm"
	"github.com/dvloznov/fraud-detection-api/internal/logger"
	"github.com/rs/zerolog"
)

func main() {
	log := logger.New("info")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "analyze":
		runAnalyze(log)
	case "prompt":
		runPrompt(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Fraud Detection CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  analyze   Analyze a transaction JSON file against the model")
	fmt.Println("  prompt    Print the prompt a transaction file would produce (no model call)")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func loadRecord(path string, log zerolog.Logger) domain.TransactionRecord {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to read transaction file")
	}

	var rec domain.TransactionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to parse transaction file")
	}

	if violations := rec.Validate(); violations != nil {
		for _, v := range violations {
			fmt.Fprintln(os.Stderr, "validation:", v)
		}
		os.Exit(1)
	}

	return rec
}

func runAnalyze(log zerolog.Logger) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	file := fs.String("file", "", "Path to a transaction JSON file")
	fs.Parse(os.Args[2:])

	if *file == "" {
		log.Fatal().Msg("Error: --file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	rec := loadRecord(*file, log)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.LLM.Timeout)
	defer cancel()

	modelClient, err := llm.NewFromConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create model client")
	}

	analyzer := analysis.NewAnalyzer(modelClient, log)

	result, err := analyzer.Analyze(ctx, rec)
	if err != nil {
		log.Fatal().Err(err).Msg("Analysis failed")
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode result")
	}
	fmt.Println(string(out))
}

func runPrompt(log zerolog.Logger) {
	fs := flag.NewFlagSet("prompt", flag.ExitOnError)
	file := fs.String("file", "", "Path to a transaction JSON file")
	fs.Parse(os.Args[2:])

	if *file == "" {
		log.Fatal().Msg("Error: --file is required")
	}

	rec := loadRecord(*file, log)
	fmt.Println(analysis.BuildPrompt(rec))
}
