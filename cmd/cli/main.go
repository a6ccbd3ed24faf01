package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/dvloznov/commission-fees/internal/config"
	"github.com/dvloznov/commission-fees/internal/feeconfig"
	"github.com/dvloznov/commission-fees/internal/fees"
	"github.com/dvloznov/commission-fees/internal/gcs"
	"github.com/dvloznov/commission-fees/internal/gcsuploader"
	"github.com/dvloznov/commission-fees/internal/loader"
	"github.com/dvloznov/commission-fees/internal/logger"
	"github.com/dvloznov/commission-fees/internal/pipeline"
)

func main() {
	envErr := config.LoadEnv()
	settings := config.Load()
	log := logger.NewWithLevel(logger.ParseLevel(settings.LogLevel))
	if envErr != nil {
		log.Warn().Err(envErr).Msg("Could not load .env file")
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "compute":
		runCompute(log, settings)
	case "inspect":
		runInspect(log, settings)
	case "config":
		runConfig(log, settings)
	case "upload":
		runUpload(log, settings)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Commission Fees CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  compute   Compute the commission fee of every transaction in a file")
	fmt.Println("  inspect   Show each transaction with its week and fee")
	fmt.Println("  config    Fetch and print the current fee configuration")
	fmt.Println("  upload    Upload a transaction file to GCS")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nInput files may be local paths or gs://bucket/object URIs.")
	fmt.Println("Run 'cli <command> -h' for more information on a command.")
}

func newDependencies(settings config.Settings) pipeline.Dependencies {
	return pipeline.Dependencies{
		Source: loader.New(gcsuploader.NewGCSStorageService(settings.GCSEndpoint)),
		Config: feeconfig.NewHTTPProvider(settings.ConfigBaseURL, nil, settings.HTTPTimeout),
		Weeks:  fees.ISOWeeks{},
	}
}

// inputPath returns the -file flag value, or the first positional argument.
func inputPath(fs *flag.FlagSet, file string) string {
	if file != "" {
		return file
	}
	return fs.Arg(0)
}

func runCompute(log zerolog.Logger, settings config.Settings) {
	fs := flag.NewFlagSet("compute", flag.ExitOnError)
	file := fs.String("file", "", "Path or GCS URI of the transactions JSON file")
	fs.Parse(os.Args[2:])

	path := inputPath(fs, *file)
	if path == "" {
		log.Fatal().Msg("Usage: cli compute [-file] PATH")
	}

	ctx, cancel := context.WithTimeout(context.Background(), settings.RunTimeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	result, err := pipeline.ProcessFile(ctx, path, newDependencies(settings))
	if err != nil {
		log.Fatal().Err(err).Msg("Fee computation failed")
	}

	for _, fee := range result {
		fmt.Println(fee)
	}
}

func runInspect(log zerolog.Logger, settings config.Settings) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	file := fs.String("file", "", "Path or GCS URI of the transactions JSON file")
	fs.Parse(os.Args[2:])

	path := inputPath(fs, *file)
	if path == "" {
		log.Fatal().Msg("Usage: cli inspect [-file] PATH")
	}

	ctx, cancel := context.WithTimeout(context.Background(), settings.RunTimeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	deps := newDependencies(settings)
	state, err := pipeline.Run(ctx, path, deps)
	if err != nil {
		log.Fatal().Err(err).Msg("Fee computation failed")
	}

	fmt.Printf("=== Transactions (%d) ===\n", len(state.Transactions))
	for i, tx := range state.Transactions {
		fmt.Printf("\n%d. %s user %s\n", i+1, tx.Date, tx.UserID)
		fmt.Printf("   Week:      %s\n", deps.Weeks.Week(tx.Date))
		fmt.Printf("   Operation: %s %s\n", tx.UserType, tx.Type)
		fmt.Printf("   Amount:    %s %s\n", tx.Operation.Amount.StringFixed(fees.FeePlaces), tx.Operation.Currency)
		fmt.Printf("   Fee:       %s\n", state.Fees[i])
	}
}

func runConfig(log zerolog.Logger, settings config.Settings) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	baseURL := fs.String("url", settings.ConfigBaseURL, "Base URL of the fee configuration service")
	fs.Parse(os.Args[2:])

	ctx, cancel := context.WithTimeout(context.Background(), settings.RunTimeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	cfg, err := feeconfig.NewHTTPProvider(*baseURL, nil, settings.HTTPTimeout).FetchConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to fetch fee configuration")
	}

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode fee configuration")
	}
	fmt.Println(string(out))
}

func runUpload(log zerolog.Logger, settings config.Settings) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	bucketName := fs.String("bucket", "", "GCS bucket name")
	objectName := fs.String("object", "", "GCS object name (defaults to filename)")
	filePath := fs.String("file", "", "Path to local transactions JSON file")
	fs.Parse(os.Args[2:])

	if *bucketName == "" || *filePath == "" {
		log.Fatal().Msg("Usage: cli upload -bucket NAME -file PATH")
	}

	if *objectName == "" {
		*objectName = filepath.Base(*filePath)
	}

	ctx, cancel := context.WithTimeout(context.Background(), settings.RunTimeout)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	log.Info().
		Str("bucket", *bucketName).
		Str("object", *objectName).
		Str("file", *filePath).
		Msg("Uploading file to GCS")

	storage := gcsuploader.NewGCSStorageService(settings.GCSEndpoint)
	if err := storage.UploadFile(ctx, *bucketName, *objectName, *filePath); err != nil {
		log.Fatal().Err(err).Msg("Upload failed")
	}

	fmt.Printf("Uploaded %s to %s\n", *filePath, gcs.FormatURI(*bucketName, *objectName))
}
