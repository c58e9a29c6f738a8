package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"bookshelf/internal/config"
	"bookshelf/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// No arguments or "run": start the catalog with background maintenance
	if len(os.Args) < 2 || os.Args[1] == "run" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	switch os.Args[1] {
	case "sweep":
		cfg := config.NewConfig()
		app, err := entrypoint.New(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		result, err := app.Catalog.SweepOrphans()
		if err != nil {
			log.Fatalf("Sweep failed: %v", err)
		}
		reaped, err := app.Catalog.ReapCovers()
		if err != nil {
			log.Fatalf("Cover reap failed: %v", err)
		}
		log.Printf("Removed %d orphan rows (%d authors, %d publishers, %d genres) and %d cover files",
			result.Total(), result.Authors, result.Publishers, result.Genres, reaped)
		app.Shutdown(context.Background())

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command>\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  run     Start the catalog with background maintenance (default)\n")
	fmt.Fprintf(os.Stderr, "  sweep   Run one orphan sweep and cover reap, then exit\n")
}
