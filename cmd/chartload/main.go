package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"trackclash/internal/charts"
	"trackclash/internal/config"
	"trackclash/internal/database"
	"trackclash/internal/repository"
	"trackclash/internal/service"
)

// chartload populates the local chart archive that quick play samples.
// It fetches chart-week exports from the configured chart-data source and
// stores them in the database.
func main() {
	weekCmd := flag.NewFlagSet("week", flag.ExitOnError)
	weekChart := weekCmd.String("chart", "hot-100", "Chart slug to import")
	weekDate := weekCmd.String("date", "", "Chart week (YYYY-MM-DD, required)")

	chartCmd := flag.NewFlagSet("chart", flag.ExitOnError)
	chartSlug := chartCmd.String("chart", "hot-100", "Chart slug to import in full")

	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	listChart := listCmd.String("chart", "hot-100", "Chart slug to list archived weeks for")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()
	if cfg.ChartBaseURL == "" {
		log.Fatal("CHART_BASE_URL must be set")
	}

	// Initialize database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	chartRepo := repository.NewChartRepository(db)
	chartService := service.NewChartService(chartRepo, charts.NewClient(cfg.ChartBaseURL))

	// Full-chart imports can run for a long while; Ctrl-C stops cleanly
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch os.Args[1] {
	case "week":
		weekCmd.Parse(os.Args[2:])
		if *weekDate == "" {
			fmt.Println("Error: -date flag is required")
			weekCmd.PrintDefaults()
			os.Exit(1)
		}
		if err := chartService.ImportWeek(ctx, *weekChart, *weekDate); err != nil {
			log.Fatalf("Import failed: %v", err)
		}

	case "chart":
		chartCmd.Parse(os.Args[2:])
		imported, err := chartService.ImportChart(ctx, *chartSlug)
		if err != nil {
			log.Fatalf("Import failed after %d weeks: %v", imported, err)
		}
		log.Printf("Import complete: %d weeks", imported)

	case "list":
		listCmd.Parse(os.Args[2:])
		weeks, err := chartService.ArchivedWeeks(*listChart)
		if err != nil {
			log.Fatalf("List failed: %v", err)
		}
		for _, week := range weeks {
			fmt.Println(week)
		}
		fmt.Printf("%d weeks archived for %s\n", len(weeks), *listChart)

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: chartload <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  week   Import a single chart week")
	fmt.Println("  chart  Import every available week of a chart")
	fmt.Println("  list   Show archived weeks for a chart")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  chartload week -chart hot-100 -date 1999-07-17")
	fmt.Println("  chartload chart -chart country-songs")
	fmt.Println("  chartload list -chart hot-100")
}
