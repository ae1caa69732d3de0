// Package main provides a CLI tool that lists the configured scheduled jobs
// and the cities they cover.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/weather-alerts/internal/config"
	"github.com/weather-alerts/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	postgres, err := storage.NewPostgresDB(&cfg.Database.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer postgres.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	userRepo := storage.NewUserRepository(postgres)
	cities, err := userRepo.DistinctCities(ctx)
	if err != nil {
		log.Fatalf("Failed to list cities: %v", err)
	}

	names := make([]string, 0, len(cities))
	for _, city := range cities {
		names = append(names, fmt.Sprintf("%s,%s", city.Name, city.Country))
	}

	coverage := "(no registered users)"
	if len(names) > 0 {
		coverage = strings.Join(names, ", ")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "JOB\tINTERVAL\tCOVERAGE")
	fmt.Fprintf(w, "fetch-weather\t%s\t%s\n", cfg.Scheduler.FetchInterval, coverage)
	w.Flush()
}
