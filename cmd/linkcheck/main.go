package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"career-compass/internal/domain/catalog"
	"career-compass/internal/infrastructure/linkcheck"
)

func main() {
	workers := flag.Int("workers", 4, "concurrent fetches")
	rps := flag.Int("rps", 2, "requests per second across all workers")
	timeout := flag.Duration("timeout", 15*time.Second, "per-request timeout")
	asJSON := flag.Bool("json", false, "print results as JSON")
	flag.Parse()

	checker := linkcheck.NewChecker(linkcheck.Options{
		Workers: *workers,
		RPS:     *rps,
		Timeout: *timeout,
	}, log.Default())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	results := checker.Check(ctx, catalog.Default().LookupAll())

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			log.Fatalf("encode results: %v", err)
		}
	} else {
		for _, r := range results {
			status := "ok"
			if !r.OK() {
				status = "FAIL"
			}
			fmt.Printf("%-4s %-20s %3d %6s %s", status, r.Keyword, r.StatusCode, r.Latency.Round(time.Millisecond), r.URL)
			if r.Err != "" {
				fmt.Printf(" (%s)", r.Err)
			}
			fmt.Println()
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}
