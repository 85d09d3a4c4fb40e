package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/duel/internal/simulate"
)

// Default configuration constants.
const (
	defaultItems       = 20
	defaultComparisons = 400
	defaultNoise       = 0.1
	defaultTieRate     = 0.05
	defaultReviewRate  = 0.02
	defaultTimeout     = 30 * time.Second
	defaultRunTimeout  = 10 * time.Minute
)

func main() {
	var (
		baseURL     = flag.String("url", "http://localhost:8090", "Base URL of the service")
		list        = flag.String("list", "simulated", "Name of the list to create and rank")
		items       = flag.Int("items", defaultItems, "Number of items in the hidden ordering")
		comparisons = flag.Int("comparisons", defaultComparisons, "Number of comparisons to submit")
		noise       = flag.Float64("noise", defaultNoise, "Probability of reporting the wrong winner")
		ties        = flag.Float64("ties", defaultTieRate, "Probability of reporting a tie")
		review      = flag.Float64("review", defaultReviewRate, "Probability of an undo/redo round after a choice")
		timeout     = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed        = flag.Int64("seed", 0, "RNG seed; 0 means time-based")
		logFile     = flag.String("log", "", "Log file for simulation output (default: simulate_log_TIMESTAMP.log)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulate.ShowHelp()
		return
	}

	if err := simulate.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &simulate.Config{
		BaseURL:     *baseURL,
		List:        *list,
		Items:       *items,
		Comparisons: *comparisons,
		Noise:       *noise,
		TieRate:     *ties,
		ReviewRate:  *review,
		Timeout:     *timeout,
		LogFile:     *logFile,
		Verbose:     *verbose,
		Seed:        *seed,
	}

	if err := simulate.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		return
	}
}
