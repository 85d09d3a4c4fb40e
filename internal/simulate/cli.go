package simulate

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/duel/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "simulate_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the simulation tool.
func ShowHelp() {
	os.Stdout.WriteString(`DUEL Ranking Simulator
======================

Drives a running DUEL service with a noisy simulated judge and reports
how well the final rankings recover a hidden ground-truth ordering.

Usage:
  go run cmd/simulate/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8090")
  -list string
        Name of the list to create and rank (default "simulated")
  -items int
        Number of items in the hidden ordering (default 20)
  -comparisons int
        Number of comparisons to submit (default 400)
  -noise float
        Probability of reporting the wrong winner (default 0.1)
  -ties float
        Probability of reporting a tie (default 0.05)
  -review float
        Probability of an undo/redo round after a choice (default 0.02)
  -timeout duration
        HTTP request timeout (default 30s)
  -seed int
        RNG seed; 0 means time-based (default 0)
  -log string
        Log file for simulation output (default: simulate_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Simulate with default settings
  go run cmd/simulate/main.go

  # A bigger, noisier run
  go run cmd/simulate/main.go -items 100 -comparisons 5000 -noise 0.2

  # Reproducible run
  go run cmd/simulate/main.go -seed 42
`)
}
